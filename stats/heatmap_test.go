package stats

import (
	"testing"
	"time"

	"github.com/connosssss/trackr/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildHeatmapSplitsAcrossHours(t *testing.T) {
	// Monday 10:30 for one hour: half in hour 10, half in hour 11.
	s := session(date(2025, time.June, 2, 10, 30), 3600, "Work")
	hm := BuildHeatmap([]models.TimeSession{s})

	monday := int(time.Monday)
	assert.InDelta(t, 1800.0, hm.MaxSeconds, 1e-9)
	assert.InDelta(t, 1.0, hm.Intensity[monday][10], 1e-9)
	assert.InDelta(t, 1.0, hm.Intensity[monday][11], 1e-9)
	assert.Zero(t, hm.Intensity[monday][12])
}

func TestBuildHeatmapPrefersRecordedEndTime(t *testing.T) {
	start := date(2025, time.June, 2, 9, 0)
	end := start.Add(30 * time.Minute)
	dur := int64(3600) // stale duration; end_time wins
	s := models.TimeSession{StartTime: start, EndTime: &end, Duration: &dur}
	hm := BuildHeatmap([]models.TimeSession{s})

	assert.InDelta(t, 1800.0, hm.MaxSeconds, 1e-9)
	assert.InDelta(t, 1.0, hm.Intensity[int(time.Monday)][9], 1e-9)
}

func TestBuildHeatmapMidnightKeepsStartDay(t *testing.T) {
	// Saturday 23:30 for one hour. The half past midnight still lands on
	// Saturday's row, in the hour-0 column.
	s := session(date(2025, time.June, 7, 23, 30), 3600, "")
	hm := BuildHeatmap([]models.TimeSession{s})

	saturday := int(time.Saturday)
	assert.InDelta(t, 1.0, hm.Intensity[saturday][23], 1e-9)
	assert.InDelta(t, 1.0, hm.Intensity[saturday][0], 1e-9)
	assert.Zero(t, hm.Intensity[int(time.Sunday)][0])
}

func TestBuildHeatmapConservesSeconds(t *testing.T) {
	sessions := []models.TimeSession{
		session(date(2025, time.June, 2, 8, 15), 5400, "a"),
		session(date(2025, time.June, 4, 22, 0), 7200, "b"),
		session(date(2025, time.June, 6, 13, 45), 600, "c"),
	}
	hm := BuildHeatmap(sessions)

	var total float64
	for d := 0; d < 7; d++ {
		for h := 0; h < 24; h++ {
			total += hm.Intensity[d][h] * hm.MaxSeconds
		}
	}
	assert.InDelta(t, 5400+7200+600, total, 1e-6)
}

func TestBuildHeatmapEmptyAndInvalid(t *testing.T) {
	hm := BuildHeatmap(nil)
	assert.Zero(t, hm.MaxSeconds)

	// Zero-duration sessions contribute nothing and cause no division by zero.
	hm = BuildHeatmap([]models.TimeSession{session(date(2025, time.June, 2, 9, 0), 0, "x")})
	assert.Zero(t, hm.MaxSeconds)
	assert.Zero(t, hm.Intensity[int(time.Monday)][9])
}
