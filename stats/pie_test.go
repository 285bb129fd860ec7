package stats

import (
	"strings"
	"testing"
	"time"

	"github.com/connosssss/trackr/models"
	"github.com/stretchr/testify/assert"
)

func TestBuildPieTotalsAndOrdering(t *testing.T) {
	sessions := []models.TimeSession{
		session(date(2025, time.June, 2, 9, 0), 3600, "Work"),
		session(date(2025, time.June, 3, 9, 0), 1800, "Work"),
		session(date(2025, time.June, 4, 9, 0), 7200, "Reading"),
		session(date(2025, time.June, 5, 9, 0), 900, ""),
	}
	slices := BuildPie(sessions)

	assert.Len(t, slices, 3)
	assert.Equal(t, "Reading", slices[0].Name)
	assert.Equal(t, "Work", slices[1].Name)
	assert.Equal(t, PieSentinelGroup, slices[2].Name)

	var valueSum int64
	var pctSum float64
	for _, s := range slices {
		valueSum += s.Value
		pctSum += s.Percentage
	}
	assert.Equal(t, int64(3600+1800+7200+900), valueSum)
	assert.InDelta(t, 100.0, pctSum, 0.1)
}

func TestBuildPieAngles(t *testing.T) {
	sessions := []models.TimeSession{
		session(date(2025, time.June, 2, 9, 0), 3*3600, "a"),
		session(date(2025, time.June, 3, 9, 0), 1*3600, "b"),
	}
	slices := BuildPie(sessions)

	assert.InDelta(t, 0.0, slices[0].StartAngle, 1e-9)
	assert.InDelta(t, 270.0, slices[0].EndAngle, 1e-9)
	assert.True(t, slices[0].LargeArc)
	assert.InDelta(t, 270.0, slices[1].StartAngle, 1e-9)
	assert.InDelta(t, 360.0, slices[1].EndAngle, 1e-9)
	assert.False(t, slices[1].LargeArc)
	assert.InDelta(t, 75.0, slices[0].Percentage, 1e-9)
	assert.InDelta(t, 25.0, slices[1].Percentage, 1e-9)

	assert.True(t, strings.HasPrefix(slices[0].Path, "M 150.00 150.00 L "))
	assert.Contains(t, slices[0].Path, " A 130.00 130.00 0 1 1 ")
	assert.True(t, strings.HasSuffix(slices[0].Path, " Z"))
}

func TestBuildPieIgnoresInvalidDurations(t *testing.T) {
	open := session(date(2025, time.June, 2, 9, 0), 0, "idle")
	slices := BuildPie([]models.TimeSession{open})
	assert.Empty(t, slices)
}

func TestBuildPieEmpty(t *testing.T) {
	assert.Empty(t, BuildPie(nil))
}
