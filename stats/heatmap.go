package stats

import (
	"time"

	"github.com/connosssss/trackr/models"
)

// Heatmap is the 7x24 hour-of-week activity grid. Intensity scales each
// cell's accumulated seconds against the busiest cell; rows are weekdays
// with 0 = Sunday, columns are clock hours 0-23. MaxSeconds is the raw
// second count of the busiest cell (0 when there is no activity).
type Heatmap struct {
	Intensity  [7][24]float64 `json:"intensity"`
	MaxSeconds float64        `json:"maxSeconds"`
}

// BuildHeatmap distributes each session's time across clock-hour windows,
// splitting sessions that cross hour boundaries proportionally. The weekday
// row is frozen to the session's start day: a session running past midnight
// keeps charging its original day. That matches the shipped charts and is
// asserted by tests; fixing it would change existing dashboards.
func BuildHeatmap(sessions []models.TimeSession) Heatmap {
	var raw [7][24]float64

	for i := range sessions {
		s := &sessions[i]
		if !s.HasDuration() || s.StartTime.IsZero() {
			continue
		}
		end := s.StartTime.Add(time.Duration(*s.Duration) * time.Second)
		if s.EndTime != nil {
			end = *s.EndTime
		}
		day := int(s.StartTime.Weekday())

		cur := s.StartTime
		for cur.Before(end) {
			hourEnd := nextHour(cur)
			if hourEnd.After(end) {
				hourEnd = end
			}
			raw[day][cur.Hour()] += hourEnd.Sub(cur).Seconds()
			cur = hourEnd
		}
	}

	var hm Heatmap
	for d := 0; d < 7; d++ {
		for h := 0; h < 24; h++ {
			if raw[d][h] > hm.MaxSeconds {
				hm.MaxSeconds = raw[d][h]
			}
		}
	}
	if hm.MaxSeconds == 0 {
		return hm
	}
	for d := 0; d < 7; d++ {
		for h := 0; h < 24; h++ {
			hm.Intensity[d][h] = raw[d][h] / hm.MaxSeconds
		}
	}
	return hm
}

// nextHour returns the next clock-hour boundary after t in t's location.
func nextHour(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location()).Add(time.Hour)
}
