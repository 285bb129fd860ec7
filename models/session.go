package models

import "time"

// TimeSession is one recorded work interval. EndTime, Duration and Group are
// nullable: a session may still be running (no end recorded) or have no
// computed duration yet. Duration is in seconds.
type TimeSession struct {
	ID         string     `json:"id"`
	UserID     int        `json:"userId"`
	StartTime  time.Time  `json:"startTime"`
	EndTime    *time.Time `json:"endTime,omitempty"`
	Duration   *int64     `json:"duration,omitempty"`
	Group      *string    `json:"group,omitempty"`
	CreatedAt  time.Time  `json:"createdAt"`
	ModifiedAt time.Time  `json:"modifiedAt"`
}

// HasDuration reports whether the session carries a positive duration.
// Sessions without one are ignored by every aggregate.
func (s *TimeSession) HasDuration() bool {
	return s.Duration != nil && *s.Duration > 0
}

// GroupStat is one row of the per-group leaderboard on the statistics page.
type GroupStat struct {
	GroupName     string `json:"groupName"`
	SessionCount  int    `json:"sessionCount"`
	TotalDuration int64  `json:"totalDuration"`
}
