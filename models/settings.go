package models

import "time"

// UserSettings holds per-user presentation preferences. The theme only
// affects rendering on the client; aggregation never reads it.
type UserSettings struct {
	UserID     int       `json:"userId"`
	Theme      string    `json:"theme"`
	ModifiedAt time.Time `json:"modifiedAt"`
}
