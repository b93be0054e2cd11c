package models

import "time"

// Session is a derived charging session, one per connect event. Incomplete
// sessions (connect never matched by a disconnect) carry nil disconnect
// fields.
type Session struct {
	ID              int64      `db:"id" json:"id,omitempty"`
	UserID          string     `db:"user_id" json:"user_id"`
	ConnectTime     time.Time  `db:"connect_time" json:"connect_time"`
	DisconnectTime  *time.Time `db:"disconnect_time" json:"disconnect_time"`
	DurationMinutes *float64   `db:"duration_minutes" json:"duration_minutes"`
	StartPercentage int        `db:"start_percentage" json:"start_percentage"`
	EndPercentage   *int       `db:"end_percentage" json:"end_percentage"`
	ChargeGained    *int       `db:"charge_gained" json:"charge_gained"`
	IsComplete      bool       `db:"is_complete" json:"is_complete"`
}
