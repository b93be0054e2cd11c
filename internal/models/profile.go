package models

import "time"

// UserProfile is the per-user rollup recomputed after each session rebuild.
// Average fields are nil, not zero, when the user has no complete sessions.
type UserProfile struct {
	UserID                  string    `db:"user_id" json:"user_id"`
	TotalEvents             int       `db:"total_events" json:"total_events"`
	ConnectCount            int       `db:"connect_count" json:"connect_count"`
	DisconnectCount         int       `db:"disconnect_count" json:"disconnect_count"`
	EventMismatch           int       `db:"event_mismatch" json:"event_mismatch"`
	TotalSessions           int       `db:"total_sessions" json:"total_sessions"`
	CompleteSessions        int       `db:"complete_sessions" json:"complete_sessions"`
	AvgDurationMinutes      *float64  `db:"avg_duration_minutes" json:"avg_duration_minutes"`
	AvgChargeGained         *float64  `db:"avg_charge_gained" json:"avg_charge_gained"`
	AvgConnectPercentage    *float64  `db:"avg_connect_percentage" json:"avg_connect_percentage"`
	AvgDisconnectPercentage *float64  `db:"avg_disconnect_percentage" json:"avg_disconnect_percentage"`
	FirstEvent              time.Time `db:"first_event" json:"first_event"`
	LastEvent               time.Time `db:"last_event" json:"last_event"`
	IsAnomalous             bool      `db:"is_anomalous" json:"is_anomalous"`
}
