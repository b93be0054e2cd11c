package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// EventType distinguishes charger plug-in from plug-out facts.
type EventType string

// Known event types.
const (
	EventConnected    EventType = "connected"
	EventDisconnected EventType = "disconnected"
)

// ChargingEvent is an immutable raw fact from the event store. Events for a
// subject are totally ordered by (Timestamp, ID); ID is the original row id
// and breaks ties between events sharing a timestamp.
type ChargingEvent struct {
	ID         int64     `db:"id" json:"id"`
	UserID     string    `db:"user_id" json:"user_id"`
	GroupID    string    `db:"group_id" json:"group_id,omitempty"`
	Type       EventType `db:"event_type" json:"event_type"`
	Percentage int       `db:"percentage" json:"percentage"`
	Timestamp  time.Time `db:"event_timestamp" json:"event_timestamp"`
}

// Validation errors for raw events.
var (
	ErrEventMissingUser   = errors.New("event: missing user id")
	ErrEventMissingTime   = errors.New("event: missing timestamp")
	ErrEventBadPercentage = errors.New("event: percentage out of range")
)

// Validate rejects malformed raw rows before they reach reconstruction.
// Malformed events are excluded, never coerced.
func (e *ChargingEvent) Validate() error {
	if strings.TrimSpace(e.UserID) == "" {
		return ErrEventMissingUser
	}
	if e.Timestamp.IsZero() {
		return ErrEventMissingTime
	}
	if e.Percentage < 0 || e.Percentage > 100 {
		return fmt.Errorf("%w: %d", ErrEventBadPercentage, e.Percentage)
	}
	switch e.Type {
	case EventConnected, EventDisconnected:
		return nil
	default:
		return fmt.Errorf("event: unknown type %q", e.Type)
	}
}
