// Package recon rebuilds charging sessions from raw connect/disconnect
// event streams.
package recon

import (
	"sort"
	"time"

	"chargepulse/internal/models"
)

// pendingConnect is the single in-flight slot of the pairing pass.
type pendingConnect struct {
	userID     string
	time       time.Time
	percentage int
}

// Reconstruct pairs one user's connect/disconnect events into sessions in a
// single pass. Every connect event produces exactly one session: a connect
// followed by a disconnect (with no connect in between) closes complete; a
// connect followed by another connect, or left unmatched at stream end,
// closes incomplete. Disconnects with no prior connect are dropped here and
// surface only through the profile mismatch counter.
//
// Input order matters: events are sorted by (timestamp, row id) before the
// pass, so callers may hand over rows in any order. The function is pure and
// touches no data beyond its argument.
func Reconstruct(events []models.ChargingEvent) []models.Session {
	ordered := orderEvents(events)

	var sessions []models.Session
	var pending *pendingConnect

	for _, ev := range ordered {
		switch ev.Type {
		case models.EventConnected:
			if pending != nil {
				sessions = append(sessions, incompleteSession(pending))
			}
			pending = &pendingConnect{userID: ev.UserID, time: ev.Timestamp, percentage: ev.Percentage}
		case models.EventDisconnected:
			if pending == nil {
				// Orphan disconnect: no session, counted at profile level.
				continue
			}
			sessions = append(sessions, completeSession(pending, ev))
			pending = nil
		}
	}

	if pending != nil {
		sessions = append(sessions, incompleteSession(pending))
	}

	return sessions
}

// orderEvents returns a copy sorted by (timestamp, row id). The row id
// tie-break keeps the pass deterministic when events share a timestamp.
func orderEvents(events []models.ChargingEvent) []models.ChargingEvent {
	ordered := make([]models.ChargingEvent, len(events))
	copy(ordered, events)
	sort.SliceStable(ordered, func(i, j int) bool {
		if !ordered[i].Timestamp.Equal(ordered[j].Timestamp) {
			return ordered[i].Timestamp.Before(ordered[j].Timestamp)
		}
		return ordered[i].ID < ordered[j].ID
	})
	return ordered
}

func incompleteSession(pending *pendingConnect) models.Session {
	return models.Session{
		UserID:          pending.userID,
		ConnectTime:     pending.time,
		StartPercentage: pending.percentage,
		IsComplete:      false,
	}
}

func completeSession(pending *pendingConnect, disconnect models.ChargingEvent) models.Session {
	minutes := disconnect.Timestamp.Sub(pending.time).Minutes()
	if minutes < 0 {
		minutes = 0
	}
	end := disconnect.Percentage
	gained := disconnect.Percentage - pending.percentage
	disconnectTime := disconnect.Timestamp

	return models.Session{
		UserID:          pending.userID,
		ConnectTime:     pending.time,
		DisconnectTime:  &disconnectTime,
		DurationMinutes: &minutes,
		StartPercentage: pending.percentage,
		EndPercentage:   &end,
		ChargeGained:    &gained,
		IsComplete:      true,
	}
}
