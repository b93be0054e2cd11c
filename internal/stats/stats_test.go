package stats

import (
	"time"

	"chargepulse/internal/models"
)

// completeSession builds a paired session for tests.
func completeSession(userID string, connect time.Time, minutes float64, startPct, endPct int) models.Session {
	disconnect := connect.Add(time.Duration(minutes * float64(time.Minute)))
	gained := endPct - startPct
	return models.Session{
		UserID:          userID,
		ConnectTime:     connect,
		DisconnectTime:  &disconnect,
		DurationMinutes: &minutes,
		StartPercentage: startPct,
		EndPercentage:   &endPct,
		ChargeGained:    &gained,
		IsComplete:      true,
	}
}

func incompleteSession(userID string, connect time.Time, startPct int) models.Session {
	return models.Session{
		UserID:          userID,
		ConnectTime:     connect,
		StartPercentage: startPct,
		IsComplete:      false,
	}
}

func day(hour, minute int) time.Time {
	return time.Date(2025, time.March, 9, hour, minute, 0, 0, time.UTC) // a Sunday
}
