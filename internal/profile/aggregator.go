// Package profile computes per-user rollups from raw events and
// reconstructed sessions.
package profile

import (
	"chargepulse/internal/models"
)

// The anomaly flag and the clean-cohort filter use different mismatch
// thresholds for different consumers: the flag marks data-quality problems
// on individual users, the cohort limit decides inclusion in comparison
// aggregates. Keep them separate.
const (
	anomalyMismatchThreshold = 1

	// CleanCohortMismatchLimit is the inclusive mismatch bound for the clean
	// cohort; repositories use it directly in cohort-filtered queries.
	CleanCohortMismatchLimit = 10
)

// IsAnomalous reports whether a connect/disconnect mismatch trips the strict
// data-quality flag.
func IsAnomalous(eventMismatch int) bool {
	return eventMismatch > anomalyMismatchThreshold
}

// IsCleanCohortMember reports whether a user qualifies for the "clean"
// aggregate population. Looser than IsAnomalous on purpose.
func IsCleanCohortMember(eventMismatch int) bool {
	return eventMismatch <= CleanCohortMismatchLimit
}

// Compute builds the rollup for one user from all of their events plus the
// sessions reconstructed from them. Returns nil when the user has no events:
// nothing to aggregate means no profile row, not a zero row. Averages are
// restricted to complete sessions and stay nil when there are none.
func Compute(userID string, events []models.ChargingEvent, sessions []models.Session) *models.UserProfile {
	if len(events) == 0 {
		return nil
	}

	p := &models.UserProfile{
		UserID:     userID,
		FirstEvent: events[0].Timestamp,
		LastEvent:  events[0].Timestamp,
	}

	for _, ev := range events {
		p.TotalEvents++
		switch ev.Type {
		case models.EventConnected:
			p.ConnectCount++
		case models.EventDisconnected:
			p.DisconnectCount++
		}
		if ev.Timestamp.Before(p.FirstEvent) {
			p.FirstEvent = ev.Timestamp
		}
		if ev.Timestamp.After(p.LastEvent) {
			p.LastEvent = ev.Timestamp
		}
	}

	p.EventMismatch = p.ConnectCount - p.DisconnectCount
	if p.EventMismatch < 0 {
		p.EventMismatch = -p.EventMismatch
	}
	p.IsAnomalous = IsAnomalous(p.EventMismatch)

	var (
		sumDuration   float64
		sumCharge     float64
		sumConnect    float64
		sumDisconnect float64
	)
	for _, s := range sessions {
		p.TotalSessions++
		if !s.IsComplete {
			continue
		}
		p.CompleteSessions++
		if s.DurationMinutes != nil {
			sumDuration += *s.DurationMinutes
		}
		if s.ChargeGained != nil {
			sumCharge += float64(*s.ChargeGained)
		}
		sumConnect += float64(s.StartPercentage)
		if s.EndPercentage != nil {
			sumDisconnect += float64(*s.EndPercentage)
		}
	}

	if p.CompleteSessions > 0 {
		n := float64(p.CompleteSessions)
		avgDuration := sumDuration / n
		avgCharge := sumCharge / n
		avgConnect := sumConnect / n
		avgDisconnect := sumDisconnect / n
		p.AvgDurationMinutes = &avgDuration
		p.AvgChargeGained = &avgCharge
		p.AvgConnectPercentage = &avgConnect
		p.AvgDisconnectPercentage = &avgDisconnect
	}

	return p
}
