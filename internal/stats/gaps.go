package stats

import (
	"sort"

	"chargepulse/internal/models"
)

// Validity windows for between-session analysis. Gaps past two days almost
// always mean missing data, not real phone-off time; drain rates computed
// over very short or very long gaps, or implying >50%/hour, come from bad
// timestamps rather than real usage.
const (
	maxValidGapHours    = 48.0
	minDrainGapHours    = 1.0
	maxDrainGapHours    = 24.0
	maxDrainRatePerHour = 50.0
)

// GapDrainStats summarizes the time between consecutive sessions and the
// battery drain rate across those gaps. A nil summary means no valid
// samples.
type GapDrainStats struct {
	Gaps       *BoxPlotSummary `json:"gaps"`
	DrainRates *BoxPlotSummary `json:"drain_rates"`
}

// AnalyzeGaps walks consecutive sessions per user, ordered by connect time,
// and collects valid usage gaps (hours between a disconnect and the next
// connect) and valid drain rates (percent lost per hour across a gap).
func AnalyzeGaps(sessions []models.Session) GapDrainStats {
	byUser := make(map[string][]models.Session)
	for _, s := range sessions {
		byUser[s.UserID] = append(byUser[s.UserID], s)
	}

	var gaps, drains []float64
	for _, userSessions := range byUser {
		sort.Slice(userSessions, func(i, j int) bool {
			return userSessions[i].ConnectTime.Before(userSessions[j].ConnectTime)
		})
		for i := 1; i < len(userSessions); i++ {
			prev := userSessions[i-1]
			curr := userSessions[i]
			if prev.DisconnectTime == nil {
				continue
			}

			gapHours := curr.ConnectTime.Sub(*prev.DisconnectTime).Hours()
			if gapHours > 0 && gapHours < maxValidGapHours {
				gaps = append(gaps, gapHours)
			}

			if prev.EndPercentage == nil {
				continue
			}
			dropped := float64(*prev.EndPercentage - curr.StartPercentage)
			if dropped <= 0 {
				continue
			}
			if gapHours < minDrainGapHours || gapHours >= maxDrainGapHours {
				continue
			}
			rate := dropped / gapHours
			if rate < maxDrainRatePerHour {
				drains = append(drains, rate)
			}
		}
	}

	return GapDrainStats{
		Gaps:       BoxPlot(gaps, nil),
		DrainRates: BoxPlot(drains, nil),
	}
}
