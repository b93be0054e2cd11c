package stats

import (
	"fmt"

	"chargepulse/internal/models"
)

// Metric selects the numeric session column a distribution or box plot is
// computed over.
type Metric string

// Supported metrics.
const (
	MetricDuration Metric = "duration"
	MetricCharge   Metric = "charge"
	MetricBattery  Metric = "battery"
)

// ParseMetric validates a request parameter.
func ParseMetric(raw string) (Metric, error) {
	switch Metric(raw) {
	case MetricDuration, MetricCharge, MetricBattery:
		return Metric(raw), nil
	default:
		return "", fmt.Errorf("unknown metric %q", raw)
	}
}

// MetricDomain returns the clamp domain for a metric, nil when unbounded.
func MetricDomain(metric Metric) *Domain {
	if metric == MetricBattery {
		d := PercentageDomain
		return &d
	}
	return nil
}

// MetricValues extracts the metric column from sessions. Duration and charge
// come from complete sessions only; battery level is the percentage at
// connect and covers every session. Negative charge values are kept — the
// caller decides whether its statistic filters them.
func MetricValues(sessions []models.Session, metric Metric) []float64 {
	values := make([]float64, 0, len(sessions))
	for _, s := range sessions {
		switch metric {
		case MetricDuration:
			if s.IsComplete && s.DurationMinutes != nil {
				values = append(values, *s.DurationMinutes)
			}
		case MetricCharge:
			if s.IsComplete && s.ChargeGained != nil {
				values = append(values, float64(*s.ChargeGained))
			}
		case MetricBattery:
			values = append(values, float64(s.StartPercentage))
		}
	}
	return values
}
