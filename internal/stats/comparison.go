package stats

import (
	"time"

	"chargepulse/internal/models"
)

// SummaryStats are the headline numbers for one metric over one population.
// Nil fields mean "not computable from this population", never zero.
type SummaryStats struct {
	Count  int      `json:"count"`
	Mean   *float64 `json:"mean"`
	Median *float64 `json:"median"`
	StdDev *float64 `json:"stddev"`
}

// SummaryPair holds the same statistic computed over the full population and
// over the clean cohort.
type SummaryPair struct {
	Metric Metric       `json:"metric"`
	All    SummaryStats `json:"all"`
	Clean  SummaryStats `json:"clean"`
}

// HourlyPair is one hour-of-day count for both populations.
type HourlyPair struct {
	Hour  int `json:"hour"`
	All   int `json:"all"`
	Clean int `json:"clean"`
}

// BucketPair is one histogram bucket counted for both populations.
type BucketPair struct {
	Label string `json:"label"`
	Order int    `json:"bucket_order"`
	All   int    `json:"all"`
	Clean int    `json:"clean"`
}

// Comparison contrasts the unfiltered session population with the clean
// cohort. Every statistic is computed twice over the raw populations, never
// by filtering a cached all-users result.
type Comparison struct {
	Summary         []SummaryPair `json:"summary"`
	Hourly          []HourlyPair  `json:"hourly"`
	DurationBuckets []BucketPair  `json:"duration_buckets"`
}

// Compare computes the all-vs-clean comparison set. Charge summaries filter
// negative gains; duration summaries do not need to (durations are floored
// at zero).
func Compare(all, clean []models.Session, loc *time.Location) Comparison {
	cmp := Comparison{
		Summary: []SummaryPair{
			{
				Metric: MetricDuration,
				All:    summarize(MetricValues(all, MetricDuration)),
				Clean:  summarize(MetricValues(clean, MetricDuration)),
			},
			{
				Metric: MetricCharge,
				All:    summarize(nonNegative(MetricValues(all, MetricCharge))),
				Clean:  summarize(nonNegative(MetricValues(clean, MetricCharge))),
			},
		},
	}

	allPatterns := TimePatternsOf(all, loc)
	cleanPatterns := TimePatternsOf(clean, loc)
	cmp.Hourly = make([]HourlyPair, 24)
	for h := 0; h < 24; h++ {
		cmp.Hourly[h] = HourlyPair{
			Hour:  h,
			All:   allPatterns.Hourly[h].Count,
			Clean: cleanPatterns.Hourly[h].Count,
		}
	}

	allBuckets := Distribution(all, MetricDuration)
	cleanBuckets := Distribution(clean, MetricDuration)
	cmp.DurationBuckets = make([]BucketPair, len(allBuckets))
	for i, b := range allBuckets {
		cmp.DurationBuckets[i] = BucketPair{
			Label: b.Label,
			Order: b.Order,
			All:   b.Count,
			Clean: cleanBuckets[i].Count,
		}
	}

	return cmp
}

func summarize(values []float64) SummaryStats {
	s := SummaryStats{Count: len(values)}
	if len(values) == 0 {
		return s
	}
	m := mean(values)
	s.Mean = &m
	if bp := BoxPlot(values, nil); bp != nil {
		median := bp.Median
		s.Median = &median
	}
	s.StdDev = stdDev(values)
	return s
}

func nonNegative(values []float64) []float64 {
	filtered := values[:0:0]
	for _, v := range values {
		if v >= 0 {
			filtered = append(filtered, v)
		}
	}
	return filtered
}
