// Package stats computes read-only derived views over reconstructed
// sessions: histograms, box plots, time patterns, cohort comparisons and
// gap/drain analysis. All functions are pure array algorithms over their
// inputs.
package stats

import (
	"math"
	"sort"
)

// Domain bounds a measured quantity so whisker fences stay meaningful
// (battery percentages clamp to [0,100]).
type Domain struct {
	Min float64
	Max float64
}

// PercentageDomain is the natural domain of battery-level quantities.
var PercentageDomain = Domain{Min: 0, Max: 100}

// BoxPlotSummary describes the distribution of one numeric session column.
// Whiskers are Tukey fences (1.5 IQR past the quartiles) clamped into the
// value's domain.
type BoxPlotSummary struct {
	Min           float64 `json:"min"`
	Q1            float64 `json:"q1"`
	Median        float64 `json:"median"`
	Q3            float64 `json:"q3"`
	Max           float64 `json:"max"`
	Mean          float64 `json:"mean"`
	Count         int     `json:"count"`
	WhiskerLow    float64 `json:"whisker_low"`
	WhiskerHigh   float64 `json:"whisker_high"`
	OutliersBelow int     `json:"outliers_below"`
	OutliersAbove int     `json:"outliers_above"`
}

const tukeyFenceFactor = 1.5

// PercentileCont returns the linearly interpolated p-th percentile
// (0 <= p <= 1) of an ascending-sorted slice, matching SQL percentile_cont.
// Panics on empty input; callers guard.
func PercentileCont(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	pos := p * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// BoxPlot summarizes values into quartiles, mean and Tukey outlier counts.
// A nil domain leaves whiskers unclamped. Returns nil for an empty input so
// empty cohorts degrade to "no data" rather than an error.
func BoxPlot(values []float64, domain *Domain) *BoxPlotSummary {
	if len(values) == 0 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	summary := &BoxPlotSummary{
		Min:    sorted[0],
		Q1:     PercentileCont(sorted, 0.25),
		Median: PercentileCont(sorted, 0.5),
		Q3:     PercentileCont(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
		Mean:   mean(sorted),
		Count:  len(sorted),
	}

	iqr := summary.Q3 - summary.Q1
	summary.WhiskerLow = summary.Q1 - tukeyFenceFactor*iqr
	summary.WhiskerHigh = summary.Q3 + tukeyFenceFactor*iqr
	if domain != nil {
		summary.WhiskerLow = math.Max(summary.WhiskerLow, domain.Min)
		summary.WhiskerHigh = math.Min(summary.WhiskerHigh, domain.Max)
	}

	for _, v := range sorted {
		switch {
		case v < summary.WhiskerLow:
			summary.OutliersBelow++
		case v > summary.WhiskerHigh:
			summary.OutliersAbove++
		}
	}

	return summary
}

func mean(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev returns the sample standard deviation, nil below two samples.
func stdDev(values []float64) *float64 {
	if len(values) < 2 {
		return nil
	}
	m := mean(values)
	var sq float64
	for _, v := range values {
		sq += (v - m) * (v - m)
	}
	sd := math.Sqrt(sq / float64(len(values)-1))
	return &sd
}
