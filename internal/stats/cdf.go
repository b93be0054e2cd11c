package stats

import "sort"

// CDFPoint is one sampled point of an empirical distribution curve.
type CDFPoint struct {
	Percentile int     `json:"percentile"`
	Value      float64 `json:"value"`
}

// CDF samples the empirical distribution of values at 5-point percentile
// steps from 0 to 100, interpolating between observations. Returns nil for
// an empty input.
func CDF(values []float64) []CDFPoint {
	if len(values) == 0 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	points := make([]CDFPoint, 0, 21)
	for p := 0; p <= 100; p += 5 {
		points = append(points, CDFPoint{
			Percentile: p,
			Value:      PercentileCont(sorted, float64(p)/100),
		})
	}
	return points
}
