package stats

import (
	"fmt"
	"math"

	"chargepulse/internal/models"
)

// Bucket is one histogram bar. Order is a stable sort key independent of
// the label text so charts order correctly regardless of label formatting.
type Bucket struct {
	Label string `json:"label"`
	Order int    `json:"bucket_order"`
	Count int    `json:"count"`
}

type bucketRange struct {
	label string
	min   float64 // inclusive
	max   float64 // exclusive
}

var durationBucketRanges = []bucketRange{
	{"0-5 min", 0, 5},
	{"5-15 min", 5, 15},
	{"15-30 min", 15, 30},
	{"30-60 min", 30, 60},
	{"1-2 hr", 60, 120},
	{"2-4 hr", 120, 240},
	{"4-8 hr", 240, 480},
	{"8+ hr", 480, math.Inf(1)},
}

var chargeBucketRanges = []bucketRange{
	{"negative", math.Inf(-1), 0},
	{"0%", 0, 1},
	{"1-10%", 1, 11},
	{"11-20%", 11, 21},
	{"21-30%", 21, 31},
	{"31-50%", 31, 51},
	{"51-70%", 51, 71},
	{"71-90%", 71, 91},
	{"91-100%", 91, 101},
}

// Distribution buckets the metric column of the given sessions into the
// metric's fixed boundaries. Every defined bucket appears in the result,
// zero-filled, in bucket_order.
func Distribution(sessions []models.Session, metric Metric) []Bucket {
	if metric == MetricBattery {
		return batteryLevelDistribution(sessions)
	}

	ranges := durationBucketRanges
	if metric == MetricCharge {
		ranges = chargeBucketRanges
	}

	buckets := make([]Bucket, len(ranges))
	for i, r := range ranges {
		buckets[i] = Bucket{Label: r.label, Order: i}
	}
	for _, v := range MetricValues(sessions, metric) {
		for i, r := range ranges {
			if v >= r.min && v < r.max {
				buckets[i].Count++
				break
			}
		}
	}
	return buckets
}

// batteryLevelDistribution buckets connect-time battery levels into 10-point
// bands; 100% gets its own band.
func batteryLevelDistribution(sessions []models.Session) []Bucket {
	buckets := make([]Bucket, 11)
	for i := 0; i < 10; i++ {
		buckets[i] = Bucket{
			Label: bandLabel(i * 10),
			Order: i,
		}
	}
	buckets[10] = Bucket{Label: "100%", Order: 10}

	for _, s := range sessions {
		level := s.StartPercentage
		if level < 0 || level > 100 {
			continue
		}
		buckets[level/10].Count++
	}
	return buckets
}

func bandLabel(low int) string {
	return fmt.Sprintf("%d-%d%%", low, low+9)
}
