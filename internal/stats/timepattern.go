package stats

import (
	"time"

	"chargepulse/internal/models"
)

// Overnight window: plugged in late evening, unplugged by morning.
const (
	overnightConnectHour    = 21
	overnightDisconnectHour = 8
)

// HourBucket is one hour-of-day cell of the hourly trend.
type HourBucket struct {
	Hour               int      `json:"hour"`
	Count              int      `json:"count"`
	AvgDurationMinutes *float64 `json:"avg_duration_minutes"`
}

// DayBucket is one day-of-week cell, 0=Sunday through 6=Saturday.
type DayBucket struct {
	Day   int    `json:"day"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// HeatmapCell is one cell of the dense 7x24 day/hour grid.
type HeatmapCell struct {
	Day   int `json:"day"`
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// TimePatterns carries the dense time-bucketed views. Hours and days with no
// sessions are present with zero counts; downstream heatmaps assume the
// full grid.
type TimePatterns struct {
	Hourly            []HourBucket  `json:"hourly"`
	Daily             []DayBucket   `json:"daily"`
	Heatmap           []HeatmapCell `json:"heatmap"`
	OvernightSessions int           `json:"overnight_sessions"`
	OvernightShare    *float64      `json:"overnight_share"`
}

var dayLabels = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

// TimePatternsOf groups complete sessions by connect-time hour-of-day and
// day-of-week in the given location. The result grids are always dense.
func TimePatternsOf(sessions []models.Session, loc *time.Location) TimePatterns {
	if loc == nil {
		loc = time.UTC
	}

	tp := TimePatterns{
		Hourly:  make([]HourBucket, 24),
		Daily:   make([]DayBucket, 7),
		Heatmap: make([]HeatmapCell, 0, 7*24),
	}
	for h := 0; h < 24; h++ {
		tp.Hourly[h].Hour = h
	}
	for d := 0; d < 7; d++ {
		tp.Daily[d] = DayBucket{Day: d, Label: dayLabels[d]}
	}
	heatCounts := [7][24]int{}
	durationSums := [24]float64{}

	complete := 0
	for _, s := range sessions {
		if !s.IsComplete {
			continue
		}
		complete++
		local := s.ConnectTime.In(loc)
		hour := local.Hour()
		day := int(local.Weekday())

		tp.Hourly[hour].Count++
		if s.DurationMinutes != nil {
			durationSums[hour] += *s.DurationMinutes
		}
		tp.Daily[day].Count++
		heatCounts[day][hour]++

		if IsOvernight(s, loc) {
			tp.OvernightSessions++
		}
	}

	for h := 0; h < 24; h++ {
		if tp.Hourly[h].Count > 0 {
			avg := durationSums[h] / float64(tp.Hourly[h].Count)
			tp.Hourly[h].AvgDurationMinutes = &avg
		}
	}
	for d := 0; d < 7; d++ {
		for h := 0; h < 24; h++ {
			tp.Heatmap = append(tp.Heatmap, HeatmapCell{Day: d, Hour: h, Count: heatCounts[d][h]})
		}
	}
	if complete > 0 {
		share := float64(tp.OvernightSessions) / float64(complete)
		tp.OvernightShare = &share
	}

	return tp
}

// IsOvernight classifies a session as an overnight charge: connected at or
// after 21:00 and disconnected at or before 08:59 local time, regardless of
// elapsed duration.
func IsOvernight(s models.Session, loc *time.Location) bool {
	if s.DisconnectTime == nil {
		return false
	}
	if loc == nil {
		loc = time.UTC
	}
	connectHour := s.ConnectTime.In(loc).Hour()
	disconnectHour := s.DisconnectTime.In(loc).Hour()
	return connectHour >= overnightConnectHour && disconnectHour <= overnightDisconnectHour
}
