package stats

import (
	"testing"
	"time"

	"chargepulse/internal/models"
)

func TestCompareComputesBothPopulationsIndependently(t *testing.T) {
	all := []models.Session{
		completeSession("dirty", day(9, 0), 120, 10, 90),
		completeSession("clean", day(10, 0), 60, 20, 70),
		completeSession("clean", day(11, 0), 30, 30, 60),
	}
	clean := all[1:]

	cmp := Compare(all, clean, time.UTC)

	if len(cmp.Summary) != 2 {
		t.Fatalf("expected duration and charge summaries, got %d", len(cmp.Summary))
	}
	duration := cmp.Summary[0]
	if duration.Metric != MetricDuration {
		t.Fatalf("first summary should be duration, got %s", duration.Metric)
	}
	if duration.All.Count != 3 || duration.Clean.Count != 2 {
		t.Fatalf("unexpected population sizes: all=%d clean=%d", duration.All.Count, duration.Clean.Count)
	}
	if duration.All.Mean == nil || *duration.All.Mean != 70 {
		t.Fatalf("all-population mean = %v, want 70", duration.All.Mean)
	}
	if duration.Clean.Mean == nil || *duration.Clean.Mean != 45 {
		t.Fatalf("clean mean must come from the clean population alone, got %v", duration.Clean.Mean)
	}

	if len(cmp.Hourly) != 24 {
		t.Fatalf("hourly pairs must be dense, got %d", len(cmp.Hourly))
	}
	if cmp.Hourly[9].All != 1 || cmp.Hourly[9].Clean != 0 {
		t.Fatalf("unexpected hour-9 pair: %+v", cmp.Hourly[9])
	}

	if len(cmp.DurationBuckets) != 8 {
		t.Fatalf("expected 8 duration bucket pairs, got %d", len(cmp.DurationBuckets))
	}
}

func TestCompareChargeSummaryFiltersNegativeGains(t *testing.T) {
	all := []models.Session{
		completeSession("u1", day(9, 0), 60, 50, 40), // -10 gain, excluded
		completeSession("u1", day(10, 0), 60, 20, 60),
	}

	cmp := Compare(all, nil, time.UTC)
	charge := cmp.Summary[1]
	if charge.Metric != MetricCharge {
		t.Fatalf("second summary should be charge, got %s", charge.Metric)
	}
	if charge.All.Count != 1 {
		t.Fatalf("negative gains must not enter the charge summary, count=%d", charge.All.Count)
	}
	if charge.All.Mean == nil || *charge.All.Mean != 40 {
		t.Fatalf("unexpected charge mean: %v", charge.All.Mean)
	}
	if charge.Clean.Count != 0 || charge.Clean.Mean != nil {
		t.Fatalf("empty clean population must yield zero count and nil stats")
	}
}
