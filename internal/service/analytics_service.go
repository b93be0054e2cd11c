package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"chargepulse/internal/carbon"
	"chargepulse/internal/models"
	redisstore "chargepulse/internal/redis"
	"chargepulse/internal/repository"
	"chargepulse/internal/stats"
)

// Cohort selects the session population an aggregate runs over.
type Cohort string

// Known cohorts.
const (
	CohortAll   Cohort = "all"
	CohortClean Cohort = "clean"
)

// ParseCohort validates a request parameter, defaulting to all.
func ParseCohort(raw string) (Cohort, error) {
	switch raw {
	case "", string(CohortAll):
		return CohortAll, nil
	case string(CohortClean):
		return CohortClean, nil
	default:
		return "", fmt.Errorf("unknown cohort %q", raw)
	}
}

// CarbonReport is the carbon endpoint's payload: totals, everyday
// equivalents and the linear annual extrapolation (nil when fleet usage is
// unknown).
type CarbonReport struct {
	carbon.Summary
	Equivalents       carbon.Equivalents `json:"equivalents"`
	ProjectedAnnualKg *float64           `json:"projected_annual_kg"`
}

// AnalyticsService runs read-time aggregations over stored sessions and
// profiles. All operations are read-only and safe to run concurrently.
type AnalyticsService struct {
	sessions *repository.SessionRepository
	profiles *repository.ProfileRepository
	cache    *redisstore.Cache
	loc      *time.Location
	logger   *zap.Logger
}

// NewAnalyticsService builds service. A nil cache disables caching.
func NewAnalyticsService(
	sessions *repository.SessionRepository,
	profiles *repository.ProfileRepository,
	cache *redisstore.Cache,
	loc *time.Location,
	logger *zap.Logger,
) *AnalyticsService {
	if loc == nil {
		loc = time.UTC
	}
	return &AnalyticsService{
		sessions: sessions,
		profiles: profiles,
		cache:    cache,
		loc:      loc,
		logger:   logger,
	}
}

// Distribution returns the fixed-bucket histogram for a metric.
func (s *AnalyticsService) Distribution(ctx context.Context, ds repository.Dataset, metric stats.Metric, cohort Cohort) ([]stats.Bucket, error) {
	key := fmt.Sprintf("distribution:%s:%s:%s", ds, metric, cohort)
	return cached(ctx, s, key, func() ([]stats.Bucket, error) {
		sessions, err := s.loadCohort(ctx, ds, cohort)
		if err != nil {
			return nil, err
		}
		return stats.Distribution(sessions, metric), nil
	})
}

// BoxPlot returns the percentile summary for a metric, nil when the cohort
// holds no measurable sessions.
func (s *AnalyticsService) BoxPlot(ctx context.Context, ds repository.Dataset, metric stats.Metric, cohort Cohort) (*stats.BoxPlotSummary, error) {
	key := fmt.Sprintf("boxplot:%s:%s:%s", ds, metric, cohort)
	return cached(ctx, s, key, func() (*stats.BoxPlotSummary, error) {
		sessions, err := s.loadCohort(ctx, ds, cohort)
		if err != nil {
			return nil, err
		}
		return stats.BoxPlot(stats.MetricValues(sessions, metric), stats.MetricDomain(metric)), nil
	})
}

// CDF returns the empirical distribution curve for a metric, nil when the
// cohort holds no measurable sessions.
func (s *AnalyticsService) CDF(ctx context.Context, ds repository.Dataset, metric stats.Metric, cohort Cohort) ([]stats.CDFPoint, error) {
	key := fmt.Sprintf("cdf:%s:%s:%s", ds, metric, cohort)
	return cached(ctx, s, key, func() ([]stats.CDFPoint, error) {
		sessions, err := s.loadCohort(ctx, ds, cohort)
		if err != nil {
			return nil, err
		}
		return stats.CDF(stats.MetricValues(sessions, metric)), nil
	})
}

// TimePatterns returns the dense hourly/daily/heatmap grids.
func (s *AnalyticsService) TimePatterns(ctx context.Context, ds repository.Dataset, cohort Cohort) (stats.TimePatterns, error) {
	key := fmt.Sprintf("time-patterns:%s:%s", ds, cohort)
	return cached(ctx, s, key, func() (stats.TimePatterns, error) {
		sessions, err := s.loadCohort(ctx, ds, cohort)
		if err != nil {
			return stats.TimePatterns{}, err
		}
		return stats.TimePatternsOf(sessions, s.loc), nil
	})
}

// Comparison contrasts the full population with the clean cohort. Both
// populations are loaded and aggregated independently.
func (s *AnalyticsService) Comparison(ctx context.Context, ds repository.Dataset) (stats.Comparison, error) {
	key := fmt.Sprintf("comparison:%s", ds)
	return cached(ctx, s, key, func() (stats.Comparison, error) {
		all, err := s.sessions.ListAll(ctx, ds)
		if err != nil {
			return stats.Comparison{}, err
		}
		clean, err := s.sessions.ListClean(ctx, ds)
		if err != nil {
			return stats.Comparison{}, err
		}
		return stats.Compare(all, clean, s.loc), nil
	})
}

// GapAnalysis returns between-session gap and drain-rate summaries.
func (s *AnalyticsService) GapAnalysis(ctx context.Context, ds repository.Dataset, cohort Cohort) (stats.GapDrainStats, error) {
	key := fmt.Sprintf("gaps:%s:%s", ds, cohort)
	return cached(ctx, s, key, func() (stats.GapDrainStats, error) {
		sessions, err := s.loadCohort(ctx, ds, cohort)
		if err != nil {
			return stats.GapDrainStats{}, err
		}
		return stats.AnalyzeGaps(sessions), nil
	})
}

// Carbon totals estimated CO2 over the dataset and projects it to a year of
// fleet usage.
func (s *AnalyticsService) Carbon(ctx context.Context, ds repository.Dataset) (CarbonReport, error) {
	key := fmt.Sprintf("carbon:%s", ds)
	return cached(ctx, s, key, func() (CarbonReport, error) {
		sessions, err := s.sessions.ListAll(ctx, ds)
		if err != nil {
			return CarbonReport{}, err
		}
		summary := carbon.Estimate(sessions)

		deviceDays, deviceCount, err := s.profiles.FleetUsage(ctx, ds)
		if err != nil {
			return CarbonReport{}, err
		}

		return CarbonReport{
			Summary:           summary,
			Equivalents:       carbon.ToEquivalents(summary.TotalCO2Kg),
			ProjectedAnnualKg: carbon.ProjectedAnnualKg(summary.TotalCO2Kg, deviceDays, deviceCount),
		}, nil
	})
}

// UserProfile returns one user's rollup.
func (s *AnalyticsService) UserProfile(ctx context.Context, ds repository.Dataset, userID string) (*models.UserProfile, error) {
	return s.profiles.GetByUser(ctx, ds, userID)
}

// AnomalousUsers returns profiles tripping the strict mismatch flag.
func (s *AnalyticsService) AnomalousUsers(ctx context.Context, ds repository.Dataset) ([]*models.UserProfile, error) {
	return s.profiles.ListAnomalous(ctx, ds)
}

func (s *AnalyticsService) loadCohort(ctx context.Context, ds repository.Dataset, cohort Cohort) ([]models.Session, error) {
	if cohort == CohortClean {
		return s.sessions.ListClean(ctx, ds)
	}
	return s.sessions.ListAll(ctx, ds)
}

// cached runs compute behind the redis cache. Cache failures degrade to a
// recompute with a warning; they never fail the request.
func cached[T any](ctx context.Context, s *AnalyticsService, key string, compute func() (T, error)) (T, error) {
	var zero T
	if s.cache != nil {
		data, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			s.logger.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		case data != nil:
			var out T
			if err := json.Unmarshal(data, &out); err == nil {
				return out, nil
			}
		}
	}

	result, err := compute()
	if err != nil {
		return zero, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.cache.Save(ctx, key, data); err != nil {
				s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return result, nil
}
