package service

import (
	"context"

	"go.uber.org/zap"

	"chargepulse/internal/models"
	"chargepulse/internal/profile"
	"chargepulse/internal/recon"
	"chargepulse/internal/repository"
)

// RebuildReport summarizes one full dataset rebuild.
type RebuildReport struct {
	Dataset         repository.Dataset `json:"dataset"`
	Users           int                `json:"users"`
	FailedUsers     int                `json:"failed_users"`
	Sessions        int                `json:"sessions"`
	Profiles        int                `json:"profiles"`
	MalformedEvents int                `json:"malformed_events"`
}

// LoaderService regenerates sessions and profiles from the raw event store.
// The rebuild is idempotent: identical events always produce identical
// sessions and profiles.
type LoaderService struct {
	events   *repository.EventRepository
	sessions *repository.SessionRepository
	profiles *repository.ProfileRepository
	logger   *zap.Logger
}

// NewLoaderService builds service.
func NewLoaderService(
	events *repository.EventRepository,
	sessions *repository.SessionRepository,
	profiles *repository.ProfileRepository,
	logger *zap.Logger,
) *LoaderService {
	return &LoaderService{
		events:   events,
		sessions: sessions,
		profiles: profiles,
		logger:   logger,
	}
}

// Rebuild runs the three sequential phases over one dataset: truncate
// sessions, reconstruct per user, recompute profiles. A failure for one
// user is logged and skipped; it never aborts the rest of the batch.
func (l *LoaderService) Rebuild(ctx context.Context, ds repository.Dataset) (*RebuildReport, error) {
	report := &RebuildReport{Dataset: ds}

	if err := l.sessions.DeleteAll(ctx, ds); err != nil {
		return nil, err
	}

	userIDs, err := l.events.ListUserIDs(ctx, ds)
	if err != nil {
		return nil, err
	}
	report.Users = len(userIDs)

	var profiles []*models.UserProfile
	for _, userID := range userIDs {
		p, sessionCount, malformed, err := l.rebuildUser(ctx, ds, userID)
		report.MalformedEvents += malformed
		if err != nil {
			report.FailedUsers++
			l.logger.Error("user rebuild failed",
				zap.String("dataset", string(ds)),
				zap.String("user_id", userID),
				zap.Error(err),
			)
			continue
		}
		report.Sessions += sessionCount
		if p != nil {
			profiles = append(profiles, p)
		}
	}

	if err := l.profiles.DeleteAll(ctx, ds); err != nil {
		return nil, err
	}
	if err := l.profiles.InsertBatch(ctx, ds, profiles); err != nil {
		return nil, err
	}
	report.Profiles = len(profiles)

	l.logger.Info("rebuild complete",
		zap.String("dataset", string(ds)),
		zap.Int("users", report.Users),
		zap.Int("failed_users", report.FailedUsers),
		zap.Int("sessions", report.Sessions),
		zap.Int("profiles", report.Profiles),
		zap.Int("malformed_events", report.MalformedEvents),
	)
	return report, nil
}

func (l *LoaderService) rebuildUser(ctx context.Context, ds repository.Dataset, userID string) (*models.UserProfile, int, int, error) {
	raw, err := l.events.ListEventsByUser(ctx, ds, userID)
	if err != nil {
		return nil, 0, 0, err
	}

	events := make([]models.ChargingEvent, 0, len(raw))
	malformed := 0
	for _, ev := range raw {
		if err := ev.Validate(); err != nil {
			malformed++
			l.logger.Warn("malformed event skipped",
				zap.String("user_id", userID),
				zap.Int64("event_id", ev.ID),
				zap.Error(err),
			)
			continue
		}
		events = append(events, ev)
	}

	sessions := recon.Reconstruct(events)
	if err := l.sessions.InsertBatch(ctx, ds, sessions); err != nil {
		return nil, 0, malformed, err
	}

	return profile.Compute(userID, events, sessions), len(sessions), malformed, nil
}
