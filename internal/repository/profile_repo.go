package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"chargepulse/internal/models"
)

// ErrProfileNotFound indicates no profile row for the requested user.
var ErrProfileNotFound = errors.New("profile not found")

// ProfileRepository persists and reads per-user rollups.
type ProfileRepository struct {
	db *sql.DB
}

// NewProfileRepository returns repository.
func NewProfileRepository(db *sql.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

const profileColumns = `user_id, total_events, connect_count, disconnect_count, event_mismatch, total_sessions, complete_sessions, avg_duration_minutes, avg_charge_gained, avg_connect_percentage, avg_disconnect_percentage, first_event, last_event, is_anomalous`

// DeleteAll clears a dataset's profile table. Run before a bulk rewrite.
func (r *ProfileRepository) DeleteAll(ctx context.Context, ds Dataset) error {
	tables, err := tablesFor(ds)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, fmt.Sprintf(`TRUNCATE %s`, tables.profiles))
	return err
}

// InsertBatch writes recomputed profiles in one transaction.
func (r *ProfileRepository) InsertBatch(ctx context.Context, ds Dataset, profiles []*models.UserProfile) error {
	if len(profiles) == 0 {
		return nil
	}
	tables, err := tablesFor(ds)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, tables.profiles, profileColumns)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, p := range profiles {
		if _, err := stmt.ExecContext(ctx,
			p.UserID,
			p.TotalEvents,
			p.ConnectCount,
			p.DisconnectCount,
			p.EventMismatch,
			p.TotalSessions,
			p.CompleteSessions,
			p.AvgDurationMinutes,
			p.AvgChargeGained,
			p.AvgConnectPercentage,
			p.AvgDisconnectPercentage,
			p.FirstEvent,
			p.LastEvent,
			p.IsAnomalous,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetByUser returns one user's profile.
func (r *ProfileRepository) GetByUser(ctx context.Context, ds Dataset, userID string) (*models.UserProfile, error) {
	tables, err := tablesFor(ds)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
	`, profileColumns, tables.profiles)

	p, err := scanProfile(r.db.QueryRowContext(ctx, query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	return p, err
}

// ListAnomalous returns users tripping the strict mismatch flag.
func (r *ProfileRepository) ListAnomalous(ctx context.Context, ds Dataset) ([]*models.UserProfile, error) {
	tables, err := tablesFor(ds)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE is_anomalous
		ORDER BY event_mismatch DESC, user_id
	`, profileColumns, tables.profiles)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*models.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}

// FleetUsage returns total observed device-days and device count for carbon
// projection.
func (r *ProfileRepository) FleetUsage(ctx context.Context, ds Dataset) (float64, int, error) {
	tables, err := tablesFor(ds)
	if err != nil {
		return 0, 0, err
	}
	query := fmt.Sprintf(`
		SELECT COALESCE(SUM(EXTRACT(EPOCH FROM (last_event - first_event)) / 86400), 0), COUNT(*)
		FROM %s
	`, tables.profiles)

	var deviceDays float64
	var deviceCount int
	if err := r.db.QueryRowContext(ctx, query).Scan(&deviceDays, &deviceCount); err != nil {
		return 0, 0, err
	}
	return deviceDays, deviceCount, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanProfile(row rowScanner) (*models.UserProfile, error) {
	var p models.UserProfile
	if err := row.Scan(
		&p.UserID,
		&p.TotalEvents,
		&p.ConnectCount,
		&p.DisconnectCount,
		&p.EventMismatch,
		&p.TotalSessions,
		&p.CompleteSessions,
		&p.AvgDurationMinutes,
		&p.AvgChargeGained,
		&p.AvgConnectPercentage,
		&p.AvgDisconnectPercentage,
		&p.FirstEvent,
		&p.LastEvent,
		&p.IsAnomalous,
	); err != nil {
		return nil, err
	}
	return &p, nil
}
