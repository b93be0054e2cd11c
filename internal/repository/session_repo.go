package repository

import (
	"context"
	"database/sql"
	"fmt"

	"chargepulse/internal/models"
	"chargepulse/internal/profile"
)

// SessionRepository persists and reads reconstructed sessions.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository returns repository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// DeleteAll clears a dataset's session table. Phase one of a rebuild.
func (r *SessionRepository) DeleteAll(ctx context.Context, ds Dataset) error {
	tables, err := tablesFor(ds)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, fmt.Sprintf(`TRUNCATE %s`, tables.sessions))
	return err
}

// InsertBatch writes one user's reconstructed sessions in a single
// transaction so a partial write never survives a failed rebuild step.
func (r *SessionRepository) InsertBatch(ctx context.Context, ds Dataset, sessions []models.Session) error {
	if len(sessions) == 0 {
		return nil
	}
	tables, err := tablesFor(ds)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, connect_time, disconnect_time, duration_minutes, start_percentage, end_percentage, charge_gained, is_complete)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, tables.sessions)

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

	for _, s := range sessions {
		if _, err := stmt.ExecContext(ctx,
			s.UserID,
			s.ConnectTime,
			s.DisconnectTime,
			s.DurationMinutes,
			s.StartPercentage,
			s.EndPercentage,
			s.ChargeGained,
			s.IsComplete,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// ListAll returns every session in a dataset.
func (r *SessionRepository) ListAll(ctx context.Context, ds Dataset) ([]models.Session, error) {
	tables, err := tablesFor(ds)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT id, user_id, connect_time, disconnect_time, duration_minutes, start_percentage, end_percentage, charge_gained, is_complete
		FROM %s
		ORDER BY user_id, connect_time
	`, tables.sessions)
	return r.querySessions(ctx, query)
}

// ListClean returns sessions belonging to clean-cohort users only. The
// cohort is decided by the profile mismatch limit, not the strict anomaly
// flag.
func (r *SessionRepository) ListClean(ctx context.Context, ds Dataset) ([]models.Session, error) {
	tables, err := tablesFor(ds)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT s.id, s.user_id, s.connect_time, s.disconnect_time, s.duration_minutes, s.start_percentage, s.end_percentage, s.charge_gained, s.is_complete
		FROM %s s
		JOIN %s p ON p.user_id = s.user_id
		WHERE p.event_mismatch <= $1
		ORDER BY s.user_id, s.connect_time
	`, tables.sessions, tables.profiles)
	return r.querySessions(ctx, query, profile.CleanCohortMismatchLimit)
}

func (r *SessionRepository) querySessions(ctx context.Context, query string, args ...interface{}) ([]models.Session, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.Session
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.ConnectTime,
			&s.DisconnectTime,
			&s.DurationMinutes,
			&s.StartPercentage,
			&s.EndPercentage,
			&s.ChargeGained,
			&s.IsComplete,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}
