package repository

import (
	"context"
	"database/sql"
	"fmt"

	"chargepulse/internal/models"
)

// EventRepository reads the append-only raw event store.
type EventRepository struct {
	db *sql.DB
}

// NewEventRepository returns repository.
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// ListUserIDs returns the distinct subjects present in a dataset.
func (r *EventRepository) ListUserIDs(ctx context.Context, ds Dataset) ([]string, error) {
	tables, err := tablesFor(ds)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT DISTINCT user_id
		FROM %s
		ORDER BY user_id
	`, tables.events)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ids, nil
}

// ListEventsByUser returns one user's events fully ordered by
// (event_timestamp, id), the order session reconstruction requires.
func (r *EventRepository) ListEventsByUser(ctx context.Context, ds Dataset, userID string) ([]models.ChargingEvent, error) {
	tables, err := tablesFor(ds)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT id, user_id, COALESCE(group_id, ''), event_type, percentage, event_timestamp
		FROM %s
		WHERE user_id = $1
		ORDER BY event_timestamp, id
	`, tables.events)

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []models.ChargingEvent
	for rows.Next() {
		var ev models.ChargingEvent
		if err := rows.Scan(
			&ev.ID,
			&ev.UserID,
			&ev.GroupID,
			&ev.Type,
			&ev.Percentage,
			&ev.Timestamp,
		); err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
