package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// PGStore persists progress events in Postgres. Event ids are assigned per
// deal inside the insert; a deal is only ever written by the single worker
// running its pipeline, so the per-deal sequence stays gap-free.
type PGStore struct {
	DB *sql.DB
}

// Append stores the event and returns its per-deal id.
func (s *PGStore) Append(ctx context.Context, dealID string, event Event) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	payload := []byte("null")
	if event.Payload != nil {
		raw, err := json.Marshal(event.Payload)
		if err != nil {
			return 0, fmt.Errorf("marshal event payload: %w", err)
		}
		payload = raw
	}

	createdAt := event.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	const query = `
INSERT INTO deal_events (deal_id, event_id, type, stage, message, payload, created_at)
VALUES ($1, (SELECT COALESCE(MAX(event_id), 0) + 1 FROM deal_events WHERE deal_id = $1), $2, $3, $4, $5, $6)
RETURNING event_id`

	var id int
	err := s.DB.QueryRowContext(ctx, query,
		dealID,
		event.Type,
		event.Stage,
		event.Message,
		payload,
		createdAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert deal event: %w", err)
	}
	return id, nil
}

// Read returns the events for a deal with id greater than sinceEventID, in
// append order.
func (s *PGStore) Read(ctx context.Context, dealID string, sinceEventID int) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	const query = `
SELECT event_id, type, stage, message, payload, created_at
FROM deal_events
WHERE deal_id = $1 AND event_id > $2
ORDER BY event_id ASC`

	rows, err := s.DB.QueryContext(ctx, query, dealID, sinceEventID)
	if err != nil {
		return nil, fmt.Errorf("query deal events: %w", err)
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var (
			event   Event
			payload sql.NullString
		)
		if err := rows.Scan(&event.ID, &event.Type, &event.Stage, &event.Message, &payload, &event.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan deal event: %w", err)
		}
		event.DealID = dealID
		if payload.Valid && payload.String != "" && payload.String != "null" {
			if err := json.Unmarshal([]byte(payload.String), &event.Payload); err != nil {
				return nil, fmt.Errorf("unmarshal event payload: %w", err)
			}
		}
		out = append(out, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deal events: %w", err)
	}
	return out, nil
}

var _ Store = (*PGStore)(nil)
