package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgSeedSource loads a user's initial slots and meetings from Postgres.
type PgSeedSource struct {
	pool *pgxpool.Pool
}

func NewPgSeedSource(pool *pgxpool.Pool) *PgSeedSource {
	return &PgSeedSource{pool: pool}
}

// Helpers

func scanSlot(row pgx.Row) (AvailabilitySlot, error) {
	var s AvailabilitySlot
	var hint *string

	err := row.Scan(
		&s.ID,
		&s.Start,
		&s.End,
		&hint,
	)
	if err != nil {
		return AvailabilitySlot{}, err
	}

	if hint != nil {
		s.DisplayHint = *hint
	}
	return s, nil
}

func scanMeeting(row pgx.Row) (Meeting, error) {
	var m Meeting
	var title, description *string

	err := row.Scan(
		&m.ID,
		&title,
		&description,
		&m.Start,
		&m.End,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return Meeting{}, err
	}

	if title != nil {
		m.Title = *title
	}
	if description != nil {
		m.Description = *description
	}
	return m, nil
}

func (r *PgSeedSource) Load(ctx context.Context, userID string) (Seed, error) {
	slots, err := r.loadSlots(ctx, userID)
	if err != nil {
		return Seed{}, err
	}
	meetings, err := r.loadMeetings(ctx, userID)
	if err != nil {
		return Seed{}, err
	}
	return Seed{Availability: slots, Meetings: meetings}, nil
}

func (r *PgSeedSource) loadSlots(ctx context.Context, userID string) ([]AvailabilitySlot, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, start_time, end_time, display_hint
		FROM availability_slots
		WHERE user_id = $1
		ORDER BY position, start_time
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query availability slots: %w", err)
	}
	defer rows.Close()

	var result []AvailabilitySlot
	for rows.Next() {
		s, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan availability slot: %w", err)
		}
		result = append(result, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgSeedSource) loadMeetings(ctx context.Context, userID string) ([]Meeting, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, start_time, end_time, status, created_at, updated_at
		FROM meetings
		WHERE user_id = $1
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("query meetings: %w", err)
	}
	defer rows.Close()

	var result []Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, fmt.Errorf("scan meeting: %w", err)
		}
		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// PgJournal appends every lifecycle event to the event_logs table.
type PgJournal struct {
	pool *pgxpool.Pool
}

func NewPgJournal(pool *pgxpool.Pool) *PgJournal {
	return &PgJournal{pool: pool}
}

func (j *PgJournal) HandleEvent(ctx context.Context, ev Event) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event payload: %w", err)
	}

	_, err = j.pool.Exec(ctx, `
		INSERT INTO event_logs (event_type, user_id, subject_id, payload, created_at)
		VALUES ($1, $2, $3, $4, COALESCE($5, now()))
	`, string(ev.Type), ev.UserID, ev.SubjectID(), payload, nullableTime(ev.OccurredAt))
	if err != nil {
		return fmt.Errorf("insert event log: %w", err)
	}

	return nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
