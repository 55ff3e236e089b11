package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE TABLE IF NOT EXISTS availability_slots (
	id           TEXT        NOT NULL,
	user_id      TEXT        NOT NULL,
	position     INTEGER     NOT NULL DEFAULT 0,
	start_time   TIMESTAMPTZ NOT NULL,
	end_time     TIMESTAMPTZ NOT NULL,
	display_hint TEXT,
	PRIMARY KEY (user_id, id),
	CHECK (start_time < end_time)
);

CREATE TABLE IF NOT EXISTS meetings (
	id          TEXT        NOT NULL,
	user_id     TEXT        NOT NULL,
	title       TEXT,
	description TEXT,
	start_time  TIMESTAMPTZ NOT NULL,
	end_time    TIMESTAMPTZ NOT NULL,
	status      TEXT        NOT NULL CHECK (status IN ('requested', 'confirmed', 'declined')),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (user_id, id),
	CHECK (start_time < end_time)
);

CREATE TABLE IF NOT EXISTS event_logs (
	id         BIGSERIAL   PRIMARY KEY,
	event_type TEXT        NOT NULL,
	user_id    TEXT        NOT NULL,
	subject_id TEXT        NOT NULL,
	payload    JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// EnsureSchema creates the seed and event log tables if they are missing.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
