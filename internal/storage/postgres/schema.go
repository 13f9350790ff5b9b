package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

const schema = `
CREATE EXTENSION IF NOT EXISTS postgis;

CREATE TABLE IF NOT EXISTS reports (
	id              uuid PRIMARY KEY,
	kind            text NOT NULL,
	signal          text NOT NULL CHECK (signal IN ('cut', 'restored')),
	geom            geography(Point, 4326) NOT NULL,
	created_at      timestamptz NOT NULL,
	reporter_id     text,
	idempotency_key text
);

CREATE UNIQUE INDEX IF NOT EXISTS reports_idempotency_key_uq
	ON reports (idempotency_key) WHERE idempotency_key IS NOT NULL;
CREATE INDEX IF NOT EXISTS reports_geom_gix ON reports USING GIST (geom);
CREATE INDEX IF NOT EXISTS reports_kind_signal_created_idx ON reports (kind, signal, created_at);

CREATE TABLE IF NOT EXISTS zones (
	id          uuid PRIMARY KEY,
	kind        text NOT NULL,
	center      geography(Point, 4326) NOT NULL,
	radius_m    double precision NOT NULL CHECK (radius_m > 0),
	status      text NOT NULL,
	started_at  timestamptz NOT NULL,
	opened_at   timestamptz NOT NULL,
	restored_at timestamptz,
	CONSTRAINT zones_state_chk CHECK (
		(status = 'active' AND restored_at IS NULL) OR
		(status = 'restored' AND restored_at IS NOT NULL)
	)
);

CREATE INDEX IF NOT EXISTS zones_kind_status_idx ON zones (kind, status);
CREATE INDEX IF NOT EXISTS zones_center_gix ON zones USING GIST (center);

CREATE TABLE IF NOT EXISTS acknowledgments (
	id         uuid PRIMARY KEY,
	kind       text NOT NULL,
	geom       geography(Point, 4326) NOT NULL,
	created_at timestamptz NOT NULL,
	actor      text
);

CREATE INDEX IF NOT EXISTS acknowledgments_geom_gix ON acknowledgments USING GIST (geom);
CREATE INDEX IF NOT EXISTS acknowledgments_kind_created_idx ON acknowledgments (kind, created_at);
`

// Migrate creates the schema. Every statement is idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
