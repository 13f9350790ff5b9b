package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"zonewatch/internal/domain"
	"zonewatch/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ZoneRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewZoneRepo(pool *pgxpool.Pool, logger *slog.Logger) *ZoneRepo {
	return &ZoneRepo{pool: pool, logger: logger}
}

// lockKind serializes zone creation and reopen per kind until the transaction ends.
func lockKind(ctx context.Context, tx pgx.Tx, kind domain.Kind) error {
	_, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('zones:' || $1::text))`, string(kind))
	return err
}

// List returns matching zones newest first. Near keeps zones whose disc
// intersects the query circle.
func (p *ZoneRepo) List(ctx context.Context, f domain.ZoneFilter) ([]domain.Zone, error) {
	const op = "postgres.Zone.List"

	var w where
	if len(f.Kinds) > 0 {
		w.add("kind = ANY($%d::text[])", kindStrings(f.Kinds))
	}
	if f.Status != "" {
		w.add("status = $%d", string(f.Status))
	}
	if f.Near != nil {
		lng, lat, r := w.arg(f.Near.Center.Lng), w.arg(f.Near.Center.Lat), w.arg(f.Near.RadiusM)
		w.addRaw(fmt.Sprintf("ST_DWithin(center, %s, $%d::float8 + radius_m)", point(lng, lat), r))
	}

	query := `SELECT ` + zoneColumns + ` FROM zones ` + w.String() + ` ORDER BY started_at DESC, id`
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", w.arg(f.Limit))
	}

	rows, err := p.pool.Query(ctx, query, w.args...)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]domain.Zone, 0, 16)
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		out = append(out, z)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}

// CreateIfAbsent inserts an active zone unless an active zone of the kind lies
// within merge distance or a restored one closed since g.CooldownSince does.
func (p *ZoneRepo) CreateIfAbsent(ctx context.Context, z domain.Zone, g domain.CreateGuard) (domain.Zone, bool, error) {
	const op = "postgres.Zone.CreateIfAbsent"

	if !z.Kind.Valid() || !z.Center.Valid() || z.RadiusM <= 0 {
		return domain.Zone{}, false, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}
	if z.ID == uuid.Nil {
		z.ID = uuid.New()
	}
	if z.StartedAt.IsZero() {
		z.StartedAt = time.Now()
	}
	if z.OpenedAt.IsZero() {
		z.OpenedAt = z.StartedAt
	}
	z.StartedAt, z.OpenedAt = pgTime(z.StartedAt), pgTime(z.OpenedAt)
	z.State = domain.ActiveState()

	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		p.logger.Error("begin tx failed", slog.String("op", op), slog.Any("error", err))
		return domain.Zone{}, false, e.WrapError(ctx, op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := lockKind(ctx, tx, z.Kind); err != nil {
		p.logger.Error("advisory lock failed", slog.String("op", op), slog.Any("error", err))
		return domain.Zone{}, false, e.WrapError(ctx, op, err)
	}

	query := `
INSERT INTO zones (id, kind, center, radius_m, status, started_at, opened_at)
SELECT $1::uuid, $2::text, ` + point(3, 4) + `, $5::float8, 'active', $6::timestamptz, $7::timestamptz
 WHERE NOT EXISTS (
	SELECT 1 FROM zones o
	 WHERE o.kind = $2::text AND o.status = 'active'
	   AND ST_DWithin(o.center, ` + point(3, 4) + `, $8::float8)
 )
   AND NOT EXISTS (
	SELECT 1 FROM zones o
	 WHERE o.kind = $2::text AND o.status = 'restored'
	   AND $9::timestamptz IS NOT NULL AND o.restored_at >= $9::timestamptz
	   AND ST_DWithin(o.center, ` + point(3, 4) + `, $8::float8)
 )
`

	tag, err := tx.Exec(ctx, query,
		z.ID,
		string(z.Kind),
		z.Center.Lng,
		z.Center.Lat,
		z.RadiusM,
		z.StartedAt,
		z.OpenedAt,
		g.MergeDistanceM,
		nullTime(g.CooldownSince),
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return domain.Zone{}, false, e.WrapError(ctx, op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Zone{}, false, nil
	}

	if err := tx.Commit(ctx); err != nil {
		p.logger.Error("commit failed", slog.String("op", op), slog.Any("error", err))
		return domain.Zone{}, false, e.WrapError(ctx, op, err)
	}
	return z, true, nil
}

func (p *ZoneRepo) Close(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	const op = "postgres.Zone.Close"

	const query = `
UPDATE zones SET status = 'restored', restored_at = $2
 WHERE id = $1 AND status = 'active'
`

	tag, err := p.pool.Exec(ctx, query, id, pgTime(at))
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("zone_id", id.String()))
		return false, e.WrapError(ctx, op, err)
	}
	return tag.RowsAffected() == 1, nil
}

// CloseNearest restores the nearest active zone of kind whose center lies in
// near. Rows locked by a concurrent closer are skipped.
func (p *ZoneRepo) CloseNearest(ctx context.Context, kind domain.Kind, near domain.Circle, at time.Time) (domain.Zone, bool, error) {
	const op = "postgres.Zone.CloseNearest"

	query := `
WITH cand AS (
	SELECT id FROM zones
	 WHERE kind = $1 AND status = 'active'
	   AND ST_DWithin(center, ` + point(2, 3) + `, $4)
	 ORDER BY ST_Distance(center, ` + point(2, 3) + `), id
	 LIMIT 1
	 FOR UPDATE SKIP LOCKED
)
UPDATE zones z SET status = 'restored', restored_at = $5
  FROM cand
 WHERE z.id = cand.id AND z.status = 'active'
RETURNING ` + zoneColumnsOf("z")

	zone, err := scanZone(p.pool.QueryRow(ctx, query, string(kind), near.Center.Lng, near.Center.Lat, near.RadiusM, pgTime(at)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Zone{}, false, nil
		}
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return domain.Zone{}, false, e.WrapError(ctx, op, err)
	}
	return zone, true, nil
}

// Reopen reactivates a zone still restored at restoredAt, provided no other
// active zone of its kind lies within mergeDistanceM.
func (p *ZoneRepo) Reopen(ctx context.Context, id uuid.UUID, restoredAt, at time.Time, mergeDistanceM float64) (bool, error) {
	const op = "postgres.Zone.Reopen"

	tx, err := p.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		p.logger.Error("begin tx failed", slog.String("op", op), slog.Any("error", err))
		return false, e.WrapError(ctx, op, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var kind domain.Kind
	if err := tx.QueryRow(ctx, `SELECT kind FROM zones WHERE id = $1`, id).Scan(&kind); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return false, e.WrapError(ctx, op, err)
	}
	if err := lockKind(ctx, tx, kind); err != nil {
		p.logger.Error("advisory lock failed", slog.String("op", op), slog.Any("error", err))
		return false, e.WrapError(ctx, op, err)
	}

	const query = `
UPDATE zones z SET status = 'active', restored_at = NULL, opened_at = $3
 WHERE z.id = $1 AND z.status = 'restored' AND z.restored_at = $2
   AND NOT EXISTS (
	SELECT 1 FROM zones o
	 WHERE o.kind = z.kind AND o.status = 'active' AND o.id <> z.id
	   AND ST_DWithin(o.center, z.center, $4)
   )
`

	tag, err := tx.Exec(ctx, query, id, pgTime(restoredAt), pgTime(at), mergeDistanceM)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err), slog.String("zone_id", id.String()))
		return false, e.WrapError(ctx, op, err)
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}
	if err := tx.Commit(ctx); err != nil {
		p.logger.Error("commit failed", slog.String("op", op), slog.Any("error", err))
		return false, e.WrapError(ctx, op, err)
	}
	return true, nil
}
