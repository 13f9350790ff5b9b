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

type ReportRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewReportRepo(pool *pgxpool.Pool, logger *slog.Logger) *ReportRepo {
	return &ReportRepo{pool: pool, logger: logger}
}

const reportColumns = `id, kind, signal, ST_Y(geom::geometry), ST_X(geom::geometry), created_at, COALESCE(reporter_id, ''), COALESCE(idempotency_key, '')`

func scanReport(row pgx.Row) (domain.Report, error) {
	var r domain.Report
	err := row.Scan(&r.ID, &r.Kind, &r.Signal, &r.Location.Lat, &r.Location.Lng, &r.CreatedAt, &r.ReporterID, &r.IdempotencyKey)
	return r, err
}

func (p *ReportRepo) Insert(ctx context.Context, r domain.Report) (domain.Report, bool, error) {
	const op = "postgres.Report.Insert"

	if !r.Kind.Valid() || !r.Signal.Valid() || !r.Location.Valid() {
		return domain.Report{}, false, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	r.CreatedAt = pgTime(r.CreatedAt)

	query := `
INSERT INTO reports (id, kind, signal, geom, created_at, reporter_id, idempotency_key)
VALUES ($1::uuid, $2::text, $3::text, ` + point(4, 5) + `, $6::timestamptz, NULLIF($7::text, ''), NULLIF($8::text, ''))
ON CONFLICT (idempotency_key) WHERE idempotency_key IS NOT NULL DO NOTHING
`

	tag, err := p.pool.Exec(ctx, query,
		r.ID,
		string(r.Kind),
		string(r.Signal),
		r.Location.Lng,
		r.Location.Lat,
		r.CreatedAt,
		r.ReporterID,
		r.IdempotencyKey,
	)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return domain.Report{}, false, e.WrapError(ctx, op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Report{}, false, nil
	}
	return r, true, nil
}

func (p *ReportRepo) FindByIdempotencyKey(ctx context.Context, key string) (domain.Report, error) {
	const op = "postgres.Report.FindByIdempotencyKey"

	query := `SELECT ` + reportColumns + ` FROM reports WHERE idempotency_key = $1`

	r, err := scanReport(p.pool.QueryRow(ctx, query, key))
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		}
		return domain.Report{}, e.WrapError(ctx, op, err)
	}
	return r, nil
}

func (p *ReportRepo) HasOwnedCut(ctx context.Context, kind domain.Kind, reporterID string, near domain.Circle, since time.Time) (bool, error) {
	const op = "postgres.Report.HasOwnedCut"

	query := `
SELECT EXISTS (
	SELECT 1 FROM reports
	 WHERE kind = $1 AND signal = 'cut' AND reporter_id = $2 AND created_at >= $3
	   AND ST_DWithin(geom, ` + point(4, 5) + `, $6)
)`

	var ok bool
	err := p.pool.QueryRow(ctx, query, string(kind), reporterID, pgTime(since), near.Center.Lng, near.Center.Lat, near.RadiusM).Scan(&ok)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return false, e.WrapError(ctx, op, err)
	}
	return ok, nil
}

func (p *ReportRepo) List(ctx context.Context, f domain.ReportFilter) ([]domain.Report, error) {
	const op = "postgres.Report.List"

	var w where
	if len(f.Kinds) > 0 {
		w.add("kind = ANY($%d::text[])", kindStrings(f.Kinds))
	}
	if f.Signal != "" {
		w.add("signal = $%d", string(f.Signal))
	}
	if !f.Since.IsZero() {
		w.add("created_at >= $%d", pgTime(f.Since))
	}
	if f.Near != nil {
		lng, lat, r := w.arg(f.Near.Center.Lng), w.arg(f.Near.Center.Lat), w.arg(f.Near.RadiusM)
		w.addRaw(fmt.Sprintf("ST_DWithin(geom, %s, $%d)", point(lng, lat), r))
	}

	order := ` ORDER BY created_at, id`
	if f.NewestFirst {
		order = ` ORDER BY created_at DESC, id`
	}
	query := `SELECT ` + reportColumns + ` FROM reports ` + w.String() + order
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", w.arg(f.Limit))
	}

	rows, err := p.pool.Query(ctx, query, w.args...)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	out := make([]domain.Report, 0, 32)
	for rows.Next() {
		r, err := scanReport(rows)
		if err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return out, nil
}
