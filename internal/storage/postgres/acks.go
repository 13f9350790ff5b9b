package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"zonewatch/internal/domain"
	"zonewatch/pkg/e"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AckRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewAckRepo(pool *pgxpool.Pool, logger *slog.Logger) *AckRepo {
	return &AckRepo{pool: pool, logger: logger}
}

func (p *AckRepo) Insert(ctx context.Context, a domain.Acknowledgment) (domain.Acknowledgment, error) {
	const op = "postgres.Ack.Insert"

	if !a.Kind.Valid() || !a.Location.Valid() {
		return domain.Acknowledgment{}, fmt.Errorf("%s: %w", op, e.ErrInvalidInput)
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	a.CreatedAt = pgTime(a.CreatedAt)

	query := `
INSERT INTO acknowledgments (id, kind, geom, created_at, actor)
VALUES ($1::uuid, $2::text, ` + point(3, 4) + `, $5::timestamptz, NULLIF($6::text, ''))
`

	_, err := p.pool.Exec(ctx, query, a.ID, string(a.Kind), a.Location.Lng, a.Location.Lat, a.CreatedAt, a.Actor)
	if err != nil {
		p.logger.Error("db exec failed", slog.String("op", op), slog.Any("error", err))
		return domain.Acknowledgment{}, e.WrapError(ctx, op, err)
	}
	return a, nil
}

func (p *AckRepo) ExistsNear(ctx context.Context, kind domain.Kind, near domain.Circle, since time.Time) (bool, error) {
	const op = "postgres.Ack.ExistsNear"

	query := `
SELECT EXISTS (
	SELECT 1 FROM acknowledgments
	 WHERE kind = $1
	   AND ($5::timestamptz IS NULL OR created_at >= $5::timestamptz)
	   AND ST_DWithin(geom, ` + point(2, 3) + `, $4)
)`

	var ok bool
	err := p.pool.QueryRow(ctx, query, string(kind), near.Center.Lng, near.Center.Lat, near.RadiusM, nullTime(since)).Scan(&ok)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return false, e.WrapError(ctx, op, err)
	}
	return ok, nil
}
