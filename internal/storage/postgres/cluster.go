package postgres

import (
	"context"
	"log/slog"
	"math"

	"zonewatch/internal/domain"
	"zonewatch/internal/geo"
	"zonewatch/pkg/e"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ClusterRepo runs DBSCAN inside PostGIS over caller-supplied points.
type ClusterRepo struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewClusterRepo(pool *pgxpool.Pool, logger *slog.Logger) *ClusterRepo {
	return &ClusterRepo{pool: pool, logger: logger}
}

// Cluster labels points in input order. Points are projected to web mercator,
// so eps is stretched by 1/cos(lat) at the mean latitude of the batch.
func (p *ClusterRepo) Cluster(ctx context.Context, points []domain.Point, epsM float64, minPts int) ([]int, error) {
	const op = "postgres.Cluster.DBSCAN"

	if len(points) == 0 {
		return []int{}, nil
	}

	lngs := make([]float64, len(points))
	lats := make([]float64, len(points))
	var meanLat float64
	for i, pt := range points {
		lngs[i], lats[i] = pt.Lng, pt.Lat
		meanLat += pt.Lat
	}
	meanLat /= float64(len(points))
	eps := epsM / math.Cos(meanLat*math.Pi/180)

	const query = `
WITH pts AS (
	SELECT t.ord, ST_Transform(ST_SetSRID(ST_MakePoint(t.lng, t.lat), 4326), 3857) AS g
	  FROM unnest($1::float8[], $2::float8[]) WITH ORDINALITY AS t(lng, lat, ord)
)
SELECT ord, ST_ClusterDBSCAN(g, $3::float8, $4::int) OVER () AS cid
  FROM pts
 ORDER BY ord
`

	rows, err := p.pool.Query(ctx, query, lngs, lats, eps, minPts)
	if err != nil {
		p.logger.Error("db query failed", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	defer rows.Close()

	labels := make([]int, len(points))
	for rows.Next() {
		var (
			ord int64
			cid *int32
		)
		if err := rows.Scan(&ord, &cid); err != nil {
			p.logger.Error("row scan failed", slog.String("op", op), slog.Any("error", err))
			return nil, e.WrapError(ctx, op, err)
		}
		if ord < 1 || int(ord) > len(points) {
			continue
		}
		if cid == nil {
			labels[ord-1] = geo.Noise
		} else {
			labels[ord-1] = int(*cid)
		}
	}
	if err := rows.Err(); err != nil {
		p.logger.Error("rows err", slog.String("op", op), slog.Any("error", err))
		return nil, e.WrapError(ctx, op, err)
	}
	return labels, nil
}
