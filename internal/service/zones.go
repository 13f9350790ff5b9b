package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"zonewatch/internal/config"
	"zonewatch/internal/domain"
	"zonewatch/internal/metrics"
	"zonewatch/pkg/e"
)

const (
	DefaultGlobalLimit = 2000
	MaxGlobalLimit     = 5000
)

type zoneReader struct {
	reports ReportStore
	zones   ZoneStore
	alerts  AlertDetector
	cache   ZoneCache
	cfg     config.EngineConfig
	logger  *slog.Logger
	now     func() time.Time
}

func NewZoneReader(
	reports ReportStore,
	zones ZoneStore,
	alerts AlertDetector,
	cache ZoneCache,
	cfg config.EngineConfig,
	logger *slog.Logger,
	opts ...Option,
) ZoneReader {
	o := buildOptions(opts)
	if cache == nil {
		cache = NoopCache()
	}
	return &zoneReader{
		reports: reports,
		zones:   zones,
		alerts:  alerts,
		cache:   cache,
		cfg:     cfg,
		logger:  logger,
		now:     o.now,
	}
}

func kindFilter(k *domain.Kind) ([]domain.Kind, error) {
	if k == nil {
		return nil, nil
	}
	if !k.Valid() {
		return nil, e.InvalidField("kind", "unknown kind")
	}
	return []domain.Kind{*k}, nil
}

// QueryZones returns zones whose disc intersects the query circle, newest first.
func (s *zoneReader) QueryZones(ctx context.Context, q domain.ZoneQuery) ([]domain.Zone, error) {
	const op = "service.Zones.Query"

	if !q.Center.Valid() {
		return nil, e.InvalidField("lat", "coordinates out of range")
	}
	if !(q.RadiusM > 0) || math.IsInf(q.RadiusM, 0) {
		return nil, e.InvalidField("radius_m", "must be positive")
	}
	kinds, err := kindFilter(q.Kind)
	if err != nil {
		return nil, err
	}

	sctx, cancel := storeCtx(ctx, s.cfg.StoreTimeout)
	defer cancel()

	zones, err := s.zones.List(sctx, domain.ZoneFilter{
		Kinds: kinds,
		Near:  &domain.Circle{Center: q.Center, RadiusM: q.RadiusM},
	})
	if err != nil {
		s.logger.Error("zone query failed", slog.String("op", op), slog.Any("error", err))
		return nil, err
	}
	return zones, nil
}

func globalKey(q domain.GlobalZoneQuery) string {
	kind := "all"
	if q.Kind != nil {
		kind = string(*q.Kind)
	}
	return fmt.Sprintf("kind=%s|active=%t|limit=%d", kind, q.ActiveOnly, q.Limit)
}

// ListZones is the global view. It is served from the zone cache when possible.
func (s *zoneReader) ListZones(ctx context.Context, q domain.GlobalZoneQuery) ([]domain.Zone, error) {
	const op = "service.Zones.List"

	kinds, err := kindFilter(q.Kind)
	if err != nil {
		return nil, err
	}
	switch {
	case q.Limit <= 0:
		q.Limit = DefaultGlobalLimit
	case q.Limit > MaxGlobalLimit:
		q.Limit = MaxGlobalLimit
	}
	key := globalKey(q)

	if cached, ok, err := s.cache.Get(ctx, key); err != nil {
		metrics.ZoneCacheLookups.WithLabelValues("error").Inc()
		s.logger.Warn("zone cache read failed", slog.String("op", op), slog.Any("error", err))
	} else if ok {
		metrics.ZoneCacheLookups.WithLabelValues("hit").Inc()
		return cached, nil
	} else {
		metrics.ZoneCacheLookups.WithLabelValues("miss").Inc()
	}

	f := domain.ZoneFilter{Kinds: kinds, Limit: q.Limit}
	if q.ActiveOnly {
		f.Status = domain.ZoneActive
	}

	sctx, cancel := storeCtx(ctx, s.cfg.StoreTimeout)
	defer cancel()

	zones, err := s.zones.List(sctx, f)
	if err != nil {
		s.logger.Error("global zone list failed", slog.String("op", op), slog.Any("error", err))
		return nil, err
	}

	if err := s.cache.Set(ctx, key, zones); err != nil {
		s.logger.Warn("zone cache write failed", slog.String("op", op), slog.Any("error", err))
	}
	return zones, nil
}

// Map assembles zones, alert zones and recent cuts around a point. The global
// variant returns active zones only.
func (s *zoneReader) Map(ctx context.Context, q domain.MapQuery) (domain.MapView, error) {
	const op = "service.Zones.Map"

	now := s.now().UTC()
	if q.Global {
		zones, err := s.ListZones(ctx, domain.GlobalZoneQuery{Kind: q.Kind, ActiveOnly: true})
		if err != nil {
			return domain.MapView{}, err
		}
		return domain.MapView{Zones: zones, AlertZones: []domain.AlertZone{}, LastReports: []domain.Report{}, ServerNow: now}, nil
	}

	zones, err := s.QueryZones(ctx, domain.ZoneQuery{Kind: q.Kind, Center: q.Center, RadiusM: q.RadiusM})
	if err != nil {
		return domain.MapView{}, err
	}

	alerts, err := s.alerts.DetectAlertZones(ctx, domain.AlertQuery{Kind: q.Kind, Center: q.Center, RadiusM: q.RadiusM})
	if err != nil {
		return domain.MapView{}, err
	}

	kinds, _ := kindFilter(q.Kind)
	sctx, cancel := storeCtx(ctx, s.cfg.StoreTimeout)
	defer cancel()
	recent, err := s.reports.List(sctx, domain.ReportFilter{
		Kinds:       kinds,
		Signal:      domain.SignalCut,
		Since:       now.Add(-s.cfg.Map.PointsWindow),
		Near:        &domain.Circle{Center: q.Center, RadiusM: q.RadiusM},
		Limit:       s.cfg.Map.MaxReports,
		NewestFirst: true,
	})
	if err != nil {
		s.logger.Error("recent reports failed", slog.String("op", op), slog.Any("error", err))
		return domain.MapView{}, err
	}

	return domain.MapView{Zones: zones, AlertZones: alerts, LastReports: recent, ServerNow: now}, nil
}
