package service

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"time"

	"zonewatch/internal/config"
	"zonewatch/internal/domain"
	"zonewatch/internal/geo"
	"zonewatch/internal/metrics"
	"zonewatch/internal/telemetry"
	"zonewatch/pkg/e"
)

type alertDetector struct {
	reports   ReportStore
	acks      AckStore
	clusterer Clusterer
	cfg       config.EngineConfig
	logger    *slog.Logger
	now       func() time.Time
}

func NewAlertDetector(
	reports ReportStore,
	acks AckStore,
	clusterer Clusterer,
	cfg config.EngineConfig,
	logger *slog.Logger,
	opts ...Option,
) AlertDetector {
	o := buildOptions(opts)
	if clusterer == nil {
		clusterer = geo.Local{}
	}
	return &alertDetector{
		reports:   reports,
		acks:      acks,
		clusterer: clusterer,
		cfg:       cfg,
		logger:    logger,
		now:       o.now,
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// normalize fills unset parameters from the configured defaults.
func (d *alertDetector) normalize(q domain.AlertQuery) (domain.AlertQuery, error) {
	if !q.Center.Valid() {
		return q, e.InvalidField("lat", "coordinates out of range")
	}
	if q.Kind != nil && !q.Kind.Valid() {
		return q, e.InvalidField("kind", "unknown kind")
	}
	if !finite(q.RadiusM, q.GroupRadiusM) {
		return q, e.InvalidField("radius_m", "must be a finite number")
	}
	if q.RadiusM < 0 || q.Window < 0 || q.GroupRadiusM < 0 || q.AckWindow < 0 {
		return q, e.InvalidField("radius_m", "must not be negative")
	}
	if q.RadiusM == 0 {
		q.RadiusM = d.cfg.Alert.RadiusM
	}
	if q.Window == 0 {
		q.Window = d.cfg.Alert.Window
	}
	if q.GroupRadiusM == 0 {
		q.GroupRadiusM = d.cfg.Alert.GroupRadiusM
	}
	if q.MinCount == 0 {
		q.MinCount = d.cfg.Alert.MinCount
	}
	if q.MinCount < 2 {
		return q, e.InvalidField("min_count", "must be at least 2")
	}
	return q, nil
}

func (d *alertDetector) DetectAlertZones(ctx context.Context, q domain.AlertQuery) (out []domain.AlertZone, err error) {
	const op = "service.Alerts.Detect"

	q, err = d.normalize(q)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.StartAlertSpan(ctx, q.RadiusM, q.MinCount)
	defer func() { telemetry.End(span, err) }()

	kinds := domain.Kinds
	if q.Kind != nil {
		kinds = []domain.Kind{*q.Kind}
	}
	now := d.now().UTC()

	sctx, cancel := storeCtx(ctx, d.cfg.StoreTimeout)
	cuts, err := d.reports.List(sctx, domain.ReportFilter{
		Kinds:  kinds,
		Signal: domain.SignalCut,
		Since:  now.Add(-q.Window),
		Near:   &domain.Circle{Center: q.Center, RadiusM: q.RadiusM},
	})
	cancel()
	if err != nil {
		d.logger.Error("alert report scan failed", slog.String("op", op), slog.Any("error", err))
		return nil, err
	}

	var ackSince time.Time
	if q.AckWindow > 0 {
		ackSince = now.Add(-q.AckWindow)
	}

	grouped := byKind(cuts)
	out = make([]domain.AlertZone, 0)
	for _, kind := range kinds {
		kindCuts := grouped[kind]
		if len(kindCuts) < q.MinCount {
			continue
		}
		points := make([]domain.Point, len(kindCuts))
		for i, r := range kindCuts {
			points[i] = r.Location
		}

		sctx, cancel := storeCtx(ctx, d.cfg.StoreTimeout)
		labels, err := d.clusterer.Cluster(sctx, points, q.GroupRadiusM, q.MinCount)
		cancel()
		if err != nil {
			d.logger.Error("alert clustering failed", slog.String("op", op), slog.Any("error", err))
			return nil, err
		}

		for _, members := range geo.Group(labels) {
			if len(members) < q.MinCount {
				continue
			}
			pts := make([]domain.Point, len(members))
			for i, m := range members {
				pts[i] = points[m]
			}
			center := geo.Centroid(pts)

			sctx, cancel := storeCtx(ctx, d.cfg.StoreTimeout)
			acked, err := d.acks.ExistsNear(sctx, kind, domain.Circle{Center: center, RadiusM: q.GroupRadiusM}, ackSince)
			cancel()
			if err != nil {
				d.logger.Error("ack lookup failed", slog.String("op", op), slog.Any("error", err))
				return nil, err
			}
			if acked {
				continue
			}
			out = append(out, domain.AlertZone{
				Kind:    kind,
				Center:  center,
				Count:   len(members),
				RadiusM: q.GroupRadiusM,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Count > out[j].Count
	})

	metrics.AlertZonesReturned.Observe(float64(len(out)))
	d.logger.Debug("alert zones detected", slog.Int("count", len(out)), slog.Int("reports", len(cuts)))
	return out, nil
}
