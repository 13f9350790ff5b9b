package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"zonewatch/internal/config"
	"zonewatch/internal/domain"
	"zonewatch/internal/metrics"
	"zonewatch/internal/telemetry"
	"zonewatch/pkg/e"
	"zonewatch/pkg/validator"
)

type reportService struct {
	reports ReportStore
	zones   ZoneStore
	events  ZoneEventPublisher
	cache   ZoneCache
	cfg     config.EngineConfig
	logger  *slog.Logger
	now     func() time.Time
}

func NewReportService(
	reports ReportStore,
	zones ZoneStore,
	events ZoneEventPublisher,
	cache ZoneCache,
	cfg config.EngineConfig,
	logger *slog.Logger,
	opts ...Option,
) ReportIngestor {
	o := buildOptions(opts)
	if events == nil {
		events = NoopPublisher()
	}
	if cache == nil {
		cache = NoopCache()
	}
	return &reportService{
		reports: reports,
		zones:   zones,
		events:  events,
		cache:   cache,
		cfg:     cfg,
		logger:  logger,
		now:     o.now,
	}
}

func validateReport(req domain.ReportRequest) error {
	if err := validator.ValidateStruct(req); err != nil {
		return err
	}
	if !req.Kind.Valid() {
		return e.InvalidField("kind", "unknown kind")
	}
	return nil
}

func (s *reportService) Ingest(ctx context.Context, req domain.ReportRequest) (res domain.IngestResult, err error) {
	const op = "service.Report.Ingest"

	ctx, span := telemetry.StartIngestSpan(ctx, string(req.Kind), string(req.Signal))
	defer func() { telemetry.End(span, err) }()

	// Labels stay fixed until the request validates; client strings must not
	// mint series.
	kind, signal, outcome := "invalid", "invalid", "error"
	defer func() {
		metrics.ReportsIngested.WithLabelValues(kind, signal, outcome).Inc()
	}()

	if err := validateReport(req); err != nil {
		outcome = "invalid"
		s.logger.Warn("report rejected", slog.String("op", op), slog.Any("error", err))
		return domain.IngestResult{}, err
	}
	kind, signal = string(req.Kind), string(req.Signal)

	if req.IdempotencyKey != "" {
		existing, found, err := s.findByKey(ctx, req.IdempotencyKey)
		if err != nil {
			return domain.IngestResult{}, err
		}
		if found {
			outcome = "duplicate"
			s.logger.Debug("duplicate report", slog.String("op", op), slog.String("id", existing.ID.String()))
			return domain.IngestResult{ID: existing.ID, Duplicate: true}, nil
		}
	}

	now := s.now().UTC()
	caller := domain.CallerFrom(ctx)
	location := domain.Point{Lat: req.Lat, Lng: req.Lng}

	if req.Signal == domain.SignalRestored && !caller.IsStaff() {
		if err := s.checkOwnership(ctx, req, location, now); err != nil {
			if errors.Is(err, e.ErrNotOwner) {
				outcome = "not_owner"
			}
			return domain.IngestResult{}, err
		}
	}

	report := domain.Report{
		Kind:           req.Kind,
		Signal:         req.Signal,
		Location:       location,
		CreatedAt:      now,
		ReporterID:     req.ReporterID,
		IdempotencyKey: req.IdempotencyKey,
	}

	sctx, cancel := storeCtx(ctx, s.cfg.StoreTimeout)
	stored, inserted, err := s.reports.Insert(sctx, report)
	cancel()
	if err != nil {
		s.logger.Error("report insert failed", slog.String("op", op), slog.Any("error", err))
		return domain.IngestResult{}, err
	}

	if !inserted {
		// Lost an idempotency race; the winner is already committed.
		winner, found, err := s.findByKey(ctx, req.IdempotencyKey)
		if err != nil {
			return domain.IngestResult{}, err
		}
		if !found {
			return domain.IngestResult{}, fmt.Errorf("%s: idempotency key %q: %w", op, req.IdempotencyKey, e.ErrConflict)
		}
		outcome = "duplicate"
		return domain.IngestResult{ID: winner.ID, Duplicate: true}, nil
	}

	outcome = "accepted"
	res = domain.IngestResult{ID: stored.ID}

	if stored.Signal == domain.SignalRestored && s.cfg.Tracked(stored.Kind) {
		if zone, ok := s.closeNearest(ctx, stored); ok {
			id := zone.ID
			res.ClosedZoneID = &id
		}
	}

	s.logger.Info("report accepted",
		slog.String("id", stored.ID.String()),
		slog.String("kind", string(stored.Kind)),
		slog.String("signal", string(stored.Signal)),
		slog.String("role", string(caller.Role)),
	)
	return res, nil
}

func (s *reportService) findByKey(ctx context.Context, key string) (domain.Report, bool, error) {
	sctx, cancel := storeCtx(ctx, s.cfg.StoreTimeout)
	defer cancel()

	r, err := s.reports.FindByIdempotencyKey(sctx, key)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return domain.Report{}, false, nil
		}
		s.logger.Error("idempotency lookup failed", slog.Any("error", err))
		return domain.Report{}, false, err
	}
	return r, true, nil
}

func (s *reportService) checkOwnership(ctx context.Context, req domain.ReportRequest, at domain.Point, now time.Time) error {
	const op = "service.Report.checkOwnership"

	if req.ReporterID == "" {
		return fmt.Errorf("%s: restore without reporter id: %w", op, e.ErrNotOwner)
	}

	sctx, cancel := storeCtx(ctx, s.cfg.StoreTimeout)
	defer cancel()

	near := domain.Circle{Center: at, RadiusM: s.cfg.OwnershipRadiusM}
	owned, err := s.reports.HasOwnedCut(sctx, req.Kind, req.ReporterID, near, now.Add(-s.cfg.OwnershipWindow))
	if err != nil {
		s.logger.Error("ownership lookup failed", slog.String("op", op), slog.Any("error", err))
		return err
	}
	if !owned {
		s.logger.Info("restore denied", slog.String("reporter_id", req.ReporterID), slog.String("kind", string(req.Kind)))
		return fmt.Errorf("%s: %w", op, e.ErrNotOwner)
	}
	return nil
}

// closeNearest runs after the report is committed. Failures are logged only;
// the caller disconnecting does not abort it.
func (s *reportService) closeNearest(ctx context.Context, r domain.Report) (domain.Zone, bool) {
	const op = "service.Report.closeNearest"

	sctx, cancel := storeCtx(context.WithoutCancel(ctx), s.cfg.StoreTimeout)
	defer cancel()

	near := domain.Circle{Center: r.Location, RadiusM: s.cfg.RestoreMatchRadiusM}
	zone, ok, err := s.zones.CloseNearest(sctx, r.Kind, near, r.CreatedAt)
	if err != nil {
		s.logger.Error("restore side effect failed", slog.String("op", op), slog.String("report_id", r.ID.String()), slog.Any("error", err))
		return domain.Zone{}, false
	}
	if !ok {
		return domain.Zone{}, false
	}

	s.logger.Info("zone closed by restore", slog.String("zone_id", zone.ID.String()), slog.String("kind", string(zone.Kind)))
	notifyTransition(sctx, s.events, s.cache, s.logger, zone, domain.TransitionClosed, domain.CloseOwnerRestore, r.CreatedAt)
	return zone, true
}

// notifyTransition records metrics, publishes the event and drops cached
// listings. Publish and cache failures are logged.
func notifyTransition(ctx context.Context, events ZoneEventPublisher, cache ZoneCache, logger *slog.Logger, z domain.Zone, t domain.Transition, reason domain.CloseReason, at time.Time) {
	metrics.ZoneTransitions.WithLabelValues(string(z.Kind), string(t), string(reason)).Inc()

	ev := domain.ZoneEvent{
		ZoneID:     z.ID,
		Kind:       z.Kind,
		Transition: t,
		Reason:     reason,
		Center:     z.Center,
		RadiusM:    z.RadiusM,
		At:         at,
	}
	if err := events.Publish(ctx, ev); err != nil {
		logger.Error("zone event publish failed", slog.String("zone_id", z.ID.String()), slog.Any("error", err))
	}
	if err := cache.Invalidate(ctx); err != nil {
		logger.Warn("zone cache invalidate failed", slog.Any("error", err))
	}
}
