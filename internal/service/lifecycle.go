package service

import (
	"context"
	"log/slog"
	"math"
	"time"

	"zonewatch/internal/config"
	"zonewatch/internal/domain"
	"zonewatch/internal/geo"
	"zonewatch/internal/metrics"
	"zonewatch/internal/telemetry"
)

type lifecycleEngine struct {
	reports   ReportStore
	zones     ZoneStore
	clusterer Clusterer
	events    ZoneEventPublisher
	cache     ZoneCache
	cfg       config.EngineConfig
	logger    *slog.Logger
	now       func() time.Time
}

func NewLifecycleEngine(
	reports ReportStore,
	zones ZoneStore,
	clusterer Clusterer,
	events ZoneEventPublisher,
	cache ZoneCache,
	cfg config.EngineConfig,
	logger *slog.Logger,
	opts ...Option,
) ZoneLifecycle {
	o := buildOptions(opts)
	if clusterer == nil {
		clusterer = geo.Local{}
	}
	if events == nil {
		events = NoopPublisher()
	}
	if cache == nil {
		cache = NoopCache()
	}
	return &lifecycleEngine{
		reports:   reports,
		zones:     zones,
		clusterer: clusterer,
		events:    events,
		cache:     cache,
		cfg:       cfg,
		logger:    logger,
		now:       o.now,
	}
}

// Tick runs reopen, confirmation/TTL close, cluster-and-create, incident
// closure and inactivity expiry, in that order, each against fresh store
// state. The first failing step aborts the tick; what already committed stays.
func (l *lifecycleEngine) Tick(ctx context.Context) (summary domain.TickSummary, err error) {
	const op = "service.Lifecycle.Tick"

	ctx, span := telemetry.StartTickSpan(ctx)
	started := time.Now()
	defer func() {
		telemetry.EndTickSpan(span, summary.Reopened, summary.Closed, summary.Created, err)
		metrics.TickDuration.Observe(float64(time.Since(started).Milliseconds()))
	}()

	now := l.now().UTC()
	summary = domain.TickSummary{ClosedBy: map[domain.CloseReason]int{}}
	tracked := l.cfg.TrackedKinds()
	if len(tracked) == 0 {
		return summary, nil
	}

	steps := []struct {
		name string
		run  func(context.Context, []domain.Kind, time.Time, *domain.TickSummary) error
	}{
		{"reopen", l.reopen},
		{"close_confirmed_ttl", l.closeConfirmedOrExpired},
		{"cluster_create", l.clusterAndCreate},
		{"incident_close", l.closeClearedIncidents},
		{"inactivity_expiry", l.expireInactive},
	}
	for _, step := range steps {
		if err := step.run(ctx, tracked, now, &summary); err != nil {
			l.logger.Error("tick step failed", slog.String("op", op), slog.String("step", step.name), slog.Any("error", err))
			return summary, err
		}
	}

	if summary.Changed() {
		l.logger.Info("tick applied",
			slog.Int("reopened", summary.Reopened),
			slog.Int("closed", summary.Closed),
			slog.Int("created", summary.Created))
	} else {
		l.logger.Debug("tick no-op")
	}
	return summary, nil
}

func (l *lifecycleEngine) listReports(ctx context.Context, f domain.ReportFilter) ([]domain.Report, error) {
	sctx, cancel := storeCtx(ctx, l.cfg.StoreTimeout)
	defer cancel()
	return l.reports.List(sctx, f)
}

func (l *lifecycleEngine) listZones(ctx context.Context, f domain.ZoneFilter) ([]domain.Zone, error) {
	sctx, cancel := storeCtx(ctx, l.cfg.StoreTimeout)
	defer cancel()
	return l.zones.List(sctx, f)
}

func (l *lifecycleEngine) close(ctx context.Context, z domain.Zone, reason domain.CloseReason, now time.Time, summary *domain.TickSummary) error {
	sctx, cancel := storeCtx(ctx, l.cfg.StoreTimeout)
	defer cancel()

	ok, err := l.zones.Close(sctx, z.ID, now)
	if err != nil {
		return err
	}
	if !ok {
		// closed concurrently, usually by an owner restore
		return nil
	}
	summary.Closed++
	summary.ClosedBy[reason]++
	l.logger.Info("zone closed",
		slog.String("zone_id", z.ID.String()),
		slog.String("kind", string(z.Kind)),
		slog.String("reason", string(reason)))
	z.State = domain.RestoredState(now)
	notifyTransition(sctx, l.events, l.cache, l.logger, z, domain.TransitionClosed, reason, now)
	return nil
}

func byKind(reports []domain.Report) map[domain.Kind][]domain.Report {
	out := make(map[domain.Kind][]domain.Report)
	for _, r := range reports {
		out[r.Kind] = append(out[r.Kind], r)
	}
	return out
}

func (l *lifecycleEngine) reopen(ctx context.Context, kinds []domain.Kind, now time.Time, summary *domain.TickSummary) error {
	cuts, err := l.listReports(ctx, domain.ReportFilter{
		Kinds:  kinds,
		Signal: domain.SignalCut,
		Since:  now.Add(-l.cfg.ReopenWindow),
	})
	if err != nil {
		return err
	}
	if len(cuts) == 0 {
		return nil
	}

	for kind, kindCuts := range byKind(cuts) {
		restored, err := l.listZones(ctx, domain.ZoneFilter{Kinds: []domain.Kind{kind}, Status: domain.ZoneRestored})
		if err != nil {
			return err
		}
		for _, z := range restored {
			restoredAt, _ := z.State.RestoredAt()
			reach := math.Min(z.RadiusM, l.cfg.MergeDistanceM)
			if !hasCutAfter(kindCuts, z.Center, reach, reopenFloor(restoredAt, now, l.cfg.Policy(kind).MaxInactivity)) {
				continue
			}

			sctx, cancel := storeCtx(ctx, l.cfg.StoreTimeout)
			ok, err := l.zones.Reopen(sctx, z.ID, restoredAt, now, l.cfg.MergeDistanceM)
			if err != nil {
				cancel()
				return err
			}
			if ok {
				summary.Reopened++
				l.logger.Info("zone reopened", slog.String("zone_id", z.ID.String()), slog.String("kind", string(z.Kind)))
				z.State, z.OpenedAt = domain.ActiveState(), now
				notifyTransition(sctx, l.events, l.cache, l.logger, z, domain.TransitionReopened, "", now)
			}
			cancel()
		}
	}
	return nil
}

// reopenFloor is the time a reopening cut must be newer than. A cut older
// than the inactivity limit would only reopen a zone for the same tick to
// expire it again.
func reopenFloor(restoredAt, now time.Time, maxInactivity time.Duration) time.Time {
	if maxInactivity <= 0 {
		return restoredAt
	}
	if floor := now.Add(-maxInactivity); floor.After(restoredAt) {
		return floor
	}
	return restoredAt
}

func hasCutAfter(cuts []domain.Report, center domain.Point, reach float64, after time.Time) bool {
	for _, c := range cuts {
		if c.CreatedAt.After(after) && geo.Distance(c.Location, center) <= reach {
			return true
		}
	}
	return false
}

func (l *lifecycleEngine) closeConfirmedOrExpired(ctx context.Context, kinds []domain.Kind, now time.Time, summary *domain.TickSummary) error {
	active, err := l.listZones(ctx, domain.ZoneFilter{Kinds: kinds, Status: domain.ZoneActive})
	if err != nil {
		return err
	}

	for _, z := range active {
		age := now.Sub(z.OpenedAt)
		if age > l.cfg.Policy(z.Kind).TTL {
			if err := l.close(ctx, z, domain.CloseTTL, now, summary); err != nil {
				return err
			}
			continue
		}
		if age < l.cfg.MinLifetime {
			continue
		}

		restores, err := l.listReports(ctx, domain.ReportFilter{
			Kinds:  []domain.Kind{z.Kind},
			Signal: domain.SignalRestored,
			Since:  z.OpenedAt,
			Near:   &domain.Circle{Center: z.Center, RadiusM: z.RadiusM},
		})
		if err != nil {
			return err
		}
		if distinctReporters(restores) >= l.cfg.ConfirmRestores {
			if err := l.close(ctx, z, domain.CloseConfirmed, now, summary); err != nil {
				return err
			}
		}
	}
	return nil
}

// distinctReporters counts unique reporter ids; anonymous reports count one each.
func distinctReporters(reports []domain.Report) int {
	seen := make(map[string]struct{}, len(reports))
	anonymous := 0
	for _, r := range reports {
		if r.ReporterID == "" {
			anonymous++
			continue
		}
		seen[r.ReporterID] = struct{}{}
	}
	return len(seen) + anonymous
}

func (l *lifecycleEngine) clusterAndCreate(ctx context.Context, kinds []domain.Kind, now time.Time, summary *domain.TickSummary) error {
	cuts, err := l.listReports(ctx, domain.ReportFilter{
		Kinds:  kinds,
		Signal: domain.SignalCut,
		Since:  now.Add(-l.cfg.ClusterWindow),
	})
	if err != nil {
		return err
	}
	if len(cuts) == 0 {
		return nil
	}

	guard := domain.CreateGuard{
		MergeDistanceM: l.cfg.MergeDistanceM,
		CooldownSince:  now.Add(-l.cfg.CreateCooldown),
	}

	grouped := byKind(cuts)
	for _, kind := range kinds {
		kindCuts := grouped[kind]
		if len(kindCuts) < l.cfg.MinPoints {
			continue
		}

		zones, err := l.listZones(ctx, domain.ZoneFilter{Kinds: []domain.Kind{kind}})
		if err != nil {
			return err
		}
		fresh := unconsumed(kindCuts, zones, l.cfg.MergeDistanceM)
		if len(fresh) < l.cfg.MinPoints {
			continue
		}

		points := make([]domain.Point, len(fresh))
		for i, r := range fresh {
			points[i] = r.Location
		}
		labels, err := l.cluster(ctx, points)
		if err != nil {
			return err
		}

		for _, members := range geo.Group(labels) {
			if len(members) < l.cfg.MinPoints {
				continue
			}
			pts := make([]domain.Point, len(members))
			for i, m := range members {
				pts[i] = points[m]
			}
			center := geo.Centroid(pts)
			if blocked(zones, center, guard) {
				continue
			}

			candidate := domain.Zone{
				Kind:      kind,
				Center:    center,
				RadiusM:   l.cfg.DefaultRadiusM,
				StartedAt: now,
				OpenedAt:  now,
			}
			sctx, cancel := storeCtx(ctx, l.cfg.StoreTimeout)
			z, created, err := l.zones.CreateIfAbsent(sctx, candidate, guard)
			if err != nil {
				cancel()
				return err
			}
			if created {
				summary.Created++
				zones = append(zones, z)
				l.logger.Info("zone created",
					slog.String("zone_id", z.ID.String()),
					slog.String("kind", string(kind)),
					slog.Int("reports", len(members)))
				notifyTransition(sctx, l.events, l.cache, l.logger, z, domain.TransitionCreated, "", now)
			}
			cancel()
		}
	}
	return nil
}

func (l *lifecycleEngine) cluster(ctx context.Context, points []domain.Point) ([]int, error) {
	sctx, cancel := storeCtx(ctx, l.cfg.StoreTimeout)
	defer cancel()
	return l.clusterer.Cluster(sctx, points, l.cfg.ClusterEpsM, l.cfg.MinPoints)
}

// unconsumed drops cuts already accounted for by a close: those filed before
// the restored_at of a restored zone of the kind within merge distance.
func unconsumed(cuts []domain.Report, zones []domain.Zone, mergeDistanceM float64) []domain.Report {
	out := make([]domain.Report, 0, len(cuts))
	for _, c := range cuts {
		consumed := false
		for _, z := range zones {
			at, restored := z.State.RestoredAt()
			if restored && c.CreatedAt.Before(at) && geo.Distance(c.Location, z.Center) <= mergeDistanceM {
				consumed = true
				break
			}
		}
		if !consumed {
			out = append(out, c)
		}
	}
	return out
}

// blocked mirrors the store-side guards so steady-state ticks skip the insert.
func blocked(zones []domain.Zone, center domain.Point, g domain.CreateGuard) bool {
	for _, z := range zones {
		if geo.Distance(z.Center, center) > g.MergeDistanceM {
			continue
		}
		if z.State.IsActive() {
			return true
		}
		if at, _ := z.State.RestoredAt(); !at.Before(g.CooldownSince) {
			return true
		}
	}
	return false
}

// lastSupportingCut is the newest cut of the zone kind within
// radius*SupportFactor, looking back to the cluster window before creation.
func (l *lifecycleEngine) lastSupportingCut(ctx context.Context, z domain.Zone) (time.Time, bool, error) {
	cuts, err := l.listReports(ctx, domain.ReportFilter{
		Kinds:  []domain.Kind{z.Kind},
		Signal: domain.SignalCut,
		Since:  z.StartedAt.Add(-l.cfg.ClusterWindow),
		Near:   &domain.Circle{Center: z.Center, RadiusM: z.RadiusM * l.cfg.SupportFactor},
	})
	if err != nil {
		return time.Time{}, false, err
	}
	var last time.Time
	for _, c := range cuts {
		if c.CreatedAt.After(last) {
			last = c.CreatedAt
		}
	}
	return last, !last.IsZero(), nil
}

func (l *lifecycleEngine) closeClearedIncidents(ctx context.Context, kinds []domain.Kind, now time.Time, summary *domain.TickSummary) error {
	incident := make([]domain.Kind, 0, len(kinds))
	for _, k := range kinds {
		if l.cfg.Policy(k).Incident {
			incident = append(incident, k)
		}
	}
	if len(incident) == 0 {
		return nil
	}

	active, err := l.listZones(ctx, domain.ZoneFilter{Kinds: incident, Status: domain.ZoneActive})
	if err != nil {
		return err
	}

	for _, z := range active {
		last, ok, err := l.lastSupportingCut(ctx, z)
		if err != nil {
			return err
		}
		if !ok || now.Sub(last) <= l.cfg.Policy(z.Kind).IncidentGrace {
			continue
		}

		restores, err := l.listReports(ctx, domain.ReportFilter{
			Kinds:  []domain.Kind{z.Kind},
			Signal: domain.SignalRestored,
			Since:  last.Add(time.Microsecond),
			Near:   &domain.Circle{Center: z.Center, RadiusM: z.RadiusM},
			Limit:  1,
		})
		if err != nil {
			return err
		}
		if len(restores) > 0 {
			if err := l.close(ctx, z, domain.CloseIncidentClear, now, summary); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *lifecycleEngine) expireInactive(ctx context.Context, kinds []domain.Kind, now time.Time, summary *domain.TickSummary) error {
	active, err := l.listZones(ctx, domain.ZoneFilter{Kinds: kinds, Status: domain.ZoneActive})
	if err != nil {
		return err
	}

	for _, z := range active {
		last, ok, err := l.lastSupportingCut(ctx, z)
		if err != nil {
			return err
		}
		if !ok {
			last = z.OpenedAt
		}
		if now.Sub(last) > l.cfg.Policy(z.Kind).MaxInactivity {
			if err := l.close(ctx, z, domain.CloseInactive, now, summary); err != nil {
				return err
			}
		}
	}
	return nil
}
