package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"zonewatch/internal/config"
	"zonewatch/internal/domain"
	"zonewatch/internal/geo"
	"zonewatch/internal/service"
	"zonewatch/internal/storage/memory"
	"zonewatch/pkg/logger"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func newClock(t time.Time) *clock { return &clock{now: t} }

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	c.now = t
	c.mu.Unlock()
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.ZoneEvent
}

func (p *recordingPublisher) Publish(_ context.Context, ev domain.ZoneEvent) error {
	p.mu.Lock()
	p.events = append(p.events, ev)
	p.mu.Unlock()
	return nil
}

func (p *recordingPublisher) transitions() []domain.Transition {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Transition, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Transition
	}
	return out
}

type harness struct {
	t      *testing.T
	store  *memory.Store
	clock  *clock
	events *recordingPublisher
	engine service.ZoneLifecycle
	ingest service.ReportIngestor
}

var (
	t0   = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	base = domain.Point{Lat: 48.8566, Lng: 2.3522}
)

func newHarness(t *testing.T) *harness {
	t.Helper()
	cfg := config.DefaultEngine()
	h := &harness{
		t:      t,
		store:  memory.New(),
		clock:  newClock(t0),
		events: &recordingPublisher{},
	}
	h.engine = service.NewLifecycleEngine(h.store.Reports(), h.store.Zones(), h.store.Clusterer(), h.events, nil, cfg, logger.Discard(),
		service.WithClock(h.clock.Now))
	h.ingest = service.NewReportService(h.store.Reports(), h.store.Zones(), h.events, nil, cfg, logger.Discard(),
		service.WithClock(h.clock.Now))
	return h
}

func (h *harness) at(d time.Duration) { h.clock.Set(t0.Add(d)) }

func (h *harness) seed(kind domain.Kind, signal domain.Signal, p domain.Point, reporter string, at time.Duration) {
	h.t.Helper()
	_, _, err := h.store.Reports().Insert(context.Background(), domain.Report{
		Kind:       kind,
		Signal:     signal,
		Location:   p,
		CreatedAt:  t0.Add(at),
		ReporterID: reporter,
	})
	if err != nil {
		h.t.Fatalf("seed: %v", err)
	}
}

// seedCluster files three cuts within a few dozen meters of p.
func (h *harness) seedCluster(kind domain.Kind, p domain.Point, at time.Duration) {
	h.seed(kind, domain.SignalCut, p, "u1", at)
	h.seed(kind, domain.SignalCut, geo.Offset(p, 30, 0), "u2", at)
	h.seed(kind, domain.SignalCut, geo.Offset(p, 0, 30), "u3", at)
}

func (h *harness) tick() domain.TickSummary {
	h.t.Helper()
	s, err := h.engine.Tick(context.Background())
	if err != nil {
		h.t.Fatalf("tick: %v", err)
	}
	return s
}

func (h *harness) zones(status domain.ZoneStatus) []domain.Zone {
	h.t.Helper()
	z, err := h.store.Zones().List(context.Background(), domain.ZoneFilter{Status: status})
	if err != nil {
		h.t.Fatalf("list zones: %v", err)
	}
	return z
}

func TestTick_PowerOutageLifecycle(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.seedCluster(domain.KindPower, base, 0)

	h.at(time.Minute)
	if s := h.tick(); s.Created != 1 {
		t.Fatalf("expected one zone created, got %+v", s)
	}
	active := h.zones(domain.ZoneActive)
	if len(active) != 1 {
		t.Fatalf("expected 1 active zone, got %d", len(active))
	}
	zone := active[0]
	if zone.RadiusM != 350 || geo.Distance(zone.Center, base) > 30 {
		t.Fatalf("unexpected zone geometry: %+v", zone)
	}
	if !zone.StartedAt.Equal(t0.Add(time.Minute)) || !zone.OpenedAt.Equal(zone.StartedAt) {
		t.Fatalf("unexpected timestamps: %+v", zone)
	}

	h.at(5 * time.Minute)
	res, err := h.ingest.Ingest(context.Background(), domain.ReportRequest{
		Kind: domain.KindPower, Signal: domain.SignalRestored, Lat: base.Lat, Lng: base.Lng, ReporterID: "u1",
	})
	if err != nil {
		t.Fatalf("restore: %v", err)
	}
	if res.ClosedZoneID == nil || *res.ClosedZoneID != zone.ID {
		t.Fatalf("expected zone %s closed, got %+v", zone.ID, res)
	}

	// Cuts filed before the restore must not recreate the zone.
	h.at(6 * time.Minute)
	if s := h.tick(); s.Changed() {
		t.Fatalf("expected no-op tick after restore, got %+v", s)
	}

	h.seed(domain.KindPower, domain.SignalCut, geo.Offset(base, 20, 20), "u4", 7*time.Minute)
	h.at(8 * time.Minute)
	s := h.tick()
	if s.Reopened != 1 || s.Created != 0 {
		t.Fatalf("expected reopen only, got %+v", s)
	}

	active = h.zones(domain.ZoneActive)
	if len(active) != 1 || active[0].ID != zone.ID {
		t.Fatalf("expected the same zone active again, got %+v", active)
	}
	if !active[0].OpenedAt.Equal(t0.Add(8*time.Minute)) || !active[0].StartedAt.Equal(zone.StartedAt) {
		t.Fatalf("reopen must move opened_at only: %+v", active[0])
	}

	want := []domain.Transition{domain.TransitionCreated, domain.TransitionClosed, domain.TransitionReopened}
	got := h.events.transitions()
	if len(got) != len(want) {
		t.Fatalf("transitions = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("transitions = %v, want %v", got, want)
		}
	}
}

func TestTick_StaleCutDoesNotReopenAfterMissedTicks(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.seedCluster(domain.KindPower, base, 0)
	h.at(time.Minute)
	h.tick()

	h.at(5 * time.Minute)
	if _, err := h.ingest.Ingest(context.Background(), domain.ReportRequest{
		Kind: domain.KindPower, Signal: domain.SignalRestored, Lat: base.Lat, Lng: base.Lng, ReporterID: "u1",
	}); err != nil {
		t.Fatalf("restore: %v", err)
	}
	h.seed(domain.KindPower, domain.SignalCut, geo.Offset(base, 20, 20), "u4", 7*time.Minute)

	// The cut is older than the 45 min inactivity limit by the next tick.
	h.at(70 * time.Minute)
	if s := h.tick(); s.Changed() {
		t.Fatalf("expected no-op catch-up tick, got %+v", s)
	}

	restored := h.zones(domain.ZoneRestored)
	if len(restored) != 1 {
		t.Fatalf("expected the zone to stay restored, got %+v", h.zones(""))
	}
	if at, _ := restored[0].State.RestoredAt(); !at.Equal(t0.Add(5 * time.Minute)) {
		t.Fatalf("restored_at moved to %v", at)
	}
	if got := h.events.transitions(); len(got) != 2 {
		t.Fatalf("transitions = %v, want [created closed]", got)
	}
}

func TestTick_RerunIsNoOp(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.seedCluster(domain.KindWater, base, 0)
	h.at(time.Minute)
	h.tick()

	if s := h.tick(); s.Changed() {
		t.Fatalf("second tick changed state: %+v", s)
	}
	if n := len(h.zones(domain.ZoneActive)); n != 1 {
		t.Fatalf("expected 1 active zone, got %d", n)
	}
}

func TestTick_NoZoneBelowThreshold(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		seed func(h *harness)
	}{
		{"single cut", func(h *harness) {
			h.seed(domain.KindPower, domain.SignalCut, base, "u1", 0)
		}},
		{"cuts too far apart", func(h *harness) {
			h.seed(domain.KindPower, domain.SignalCut, base, "u1", 0)
			h.seed(domain.KindPower, domain.SignalCut, geo.Offset(base, 1000, 0), "u2", 0)
		}},
		{"cuts of different kinds", func(h *harness) {
			h.seed(domain.KindPower, domain.SignalCut, base, "u1", 0)
			h.seed(domain.KindWater, domain.SignalCut, base, "u2", 0)
		}},
		{"cuts outside the window", func(h *harness) {
			h.seedCluster(domain.KindPower, base, -2*time.Hour)
		}},
		{"untracked kind", func(h *harness) {
			h.seedCluster(domain.KindAssault, base, 0)
		}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newHarness(t)
			tt.seed(h)
			h.at(time.Minute)

			if s := h.tick(); s.Created != 0 {
				t.Fatalf("expected no zone, got %+v", s)
			}
			if n := len(h.zones("")); n != 0 {
				t.Fatalf("expected no zones, got %d", n)
			}
		})
	}
}

func TestTick_ConcurrentTicksCreateOneZone(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.seedCluster(domain.KindPower, base, 0)
	h.seedCluster(domain.KindPower, geo.Offset(base, 120, 120), 0)
	h.at(time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := h.engine.Tick(context.Background()); err != nil {
				t.Errorf("tick: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := len(h.zones(domain.ZoneActive)); n != 1 {
		t.Fatalf("expected exactly one active zone, got %d", n)
	}
}

func TestTick_ClosesAfterTTL(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.seedCluster(domain.KindPower, base, 0)
	h.at(time.Minute)
	h.tick()

	h.at(12*time.Hour + 2*time.Minute)
	s := h.tick()
	if s.Closed != 1 || s.ClosedBy[domain.CloseTTL] != 1 {
		t.Fatalf("expected ttl close, got %+v", s)
	}
	if n := len(h.zones(domain.ZoneRestored)); n != 1 {
		t.Fatalf("expected 1 restored zone, got %d", n)
	}
}

func TestTick_ConfirmationByDistinctReporters(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		reporters []string
		closes    bool
	}{
		{"two reporters", []string{"a", "b"}, true},
		{"same reporter twice", []string{"a", "a"}, false},
		{"anonymous count individually", []string{"", ""}, true},
		{"single restore", []string{"a"}, false},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := newHarness(t)

			h.seedCluster(domain.KindWater, base, 0)
			h.at(time.Minute)
			h.tick()

			for _, r := range tt.reporters {
				h.seed(domain.KindWater, domain.SignalRestored, geo.Offset(base, 250, 0), r, 2*time.Minute)
			}

			// Younger than the minimum lifetime.
			h.at(3 * time.Minute)
			if s := h.tick(); s.Closed != 0 {
				t.Fatalf("closed before min lifetime: %+v", s)
			}

			h.at(7 * time.Minute)
			s := h.tick()
			if got := s.ClosedBy[domain.CloseConfirmed] == 1; got != tt.closes {
				t.Fatalf("confirmed close = %v, want %v (%+v)", got, tt.closes, s)
			}
		})
	}
}

func TestTick_IncidentClearedAfterGrace(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.seedCluster(domain.KindTraffic, base, 0)
	h.at(time.Minute)
	h.tick()

	h.seed(domain.KindTraffic, domain.SignalRestored, base, "", 10*time.Minute)

	h.at(15 * time.Minute)
	if s := h.tick(); s.Closed != 0 {
		t.Fatalf("closed inside grace period: %+v", s)
	}

	h.at(21 * time.Minute)
	s := h.tick()
	if s.ClosedBy[domain.CloseIncidentClear] != 1 {
		t.Fatalf("expected incident close, got %+v", s)
	}
}

func TestTick_IncidentWithoutRestoreExpiresOnInactivity(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.seedCluster(domain.KindTraffic, base, 0)
	h.at(time.Minute)
	h.tick()

	h.at(21 * time.Minute)
	if s := h.tick(); s.Closed != 0 {
		t.Fatalf("incident closed without a restore: %+v", s)
	}

	h.at(46 * time.Minute)
	s := h.tick()
	if s.ClosedBy[domain.CloseInactive] != 1 {
		t.Fatalf("expected inactivity close, got %+v", s)
	}
}

func TestTick_FreshCutsKeepZoneAlive(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.seedCluster(domain.KindPower, base, 0)
	h.at(time.Minute)
	h.tick()

	// 400 m is outside the radius but inside radius*SupportFactor.
	h.seed(domain.KindPower, domain.SignalCut, geo.Offset(base, 400, 0), "u9", 40*time.Minute)

	h.at(50 * time.Minute)
	if s := h.tick(); s.Closed != 0 {
		t.Fatalf("supported zone expired: %+v", s)
	}

	h.at(90 * time.Minute)
	if s := h.tick(); s.ClosedBy[domain.CloseInactive] != 1 {
		t.Fatalf("expected inactivity close, got %+v", s)
	}
}

func TestTick_CooldownBlocksNearbyCreation(t *testing.T) {
	t.Parallel()
	h := newHarness(t)

	h.seedCluster(domain.KindPower, base, 0)
	h.at(time.Minute)
	h.tick()

	h.at(5 * time.Minute)
	if _, err := h.ingest.Ingest(context.Background(), domain.ReportRequest{
		Kind: domain.KindPower, Signal: domain.SignalRestored, Lat: base.Lat, Lng: base.Lng, ReporterID: "u2",
	}); err != nil {
		t.Fatalf("restore: %v", err)
	}

	// Out of reopen reach (350 m) but inside merge distance (400 m).
	near := geo.Offset(base, 380, 0)
	h.seedCluster(domain.KindPower, near, 6*time.Minute)

	h.at(7 * time.Minute)
	if s := h.tick(); s.Changed() {
		t.Fatalf("expected cooldown to block, got %+v", s)
	}

	h.at(16 * time.Minute)
	s := h.tick()
	if s.Created != 1 || s.Reopened != 0 {
		t.Fatalf("expected creation after cooldown, got %+v", s)
	}
	if n := len(h.zones("")); n != 2 {
		t.Fatalf("expected 2 zones, got %d", n)
	}
}
