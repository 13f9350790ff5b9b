// Package memory is a process-local spatial store with the same conditional
// semantics as the PostGIS store. It backs STORAGE_BACKEND=memory and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"zonewatch/internal/domain"
	"zonewatch/internal/geo"
	"zonewatch/pkg/e"

	"github.com/google/uuid"
)

type Store struct {
	mu      sync.RWMutex
	reports []domain.Report
	byKey   map[string]int
	zones   []domain.Zone
	acks    []domain.Acknowledgment

	reportRepo *ReportRepo
	zoneRepo   *ZoneRepo
	ackRepo    *AckRepo
}

func New() *Store {
	s := &Store{byKey: make(map[string]int)}
	s.reportRepo = &ReportRepo{s: s}
	s.zoneRepo = &ZoneRepo{s: s}
	s.ackRepo = &AckRepo{s: s}
	return s
}

func (s *Store) Reports() *ReportRepo { return s.reportRepo }
func (s *Store) Zones() *ZoneRepo     { return s.zoneRepo }
func (s *Store) Acks() *AckRepo       { return s.ackRepo }

// Clusterer returns the in-process DBSCAN used with this store.
func (s *Store) Clusterer() geo.Local { return geo.Local{} }

func alive(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return e.WrapError(ctx, op, err)
	}
	return nil
}

func containsKind(kinds []domain.Kind, k domain.Kind) bool {
	if len(kinds) == 0 {
		return true
	}
	for _, want := range kinds {
		if want == k {
			return true
		}
	}
	return false
}

type ReportRepo struct{ s *Store }

func (r *ReportRepo) Insert(ctx context.Context, rep domain.Report) (domain.Report, bool, error) {
	const op = "memory.ReportRepo.Insert"
	if err := alive(ctx, op); err != nil {
		return domain.Report{}, false, err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if rep.IdempotencyKey != "" {
		if _, ok := r.s.byKey[rep.IdempotencyKey]; ok {
			return domain.Report{}, false, nil
		}
	}
	if rep.ID == uuid.Nil {
		rep.ID = uuid.New()
	}
	r.s.reports = append(r.s.reports, rep)
	if rep.IdempotencyKey != "" {
		r.s.byKey[rep.IdempotencyKey] = len(r.s.reports) - 1
	}
	return rep, true, nil
}

func (r *ReportRepo) FindByIdempotencyKey(ctx context.Context, key string) (domain.Report, error) {
	const op = "memory.ReportRepo.FindByIdempotencyKey"
	if err := alive(ctx, op); err != nil {
		return domain.Report{}, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	i, ok := r.s.byKey[key]
	if !ok {
		return domain.Report{}, e.Wrap(op, e.ErrNotFound)
	}
	return r.s.reports[i], nil
}

func (r *ReportRepo) HasOwnedCut(ctx context.Context, kind domain.Kind, reporterID string, near domain.Circle, since time.Time) (bool, error) {
	const op = "memory.ReportRepo.HasOwnedCut"
	if err := alive(ctx, op); err != nil {
		return false, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, rep := range r.s.reports {
		if rep.Kind == kind && rep.Signal == domain.SignalCut && rep.ReporterID == reporterID &&
			!rep.CreatedAt.Before(since) && geo.Within(rep.Location, near) {
			return true, nil
		}
	}
	return false, nil
}

func (r *ReportRepo) List(ctx context.Context, f domain.ReportFilter) ([]domain.Report, error) {
	const op = "memory.ReportRepo.List"
	if err := alive(ctx, op); err != nil {
		return nil, err
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]domain.Report, 0)
	for _, rep := range r.s.reports {
		if !containsKind(f.Kinds, rep.Kind) {
			continue
		}
		if f.Signal != "" && rep.Signal != f.Signal {
			continue
		}
		if !f.Since.IsZero() && rep.CreatedAt.Before(f.Since) {
			continue
		}
		if f.Near != nil && !geo.Within(rep.Location, *f.Near) {
			continue
		}
		out = append(out, rep)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if f.NewestFirst {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

type ZoneRepo struct{ s *Store }

// List returns matching zones newest first.
func (z *ZoneRepo) List(ctx context.Context, f domain.ZoneFilter) ([]domain.Zone, error) {
	const op = "memory.ZoneRepo.List"
	if err := alive(ctx, op); err != nil {
		return nil, err
	}

	z.s.mu.RLock()
	defer z.s.mu.RUnlock()

	out := make([]domain.Zone, 0)
	for _, zone := range z.s.zones {
		if !containsKind(f.Kinds, zone.Kind) {
			continue
		}
		if f.Status != "" && zone.State.Status() != f.Status {
			continue
		}
		if f.Near != nil && geo.Distance(zone.Center, f.Near.Center) > f.Near.RadiusM+zone.RadiusM {
			continue
		}
		out = append(out, zone)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (z *ZoneRepo) CreateIfAbsent(ctx context.Context, zone domain.Zone, g domain.CreateGuard) (domain.Zone, bool, error) {
	const op = "memory.ZoneRepo.CreateIfAbsent"
	if err := alive(ctx, op); err != nil {
		return domain.Zone{}, false, err
	}

	z.s.mu.Lock()
	defer z.s.mu.Unlock()

	for _, other := range z.s.zones {
		if other.Kind != zone.Kind || geo.Distance(other.Center, zone.Center) > g.MergeDistanceM {
			continue
		}
		if other.State.IsActive() {
			return domain.Zone{}, false, nil
		}
		if at, _ := other.State.RestoredAt(); !g.CooldownSince.IsZero() && !at.Before(g.CooldownSince) {
			return domain.Zone{}, false, nil
		}
	}

	if zone.ID == uuid.Nil {
		zone.ID = uuid.New()
	}
	zone.State = domain.ActiveState()
	z.s.zones = append(z.s.zones, zone)
	return zone, true, nil
}

func (z *ZoneRepo) Close(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	const op = "memory.ZoneRepo.Close"
	if err := alive(ctx, op); err != nil {
		return false, err
	}

	z.s.mu.Lock()
	defer z.s.mu.Unlock()

	for i := range z.s.zones {
		if z.s.zones[i].ID == id && z.s.zones[i].State.IsActive() {
			z.s.zones[i].State = domain.RestoredState(at)
			return true, nil
		}
	}
	return false, nil
}

func (z *ZoneRepo) CloseNearest(ctx context.Context, kind domain.Kind, near domain.Circle, at time.Time) (domain.Zone, bool, error) {
	const op = "memory.ZoneRepo.CloseNearest"
	if err := alive(ctx, op); err != nil {
		return domain.Zone{}, false, err
	}

	z.s.mu.Lock()
	defer z.s.mu.Unlock()

	best, bestDist := -1, 0.0
	for i, zone := range z.s.zones {
		if zone.Kind != kind || !zone.State.IsActive() {
			continue
		}
		d := geo.Distance(zone.Center, near.Center)
		if d > near.RadiusM {
			continue
		}
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return domain.Zone{}, false, nil
	}
	z.s.zones[best].State = domain.RestoredState(at)
	return z.s.zones[best], true, nil
}

func (z *ZoneRepo) Reopen(ctx context.Context, id uuid.UUID, restoredAt, at time.Time, mergeDistanceM float64) (bool, error) {
	const op = "memory.ZoneRepo.Reopen"
	if err := alive(ctx, op); err != nil {
		return false, err
	}

	z.s.mu.Lock()
	defer z.s.mu.Unlock()

	idx := -1
	for i := range z.s.zones {
		if z.s.zones[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false, nil
	}
	target := z.s.zones[idx]
	if cur, ok := target.State.RestoredAt(); !ok || !cur.Equal(restoredAt) {
		return false, nil
	}
	for _, other := range z.s.zones {
		if other.ID != id && other.Kind == target.Kind && other.State.IsActive() &&
			geo.Distance(other.Center, target.Center) <= mergeDistanceM {
			return false, nil
		}
	}
	z.s.zones[idx].State = domain.ActiveState()
	z.s.zones[idx].OpenedAt = at
	return true, nil
}

type AckRepo struct{ s *Store }

func (a *AckRepo) Insert(ctx context.Context, ack domain.Acknowledgment) (domain.Acknowledgment, error) {
	const op = "memory.AckRepo.Insert"
	if err := alive(ctx, op); err != nil {
		return domain.Acknowledgment{}, err
	}

	a.s.mu.Lock()
	defer a.s.mu.Unlock()

	if ack.ID == uuid.Nil {
		ack.ID = uuid.New()
	}
	a.s.acks = append(a.s.acks, ack)
	return ack, nil
}

func (a *AckRepo) ExistsNear(ctx context.Context, kind domain.Kind, near domain.Circle, since time.Time) (bool, error) {
	const op = "memory.AckRepo.ExistsNear"
	if err := alive(ctx, op); err != nil {
		return false, err
	}

	a.s.mu.RLock()
	defer a.s.mu.RUnlock()

	for _, ack := range a.s.acks {
		if ack.Kind == kind && (since.IsZero() || !ack.CreatedAt.Before(since)) && geo.Within(ack.Location, near) {
			return true, nil
		}
	}
	return false, nil
}
