package service

import (
	"context"
	"time"

	"zonewatch/internal/domain"

	"github.com/google/uuid"
)

//go:generate mockgen -source=store.go -destination=mocks/store_mock.go -package=mock_service

// ReportStore persists immutable reports.
type ReportStore interface {
	// Insert stores r and reports whether this call created the row. A report
	// whose idempotency key already exists is not inserted.
	Insert(ctx context.Context, r domain.Report) (domain.Report, bool, error)
	FindByIdempotencyKey(ctx context.Context, key string) (domain.Report, error)
	// HasOwnedCut reports whether reporterID filed a cut of kind near p since the given time.
	HasOwnedCut(ctx context.Context, kind domain.Kind, reporterID string, near domain.Circle, since time.Time) (bool, error)
	List(ctx context.Context, f domain.ReportFilter) ([]domain.Report, error)
}

// ZoneStore owns every zone mutation. Each mutating call is conditional and
// reports whether it changed anything.
type ZoneStore interface {
	List(ctx context.Context, f domain.ZoneFilter) ([]domain.Zone, error)
	CreateIfAbsent(ctx context.Context, z domain.Zone, g domain.CreateGuard) (domain.Zone, bool, error)
	Close(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
	CloseNearest(ctx context.Context, kind domain.Kind, near domain.Circle, at time.Time) (domain.Zone, bool, error)
	Reopen(ctx context.Context, id uuid.UUID, restoredAt, at time.Time, mergeDistanceM float64) (bool, error)
}

type AckStore interface {
	Insert(ctx context.Context, a domain.Acknowledgment) (domain.Acknowledgment, error)
	// ExistsNear reports an acknowledgment of kind within the circle; a zero since means any age.
	ExistsNear(ctx context.Context, kind domain.Kind, near domain.Circle, since time.Time) (bool, error)
}

// Clusterer labels points with cluster ids; geo.Noise marks unclustered points.
type Clusterer interface {
	Cluster(ctx context.Context, points []domain.Point, epsM float64, minPts int) ([]int, error)
}

type ZoneEventPublisher interface {
	Publish(ctx context.Context, ev domain.ZoneEvent) error
}

type ZoneCache interface {
	Get(ctx context.Context, key string) ([]domain.Zone, bool, error)
	Set(ctx context.Context, key string, zones []domain.Zone) error
	Invalidate(ctx context.Context) error
}

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, domain.ZoneEvent) error { return nil }

// NoopPublisher drops every event.
func NoopPublisher() ZoneEventPublisher { return noopPublisher{} }

type noopCache struct{}

func (noopCache) Get(context.Context, string) ([]domain.Zone, bool, error) { return nil, false, nil }
func (noopCache) Set(context.Context, string, []domain.Zone) error         { return nil }
func (noopCache) Invalidate(context.Context) error                          { return nil }

// NoopCache never hits.
func NoopCache() ZoneCache { return noopCache{} }
