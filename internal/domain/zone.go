package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type ZoneStatus string

const (
	ZoneActive   ZoneStatus = "active"
	ZoneRestored ZoneStatus = "restored"
)

// ZoneState is either Active or Restored{at}. The zero value is Active.
type ZoneState struct {
	restoredAt time.Time
}

func ActiveState() ZoneState { return ZoneState{} }

func RestoredState(at time.Time) ZoneState {
	if at.IsZero() {
		panic("domain: restored state needs a timestamp")
	}
	return ZoneState{restoredAt: at}
}

// ZoneStateFromRow rebuilds the state from its persisted columns and rejects
// dual states such as active with restored_at set.
func ZoneStateFromRow(status ZoneStatus, restoredAt *time.Time) (ZoneState, error) {
	switch status {
	case ZoneActive:
		if restoredAt != nil {
			return ZoneState{}, fmt.Errorf("zone state: active with restored_at %s", restoredAt.Format(time.RFC3339))
		}
		return ActiveState(), nil
	case ZoneRestored:
		if restoredAt == nil || restoredAt.IsZero() {
			return ZoneState{}, fmt.Errorf("zone state: restored without restored_at")
		}
		return RestoredState(*restoredAt), nil
	default:
		return ZoneState{}, fmt.Errorf("zone state: unknown status %q", status)
	}
}

func (s ZoneState) IsActive() bool { return s.restoredAt.IsZero() }

func (s ZoneState) Status() ZoneStatus {
	if s.IsActive() {
		return ZoneActive
	}
	return ZoneRestored
}

func (s ZoneState) RestoredAt() (time.Time, bool) {
	return s.restoredAt, !s.restoredAt.IsZero()
}

// RestoredAtPtr is the nullable column form of the state.
func (s ZoneState) RestoredAtPtr() *time.Time {
	if s.IsActive() {
		return nil
	}
	t := s.restoredAt
	return &t
}

type Zone struct {
	ID        uuid.UUID
	Kind      Kind
	Center    Point
	RadiusM   float64
	State     ZoneState
	StartedAt time.Time
	OpenedAt  time.Time
}

// ZoneFilter selects zones. Near matches zones whose disc intersects the circle.
type ZoneFilter struct {
	Kinds  []Kind
	Status ZoneStatus
	Near   *Circle
	Limit  int
}

// CreateGuard carries the existence checks re-validated at insert time.
type CreateGuard struct {
	MergeDistanceM float64
	CooldownSince  time.Time
}

// CachedZone is the flat form stored in the zone cache.
type CachedZone struct {
	ID         uuid.UUID  `json:"id"`
	Kind       Kind       `json:"kind"`
	Lat        float64    `json:"lat"`
	Lng        float64    `json:"lng"`
	RadiusM    float64    `json:"radius_m"`
	Status     ZoneStatus `json:"status"`
	StartedAt  time.Time  `json:"started_at"`
	OpenedAt   time.Time  `json:"opened_at"`
	RestoredAt *time.Time `json:"restored_at,omitempty"`
}

func ToCachedZones(zones []Zone) []CachedZone {
	out := make([]CachedZone, 0, len(zones))
	for _, z := range zones {
		out = append(out, CachedZone{
			ID:         z.ID,
			Kind:       z.Kind,
			Lat:        z.Center.Lat,
			Lng:        z.Center.Lng,
			RadiusM:    z.RadiusM,
			Status:     z.State.Status(),
			StartedAt:  z.StartedAt,
			OpenedAt:   z.OpenedAt,
			RestoredAt: z.State.RestoredAtPtr(),
		})
	}
	return out
}

func FromCachedZones(cached []CachedZone) ([]Zone, error) {
	out := make([]Zone, 0, len(cached))
	for _, c := range cached {
		state, err := ZoneStateFromRow(c.Status, c.RestoredAt)
		if err != nil {
			return nil, err
		}
		out = append(out, Zone{
			ID:        c.ID,
			Kind:      c.Kind,
			Center:    Point{Lat: c.Lat, Lng: c.Lng},
			RadiusM:   c.RadiusM,
			State:     state,
			StartedAt: c.StartedAt,
			OpenedAt:  c.OpenedAt,
		})
	}
	return out, nil
}
