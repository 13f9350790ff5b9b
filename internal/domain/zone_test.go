package domain

import (
	"testing"
	"time"
)

func TestZoneState_ZeroIsActive(t *testing.T) {
	var s ZoneState
	if !s.IsActive() || s.Status() != ZoneActive {
		t.Fatalf("zero state should be active, got %s", s.Status())
	}
	if s.RestoredAtPtr() != nil {
		t.Fatalf("active state must not carry restored_at")
	}
}

func TestZoneStateFromRow_RejectsDualStates(t *testing.T) {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	if _, err := ZoneStateFromRow(ZoneActive, &at); err == nil {
		t.Fatalf("expected error for active with restored_at")
	}
	if _, err := ZoneStateFromRow(ZoneRestored, nil); err == nil {
		t.Fatalf("expected error for restored without restored_at")
	}
	if _, err := ZoneStateFromRow("gone", nil); err == nil {
		t.Fatalf("expected error for unknown status")
	}

	s, err := ZoneStateFromRow(ZoneRestored, &at)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	got, ok := s.RestoredAt()
	if !ok || !got.Equal(at) {
		t.Fatalf("restored_at mismatch: %v %v", got, ok)
	}
}

func TestCachedZones_RoundTripState(t *testing.T) {
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	zones := []Zone{
		{Kind: KindPower, State: ActiveState()},
		{Kind: KindWater, State: RestoredState(at)},
	}
	back, err := FromCachedZones(ToCachedZones(zones))
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !back[0].State.IsActive() || back[1].State.IsActive() {
		t.Fatalf("state lost: %+v", back)
	}
}

func TestKind_Valid(t *testing.T) {
	if !KindFlood.Valid() || Kind("meteor").Valid() {
		t.Fatalf("kind validation wrong")
	}
}
