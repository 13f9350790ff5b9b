package domain

import (
	"time"

	"github.com/google/uuid"
)

type Transition string

const (
	TransitionCreated  Transition = "created"
	TransitionClosed   Transition = "closed"
	TransitionReopened Transition = "reopened"
)

type CloseReason string

const (
	CloseOwnerRestore  CloseReason = "owner_restore"
	CloseConfirmed     CloseReason = "confirmed"
	CloseTTL           CloseReason = "ttl"
	CloseIncidentClear CloseReason = "incident_cleared"
	CloseInactive      CloseReason = "inactive"
)

// ZoneEvent is published for every zone transition.
type ZoneEvent struct {
	ZoneID     uuid.UUID   `json:"zone_id"`
	Kind       Kind        `json:"kind"`
	Transition Transition  `json:"transition"`
	Reason     CloseReason `json:"reason,omitempty"`
	Center     Point       `json:"center"`
	RadiusM    float64     `json:"radius_m"`
	At         time.Time   `json:"at"`
}

// TickSummary is what one lifecycle tick changed.
type TickSummary struct {
	Reopened int                 `json:"reopened"`
	Closed   int                 `json:"closed"`
	Created  int                 `json:"created"`
	ClosedBy map[CloseReason]int `json:"closed_by,omitempty"`
	Skipped  bool                `json:"skipped,omitempty"`
}

func (s TickSummary) Changed() bool {
	return s.Reopened+s.Closed+s.Created > 0
}
