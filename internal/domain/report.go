package domain

import (
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindPower    Kind = "power"
	KindWater    Kind = "water"
	KindTraffic  Kind = "traffic"
	KindAccident Kind = "accident"
	KindFire     Kind = "fire"
	KindFlood    Kind = "flood"
	KindAssault  Kind = "assault"
	KindWeapon   Kind = "weapon"
	KindMedical  Kind = "medical"
)

// Kinds lists every recognized report kind in display order.
var Kinds = []Kind{
	KindPower, KindWater, KindTraffic, KindAccident, KindFire,
	KindFlood, KindAssault, KindWeapon, KindMedical,
}

func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

type Signal string

const (
	SignalCut      Signal = "cut"
	SignalRestored Signal = "restored"
)

func (s Signal) Valid() bool {
	return s == SignalCut || s == SignalRestored
}

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Circle is a center and a radius in meters.
type Circle struct {
	Center  Point
	RadiusM float64
}

type Report struct {
	ID             uuid.UUID `json:"id"`
	Kind           Kind      `json:"kind"`
	Signal         Signal    `json:"signal"`
	Location       Point     `json:"location"`
	CreatedAt      time.Time `json:"created_at"`
	ReporterID     string    `json:"reporter_id,omitempty"`
	IdempotencyKey string    `json:"idempotency_key,omitempty"`
}

// ReportFilter selects reports for the engine and the alert detector.
// Empty Kinds means every kind; a zero Since means no lower bound.
// Results are oldest first unless NewestFirst is set.
type ReportFilter struct {
	Kinds       []Kind
	Signal      Signal
	Since       time.Time
	Near        *Circle
	Limit       int
	NewestFirst bool
}
