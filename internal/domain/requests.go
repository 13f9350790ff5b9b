package domain

import (
	"time"

	"github.com/google/uuid"
)

type ReportRequest struct {
	Kind           Kind    `json:"kind" validate:"required"`
	Signal         Signal  `json:"signal" validate:"required,oneof=cut restored"`
	Lat            float64 `json:"lat" validate:"lat"`
	Lng            float64 `json:"lng" validate:"lng"`
	ReporterID     string  `json:"user_id,omitempty" validate:"max=128"`
	IdempotencyKey string  `json:"idempotency_key,omitempty" validate:"max=128"`
}

type IngestResult struct {
	ID           uuid.UUID  `json:"id"`
	Duplicate    bool       `json:"duplicate"`
	ClosedZoneID *uuid.UUID `json:"closed_zone_id,omitempty"`
}

type AckRequest struct {
	Kind  Kind    `json:"kind" validate:"required"`
	Lat   float64 `json:"lat" validate:"lat"`
	Lng   float64 `json:"lng" validate:"lng"`
	Actor string  `json:"user_id,omitempty" validate:"max=128"`
}

// ZoneQuery is the local map lookup; a nil Kind means every kind.
type ZoneQuery struct {
	Kind    *Kind
	Center  Point
	RadiusM float64
}

// GlobalZoneQuery backs the "show everything" views.
type GlobalZoneQuery struct {
	Kind       *Kind
	ActiveOnly bool
	Limit      int
}

// MapQuery drives the combined map view. Global skips the local layers.
type MapQuery struct {
	Kind    *Kind
	Center  Point
	RadiusM float64
	Global  bool
}

type MapView struct {
	Zones       []Zone
	AlertZones  []AlertZone
	LastReports []Report
	ServerNow   time.Time
}
