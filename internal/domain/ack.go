package domain

import (
	"time"

	"github.com/google/uuid"
)

// Acknowledgment records that a responder has taken charge of an area.
type Acknowledgment struct {
	ID        uuid.UUID `json:"id"`
	Kind      Kind      `json:"kind"`
	Location  Point     `json:"location"`
	CreatedAt time.Time `json:"created_at"`
	Actor     string    `json:"actor,omitempty"`
}

// AlertZone is computed per query and never stored.
type AlertZone struct {
	Kind    Kind    `json:"kind"`
	Center  Point   `json:"center"`
	Count   int     `json:"count"`
	RadiusM float64 `json:"radius_m"`
}

type AlertQuery struct {
	Kind         *Kind
	Center       Point
	RadiusM      float64
	Window       time.Duration
	MinCount     int
	GroupRadiusM float64
	// AckWindow limits suppression to recent acknowledgments; zero means any age.
	AckWindow time.Duration
}
