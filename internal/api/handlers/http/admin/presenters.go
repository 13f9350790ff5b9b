package admin

import (
	"time"

	"zonewatch/internal/domain"

	"github.com/google/uuid"
)

type AckView struct {
	ID        uuid.UUID   `json:"id"`
	Kind      domain.Kind `json:"kind"`
	Lat       float64     `json:"lat"`
	Lng       float64     `json:"lng"`
	CreatedAt time.Time   `json:"created_at"`
	Actor     string      `json:"actor,omitempty"`
}

func ackView(a domain.Acknowledgment) AckView {
	return AckView{
		ID:        a.ID,
		Kind:      a.Kind,
		Lat:       a.Location.Lat,
		Lng:       a.Location.Lng,
		CreatedAt: a.CreatedAt,
		Actor:     a.Actor,
	}
}
