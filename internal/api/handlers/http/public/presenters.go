package public

import (
	"math"
	"net/url"
	"strconv"
	"time"

	"zonewatch/internal/domain"
	"zonewatch/pkg/e"

	"github.com/google/uuid"
)

type ZoneView struct {
	ID         uuid.UUID         `json:"id"`
	Kind       domain.Kind       `json:"kind"`
	Lat        float64           `json:"lat"`
	Lng        float64           `json:"lng"`
	RadiusM    float64           `json:"radius_m"`
	Status     domain.ZoneStatus `json:"status"`
	StartedAt  time.Time         `json:"started_at"`
	OpenedAt   time.Time         `json:"opened_at"`
	RestoredAt *time.Time        `json:"restored_at,omitempty"`
}

type AlertZoneView struct {
	Kind    domain.Kind `json:"kind"`
	Lat     float64     `json:"lat"`
	Lng     float64     `json:"lng"`
	Count   int         `json:"count"`
	RadiusM float64     `json:"radius_m"`
}

// ReportView omits the reporter id.
type ReportView struct {
	ID        uuid.UUID     `json:"id"`
	Kind      domain.Kind   `json:"kind"`
	Signal    domain.Signal `json:"signal"`
	Lat       float64       `json:"lat"`
	Lng       float64       `json:"lng"`
	CreatedAt time.Time     `json:"created_at"`
}

type ZonesResponse struct {
	Zones []ZoneView `json:"zones"`
}

type AlertZonesResponse struct {
	AlertZones []AlertZoneView `json:"alert_zones"`
}

type MapResponse struct {
	Zones       []ZoneView      `json:"zones"`
	AlertZones  []AlertZoneView `json:"alert_zones"`
	LastReports []ReportView    `json:"last_reports"`
	ServerNow   time.Time       `json:"server_now"`
}

func zoneViews(zones []domain.Zone) []ZoneView {
	out := make([]ZoneView, 0, len(zones))
	for _, z := range zones {
		out = append(out, ZoneView{
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

func alertViews(alerts []domain.AlertZone) []AlertZoneView {
	out := make([]AlertZoneView, 0, len(alerts))
	for _, a := range alerts {
		out = append(out, AlertZoneView{Kind: a.Kind, Lat: a.Center.Lat, Lng: a.Center.Lng, Count: a.Count, RadiusM: a.RadiusM})
	}
	return out
}

func reportViews(reports []domain.Report) []ReportView {
	out := make([]ReportView, 0, len(reports))
	for _, r := range reports {
		out = append(out, ReportView{ID: r.ID, Kind: r.Kind, Signal: r.Signal, Lat: r.Location.Lat, Lng: r.Location.Lng, CreatedAt: r.CreatedAt})
	}
	return out
}

func mapResponse(v domain.MapView) MapResponse {
	return MapResponse{
		Zones:       zoneViews(v.Zones),
		AlertZones:  alertViews(v.AlertZones),
		LastReports: reportViews(v.LastReports),
		ServerNow:   v.ServerNow,
	}
}

func parseKind(q url.Values) *domain.Kind {
	s := q.Get("kind")
	if s == "" {
		return nil
	}
	k := domain.Kind(s)
	return &k
}

func parseFloat(q url.Values, name string, def float64, required bool) (float64, error) {
	s := q.Get(name)
	if s == "" {
		if required {
			return 0, e.InvalidField(name, "is required")
		}
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, e.InvalidField(name, "must be a number")
	}
	return v, nil
}

func parseInt(q url.Values, name string, def int) (int, error) {
	s := q.Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, e.InvalidField(name, "must be an integer")
	}
	return v, nil
}

func parseBool(q url.Values, name string, def bool) (bool, error) {
	s := q.Get(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, e.InvalidField(name, "must be a boolean")
	}
	return v, nil
}

func parseDuration(q url.Values, name string) (time.Duration, error) {
	s := q.Get(name)
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, e.InvalidField(name, "must be a duration like 90m")
	}
	return d, nil
}

func parseCenter(q url.Values) (domain.Point, error) {
	lat, err := parseFloat(q, "lat", 0, true)
	if err != nil {
		return domain.Point{}, err
	}
	lng, err := parseFloat(q, "lng", 0, true)
	if err != nil {
		return domain.Point{}, err
	}
	return domain.Point{Lat: lat, Lng: lng}, nil
}

func parseAlertQuery(q url.Values) (domain.AlertQuery, error) {
	center, err := parseCenter(q)
	if err != nil {
		return domain.AlertQuery{}, err
	}
	aq := domain.AlertQuery{Kind: parseKind(q), Center: center}

	if aq.RadiusM, err = parseFloat(q, "radius_m", 0, false); err != nil {
		return aq, err
	}
	if aq.GroupRadiusM, err = parseFloat(q, "group_radius_m", 0, false); err != nil {
		return aq, err
	}
	if aq.MinCount, err = parseInt(q, "min_count", 0); err != nil {
		return aq, err
	}
	if aq.Window, err = parseDuration(q, "window"); err != nil {
		return aq, err
	}
	if aq.AckWindow, err = parseDuration(q, "ack_window"); err != nil {
		return aq, err
	}
	return aq, nil
}

func parseMapQuery(q url.Values) (domain.MapQuery, error) {
	global, err := parseBool(q, "global", false)
	if err != nil {
		return domain.MapQuery{}, err
	}
	if global {
		return domain.MapQuery{Kind: parseKind(q), Global: true}, nil
	}

	center, err := parseCenter(q)
	if err != nil {
		return domain.MapQuery{}, err
	}
	radius, err := parseFloat(q, "radius_m", 0, true)
	if err != nil {
		return domain.MapQuery{}, err
	}
	return domain.MapQuery{Kind: parseKind(q), Center: center, RadiusM: radius}, nil
}
