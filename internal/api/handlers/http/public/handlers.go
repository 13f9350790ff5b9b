package public

import (
	"context"
	"log/slog"
	"net/http"

	"zonewatch/internal/api/handlers/http/respond"
	"zonewatch/internal/domain"
	"zonewatch/internal/middleware"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Reports interface {
	Ingest(ctx context.Context, req domain.ReportRequest) (domain.IngestResult, error)
}

type Zones interface {
	QueryZones(ctx context.Context, q domain.ZoneQuery) ([]domain.Zone, error)
	ListZones(ctx context.Context, q domain.GlobalZoneQuery) ([]domain.Zone, error)
	Map(ctx context.Context, q domain.MapQuery) (domain.MapView, error)
}

type Alerts interface {
	DetectAlertZones(ctx context.Context, q domain.AlertQuery) ([]domain.AlertZone, error)
}

type Handler struct {
	logger  *slog.Logger
	Reports Reports
	Zones   Zones
	Alerts  Alerts
}

func NewHandler(logger *slog.Logger, reports Reports, zones Zones, alerts Alerts) *Handler {
	return &Handler{
		logger:  logger,
		Reports: reports,
		Zones:   zones,
		Alerts:  alerts,
	}
}

const HeaderIdempotencyKey = "Idempotency-Key"

func (h *Handler) ReportCreate(w http.ResponseWriter, r *http.Request) {
	l := respond.Logger(r, h.logger)

	req, err := middleware.BindJSON[domain.ReportRequest](w, r)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	if req.IdempotencyKey == "" {
		req.IdempotencyKey = r.Header.Get(HeaderIdempotencyKey)
	}

	res, err := h.Reports.Ingest(r.Context(), req)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	l.Debug("report stored", slog.String("id", res.ID.String()), slog.Bool("duplicate", res.Duplicate))
	code := http.StatusCreated
	if res.Duplicate {
		code = http.StatusOK
	}
	respond.JSON(w, h.logger, code, res)
}

func (h *Handler) ZonesNear(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	center, err := parseCenter(q)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	radius, err := parseFloat(q, "radius_m", 0, true)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	zones, err := h.Zones.QueryZones(r.Context(), domain.ZoneQuery{Kind: parseKind(q), Center: center, RadiusM: radius})
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, h.logger, http.StatusOK, ZonesResponse{Zones: zoneViews(zones)})
}

func (h *Handler) ZonesAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, err := parseInt(q, "limit", 0)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	activeOnly, err := parseBool(q, "active_only", true)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	zones, err := h.Zones.ListZones(r.Context(), domain.GlobalZoneQuery{Kind: parseKind(q), ActiveOnly: activeOnly, Limit: limit})
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, h.logger, http.StatusOK, ZonesResponse{Zones: zoneViews(zones)})
}

func (h *Handler) AlertZones(w http.ResponseWriter, r *http.Request) {
	aq, err := parseAlertQuery(r.URL.Query())
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	alerts, err := h.Alerts.DetectAlertZones(r.Context(), aq)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}
	respond.JSON(w, h.logger, http.StatusOK, AlertZonesResponse{AlertZones: alertViews(alerts)})
}

func (h *Handler) MapView(w http.ResponseWriter, r *http.Request) {
	mq, err := parseMapQuery(r.URL.Query())
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	view, err := h.Zones.Map(r.Context(), mq)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
	respond.JSON(w, h.logger, http.StatusOK, mapResponse(view))
}
