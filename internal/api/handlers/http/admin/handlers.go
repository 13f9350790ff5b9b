package admin

import (
	"context"
	"log/slog"
	"net/http"

	"zonewatch/internal/api/handlers/http/respond"
	"zonewatch/internal/domain"
	"zonewatch/internal/middleware"
)

//go:generate mockgen -source=handlers.go -destination=mocks/mock.go
type Acks interface {
	Acknowledge(ctx context.Context, req domain.AckRequest) (domain.Acknowledgment, error)
}

// TickRunner runs one lifecycle tick under the scheduler lease.
type TickRunner interface {
	RunNow(ctx context.Context) (domain.TickSummary, error)
}

type Handler struct {
	logger *slog.Logger
	Acks   Acks
	Ticks  TickRunner
}

func NewHandler(logger *slog.Logger, acks Acks, ticks TickRunner) *Handler {
	return &Handler{
		logger: logger,
		Acks:   acks,
		Ticks:  ticks,
	}
}

func (h *Handler) StaffAckCreate(w http.ResponseWriter, r *http.Request) {
	l := respond.Logger(r, h.logger)
	l.Debug("StaffAckCreate", slog.String("remote", r.RemoteAddr))

	req, err := middleware.BindJSON[domain.AckRequest](w, r)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	ack, err := h.Acks.Acknowledge(r.Context(), req)
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	l.Info("ack recorded", slog.String("id", ack.ID.String()), slog.String("kind", string(ack.Kind)))
	respond.JSON(w, h.logger, http.StatusCreated, ackView(ack))
}

func (h *Handler) AdminTick(w http.ResponseWriter, r *http.Request) {
	l := respond.Logger(r, h.logger)

	summary, err := h.Ticks.RunNow(r.Context())
	if err != nil {
		respond.Error(w, r, h.logger, err)
		return
	}

	l.Info("manual tick",
		slog.Bool("skipped", summary.Skipped),
		slog.Int("created", summary.Created),
		slog.Int("closed", summary.Closed),
		slog.Int("reopened", summary.Reopened))
	respond.JSON(w, h.logger, http.StatusOK, summary)
}
