package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"zonewatch/internal/config"
	"zonewatch/internal/domain"
	"zonewatch/pkg/e"
	"zonewatch/pkg/validator"
)

type ackService struct {
	acks   AckStore
	cfg    config.EngineConfig
	logger *slog.Logger
	now    func() time.Time
}

func NewAckService(acks AckStore, cfg config.EngineConfig, logger *slog.Logger, opts ...Option) AckRegistry {
	o := buildOptions(opts)
	return &ackService{acks: acks, cfg: cfg, logger: logger, now: o.now}
}

// Acknowledge records that staff took charge of an area. It never touches zones.
func (s *ackService) Acknowledge(ctx context.Context, req domain.AckRequest) (domain.Acknowledgment, error) {
	const op = "service.Ack.Acknowledge"

	caller := domain.CallerFrom(ctx)
	if !caller.IsStaff() {
		return domain.Acknowledgment{}, fmt.Errorf("%s: %w", op, e.ErrForbidden)
	}
	if err := validator.ValidateStruct(req); err != nil {
		return domain.Acknowledgment{}, err
	}
	if !req.Kind.Valid() {
		return domain.Acknowledgment{}, e.InvalidField("kind", "unknown kind")
	}

	actor := req.Actor
	if actor == "" {
		actor = caller.ActorID
	}

	sctx, cancel := storeCtx(ctx, s.cfg.StoreTimeout)
	defer cancel()

	ack, err := s.acks.Insert(sctx, domain.Acknowledgment{
		Kind:      req.Kind,
		Location:  domain.Point{Lat: req.Lat, Lng: req.Lng},
		CreatedAt: s.now().UTC(),
		Actor:     actor,
	})
	if err != nil {
		s.logger.Error("ack insert failed", slog.String("op", op), slog.Any("error", err))
		return domain.Acknowledgment{}, err
	}

	s.logger.Info("area acknowledged",
		slog.String("id", ack.ID.String()),
		slog.String("kind", string(ack.Kind)),
		slog.String("role", string(caller.Role)))
	return ack, nil
}
