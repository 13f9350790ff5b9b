package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"zonewatch/internal/config"
	"zonewatch/internal/domain"
	"zonewatch/internal/metrics"
	"zonewatch/pkg/e"
)

// ZoneEventSource is the consuming side of the zone event queue. Pop returns
// e.ErrEventQueueEmpty when nothing arrived within timeout.
type ZoneEventSource interface {
	Pop(ctx context.Context, timeout time.Duration) (domain.ZoneEvent, error)
}

type ZoneEventSender struct {
	logger  *slog.Logger
	cfg     config.WebhookConfig
	queue   ZoneEventSource
	http    *http.Client
	backoff time.Duration
}

func NewZoneEventSender(logger *slog.Logger, cfg config.WebhookConfig, q ZoneEventSource) *ZoneEventSender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = 3
	}
	return &ZoneEventSender{
		logger:  logger,
		cfg:     cfg,
		queue:   q,
		http:    &http.Client{Timeout: timeout},
		backoff: time.Second,
	}
}

func (s *ZoneEventSender) Run(ctx context.Context) {
	s.logger.Info("zoneEventSender STARTED", slog.String("url", s.cfg.URL))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("zoneEventSender STOPPED", slog.String("reason", ctx.Err().Error()))
			return
		default:
		}

		ev, err := s.queue.Pop(ctx, 5*time.Second)
		if err != nil {
			if errors.Is(err, e.ErrEventQueueEmpty) || ctx.Err() != nil {
				continue
			}
			s.logger.Error("event pop failed", slog.Any("error", err))
			s.sleep(ctx, 500*time.Millisecond)
			continue
		}

		s.logger.Debug("sending zone event",
			slog.String("zone_id", ev.ZoneID.String()),
			slog.String("transition", string(ev.Transition)))
		s.sendWithRetry(ctx, ev)
	}
}

// sendWithRetry reports whether the event was delivered.
func (s *ZoneEventSender) sendWithRetry(ctx context.Context, ev domain.ZoneEvent) bool {
	body, err := json.Marshal(ev)
	if err != nil {
		s.logger.Error("marshal zone event failed", slog.String("error", err.Error()))
		metrics.ZoneEventsSent.WithLabelValues("dropped").Inc()
		return false
	}

	for attempt := 1; attempt <= s.cfg.Attempts; attempt++ {
		if ctx.Err() != nil {
			s.logger.Info("stop retries due to context cancel")
			return false
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.URL, bytes.NewReader(body))
		if err != nil {
			s.logger.Error("create webhook request failed", slog.String("error", err.Error()))
			metrics.ZoneEventsSent.WithLabelValues("dropped").Inc()
			return false
		}

		req.Header.Set("Content-Type", "application/json")

		resp, err := s.http.Do(req)
		if err == nil && resp.StatusCode >= 200 && resp.StatusCode < 300 {
			_ = resp.Body.Close()
			metrics.ZoneEventsSent.WithLabelValues("ok").Inc()
			return true
		}
		if resp != nil {
			_ = resp.Body.Close()
		}

		reason := "unknown"
		if err != nil {
			reason = err.Error()
		} else if resp != nil {
			reason = resp.Status
		}

		s.logger.Warn("webhook failed",
			slog.Int("attempt", attempt),
			slog.String("url", s.cfg.URL),
			slog.String("reason", reason),
		)

		if attempt < s.cfg.Attempts && !s.sleep(ctx, time.Duration(attempt)*s.backoff) {
			return false
		}
	}
	metrics.ZoneEventsSent.WithLabelValues("failed").Inc()
	return false
}

func (s *ZoneEventSender) sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
