// Package scheduler drives the lifecycle tick on a fixed interval. A lease
// keeps ticks from overlapping, within one process and across replicas.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"zonewatch/internal/config"
	"zonewatch/internal/domain"
	"zonewatch/internal/metrics"
	"zonewatch/internal/service"

	"github.com/robfig/cron/v3"
)

// TickLock hands out the tick lease. release must be safe to call after the
// lease expired.
type TickLock interface {
	Acquire(ctx context.Context, ttl time.Duration) (release func(context.Context) error, ok bool, err error)
}

// LocalLock is the single-process lease used when Redis is disabled.
type LocalLock struct {
	mu sync.Mutex
}

func (l *LocalLock) Acquire(context.Context, time.Duration) (func(context.Context) error, bool, error) {
	if !l.mu.TryLock() {
		return nil, false, nil
	}
	var once sync.Once
	return func(context.Context) error {
		once.Do(l.mu.Unlock)
		return nil
	}, true, nil
}

type Scheduler struct {
	engine service.ZoneLifecycle
	lock   TickLock
	cfg    config.SchedulerConfig
	logger *slog.Logger
	cron   *cron.Cron

	baseCtx context.Context
}

func New(engine service.ZoneLifecycle, lock TickLock, cfg config.SchedulerConfig, logger *slog.Logger) *Scheduler {
	if lock == nil {
		lock = &LocalLock{}
	}
	cl := cronLogger{logger: logger}
	return &Scheduler{
		engine:  engine,
		lock:    lock,
		cfg:     cfg,
		logger:  logger,
		cron:    cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		baseCtx: context.Background(),
	}
}

// Start schedules the tick. Ticks derive their context from ctx.
func (s *Scheduler) Start(ctx context.Context) {
	s.baseCtx = ctx
	s.cron.Schedule(cron.Every(s.cfg.Interval), cron.FuncJob(func() {
		if _, err := s.RunNow(s.baseCtx); err != nil {
			s.logger.Error("scheduled tick failed", slog.Any("error", err))
		}
	}))
	s.cron.Start()
	s.logger.Info("scheduler STARTED", slog.Duration("interval", s.cfg.Interval))
}

// Stop waits for a running tick or until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("scheduler STOPPED")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop: %w", ctx.Err())
	}
}

// RunNow runs one tick under the lease. A tick that cannot get the lease is
// reported as skipped.
func (s *Scheduler) RunNow(ctx context.Context) (domain.TickSummary, error) {
	const op = "scheduler.RunNow"

	release, ok, err := s.lock.Acquire(ctx, s.cfg.LockTTL)
	if err != nil {
		metrics.Ticks.WithLabelValues("error").Inc()
		return domain.TickSummary{}, fmt.Errorf("%s: acquire lease: %w", op, err)
	}
	if !ok {
		metrics.Ticks.WithLabelValues("skipped").Inc()
		s.logger.Debug("tick skipped, lease held elsewhere")
		return domain.TickSummary{Skipped: true}, nil
	}
	defer func() {
		if err := release(context.WithoutCancel(ctx)); err != nil {
			s.logger.Warn("tick lease release failed", slog.Any("error", err))
		}
	}()

	tctx := ctx
	if s.cfg.TickTimeout > 0 {
		var cancel context.CancelFunc
		tctx, cancel = context.WithTimeout(ctx, s.cfg.TickTimeout)
		defer cancel()
	}

	summary, err := s.engine.Tick(tctx)
	if err != nil {
		metrics.Ticks.WithLabelValues("error").Inc()
		return summary, err
	}
	metrics.Ticks.WithLabelValues("ok").Inc()
	return summary, nil
}

// cronLogger routes cron's own logging into slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error("cron: "+msg, append([]interface{}{slog.Any("error", err)}, keysAndValues...)...)
}
