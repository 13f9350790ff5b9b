package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"zonewatch/internal/api"
	"zonewatch/internal/api/handlers/http/system"
	"zonewatch/internal/config"
	"zonewatch/internal/redis"
	"zonewatch/internal/scheduler"
	"zonewatch/internal/service"
	"zonewatch/internal/storage/memory"
	"zonewatch/internal/storage/postgres"
	"zonewatch/internal/telemetry"
	"zonewatch/pkg/logger"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Scheduler  *scheduler.Scheduler
	Sender     *service.ZoneEventSender
	Postgres   *postgres.Postgres
	Redis      *redis.Redis

	shutdownTracing func(context.Context) error
}

type stores struct {
	reports   service.ReportStore
	zones     service.ZoneStore
	acks      service.AckStore
	clusterer service.Clusterer
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	c := &Components{logger: logger}

	shutdown, err := telemetry.InitTraceProvider(ctx, cfg.Tracing.Endpoint, cfg.Tracing.ServiceName)
	if err != nil {
		return nil, fmt.Errorf("failed to init tracing: %w", err)
	}
	c.shutdownTracing = shutdown

	checks := map[string]system.Check{}

	var st stores
	switch cfg.Storage.Backend {
	case config.BackendMemory:
		logger.Warn("Using in-memory storage, state is lost on restart")
		mem := memory.New()
		st = stores{reports: mem.Reports(), zones: mem.Zones(), acks: mem.Acks(), clusterer: mem.Clusterer()}
	default:
		logger.Info("Initializing Postgres")
		pg, err := postgres.NewPostgres(ctx, cfg, logger)
		if err != nil {
			logger.Error("Failed to init postgres", slog.Any("error", err))
			return nil, fmt.Errorf("failed to init postgres: %w", err)
		}
		c.Postgres = pg
		st = stores{reports: pg.Reports(), zones: pg.Zones(), acks: pg.Acks(), clusterer: pg.Clusterer()}
		checks["postgres"] = pg.Pool.Ping
	}
	if cfg.Storage.ClusterBackend == config.ClusterLocal {
		st.clusterer = nil
	}

	var (
		events service.ZoneEventPublisher = service.NoopPublisher()
		cache  service.ZoneCache          = service.NoopCache()
		lock   scheduler.TickLock         = &scheduler.LocalLock{}
	)
	if !cfg.Redis.Disabled {
		logger.Info("Initializing Redis")
		rdb, err := redis.NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			c.ShutdownAll()
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		c.Redis = rdb
		checks["redis"] = rdb.Ping

		queue := redis.NewZoneEventQueue(rdb.Client, redis.ZoneEventsKey)
		cache = redis.NewZoneCache(rdb)
		lock = redis.NewTickLock(rdb)

		if !cfg.Webhook.Disabled {
			c.Sender = service.NewZoneEventSender(logger, cfg.Webhook, queue)
		}
		events = zoneEventPublisher(c.Sender != nil, queue)
	} else if !cfg.Webhook.Disabled {
		logger.Warn("Webhook delivery needs Redis, events are dropped")
	}

	reports := service.NewReportService(st.reports, st.zones, events, cache, cfg.Engine, logger)
	lifecycle := service.NewLifecycleEngine(st.reports, st.zones, st.clusterer, events, cache, cfg.Engine, logger)
	alerts := service.NewAlertDetector(st.reports, st.acks, st.clusterer, cfg.Engine, logger)
	acks := service.NewAckService(st.acks, cfg.Engine, logger)
	zones := service.NewZoneReader(st.reports, st.zones, alerts, cache, cfg.Engine, logger)

	svc := service.NewService(reports, lifecycle, alerts, acks, zones)

	c.Scheduler = scheduler.New(lifecycle, lock, cfg.Scheduler, logger)
	c.HttpServer = api.NewServer(ctx, cfg, logger, svc, c.Scheduler, checks)
	logger.Info("Initialized server")

	return c, nil
}

// zoneEventPublisher returns the queue only when a sender drains it.
func zoneEventPublisher(draining bool, queue service.ZoneEventPublisher) service.ZoneEventPublisher {
	if !draining {
		return service.NoopPublisher()
	}
	return queue
}

// Start launches the background loops. The returned WaitGroup finishes when
// ctx is canceled and every loop has returned.
func (c *Components) Start(ctx context.Context, cfg *config.Config) *sync.WaitGroup {
	var wg sync.WaitGroup

	if !cfg.Scheduler.Disabled {
		c.Scheduler.Start(ctx)
	}

	if c.Sender != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Sender.Run(ctx)
		}()
	}

	return &wg
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("Component shutdown started")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if c.Scheduler != nil {
		if err := c.Scheduler.Stop(ctx); err != nil {
			c.logger.Error("Scheduler stop failed", slog.Any("error", err))
		}
	}
	if c.Postgres != nil {
		c.Postgres.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("Redis close failed", slog.String("err", err.Error()))
		}
	}
	if c.shutdownTracing != nil {
		if err := c.shutdownTracing(ctx); err != nil {
			c.logger.Error("Tracing shutdown failed", slog.Any("error", err))
		}
	}

	c.logger.Info("All components stopped",
		slog.Duration("latency", time.Since(start)))
}
