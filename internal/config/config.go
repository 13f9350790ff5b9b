package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env       string          `json:"env"`
	Http      HttpConfig      `json:"http"`
	Postgres  PostgresConfig  `json:"postgres"`
	Redis     RedisConfig     `json:"redis"`
	Auth      AuthConfig      `json:"-"`
	Webhook   WebhookConfig   `json:"webhook"`
	Tracing   TracingConfig   `json:"tracing"`
	Storage   StorageConfig   `json:"storage"`
	Scheduler SchedulerConfig `json:"scheduler"`
	Engine    EngineConfig    `json:"engine"`
}

type HttpConfig struct {
	Port            string        `json:"port"`
	ReadTimeout     time.Duration `json:"read_timeout"`
	WriteTimeout    time.Duration `json:"write_timeout"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	RateLimitRPS    float64       `json:"rate_limit_rps"`
	RateLimitBurst  int           `json:"rate_limit_burst"`
}

type PostgresConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Database string `json:"database"`
	User     string `json:"user"`
	Password string `json:"password,omitempty"`
	SSLMode  string `json:"ssl_mode"`

	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

type RedisConfig struct {
	Addr     string `json:"addr"`
	Password string `json:"password,omitempty"`
	DB       int    `json:"db"`
	Disabled bool   `json:"disabled"`
}

// AuthConfig holds the staff tokens. An empty token disables that role.
type AuthConfig struct {
	AdminToken     string
	ResponderToken string
}

type WebhookConfig struct {
	URL      string        `json:"url"`
	Disabled bool          `json:"disabled"`
	Timeout  time.Duration `json:"timeout"`
	Attempts int           `json:"attempts"`
}

type TracingConfig struct {
	Endpoint    string `json:"endpoint"`
	ServiceName string `json:"service_name"`
}

const (
	BackendPostgres = "postgres"
	BackendMemory   = "memory"

	ClusterPostGIS = "postgis"
	ClusterLocal   = "local"
)

type StorageConfig struct {
	Backend        string `json:"backend"`
	ClusterBackend string `json:"cluster_backend"`
	Migrate        bool   `json:"migrate"`
}

type SchedulerConfig struct {
	Interval    time.Duration `json:"interval"`
	TickTimeout time.Duration `json:"tick_timeout"`
	LockTTL     time.Duration `json:"lock_ttl"`
	Disabled    bool          `json:"disabled"`
}

func Load(ctx context.Context) (*Config, error) {

	stdLogger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		stdLogger.Warn(".env load warning", slog.Any("error", err))
	}

	cfg := &Config{
		Env: getEnv("ENV", "local"),
		Http: HttpConfig{
			Port:            getEnv("HTTP_PORT", ":8080"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
			RateLimitRPS:    getEnvFloat("RATE_LIMIT_RPS", 5),
			RateLimitBurst:  getEnvInt("RATE_LIMIT_BURST", 20),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "pg-local"),
			Port:            getEnvInt("POSTGRES_PORT", 5432),
			Database:        getEnv("POSTGRES_DB", "zonewatch"),
			User:            getEnv("POSTGRES_USER", "postgres"),
			Password:        getEnv("POSTGRES_PASSWORD", "postgres"),
			SSLMode:         getEnv("POSTGRES_SSL_MODE", "disable"),
			MaxConns:        int32(getEnvInt("POSTGRES_MAX_CONNS", 20)),
			MinConns:        1,
			MaxConnLifetime: 1 * time.Hour,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "redis-local:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
			Disabled: getEnvBool("REDIS_DISABLED", false),
		},
		Auth: AuthConfig{
			AdminToken:     getEnv("ADMIN_TOKEN", ""),
			ResponderToken: getEnv("RESPONDER_TOKEN", ""),
		},
		Webhook: WebhookConfig{
			URL:      getEnv("WEBHOOK_URL", ""),
			Disabled: getEnvBool("WEBHOOK_DISABLED", false),
			Timeout:  getEnvDuration("WEBHOOK_TIMEOUT", 5*time.Second),
			Attempts: getEnvInt("WEBHOOK_ATTEMPTS", 3),
		},
		Tracing: TracingConfig{
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			ServiceName: getEnv("OTEL_SERVICE_NAME", "zonewatch"),
		},
		Storage: StorageConfig{
			Backend:        getEnv("STORAGE_BACKEND", BackendPostgres),
			ClusterBackend: getEnv("CLUSTER_BACKEND", ClusterPostGIS),
			Migrate:        getEnvBool("STORAGE_MIGRATE", true),
		},
		Scheduler: SchedulerConfig{
			Interval:    getEnvDuration("TICK_INTERVAL", 60*time.Second),
			TickTimeout: getEnvDuration("TICK_TIMEOUT", 45*time.Second),
			LockTTL:     getEnvDuration("TICK_LOCK_TTL", 55*time.Second),
			Disabled:    getEnvBool("TICK_DISABLED", false),
		},
		Engine: loadEngine(),
	}

	if path := os.Getenv("KIND_POLICY_FILE"); path != "" {
		kinds, err := LoadKindPolicies(path, cfg.Engine.Kinds)
		if err != nil {
			return nil, err
		}
		cfg.Engine.Kinds = kinds
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	stdLogger.Info("Config loaded successfully",
		slog.String("env", cfg.Env),
		slog.String("http_port", cfg.Http.Port),
		slog.String("storage", cfg.Storage.Backend),
		slog.String("cluster", cfg.Storage.ClusterBackend),
		slog.String("postgres_db", cfg.Postgres.Database),
		slog.String("redis_addr", cfg.Redis.Addr),
		slog.Bool("redis_disabled", cfg.Redis.Disabled),
		slog.Duration("tick_interval", cfg.Scheduler.Interval))

	return cfg, nil
}

func loadEngine() EngineConfig {
	d := DefaultEngine()
	d.ClusterWindow = getEnvDuration("CLUSTER_WINDOW", d.ClusterWindow)
	d.ClusterEpsM = getEnvFloat("CLUSTER_EPS_M", d.ClusterEpsM)
	d.MinPoints = getEnvInt("MIN_POINTS", d.MinPoints)
	d.DefaultRadiusM = getEnvFloat("DEFAULT_RADIUS_M", d.DefaultRadiusM)
	d.MergeDistanceM = getEnvFloat("MERGE_DISTANCE_M", d.MergeDistanceM)
	d.CreateCooldown = getEnvDuration("CREATE_COOLDOWN", d.CreateCooldown)
	d.ReopenWindow = getEnvDuration("REOPEN_WINDOW", d.ReopenWindow)
	d.ConfirmRestores = getEnvInt("CONFIRM_RESTORES", d.ConfirmRestores)
	d.MinLifetime = getEnvDuration("MIN_LIFETIME", d.MinLifetime)
	d.SupportFactor = getEnvFloat("SUPPORT_FACTOR", d.SupportFactor)
	d.RestoreMatchRadiusM = getEnvFloat("RESTORE_MATCH_RADIUS_M", d.RestoreMatchRadiusM)
	d.OwnershipRadiusM = getEnvFloat("OWNERSHIP_RADIUS_M", d.OwnershipRadiusM)
	d.OwnershipWindow = getEnvDuration("OWNERSHIP_WINDOW", d.OwnershipWindow)
	d.StoreTimeout = getEnvDuration("STORE_TIMEOUT", d.StoreTimeout)
	d.Alert.Window = getEnvDuration("ALERT_WINDOW", d.Alert.Window)
	d.Alert.MinCount = getEnvInt("ALERT_MIN_COUNT", d.Alert.MinCount)
	d.Alert.GroupRadiusM = getEnvFloat("ALERT_GROUP_RADIUS_M", d.Alert.GroupRadiusM)
	d.Alert.RadiusM = getEnvFloat("ALERT_RADIUS_M", d.Alert.RadiusM)
	d.Map.PointsWindow = getEnvDuration("MAP_POINTS_WINDOW", d.Map.PointsWindow)
	d.Map.MaxReports = getEnvInt("MAP_MAX_REPORTS", d.Map.MaxReports)
	return d
}

func (c *Config) Validate() error {

	if c.Http.Port == "" || (len(c.Http.Port) > 0 && c.Http.Port[0] != ':') {
		return errors.New("HTTP_PORT must start with ':' like ':8080'")
	}

	switch c.Storage.Backend {
	case BackendPostgres:
		if c.Postgres.Host == "" {
			return errors.New("POSTGRES_HOST required")
		}
	case BackendMemory:
		if c.Storage.ClusterBackend == ClusterPostGIS {
			return errors.New("CLUSTER_BACKEND=postgis needs STORAGE_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("STORAGE_BACKEND must be %q or %q", BackendPostgres, BackendMemory)
	}

	if c.Storage.ClusterBackend != ClusterPostGIS && c.Storage.ClusterBackend != ClusterLocal {
		return fmt.Errorf("CLUSTER_BACKEND must be %q or %q", ClusterPostGIS, ClusterLocal)
	}

	if c.Scheduler.Interval < time.Second {
		return errors.New("TICK_INTERVAL must be at least 1s")
	}
	if c.Scheduler.LockTTL <= c.Scheduler.TickTimeout {
		return errors.New("TICK_LOCK_TTL must exceed TICK_TIMEOUT")
	}

	if !c.Webhook.Disabled && c.Webhook.URL == "" {
		c.Webhook.Disabled = true
	}

	return c.Engine.Validate()
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}
