package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"zonewatch/internal/domain"
)

func TestLoad_MemoryBackendDefaults(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", BackendMemory)
	t.Setenv("CLUSTER_BACKEND", ClusterLocal)
	t.Setenv("WEBHOOK_URL", "")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.MergeDistanceM != 400 || cfg.Engine.ClusterWindow != 30*time.Minute {
		t.Fatalf("unexpected engine defaults: %+v", cfg.Engine)
	}
	if !cfg.Webhook.Disabled {
		t.Fatalf("webhook without URL should be disabled")
	}
	if cfg.Scheduler.Interval != time.Minute {
		t.Fatalf("interval = %s", cfg.Scheduler.Interval)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", BackendMemory)
	t.Setenv("CLUSTER_BACKEND", ClusterLocal)
	t.Setenv("MERGE_DISTANCE_M", "250")
	t.Setenv("CONFIRM_RESTORES", "3")
	t.Setenv("CREATE_COOLDOWN", "2m")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.MergeDistanceM != 250 || cfg.Engine.ConfirmRestores != 3 || cfg.Engine.CreateCooldown != 2*time.Minute {
		t.Fatalf("overrides not applied: %+v", cfg.Engine)
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Http.Port = "8080" }},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "sqlite" }},
		{"postgis cluster on memory", func(c *Config) {
			c.Storage.Backend = BackendMemory
			c.Storage.ClusterBackend = ClusterPostGIS
		}},
		{"lock shorter than tick", func(c *Config) { c.Scheduler.LockTTL = c.Scheduler.TickTimeout }},
		{"min points", func(c *Config) { c.Engine.MinPoints = 0 }},
		{"alert min count", func(c *Config) { c.Engine.Alert.MinCount = 1 }},
		{"tracked kind without ttl", func(c *Config) {
			c.Engine.Kinds[domain.KindPower] = KindPolicy{Tracked: true, MaxInactivity: time.Minute}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			if err := c.Validate(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadKindPolicies_Overlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kinds.yaml")
	body := []byte("kinds:\n  medical:\n    tracked: true\n    ttl: 1h\n    max_inactivity: 30m\n  fire:\n    tracked: true\n    incident: true\n    ttl: 4h\n    incident_grace: 15m\n    max_inactivity: 2h\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatal(err)
	}

	base := DefaultKindPolicies()
	got, err := LoadKindPolicies(path, base)
	if err != nil {
		t.Fatalf("LoadKindPolicies: %v", err)
	}
	if !got[domain.KindMedical].Tracked || got[domain.KindMedical].TTL != time.Hour {
		t.Fatalf("medical not overlaid: %+v", got[domain.KindMedical])
	}
	if got[domain.KindFire].IncidentGrace != 15*time.Minute {
		t.Fatalf("fire grace = %s", got[domain.KindFire].IncidentGrace)
	}
	if got[domain.KindPower] != base[domain.KindPower] {
		t.Fatalf("untouched kind changed")
	}
	if base[domain.KindMedical].Tracked {
		t.Fatalf("base map mutated")
	}
}

func TestLoadKindPolicies_UnknownKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kinds.yaml")
	if err := os.WriteFile(path, []byte("kinds:\n  lava:\n    tracked: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadKindPolicies(path, DefaultKindPolicies()); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func TestTrackedKinds(t *testing.T) {
	got := DefaultEngine().TrackedKinds()
	want := []domain.Kind{domain.KindPower, domain.KindWater, domain.KindTraffic, domain.KindAccident, domain.KindFire, domain.KindFlood}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v", got)
		}
	}
}

func validConfig() *Config {
	return &Config{
		Http:     HttpConfig{Port: ":8080"},
		Postgres: PostgresConfig{Host: "localhost"},
		Storage:  StorageConfig{Backend: BackendPostgres, ClusterBackend: ClusterPostGIS},
		Scheduler: SchedulerConfig{
			Interval:    time.Minute,
			TickTimeout: 30 * time.Second,
			LockTTL:     50 * time.Second,
		},
		Engine: DefaultEngine(),
	}
}
