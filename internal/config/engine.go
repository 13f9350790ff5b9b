package config

import (
	"fmt"
	"os"
	"time"

	"zonewatch/internal/domain"

	"gopkg.in/yaml.v3"
)

// KindPolicy is the per-kind part of the lifecycle parameter set.
type KindPolicy struct {
	Tracked       bool          `yaml:"tracked" json:"tracked"`
	Incident      bool          `yaml:"incident" json:"incident"`
	TTL           time.Duration `yaml:"ttl" json:"ttl"`
	IncidentGrace time.Duration `yaml:"incident_grace" json:"incident_grace"`
	MaxInactivity time.Duration `yaml:"max_inactivity" json:"max_inactivity"`
}

// EngineConfig is passed to the ingestion service and the lifecycle engine at
// construction. Radii are meters.
type EngineConfig struct {
	ClusterWindow       time.Duration `json:"cluster_window"`
	ClusterEpsM         float64       `json:"cluster_eps_m"`
	MinPoints           int           `json:"min_points"`
	DefaultRadiusM      float64       `json:"default_radius_m"`
	MergeDistanceM      float64       `json:"merge_distance_m"`
	CreateCooldown      time.Duration `json:"create_cooldown"`
	ReopenWindow        time.Duration `json:"reopen_window"`
	ConfirmRestores     int           `json:"confirm_restores"`
	MinLifetime         time.Duration `json:"min_lifetime"`
	SupportFactor       float64       `json:"support_factor"`
	RestoreMatchRadiusM float64       `json:"restore_match_radius_m"`
	OwnershipRadiusM    float64       `json:"ownership_radius_m"`
	OwnershipWindow     time.Duration `json:"ownership_window"`
	StoreTimeout        time.Duration `json:"store_timeout"`

	Alert AlertDefaults `json:"alert"`
	Map   MapDefaults   `json:"map"`

	Kinds map[domain.Kind]KindPolicy `json:"kinds"`
}

// AlertDefaults fill in alert-zone query parameters the caller leaves out.
type AlertDefaults struct {
	Window       time.Duration `json:"window"`
	MinCount     int           `json:"min_count"`
	GroupRadiusM float64       `json:"group_radius_m"`
	RadiusM      float64       `json:"radius_m"`
}

// MapDefaults bound the recent-report layer of the map view.
type MapDefaults struct {
	PointsWindow time.Duration `json:"points_window"`
	MaxReports   int           `json:"max_reports"`
}

func DefaultEngine() EngineConfig {
	return EngineConfig{
		ClusterWindow:       30 * time.Minute,
		ClusterEpsM:         150,
		MinPoints:           2,
		DefaultRadiusM:      350,
		MergeDistanceM:      400,
		CreateCooldown:      10 * time.Minute,
		ReopenWindow:        3 * time.Hour,
		ConfirmRestores:     2,
		MinLifetime:         5 * time.Minute,
		SupportFactor:       1.5,
		RestoreMatchRadiusM: 200,
		OwnershipRadiusM:    150,
		OwnershipWindow:     24 * time.Hour,
		StoreTimeout:        8 * time.Second,
		Alert: AlertDefaults{
			Window:       3 * time.Hour,
			MinCount:     3,
			GroupRadiusM: 100,
			RadiusM:      5000,
		},
		Map: MapDefaults{
			PointsWindow: 4 * time.Hour,
			MaxReports:   500,
		},
		Kinds: DefaultKindPolicies(),
	}
}

func DefaultKindPolicies() map[domain.Kind]KindPolicy {
	return map[domain.Kind]KindPolicy{
		domain.KindPower:    {Tracked: true, TTL: 12 * time.Hour, MaxInactivity: 45 * time.Minute},
		domain.KindWater:    {Tracked: true, TTL: 12 * time.Hour, MaxInactivity: 45 * time.Minute},
		domain.KindTraffic:  {Tracked: true, Incident: true, TTL: 2 * time.Hour, IncidentGrace: 20 * time.Minute, MaxInactivity: 45 * time.Minute},
		domain.KindAccident: {Tracked: true, Incident: true, TTL: 6 * time.Hour, IncidentGrace: 30 * time.Minute, MaxInactivity: 3 * time.Hour},
		domain.KindFire:     {Tracked: true, Incident: true, TTL: 8 * time.Hour, IncidentGrace: time.Hour, MaxInactivity: 4 * time.Hour},
		domain.KindFlood:    {Tracked: true, Incident: true, TTL: 48 * time.Hour, IncidentGrace: 3 * time.Hour, MaxInactivity: 24 * time.Hour},
		domain.KindAssault:  {},
		domain.KindWeapon:   {},
		domain.KindMedical:  {},
	}
}

func (c EngineConfig) Policy(k domain.Kind) KindPolicy {
	return c.Kinds[k]
}

func (c EngineConfig) Tracked(k domain.Kind) bool {
	return c.Kinds[k].Tracked
}

// TrackedKinds returns the zone-tracked kinds in domain.Kinds order.
func (c EngineConfig) TrackedKinds() []domain.Kind {
	out := make([]domain.Kind, 0, len(c.Kinds))
	for _, k := range domain.Kinds {
		if c.Kinds[k].Tracked {
			out = append(out, k)
		}
	}
	return out
}

func (c EngineConfig) Validate() error {
	if c.MinPoints < 1 {
		return fmt.Errorf("engine: MIN_POINTS must be >= 1")
	}
	if c.ConfirmRestores < 1 {
		return fmt.Errorf("engine: CONFIRM_RESTORES must be >= 1")
	}
	if c.ClusterEpsM <= 0 || c.DefaultRadiusM <= 0 || c.MergeDistanceM <= 0 {
		return fmt.Errorf("engine: radii must be positive")
	}
	if c.SupportFactor < 1 {
		return fmt.Errorf("engine: SUPPORT_FACTOR must be >= 1")
	}
	if c.Alert.MinCount < 2 {
		return fmt.Errorf("engine: ALERT_MIN_COUNT must be >= 2")
	}
	for k, p := range c.Kinds {
		if !k.Valid() {
			return fmt.Errorf("engine: unknown kind %q in policy", k)
		}
		if p.Tracked && (p.TTL <= 0 || p.MaxInactivity <= 0) {
			return fmt.Errorf("engine: tracked kind %q needs ttl and max_inactivity", k)
		}
		if p.Incident && p.IncidentGrace <= 0 {
			return fmt.Errorf("engine: incident kind %q needs incident_grace", k)
		}
	}
	return nil
}

type kindPolicyFile struct {
	Kinds map[domain.Kind]KindPolicy `yaml:"kinds"`
}

// LoadKindPolicies overlays the kinds listed in a YAML file on top of base.
//
//	kinds:
//	  fire:
//	    tracked: true
//	    incident: true
//	    ttl: 8h
//	    incident_grace: 1h
//	    max_inactivity: 4h
func LoadKindPolicies(path string, base map[domain.Kind]KindPolicy) (map[domain.Kind]KindPolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read kind policy %s: %w", path, err)
	}
	var f kindPolicyFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse kind policy %s: %w", path, err)
	}
	out := make(map[domain.Kind]KindPolicy, len(base))
	for k, p := range base {
		out[k] = p
	}
	for k, p := range f.Kinds {
		if !k.Valid() {
			return nil, fmt.Errorf("kind policy %s: unknown kind %q", path, k)
		}
		out[k] = p
	}
	return out, nil
}
