package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ReportsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zonewatch_reports_ingested_total",
		Help: "Reports received, labelled by kind, signal and outcome.",
	}, []string{"kind", "signal", "outcome"})

	ZoneTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zonewatch_zone_transitions_total",
		Help: "Zone state changes, labelled by kind, transition and close reason.",
	}, []string{"kind", "transition", "reason"})

	Ticks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zonewatch_ticks_total",
		Help: "Lifecycle ticks, labelled by result (ok, error, skipped).",
	}, []string{"result"})

	TickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "zonewatch_tick_duration_ms",
		Help:    "Lifecycle tick latency in milliseconds.",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	})

	AlertZonesReturned = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "zonewatch_alert_zones_returned",
		Help:    "Alert zones returned per detection query.",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50},
	})

	ZoneEventsSent = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zonewatch_zone_events_sent_total",
		Help: "Zone event webhook deliveries, labelled by status.",
	}, []string{"status"})

	ZoneCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zonewatch_zone_cache_lookups_total",
		Help: "Global zone cache lookups, labelled by result (hit, miss, error).",
	}, []string{"result"})
)

func Handler() http.Handler { return promhttp.Handler() }
