package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"zonewatch/internal/config"
	"zonewatch/internal/scheduler"
	"zonewatch/internal/service"
	"zonewatch/internal/storage/memory"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{
		Http:      config.HttpConfig{RateLimitRPS: 1000, RateLimitBurst: 1000},
		Auth:      config.AuthConfig{AdminToken: "admin-secret", ResponderToken: "responder-secret"},
		Scheduler: config.SchedulerConfig{Interval: time.Minute, TickTimeout: 10 * time.Second, LockTTL: time.Minute},
		Engine:    config.DefaultEngine(),
	}

	mem := memory.New()
	alerts := service.NewAlertDetector(mem.Reports(), mem.Acks(), nil, cfg.Engine, logger)
	lifecycle := service.NewLifecycleEngine(mem.Reports(), mem.Zones(), nil, nil, nil, cfg.Engine, logger)
	svc := service.NewService(
		service.NewReportService(mem.Reports(), mem.Zones(), nil, nil, cfg.Engine, logger),
		lifecycle,
		alerts,
		service.NewAckService(mem.Acks(), cfg.Engine, logger),
		service.NewZoneReader(mem.Reports(), mem.Zones(), alerts, nil, cfg.Engine, logger),
	)
	sched := scheduler.New(lifecycle, &scheduler.LocalLock{}, cfg.Scheduler, logger)

	srv := httptest.NewServer(NewServer(ctx, cfg, logger, svc, sched, nil).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string, headers map[string]string) *http.Response {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestRouter_ReportTickQuery(t *testing.T) {
	srv := newTestServer(t)

	for i, body := range []string{
		`{"kind":"power","signal":"cut","lat":48.8566,"lng":2.3522,"user_id":"u1"}`,
		`{"kind":"power","signal":"cut","lat":48.8569,"lng":2.3522,"user_id":"u2"}`,
		`{"kind":"power","signal":"cut","lat":48.8566,"lng":2.3526,"user_id":"u3"}`,
	} {
		resp := do(t, srv, http.MethodPost, "/api/v1/reports", body, nil)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("report %d: status %d", i, resp.StatusCode)
		}
	}

	resp := do(t, srv, http.MethodPost, "/api/v1/admin/tick", "", map[string]string{"X-Admin-Token": "admin-secret"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("tick: status %d", resp.StatusCode)
	}
	var summary struct {
		Created int `json:"created"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&summary); err != nil {
		t.Fatalf("decode tick: %v", err)
	}
	if summary.Created != 1 {
		t.Fatalf("created = %d, want 1", summary.Created)
	}

	resp = do(t, srv, http.MethodGet, "/api/v1/zones?lat=48.8566&lng=2.3522&radius_m=1000", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("zones: status %d", resp.StatusCode)
	}
	var zones struct {
		Zones []json.RawMessage `json:"zones"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&zones); err != nil {
		t.Fatalf("decode zones: %v", err)
	}
	if len(zones.Zones) != 1 {
		t.Fatalf("zones = %d, want 1", len(zones.Zones))
	}
}

func TestRouter_Auth(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		headers map[string]string
		code    int
	}{
		{"tick without token", http.MethodPost, "/api/v1/admin/tick", "", nil, http.StatusUnauthorized},
		{"tick as responder", http.MethodPost, "/api/v1/admin/tick", "", map[string]string{"X-Responder-Token": "responder-secret"}, http.StatusUnauthorized},
		{"wrong admin token", http.MethodGet, "/api/v1/health", "", map[string]string{"X-Admin-Token": "nope"}, http.StatusUnauthorized},
		{"ack as citizen", http.MethodPost, "/api/v1/staff/acks", `{"kind":"fire","lat":1,"lng":1}`, nil, http.StatusUnauthorized},
		{"ack as responder", http.MethodPost, "/api/v1/staff/acks", `{"kind":"fire","lat":1,"lng":1}`, map[string]string{"X-Responder-Token": "responder-secret"}, http.StatusCreated},
		{"ack as admin", http.MethodPost, "/api/v1/staff/acks", `{"kind":"fire","lat":1,"lng":1}`, map[string]string{"X-Admin-Token": "admin-secret"}, http.StatusCreated},
		{"health", http.MethodGet, "/api/v1/health", "", nil, http.StatusOK},
		{"metrics", http.MethodGet, "/metrics", "", nil, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := do(t, srv, tt.method, tt.path, tt.body, tt.headers)
			if resp.StatusCode != tt.code {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tt.code)
			}
		})
	}
}
