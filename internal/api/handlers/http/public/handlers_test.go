package public_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"log/slog"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"zonewatch/internal/api/handlers/http/public"
	mock_public "zonewatch/internal/api/handlers/http/public/mocks"
	"zonewatch/internal/domain"
	"zonewatch/pkg/e"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(bytes.NewBuffer(nil), &slog.HandlerOptions{Level: slog.LevelError}))
}

func decodeJSON[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v, body=%s", err, rr.Body.String())
	}
	return out
}

type mocks struct {
	reports *mock_public.MockReports
	zones   *mock_public.MockZones
	alerts  *mock_public.MockAlerts
	h       *public.Handler
}

func newHandler(t *testing.T) mocks {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := mocks{
		reports: mock_public.NewMockReports(ctrl),
		zones:   mock_public.NewMockZones(ctrl),
		alerts:  mock_public.NewMockAlerts(ctrl),
	}
	m.h = public.NewHandler(newTestLogger(), m.reports, m.zones, m.alerts)
	return m
}

var center = domain.Point{Lat: 48.8566, Lng: 2.3522}

func TestReportCreate_Created(t *testing.T) {
	t.Parallel()
	m := newHandler(t)

	id := uuid.New()
	m.reports.EXPECT().
		Ingest(gomock.Any(), domain.ReportRequest{Kind: domain.KindPower, Signal: domain.SignalCut, Lat: 48.85, Lng: 2.35, ReporterID: "u1", IdempotencyKey: "hdr-key"}).
		Return(domain.IngestResult{ID: id}, nil).
		Times(1)

	body := `{"kind":"power","signal":"cut","lat":48.85,"lng":2.35,"user_id":"u1"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/reports", bytes.NewBufferString(body))
	req.Header.Set(public.HeaderIdempotencyKey, "hdr-key")
	rr := httptest.NewRecorder()

	m.h.ReportCreate(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected %d got %d body=%s", http.StatusCreated, rr.Code, rr.Body.String())
	}
	got := decodeJSON[domain.IngestResult](t, rr)
	if got.ID != id {
		t.Fatalf("unexpected id %s", got.ID)
	}
}

func TestReportCreate_DuplicateIs200(t *testing.T) {
	t.Parallel()
	m := newHandler(t)

	m.reports.EXPECT().Ingest(gomock.Any(), gomock.Any()).Return(domain.IngestResult{ID: uuid.New(), Duplicate: true}, nil)

	body := `{"kind":"power","signal":"cut","lat":48.85,"lng":2.35,"idempotency_key":"k"}`
	rr := httptest.NewRecorder()
	m.h.ReportCreate(rr, httptest.NewRequest(http.MethodPost, "/api/v1/reports", bytes.NewBufferString(body)))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d", http.StatusOK, rr.Code)
	}
}

func TestReportCreate_ErrorMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		err   error
		code  int
		label string
		field string
	}{
		{"invalid field", e.InvalidField("lat", "must be within [-90, 90]"), http.StatusBadRequest, "invalid_input", "lat"},
		{"not owner", e.ErrNotOwner, http.StatusForbidden, "not_owner", ""},
		{"conflict", e.ErrConflict, http.StatusConflict, "conflict", ""},
		{"store down", e.ErrCanceled, http.StatusServiceUnavailable, "unavailable", ""},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal error", ""},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			m := newHandler(t)
			m.reports.EXPECT().Ingest(gomock.Any(), gomock.Any()).Return(domain.IngestResult{}, tt.err)

			body := `{"kind":"power","signal":"restored","lat":48.85,"lng":2.35}`
			rr := httptest.NewRecorder()
			m.h.ReportCreate(rr, httptest.NewRequest(http.MethodPost, "/api/v1/reports", bytes.NewBufferString(body)))

			if rr.Code != tt.code {
				t.Fatalf("expected %d got %d body=%s", tt.code, rr.Code, rr.Body.String())
			}
			got := decodeJSON[map[string]string](t, rr)
			if got["error"] != tt.label || got["field"] != tt.field {
				t.Fatalf("unexpected body: %v", got)
			}
		})
	}
}

func TestReportCreate_BadBody_400(t *testing.T) {
	t.Parallel()

	for name, body := range map[string]string{
		"invalid json":  "{bad json",
		"empty":         "",
		"unknown field": `{"kind":"power","signal":"cut","lat":1,"lng":1,"foo":1}`,
		"trailing data": `{"kind":"power","signal":"cut","lat":1,"lng":1}{"x":1}`,
	} {
		body := body
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			m := newHandler(t)
			m.reports.EXPECT().Ingest(gomock.Any(), gomock.Any()).Times(0)

			rr := httptest.NewRecorder()
			m.h.ReportCreate(rr, httptest.NewRequest(http.MethodPost, "/api/v1/reports", bytes.NewBufferString(body)))

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected %d got %d body=%s", http.StatusBadRequest, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestZonesNear_OK(t *testing.T) {
	t.Parallel()
	m := newHandler(t)

	restoredAt := time.Date(2026, 3, 1, 11, 0, 0, 0, time.UTC)
	zone := domain.Zone{ID: uuid.New(), Kind: domain.KindWater, Center: center, RadiusM: 350, State: domain.RestoredState(restoredAt)}
	kind := domain.KindWater
	m.zones.EXPECT().
		QueryZones(gomock.Any(), domain.ZoneQuery{Kind: &kind, Center: center, RadiusM: 1500}).
		Return([]domain.Zone{zone}, nil)

	rr := httptest.NewRecorder()
	m.h.ZonesNear(rr, httptest.NewRequest(http.MethodGet, "/api/v1/zones?lat=48.8566&lng=2.3522&radius_m=1500&kind=water", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
	got := decodeJSON[public.ZonesResponse](t, rr)
	if len(got.Zones) != 1 || got.Zones[0].Status != domain.ZoneRestored || got.Zones[0].RestoredAt == nil || !got.Zones[0].RestoredAt.Equal(restoredAt) {
		t.Fatalf("unexpected zones: %+v", got.Zones)
	}
}

func TestZonesNear_MissingParams_400(t *testing.T) {
	t.Parallel()

	for _, url := range []string{
		"/api/v1/zones?lng=2&radius_m=10",
		"/api/v1/zones?lat=1&lng=2",
		"/api/v1/zones?lat=abc&lng=2&radius_m=10",
		"/api/v1/zones?lat=1&lng=2&radius_m=NaN",
		"/api/v1/zones?lat=1&lng=2&radius_m=Inf",
		"/api/v1/zones?lat=NaN&lng=2&radius_m=10",
	} {
		m := newHandler(t)
		m.zones.EXPECT().QueryZones(gomock.Any(), gomock.Any()).Times(0)

		rr := httptest.NewRecorder()
		m.h.ZonesNear(rr, httptest.NewRequest(http.MethodGet, url, nil))
		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400 got %d", url, rr.Code)
		}
	}
}

func TestZonesAll_Defaults(t *testing.T) {
	t.Parallel()
	m := newHandler(t)

	m.zones.EXPECT().
		ListZones(gomock.Any(), domain.GlobalZoneQuery{ActiveOnly: true}).
		Return([]domain.Zone{}, nil)

	rr := httptest.NewRecorder()
	m.h.ZonesAll(rr, httptest.NewRequest(http.MethodGet, "/api/v1/zones/all", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d", http.StatusOK, rr.Code)
	}
	if body := rr.Body.String(); body != "{\"zones\":[]}\n" {
		t.Fatalf("unexpected body %q", body)
	}
}

func TestZonesAll_Params(t *testing.T) {
	t.Parallel()
	m := newHandler(t)

	kind := domain.KindFire
	m.zones.EXPECT().
		ListZones(gomock.Any(), domain.GlobalZoneQuery{Kind: &kind, ActiveOnly: false, Limit: 100}).
		Return(nil, nil)

	rr := httptest.NewRecorder()
	m.h.ZonesAll(rr, httptest.NewRequest(http.MethodGet, "/api/v1/zones/all?kind=fire&active_only=false&limit=100", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d", http.StatusOK, rr.Code)
	}
}

func TestAlertZones_ParsesQuery(t *testing.T) {
	t.Parallel()
	m := newHandler(t)

	m.alerts.EXPECT().
		DetectAlertZones(gomock.Any(), domain.AlertQuery{
			Center:       center,
			RadiusM:      3000,
			Window:       90 * time.Minute,
			MinCount:     4,
			GroupRadiusM: 80,
			AckWindow:    time.Hour,
		}).
		Return([]domain.AlertZone{{Kind: domain.KindFire, Center: center, Count: 4, RadiusM: 80}}, nil)

	url := "/api/v1/alert-zones?lat=48.8566&lng=2.3522&radius_m=3000&window=90m&min_count=4&group_radius_m=80&ack_window=1h"
	rr := httptest.NewRecorder()
	m.h.AlertZones(rr, httptest.NewRequest(http.MethodGet, url, nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
	got := decodeJSON[public.AlertZonesResponse](t, rr)
	if len(got.AlertZones) != 1 || got.AlertZones[0].Count != 4 || got.AlertZones[0].Lat != center.Lat {
		t.Fatalf("unexpected alert zones: %+v", got.AlertZones)
	}
}

func TestAlertZones_BadDuration_400(t *testing.T) {
	t.Parallel()
	m := newHandler(t)
	m.alerts.EXPECT().DetectAlertZones(gomock.Any(), gomock.Any()).Times(0)

	rr := httptest.NewRecorder()
	m.h.AlertZones(rr, httptest.NewRequest(http.MethodGet, "/api/v1/alert-zones?lat=1&lng=1&window=soon", nil))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
	if got := decodeJSON[map[string]string](t, rr); got["field"] != "window" {
		t.Fatalf("unexpected body %v", got)
	}
}

func TestMapView_Local(t *testing.T) {
	t.Parallel()
	m := newHandler(t)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	m.zones.EXPECT().
		Map(gomock.Any(), domain.MapQuery{Center: center, RadiusM: 2000}).
		Return(domain.MapView{
			Zones:       []domain.Zone{{ID: uuid.New(), Kind: domain.KindPower, Center: center, RadiusM: 350}},
			LastReports: []domain.Report{{ID: uuid.New(), Kind: domain.KindPower, Signal: domain.SignalCut, Location: center, ReporterID: "secret"}},
			ServerNow:   now,
		}, nil)

	rr := httptest.NewRecorder()
	m.h.MapView(rr, httptest.NewRequest(http.MethodGet, "/api/v1/map?lat=48.8566&lng=2.3522&radius_m=2000", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
	if rr.Header().Get("Cache-Control") == "" {
		t.Fatalf("map responses must not be cached")
	}
	if bytes.Contains(rr.Body.Bytes(), []byte("secret")) {
		t.Fatalf("reporter id leaked: %s", rr.Body.String())
	}
	got := decodeJSON[public.MapResponse](t, rr)
	if len(got.Zones) != 1 || got.Zones[0].Status != domain.ZoneActive || len(got.LastReports) != 1 || got.AlertZones == nil || !got.ServerNow.Equal(now) {
		t.Fatalf("unexpected map: %+v", got)
	}
}

func TestMapView_GlobalNeedsNoCenter(t *testing.T) {
	t.Parallel()
	m := newHandler(t)

	m.zones.EXPECT().Map(gomock.Any(), domain.MapQuery{Global: true}).Return(domain.MapView{}, nil)

	rr := httptest.NewRecorder()
	m.h.MapView(rr, httptest.NewRequest(http.MethodGet, "/api/v1/map?global=true", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected %d got %d body=%s", http.StatusOK, rr.Code, rr.Body.String())
	}
}
