package service_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"zonewatch/internal/config"
	"zonewatch/internal/domain"
	"zonewatch/internal/service"
	mock_service "zonewatch/internal/service/mocks"
	"zonewatch/pkg/e"
	"zonewatch/pkg/logger"
)

type readerDeps struct {
	reports *mock_service.MockReportStore
	zones   *mock_service.MockZoneStore
	alerts  *mock_service.MockAlertDetector
	cache   *mock_service.MockZoneCache
	svc     service.ZoneReader
}

func newReader(t *testing.T) readerDeps {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	d := readerDeps{
		reports: mock_service.NewMockReportStore(ctrl),
		zones:   mock_service.NewMockZoneStore(ctrl),
		alerts:  mock_service.NewMockAlertDetector(ctrl),
		cache:   mock_service.NewMockZoneCache(ctrl),
	}
	d.svc = service.NewZoneReader(d.reports, d.zones, d.alerts, d.cache, config.DefaultEngine(), logger.Discard(),
		service.WithClock(func() time.Time { return fixedNow }))
	return d
}

func sampleZone() domain.Zone {
	return domain.Zone{ID: uuid.New(), Kind: domain.KindPower, Center: base, RadiusM: 350, StartedAt: fixedNow, OpenedAt: fixedNow}
}

func TestQueryZones_PassesDiscFilter(t *testing.T) {
	t.Parallel()
	d := newReader(t)

	kind := domain.KindWater
	z := sampleZone()
	d.zones.EXPECT().List(gomock.Any(), domain.ZoneFilter{
		Kinds: []domain.Kind{domain.KindWater},
		Near:  &domain.Circle{Center: base, RadiusM: 1000},
	}).Return([]domain.Zone{z}, nil)

	got, err := d.svc.QueryZones(context.Background(), domain.ZoneQuery{Kind: &kind, Center: base, RadiusM: 1000})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].ID != z.ID {
		t.Fatalf("unexpected zones: %+v", got)
	}
}

func TestQueryZones_Invalid(t *testing.T) {
	t.Parallel()
	unknown := domain.Kind("lava")

	tests := []struct {
		name  string
		q     domain.ZoneQuery
		field string
	}{
		{"zero radius", domain.ZoneQuery{Center: base}, "radius_m"},
		{"NaN radius", domain.ZoneQuery{Center: base, RadiusM: math.NaN()}, "radius_m"},
		{"infinite radius", domain.ZoneQuery{Center: base, RadiusM: math.Inf(1)}, "radius_m"},
		{"bad center", domain.ZoneQuery{Center: domain.Point{Lng: 190}, RadiusM: 10}, "lat"},
		{"unknown kind", domain.ZoneQuery{Kind: &unknown, Center: base, RadiusM: 10}, "kind"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			d := newReader(t)
			d.zones.EXPECT().List(gomock.Any(), gomock.Any()).Times(0)

			_, err := d.svc.QueryZones(context.Background(), tt.q)
			var fe *e.FieldError
			if !errors.As(err, &fe) || fe.Field != tt.field {
				t.Fatalf("expected invalid %s, got %v", tt.field, err)
			}
		})
	}
}

func TestListZones_CacheHitSkipsStore(t *testing.T) {
	t.Parallel()
	d := newReader(t)

	z := sampleZone()
	d.cache.EXPECT().Get(gomock.Any(), "kind=all|active=true|limit=2000").Return([]domain.Zone{z}, true, nil)
	d.zones.EXPECT().List(gomock.Any(), gomock.Any()).Times(0)

	got, err := d.svc.ListZones(context.Background(), domain.GlobalZoneQuery{ActiveOnly: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(got) != 1 || got[0].ID != z.ID {
		t.Fatalf("unexpected zones: %+v", got)
	}
}

func TestListZones_MissFillsCache(t *testing.T) {
	t.Parallel()
	d := newReader(t)

	kind := domain.KindFire
	zones := []domain.Zone{sampleZone()}
	key := "kind=fire|active=false|limit=5000"
	gomock.InOrder(
		d.cache.EXPECT().Get(gomock.Any(), key).Return(nil, false, nil),
		d.zones.EXPECT().List(gomock.Any(), domain.ZoneFilter{Kinds: []domain.Kind{domain.KindFire}, Limit: 5000}).Return(zones, nil),
		d.cache.EXPECT().Set(gomock.Any(), key, zones).Return(nil),
	)

	if _, err := d.svc.ListZones(context.Background(), domain.GlobalZoneQuery{Kind: &kind, Limit: 100000}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestListZones_CacheFailureFallsThrough(t *testing.T) {
	t.Parallel()
	d := newReader(t)

	d.cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, false, errors.New("redis down"))
	d.zones.EXPECT().List(gomock.Any(), domain.ZoneFilter{Status: domain.ZoneActive, Limit: 10}).Return([]domain.Zone{}, nil)
	d.cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	got, err := d.svc.ListZones(context.Background(), domain.GlobalZoneQuery{ActiveOnly: true, Limit: 10})
	if err != nil {
		t.Fatalf("cache errors must not fail the read: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("unexpected zones: %+v", got)
	}
}

func TestMap_LocalView(t *testing.T) {
	t.Parallel()
	d := newReader(t)

	z := sampleZone()
	alert := domain.AlertZone{Kind: domain.KindPower, Center: base, Count: 3, RadiusM: 100}
	recent := []domain.Report{{ID: uuid.New(), Kind: domain.KindPower, Signal: domain.SignalCut, Location: base}}

	d.zones.EXPECT().List(gomock.Any(), gomock.Any()).Return([]domain.Zone{z}, nil)
	d.alerts.EXPECT().DetectAlertZones(gomock.Any(), domain.AlertQuery{Center: base, RadiusM: 2000}).Return([]domain.AlertZone{alert}, nil)
	d.reports.EXPECT().List(gomock.Any(), domain.ReportFilter{
		Signal:      domain.SignalCut,
		Since:       fixedNow.Add(-4 * time.Hour),
		Near:        &domain.Circle{Center: base, RadiusM: 2000},
		Limit:       500,
		NewestFirst: true,
	}).Return(recent, nil)

	view, err := d.svc.Map(context.Background(), domain.MapQuery{Center: base, RadiusM: 2000})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(view.Zones) != 1 || len(view.AlertZones) != 1 || len(view.LastReports) != 1 {
		t.Fatalf("unexpected view: %+v", view)
	}
	if !view.ServerNow.Equal(fixedNow) {
		t.Fatalf("server_now = %s", view.ServerNow)
	}
}

func TestMap_GlobalViewOnlyActiveZones(t *testing.T) {
	t.Parallel()
	d := newReader(t)

	d.cache.EXPECT().Get(gomock.Any(), "kind=all|active=true|limit=2000").Return(nil, false, nil)
	d.zones.EXPECT().List(gomock.Any(), domain.ZoneFilter{Status: domain.ZoneActive, Limit: 2000}).Return([]domain.Zone{sampleZone()}, nil)
	d.cache.EXPECT().Set(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	d.alerts.EXPECT().DetectAlertZones(gomock.Any(), gomock.Any()).Times(0)
	d.reports.EXPECT().List(gomock.Any(), gomock.Any()).Times(0)

	view, err := d.svc.Map(context.Background(), domain.MapQuery{Global: true})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(view.Zones) != 1 || view.AlertZones == nil || view.LastReports == nil {
		t.Fatalf("unexpected view: %+v", view)
	}
}
