package service

import (
	"context"

	"zonewatch/internal/domain"
)

//go:generate mockgen -source=service.go -destination=mocks/mock.go

// ReportIngestor accepts citizen and staff reports.
type ReportIngestor interface {
	Ingest(ctx context.Context, req domain.ReportRequest) (domain.IngestResult, error)
}

// ZoneLifecycle advances zone state. Callers serialize ticks.
type ZoneLifecycle interface {
	Tick(ctx context.Context) (domain.TickSummary, error)
}

type AlertDetector interface {
	DetectAlertZones(ctx context.Context, q domain.AlertQuery) ([]domain.AlertZone, error)
}

type AckRegistry interface {
	Acknowledge(ctx context.Context, req domain.AckRequest) (domain.Acknowledgment, error)
}

type ZoneReader interface {
	QueryZones(ctx context.Context, q domain.ZoneQuery) ([]domain.Zone, error)
	ListZones(ctx context.Context, q domain.GlobalZoneQuery) ([]domain.Zone, error)
	Map(ctx context.Context, q domain.MapQuery) (domain.MapView, error)
}

type Service struct {
	Reports   ReportIngestor
	Lifecycle ZoneLifecycle
	Alerts    AlertDetector
	Acks      AckRegistry
	Zones     ZoneReader
}

func NewService(
	reports ReportIngestor,
	lifecycle ZoneLifecycle,
	alerts AlertDetector,
	acks AckRegistry,
	zones ZoneReader,
) *Service {
	return &Service{
		Reports:   reports,
		Lifecycle: lifecycle,
		Alerts:    alerts,
		Acks:      acks,
		Zones:     zones,
	}
}

func (s *Service) Ingest(ctx context.Context, req domain.ReportRequest) (domain.IngestResult, error) {
	return s.Reports.Ingest(ctx, req)
}

func (s *Service) Tick(ctx context.Context) (domain.TickSummary, error) {
	return s.Lifecycle.Tick(ctx)
}

func (s *Service) DetectAlertZones(ctx context.Context, q domain.AlertQuery) ([]domain.AlertZone, error) {
	return s.Alerts.DetectAlertZones(ctx, q)
}

func (s *Service) Acknowledge(ctx context.Context, req domain.AckRequest) (domain.Acknowledgment, error) {
	return s.Acks.Acknowledge(ctx, req)
}

func (s *Service) QueryZones(ctx context.Context, q domain.ZoneQuery) ([]domain.Zone, error) {
	return s.Zones.QueryZones(ctx, q)
}

func (s *Service) ListZones(ctx context.Context, q domain.GlobalZoneQuery) ([]domain.Zone, error) {
	return s.Zones.ListZones(ctx, q)
}

func (s *Service) Map(ctx context.Context, q domain.MapQuery) (domain.MapView, error) {
	return s.Zones.Map(ctx, q)
}
