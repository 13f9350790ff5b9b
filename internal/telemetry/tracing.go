// Package telemetry configures OpenTelemetry tracing.
//
// Custom span attributes use the `zonewatch.` prefix.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "zonewatch/service"

func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// InitTraceProvider installs an OTLP gRPC trace provider. An empty endpoint
// leaves the global noop provider in place.
func InitTraceProvider(ctx context.Context, endpoint, serviceName string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithHost(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

func StartIngestSpan(ctx context.Context, kind, signal string) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "report.ingest",
		trace.WithAttributes(
			attribute.String("zonewatch.kind", kind),
			attribute.String("zonewatch.signal", signal),
		),
	)
}

func StartTickSpan(ctx context.Context) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "zones.tick", trace.WithSpanKind(trace.SpanKindInternal))
}

// EndTickSpan records the tick summary counts and ends the span.
func EndTickSpan(span trace.Span, reopened, closed, created int, err error) {
	span.SetAttributes(
		attribute.Int("zonewatch.reopened", reopened),
		attribute.Int("zonewatch.closed", closed),
		attribute.Int("zonewatch.created", created),
	)
	End(span, err)
}

func StartAlertSpan(ctx context.Context, radiusM float64, minCount int) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "alerts.detect",
		trace.WithAttributes(
			attribute.Float64("zonewatch.radius_m", radiusM),
			attribute.Int("zonewatch.min_count", minCount),
		),
	)
}

// End marks span as failed when err is set, then ends it.
func End(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
