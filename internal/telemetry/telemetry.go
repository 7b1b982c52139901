// Package telemetry wires an optional OTLP trace exporter for backend
// request paths. When no endpoint is configured the package installs nothing
// and span creation is a no-op through the default tracer provider.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "kyber"

// Setup installs a tracer provider exporting to the given OTLP HTTP endpoint
// (host:port, no scheme). It returns a shutdown function that flushes pending
// spans. An empty endpoint is valid and yields a no-op shutdown.
func Setup(ctx context.Context, endpoint string) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("create OTLP exporter: %w", err)
	}

	res := resource.NewSchemaless(
		attribute.String("service.name", tracerName),
	)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}

// Tracer returns the shared application tracer.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// StartRequest opens a client span for a backend HTTP request. The caller
// must call End on the returned span.
func StartRequest(ctx context.Context, backend, operation string) (context.Context, trace.Span) {
	ctx, span := Tracer().Start(ctx, backend+"."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(attribute.String("backend", backend)),
	)
	return ctx, span
}
