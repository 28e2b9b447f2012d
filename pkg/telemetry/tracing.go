// Package telemetry configures OpenTelemetry distributed tracing for the
// THRYX node. Spans are exported over OTLP/HTTP to a local collector
// (Jaeger or otherwise); when disabled the global no-op tracer is left in
// place and instrumentation costs nothing.
package telemetry

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	tracesdk "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	serviceName    = "thryx"
	serviceVersion = "1.0.0"
)

// Config holds the tracing configuration.
type Config struct {
	Enabled      bool
	OTLPEndpoint string
	SampleRate   float64
	Environment  string
	ChainID      string
}

// Provider owns the tracer provider lifecycle.
type Provider struct {
	tracerProvider *tracesdk.TracerProvider
	tracer         trace.Tracer
	config         Config
}

// NewProvider initializes tracing. A disabled config returns a provider
// whose Tracer is the global no-op.
func NewProvider(cfg Config) (*Provider, error) {
	if !cfg.Enabled {
		return &Provider{config: cfg}, nil
	}
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid telemetry config: %w", err)
	}

	res, err := resource.New(
		context.Background(),
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
			attribute.String("environment", cfg.Environment),
			attribute.String("chain.id", cfg.ChainID),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	endpoint := strings.TrimPrefix(cfg.OTLPEndpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")

	client := otlptracehttp.NewClient(
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithURLPath("/v1/traces"),
	)
	exporter, err := otlptrace.New(context.Background(), client)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
	}

	tp := tracesdk.NewTracerProvider(
		tracesdk.WithBatcher(exporter,
			tracesdk.WithMaxExportBatchSize(512),
			tracesdk.WithMaxQueueSize(2048),
			tracesdk.WithBatchTimeout(5*time.Second),
		),
		tracesdk.WithResource(res),
		tracesdk.WithSampler(tracesdk.ParentBased(
			tracesdk.TraceIDRatioBased(cfg.SampleRate),
		)),
	)
	otel.SetTracerProvider(tp)

	return &Provider{
		tracerProvider: tp,
		tracer:         tp.Tracer(serviceName),
		config:         cfg,
	}, nil
}

func validateConfig(cfg Config) error {
	if cfg.OTLPEndpoint == "" {
		return fmt.Errorf("otlp endpoint is required")
	}
	if _, err := url.Parse(cfg.OTLPEndpoint); err != nil {
		return fmt.Errorf("invalid otlp endpoint: %w", err)
	}
	if cfg.SampleRate < 0 || cfg.SampleRate > 1 {
		return fmt.Errorf("sample rate must be between 0 and 1")
	}
	return nil
}

// Tracer returns the configured tracer, or the global (no-op by default)
// tracer when tracing is disabled.
func (p *Provider) Tracer() trace.Tracer {
	if p.tracer == nil {
		return otel.Tracer(serviceName)
	}
	return p.tracer
}

// Shutdown flushes pending spans.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.tracerProvider == nil {
		return nil
	}
	if err := p.tracerProvider.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown tracer provider: %w", err)
	}
	return nil
}

// StartKeeperSpan starts a span around a keeper operation.
func StartKeeperSpan(ctx context.Context, module, operation string) (context.Context, trace.Span) {
	tracer := otel.Tracer(serviceName)
	return tracer.Start(ctx, fmt.Sprintf("keeper.%s.%s", module, operation),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("keeper.module", module),
			attribute.String("keeper.operation", operation),
		),
	)
}
