package observability

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"

	"github.com/kbukum/cdnkit/version"
)

// Config configures OTLP export for both traces and metrics.
type Config struct {
	// ServiceName identifies the service in exported telemetry.
	ServiceName string
	// ServiceVersion is reported as service.version.
	ServiceVersion string
	// Environment is reported as deployment.environment.
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port, e.g. "localhost:4318".
	Endpoint string
	// Insecure disables TLS towards the collector.
	Insecure bool
	// SampleRate is the trace sampling rate between 0 and 1.
	SampleRate float64
	// ExportInterval is the metric export period.
	ExportInterval time.Duration
}

// DefaultConfig returns the development defaults: a local collector,
// full sampling, and the running build as the service version.
func DefaultConfig(serviceName string) Config {
	return Config{
		ServiceName:    serviceName,
		ServiceVersion: version.GetShortVersion(),
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		SampleRate:     1.0,
		ExportInterval: 15 * time.Second,
	}
}

// Init wires up trace and metric export and returns a shutdown function
// that flushes both providers.
func Init(ctx context.Context, cfg Config) (func(context.Context) error, error) {
	tp, err := InitTracer(ctx, cfg)
	if err != nil {
		return nil, err
	}
	mp, err := InitMeter(ctx, cfg)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, err
	}
	return func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}, nil
}

// buildResource describes the service to the collector.
func buildResource(cfg Config) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
		attribute.String("deployment.environment", cfg.Environment),
	)
}
