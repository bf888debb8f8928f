package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/cdnkit/logger"
)

// InitMeter installs the global MeterProvider exporting OTLP over HTTP
// on the configured interval.
func InitMeter(ctx context.Context, cfg Config) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.ExportInterval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.ExportInterval))
	}
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(buildResource(cfg)),
	)
	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", cfg.ServiceName,
		"endpoint", cfg.Endpoint,
		"interval", cfg.ExportInterval.String(),
	))
	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter { return otel.Meter(name) }

// Metrics bundles the loader's instruments.
type Metrics struct {
	loads        metric.Int64Counter
	loadDuration metric.Float64Histogram
	loadsActive  metric.Int64UpDownCounter
	attempts     metric.Int64Counter
	cacheHits    metric.Int64Counter
	errors       metric.Int64Counter
}

// NewMetrics registers the loader instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}
	var err error

	if m.loads, err = meter.Int64Counter("cdnkit.loads",
		metric.WithDescription("Completed library load calls by package and status"),
	); err != nil {
		return nil, fmt.Errorf("creating cdnkit.loads: %w", err)
	}
	if m.loadDuration, err = meter.Float64Histogram("cdnkit.load.duration",
		metric.WithDescription("Duration of library load calls"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, fmt.Errorf("creating cdnkit.load.duration: %w", err)
	}
	if m.loadsActive, err = meter.Int64UpDownCounter("cdnkit.loads.active",
		metric.WithDescription("Load calls currently in flight"),
	); err != nil {
		return nil, fmt.Errorf("creating cdnkit.loads.active: %w", err)
	}
	if m.attempts, err = meter.Int64Counter("cdnkit.attempts",
		metric.WithDescription("Provider attempts by provider and outcome"),
	); err != nil {
		return nil, fmt.Errorf("creating cdnkit.attempts: %w", err)
	}
	if m.cacheHits, err = meter.Int64Counter("cdnkit.cache.hits",
		metric.WithDescription("Loads answered from the URL cache"),
	); err != nil {
		return nil, fmt.Errorf("creating cdnkit.cache.hits: %w", err)
	}
	if m.errors, err = meter.Int64Counter("cdnkit.errors",
		metric.WithDescription("Errors by code and component"),
	); err != nil {
		return nil, fmt.Errorf("creating cdnkit.errors: %w", err)
	}
	return m, nil
}

// RecordLoadStart bumps the in-flight load count.
func (m *Metrics) RecordLoadStart(ctx context.Context) {
	m.loadsActive.Add(ctx, 1)
}

// RecordLoadEnd settles the in-flight count and records the completed
// call with its duration.
func (m *Metrics) RecordLoadEnd(ctx context.Context, pkg, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("package", pkg),
		attribute.String("status", status),
	)
	m.loadsActive.Add(ctx, -1)
	m.loads.Add(ctx, 1, attrs)
	m.loadDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordAttempt records a single provider attempt and its outcome.
func (m *Metrics) RecordAttempt(ctx context.Context, provider, status string) {
	m.attempts.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("status", status),
	))
}

// RecordCacheHit records a load answered from the URL cache.
func (m *Metrics) RecordCacheHit(ctx context.Context, provider string) {
	m.cacheHits.Add(ctx, 1, metric.WithAttributes(
		attribute.String("provider", provider),
	))
}

// RecordError records an error by code and component.
func (m *Metrics) RecordError(ctx context.Context, errType, component string) {
	m.errors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("type", errType),
		attribute.String("component", component),
	))
}
