package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// OperationContext carries the identity and timing of one tracked load call
// so the span and metric lifecycles stay in step.
type OperationContext struct {
	ServiceName   string
	OperationName string
	RequestID     string
	Package       string
	Version       string
	StartTime     time.Time
	Metrics       *Metrics
}

// NewOperationContext starts the clock for a load call.
// A nil metrics bundle disables metric recording without further checks.
func NewOperationContext(serviceName, operationName, requestID, pkg, version string, metrics *Metrics) *OperationContext {
	return &OperationContext{
		ServiceName:   serviceName,
		OperationName: operationName,
		RequestID:     requestID,
		Package:       pkg,
		Version:       version,
		StartTime:     time.Now(),
		Metrics:       metrics,
	}
}

// StartSpanForOperation opens the span for this call, stamps it with the
// operation identity, and records the load-start metric.
func (oc *OperationContext) StartSpanForOperation(ctx context.Context, spanName string) (context.Context, trace.Span) {
	ctx, span := StartSpan(ctx, spanName)
	span.SetAttributes(
		attribute.String(AttrServiceName, oc.ServiceName),
		attribute.String(AttrOperationName, oc.OperationName),
		attribute.String(AttrRequestID, oc.RequestID),
		attribute.String(AttrPackage, oc.Package),
		attribute.String(AttrVersion, oc.Version),
	)
	if oc.Metrics != nil {
		oc.Metrics.RecordLoadStart(ctx)
	}
	return ctx, span
}

// EndOperation closes the span with the final status and records the
// load-end metric. err may be nil.
func (oc *OperationContext) EndOperation(ctx context.Context, span trace.Span, status string, err error) {
	elapsed := oc.Duration()

	attrs := []attribute.KeyValue{
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, elapsed.Milliseconds()),
	}
	if err != nil {
		span.RecordError(err)
		attrs = append(attrs, attribute.String(AttrErrorMessage, err.Error()))
	}
	span.SetAttributes(attrs...)
	span.End()

	if oc.Metrics != nil {
		oc.Metrics.RecordLoadEnd(ctx, oc.Package, status, elapsed)
	}
}

// Duration reports the elapsed time since the operation started.
func (oc *OperationContext) Duration() time.Duration {
	return time.Since(oc.StartTime)
}
