// Package observability provides OpenTelemetry tracing and metrics for
// script loading operations.
//
// Init wires both signals to an OTLP collector and returns a combined
// shutdown function:
//
//	shutdown, err := observability.Init(ctx, observability.DefaultConfig("cdnkit"))
//	defer shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("cdnkit"))
//	metrics.RecordAttempt(ctx, "jsdelivr", "ok")
//
// OperationContext ties a single load operation's span and metrics
// together:
//
//	oc := observability.NewOperationContext("cdnkit", "load", requestID, pkg, version, metrics)
//	ctx, span := oc.StartSpanForOperation(ctx, observability.SpanLoad)
//	defer oc.EndOperation(ctx, span, status, err)
package observability
