// Package observability provides OpenTelemetry tracing and metrics for the
// transcription and summarization pipeline.
//
// Tracing:
//
//	shutdown, err := observability.Init(ctx, cfg, "summora", version)
//	defer shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, "pipeline.process")
//	defer span.End()
//
// Metrics:
//
//	metrics, err := observability.NewMetrics(observability.Meter("summora"))
//	metrics.RecordRun(ctx, "sync", "ok", duration)
//
// All Metrics methods are safe on a nil receiver, so callers can skip
// the wiring entirely when telemetry is disabled.
package observability
