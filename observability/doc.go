// Package observability provides OpenTelemetry tracing and metrics for
// pipeline runs.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("pipekit"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanPipelineRun)
//	defer span.End()
//
// Metrics:
//
//	cfg := observability.DefaultMeterConfig("pipekit")
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewRunMetrics(observability.Meter("pipekit"))
//	metrics.RecordRun(ctx, "my-pipeline", "ok", duration)
//
// Both providers are optional. Without an installed SDK the global
// tracer and meter are no-ops, so instrumented code costs nothing.
package observability
