package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// RunMetrics holds the metric instruments for pipeline runs. With no
// metrics SDK installed every instrument is a no-op.
type RunMetrics struct {
	recordsRead    metric.Int64Counter
	recordsEmitted metric.Int64Counter
	recordsWritten metric.Int64Counter
	runTotal       metric.Int64Counter
	runDuration    metric.Float64Histogram
	errorTotal     metric.Int64Counter
}

// NewRunMetrics creates the run instruments on the given meter.
func NewRunMetrics(meter metric.Meter) (*RunMetrics, error) {
	recordsRead, err := meter.Int64Counter("records.read",
		metric.WithDescription("Records pulled from sources"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating records.read counter: %w", err)
	}

	recordsEmitted, err := meter.Int64Counter("records.emitted",
		metric.WithDescription("Records surviving the transform fold"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating records.emitted counter: %w", err)
	}

	recordsWritten, err := meter.Int64Counter("records.written",
		metric.WithDescription("Record deliveries to sinks"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating records.written counter: %w", err)
	}

	runTotal, err := meter.Int64Counter("run.total",
		metric.WithDescription("Total pipeline runs by status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating run.total counter: %w", err)
	}

	runDuration, err := meter.Float64Histogram("run.duration",
		metric.WithDescription("Duration of pipeline runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating run.duration histogram: %w", err)
	}

	errorTotal, err := meter.Int64Counter("error.total",
		metric.WithDescription("Run faults by component"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating error.total counter: %w", err)
	}

	return &RunMetrics{
		recordsRead:    recordsRead,
		recordsEmitted: recordsEmitted,
		recordsWritten: recordsWritten,
		runTotal:       runTotal,
		runDuration:    runDuration,
		errorTotal:     errorTotal,
	}, nil
}

// RecordRead counts records pulled from one source.
func (m *RunMetrics) RecordRead(ctx context.Context, pipeline, source string, n int64) {
	m.recordsRead.Add(ctx, n, metric.WithAttributes(
		attribute.String("pipeline", pipeline),
		attribute.String("source", source),
	))
}

// RecordEmitted counts records that survived the transform fold for one source.
func (m *RunMetrics) RecordEmitted(ctx context.Context, pipeline, source string, n int64) {
	m.recordsEmitted.Add(ctx, n, metric.WithAttributes(
		attribute.String("pipeline", pipeline),
		attribute.String("source", source),
	))
}

// RecordWritten counts sink deliveries for one run.
func (m *RunMetrics) RecordWritten(ctx context.Context, pipeline string, n int64) {
	m.recordsWritten.Add(ctx, n, metric.WithAttributes(
		attribute.String("pipeline", pipeline),
	))
}

// RecordRun records a completed run with its status and duration.
func (m *RunMetrics) RecordRun(ctx context.Context, pipeline, status string, duration time.Duration) {
	m.runTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pipeline", pipeline),
		attribute.String("status", status),
	))
	m.runDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("pipeline", pipeline),
	))
}

// RecordError records a run fault by failing component.
func (m *RunMetrics) RecordError(ctx context.Context, pipeline, component string) {
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("pipeline", pipeline),
		attribute.String("component", component),
	))
}
