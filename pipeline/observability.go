package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/logger"
	"github.com/kbukum/pipekit/observability"
)

var (
	metricsOnce sync.Once
	runMetrics  *observability.RunMetrics
)

// metrics lazily creates the shared run instruments on the global meter.
// With no metrics SDK installed every instrument is a no-op.
func metrics() *observability.RunMetrics {
	metricsOnce.Do(func() {
		m, err := observability.NewRunMetrics(observability.Meter("pipekit/pipeline"))
		if err != nil {
			logger.Get("pipeline").Warn("run metrics disabled",
				logger.ErrorFields("init", err))
			return
		}
		runMetrics = m
	})
	return runMetrics
}

// runTelemetry is the observability side-channel for one Run: a span, a
// run-scoped logger, and the run metric updates. It records counts and
// durations only; it never alters functional behavior.
type runTelemetry struct {
	pipeline string
	runID    string
	log      *logger.Logger
	span     trace.Span
	metrics  *observability.RunMetrics
	start    time.Time
	read     int64
	emitted  int64
	written  int64
}

// startRun assigns the run its ID, opens the run span, and stashes the run
// identity in the context so component loggers pick it up.
func startRun(ctx context.Context, name string) (context.Context, *runTelemetry) {
	runID := uuid.New().String()
	ctx = logger.ContextWithRun(ctx, name, runID)

	ctx, span := observability.StartSpan(ctx, observability.SpanPipelineRun)
	observability.SetSpanAttribute(ctx, observability.AttrPipeline, name)
	observability.SetSpanAttribute(ctx, observability.AttrRunID, runID)

	return ctx, &runTelemetry{
		pipeline: name,
		runID:    runID,
		log:      logger.Get("pipeline").WithContext(ctx),
		span:     span,
		metrics:  metrics(),
		start:    time.Now(),
	}
}

// sourceDone records the per-source counts once a source is exhausted or
// its streaming aborts.
func (t *runTelemetry) sourceDone(ctx context.Context, source string, read, emitted int64) {
	t.read += read
	t.emitted += emitted
	if t.metrics != nil {
		t.metrics.RecordRead(ctx, t.pipeline, source, read)
		t.metrics.RecordEmitted(ctx, t.pipeline, source, emitted)
	}
	t.log.Debug("source drained", logger.Fields(
		"source", source,
		"read", read,
		"emitted", emitted,
	))
}

// wrote counts sink deliveries for one surviving record.
func (t *runTelemetry) wrote(n int64) {
	t.written += n
}

// end closes the run span and records the run outcome.
func (t *runTelemetry) end(ctx context.Context, err error) {
	duration := time.Since(t.start)
	status := "ok"
	if err != nil {
		status = "error"
		observability.SetSpanError(ctx, err)
	}

	observability.SetSpanAttribute(ctx, observability.AttrRecordsRead, int(t.read))
	observability.SetSpanAttribute(ctx, observability.AttrRecordsEmitted, int(t.emitted))
	observability.SetSpanAttribute(ctx, observability.AttrRecordsWritten, int(t.written))
	observability.SetSpanAttribute(ctx, observability.AttrStatus, status)
	t.span.End()

	if t.metrics != nil {
		t.metrics.RecordWritten(ctx, t.pipeline, t.written)
		t.metrics.RecordRun(ctx, t.pipeline, status, duration)
		if err != nil {
			t.metrics.RecordError(ctx, t.pipeline, errComponent(err))
		}
	}

	fields := logger.Fields(
		"status", status,
		"read", t.read,
		"emitted", t.emitted,
		"written", t.written,
		logger.FieldDuration, duration.Milliseconds(),
	)
	if err != nil {
		fields[logger.FieldError] = err.Error()
		t.log.Error("run aborted", fields)
		return
	}
	t.log.Info("run complete", fields)
}

// errComponent extracts the failing component from a coded fault.
func errComponent(err error) string {
	if e, ok := apperrors.AsError(err); ok && e.Component != "" {
		return e.Component
	}
	return "pipeline"
}
