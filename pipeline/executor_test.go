package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/stream"
)

func TestRun_EmptyPipeline(t *testing.T) {
	err := New("empty").Run(context.Background())
	if !apperrors.IsCode(err, apperrors.ErrCodeNothingToRun) {
		t.Fatalf("expected NOTHING_TO_RUN, got %v", err)
	}
}

func TestRun_NoSources(t *testing.T) {
	p := New("headless").Pipe(upperTransform{}).Pipe(&fakeSink{name: "out"})
	if p.Err() != nil {
		t.Fatal(p.Err())
	}
	err := p.Run(context.Background())
	if !apperrors.IsCode(err, apperrors.ErrCodeNothingToRun) {
		t.Fatalf("expected NOTHING_TO_RUN, got %v", err)
	}
}

func TestRun_NoSinks(t *testing.T) {
	p := New("tailless").Pipe(&fakeSource{name: "a", lines: []string{"x"}})
	if p.Err() != nil {
		t.Fatal(p.Err())
	}
	err := p.Run(context.Background())
	if !apperrors.IsCode(err, apperrors.ErrCodeNothingToRun) {
		t.Fatalf("expected NOTHING_TO_RUN, got %v", err)
	}
}

func TestRun_DeliversInOrder(t *testing.T) {
	log := &eventLog{}
	src := &fakeSource{name: "text", lines: []string{"one", "two", "three"}, log: log}
	sink := &fakeSink{name: "out", log: log}

	p := New("basic").Pipe(src).Pipe(sink)
	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	want := []string{"one", "two", "three"}
	if got := sink.texts(); !equalStrings(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	for i, item := range sink.got {
		if item.Seq != i+1 {
			t.Errorf("record %d: expected seq %d, got %d", i, i+1, item.Seq)
		}
		if item.Resource != "text" {
			t.Errorf("record %d: expected resource 'text', got %q", i, item.Resource)
		}
	}
}

func TestRun_TransformsComposeInOrder(t *testing.T) {
	src := &fakeSource{name: "text", lines: []string{"keep me", "drop me"}}
	sink := &fakeSink{name: "out"}

	// Upper first, then drop on the already-uppercased payload.
	p := New("composed").
		Pipe(src).
		Pipe(upperTransform{}).
		Pipe(dropTransform{match: "DROP ME"}).
		Pipe(sink)
	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	want := []string{"KEEP ME"}
	if got := sink.texts(); !equalStrings(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRun_ShortCircuitSkipsDownstream(t *testing.T) {
	src := &fakeSource{name: "text", lines: []string{"a", "b", "a"}}
	counting := &countingTransform{}
	sink := &fakeSink{name: "out"}

	p := New("short").
		Pipe(src).
		Pipe(dropTransform{match: "a"}).
		Pipe(counting).
		Pipe(sink)
	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if counting.calls != 1 {
		t.Errorf("expected downstream transform applied once, got %d", counting.calls)
	}
	if got := sink.texts(); !equalStrings(got, []string{"b"}) {
		t.Errorf("expected [b], got %v", got)
	}
}

type countingTransform struct{ calls int }

func (t *countingTransform) Apply(_ context.Context, item stream.Item) ([]stream.Item, error) {
	t.calls++
	return []stream.Item{item}, nil
}

func TestRun_FanOutDrainsBeforeNextPull(t *testing.T) {
	log := &eventLog{}
	src := &fakeSource{name: "text", lines: []string{"a b", "c"}, log: log}
	sink := &fakeSink{name: "out", log: log}

	p := New("fanout").Pipe(src).Pipe(splitTransform{}).Pipe(sink)
	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got := sink.texts(); !equalStrings(got, []string{"a", "b", "c"}) {
		t.Fatalf("expected [a b c], got %v", got)
	}

	want := []string{
		"open:out",
		"pull:a b",
		"write:out:a",
		"write:out:b",
		"pull:c",
		"write:out:c",
		"close-iter:text",
		"finalize:out",
		"close:out",
	}
	if !equalStrings(log.events, want) {
		t.Errorf("expected events %v, got %v", want, log.events)
	}
}

func TestRun_MultiSinkBroadcastOrder(t *testing.T) {
	log := &eventLog{}
	src := &fakeSource{name: "text", lines: []string{"x", "y"}, log: log}
	first := &fakeSink{name: "first", log: log}
	second := &fakeSink{name: "second", log: log}

	p := New("broadcast").Pipe(src).Pipe(first).Pipe(second)
	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	for _, sink := range []*fakeSink{first, second} {
		if got := sink.texts(); !equalStrings(got, []string{"x", "y"}) {
			t.Errorf("sink %s: expected [x y], got %v", sink.name, got)
		}
	}

	// Each record visits every sink before the next record is pulled.
	want := []string{
		"open:first",
		"open:second",
		"pull:x",
		"write:first:x",
		"write:second:x",
		"pull:y",
		"write:first:y",
		"write:second:y",
		"close-iter:text",
		"finalize:first",
		"finalize:second",
		"close:second",
		"close:first",
	}
	if !equalStrings(log.events, want) {
		t.Errorf("expected events %v, got %v", want, log.events)
	}
}

func TestRun_MultiSourceSequential(t *testing.T) {
	one := &fakeSource{name: "one", lines: []string{"a", "b"}}
	two := &fakeSource{name: "two", lines: []string{"c"}}
	sink := &fakeSink{name: "out"}

	p := New("multi").Pipe(one).Pipe(two).Pipe(sink)
	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if got := sink.texts(); !equalStrings(got, []string{"a", "b", "c"}) {
		t.Errorf("expected [a b c], got %v", got)
	}
	// Sequence restarts per source resource.
	if sink.got[2].Seq != 1 || sink.got[2].Resource != "two" {
		t.Errorf("expected second source to restart at seq 1, got %v", sink.got[2])
	}
}

func TestRun_SinkFailureAborts(t *testing.T) {
	log := &eventLog{}
	src := &fakeSource{name: "text", lines: []string{"x", "y"}, log: log}
	good := &fakeSink{name: "good", log: log}
	bad := &fakeSink{name: "bad", failWrite: errors.New("disk full"), log: log}

	p := New("abort").Pipe(src).Pipe(good).Pipe(bad)
	err := p.Run(context.Background())
	if !apperrors.IsCode(err, apperrors.ErrCodeComponentFailure) {
		t.Fatalf("expected COMPONENT_FAILURE, got %v", err)
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected cause in message, got %q", err.Error())
	}

	// The earlier sink keeps its delivery for the failing record.
	if got := good.texts(); !equalStrings(got, []string{"x"}) {
		t.Errorf("expected earlier sink to keep [x], got %v", got)
	}
	// No finalize on abort, close on every sink regardless.
	if good.finalized != 0 || bad.finalized != 0 {
		t.Errorf("expected no finalize on abort, got %d/%d", good.finalized, bad.finalized)
	}
	if good.closed != 1 || bad.closed != 1 {
		t.Errorf("expected close on both sinks, got %d/%d", good.closed, bad.closed)
	}

	if appErr, ok := apperrors.AsError(err); ok {
		if appErr.Resource != "text" {
			t.Errorf("expected resource 'text' on fault, got %q", appErr.Resource)
		}
	}
}

func TestRun_SinkOpenFailureClosesOpened(t *testing.T) {
	log := &eventLog{}
	src := &fakeSource{name: "text", lines: []string{"x"}, log: log}
	good := &fakeSink{name: "good", log: log}
	bad := &fakeSink{name: "bad", failOpen: errors.New("permission denied"), log: log}

	p := New("openfail").Pipe(src).Pipe(good).Pipe(bad)
	err := p.Run(context.Background())
	if !apperrors.IsCode(err, apperrors.ErrCodeComponentFailure) {
		t.Fatalf("expected COMPONENT_FAILURE, got %v", err)
	}
	if len(good.got) != 0 {
		t.Errorf("expected no records written, got %v", good.texts())
	}
	if src.opens != 0 {
		t.Errorf("expected no source opened after sink open failure, got %d", src.opens)
	}
	if good.closed != 1 {
		t.Errorf("expected opened sink to be closed, got %d", good.closed)
	}
}

func TestRun_SourceOpenErrorPassesThrough(t *testing.T) {
	fault := apperrors.ResourceAccess("missing.txt", nil)
	src := &fakeSource{name: "broken", fail: fault}
	sink := &fakeSink{name: "out"}

	p := New("srcfail").Pipe(src).Pipe(sink)
	err := p.Run(context.Background())
	if !apperrors.IsCode(err, apperrors.ErrCodeResourceAccess) {
		t.Fatalf("expected RESOURCE_ACCESS to pass through, got %v", err)
	}
}

func TestRun_TransformErrorWrapped(t *testing.T) {
	src := &fakeSource{name: "text", lines: []string{"x"}}
	sink := &fakeSink{name: "out"}

	p := New("tffail").Pipe(src).Pipe(failTransform{err: errors.New("bad payload")}).Pipe(sink)
	err := p.Run(context.Background())
	if !apperrors.IsCode(err, apperrors.ErrCodeComponentFailure) {
		t.Fatalf("expected COMPONENT_FAILURE, got %v", err)
	}

	appErr, ok := apperrors.AsError(err)
	if !ok {
		t.Fatalf("expected *errors.Error, got %T", err)
	}
	if appErr.Resource != "text" {
		t.Errorf("expected resource 'text', got %q", appErr.Resource)
	}
	if !errors.Is(err, appErr.Cause) {
		t.Error("expected cause to be preserved in chain")
	}
}

func TestRun_FinalizeAfterExhaustionOnly(t *testing.T) {
	log := &eventLog{}
	src := &fakeSource{name: "text", lines: []string{"x"}, log: log}
	sink := &fakeSink{name: "out", log: log}

	p := New("final").Pipe(src).Pipe(sink)
	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if sink.finalized != 1 {
		t.Fatalf("expected one finalize, got %d", sink.finalized)
	}

	// Finalize comes after every write and before close.
	last := log.events[len(log.events)-2:]
	if !equalStrings(last, []string{"finalize:out", "close:out"}) {
		t.Errorf("expected finalize then close at the end, got %v", log.events)
	}
}

func TestRun_RerunReopensSources(t *testing.T) {
	src := &fakeSource{name: "text", lines: []string{"x", "y"}}
	sink := &fakeSink{name: "out"}

	p := New("rerun").Pipe(src).Pipe(sink)
	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}

	if src.opens != 2 {
		t.Errorf("expected source opened twice, got %d", src.opens)
	}
	if got := sink.texts(); !equalStrings(got, []string{"x", "y", "x", "y"}) {
		t.Errorf("expected both runs delivered, got %v", got)
	}
	if sink.finalized != 2 || sink.closed != 2 {
		t.Errorf("expected finalize and close per run, got %d/%d", sink.finalized, sink.closed)
	}
}

func TestRun_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &fakeSource{name: "text", lines: []string{"x", "y"}}
	sink := &fakeSink{name: "out"}

	p := New("canceled").Pipe(src).Pipe(sink)
	err := p.Run(ctx)
	if !apperrors.IsCode(err, apperrors.ErrCodeCanceled) {
		t.Fatalf("expected CANCELED, got %v", err)
	}
	if sink.closed != 1 {
		t.Errorf("expected sink closed on cancel, got %d", sink.closed)
	}
}

func TestRun_PlainSinkNeedsNoLifecycle(t *testing.T) {
	src := &fakeSource{name: "text", lines: []string{"x"}}
	sink := &plainSink{}

	p := New("plain").Pipe(src).Pipe(sink)
	if err := p.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(sink.got) != 1 {
		t.Errorf("expected one record, got %d", len(sink.got))
	}
}

// plainSink implements only Write: no Opener, Finalizer or Closer.
type plainSink struct{ got []stream.Item }

func (k *plainSink) Write(_ context.Context, item stream.Item) error {
	k.got = append(k.got, item)
	return nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
