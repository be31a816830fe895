package pipeline

import (
	"context"
	"fmt"

	"github.com/kbukum/pipekit/stream"
)

// Source produces a lazy, ordered record sequence from some origin. Open is
// called once per run and must return a fresh iterator each time, so
// re-running a chain re-reads the origin from scratch.
type Source interface {
	Open(ctx context.Context) (stream.Iterator, error)
}

// Transform maps one record to zero, one, or many records. Returning an
// empty slice drops the record: no further transforms or sinks see it.
// Transforms must be composable: applying A then B as two chained
// transforms is equivalent to one transform doing A-then-B per surviving
// record.
type Transform interface {
	Apply(ctx context.Context, item stream.Item) ([]stream.Item, error)
}

// Sink consumes records one at a time for a side effect.
type Sink interface {
	Write(ctx context.Context, item stream.Item) error
}

// Opener is optionally implemented by sinks that acquire a resource before
// the first record arrives. The executor calls Open once per run, before
// any source is streamed.
type Opener interface {
	Open(ctx context.Context) error
}

// Finalizer is optionally implemented by sinks that buffer the whole
// stream. The executor calls Finalize exactly once after every source is
// exhausted, distinct from per-record Write. Finalize is not called when
// the run aborts.
type Finalizer interface {
	Finalize(ctx context.Context) error
}

// Closer is optionally implemented by components holding resources. The
// executor guarantees Close on every exit path, in reverse open order.
type Closer interface {
	Close() error
}

// Describable is optionally implemented by components to identify
// themselves in logs and faults.
type Describable interface {
	Describe() string
}

// describe names a component for logs and faults.
func describe(v any) string {
	if d, ok := v.(Describable); ok {
		return d.Describe()
	}
	return fmt.Sprintf("%T", v)
}
