package transform

import (
	"context"

	"github.com/kbukum/pipekit/pipeline"
	"github.com/kbukum/pipekit/stream"
)

var _ pipeline.Transform = (Func)(nil)

// Func adapts an ad-hoc 1:1 payload function into a transform.
type Func func(ctx context.Context, item stream.Item) (stream.Item, error)

// Apply invokes the wrapped function on the item.
func (f Func) Apply(ctx context.Context, item stream.Item) ([]stream.Item, error) {
	out, err := f(ctx, item)
	if err != nil {
		return nil, err
	}
	return []stream.Item{out}, nil
}
