package pipeline

import (
	"context"

	apperrors "github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/stream"
)

// transformIter folds one transform over an upstream iterator, flattening
// multi-output results. Outputs of the current input drain completely
// before the next upstream pull, so a fan-out transform's records reach
// the sinks before the source is advanced.
type transformIter struct {
	source  stream.Iterator
	tf      Transform
	name    string
	pending []stream.Item
}

func (it *transformIter) Next(ctx context.Context) (stream.Item, bool, error) {
	for {
		if len(it.pending) > 0 {
			item := it.pending[0]
			it.pending = it.pending[1:]
			return item, true, nil
		}
		in, ok, err := it.source.Next(ctx)
		if err != nil || !ok {
			return stream.Item{}, false, err
		}
		out, err := it.tf.Apply(ctx, in)
		if err != nil {
			return stream.Item{}, false, componentErr(err, it.name, in.Resource)
		}
		it.pending = out
	}
}

func (it *transformIter) Close() error { return it.source.Close() }

// applyTransforms stacks one transformIter per transform over the base
// iterator, in append order. Closing the outermost iterator closes through
// to the base.
func applyTransforms(base stream.Iterator, transforms []Transform) stream.Iterator {
	it := base
	for _, tf := range transforms {
		it = &transformIter{source: it, tf: tf, name: describe(tf)}
	}
	return it
}

// countingIter counts records pulled through it.
type countingIter struct {
	source stream.Iterator
	n      *int64
}

func (it *countingIter) Next(ctx context.Context) (stream.Item, bool, error) {
	item, ok, err := it.source.Next(ctx)
	if ok {
		*it.n++
	}
	return item, ok, err
}

func (it *countingIter) Close() error { return it.source.Close() }

// componentErr preserves coded faults and wraps everything else as a
// component failure carrying the component identity and resource.
func componentErr(err error, component, resource string) error {
	if apperrors.IsError(err) {
		return err
	}
	return apperrors.ComponentFailure(component, resource, err)
}
