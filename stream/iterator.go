package stream

import "context"

// Iterator provides pull-based sequential access to a stream of items.
// Iterators are finite and non-restartable: once Next reports exhaustion
// the iterator stays exhausted, and a fresh one must be obtained for a
// new pass over the same origin.
type Iterator interface {
	// Next returns the next item. Returns (zero, false, nil) when exhausted.
	Next(ctx context.Context) (Item, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// FromSlice returns an iterator over a fixed set of items.
func FromSlice(items []Item) Iterator {
	return &sliceIter{items: items}
}

// Collect pulls every remaining item from the iterator and closes it.
func Collect(ctx context.Context, iter Iterator) ([]Item, error) {
	defer iter.Close()
	var result []Item
	for {
		item, ok, err := iter.Next(ctx)
		if err != nil {
			return result, err
		}
		if !ok {
			return result, nil
		}
		result = append(result, item)
	}
}

type sliceIter struct {
	items []Item
	index int
}

func (it *sliceIter) Next(_ context.Context) (Item, bool, error) {
	if it.index >= len(it.items) {
		return Item{}, false, nil
	}
	item := it.items[it.index]
	it.index++
	return item, true, nil
}

func (it *sliceIter) Close() error { return nil }
