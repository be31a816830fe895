package stream

import (
	"fmt"

	apperrors "github.com/kbukum/pipekit/errors"
)

// Item is the unit of data moving through a pipeline. Items are produced
// fresh for every run and are owned by the executor for one pass through
// the stage chain; a transform may mutate and return the item it received
// or return newly constructed ones.
type Item struct {
	// Seq is the 1-based position of the item within its originating
	// resource. Numbering restarts for every resource, so items from
	// different origins are disambiguated by Resource, not Seq.
	Seq int
	// Resource identifies the origin: a file name or a synthetic label
	// such as "text" for in-memory sources.
	Resource string
	// Data is the payload: a text line with the trailing newline stripped,
	// or an opaque object such as a decoded image.
	Data any
}

// New creates a validated Item.
func New(seq int, resource string, data any) (Item, error) {
	it := Item{Seq: seq, Resource: resource, Data: data}
	if err := it.Validate(); err != nil {
		return Item{}, err
	}
	return it, nil
}

// Validate checks the item metadata invariants.
func (it Item) Validate() error {
	if it.Seq < 1 {
		return apperrors.InvalidItem(fmt.Sprintf("sequence must be 1 or greater, got %d", it.Seq))
	}
	if it.Resource == "" {
		return apperrors.InvalidItem("resource name must not be empty")
	}
	return nil
}

// Text returns the payload as a string, or empty if the payload is not text.
func (it Item) Text() string {
	if s, ok := it.Data.(string); ok {
		return s
	}
	return ""
}

// WithData returns a copy of the item carrying a new payload. Sequence and
// resource metadata are preserved, which keeps 1:1 transforms provenance-safe.
func (it Item) WithData(data any) Item {
	it.Data = data
	return it
}

// String renders the item position for logs.
func (it Item) String() string {
	return fmt.Sprintf("%s:%d", it.Resource, it.Seq)
}
