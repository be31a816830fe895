package transform

import (
	"context"
	"strings"

	"github.com/kbukum/pipekit/pipeline"
	"github.com/kbukum/pipekit/stream"
)

var _ pipeline.Transform = (*Splitter)(nil)

// Splitter fans a text payload out into one record per whitespace-separated
// field. A payload with no fields produces no records; fan-out records
// keep the parent's sequence and resource. Non-text payloads pass through
// unchanged.
type Splitter struct{}

// SplitWords creates a transform that splits text payloads into words.
func SplitWords() *Splitter { return &Splitter{} }

// Apply fans the payload out into its fields.
func (Splitter) Apply(_ context.Context, item stream.Item) ([]stream.Item, error) {
	s, ok := item.Data.(string)
	if !ok {
		return []stream.Item{item}, nil
	}
	fields := strings.Fields(s)
	out := make([]stream.Item, len(fields))
	for i, f := range fields {
		out[i] = item.WithData(f)
	}
	return out, nil
}

// Describe identifies the transform for logs and faults.
func (Splitter) Describe() string { return "transform.split_words" }
