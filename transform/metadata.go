package transform

import (
	"context"
	"fmt"

	"github.com/kbukum/pipekit/pipeline"
	"github.com/kbukum/pipekit/stream"
)

var _ pipeline.Transform = (*Metadata)(nil)

// Metadata prefixes text payloads with their provenance, rewriting the
// payload to "{resource}:{seq}:{data}". Non-text payloads pass through
// unchanged.
type Metadata struct{}

// AddMetadata creates a transform that stamps provenance into the payload.
func AddMetadata() *Metadata { return &Metadata{} }

// Apply rewrites the payload with the resource name and sequence number.
func (Metadata) Apply(_ context.Context, item stream.Item) ([]stream.Item, error) {
	s, ok := item.Data.(string)
	if !ok {
		return []stream.Item{item}, nil
	}
	return []stream.Item{item.WithData(fmt.Sprintf("%s:%d:%s", item.Resource, item.Seq, s))}, nil
}

// Describe identifies the transform for logs and faults.
func (Metadata) Describe() string { return "transform.metadata" }
