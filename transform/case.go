package transform

import (
	"context"
	"strings"

	"github.com/kbukum/pipekit/pipeline"
	"github.com/kbukum/pipekit/stream"
)

var _ pipeline.Transform = (*Case)(nil)

// Case rewrites text payloads to upper or lower case, 1:1. Non-text
// payloads pass through unchanged.
type Case struct {
	upper bool
}

// UpperCase creates a transform that uppercases text payloads.
func UpperCase() *Case { return &Case{upper: true} }

// LowerCase creates a transform that lowercases text payloads.
func LowerCase() *Case { return &Case{} }

// Apply rewrites the payload case.
func (c *Case) Apply(_ context.Context, item stream.Item) ([]stream.Item, error) {
	s, ok := item.Data.(string)
	if !ok {
		return []stream.Item{item}, nil
	}
	if c.upper {
		return []stream.Item{item.WithData(strings.ToUpper(s))}, nil
	}
	return []stream.Item{item.WithData(strings.ToLower(s))}, nil
}

// Describe identifies the transform for logs and faults.
func (c *Case) Describe() string {
	if c.upper {
		return "transform.uppercase"
	}
	return "transform.lowercase"
}
