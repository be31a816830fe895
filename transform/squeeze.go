package transform

import (
	"context"
	"strings"

	"github.com/kbukum/pipekit/pipeline"
	"github.com/kbukum/pipekit/stream"
)

var _ pipeline.Transform = (*Squeezer)(nil)

// Squeezer collapses runs of blank lines to a single blank line: the
// first blank of a run survives, the rest are dropped. A line is blank
// when it is empty after trimming whitespace. Stateful across the records
// of a run, so one instance belongs to one chain.
type Squeezer struct {
	lastBlank bool
}

// SqueezeBlanks creates a transform that squeezes repeated blank lines.
func SqueezeBlanks() *Squeezer { return &Squeezer{} }

// Apply drops the record when it continues a blank run.
func (t *Squeezer) Apply(_ context.Context, item stream.Item) ([]stream.Item, error) {
	s, ok := item.Data.(string)
	if !ok {
		t.lastBlank = false
		return []stream.Item{item}, nil
	}
	blank := strings.TrimSpace(s) == ""
	if blank && t.lastBlank {
		return nil, nil
	}
	t.lastBlank = blank
	return []stream.Item{item}, nil
}

// Describe identifies the transform for logs and faults.
func (t *Squeezer) Describe() string { return "transform.squeeze_blanks" }
