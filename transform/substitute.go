package transform

import (
	"context"
	"regexp"

	apperrors "github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/pipeline"
	"github.com/kbukum/pipekit/stream"
)

var _ pipeline.Transform = (*Substituter)(nil)

// Substituter replaces every match of a regex in the text payload, 1:1.
// Non-text payloads pass through unchanged.
type Substituter struct {
	re   *regexp.Regexp
	repl string
}

// Substitute creates a transform replacing all matches of pattern with
// repl. The replacement supports $1-style group references. An invalid
// pattern is a construction error.
func Substitute(pattern, repl string, opts ...RegexOption) (*Substituter, error) {
	var cfg regexConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	expr := pattern
	if cfg.ignoreCase {
		expr = `(?i)` + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, apperrors.InvalidPattern(pattern, err)
	}
	return &Substituter{re: re, repl: repl}, nil
}

// Apply rewrites the payload with all matches replaced.
func (t *Substituter) Apply(_ context.Context, item stream.Item) ([]stream.Item, error) {
	s, ok := item.Data.(string)
	if !ok {
		return []stream.Item{item}, nil
	}
	return []stream.Item{item.WithData(t.re.ReplaceAllString(s, t.repl))}, nil
}

// Describe identifies the transform for logs and faults.
func (t *Substituter) Describe() string { return "transform.substitute(" + t.re.String() + ")" }
