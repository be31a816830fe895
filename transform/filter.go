package transform

import (
	"context"
	"regexp"

	apperrors "github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/pipeline"
	"github.com/kbukum/pipekit/stream"
)

var _ pipeline.Transform = (*Filter)(nil)

// RegexOption configures a regex-based transform.
type RegexOption func(*regexConfig)

type regexConfig struct {
	ignoreCase bool
}

// IgnoreCase makes the pattern match case-insensitively. The default is
// case-sensitive.
func IgnoreCase() RegexOption {
	return func(c *regexConfig) { c.ignoreCase = true }
}

// Filter keeps or drops records by matching a regex against the start of
// the text payload, 1:0 or 1:1. Non-text payloads pass through unchanged.
type Filter struct {
	re   *regexp.Regexp
	keep bool
}

// KeepMatching creates a filter that keeps only records whose payload
// starts with a match of the pattern. An invalid pattern is a
// construction error.
func KeepMatching(pattern string, opts ...RegexOption) (*Filter, error) {
	return newFilter(pattern, true, opts)
}

// SkipMatching creates a filter that drops records whose payload starts
// with a match of the pattern. An invalid pattern is a construction error.
func SkipMatching(pattern string, opts ...RegexOption) (*Filter, error) {
	return newFilter(pattern, false, opts)
}

func newFilter(pattern string, keep bool, opts []RegexOption) (*Filter, error) {
	re, err := compileAnchored(pattern, opts)
	if err != nil {
		return nil, err
	}
	return &Filter{re: re, keep: keep}, nil
}

// compileAnchored anchors the pattern at the start of the payload, the
// match-versus-search distinction filters rely on.
func compileAnchored(pattern string, opts []RegexOption) (*regexp.Regexp, error) {
	var cfg regexConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	expr := `\A(?:` + pattern + `)`
	if cfg.ignoreCase {
		expr = `(?i)` + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, apperrors.InvalidPattern(pattern, err)
	}
	return re, nil
}

// Apply keeps or drops the record by the match outcome.
func (f *Filter) Apply(_ context.Context, item stream.Item) ([]stream.Item, error) {
	s, ok := item.Data.(string)
	if !ok {
		return []stream.Item{item}, nil
	}
	if f.re.MatchString(s) == f.keep {
		return []stream.Item{item}, nil
	}
	return nil, nil
}

// Describe identifies the transform for logs and faults.
func (f *Filter) Describe() string {
	if f.keep {
		return "transform.keep(" + f.re.String() + ")"
	}
	return "transform.skip(" + f.re.String() + ")"
}
