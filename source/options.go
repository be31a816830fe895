package source

import (
	"github.com/kbukum/pipekit/handler"
)

// options collects the knobs shared by the source constructors. Each
// constructor reads the fields it understands and ignores the rest.
type options struct {
	name     string
	sep      string
	handler  handler.Factory
	keep     []string
	skip     []string
	skipDirs []string
}

// Option configures a source constructor.
type Option func(*options)

func applyOptions(opts []Option) options {
	o := options{name: "text", sep: "\n"}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithName overrides the synthetic resource label of an in-memory source.
func WithName(name string) Option {
	return func(o *options) {
		if name != "" {
			o.name = name
		}
	}
}

// WithSeparator overrides the segment separator of an in-memory source.
// An empty separator is ignored.
func WithSeparator(sep string) Option {
	return func(o *options) {
		if sep != "" {
			o.sep = sep
		}
	}
}

// WithHandler forces a handler factory for every file of a file-based
// source, bypassing the extension registry.
func WithHandler(factory handler.Factory) Option {
	return func(o *options) { o.handler = factory }
}

// WithKeep restricts a directory or glob source to files whose base name
// matches at least one of the given glob patterns.
func WithKeep(patterns ...string) Option {
	return func(o *options) { o.keep = append(o.keep, patterns...) }
}

// WithSkip excludes files whose base name matches any of the given glob
// patterns from a directory or glob source.
func WithSkip(patterns ...string) Option {
	return func(o *options) { o.skip = append(o.skip, patterns...) }
}

// WithSkipDirs prunes directories with the given names (exact match, not
// patterns) from a glob source's walk.
func WithSkipDirs(names ...string) Option {
	return func(o *options) { o.skipDirs = append(o.skipDirs, names...) }
}
