package source

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	apperrors "github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/handler"
	"github.com/kbukum/pipekit/logger"
	"github.com/kbukum/pipekit/pipeline"
	"github.com/kbukum/pipekit/stream"
	"github.com/kbukum/pipekit/validation"
)

var _ pipeline.Source = (*Dir)(nil)

// Dir streams every regular file directly inside a directory, in sorted
// name order, each through its own handler. Keep and skip patterns filter
// on the base name and are mutually exclusive.
type Dir struct {
	dir     string
	factory handler.Factory
	keep    []string
	skip    []string
	log     *logger.Logger
}

// FromDir creates a source over the files of a directory. The directory
// must exist at construction. Giving both keep and skip patterns is an
// invalid definition; file enumeration happens at stream time.
func FromDir(dir string, opts ...Option) (*Dir, error) {
	o := applyOptions(opts)
	if len(o.keep) > 0 && len(o.skip) > 0 {
		return nil, apperrors.InvalidDefinition("keep and skip patterns are mutually exclusive")
	}
	if err := validation.ValidGlobs(o.keep, o.skip); err != nil {
		return nil, err
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, apperrors.ResourceAccess(dir, err)
	}
	if !info.IsDir() {
		return nil, apperrors.ResourceAccess(dir, errors.New("not a directory"))
	}
	return &Dir{
		dir:     dir,
		factory: o.handler,
		keep:    o.keep,
		skip:    o.skip,
		log:     logger.Get("source.dir"),
	}, nil
}

// Open enumerates matching files and returns an iterator streaming them
// in order, one open handler at a time.
func (s *Dir) Open(_ context.Context) (stream.Iterator, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, apperrors.ResourceAccess(s.dir, err)
	}

	var paths []string
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if !s.include(e.Name()) {
			continue
		}
		paths = append(paths, filepath.Join(s.dir, e.Name()))
	}
	s.log.Debug("streaming directory", logger.Fields(
		logger.FieldResource, s.dir,
		"files", len(paths),
	))
	return &fileIter{paths: paths, factory: s.factory}, nil
}

// Describe identifies the source for logs and faults.
func (s *Dir) Describe() string { return "source.dir(" + s.dir + ")" }

func (s *Dir) include(name string) bool {
	if len(s.keep) > 0 && !matchAny(s.keep, name) {
		return false
	}
	return !matchAny(s.skip, name)
}

// matchAny reports whether the name matches any pattern. Patterns are
// validated at construction, so match errors cannot occur here.
func matchAny(patterns []string, name string) bool {
	for _, pat := range patterns {
		if ok, _ := filepath.Match(pat, name); ok {
			return true
		}
	}
	return false
}
