package source

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	apperrors "github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/handler"
	"github.com/kbukum/pipekit/logger"
	"github.com/kbukum/pipekit/pipeline"
	"github.com/kbukum/pipekit/stream"
	"github.com/kbukum/pipekit/validation"
)

var _ pipeline.Source = (*Glob)(nil)

// Glob streams every regular file under a root, recursively, in lexical
// walk order. Base names are matched against keep and skip patterns with
// skip winning over keep, and whole directory subtrees are pruned by name
// with WithSkipDirs.
type Glob struct {
	root     string
	factory  handler.Factory
	keep     []string
	skip     []string
	skipDirs []string
	log      *logger.Logger
}

// FromGlob creates a recursive source rooted at a directory. The root must
// exist at construction; the walk happens at stream time.
func FromGlob(root string, opts ...Option) (*Glob, error) {
	o := applyOptions(opts)
	if err := validation.ValidGlobs(o.keep, o.skip); err != nil {
		return nil, err
	}
	info, err := os.Stat(root)
	if err != nil {
		return nil, apperrors.ResourceAccess(root, err)
	}
	if !info.IsDir() {
		return nil, apperrors.ResourceAccess(root, errors.New("not a directory"))
	}
	return &Glob{
		root:     root,
		factory:  o.handler,
		keep:     o.keep,
		skip:     o.skip,
		skipDirs: o.skipDirs,
		log:      logger.Get("source.glob"),
	}, nil
}

// Open walks the subtree and returns an iterator streaming the matched
// files in order, one open handler at a time.
func (s *Glob) Open(_ context.Context) (stream.Iterator, error) {
	var paths []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != s.root && slices.Contains(s.skipDirs, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if !s.include(d.Name()) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, apperrors.ResourceAccess(s.root, err)
	}
	s.log.Debug("streaming glob", logger.Fields(
		logger.FieldResource, s.root,
		"files", len(paths),
	))
	return &fileIter{paths: paths, factory: s.factory}, nil
}

// Describe identifies the source for logs and faults.
func (s *Glob) Describe() string { return "source.glob(" + s.root + ")" }

func (s *Glob) include(name string) bool {
	if matchAny(s.skip, name) {
		return false
	}
	if len(s.keep) > 0 {
		return matchAny(s.keep, name)
	}
	return true
}
