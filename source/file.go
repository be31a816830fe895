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
)

var _ pipeline.Source = (*File)(nil)

// File streams one file through a handler chosen from the extension
// registry, or through an explicit handler given with WithHandler. The
// handler is opened at stream time and closed on every exit path.
type File struct {
	path    string
	factory handler.Factory
	log     *logger.Logger
}

// FromFile creates a source over a single file. The path must exist and
// be a regular file at construction; a missing path is a resource-access
// fault here, not mid-run.
func FromFile(path string, opts ...Option) (*File, error) {
	o := applyOptions(opts)
	info, err := os.Stat(path)
	if err != nil {
		return nil, apperrors.ResourceAccess(path, err)
	}
	if !info.Mode().IsRegular() {
		return nil, apperrors.ResourceAccess(path, errors.New("not a regular file"))
	}
	return &File{
		path:    path,
		factory: o.handler,
		log:     logger.Get("source.file"),
	}, nil
}

// Open acquires the handler and returns its record iterator. Handler
// selection happens here so registry changes between construction and
// run are honored.
func (s *File) Open(_ context.Context) (stream.Iterator, error) {
	s.log.Debug("streaming file", logger.Fields(logger.FieldResource, filepath.Base(s.path)))
	return &fileIter{paths: []string{s.path}, factory: s.factory}, nil
}

// Describe identifies the source for logs and faults.
func (s *File) Describe() string { return "source.file(" + filepath.Base(s.path) + ")" }

// fileIter streams a fixed list of files in order with at most one open
// handler at a time. A nil factory selects the handler per file from the
// extension registry.
type fileIter struct {
	paths   []string
	factory handler.Factory
	idx     int
	h       handler.Handler
	cur     stream.Iterator
}

func (it *fileIter) Next(ctx context.Context) (stream.Item, bool, error) {
	for {
		if it.cur == nil {
			if it.idx >= len(it.paths) {
				return stream.Item{}, false, nil
			}
			path := it.paths[it.idx]
			it.idx++

			factory := it.factory
			if factory == nil {
				factory = handler.ForPath(path)
			}
			h := factory(path)
			if err := h.Open(); err != nil {
				return stream.Item{}, false, err
			}
			inner, err := h.Stream(ctx)
			if err != nil {
				_ = h.Close()
				return stream.Item{}, false, err
			}
			it.h, it.cur = h, inner
		}

		item, ok, err := it.cur.Next(ctx)
		if err != nil {
			_ = it.closeCurrent()
			return stream.Item{}, false, err
		}
		if ok {
			return item, true, nil
		}
		if cerr := it.closeCurrent(); cerr != nil {
			return stream.Item{}, false, apperrors.ResourceAccess(it.paths[it.idx-1], cerr)
		}
	}
}

// Close releases the in-flight handler and abandons the remaining files.
func (it *fileIter) Close() error {
	err := it.closeCurrent()
	it.idx = len(it.paths)
	return err
}

func (it *fileIter) closeCurrent() error {
	if it.cur == nil {
		return nil
	}
	cerr := it.cur.Close()
	herr := it.h.Close()
	it.cur, it.h = nil, nil
	if cerr != nil {
		return cerr
	}
	return herr
}
