package sink

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"

	apperrors "github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/logger"
	"github.com/kbukum/pipekit/pipeline"
	"github.com/kbukum/pipekit/stream"
)

var (
	_ pipeline.Sink   = (*File)(nil)
	_ pipeline.Opener = (*File)(nil)
	_ pipeline.Closer = (*File)(nil)
)

// FileOption configures a file sink.
type FileOption func(*fileConfig)

type fileConfig struct {
	appendMode bool
}

// Append makes the sink append to an existing file instead of truncating.
func Append() FileOption {
	return func(c *fileConfig) { c.appendMode = true }
}

// File writes one line per record to a file opened at the start of the
// run and closed at the end. The default mode truncates; Append preserves
// existing content. Buffered writes are flushed at Close on every exit
// path, so records delivered before an abort stay written.
type File struct {
	path       string
	appendMode bool
	file       *os.File
	w          *bufio.Writer
	log        *logger.Logger
}

// ToFile creates a sink writing each record as a line to the given path.
func ToFile(path string, opts ...FileOption) *File {
	var cfg fileConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return &File{
		path:       path,
		appendMode: cfg.appendMode,
		log:        logger.Get("sink.file"),
	}
}

// Open acquires the output file.
func (k *File) Open(_ context.Context) error {
	flags := os.O_CREATE | os.O_WRONLY
	if k.appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(k.path, flags, 0o644)
	if err != nil {
		return apperrors.ResourceAccess(k.path, err)
	}
	k.file = f
	k.w = bufio.NewWriter(f)
	k.log.Debug("opened", logger.Fields(logger.FieldResource, filepath.Base(k.path)))
	return nil
}

// Write appends the record payload and a newline. Writing outside the
// open scope is a resource-scope fault.
func (k *File) Write(_ context.Context, item stream.Item) error {
	if k.w == nil {
		return apperrors.NotOpen(filepath.Base(k.path))
	}
	_, err := fmt.Fprintln(k.w, item.Data)
	return err
}

// Close flushes buffered records and releases the file. Safe to call when
// not open.
func (k *File) Close() error {
	if k.file == nil {
		return nil
	}
	ferr := k.w.Flush()
	cerr := k.file.Close()
	k.file, k.w = nil, nil
	k.log.Debug("closed", logger.Fields(logger.FieldResource, filepath.Base(k.path)))
	if ferr != nil {
		return ferr
	}
	return cerr
}

// Describe identifies the sink for logs and faults.
func (k *File) Describe() string { return "sink.file(" + filepath.Base(k.path) + ")" }
