package handler

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"

	apperrors "github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/logger"
	"github.com/kbukum/pipekit/stream"
)

const maxLineSize = 4 * 1024 * 1024

// Text reads a file line by line, one record per line. Line endings
// (LF, CRLF, lone CR) are normalized away so the payload never carries
// a terminator. Sequence numbers are 1-based per file.
type Text struct {
	path     string
	resource string
	file     *os.File
	log      *logger.Logger
}

// NewText creates a text handler for the given path. The resource name
// recorded on items is the base name of the path.
func NewText(path string) Handler {
	return &Text{
		path:     path,
		resource: filepath.Base(path),
		log:      logger.Get("handler.text"),
	}
}

// Open acquires the file handle.
func (h *Text) Open() error {
	f, err := os.Open(h.path)
	if err != nil {
		return apperrors.ResourceAccess(h.path, err)
	}
	h.file = f
	h.log.Debug("opened", logger.Fields(logger.FieldResource, h.resource))
	return nil
}

// Stream returns a lazy line iterator over the open file.
func (h *Text) Stream(_ context.Context) (stream.Iterator, error) {
	if h.file == nil {
		return nil, apperrors.NotOpen(h.resource)
	}
	sc := bufio.NewScanner(h.file)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	sc.Split(scanLines)
	return &textIter{scanner: sc, resource: h.resource}, nil
}

// Close releases the file handle. Safe to call when not open.
func (h *Text) Close() error {
	if h.file == nil {
		return nil
	}
	err := h.file.Close()
	h.file = nil
	h.log.Debug("closed", logger.Fields(logger.FieldResource, h.resource))
	return err
}

// Resource returns the base name of the handled path.
func (h *Text) Resource() string { return h.resource }

type textIter struct {
	scanner  *bufio.Scanner
	resource string
	seq      int
}

func (it *textIter) Next(ctx context.Context) (stream.Item, bool, error) {
	if err := ctx.Err(); err != nil {
		return stream.Item{}, false, apperrors.Canceled(err)
	}
	if !it.scanner.Scan() {
		if err := it.scanner.Err(); err != nil {
			return stream.Item{}, false, apperrors.ResourceAccess(it.resource, err)
		}
		return stream.Item{}, false, nil
	}
	it.seq++
	return stream.Item{Seq: it.seq, Resource: it.resource, Data: it.scanner.Text()}, true, nil
}

func (it *textIter) Close() error { return nil }

// scanLines splits on LF, CRLF, or lone CR, dropping the terminator.
func scanLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		if data[i] == '\n' {
			return i + 1, data[:i], nil
		}
		// CR: consume a following LF as part of the terminator.
		if i+1 < len(data) {
			if data[i+1] == '\n' {
				return i + 2, data[:i], nil
			}
			return i + 1, data[:i], nil
		}
		if atEOF {
			return i + 1, data[:i], nil
		}
		// CR at the end of the buffer: request more data to see if LF follows.
		return 0, nil, nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
