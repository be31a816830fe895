package handler

import (
	"context"
	"image"
	"os"
	"path/filepath"

	// Register the decoders the image handler understands.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	apperrors "github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/logger"
	"github.com/kbukum/pipekit/stream"
)

func init() {
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif"} {
		MustRegister(ext, NewImage)
	}
}

// Image reads a whole file as a single decoded-image record. Unlike the
// text handler this is a whole-object handler: exactly one item per file,
// with the decoded image.Image as the payload.
type Image struct {
	path     string
	resource string
	file     *os.File
	log      *logger.Logger
}

// NewImage creates an image handler for the given path.
func NewImage(path string) Handler {
	return &Image{
		path:     path,
		resource: filepath.Base(path),
		log:      logger.Get("handler.image"),
	}
}

// Open acquires the file handle.
func (h *Image) Open() error {
	f, err := os.Open(h.path)
	if err != nil {
		return apperrors.ResourceAccess(h.path, err)
	}
	h.file = f
	h.log.Debug("opened", logger.Fields(logger.FieldResource, h.resource))
	return nil
}

// Stream returns an iterator yielding the single decoded-image record.
func (h *Image) Stream(_ context.Context) (stream.Iterator, error) {
	if h.file == nil {
		return nil, apperrors.NotOpen(h.resource)
	}
	return &imageIter{file: h.file, resource: h.resource}, nil
}

// Close releases the file handle. Safe to call when not open.
func (h *Image) Close() error {
	if h.file == nil {
		return nil
	}
	err := h.file.Close()
	h.file = nil
	h.log.Debug("closed", logger.Fields(logger.FieldResource, h.resource))
	return err
}

// Resource returns the base name of the handled path.
func (h *Image) Resource() string { return h.resource }

type imageIter struct {
	file     *os.File
	resource string
	done     bool
}

func (it *imageIter) Next(ctx context.Context) (stream.Item, bool, error) {
	if it.done {
		return stream.Item{}, false, nil
	}
	if err := ctx.Err(); err != nil {
		return stream.Item{}, false, apperrors.Canceled(err)
	}
	it.done = true
	img, format, err := image.Decode(it.file)
	if err != nil {
		return stream.Item{}, false, apperrors.ComponentFailure("handler.image", it.resource, err)
	}
	logger.Get("handler.image").Debug("decoded",
		logger.Fields(logger.FieldResource, it.resource, "format", format))
	return stream.Item{Seq: 1, Resource: it.resource, Data: img}, true, nil
}

func (it *imageIter) Close() error { return nil }
