package handler

import (
	"context"

	"github.com/kbukum/pipekit/stream"
)

// Handler produces records from a single opened resource. A handler owns
// the underlying OS handle for its scoped lifetime: Open acquires it,
// Close releases it, and Stream is only legal in between. The file source
// guarantees Close on every exit path.
type Handler interface {
	// Open acquires the underlying resource.
	Open() error
	// Stream returns a lazy iterator over the records of the open resource.
	// Streaming outside the open scope fails with a resource-scope fault.
	Stream(ctx context.Context) (stream.Iterator, error)
	// Close releases the underlying resource. Safe to call when not open.
	Close() error
	// Resource identifies the resource for logs and faults.
	Resource() string
}

// Factory creates a fresh handler for a path. Handlers are single-use:
// one factory call per file per run.
type Factory func(path string) Handler
