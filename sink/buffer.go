package sink

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbukum/pipekit/pipeline"
	"github.com/kbukum/pipekit/stream"
)

var (
	_ pipeline.Sink   = (*Buffer)(nil)
	_ pipeline.Opener = (*Buffer)(nil)
)

// Buffer accumulates records into an in-memory string, one line per
// record. The buffer resets at the start of each run, so String returns
// the output of the most recent run only.
type Buffer struct {
	sb strings.Builder
}

// ToBuffer creates an in-memory accumulator sink.
func ToBuffer() *Buffer { return &Buffer{} }

// Open resets the accumulated output for a fresh run.
func (k *Buffer) Open(_ context.Context) error {
	k.sb.Reset()
	return nil
}

// Write appends the record payload and a newline.
func (k *Buffer) Write(_ context.Context, item stream.Item) error {
	_, err := fmt.Fprintln(&k.sb, item.Data)
	return err
}

// String returns the accumulated output.
func (k *Buffer) String() string { return k.sb.String() }

// Describe identifies the sink for logs and faults.
func (k *Buffer) Describe() string { return "sink.buffer" }
