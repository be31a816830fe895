package sink

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/kbukum/pipekit/pipeline"
	"github.com/kbukum/pipekit/stream"
)

var _ pipeline.Sink = (*Console)(nil)

// Console writes one line per record to a writer, unbuffered. It needs no
// lifecycle: the writer is owned by the caller.
type Console struct {
	w io.Writer
}

// ToStdout creates a sink writing each record to standard output.
func ToStdout() *Console { return &Console{w: os.Stdout} }

// ToWriter creates a console sink with an injected writer.
func ToWriter(w io.Writer) *Console { return &Console{w: w} }

// Write prints the record payload followed by a newline.
func (k *Console) Write(_ context.Context, item stream.Item) error {
	_, err := fmt.Fprintln(k.w, item.Data)
	return err
}

// Describe identifies the sink for logs and faults.
func (k *Console) Describe() string { return "sink.stdout" }
