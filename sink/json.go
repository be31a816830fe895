package sink

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	apperrors "github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/logger"
	"github.com/kbukum/pipekit/pipeline"
	"github.com/kbukum/pipekit/stream"
)

var (
	_ pipeline.Sink      = (*JSON)(nil)
	_ pipeline.Opener    = (*JSON)(nil)
	_ pipeline.Finalizer = (*JSON)(nil)
)

// JSONOption configures a JSON sink.
type JSONOption func(*jsonConfig)

type jsonConfig struct {
	description string
	created     time.Time
}

// WithDescription sets the document header description.
func WithDescription(description string) JSONOption {
	return func(c *jsonConfig) { c.description = description }
}

// WithCreated pins the document header timestamp; the default is the
// finalize time.
func WithCreated(ts time.Time) JSONOption {
	return func(c *jsonConfig) { c.created = ts }
}

// JSON accumulates records and writes one JSON document at Finalize:
// a header with description, creation timestamp, and record count, then
// the records as {seq, resource, data} entries. An aborted run never
// finalizes, so the document file only exists after a completed run.
type JSON struct {
	path        string
	description string
	created     time.Time
	records     []jsonRecord
	log         *logger.Logger
}

type jsonDocument struct {
	Header  jsonHeader   `json:"header"`
	Records []jsonRecord `json:"records"`
}

type jsonHeader struct {
	Description string `json:"description"`
	Created     string `json:"created"`
	Count       int    `json:"count"`
}

type jsonRecord struct {
	Seq      int    `json:"seq"`
	Resource string `json:"resource"`
	Data     any    `json:"data"`
}

// ToJSON creates a sink writing a JSON document to the given path when
// the run completes.
func ToJSON(path string, opts ...JSONOption) *JSON {
	cfg := jsonConfig{description: "JSON Data"}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &JSON{
		path:        path,
		description: cfg.description,
		created:     cfg.created,
		log:         logger.Get("sink.json"),
	}
}

// Open resets the accumulated records for a fresh run.
func (k *JSON) Open(_ context.Context) error {
	k.records = k.records[:0]
	return nil
}

// Write buffers the record for the document.
func (k *JSON) Write(_ context.Context, item stream.Item) error {
	k.records = append(k.records, jsonRecord{Seq: item.Seq, Resource: item.Resource, Data: item.Data})
	return nil
}

// Finalize serializes the document and writes it out.
func (k *JSON) Finalize(_ context.Context) error {
	created := k.created
	if created.IsZero() {
		created = time.Now()
	}
	records := k.records
	if records == nil {
		records = []jsonRecord{}
	}
	doc := jsonDocument{
		Header: jsonHeader{
			Description: k.description,
			Created:     created.Format(time.RFC3339),
			Count:       len(records),
		},
		Records: records,
	}
	buf, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(k.path, buf, 0o644); err != nil {
		return apperrors.ResourceAccess(k.path, err)
	}
	k.log.Debug("document written", logger.Fields(
		logger.FieldResource, filepath.Base(k.path),
		logger.FieldRecords, len(records),
	))
	return nil
}

// Describe identifies the sink for logs and faults.
func (k *JSON) Describe() string { return "sink.json(" + filepath.Base(k.path) + ")" }
