package source

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/pipeline"
	"github.com/kbukum/pipekit/stream"
)

var (
	_ pipeline.Source = (*String)(nil)
	_ pipeline.Source = (*Strings)(nil)
)

// String streams an in-memory string, one record per separator-delimited
// segment. Splitting follows the convention that a trailing separator
// produces a trailing empty segment and the empty string is one empty
// segment, so the segment count is always separators+1.
type String struct {
	name string
	text string
	sep  string
}

// FromString creates a source over a single in-memory string. The default
// separator is "\n" and the default resource label is "text".
func FromString(text string, opts ...Option) *String {
	o := applyOptions(opts)
	return &String{name: o.name, text: text, sep: o.sep}
}

// Open returns a lazy iterator over the string's segments.
func (s *String) Open(_ context.Context) (stream.Iterator, error) {
	return &segmentIter{rest: s.text, sep: s.sep, resource: s.name}, nil
}

// Describe identifies the source for logs and faults.
func (s *String) Describe() string { return "source.string(" + s.name + ")" }

// segmentIter cuts one segment per pull, so no more of the string is
// segmented than the stream consumes.
type segmentIter struct {
	rest     string
	sep      string
	resource string
	seq      int
	done     bool
}

func (it *segmentIter) Next(ctx context.Context) (stream.Item, bool, error) {
	if it.done {
		return stream.Item{}, false, nil
	}
	if err := ctx.Err(); err != nil {
		return stream.Item{}, false, apperrors.Canceled(err)
	}
	seg, rest, found := strings.Cut(it.rest, it.sep)
	if !found {
		it.done = true
	}
	it.rest = rest
	it.seq++
	return stream.Item{Seq: it.seq, Resource: it.resource, Data: seg}, true, nil
}

func (it *segmentIter) Close() error {
	it.done = true
	return nil
}

// Strings streams multiple in-memory strings in order. Each string gets
// its own resource name, "{name}-1", "{name}-2" and so on, and sequence
// numbering restarts per string.
type Strings struct {
	name  string
	texts []string
	sep   string
}

// FromStrings creates a source over a list of in-memory strings.
func FromStrings(texts []string, opts ...Option) *Strings {
	o := applyOptions(opts)
	return &Strings{name: o.name, texts: texts, sep: o.sep}
}

// Open returns a lazy iterator over all strings' segments.
func (s *Strings) Open(_ context.Context) (stream.Iterator, error) {
	return &multiSegmentIter{name: s.name, sep: s.sep, texts: s.texts}, nil
}

// Describe identifies the source for logs and faults.
func (s *Strings) Describe() string { return "source.strings(" + s.name + ")" }

type multiSegmentIter struct {
	name  string
	sep   string
	texts []string
	idx   int
	cur   *segmentIter
}

func (it *multiSegmentIter) Next(ctx context.Context) (stream.Item, bool, error) {
	for {
		if it.cur == nil {
			if it.idx >= len(it.texts) {
				return stream.Item{}, false, nil
			}
			it.idx++
			it.cur = &segmentIter{
				rest:     it.texts[it.idx-1],
				sep:      it.sep,
				resource: fmt.Sprintf("%s-%d", it.name, it.idx),
			}
		}
		item, ok, err := it.cur.Next(ctx)
		if err != nil {
			return stream.Item{}, false, err
		}
		if ok {
			return item, true, nil
		}
		it.cur = nil
	}
}

func (it *multiSegmentIter) Close() error {
	it.cur = nil
	it.idx = len(it.texts)
	return nil
}
