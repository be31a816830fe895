package pipeline

import (
	apperrors "github.com/kbukum/pipekit/errors"
)

// phase is the chain builder's ordering state. Transitions are monotonic:
// sources -> transforms -> sinks, never backward.
type phase int

const (
	phaseSources phase = iota
	phaseTransforms
	phaseSinks
)

func (p phase) String() string {
	switch p {
	case phaseSources:
		return "gathering sources"
	case phaseTransforms:
		return "gathering transforms"
	case phaseSinks:
		return "gathering sinks"
	default:
		return "unknown"
	}
}

// Pipeline is an ordered, validated stage chain: zero or more sources,
// followed by zero or more transforms, followed by zero or more sinks.
// The chain is built once and is immutable during execution; Run may be
// called repeatedly and re-reads every source from scratch.
//
// A Pipeline must not be shared between goroutines.
type Pipeline struct {
	name       string
	phase      phase
	sources    []Source
	transforms []Transform
	sinks      []Sink
	err        error
}

// New creates an empty chain. An empty chain is legal to build and fails
// only at Run, with a nothing-to-run fault.
func New(name string) *Pipeline {
	if name == "" {
		name = "pipeline"
	}
	return &Pipeline{name: name}
}

// Name returns the chain's identifier, used in logs and spans.
func (p *Pipeline) Name() string { return p.name }

// AddSource appends a source. Legal only while no transform or sink has
// been appended; a later append returns a composition-ordering fault and
// leaves the chain unchanged.
func (p *Pipeline) AddSource(s Source) error {
	if p.phase != phaseSources {
		return apperrors.CompositionOrder(p.phase.String(), "source")
	}
	p.sources = append(p.sources, s)
	return nil
}

// AddTransform appends a transform. Legal while no sink has been appended;
// sources cannot be appended afterward.
func (p *Pipeline) AddTransform(t Transform) error {
	if p.phase == phaseSinks {
		return apperrors.CompositionOrder(p.phase.String(), "transform")
	}
	p.phase = phaseTransforms
	p.transforms = append(p.transforms, t)
	return nil
}

// AddSink appends a sink. Legal at any point; once any sink is appended,
// no further source or transform may be.
func (p *Pipeline) AddSink(s Sink) error {
	p.phase = phaseSinks
	p.sinks = append(p.sinks, s)
	return nil
}

// Pipe appends a component by capability, reading left to right:
//
//	pipeline.New("report").Pipe(src).Pipe(filter).Pipe(out)
//
// A value implementing more than one capability is appended under the
// first match, in the order source, transform, sink. Ordering violations
// and unsupported types latch the first fault on the chain instead of
// returning it (a fluent call cannot fail per append); the latched fault
// is reported by Err and by Run, and nothing after the violation is ever
// appended.
func (p *Pipeline) Pipe(component any) *Pipeline {
	if p.err != nil {
		return p
	}
	switch c := component.(type) {
	case Source:
		p.err = p.AddSource(c)
	case Transform:
		p.err = p.AddTransform(c)
	case Sink:
		p.err = p.AddSink(c)
	default:
		p.err = apperrors.UnsupportedComponent(component)
	}
	return p
}

// Err returns the first composition fault latched by Pipe, or nil.
func (p *Pipeline) Err() error { return p.err }

// Stages reports how many sources, transforms, and sinks the chain holds.
func (p *Pipeline) Stages() (sources, transforms, sinks int) {
	return len(p.sources), len(p.transforms), len(p.sinks)
}
