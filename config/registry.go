package config

import (
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/kbukum/pipekit/pipeline"
)

// SourceFactory builds a source from a definition entry's options node.
type SourceFactory func(opts *yaml.Node) (pipeline.Source, error)

// TransformFactory builds a transform from a definition entry's options node.
type TransformFactory func(opts *yaml.Node) (pipeline.Transform, error)

// SinkFactory builds a sink from a definition entry's options node.
type SinkFactory func(opts *yaml.Node) (pipeline.Sink, error)

// Registry maps definition type names to component factories. Safe for
// concurrent registration; Build only reads.
type Registry struct {
	mu         sync.RWMutex
	sources    map[string]SourceFactory
	transforms map[string]TransformFactory
	sinks      map[string]SinkFactory
}

// NewRegistry returns an empty factory registry.
func NewRegistry() *Registry {
	return &Registry{
		sources:    make(map[string]SourceFactory),
		transforms: make(map[string]TransformFactory),
		sinks:      make(map[string]SinkFactory),
	}
}

// RegisterSource adds a source factory under the given type name,
// replacing any existing registration.
func (r *Registry) RegisterSource(name string, f SourceFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources[name] = f
}

// RegisterTransform adds a transform factory under the given type name,
// replacing any existing registration.
func (r *Registry) RegisterTransform(name string, f TransformFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transforms[name] = f
}

// RegisterSink adds a sink factory under the given type name, replacing
// any existing registration.
func (r *Registry) RegisterSink(name string, f SinkFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sinks[name] = f
}

func (r *Registry) source(name string) (SourceFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.sources[name]
	return f, ok
}

func (r *Registry) transform(name string) (TransformFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.transforms[name]
	return f, ok
}

func (r *Registry) sink(name string) (SinkFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.sinks[name]
	return f, ok
}

// SourceTypes returns the registered source type names in sorted order.
func (r *Registry) SourceTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.sources)
}

// TransformTypes returns the registered transform type names in sorted order.
func (r *Registry) TransformTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.transforms)
}

// SinkTypes returns the registered sink type names in sorted order.
func (r *Registry) SinkTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.sinks)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
