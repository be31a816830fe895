package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	apperrors "github.com/kbukum/pipekit/errors"
	"github.com/kbukum/pipekit/pipeline"
	"github.com/kbukum/pipekit/validation"
)

// Definition is a YAML-declared pipeline: named component entries in the
// only order a chain accepts them, sources then transforms then sinks.
// A definition describes a complete runnable pipeline, so at least one
// source and one sink are required at load time.
type Definition struct {
	// Name is the pipeline identifier, used in logs and spans.
	Name string `yaml:"name" validate:"required"`
	// Sources lists the record origins, streamed in declaration order.
	Sources []ComponentDef `yaml:"sources" validate:"required,min=1,dive"`
	// Transforms lists the record transforms, applied in declaration order.
	Transforms []ComponentDef `yaml:"transforms,omitempty" validate:"dive"`
	// Sinks lists the record destinations; every surviving record is
	// delivered to all of them.
	Sinks []ComponentDef `yaml:"sinks" validate:"required,min=1,dive"`
}

// ComponentDef is one component entry: a registered type name plus its
// type-specific options, decoded by the component's factory.
type ComponentDef struct {
	// Type is the registry lookup key, e.g. "file" or "skip_matching".
	Type string `yaml:"type" validate:"required"`
	// Options holds the raw option mapping for the factory to decode.
	Options yaml.Node `yaml:"options,omitempty"`
}

// Parse parses a pipeline definition from YAML bytes and validates its
// shape. Option values are validated later, by the component factories.
func Parse(data []byte) (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, apperrors.InvalidDefinition("definition is not valid YAML").WithCause(err)
	}
	if err := validation.Validate(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// Load reads and parses a pipeline definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.ResourceAccess(path, err)
	}
	def, err := Parse(data)
	if err != nil {
		if appErr, ok := apperrors.AsError(err); ok {
			appErr.WithResource(path)
		}
		return nil, err
	}
	return def, nil
}

// Build turns a definition into a runnable pipeline using the given
// factory registry (Builtins() when nil). Component entries are appended
// in declaration order, so a valid definition always satisfies the chain's
// ordering contract; an unknown type or a factory failure is surfaced with
// the offending entry's position.
func Build(def *Definition, reg *Registry) (*pipeline.Pipeline, error) {
	if def == nil {
		return nil, apperrors.InvalidDefinition("definition is nil")
	}
	if reg == nil {
		reg = Builtins()
	}
	if err := validation.Validate(def); err != nil {
		return nil, err
	}

	p := pipeline.New(def.Name)
	for i, c := range def.Sources {
		factory, ok := reg.source(c.Type)
		if !ok {
			return nil, unknownType("sources", i, c.Type, reg.SourceTypes())
		}
		src, err := factory(&c.Options)
		if err != nil {
			return nil, entryErr("sources", i, c.Type, err)
		}
		if err := p.AddSource(src); err != nil {
			return nil, err
		}
	}
	for i, c := range def.Transforms {
		factory, ok := reg.transform(c.Type)
		if !ok {
			return nil, unknownType("transforms", i, c.Type, reg.TransformTypes())
		}
		tf, err := factory(&c.Options)
		if err != nil {
			return nil, entryErr("transforms", i, c.Type, err)
		}
		if err := p.AddTransform(tf); err != nil {
			return nil, err
		}
	}
	for i, c := range def.Sinks {
		factory, ok := reg.sink(c.Type)
		if !ok {
			return nil, unknownType("sinks", i, c.Type, reg.SinkTypes())
		}
		k, err := factory(&c.Options)
		if err != nil {
			return nil, entryErr("sinks", i, c.Type, err)
		}
		if err := p.AddSink(k); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// decode unmarshals a component's options node into a typed options struct
// and validates it. A missing options block decodes to the zero value, so
// factories whose options are all optional work without one.
func decode(node *yaml.Node, into any) error {
	if node != nil && !node.IsZero() {
		if err := node.Decode(into); err != nil {
			return apperrors.InvalidDefinition("options do not match the component").WithCause(err)
		}
	}
	return validation.Validate(into)
}

func unknownType(section string, index int, typ string, known []string) error {
	return apperrors.InvalidDefinition(
		fmt.Sprintf("%s[%d]: unknown type %q", section, index, typ),
	).WithDetail("known_types", known)
}

func entryErr(section string, index int, typ string, err error) error {
	if appErr, ok := apperrors.AsError(err); ok {
		return appErr.WithDetail("entry", fmt.Sprintf("%s[%d]", section, index)).
			WithComponent(typ)
	}
	return apperrors.InvalidDefinition(
		fmt.Sprintf("%s[%d] (%s): %v", section, index, typ, err),
	).WithCause(err)
}
