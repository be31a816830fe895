package config

import (
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/kbukum/pipekit/pipeline"
	"github.com/kbukum/pipekit/sink"
	"github.com/kbukum/pipekit/source"
	"github.com/kbukum/pipekit/transform"
)

var (
	builtinsOnce sync.Once
	builtins     *Registry
)

// Builtins returns the shared registry of built-in component types.
// Callers extending the set should register into their own NewRegistry
// (or on top of this one) rather than relying on registration order.
func Builtins() *Registry {
	builtinsOnce.Do(func() {
		builtins = NewRegistry()
		registerBuiltinSources(builtins)
		registerBuiltinTransforms(builtins)
		registerBuiltinSinks(builtins)
	})
	return builtins
}

// --- sources ---

type stringOptions struct {
	Text      string `yaml:"text" validate:"required"`
	Name      string `yaml:"name"`
	Separator string `yaml:"separator"`
}

type stringsOptions struct {
	Texts     []string `yaml:"texts" validate:"required,min=1"`
	Name      string   `yaml:"name"`
	Separator string   `yaml:"separator"`
}

type fileOptions struct {
	Path string `yaml:"path" validate:"required"`
}

type dirOptions struct {
	Path string   `yaml:"path" validate:"required"`
	Keep []string `yaml:"keep"`
	Skip []string `yaml:"skip"`
}

type globOptions struct {
	Root     string   `yaml:"root" validate:"required"`
	Keep     []string `yaml:"keep"`
	Skip     []string `yaml:"skip"`
	SkipDirs []string `yaml:"skip_dirs"`
}

func registerBuiltinSources(r *Registry) {
	r.RegisterSource("string", func(opts *yaml.Node) (pipeline.Source, error) {
		var o stringOptions
		if err := decode(opts, &o); err != nil {
			return nil, err
		}
		return source.FromString(o.Text, stringSourceOpts(o.Name, o.Separator)...), nil
	})
	r.RegisterSource("strings", func(opts *yaml.Node) (pipeline.Source, error) {
		var o stringsOptions
		if err := decode(opts, &o); err != nil {
			return nil, err
		}
		return source.FromStrings(o.Texts, stringSourceOpts(o.Name, o.Separator)...), nil
	})
	r.RegisterSource("file", func(opts *yaml.Node) (pipeline.Source, error) {
		var o fileOptions
		if err := decode(opts, &o); err != nil {
			return nil, err
		}
		return source.FromFile(o.Path)
	})
	r.RegisterSource("dir", func(opts *yaml.Node) (pipeline.Source, error) {
		var o dirOptions
		if err := decode(opts, &o); err != nil {
			return nil, err
		}
		return source.FromDir(o.Path,
			source.WithKeep(o.Keep...),
			source.WithSkip(o.Skip...),
		)
	})
	r.RegisterSource("glob", func(opts *yaml.Node) (pipeline.Source, error) {
		var o globOptions
		if err := decode(opts, &o); err != nil {
			return nil, err
		}
		return source.FromGlob(o.Root,
			source.WithKeep(o.Keep...),
			source.WithSkip(o.Skip...),
			source.WithSkipDirs(o.SkipDirs...),
		)
	})
}

func stringSourceOpts(name, sep string) []source.Option {
	var opts []source.Option
	if name != "" {
		opts = append(opts, source.WithName(name))
	}
	if sep != "" {
		opts = append(opts, source.WithSeparator(sep))
	}
	return opts
}

// --- transforms ---

type patternOptions struct {
	Pattern    string `yaml:"pattern" validate:"required"`
	IgnoreCase bool   `yaml:"ignore_case"`
}

type substituteOptions struct {
	Pattern     string `yaml:"pattern" validate:"required"`
	Replacement string `yaml:"replacement"`
	IgnoreCase  bool   `yaml:"ignore_case"`
}

// Factor is a pointer so an explicit 0 (black out) is distinguishable
// from a missing value.
type brightnessOptions struct {
	Factor *float64 `yaml:"factor" validate:"required,min=0"`
}

func registerBuiltinTransforms(r *Registry) {
	r.RegisterTransform("uppercase", func(opts *yaml.Node) (pipeline.Transform, error) {
		return transform.UpperCase(), nil
	})
	r.RegisterTransform("lowercase", func(opts *yaml.Node) (pipeline.Transform, error) {
		return transform.LowerCase(), nil
	})
	r.RegisterTransform("add_metadata", func(opts *yaml.Node) (pipeline.Transform, error) {
		return transform.AddMetadata(), nil
	})
	r.RegisterTransform("keep_matching", func(opts *yaml.Node) (pipeline.Transform, error) {
		var o patternOptions
		if err := decode(opts, &o); err != nil {
			return nil, err
		}
		return transform.KeepMatching(o.Pattern, regexOpts(o.IgnoreCase)...)
	})
	r.RegisterTransform("skip_matching", func(opts *yaml.Node) (pipeline.Transform, error) {
		var o patternOptions
		if err := decode(opts, &o); err != nil {
			return nil, err
		}
		return transform.SkipMatching(o.Pattern, regexOpts(o.IgnoreCase)...)
	})
	r.RegisterTransform("substitute", func(opts *yaml.Node) (pipeline.Transform, error) {
		var o substituteOptions
		if err := decode(opts, &o); err != nil {
			return nil, err
		}
		return transform.Substitute(o.Pattern, o.Replacement, regexOpts(o.IgnoreCase)...)
	})
	r.RegisterTransform("squeeze_blanks", func(opts *yaml.Node) (pipeline.Transform, error) {
		return transform.SqueezeBlanks(), nil
	})
	r.RegisterTransform("split_words", func(opts *yaml.Node) (pipeline.Transform, error) {
		return transform.SplitWords(), nil
	})
	r.RegisterTransform("grayscale", func(opts *yaml.Node) (pipeline.Transform, error) {
		return transform.Grayscale(), nil
	})
	r.RegisterTransform("brightness", func(opts *yaml.Node) (pipeline.Transform, error) {
		var o brightnessOptions
		if err := decode(opts, &o); err != nil {
			return nil, err
		}
		return transform.Brightness(*o.Factor), nil
	})
}

func regexOpts(ignoreCase bool) []transform.RegexOption {
	if ignoreCase {
		return []transform.RegexOption{transform.IgnoreCase()}
	}
	return nil
}

// --- sinks ---

type fileSinkOptions struct {
	Path   string `yaml:"path" validate:"required"`
	Append bool   `yaml:"append"`
}

type jsonSinkOptions struct {
	Path        string `yaml:"path" validate:"required"`
	Description string `yaml:"description"`
}

func registerBuiltinSinks(r *Registry) {
	r.RegisterSink("stdout", func(opts *yaml.Node) (pipeline.Sink, error) {
		return sink.ToStdout(), nil
	})
	r.RegisterSink("file", func(opts *yaml.Node) (pipeline.Sink, error) {
		var o fileSinkOptions
		if err := decode(opts, &o); err != nil {
			return nil, err
		}
		var fo []sink.FileOption
		if o.Append {
			fo = append(fo, sink.Append())
		}
		return sink.ToFile(o.Path, fo...), nil
	})
	r.RegisterSink("json", func(opts *yaml.Node) (pipeline.Sink, error) {
		var o jsonSinkOptions
		if err := decode(opts, &o); err != nil {
			return nil, err
		}
		var jo []sink.JSONOption
		if o.Description != "" {
			jo = append(jo, sink.WithDescription(o.Description))
		}
		return sink.ToJSON(o.Path, jo...), nil
	})
}
