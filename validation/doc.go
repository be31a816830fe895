// Package validation provides input validation for pipeline definitions
// and component options.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection. Struct tag validation is
// used for YAML pipeline definitions; the programmatic validator and the
// pattern helpers serve component constructors.
//
// # Struct Tag Validation
//
//	type Definition struct {
//	    Name    string         `yaml:"name" validate:"required"`
//	    Sources []ComponentDef `yaml:"sources" validate:"required,min=1,dive"`
//	}
//	err := validation.Validate(def)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("name", name).Glob("keep", pattern)
//	if appErr := v.Validate(); appErr != nil { ... }
//
// # Pattern Helpers
//
//	if err := validation.ValidGlobs(keep, skip); err != nil { ... }
//	if err := validation.ValidRegex(expr); err != nil { ... }
package validation
