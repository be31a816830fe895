package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	apperrors "github.com/kbukum/pipekit/errors"
)

// Validator collects validation errors.
type Validator struct {
	errors []FieldError
}

// FieldError represents a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// New creates a new Validator.
func New() *Validator {
	return &Validator{
		errors: make([]FieldError, 0),
	}
}

// AddError adds a field error.
func (v *Validator) AddError(field, message string) {
	v.errors = append(v.errors, FieldError{
		Field:   field,
		Message: message,
	})
}

// HasErrors returns true if there are validation errors.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// Errors returns all validation errors.
func (v *Validator) Errors() []FieldError {
	return v.errors
}

// Validate returns an INVALID_DEFINITION error if there are validation
// errors, nil otherwise.
func (v *Validator) Validate() *apperrors.Error {
	if !v.HasErrors() {
		return nil
	}

	// Build error message from all field errors
	messages := make([]string, len(v.errors))
	for i, e := range v.errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}

	appErr := apperrors.InvalidDefinition(strings.Join(messages, "; "))
	appErr.Details = map[string]any{
		"fields": v.errors,
	}

	return appErr
}

// Required checks if a string is non-empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.AddError(field, "is required")
	}
	return v
}

// Min checks if a number meets minimum value.
func (v *Validator) Min(field string, value, minVal int) *Validator {
	if value < minVal {
		v.AddError(field, fmt.Sprintf("must be at least %d", minVal))
	}
	return v
}

// Glob checks if a non-empty string is a well-formed glob pattern.
func (v *Validator) Glob(field, pattern string) *Validator {
	if pattern == "" {
		return v
	}
	if _, err := filepath.Match(pattern, "probe"); err != nil {
		v.AddError(field, fmt.Sprintf("invalid glob pattern %q", pattern))
	}
	return v
}

// Regex checks if a non-empty string compiles as a regular expression.
func (v *Validator) Regex(field, pattern string) *Validator {
	if pattern == "" {
		return v
	}
	if _, err := regexp.Compile(pattern); err != nil {
		v.AddError(field, fmt.Sprintf("invalid regular expression %q", pattern))
	}
	return v
}

// OneOf checks if a value is one of the allowed values.
func (v *Validator) OneOf(field, value string, allowed []string) *Validator {
	if value == "" {
		return v
	}
	for _, a := range allowed {
		if value == a {
			return v
		}
	}
	v.AddError(field, fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")))
	return v
}

// Custom applies a custom validation condition.
func (v *Validator) Custom(condition bool, field, message string) *Validator {
	if !condition {
		v.AddError(field, message)
	}
	return v
}

// ValidGlob checks a single glob pattern and returns an INVALID_PATTERN
// error if it is malformed.
func ValidGlob(pattern string) error {
	if _, err := filepath.Match(pattern, "probe"); err != nil {
		return apperrors.InvalidPattern(pattern, err)
	}
	return nil
}

// ValidGlobs checks every pattern in the given lists, returning the first
// INVALID_PATTERN error found.
func ValidGlobs(lists ...[]string) error {
	for _, patterns := range lists {
		for _, pat := range patterns {
			if err := ValidGlob(pat); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValidRegex checks a regular expression and returns an INVALID_PATTERN
// error if it does not compile.
func ValidRegex(pattern string) error {
	if _, err := regexp.Compile(pattern); err != nil {
		return apperrors.InvalidPattern(pattern, err)
	}
	return nil
}
