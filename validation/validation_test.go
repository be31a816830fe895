package validation

import (
	"strings"
	"testing"

	apperrors "github.com/kbukum/pipekit/errors"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("name", "scan")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v2 := New()
	v2.Required("name", "")
	if !v2.HasErrors() {
		t.Error("expected error for empty required field")
	}

	v3 := New()
	v3.Required("name", "   ")
	if !v3.HasErrors() {
		t.Error("expected error for whitespace-only required field")
	}
}

func TestValidatorMin(t *testing.T) {
	v := New()
	v.Min("sources", 2, 1)
	if v.HasErrors() {
		t.Error("expected no error for value above min")
	}

	v2 := New()
	v2.Min("sources", 0, 1)
	if !v2.HasErrors() {
		t.Error("expected error for value below min")
	}
}

func TestValidatorGlob(t *testing.T) {
	v := New()
	v.Glob("keep", "*.txt")
	if v.HasErrors() {
		t.Errorf("expected no error for valid glob, got %v", v.Errors())
	}

	v2 := New()
	v2.Glob("keep", "[a-")
	if !v2.HasErrors() {
		t.Error("expected error for malformed glob")
	}

	// Empty pattern should be skipped
	v3 := New()
	v3.Glob("keep", "")
	if v3.HasErrors() {
		t.Error("expected no error for empty glob")
	}
}

func TestValidatorRegex(t *testing.T) {
	v := New()
	v.Regex("match", `^[a-z]+$`)
	if v.HasErrors() {
		t.Errorf("expected no error for valid regex, got %v", v.Errors())
	}

	v2 := New()
	v2.Regex("match", "(unclosed")
	if !v2.HasErrors() {
		t.Error("expected error for malformed regex")
	}

	// Empty pattern should be skipped
	v3 := New()
	v3.Regex("match", "")
	if v3.HasErrors() {
		t.Error("expected no error for empty regex")
	}
}

func TestValidatorOneOf(t *testing.T) {
	v := New()
	v.OneOf("type", "file", []string{"file", "dir", "glob"})
	if v.HasErrors() {
		t.Error("expected no error for valid oneOf value")
	}

	v2 := New()
	v2.OneOf("type", "socket", []string{"file", "dir", "glob"})
	if !v2.HasErrors() {
		t.Error("expected error for invalid oneOf value")
	}

	// Empty should be skipped
	v3 := New()
	v3.OneOf("type", "", []string{"file"})
	if v3.HasErrors() {
		t.Error("expected no error for empty oneOf value")
	}
}

func TestValidatorCustom(t *testing.T) {
	v := New()
	v.Custom(true, "field", "should pass")
	if v.HasErrors() {
		t.Error("expected no error for true condition")
	}

	v2 := New()
	v2.Custom(false, "field", "custom error")
	if !v2.HasErrors() {
		t.Error("expected error for false condition")
	}
	if v2.Errors()[0].Message != "custom error" {
		t.Errorf("expected 'custom error', got %q", v2.Errors()[0].Message)
	}
}

func TestValidatorValidate(t *testing.T) {
	v := New()
	v.Required("name", "scan")
	appErr := v.Validate()
	if appErr != nil {
		t.Error("expected nil for valid input")
	}

	v2 := New()
	v2.Required("name", "")
	v2.Required("type", "")
	appErr2 := v2.Validate()
	if appErr2 == nil {
		t.Fatal("expected error")
	}
	if appErr2.Code != apperrors.ErrCodeInvalidDefinition {
		t.Errorf("expected INVALID_DEFINITION, got %s", appErr2.Code)
	}
	if appErr2.Details == nil {
		t.Fatal("expected details in error")
	}
	if !strings.Contains(appErr2.Message, "name") || !strings.Contains(appErr2.Message, "type") {
		t.Errorf("expected both fields in message, got %q", appErr2.Message)
	}
}

func TestValidatorChaining(t *testing.T) {
	v := New()
	result := v.Required("name", "scan").Glob("keep", "*.txt").Min("sources", 1, 1)
	if result != v {
		t.Error("expected chaining to return same validator")
	}
	if v.HasErrors() {
		t.Error("expected no errors for valid chained validation")
	}
}

func TestStructValidateValid(t *testing.T) {
	type component struct {
		Type string `yaml:"type" validate:"required"`
		Name string `yaml:"name" validate:"required"`
	}

	err := Validate(component{Type: "file", Name: "input"})
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestStructValidateInvalid(t *testing.T) {
	type component struct {
		Type string `yaml:"type" validate:"required"`
		Name string `yaml:"name" validate:"required"`
	}

	err := Validate(component{Type: "", Name: "input"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	errStr := err.Error()
	if !strings.Contains(errStr, "type") {
		t.Errorf("expected error to mention 'type', got %q", errStr)
	}
	if !apperrors.IsCode(err, apperrors.ErrCodeInvalidDefinition) {
		t.Errorf("expected INVALID_DEFINITION, got %s", apperrors.GetCode(err))
	}
}

func TestStructValidateMinSlice(t *testing.T) {
	type definition struct {
		Sources []string `yaml:"sources" validate:"required,min=1"`
	}

	if err := Validate(definition{Sources: []string{"a"}}); err != nil {
		t.Errorf("expected valid, got %v", err)
	}

	err := Validate(definition{Sources: []string{}})
	if err == nil {
		t.Fatal("expected error for empty sources")
	}
	if !strings.Contains(err.Error(), "sources") {
		t.Errorf("expected error to mention 'sources', got %q", err.Error())
	}
}

func TestStructValidateOneOf(t *testing.T) {
	type settings struct {
		Format string `yaml:"format" validate:"oneof=console json"`
	}

	if err := Validate(settings{Format: "json"}); err != nil {
		t.Errorf("expected valid, got %v", err)
	}

	err := Validate(settings{Format: "xml"})
	if err == nil {
		t.Fatal("expected error for bad format")
	}
	if !strings.Contains(err.Error(), "must be one of") {
		t.Errorf("expected oneof message, got %q", err.Error())
	}
}

func TestValidGlob(t *testing.T) {
	if err := ValidGlob("*.txt"); err != nil {
		t.Errorf("expected nil for valid glob, got %v", err)
	}

	err := ValidGlob("[a-")
	if err == nil {
		t.Fatal("expected error for malformed glob")
	}
	if !apperrors.IsCode(err, apperrors.ErrCodeInvalidPattern) {
		t.Errorf("expected INVALID_PATTERN, got %s", apperrors.GetCode(err))
	}
}

func TestValidGlobs(t *testing.T) {
	if err := ValidGlobs([]string{"*.txt", "*.md"}, []string{"tmp*"}); err != nil {
		t.Errorf("expected nil for valid globs, got %v", err)
	}

	if err := ValidGlobs([]string{"*.txt"}, []string{"[a-"}); err == nil {
		t.Error("expected error for malformed glob in second list")
	}

	if err := ValidGlobs(); err != nil {
		t.Errorf("expected nil for no lists, got %v", err)
	}
}

func TestValidRegex(t *testing.T) {
	if err := ValidRegex(`^\d+$`); err != nil {
		t.Errorf("expected nil for valid regex, got %v", err)
	}

	err := ValidRegex("(unclosed")
	if err == nil {
		t.Fatal("expected error for malformed regex")
	}
	if !apperrors.IsCode(err, apperrors.ErrCodeInvalidPattern) {
		t.Errorf("expected INVALID_PATTERN, got %s", apperrors.GetCode(err))
	}
}
