package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeNothingToRun, "nothing to run")
	if err.Code != ErrCodeNothingToRun {
		t.Errorf("expected code %s, got %s", ErrCodeNothingToRun, err.Code)
	}
	if err.Message != "nothing to run" {
		t.Errorf("expected message 'nothing to run', got %q", err.Message)
	}
}

func TestCompositionOrder(t *testing.T) {
	err := CompositionOrder("gathering sinks", "source")
	if err.Code != ErrCodeCompositionOrder {
		t.Errorf("expected COMPOSITION_ORDER, got %s", err.Code)
	}
	if err.Details["phase"] != "gathering sinks" {
		t.Errorf("expected phase detail, got %v", err.Details["phase"])
	}
	if !strings.Contains(err.Error(), "cannot append source") {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestUnsupportedComponent(t *testing.T) {
	err := UnsupportedComponent(42)
	if err.Code != ErrCodeCompositionOrder {
		t.Errorf("expected COMPOSITION_ORDER, got %s", err.Code)
	}
	if !strings.Contains(err.Message, "int") {
		t.Errorf("expected type name in message, got %q", err.Message)
	}
}

func TestResourceAccess(t *testing.T) {
	cause := stderrors.New("no such file")
	err := ResourceAccess("/tmp/missing.txt", cause)
	if err.Code != ErrCodeResourceAccess {
		t.Errorf("expected RESOURCE_ACCESS, got %s", err.Code)
	}
	if err.Resource != "/tmp/missing.txt" {
		t.Errorf("expected resource path, got %q", err.Resource)
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be reachable via errors.Is")
	}
}

func TestNotOpen(t *testing.T) {
	err := NotOpen("data.txt")
	if err.Code != ErrCodeResourceScope {
		t.Errorf("expected RESOURCE_SCOPE, got %s", err.Code)
	}
	if err.Message != "file is not open" {
		t.Errorf("expected 'file is not open', got %q", err.Message)
	}
	if err.Resource != "data.txt" {
		t.Errorf("expected resource 'data.txt', got %q", err.Resource)
	}
}

func TestComponentFailure_Unwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := ComponentFailure("sink.file", "out.txt", cause)
	if err.Unwrap() != cause {
		t.Error("expected Unwrap to return cause")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected cause in message, got %s", err.Error())
	}
	if !strings.Contains(err.Error(), "out.txt") {
		t.Errorf("expected resource in message, got %s", err.Error())
	}
}

func TestError_WithDetail(t *testing.T) {
	err := New(ErrCodeInvalidPattern, "bad pattern").WithDetail("pattern", "[")
	if err.Details["pattern"] != "[" {
		t.Errorf("expected pattern detail, got %v", err.Details["pattern"])
	}
}

func TestError_WithComponentAndResource(t *testing.T) {
	err := New(ErrCodeComponentFailure, "boom").
		WithComponent("transform.filter").
		WithResource("app.log")
	if err.Component != "transform.filter" {
		t.Errorf("expected component, got %q", err.Component)
	}
	if err.Resource != "app.log" {
		t.Errorf("expected resource, got %q", err.Resource)
	}
}

func TestAsError(t *testing.T) {
	inner := NothingToRun("no sources")
	wrapped := fmt.Errorf("run failed: %w", inner)

	e, ok := AsError(wrapped)
	if !ok {
		t.Fatal("expected AsError to find *Error in chain")
	}
	if e.Code != ErrCodeNothingToRun {
		t.Errorf("expected NOTHING_TO_RUN, got %s", e.Code)
	}
}

func TestAsError_Plain(t *testing.T) {
	if _, ok := AsError(stderrors.New("plain")); ok {
		t.Error("expected AsError to fail on plain error")
	}
}

func TestIsCode(t *testing.T) {
	err := InvalidPattern("[", stderrors.New("unterminated"))
	if !IsCode(err, ErrCodeInvalidPattern) {
		t.Error("expected IsCode to match INVALID_PATTERN")
	}
	if IsCode(err, ErrCodeResourceAccess) {
		t.Error("expected IsCode to reject RESOURCE_ACCESS")
	}
	if IsCode(nil, ErrCodeInvalidPattern) {
		t.Error("expected IsCode to reject nil error")
	}
}

func TestGetCode_Wrapped(t *testing.T) {
	err := fmt.Errorf("outer: %w", Canceled(stderrors.New("ctx done")))
	if GetCode(err) != ErrCodeCanceled {
		t.Errorf("expected CANCELED, got %s", GetCode(err))
	}
}

func TestIsBuildTimeCode(t *testing.T) {
	if !IsBuildTimeCode(ErrCodeCompositionOrder) {
		t.Error("COMPOSITION_ORDER is a build-time fault")
	}
	if !IsBuildTimeCode(ErrCodeInvalidPattern) {
		t.Error("INVALID_PATTERN is a build-time fault")
	}
	if IsBuildTimeCode(ErrCodeComponentFailure) {
		t.Error("COMPONENT_FAILURE is a run-time fault")
	}
	if IsBuildTimeCode(ErrCodeNothingToRun) {
		t.Error("NOTHING_TO_RUN is a run-time fault")
	}
}
