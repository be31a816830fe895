package errors

import (
	"fmt"
)

// Error is the unified pipeline error type.
type Error struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Component identifies the pipeline component that raised the error.
	Component string `json:"component,omitempty"`
	// Resource identifies the originating resource, where known.
	Resource string `json:"resource,omitempty"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Resource != "" {
		msg = fmt.Sprintf("%s (resource: %s)", msg, e.Resource)
	}
	if e.Cause != nil {
		msg = fmt.Sprintf("%s (cause: %v)", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying cause of the error.
func (e *Error) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithComponent sets the originating component and returns the receiver.
func (e *Error) WithComponent(component string) *Error {
	e.Component = component
	return e
}

// WithResource sets the originating resource and returns the receiver.
func (e *Error) WithResource(resource string) *Error {
	e.Resource = resource
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// --- Common Error Constructors ---

// CompositionOrder creates an Error for an append that violates stage ordering.
func CompositionOrder(phase, component string) *Error {
	return &Error{
		Code: ErrCodeCompositionOrder, Message: fmt.Sprintf("cannot append %s while %s", component, phase),
		Component: component,
		Details:   map[string]any{"phase": phase},
	}
}

// UnsupportedComponent creates an Error for a value that is not a source,
// transform, or sink.
func UnsupportedComponent(value any) *Error {
	return &Error{
		Code: ErrCodeCompositionOrder, Message: fmt.Sprintf("unsupported pipeline component %T", value),
	}
}

// NothingToRun creates an Error for a chain executed without sources or sinks.
func NothingToRun(reason string) *Error {
	return &Error{Code: ErrCodeNothingToRun, Message: fmt.Sprintf("nothing to run: %s", reason)}
}

// ResourceAccess creates an Error for a source that cannot open its target.
func ResourceAccess(resource string, cause error) *Error {
	return &Error{
		Code: ErrCodeResourceAccess, Message: fmt.Sprintf("cannot access %s", resource),
		Resource: resource, Cause: cause,
	}
}

// NotOpen creates an Error for a scoped resource streamed outside its open scope.
func NotOpen(resource string) *Error {
	return &Error{
		Code: ErrCodeResourceScope, Message: "file is not open",
		Resource: resource,
	}
}

// InvalidItem creates an Error for a stream item with invalid metadata.
func InvalidItem(reason string) *Error {
	return &Error{Code: ErrCodeInvalidItem, Message: reason}
}

// InvalidPattern creates an Error for a glob or regex pattern that failed to compile.
func InvalidPattern(pattern string, cause error) *Error {
	return &Error{
		Code: ErrCodeInvalidPattern, Message: fmt.Sprintf("invalid pattern %q", pattern),
		Details: map[string]any{"pattern": pattern}, Cause: cause,
	}
}

// InvalidDefinition creates an Error for a malformed pipeline definition.
func InvalidDefinition(reason string) *Error {
	return &Error{Code: ErrCodeInvalidDefinition, Message: reason}
}

// ComponentFailure creates an Error for a transform or sink that failed on an item.
func ComponentFailure(component, resource string, cause error) *Error {
	return &Error{
		Code: ErrCodeComponentFailure, Message: fmt.Sprintf("%s failed", component),
		Component: component, Resource: resource, Cause: cause,
	}
}

// Canceled creates an Error for a run aborted by context cancellation.
func Canceled(cause error) *Error {
	return &Error{Code: ErrCodeCanceled, Message: "run canceled", Cause: cause}
}
