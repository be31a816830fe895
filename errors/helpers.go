package errors

import (
	stderrors "errors"
)

// IsError checks if an error is an *Error.
func IsError(err error) bool {
	var e *Error
	return stderrors.As(err, &e)
}

// AsError extracts an *Error from an error chain.
func AsError(err error) (*Error, bool) {
	var e *Error
	if stderrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// GetCode returns the error code from an error chain, or empty if none.
func GetCode(err error) ErrorCode {
	if e, ok := AsError(err); ok {
		return e.Code
	}
	return ""
}

// IsCode checks whether any error in the chain carries the given code.
func IsCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}
