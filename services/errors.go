package services

import "fmt"

// Code classifies a failed operation. Every code is recoverable at the
// request boundary: controllers translate them to HTTP statuses and the
// client decides whether to re-fetch and retry.
type Code string

const (
	CodeNotAuthenticated    Code = "not_authenticated"
	CodeNotAuthorized       Code = "not_authorized"
	CodeNotFound            Code = "not_found"
	CodeNotOpen             Code = "not_open"
	CodeConflict            Code = "conflict"
	CodeNotOwner            Code = "not_owner"
	CodeValidationFailed    Code = "validation_failed"
	CodeUpstreamUnavailable Code = "upstream_unavailable"
	CodeInternal            Code = "internal"
)

type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func Errf(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// AsError unwraps an *Error or wraps anything else as an internal failure,
// so controllers only ever see coded outcomes.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*Error); ok {
		return e
	}
	return &Error{Code: CodeInternal, Message: err.Error()}
}
