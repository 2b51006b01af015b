package orders

import "github.com/pkg/errors"

// Code is the machine-readable error code returned to the POS backend.
type Code string

const (
	CodeOrderCreationFailed Code = "ORDER_CREATION_FAILED"
	CodeStatusUpdateFailed  Code = "STATUS_UPDATE_FAILED"
	CodeOrderFetchFailed    Code = "ORDER_FETCH_FAILED"
	CodeCancellationFailed  Code = "CANCELLATION_FAILED"
)

// Error carries the failed operation's code and the underlying cause.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

func fail(code Code, err error) error { return &Error{Code: code, Err: err} }

func failf(code Code, format string, args ...any) error {
	return &Error{Code: code, Err: errors.Errorf(format, args...)}
}
