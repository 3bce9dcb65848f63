package response

import (
	"errors"
)

type Error struct {
	Code  int
	Err   error
	Cause error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Err.Error() + ": " + e.Cause.Error()
	}
	return e.Err.Error()
}

func (e *Error) Message() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

func NewError(code int, err string) error {
	return &Error{Code: code, Err: errors.New(err)}
}

// Wrap attaches cause to a response error created by NewError. The result
// still matches the original with errors.Is.
func Wrap(err error, cause error) error {
	var respErr *Error
	if !errors.As(err, &respErr) {
		return err
	}
	return &Error{Code: respErr.Code, Err: respErr.Err, Cause: cause}
}
