package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

// Code classifies an error. Compare with errors.Is(err, SomeCode).
type Code string

func (c Code) Error() string { return string(c) }

// Generic codes shared across packages. Domain packages declare their own.
const (
	ErrNotFound        Code = "not found"
	ErrInvalidArgument Code = "invalid argument"
	ErrUnavailable     Code = "unavailable"
	ErrUnauthenticated Code = "unauthenticated"
)

// Error pairs a Code with the underlying cause, which keeps its pkg/errors stack.
type Error struct {
	Code Code
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err == nil {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(Code)
	if !ok {
		return false
	}
	return e.Code == t
}

func New(code Code, message string) error {
	return &Error{
		Code: code,
		Err:  errors.New(message),
	}
}

func Newf(code Code, format string, args ...any) error {
	return &Error{
		Code: code,
		Err:  errors.Errorf(format, args...),
	}
}

// PureNew builds an uncoded error without a stack, for package-level sentinels.
func PureNew(message string) error {
	return stderrors.New(message)
}

// Wrap returns nil for a nil err.
func Wrap(code Code, err error, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code: code,
		Err:  errors.Wrap(err, message),
	}
}

func Wrapf(code Code, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code: code,
		Err:  errors.Wrapf(err, format, args...),
	}
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As[T error](err error) (*T, bool) {
	var target T
	if errors.As(err, &target) {
		return &target, true
	}
	return nil, false
}

// CodeOf returns the outermost Code found in the chain.
func CodeOf(err error) (Code, bool) {
	if err == nil {
		return "", false
	}
	if c, ok := err.(Code); ok {
		return c, true
	}
	if e, ok := As[*Error](err); ok {
		return (*e).Code, true
	}
	return "", false
}
