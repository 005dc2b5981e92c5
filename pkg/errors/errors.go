// Package errors defines the coded errors shared by the engine, the CLI and
// the HTTP API.
//
// Every failure a user can cause carries a [Code]. The CLI prints the
// message without the code and the server maps the code's [Kind] to an HTTP
// status, so both front ends report the same condition the same way.
//
//	err := errors.New(errors.ErrCodeInvalidControls, "history must be positive, got %d", h)
//	errors.Is(err, errors.ErrCodeInvalidControls) // true
//	errors.KindOf(err)                            // errors.KindInvalid
//
// A Code is itself an error value, so the standard library's errors.Is
// matches it anywhere in a chain as well.
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidControls Code = "INVALID_CONTROLS"
	ErrCodeInvalidColor    Code = "INVALID_COLOR"
	ErrCodeInvalidGame     Code = "INVALID_GAME"
	ErrCodeInvalidPreset   Code = "INVALID_PRESET"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"

	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"
	ErrCodeRenderNotFound Code = "RENDER_NOT_FOUND"

	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
	ErrCodeCanceled    Code = "CANCELED"
)

// Error makes a Code usable as an errors.Is target.
func (c Code) Error() string { return string(c) }

// Kind groups codes by who is at fault.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalid
	KindNotFound
	KindNetwork
	KindCanceled
	KindUnsupported
)

var kinds = map[Code]Kind{
	ErrCodeInvalidInput:    KindInvalid,
	ErrCodeInvalidControls: KindInvalid,
	ErrCodeInvalidColor:    KindInvalid,
	ErrCodeInvalidGame:     KindInvalid,
	ErrCodeInvalidPreset:   KindInvalid,
	ErrCodeInvalidFormat:   KindInvalid,
	ErrCodeInvalidConfig:   KindInvalid,
	ErrCodeNotFound:        KindNotFound,
	ErrCodeFileNotFound:    KindNotFound,
	ErrCodeRenderNotFound:  KindNotFound,
	ErrCodeNetwork:         KindNetwork,
	ErrCodeTimeout:         KindNetwork,
	ErrCodeCanceled:        KindCanceled,
	ErrCodeUnsupported:     KindUnsupported,
}

// Kind returns the group of c. Unknown codes are internal.
func (c Code) Kind() Kind { return kinds[c] }

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is e's code.
func (e *Error) Is(target error) bool {
	c, ok := target.(Code)
	return ok && c == e.Code
}

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// FromContext wraps a context error as CANCELED or TIMEOUT. Other errors,
// including nil, are returned unchanged.
func FromContext(err error, format string, args ...any) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(ErrCodeTimeout, err, format, args...)
	case errors.Is(err, context.Canceled):
		return Wrap(ErrCodeCanceled, err, format, args...)
	}
	return err
}

// Is reports whether any error in err's chain carries code.
func Is(err error, code Code) bool {
	return err != nil && errors.Is(err, code)
}

// GetCode returns the code of the outermost coded error in err's chain,
// or "" if there is none.
func GetCode(err error) Code {
	if e, ok := asError(err); ok {
		return e.Code
	}
	return ""
}

// KindOf returns the kind of err's code.
func KindOf(err error) Kind { return GetCode(err).Kind() }

// UserMessage returns the message of the outermost coded error without its
// code, or err.Error() for uncoded errors.
func UserMessage(err error) string {
	if e, ok := asError(err); ok {
		return e.Message
	}
	return err.Error()
}

func asError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}
