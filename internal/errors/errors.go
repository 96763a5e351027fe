package errors

import (
	"errors"
	"fmt"
)

// Code categorizes an arena error
type Code string

const (
	// CodeUnknown indicates an error that carries no arena code
	CodeUnknown Code = "unknown"

	// CodeConfiguration indicates a corrupted setup, such as an unknown class
	// tag or an impossible roll range. These are fatal and never retried.
	CodeConfiguration Code = "configuration"

	// CodeValidation indicates caller input was rejected before anything was built
	CodeValidation Code = "validation"

	// CodeInvalidArgument indicates a contract violation by the caller
	CodeInvalidArgument Code = "invalid_argument"

	// CodeInternal indicates the engine hit a state it should never reach
	CodeInternal Code = "internal"
)

// Error represents an arena error with code and metadata
type Error struct {
	Code    Code
	Message string
	Cause   error
	Meta    map[string]any
}

// Error returns the error message
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// WithMeta adds metadata to the error (builder pattern)
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new error with formatted message
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps an error with additional context, keeping the code of an
// arena error found in the chain.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var arenaErr *Error
	if errors.As(err, &arenaErr) {
		return &Error{
			Code:    arenaErr.Code,
			Message: message,
			Cause:   err,
			Meta:    copyMeta(arenaErr.Meta),
		}
	}

	return &Error{
		Code:    CodeUnknown,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted message
func Wrapf(err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error and overrides its code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := Wrap(err, message)
	wrapped.Code = code
	return wrapped
}

// Configurationf creates a formatted configuration error
func Configurationf(format string, args ...any) *Error {
	return Newf(CodeConfiguration, format, args...)
}

// Validationf creates a formatted validation error
func Validationf(format string, args ...any) *Error {
	return Newf(CodeValidation, format, args...)
}

// InvalidArgumentf creates a formatted invalid argument error
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// Internalf creates a formatted internal error
func Internalf(format string, args ...any) *Error {
	return Newf(CodeInternal, format, args...)
}

// Is checks if the error is of a specific code
func Is(err error, code Code) bool {
	return GetCode(err) == code
}

// IsConfiguration checks if the error is a configuration error
func IsConfiguration(err error) bool {
	return Is(err, CodeConfiguration)
}

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool {
	return Is(err, CodeValidation)
}

// IsInvalidArgument checks if the error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return Is(err, CodeInvalidArgument)
}

// IsInternal checks if the error is an internal error
func IsInternal(err error) bool {
	return Is(err, CodeInternal)
}

// IsFatal reports whether the error signals a broken invariant rather than
// bad caller input.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case CodeConfiguration, CodeInternal:
		return true
	default:
		return false
	}
}

// GetCode returns the error code
func GetCode(err error) Code {
	var arenaErr *Error
	if errors.As(err, &arenaErr) {
		return arenaErr.Code
	}
	return CodeUnknown
}

// GetMeta returns the error metadata
func GetMeta(err error) map[string]any {
	var arenaErr *Error
	if errors.As(err, &arenaErr) {
		return arenaErr.Meta
	}
	return nil
}

func copyMeta(meta map[string]any) map[string]any {
	if meta == nil {
		return nil
	}

	copied := make(map[string]any, len(meta))
	for k, v := range meta {
		copied[k] = v
	}
	return copied
}
