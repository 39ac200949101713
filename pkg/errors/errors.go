package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrCanceled      ErrorCode = "CANCELED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Pattern errors
	ErrInvalidPattern ErrorCode = "INVALID_PATTERN"

	// Handler errors
	ErrHandlerNotFound ErrorCode = "HANDLER_NOT_FOUND"
	ErrHandlerOptions  ErrorCode = "HANDLER_OPTIONS"
	ErrHandlerExecute  ErrorCode = "HANDLER_EXECUTE"

	// Snippet errors
	ErrSnippetNotFound     ErrorCode = "SNIPPET_NOT_FOUND"
	ErrSnippetDuplicate    ErrorCode = "SNIPPET_DUPLICATE"
	ErrSnippetMalformed    ErrorCode = "SNIPPET_MALFORMED"
	ErrSnippetUnterminated ErrorCode = "SNIPPET_UNTERMINATED"

	// Segment errors
	ErrSegmentUnterminated ErrorCode = "SEGMENT_UNTERMINATED"
	ErrSegmentParams       ErrorCode = "SEGMENT_PARAMS"
	ErrDirective           ErrorCode = "DIRECTIVE_INVALID"

	// FileSystem errors
	ErrFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrFileAccess   ErrorCode = "FILE_ACCESS"
	ErrFileWrite    ErrorCode = "FILE_WRITE"
	ErrDirRead      ErrorCode = "DIR_READ"
)

// SnipperError carries a stable code, a message and free-form details.
// Details with the keys "file" and "line" locate the error in a document.
type SnipperError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *SnipperError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *SnipperError) Unwrap() error {
	return e.Wrapped
}

// Is matches any SnipperError with the same code
func (e *SnipperError) Is(target error) bool {
	var t *SnipperError
	return errors.As(target, &t) && e.Code == t.Code
}

func newError(code ErrorCode, message string, wrapped error) *SnipperError {
	return &SnipperError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: wrapped,
	}
}

// New creates an error with the given code
func New(code ErrorCode, message string) *SnipperError {
	return newError(code, message, nil)
}

// Newf is New with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *SnipperError {
	return newError(code, fmt.Sprintf(format, args...), nil)
}

// Wrap returns nil when err is nil
func Wrap(err error, code ErrorCode, message string) *SnipperError {
	if err == nil {
		return nil
	}
	return newError(code, message, err)
}

// Wrapf is Wrap with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *SnipperError {
	if err == nil {
		return nil
	}
	return newError(code, fmt.Sprintf(format, args...), err)
}

func (e *SnipperError) WithDetail(key string, value interface{}) *SnipperError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// At records the document location an error refers to
func (e *SnipperError) At(file string, line int) *SnipperError {
	return e.WithDetail("file", file).WithDetail("line", line)
}

// chain calls fn for every SnipperError from the outermost inwards until
// fn returns false or a non-SnipperError is reached
func chain(err error, fn func(*SnipperError) bool) {
	for err != nil {
		var e *SnipperError
		if !errors.As(err, &e) || !fn(e) {
			return
		}
		err = e.Wrapped
	}
}

// Location returns the innermost location recorded with At
func Location(err error) (file string, line int, ok bool) {
	chain(err, func(e *SnipperError) bool {
		f, hasFile := e.Details["file"].(string)
		l, hasLine := e.Details["line"].(int)
		if hasFile && hasLine {
			file, line, ok = f, l, true
		}
		return true
	})
	return file, line, ok
}

// IsErrorCode reports whether any error in the chain has code, so a
// handler failure wrapping a snippet error matches both codes
func IsErrorCode(err error, code ErrorCode) bool {
	found := false
	chain(err, func(e *SnipperError) bool {
		found = e.Code == code
		return !found
	})
	return found
}

// GetErrorCode returns the outermost code, ErrUnknown for foreign errors
func GetErrorCode(err error) ErrorCode {
	var e *SnipperError
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the outermost details, nil for foreign errors
func GetErrorDetails(err error) map[string]interface{} {
	var e *SnipperError
	if errors.As(err, &e) {
		return e.Details
	}
	return nil
}
