// Package errors provides structured error types for tame.
//
// Every fatal failure of a scan or fix carries a machine-readable [Code] so
// the command surface can decide how to present it and which exit status to
// use, while the human-readable message names the offending file or pattern.
//
// # Error Codes
//
//   - NOT_FOUND: a required file (pnpm-workspace.yaml) or directory is missing
//   - PARSE_ERROR: malformed YAML/JSON, or a document with the wrong shape
//   - INVALID_PATTERN: a packages glob that does not compile
//   - READ_ERROR: a package.json that exists but cannot be read
//   - INVALID_CONFIG / INVALID_INPUT: bad tame.toml values or flags
//   - FINDINGS: strict check mode found non-compliant declarations
//
// # Usage
//
//	err := errors.Wrap(errors.ErrCodeNotFound, cause, "failed to read %s", path)
//	if errors.Is(err, errors.ErrCodeNotFound) {
//	    // no workspace here
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeInvalidInput   Code = "INVALID_INPUT"
	ErrCodeInvalidConfig  Code = "INVALID_CONFIG"
	ErrCodeInvalidPattern Code = "INVALID_PATTERN"

	// Workspace content errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeRead     Code = "READ_ERROR"
	ErrCodeParse    Code = "PARSE_ERROR"
	ErrCodeWrite    Code = "WRITE_ERROR"
	ErrCodeFindings Code = "FINDINGS"
	ErrCodeCanceled Code = "CANCELED"
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message followed by the cause, without the
// code prefix. For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// FindingsError is returned by strict check mode when the workspace still
// contains catalog dependencies pinned to literal versions.
type FindingsError struct {
	Count int // Number of non-compliant declarations
}

// Error implements the error interface.
func (e *FindingsError) Error() string {
	if e.Count == 1 {
		return "1 catalog dependency is not using a workspace reference"
	}
	return fmt.Sprintf("%d catalog dependencies are not using a workspace reference", e.Count)
}

// Code returns the error code for this error type.
func (e *FindingsError) Code() Code {
	return ErrCodeFindings
}
