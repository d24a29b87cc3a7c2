// Package errors provides structured error types for jarinstall.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the pipeline and the CLI
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes are grouped by the collaborator that produced them:
//   - NO_ARCHIVES, INVALID_PATH: discovery failures
//   - ARCHIVE_UNREADABLE, MANIFEST_NOT_FOUND: archive inspection failures
//   - INSTALL_FAILED, STAGING_FAILED: side-effect failures
//   - UNRESOLVED: the run finished with archives or sources left over
//
// # Usage
//
//	err := errors.New(errors.ErrCodeNoArchives, "no archives found in %v", roots)
//	if errors.Is(err, errors.ErrCodeNoArchives) {
//	    // abort before any strategy runs
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeArchiveUnreadable, origErr, "open %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Discovery errors
	ErrCodeNoArchives  Code = "NO_ARCHIVES"
	ErrCodeInvalidPath Code = "INVALID_PATH"

	// Archive inspection errors
	ErrCodeArchiveUnreadable Code = "ARCHIVE_UNREADABLE"
	ErrCodeManifestNotFound  Code = "MANIFEST_NOT_FOUND"

	// Side-effect errors
	ErrCodeInstallFailed Code = "INSTALL_FAILED"
	ErrCodeStagingFailed Code = "STAGING_FAILED"

	// Configuration errors
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Outcome errors
	ErrCodeUnresolved Code = "UNRESOLVED"
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
	var u *UnresolvedError
	if errors.As(err, &u) {
		return code == ErrCodeUnresolved
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
	var u *UnresolvedError
	if errors.As(err, &u) {
		return ErrCodeUnresolved
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message and cause without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}

// UnresolvedError reports a run that finished with items left over.
type UnresolvedError struct {
	Archives int // archives still pending after the last strategy
	Sources  int // unique loose sources with no src directory
}

// Error implements the error interface.
func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("%d archive(s) and %d source file(s) could not be resolved", e.Archives, e.Sources)
}

// Count returns the total number of unresolved items.
func (e *UnresolvedError) Count() int {
	return e.Archives + e.Sources
}

// ExitStatus maps the unresolved count to a process exit status.
// Counts above 125 are capped so they never collide with shell-reserved codes.
func (e *UnresolvedError) ExitStatus() int {
	if n := e.Count(); n < 125 {
		return n
	}
	return 125
}
