package errors

import (
	"unicode"
)

// ValidatePath checks a user-supplied filesystem path. Relative and absolute
// paths are both accepted; empty paths and control characters are not.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path %q contains invalid characters", path)
		}
	}

	return nil
}
