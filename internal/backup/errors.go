// ABOUTME: Typed errors for the backup boundary.
// ABOUTME: FormatError for malformed documents, IoError for file handling.
package backup

import (
	"fmt"
)

// FormatError indicates a malformed snapshot document.
type FormatError struct {
	Reason string
}

func (e FormatError) Error() string {
	return fmt.Sprintf("invalid snapshot: %s", e.Reason)
}

// IoError indicates a filesystem failure while reading or writing a
// snapshot file.
type IoError struct {
	Op   string
	Path string
	Err  error
}

func (e IoError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e IoError) Unwrap() error {
	return e.Err
}
