package workflow

import (
	"errors"
	"fmt"

	"github.com/kfreiman/pagesmith/internal/document"
)

var (
	// ErrNoValidPages means a range expression selected nothing
	ErrNoValidPages = errors.New("no valid pages found in the specified range(s)")
	// ErrNoOutputs means the operation produced no documents
	ErrNoOutputs = errors.New("no PDFs generated")
	// ErrOptimizeUnsupported means the backend cannot compress documents
	ErrOptimizeUnsupported = errors.New("document backend does not support optimization")
	// ErrImportUnsupported means the backend cannot build a PDF from images
	ErrImportUnsupported = errors.New("document backend does not support image import")
	// ErrRenderUnsupported means no page renderer is configured
	ErrRenderUnsupported = errors.New("page rendering is not configured")
)

// ValidationError represents input validation failure
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field != "" && e.Value != "" {
		return fmt.Sprintf("validation failed for %s '%s': %s", e.Field, e.Value, e.Reason)
	}
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// SecurityError represents a security violation
type SecurityError struct {
	Type    string // e.g., "path_traversal", "null_byte"
	Details string
}

func (e *SecurityError) Error() string {
	return fmt.Sprintf("security violation (%s): %s", e.Type, e.Details)
}

// FileNotFoundError represents a missing input file
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("file not found: %s", e.Path)
}

// RetryableError is returned once a retryable operation has exhausted its attempts
type RetryableError struct {
	Err      error
	Attempts int
}

func (e *RetryableError) Error() string {
	msg := fmt.Sprintf("retryable error after %d attempts", e.Attempts)
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// IsRetryable checks if an error is worth another attempt.
// Only errors that declare themselves retryable qualify.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var loadErr *document.LoadError
	if errors.As(err, &loadErr) {
		return false
	}

	var retryable interface{ IsRetryable() bool }
	if errors.As(err, &retryable) {
		return retryable.IsRetryable()
	}
	return false
}
