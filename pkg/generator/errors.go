package generator

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrPathNotFound matches any *PathNotFoundError
	ErrPathNotFound = errors.New("path not found")
	// ErrOperationNotSupported matches any *OperationNotSupportedError
	ErrOperationNotSupported = errors.New("operation not supported")
	// ErrUnsupportedTarget matches any *UnsupportedTargetError
	ErrUnsupportedTarget = errors.New("unsupported target")
)

// PathNotFoundError is returned when no tree path matches the request URL.
// Segment is the first component that could not be matched and Position its
// zero-based index; Segment is empty when the URL is outside the service root.
type PathNotFoundError struct {
	URL      string
	Segment  string
	Position int
}

func (e *PathNotFoundError) Error() string {
	if e.Segment == "" {
		return fmt.Sprintf("path not found: %s is not under the service root", e.URL)
	}
	return fmt.Sprintf("path not found: no match for segment %q at position %d in %s", e.Segment, e.Position, e.URL)
}

func (e *PathNotFoundError) Is(target error) bool { return target == ErrPathNotFound }

// OperationNotSupportedError is returned when the resolved node declares no
// operation for the request method.
type OperationNotSupportedError struct {
	Method string
	Path   string
}

func (e *OperationNotSupportedError) Error() string {
	return fmt.Sprintf("operation not supported: %s %s", e.Method, e.Path)
}

func (e *OperationNotSupportedError) Is(target error) bool { return target == ErrOperationNotSupported }

// UnsupportedTargetError is returned when no generator is registered for a language
type UnsupportedTargetError struct {
	Target    string
	Available []string
}

func (e *UnsupportedTargetError) Error() string {
	return fmt.Sprintf("unsupported target language %q (available: %s)", e.Target, strings.Join(e.Available, ", "))
}

func (e *UnsupportedTargetError) Is(target error) bool { return target == ErrUnsupportedTarget }
