package harness

import (
	"errors"
	"fmt"

	"github.com/quarto-acronyms/fixture-runner/exitcodes"
	"github.com/quarto-acronyms/fixture-runner/types"
)

// RuntimeError represents an operational error that should lead to exit code 255.
// Examples include configuration errors, a missing golden file, a renderer
// that cannot be started.
type RuntimeError struct {
	Err error
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("runtime error: %v", e.Err)
}

// Unwrap implements the errors.Unwrap interface
func (e *RuntimeError) Unwrap() error {
	return e.Err
}

// NewRuntimeError creates a new RuntimeError
func NewRuntimeError(err error) *RuntimeError {
	return &RuntimeError{Err: err}
}

// IsRuntimeError checks if the error is or wraps a RuntimeError
func IsRuntimeError(err error) bool {
	var runtimeErr *RuntimeError
	return err != nil && errors.As(err, &runtimeErr)
}

// FailureError reports fixtures that did not match their golden files. It
// implements cli.ExitCoder, exiting with the number of failures.
type FailureError struct {
	Failed int
	Total  int
}

// NewFailureError creates a FailureError from a run summary
func NewFailureError(summary *types.RunSummary) *FailureError {
	return &FailureError{Failed: summary.Failed, Total: summary.Total()}
}

func (e *FailureError) Error() string {
	return fmt.Sprintf("%d of %d fixtures failed", e.Failed, e.Total)
}

// ExitCode implements cli.ExitCoder
func (e *FailureError) ExitCode() int {
	return exitcodes.FromFailures(e.Failed)
}
