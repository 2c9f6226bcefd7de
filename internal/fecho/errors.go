package fecho

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Process exit statuses returned by ExitCode.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitInaccessible = 2
	ExitIO           = 3
)

// ErrInvalidConfig marks a run configuration that failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// AccessError records a single input file that could not be opened.
type AccessError struct {
	Path string
	Err  error
}

// Error renders the diagnostic line printed for each inaccessible input.
func (e *AccessError) Error() string {
	return fmt.Sprintf("%-20s | Error: %v", e.Path, e.Err)
}

func (e *AccessError) Unwrap() error {
	return e.Err
}

// InaccessibleInputsError is returned when preflight finds one or more
// input files that cannot be opened. It carries every failure, not just the first.
type InaccessibleInputsError struct {
	Failures *multierror.Error
}

func (e *InaccessibleInputsError) Error() string {
	return "process aborted, see above for details"
}

func (e *InaccessibleInputsError) Unwrap() error {
	return e.Failures.ErrorOrNil()
}

// Paths returns the failing paths in the order they were checked.
func (e *InaccessibleInputsError) Paths() []string {
	var paths []string
	for _, err := range e.Failures.WrappedErrors() {
		var accessErr *AccessError
		if errors.As(err, &accessErr) {
			paths = append(paths, accessErr.Path)
		}
	}
	return paths
}

// ExitCode implements exitCoder.
func (e *InaccessibleInputsError) ExitCode() int {
	return ExitInaccessible
}

// IOError represents a read or write failure on an already open source or sink.
type IOError struct {
	Source string
	Err    error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("IO error on %s: %v", e.Source, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ExitCode implements exitCoder.
func (e *IOError) ExitCode() int {
	return ExitIO
}

type exitCoder interface {
	ExitCode() int
}

// ExitCode maps an error returned by the engine (or the command layer) to a
// process exit status. Errors that carry no status of their own map to ExitFailure.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var coder exitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return ExitFailure
}

func invalidConfig(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
}
