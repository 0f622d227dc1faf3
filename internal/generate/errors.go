package generate

import "fmt"

// ErrorKind classifies service failures for the retry policy.
type ErrorKind int

const (
	// ErrTransient covers timeouts, 5xx, rate limiting, and connection
	// resets; retried with backoff until the attempt budget is exhausted.
	ErrTransient ErrorKind = iota

	// ErrFatal covers authentication and malformed-request failures;
	// never retried.
	ErrFatal
)

// String returns the string representation of ErrorKind
func (k ErrorKind) String() string {
	if k == ErrFatal {
		return "fatal"
	}
	return "transient"
}

// ServiceError is a classified failure of the generation service.
type ServiceError struct {
	Kind ErrorKind
	Err  error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("generation service (%s): %v", e.Kind, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewTransientError wraps err as a retryable service failure.
func NewTransientError(err error) *ServiceError {
	return &ServiceError{Kind: ErrTransient, Err: err}
}

// NewFatalError wraps err as a non-retryable service failure.
func NewFatalError(err error) *ServiceError {
	return &ServiceError{Kind: ErrFatal, Err: err}
}
