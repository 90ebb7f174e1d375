package executor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrTaskPanic is wrapped by TaskError when an analysis task panicked.
	ErrTaskPanic = errors.New("task panicked")

	// ErrPoolClosed is wrapped by TaskError when a task is submitted after shutdown.
	ErrPoolClosed = errors.New("worker pool is shut down")

	// ErrNoInputFiles is attached to the empty-input diagnostic.
	ErrNoInputFiles = errors.New("no input files")
)

// TaskError represents a failure of the task infrastructure, as opposed to a
// file read failure which the analyzer reports itself.
type TaskError struct {
	TaskName  string    // File the task was analyzing
	Message   string    // Human-readable error message
	Err       error     // Underlying error (optional)
	Timestamp time.Time // When the error occurred
}

// NewTaskError creates a new TaskError with the current timestamp.
func NewTaskError(name, msg string, err error) *TaskError {
	return &TaskError{
		TaskName:  name,
		Message:   msg,
		Err:       err,
		Timestamp: time.Now(),
	}
}

// Error implements the error interface for TaskError.
func (e *TaskError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("task %s: %s", e.TaskName, e.Message))
	if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying error for error wrapping support.
func (e *TaskError) Unwrap() error {
	return e.Err
}

// TimeoutError reports a task that did not complete within the drain deadline.
type TimeoutError struct {
	TaskName        string        // File the task was analyzing
	TimeoutDuration time.Duration // Deadline that expired (0 when the caller's context ended)
	Timestamp       time.Time     // When the timeout occurred
	cause           error
}

// NewTimeoutError creates a new TimeoutError with the current timestamp.
// cause is the context error that ended the wait.
func NewTimeoutError(name string, duration time.Duration, cause error) *TimeoutError {
	if cause == nil {
		cause = context.DeadlineExceeded
	}
	return &TimeoutError{
		TaskName:        name,
		TimeoutDuration: duration,
		Timestamp:       time.Now(),
		cause:           cause,
	}
}

// Error implements the error interface for TimeoutError.
func (e *TimeoutError) Error() string {
	if e.TimeoutDuration > 0 {
		return fmt.Sprintf("task %s: no result after %v", e.TaskName, e.TimeoutDuration)
	}
	return fmt.Sprintf("task %s: wait abandoned: %v", e.TaskName, e.cause)
}

// Unwrap returns the context error that ended the wait.
func (e *TimeoutError) Unwrap() error {
	return e.cause
}

// IsTaskError checks if the error is or wraps a TaskError.
func IsTaskError(err error) bool {
	if err == nil {
		return false
	}
	var te *TaskError
	return errors.As(err, &te)
}

// IsTimeoutError checks if the error is or wraps a TimeoutError.
func IsTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	var te *TimeoutError
	return errors.As(err, &te)
}
