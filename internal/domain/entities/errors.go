package entities

import (
	"errors"
	"fmt"
	"strings"
)

// Input errors
var (
	ErrEmptyTranscript = errors.New("transcript is empty")
	ErrEmptyQuestion   = errors.New("question is empty")
	ErrUnknownTask     = errors.New("unknown extraction task")
)

// InputTooLargeError is returned when a prompt envelope exceeds the model input budget
type InputTooLargeError struct {
	Task  ExtractionTask
	Size  int
	Limit int
}

func (e *InputTooLargeError) Error() string {
	return fmt.Sprintf("%s prompt is %d characters, exceeds input budget of %d", e.Task, e.Size, e.Limit)
}

// UnparsableSentimentError is returned when the sentiment label is outside Positive/Negative/Neutral
type UnparsableSentimentError struct {
	Raw string
}

func (e *UnparsableSentimentError) Error() string {
	return fmt.Sprintf("sentiment label not recognised in model output %q", snippet(e.Raw))
}

// MalformedOutputError is returned when model output does not follow the shape its prompt asked for
type MalformedOutputError struct {
	Task   ExtractionTask
	Reason string
	Raw    string
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("%s output malformed: %s (output %q)", e.Task, e.Reason, snippet(e.Raw))
}

// ModelOutputEmptyError is returned when the model produced only whitespace
type ModelOutputEmptyError struct {
	Task ExtractionTask
}

func (e *ModelOutputEmptyError) Error() string {
	return fmt.Sprintf("model returned empty output for %s", e.Task)
}

// UpstreamTimeoutError is returned when every attempt against the model timed out
type UpstreamTimeoutError struct {
	Task     ExtractionTask
	Attempts int
	Err      error
}

func (e *UpstreamTimeoutError) Error() string {
	return fmt.Sprintf("model timed out for %s after %d attempt(s): %v", e.Task, e.Attempts, e.Err)
}

func (e *UpstreamTimeoutError) Unwrap() error { return e.Err }

// UpstreamUnavailableError is returned when the model backend cannot be reached or rejects the call
type UpstreamUnavailableError struct {
	Task ExtractionTask
	Err  error
}

func (e *UpstreamUnavailableError) Error() string {
	return fmt.Sprintf("model backend unavailable for %s: %v", e.Task, e.Err)
}

func (e *UpstreamUnavailableError) Unwrap() error { return e.Err }

// TaskFailure records why one insight sub-task failed
type TaskFailure struct {
	Task ExtractionTask
	Err  error
}

// ExtractionPartialFailureError reports every insight sub-task that failed.
// No bundle is returned alongside it.
type ExtractionPartialFailureError struct {
	Failures []TaskFailure
}

func (e *ExtractionPartialFailureError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Task, f.Err))
	}
	return fmt.Sprintf("insight extraction failed for %s", strings.Join(parts, "; "))
}

// Unwrap exposes the per-task causes to errors.Is and errors.As
func (e *ExtractionPartialFailureError) Unwrap() []error {
	errs := make([]error, 0, len(e.Failures))
	for _, f := range e.Failures {
		errs = append(errs, f.Err)
	}
	return errs
}

// FailedTasks returns the names of the failed sub-tasks in the order they were recorded
func (e *ExtractionPartialFailureError) FailedTasks() []ExtractionTask {
	tasks := make([]ExtractionTask, 0, len(e.Failures))
	for _, f := range e.Failures {
		tasks = append(tasks, f.Task)
	}
	return tasks
}

func snippet(s string) string {
	const max = 120
	r := []rune(strings.TrimSpace(s))
	if len(r) <= max {
		return string(r)
	}
	return string(r[:max]) + "..."
}
