package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/johnquangdev/meeting-insights/internal/domain/entities"
)

// ErrorCode is the wire kind reported in error responses
type ErrorCode string

const (
	ErrorCode_EMPTY_TRANSCRIPT           ErrorCode = "EmptyTranscript"
	ErrorCode_EMPTY_QUESTION             ErrorCode = "EmptyQuestion"
	ErrorCode_INPUT_TOO_LARGE            ErrorCode = "InputTooLarge"
	ErrorCode_INVALID_PAYLOAD            ErrorCode = "InvalidPayload"
	ErrorCode_UNPARSABLE_SENTIMENT       ErrorCode = "UnparsableSentiment"
	ErrorCode_MALFORMED_OUTPUT           ErrorCode = "MalformedOutput"
	ErrorCode_MODEL_OUTPUT_EMPTY         ErrorCode = "ModelOutputEmpty"
	ErrorCode_UPSTREAM_TIMEOUT           ErrorCode = "UpstreamTimeout"
	ErrorCode_UPSTREAM_UNAVAILABLE       ErrorCode = "UpstreamUnavailable"
	ErrorCode_EXTRACTION_PARTIAL_FAILURE ErrorCode = "ExtractionPartialFailure"
	ErrorCode_CAPABILITY_DISABLED        ErrorCode = "CapabilityDisabled"
	ErrorCode_NOT_FOUND                  ErrorCode = "NotFound"
	ErrorCode_INTERNAL                   ErrorCode = "Internal"
)

func (c ErrorCode) String() string {
	return string(c)
}

// AppError là custom error type cho application
type AppError struct {
	Raw      error
	HTTPCode int
	Code     ErrorCode
	Message  string
	Details  map[string]string
}

// Error implements error interface
func (e AppError) Error() string {
	if e.Raw != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code.String(), e.Message, e.Raw)
	}
	return fmt.Sprintf("[%s] %s", e.Code.String(), e.Message)
}

// Unwrap exposes the underlying cause
func (e AppError) Unwrap() error {
	return e.Raw
}

// WithDetail adds a detail to the error
func (e AppError) WithDetail(key, value string) AppError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// General Errors
func ErrInternal(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusInternalServerError,
		Code:     ErrorCode_INTERNAL,
		Message:  "Internal server error",
	}
}

func ErrInvalidPayload(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_INVALID_PAYLOAD,
		Message:  "Request body is not valid JSON",
	}
}

func ErrNotFound(method, path string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_NOT_FOUND,
		Message:  fmt.Sprintf("No route for %s %s", method, path),
	}
}

func ErrRequestTooLarge(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusRequestEntityTooLarge,
		Code:     ErrorCode_INPUT_TOO_LARGE,
		Message:  "Request body exceeds the server limit",
	}
}

func ErrCapabilityDisabled(capability string) AppError {
	return AppError{
		HTTPCode: http.StatusNotFound,
		Code:     ErrorCode_CAPABILITY_DISABLED,
		Message:  fmt.Sprintf("The %s capability is not enabled on this server", capability),
	}.WithDetail("capability", capability)
}

// Input Errors
func ErrEmptyTranscript() AppError {
	return AppError{
		Raw:      entities.ErrEmptyTranscript,
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_EMPTY_TRANSCRIPT,
		Message:  "Transcript must not be empty",
	}
}

func ErrEmptyQuestion() AppError {
	return AppError{
		Raw:      entities.ErrEmptyQuestion,
		HTTPCode: http.StatusBadRequest,
		Code:     ErrorCode_EMPTY_QUESTION,
		Message:  "Question must not be empty",
	}
}

func ErrInputTooLarge(err *entities.InputTooLargeError) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusRequestEntityTooLarge,
		Code:     ErrorCode_INPUT_TOO_LARGE,
		Message:  fmt.Sprintf("Transcript is too large: the %s prompt is %d characters, the limit is %d", err.Task, err.Size, err.Limit),
	}.WithDetail("limit", fmt.Sprintf("%d", err.Limit))
}

// Model Output Errors
func ErrUnparsableSentiment(err error) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_UNPARSABLE_SENTIMENT,
		Message:  "Model returned a sentiment that is not Positive, Negative, or Neutral",
	}
}

func ErrMalformedOutput(err *entities.MalformedOutputError) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_MALFORMED_OUTPUT,
		Message:  fmt.Sprintf("Model output for %s was not in the expected format", err.Task),
	}
}

func ErrModelOutputEmpty(err *entities.ModelOutputEmptyError) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusBadGateway,
		Code:     ErrorCode_MODEL_OUTPUT_EMPTY,
		Message:  fmt.Sprintf("Model returned no output for %s", err.Task),
	}
}

// Upstream Errors
func ErrUpstreamTimeout(err *entities.UpstreamTimeoutError) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusGatewayTimeout,
		Code:     ErrorCode_UPSTREAM_TIMEOUT,
		Message:  fmt.Sprintf("Model did not respond in time for %s", err.Task),
	}.WithDetail("attempts", fmt.Sprintf("%d", err.Attempts))
}

func ErrUpstreamUnavailable(err *entities.UpstreamUnavailableError) AppError {
	return AppError{
		Raw:      err,
		HTTPCode: http.StatusServiceUnavailable,
		Code:     ErrorCode_UPSTREAM_UNAVAILABLE,
		Message:  "AI service temporarily unavailable",
	}
}

// ErrExtractionPartialFailure reports every failed insight sub-task. Its
// status is that of the most severe cause.
func ErrExtractionPartialFailure(err *entities.ExtractionPartialFailureError) AppError {
	status := http.StatusBadGateway
	worst := -1
	parts := make([]string, 0, len(err.Failures))
	tasks := make([]string, 0, len(err.Failures))
	for _, f := range err.Failures {
		cause := FromDomain(f.Err)
		if rank := severity(cause.Code); rank > worst {
			worst = rank
			status = cause.HTTPCode
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", f.Task, cause.Code))
		tasks = append(tasks, f.Task.String())
	}

	return AppError{
		Raw:      err,
		HTTPCode: status,
		Code:     ErrorCode_EXTRACTION_PARTIAL_FAILURE,
		Message:  "Insight extraction failed for " + strings.Join(parts, ", "),
	}.WithDetail("failed_tasks", strings.Join(tasks, ","))
}

// severity orders causes of a partial failure; the highest decides the status
func severity(code ErrorCode) int {
	switch code {
	case ErrorCode_INTERNAL:
		return 4
	case ErrorCode_UPSTREAM_UNAVAILABLE:
		return 3
	case ErrorCode_UPSTREAM_TIMEOUT:
		return 2
	case ErrorCode_UNPARSABLE_SENTIMENT, ErrorCode_MALFORMED_OUTPUT, ErrorCode_MODEL_OUTPUT_EMPTY:
		return 1
	default:
		return 0
	}
}

// FromDomain maps any error raised by the insight service onto an AppError
func FromDomain(err error) AppError {
	var appErr AppError
	if stdErrors.As(err, &appErr) {
		return appErr
	}

	// Checked first: its causes would otherwise match the cases below
	var partial *entities.ExtractionPartialFailureError
	if stdErrors.As(err, &partial) {
		return ErrExtractionPartialFailure(partial)
	}

	var (
		tooLarge    *entities.InputTooLargeError
		sentiment   *entities.UnparsableSentimentError
		malformed   *entities.MalformedOutputError
		empty       *entities.ModelOutputEmptyError
		timeout     *entities.UpstreamTimeoutError
		unavailable *entities.UpstreamUnavailableError
	)
	switch {
	case stdErrors.Is(err, entities.ErrEmptyTranscript):
		return ErrEmptyTranscript()
	case stdErrors.Is(err, entities.ErrEmptyQuestion):
		return ErrEmptyQuestion()
	case stdErrors.As(err, &tooLarge):
		return ErrInputTooLarge(tooLarge)
	case stdErrors.As(err, &sentiment):
		return ErrUnparsableSentiment(sentiment)
	case stdErrors.As(err, &malformed):
		return ErrMalformedOutput(malformed)
	case stdErrors.As(err, &empty):
		return ErrModelOutputEmpty(empty)
	case stdErrors.As(err, &timeout):
		return ErrUpstreamTimeout(timeout)
	case stdErrors.As(err, &unavailable):
		return ErrUpstreamUnavailable(unavailable)
	default:
		return ErrInternal(err)
	}
}
