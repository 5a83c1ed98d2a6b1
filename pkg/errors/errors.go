package errors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// ErrorType classifies an error and selects the HTTP status it is served with
type ErrorType string

const (
	// Caller errors
	ErrorTypeValidation ErrorType = "VALIDATION"
	ErrorTypeNotFound   ErrorType = "NOT_FOUND"

	// Service errors
	ErrorTypeInternal    ErrorType = "INTERNAL"
	ErrorTypeTimeout     ErrorType = "TIMEOUT"
	ErrorTypeUnavailable ErrorType = "UNAVAILABLE"

	// Catalog load errors
	ErrorTypeCatalog ErrorType = "CATALOG"
)

var statusByType = map[ErrorType]int{
	ErrorTypeValidation:  http.StatusBadRequest,
	ErrorTypeNotFound:    http.StatusNotFound,
	ErrorTypeInternal:    http.StatusInternalServerError,
	ErrorTypeTimeout:     http.StatusGatewayTimeout,
	ErrorTypeUnavailable: http.StatusServiceUnavailable,
	ErrorTypeCatalog:     http.StatusInternalServerError,
}

// Status returns the HTTP status for the type, 500 for unknown types
func (t ErrorType) Status() int {
	if status, ok := statusByType[t]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// typeForStatus picks the error type reported for a bare status code
func typeForStatus(status int) ErrorType {
	switch {
	case status == http.StatusNotFound:
		return ErrorTypeNotFound
	case status == http.StatusRequestTimeout || status == http.StatusGatewayTimeout:
		return ErrorTypeTimeout
	case status == http.StatusServiceUnavailable:
		return ErrorTypeUnavailable
	case status >= 400 && status < 500:
		return ErrorTypeValidation
	default:
		return ErrorTypeInternal
	}
}

// AppError is an error that knows how it should be reported to callers
type AppError struct {
	Type       ErrorType              `json:"type"`
	Message    string                 `json:"message"`
	Code       string                 `json:"code,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Cause      error                  `json:"-"`
	StackTrace string                 `json:"-"`
}

func newError(errType ErrorType, format string, args ...interface{}) *AppError {
	return &AppError{
		Type:       errType,
		Message:    fmt.Sprintf(format, args...),
		StackTrace: captureStackTrace(3),
	}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithCode adds a machine readable code
func (e *AppError) WithCode(code string) *AppError {
	e.Code = code
	return e
}

// WithDetails adds error details
func (e *AppError) WithDetails(details map[string]interface{}) *AppError {
	e.Details = details
	return e
}

// WithCause records the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Cause = err
	return e
}

// Problems returns the per-record problems of a catalog error
func (e *AppError) Problems() []string {
	problems, _ := e.Details["problems"].([]string)
	return problems
}

// captureStackTrace renders the caller's stack, skipping this function and
// the skip frames above it
func captureStackTrace(skip int) string {
	var pcs [32]uintptr
	n := runtime.Callers(skip+1, pcs[:])
	frames := runtime.CallersFrames(pcs[:n])

	var stack strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&stack, "%s:%d %s\n", frame.File, frame.Line, frame.Function)
		if !more {
			break
		}
	}
	return stack.String()
}

// NewValidationError reports input the caller must fix
func NewValidationError(message string) *AppError {
	return newError(ErrorTypeValidation, "%s", message)
}

// NewNotFoundError reports a missing resource, e.g. "ingredient not found"
func NewNotFoundError(resource string) *AppError {
	return newError(ErrorTypeNotFound, "%s not found", resource)
}

// NewInternalError reports a failure the caller cannot fix
func NewInternalError(message string) *AppError {
	return newError(ErrorTypeInternal, "%s", message)
}

// NewTimeoutError reports an operation that ran out of time
func NewTimeoutError(operation string) *AppError {
	return newError(ErrorTypeTimeout, "operation '%s' timed out", operation)
}

// NewUnavailableError reports a dependency that cannot serve requests
func NewUnavailableError(service string) *AppError {
	return newError(ErrorTypeUnavailable, "service '%s' is unavailable", service)
}

// NewCatalogError creates an error for a catalog that failed to load.
// Problems lists every rejected record so they can be fixed in one pass.
func NewCatalogError(source string, problems []string) *AppError {
	err := newError(ErrorTypeCatalog, "catalog %s is invalid: %d problem(s)", source, len(problems))
	err.Details = map[string]interface{}{"problems": problems}
	return err
}

// GetAppError extracts the first AppError from an error chain
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsType checks if an error chain holds an AppError of a specific type
func IsType(err error, errType ErrorType) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == errType
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return IsType(err, ErrorTypeNotFound)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return IsType(err, ErrorTypeValidation)
}

// IsCatalog checks if an error came from catalog loading
func IsCatalog(err error) bool {
	return IsType(err, ErrorTypeCatalog)
}

// Wrap prefixes err with context. An AppError keeps its type; anything else
// becomes an internal error caused by err.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}

	if appErr := GetAppError(err); appErr != nil {
		wrapped := *appErr
		wrapped.Message = message + ": " + appErr.Message
		return &wrapped
	}

	return NewInternalError(message).WithCause(err)
}
