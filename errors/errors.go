package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the structured error returned by the client packages.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the gateway status code, 0 when no response was received.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError carrying code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// --- Request building ---

// InvalidInput creates a new AppError for input the client cannot use.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// UnsupportedService creates a new AppError for a resource a version does not provide.
func UnsupportedService(service, version string) *AppError {
	return &AppError{
		Code:    ErrCodeUnsupportedService,
		Message: fmt.Sprintf("Service %s is not available in API version %s", service, version),
		Details: map[string]any{"service": service, "version": version},
	}
}

// --- Gateway ---

// Unauthorized creates a new AppError for a rejected API key.
func Unauthorized(status int) *AppError {
	return &AppError{
		Code: ErrCodeUnauthorized, Message: "The gateway rejected the API key.",
		HTTPStatus: status,
	}
}

// NotFound creates a new AppError for a gateway resource that does not exist.
func NotFound(path string) *AppError {
	details := map[string]any{}
	if path != "" {
		details["path"] = path
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: "The requested resource was not found.",
		HTTPStatus: http.StatusNotFound, Details: details,
	}
}

// RateLimited creates a new AppError for a throttled request.
func RateLimited() *AppError {
	return &AppError{
		Code: ErrCodeRateLimited, Message: "Too many requests. Please wait a moment and try again.",
		HTTPStatus: http.StatusTooManyRequests, Retryable: true,
	}
}

// Rejected creates a new AppError for a 4xx the gateway returned for the payload.
func Rejected(status int) *AppError {
	return &AppError{
		Code: ErrCodeRejected, Message: fmt.Sprintf("The gateway rejected the request (HTTP %d).", status),
		HTTPStatus: status,
	}
}

// GatewayError creates a new AppError for a 5xx from the gateway.
func GatewayError(status int) *AppError {
	return &AppError{
		Code: ErrCodeGatewayError, Message: fmt.Sprintf("The gateway failed to process the request (HTTP %d).", status),
		HTTPStatus: status, Retryable: true,
	}
}

// --- Connectivity ---

// Timeout creates a new AppError for a request that timed out.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Message: "The request took too long. Please try again.",
		Retryable: true, Details: map[string]any{"operation": operation},
	}
}

// ConnectionFailed creates a new AppError for a gateway that could not be reached.
func ConnectionFailed(host string) *AppError {
	return &AppError{
		Code: ErrCodeConnectionFailed, Message: fmt.Sprintf("Unable to connect to %s.", host),
		Retryable: true, Details: map[string]any{"host": host},
	}
}

// Canceled creates a new AppError for a request the caller abandoned.
func Canceled(operation string) *AppError {
	return &AppError{
		Code: ErrCodeCanceled, Message: "The request was cancelled.",
		Details: map[string]any{"operation": operation},
	}
}

// CircuitOpen creates a new AppError for a short-circuited request.
func CircuitOpen(name string) *AppError {
	return &AppError{
		Code: ErrCodeCircuitOpen, Message: "Requests are paused after repeated gateway failures.",
		Retryable: true, Details: map[string]any{"breaker": name},
	}
}
