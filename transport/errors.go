package transport

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	apperrors "github.com/kbukum/billplz/errors"
)

// ErrorCode classifies transport errors.
type ErrorCode int

const (
	// ErrCodeTimeout indicates a request or connection timeout.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection indicates a connection failure (refused, DNS, TLS).
	ErrCodeConnection
	// ErrCodeAuth indicates the gateway rejected the API key (401/403).
	ErrCodeAuth
	// ErrCodeNotFound indicates the resource was not found (404).
	ErrCodeNotFound
	// ErrCodeRateLimit indicates the gateway throttled the client (429).
	ErrCodeRateLimit
	// ErrCodeValidation indicates the gateway rejected the payload, or the
	// request could not be built (other 4xx).
	ErrCodeValidation
	// ErrCodeServer indicates a gateway-side error (5xx).
	ErrCodeServer
	// ErrCodeCircuitOpen indicates the circuit breaker refused the request.
	ErrCodeCircuitOpen
	// ErrCodeCanceled indicates the caller cancelled the request context.
	ErrCodeCanceled
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeAuth:
		return "auth"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeRateLimit:
		return "rate_limit"
	case ErrCodeValidation:
		return "validation"
	case ErrCodeServer:
		return "server"
	case ErrCodeCircuitOpen:
		return "circuit_open"
	case ErrCodeCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Error is a classified transport failure.
type Error struct {
	// StatusCode is the HTTP status code (0 for connection-level errors).
	StatusCode int
	// Code classifies the error.
	Code ErrorCode
	// Message describes the error.
	Message string
	// Retryable indicates whether the adapter may retry the request.
	Retryable bool
	// Host is the gateway host for connection-level errors.
	Host string
	// Body is the response body, if any.
	Body []byte
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("billplz/transport: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("billplz/transport: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// AppError converts e into the client-wide error type.
func (e *Error) AppError() *apperrors.AppError {
	var appErr *apperrors.AppError
	switch e.Code {
	case ErrCodeTimeout:
		appErr = apperrors.Timeout("send")
	case ErrCodeConnection:
		host := e.Host
		if host == "" {
			host = "the gateway"
		}
		appErr = apperrors.ConnectionFailed(host)
	case ErrCodeCanceled:
		appErr = apperrors.Canceled("send")
	case ErrCodeAuth:
		appErr = apperrors.Unauthorized(e.StatusCode)
	case ErrCodeNotFound:
		appErr = apperrors.NotFound("")
	case ErrCodeRateLimit:
		appErr = apperrors.RateLimited()
	case ErrCodeServer:
		appErr = apperrors.GatewayError(e.StatusCode)
	case ErrCodeCircuitOpen:
		appErr = apperrors.CircuitOpen(e.Message)
	default:
		if e.StatusCode > 0 {
			appErr = apperrors.Rejected(e.StatusCode)
		} else {
			appErr = apperrors.InvalidInput("request", e.Message)
		}
	}
	// An open circuit is refused now but may be retried by the caller later.
	if e.Code != ErrCodeCircuitOpen {
		appErr.Retryable = e.Retryable
	}
	return appErr.WithCause(e)
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Retryable: true, Err: err}
}

// NewConnectionError creates a connection error.
func NewConnectionError(err error) *Error {
	return &Error{Code: ErrCodeConnection, Message: err.Error(), Retryable: true, Err: err}
}

// NewCanceledError creates an error for a request whose context the caller cancelled.
func NewCanceledError(err error) *Error {
	return &Error{Code: ErrCodeCanceled, Message: err.Error(), Err: err}
}

// NewRequestError creates an error for a request that could not be built.
func NewRequestError(err error) *Error {
	return &Error{Code: ErrCodeValidation, Message: err.Error(), Err: err}
}

// NewCircuitOpenError creates an error for a request refused by the named breaker.
func NewCircuitOpenError(name string, err error) *Error {
	return &Error{Code: ErrCodeCircuitOpen, Message: name, Err: err}
}

// ClassifyStatusCode converts an HTTP status code into a typed error.
// Returns nil for 2xx status codes.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	e := &Error{
		StatusCode: statusCode,
		Message:    fmt.Sprintf("HTTP %d", statusCode),
		Body:       body,
	}
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		e.Code = ErrCodeAuth
	case statusCode == http.StatusNotFound:
		e.Code = ErrCodeNotFound
	case statusCode == http.StatusTooManyRequests:
		e.Code, e.Retryable = ErrCodeRateLimit, true
	case statusCode >= 400 && statusCode < 500:
		e.Code = ErrCodeValidation
	case statusCode >= 500:
		e.Code, e.Retryable = ErrCodeServer, true
	default:
		e.Code = ErrCodeServer
	}
	return e
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool { return hasCode(err, ErrCodeTimeout) }

// IsConnection checks if an error is a connection error.
func IsConnection(err error) bool { return hasCode(err, ErrCodeConnection) }

// IsAuth checks if an error is an authentication error.
func IsAuth(err error) bool { return hasCode(err, ErrCodeAuth) }

// IsNotFound checks if an error is a not-found error.
func IsNotFound(err error) bool { return hasCode(err, ErrCodeNotFound) }

// IsRateLimit checks if an error is a rate-limit error.
func IsRateLimit(err error) bool { return hasCode(err, ErrCodeRateLimit) }

// IsServerError checks if an error is a server error.
func IsServerError(err error) bool { return hasCode(err, ErrCodeServer) }

// IsCircuitOpen checks if the circuit breaker refused the request.
func IsCircuitOpen(err error) bool { return hasCode(err, ErrCodeCircuitOpen) }

// IsCanceled checks if the caller cancelled the request.
func IsCanceled(err error) bool { return hasCode(err, ErrCodeCanceled) }

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}

// outcome names the result of an attempt for metrics and spans.
func outcome(resp *Response, err error) string {
	if resp != nil {
		return strconv.Itoa(resp.StatusCode)
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code.String()
	}
	if err != nil {
		return "error"
	}
	return "ok"
}
