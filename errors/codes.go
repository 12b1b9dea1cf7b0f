package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Request building errors
const (
	// ErrCodeInvalidInput indicates the caller supplied input the client cannot use.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeUnsupportedVersion indicates an API version the client has no resources for.
	ErrCodeUnsupportedVersion ErrorCode = "UNSUPPORTED_VERSION"
	// ErrCodeUnsupportedService indicates a resource name unknown to a supported version.
	ErrCodeUnsupportedService ErrorCode = "UNSUPPORTED_SERVICE"
)

// Gateway errors
const (
	// ErrCodeUnauthorized indicates the API key was rejected.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeNotFound indicates the requested gateway resource does not exist.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeRateLimited indicates the gateway throttled the client.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeRejected indicates the gateway refused the request payload (4xx).
	ErrCodeRejected ErrorCode = "REJECTED"
	// ErrCodeGatewayError indicates a server-side failure at the gateway (5xx).
	ErrCodeGatewayError ErrorCode = "GATEWAY_ERROR"
)

// Connectivity errors
const (
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeConnectionFailed indicates the gateway could not be reached.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeCircuitOpen indicates requests are short-circuited after repeated failures.
	ErrCodeCircuitOpen ErrorCode = "CIRCUIT_OPEN"
	// ErrCodeCanceled indicates the caller cancelled the request.
	ErrCodeCanceled ErrorCode = "CANCELED"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTimeout:          true,
	ErrCodeConnectionFailed: true,
	ErrCodeRateLimited:      true,
	ErrCodeGatewayError:     true,
	ErrCodeCircuitOpen:      true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
