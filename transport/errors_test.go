package transport

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	apperrors "github.com/kbukum/billplz/errors"
)

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		status    int
		code      ErrorCode
		retryable bool
	}{
		{http.StatusUnauthorized, ErrCodeAuth, false},
		{http.StatusForbidden, ErrCodeAuth, false},
		{http.StatusNotFound, ErrCodeNotFound, false},
		{http.StatusTooManyRequests, ErrCodeRateLimit, true},
		{http.StatusUnprocessableEntity, ErrCodeValidation, false},
		{http.StatusInternalServerError, ErrCodeServer, true},
		{http.StatusServiceUnavailable, ErrCodeServer, true},
	}
	for _, tc := range tests {
		t.Run(fmt.Sprint(tc.status), func(t *testing.T) {
			err := ClassifyStatusCode(tc.status, []byte("body"))
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Code != tc.code {
				t.Errorf("expected code %s, got %s", tc.code, err.Code)
			}
			if err.Retryable != tc.retryable {
				t.Errorf("expected retryable=%v", tc.retryable)
			}
			if err.StatusCode != tc.status || string(err.Body) != "body" {
				t.Errorf("status or body not kept: %+v", err)
			}
		})
	}

	for _, status := range []int{200, 201, 204} {
		if err := ClassifyStatusCode(status, nil); err != nil {
			t.Errorf("expected nil for %d, got %v", status, err)
		}
	}
}

func TestError_Message(t *testing.T) {
	withStatus := ClassifyStatusCode(http.StatusNotFound, nil)
	if got := withStatus.Error(); got != "billplz/transport: not_found (HTTP 404): HTTP 404" {
		t.Errorf("unexpected message %q", got)
	}

	cause := errors.New("dial tcp: refused")
	conn := NewConnectionError(cause)
	if got := conn.Error(); got != "billplz/transport: connection: dial tcp: refused" {
		t.Errorf("unexpected message %q", got)
	}
	if !errors.Is(conn, cause) {
		t.Error("expected Unwrap to expose the cause")
	}
}

func TestError_AppError(t *testing.T) {
	tests := []struct {
		err  *Error
		code apperrors.ErrorCode
	}{
		{NewTimeoutError(errors.New("deadline")), apperrors.ErrCodeTimeout},
		{NewConnectionError(errors.New("refused")), apperrors.ErrCodeConnectionFailed},
		{ClassifyStatusCode(401, nil), apperrors.ErrCodeUnauthorized},
		{ClassifyStatusCode(404, nil), apperrors.ErrCodeNotFound},
		{ClassifyStatusCode(429, nil), apperrors.ErrCodeRateLimited},
		{ClassifyStatusCode(422, nil), apperrors.ErrCodeRejected},
		{ClassifyStatusCode(502, nil), apperrors.ErrCodeGatewayError},
		{NewCircuitOpenError("billplz", errors.New("open")), apperrors.ErrCodeCircuitOpen},
		{NewRequestError(errors.New("bad method")), apperrors.ErrCodeInvalidInput},
		{NewCanceledError(errors.New("context canceled")), apperrors.ErrCodeCanceled},
	}
	for _, tc := range tests {
		t.Run(tc.err.Code.String(), func(t *testing.T) {
			appErr := tc.err.AppError()
			if appErr.Code != tc.code {
				t.Errorf("expected %s, got %s", tc.code, appErr.Code)
			}
			var e *Error
			if !errors.As(appErr, &e) || e != tc.err {
				t.Error("expected AppError to wrap the transport error")
			}
		})
	}
}

func TestError_AppErrorRetryable(t *testing.T) {
	limiterTimeout := &Error{Code: ErrCodeTimeout, Message: "rate limiter: would exceed deadline"}
	if limiterTimeout.AppError().Retryable {
		t.Error("non-retryable timeout must stay non-retryable")
	}
	if !NewTimeoutError(errors.New("deadline")).AppError().Retryable {
		t.Error("retryable timeout must stay retryable")
	}
	if NewCanceledError(errors.New("canceled")).AppError().Retryable {
		t.Error("cancellation must not be retryable")
	}
	if !NewCircuitOpenError("billplz", errors.New("open")).AppError().Retryable {
		t.Error("open circuit is retryable by callers later")
	}
}

func TestError_AppErrorConnectionHost(t *testing.T) {
	e := NewConnectionError(errors.New(`Get "https://www.billplz.com/api": dial tcp: refused`))
	e.Host = "www.billplz.com"
	appErr := e.AppError()
	if appErr.Details["host"] != "www.billplz.com" {
		t.Errorf("expected host detail, got %v", appErr.Details["host"])
	}
	if appErr.Message != "Unable to connect to www.billplz.com." {
		t.Errorf("unexpected message %q", appErr.Message)
	}
}

func TestErrorHelpers(t *testing.T) {
	wrapped := fmt.Errorf("send: %w", ClassifyStatusCode(429, nil))
	if !IsRateLimit(wrapped) || !IsRetryable(wrapped) {
		t.Error("expected wrapped rate limit error to be detected")
	}
	if IsTimeout(wrapped) || IsAuth(wrapped) || IsServerError(wrapped) {
		t.Error("unexpected classification")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("plain errors are not retryable")
	}
	if ErrorCode(99).String() != "unknown" {
		t.Error("expected unknown for out-of-range code")
	}
}

func TestOutcome(t *testing.T) {
	if got := outcome(&Response{StatusCode: 200}, nil); got != "200" {
		t.Errorf("expected 200, got %s", got)
	}
	if got := outcome(nil, NewTimeoutError(errors.New("x"))); got != "timeout" {
		t.Errorf("expected timeout, got %s", got)
	}
	if got := outcome(nil, errors.New("x")); got != "error" {
		t.Errorf("expected error, got %s", got)
	}
}
