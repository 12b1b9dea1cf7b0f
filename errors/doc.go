// Package errors provides the structured error type used across the Billplz
// client: a machine-readable code, a human message, a retryable flag, the
// HTTP status the gateway answered with (if any) and optional details.
package errors
