// Package transport carries requests built by the Billplz client to the
// gateway.
//
// Transport is the single capability the client depends on. Adapter is the
// default implementation on top of net/http with:
//   - Basic auth taken from the URI user-info (the API key)
//   - TLS settings for custom CAs and mutual TLS
//   - Rate limiting, a circuit breaker and exponential backoff retries
//   - An OpenTelemetry client span and request metrics per Send
//   - Typed errors classified from the response status
//
// Any other implementation (a recorder in tests, a queueing proxy, a
// different HTTP stack) can be injected with billplz.New.
package transport
