package transport

import (
	"context"
	"net/url"
)

// Transport sends one prepared request to the gateway.
//
// uri carries the API key as user-info. body is already encoded according to
// the Content-Type header and may be empty.
type Transport interface {
	Send(ctx context.Context, method string, uri *url.URL, headers map[string]string, body string) (*Response, error)
}

// Func adapts a plain function to the Transport interface.
type Func func(ctx context.Context, method string, uri *url.URL, headers map[string]string, body string) (*Response, error)

// Send calls f.
func (f Func) Send(ctx context.Context, method string, uri *url.URL, headers map[string]string, body string) (*Response, error) {
	return f(ctx, method, uri, headers, body)
}

// Response is the gateway reply as received, without any decoding.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int
	// Headers are the response headers (first value only).
	Headers map[string]string
	// Body is the complete response body.
	Body []byte
}

// IsSuccess returns true if the status code is 2xx.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsError returns true if the status code is 4xx or 5xx.
func (r *Response) IsError() bool {
	return r.StatusCode >= 400
}
