package billplz

import (
	"context"
	"net/url"
	"strings"

	apperrors "github.com/kbukum/billplz/errors"
	"github.com/kbukum/billplz/logger"
	"github.com/kbukum/billplz/payload"
	"github.com/kbukum/billplz/transport"
)

const (
	// ProductionEndpoint is the live Billplz API.
	ProductionEndpoint = "https://www.billplz.com/api"
	// SandboxEndpoint is the Billplz staging API.
	SandboxEndpoint = "https://billplz-staging.herokuapp.com/api"

	contentTypeJSON = "application/json"
)

// Client builds authenticated requests and dispatches them through a
// transport.
//
// Send is safe for concurrent use. UseSandbox and UseCustomEndpoint are
// meant for setup and must not race with Send.
type Client struct {
	transport transport.Transport
	apiKey    string
	endpoint  string
	log       *logger.Logger
}

// Option customizes a Client.
type Option func(*clientOptions)

type clientOptions struct {
	log      *logger.Logger
	endpoint string
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *clientOptions) { o.log = l }
}

// WithEndpoint sets the initial endpoint. Defaults to ProductionEndpoint.
func WithEndpoint(endpoint string) Option {
	return func(o *clientOptions) { o.endpoint = endpoint }
}

func resolveOptions(opts []Option) clientOptions {
	o := clientOptions{endpoint: ProductionEndpoint}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Nop()
	}
	return o
}

// New creates a Client sending through t with apiKey.
func New(t transport.Transport, apiKey string, opts ...Option) *Client {
	o := resolveOptions(opts)
	return &Client{
		transport: t,
		apiKey:    apiKey,
		endpoint:  o.endpoint,
		log:       o.log.WithComponent("billplz"),
	}
}

// Make creates a Client with the default transport.
func Make(apiKey string, opts ...Option) (*Client, error) {
	o := resolveOptions(opts)
	t, err := transport.New(transport.Config{}, transport.WithLogger(o.log))
	if err != nil {
		return nil, err
	}
	return New(t, apiKey, opts...), nil
}

// UseSandbox points the client at the staging API.
func (c *Client) UseSandbox() *Client {
	return c.UseCustomEndpoint(SandboxEndpoint)
}

// UseCustomEndpoint points the client at endpoint.
func (c *Client) UseCustomEndpoint(endpoint string) *Client {
	c.endpoint = endpoint
	return c
}

// Endpoint returns the current API endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Transport returns the transport the client dispatches through.
func (c *Client) Transport() transport.Transport {
	return c.transport
}

// Send dispatches a request to endpoint + "/" + path.
//
// The transport's response and error are returned as is. Errors raised
// before the transport is called are *errors.AppError with code
// INVALID_INPUT.
func (c *Client) Send(ctx context.Context, method, path string, headers map[string]string, data any) (*transport.Response, error) {
	uri, err := url.Parse(c.endpoint + "/" + path)
	if err != nil {
		return nil, apperrors.InvalidInput("url", err.Error()).WithCause(err)
	}
	uri.User = url.User(c.apiKey)

	headers = c.prepareRequestHeaders(headers)
	body, err := c.prepareRequestBody(data, headers)
	if err != nil {
		return nil, err
	}

	c.log.Debug("dispatching billplz request", logger.Fields(
		logger.FieldMethod, method,
		logger.FieldEndpoint, c.endpoint,
		logger.FieldPath, path,
	))
	return c.transport.Send(ctx, method, uri, headers, body)
}

// prepareRequestHeaders is the hook for headers added to every request.
// It currently adds none.
func (c *Client) prepareRequestHeaders(headers map[string]string) map[string]string {
	return headers
}

// prepareRequestBody encodes data for the Content-Type in headers.
func (c *Client) prepareRequestBody(data any, headers map[string]string) (string, error) {
	if isJSON(headers) {
		return payload.JSON(data)
	}
	return payload.Form(data)
}

func isJSON(headers map[string]string) bool {
	for k, v := range headers {
		if strings.EqualFold(k, "Content-Type") && v == contentTypeJSON {
			return true
		}
	}
	return false
}
