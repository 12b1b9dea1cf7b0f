package three

import (
	"context"
	"net/url"
	"strings"

	"github.com/kbukum/billplz/transport"
)

// Version is the API version served by this package.
const Version = "v3"

// Sender dispatches a request relative to the client endpoint.
// *billplz.Client implements it.
type Sender interface {
	Send(ctx context.Context, method, url string, headers map[string]string, data any) (*transport.Response, error)
}

// resource is the state shared by every v3 handle.
type resource struct {
	client     Sender
	collection string
}

// Client returns the sender the handle is bound to.
func (r *resource) Client() Sender { return r.client }

// Version returns "v3".
func (r *resource) Version() string { return Version }

// Path joins the resource collection path with escaped segments,
// e.g. Path("8X0Iyzaw") on a Bill is "v3/bills/8X0Iyzaw".
func (r *resource) Path(segments ...string) string {
	parts := make([]string, 0, len(segments)+2)
	parts = append(parts, Version, r.collection)
	for _, s := range segments {
		parts = append(parts, url.PathEscape(s))
	}
	return strings.Join(parts, "/")
}
