// Package transporttest provides a recording transport for tests of code
// that sends requests through the Billplz client.
package transporttest

import (
	"context"
	"net/http"
	"net/url"
	"sync"

	"github.com/kbukum/billplz/transport"
)

// Call is one recorded Send.
type Call struct {
	Method  string
	URI     *url.URL
	Headers map[string]string
	Body    string
}

type reply struct {
	resp *transport.Response
	err  error
}

// Recorder is a transport.Transport that records every call and replays
// queued replies in order. When the queue is empty it answers 200 with an
// empty body. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	calls   []Call
	replies []reply
}

var _ transport.Transport = (*Recorder)(nil)

// NewRecorder creates an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Send records the call and returns the next queued reply.
func (r *Recorder) Send(_ context.Context, method string, uri *url.URL, headers map[string]string, body string) (*transport.Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	call := Call{Method: method, Body: body, Headers: make(map[string]string, len(headers))}
	if uri != nil {
		u := *uri
		call.URI = &u
	}
	for k, v := range headers {
		call.Headers[k] = v
	}
	r.calls = append(r.calls, call)

	if len(r.replies) == 0 {
		return &transport.Response{StatusCode: http.StatusOK, Headers: map[string]string{}}, nil
	}
	next := r.replies[0]
	r.replies = r.replies[1:]
	return next.resp, next.err
}

// Respond queues a response with the given status and body.
func (r *Recorder) Respond(status int, body string) *Recorder {
	return r.Reply(&transport.Response{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       []byte(body),
	}, nil)
}

// Fail queues an error.
func (r *Recorder) Fail(err error) *Recorder {
	return r.Reply(nil, err)
}

// Reply queues an arbitrary response and error pair.
func (r *Recorder) Reply(resp *transport.Response, err error) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies = append(r.replies, reply{resp: resp, err: err})
	return r
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// LastCall returns the most recent call, or false if none was made.
func (r *Recorder) LastCall() (Call, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return Call{}, false
	}
	return r.calls[len(r.calls)-1], true
}

// Reset drops recorded calls and pending replies.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
	r.replies = nil
}
