// Package apitest provides a scripted stand-in for the resume REST API.
package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"resume-web/internal/apiclient"
)

// Call is one request received by the Backend.
type Call struct {
	Method string
	Path   string
	Query  string
	Body   []byte
	Header http.Header
}

// Key returns "METHOD /path".
func (c Call) Key() string {
	return c.Method + " " + c.Path
}

// Reply is a canned response.
type Reply struct {
	Status int
	Body   any
	Header map[string]string
}

// Backend records requests and answers from a route table keyed by
// "METHOD /path". Unknown routes answer 404.
type Backend struct {
	t      *testing.T
	srv    *httptest.Server
	mu     sync.Mutex
	routes map[string]func(Call) Reply
	calls  []Call
}

func New(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{t: t, routes: make(map[string]func(Call) Reply)}
	b.srv = httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(b.srv.Close)
	return b
}

// On answers key with a fixed reply.
func (b *Backend) On(key string, status int, body any) *Backend {
	return b.Handle(key, func(Call) Reply { return Reply{Status: status, Body: body} })
}

// Handle answers key with fn.
func (b *Backend) Handle(key string, fn func(Call) Reply) *Backend {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.routes[key] = fn
	return b
}

// Client returns an apiclient bound to the backend.
func (b *Backend) Client() *apiclient.Client {
	c, err := apiclient.New(apiclient.Config{BaseURL: b.srv.URL})
	if err != nil {
		b.t.Fatalf("apitest client: %v", err)
	}
	return c
}

// Session returns a fresh credentialed session.
func (b *Backend) Session(cookies ...*http.Cookie) *apiclient.Session {
	return b.Client().Session(cookies)
}

// URL is the backend origin.
func (b *Backend) URL() string {
	return b.srv.URL
}

// Calls returns the requests received so far.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// Keys returns the "METHOD /path" of each received request in order.
func (b *Backend) Keys() []string {
	calls := b.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.Key()
	}
	return out
}

// Reset forgets recorded calls.
func (b *Backend) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = nil
}

func (b *Backend) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	call := Call{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: body, Header: r.Header.Clone()}
	b.mu.Lock()
	b.calls = append(b.calls, call)
	fn, ok := b.routes[call.Key()]
	b.mu.Unlock()
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"not found"}`))
		return
	}
	reply := fn(call)
	for k, v := range reply.Header {
		w.Header().Set(k, v)
	}
	status := reply.Status
	if status == 0 {
		status = http.StatusOK
	}
	switch body := reply.Body.(type) {
	case nil:
		w.WriteHeader(status)
	case []byte:
		w.WriteHeader(status)
		_, _ = w.Write(body)
	case string:
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	default:
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

// JSON decodes a recorded request body.
func (c Call) JSON(t *testing.T) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(c.Body, &out); err != nil {
		t.Fatalf("decode %s body: %v", c.Key(), err)
	}
	return out
}
