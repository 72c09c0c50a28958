// Package apiclient is the credentialed HTTP client used to talk to the
// resume analysis REST API.
package apiclient

import (
	"bytes"
	"context"
	"io"
	"mime"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"golang.org/x/net/publicsuffix"

	"resume-web/internal/shared/metrics"
	"resume-web/internal/shared/telemetry"
)

const defaultDownloadName = "professional-summary.txt"

// Config configures a Client.
type Config struct {
	BaseURL string
	// Timeout is a transport safety net only; call sites never rely on it.
	Timeout time.Duration
	// Transport overrides the HTTP transport, mainly for tests.
	Transport http.RoundTripper
}

// Client is bound to one backend origin. It is safe for concurrent use.
type Client struct {
	base *url.URL
	cfg  Config
}

// New validates cfg and returns a Client.
func New(cfg Config) (*Client, error) {
	raw := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if raw == "" {
		return nil, errors.New("apiclient: base URL is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errors.Wrap(err, "apiclient: parse base URL")
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.Errorf("apiclient: base URL %q must be absolute", raw)
	}
	return &Client{base: u, cfg: cfg}, nil
}

// BaseURL returns the configured origin.
func (c *Client) BaseURL() string { return c.base.String() }

// Session returns a credentialed view of the client seeded with the backend
// cookies the browser forwarded.
func (c *Client) Session(cookies []*http.Cookie) *Session {
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	root := c.root()
	seeded := make(map[string]string, len(cookies))
	seeds := make([]*http.Cookie, 0, len(cookies))
	for _, ck := range cookies {
		if ck == nil || ck.Name == "" {
			continue
		}
		seeded[ck.Name] = ck.Value
		seeds = append(seeds, &http.Cookie{Name: ck.Name, Value: ck.Value, Path: "/"})
	}
	jar.SetCookies(root, seeds)

	rc := resty.New().
		SetBaseURL(c.base.String()).
		SetCookieJar(jar).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	if c.cfg.Timeout > 0 {
		rc.SetTimeout(c.cfg.Timeout)
	}
	if c.cfg.Transport != nil {
		rc.SetTransport(c.cfg.Transport)
	}
	return &Session{client: c, rc: rc, jar: jar, seeded: seeded}
}

func (c *Client) root() *url.URL {
	u := *c.base
	u.Path = "/"
	u.RawQuery = ""
	return &u
}

// Session issues requests on behalf of one page session. A Session is used by
// one goroutine at a time.
type Session struct {
	client *Client
	rc     *resty.Client
	jar    http.CookieJar
	seeded map[string]string
}

// Option customises a single request.
type Option func(*resty.Request)

// WithQuery sets URL-encoded query parameters.
func WithQuery(q url.Values) Option {
	return func(r *resty.Request) {
		if len(q) > 0 {
			r.SetQueryParamsFromValues(q)
		}
	}
}

// WithPathParam fills a {name} placeholder in the request path. The value is escaped.
func WithPathParam(name, value string) Option {
	return func(r *resty.Request) {
		r.SetPathParam(name, value)
	}
}

// FilePart is a file attached to a multipart request.
type FilePart struct {
	Field       string
	FileName    string
	ContentType string
	Data        []byte
}

// Get fetches path.
func (s *Session) Get(ctx context.Context, path string, opts ...Option) (*Response, error) {
	return s.do(ctx, http.MethodGet, path, nil, opts)
}

// Post sends body as JSON. A nil body sends no payload.
func (s *Session) Post(ctx context.Context, path string, body any, opts ...Option) (*Response, error) {
	return s.do(ctx, http.MethodPost, path, body, opts)
}

// Put sends body as JSON.
func (s *Session) Put(ctx context.Context, path string, body any, opts ...Option) (*Response, error) {
	return s.do(ctx, http.MethodPut, path, body, opts)
}

// Delete removes the resource at path.
func (s *Session) Delete(ctx context.Context, path string, opts ...Option) (*Response, error) {
	return s.do(ctx, http.MethodDelete, path, nil, opts)
}

// PostMultipart sends form fields and one file as multipart/form-data.
func (s *Session) PostMultipart(ctx context.Context, path string, fields map[string]string, file FilePart, opts ...Option) (*Response, error) {
	req := s.rc.R()
	if len(fields) > 0 {
		req.SetMultipartFormData(fields)
	}
	ct := file.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	req.SetMultipartField(file.Field, file.FileName, ct, bytesReader(file.Data))
	return s.execute(ctx, http.MethodPost, path, req, opts)
}

// Attachment is a downloaded file.
type Attachment struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Download posts body as JSON and returns the response as a file attachment.
func (s *Session) Download(ctx context.Context, path string, body any, opts ...Option) (*Attachment, error) {
	resp, err := s.do(ctx, http.MethodPost, path, body, opts)
	if err != nil {
		return nil, err
	}
	name := defaultDownloadName
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		if _, params, perr := mime.ParseMediaType(cd); perr == nil && params["filename"] != "" {
			name = params["filename"]
		}
	}
	ct := resp.Header.Get("Content-Type")
	if ct == "" {
		ct = "text/plain; charset=utf-8"
	}
	return &Attachment{FileName: name, ContentType: ct, Data: resp.Body}, nil
}

func (s *Session) do(ctx context.Context, method, path string, body any, opts []Option) (*Response, error) {
	req := s.rc.R()
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	return s.execute(ctx, method, path, req, opts)
}

func (s *Session) execute(ctx context.Context, method, path string, req *resty.Request, opts []Option) (*Response, error) {
	for _, opt := range opts {
		opt(req)
	}
	start := time.Now()
	resp, err := req.SetContext(ctx).Execute(method, path)
	elapsed := time.Since(start)

	status := 0
	if resp != nil && resp.RawResponse != nil {
		status = resp.StatusCode()
	}
	metrics.ObserveAPICall(method, path, status, elapsed)
	fields := map[string]any{
		"method":      method,
		"path":        path,
		"status":      status,
		"duration_ms": float64(elapsed.Microseconds()) / 1000.0,
	}

	if err != nil {
		fields["err"] = err.Error()
		telemetry.Error("api.call", fields)
		return nil, &Error{Method: method, Path: path, Status: status, Err: err}
	}
	if status < 200 || status > 299 {
		apiErr := &Error{Method: method, Path: path, Status: status, Message: serverMessage(resp.Body())}
		fields["message"] = apiErr.Message
		telemetry.Error("api.call", fields)
		return nil, apiErr
	}
	telemetry.Info("api.call", fields)
	return &Response{Status: status, Header: resp.Header(), Body: resp.Body()}, nil
}

// Cookies returns the backend cookies currently held by the session.
func (s *Session) Cookies() []*http.Cookie {
	return s.jar.Cookies(s.client.root())
}

func bytesReader(b []byte) io.Reader {
	return bytes.NewReader(b)
}
