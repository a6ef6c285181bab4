package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

var (
	// ErrInvalidRequest is returned when no request can be built from the
	// base URL and path.
	ErrInvalidRequest = errors.New("transport: invalid request")
	// ErrRequestURIMismatch is returned when the request-URI that would be
	// sent on the wire differs from the signed path and query.
	ErrRequestURIMismatch = errors.New("transport: request-URI differs from signed path")
)

// Error reports a failure that happened before a complete response body was
// received: connection, TLS, DNS, timeout or cancellation.
type Error struct {
	Op  string
	URL string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transport: %s %s: %v", e.Op, e.URL, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Timeout reports whether the underlying failure was a timeout.
func (e *Error) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr) && netErr.Timeout()
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Method     string
	Path       string
	Header     http.Header
	Body       []byte
}

// Success reports whether the status is in the 2xx class.
func (r *Response) Success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// HTTPClient sends single, non-retried requests to one API host. It is safe
// for concurrent use; connection reuse is left to the wrapped *http.Client.
type HTTPClient struct {
	client  *http.Client
	baseURL string
	timeout time.Duration
}

// Option is a functional option for configuring HTTPClient.
type Option func(*HTTPClient)

// WithTimeout sets the request timeout. It is applied to a copy of the
// underlying *http.Client, so a client passed to WithClient is never
// modified. Zero keeps the client's own timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *HTTPClient) {
		c.timeout = d
	}
}

// WithClient replaces the underlying *http.Client. A nil client is ignored.
func WithClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.client = hc
		}
	}
}

// NewHTTPClient creates a new HTTPClient for the given scheme and host.
// No timeout is set by default.
func NewHTTPClient(baseURL string, opts ...Option) *HTTPClient {
	c := &HTTPClient{
		client:  &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		cp := *c.client
		cp.Timeout = c.timeout
		c.client = &cp
	}
	return c
}

// BaseURL returns the scheme and host requests are sent to.
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// Get performs one HTTP GET for pathAndQuery and reads the whole body.
// pathAndQuery is appended verbatim to the base URL.
func (c *HTTPClient) Get(ctx context.Context, pathAndQuery string, headers http.Header) (*Response, error) {
	req, err := c.newRequest(ctx, http.MethodGet, pathAndQuery, headers)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// do executes req exactly once. The body is read in full before returning so
// error payloads are preserved; a read cut short by cancellation surfaces as
// an *Error, never as a partial body.
func (c *HTTPClient) do(req *http.Request) (*Response, error) {
	url := req.URL.String()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &Error{Op: req.Method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctxErr := req.Context().Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %v", ctxErr, err)
		}
		return nil, &Error{Op: "read body", URL: url, Err: err}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Method:     req.Method,
		Path:       req.URL.Path,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// newRequest builds an *http.Request with the full URL and headers, and
// checks that the request line will carry pathAndQuery unchanged.
func (c *HTTPClient) newRequest(ctx context.Context, method, pathAndQuery string, headers http.Header) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+pathAndQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if got := req.URL.RequestURI(); got != pathAndQuery {
		return nil, fmt.Errorf("%w: signed %q, would send %q", ErrRequestURIMismatch, pathAndQuery, got)
	}

	for key, vals := range headers {
		for _, val := range vals {
			req.Header.Add(key, val)
		}
	}
	return req, nil
}
