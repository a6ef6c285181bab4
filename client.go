package threatconnect

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/tc-tui/threatconnect-go/internal/signing"
	"github.com/tc-tui/threatconnect-go/internal/transport"
)

// Client is a signed ThreatConnect v3 API client. It is immutable once built
// and safe for concurrent use; every call computes its own timestamp and
// signature.
type Client struct {
	identity Identity
	baseURL  string
	http     *transport.HTTPClient
	now      func() time.Time
	logger   hclog.Logger

	hc      *http.Client
	timeout time.Duration
}

// Option is a functional option for configuring Client.
type Option func(*Client)

// WithBaseURL overrides the scheme and host derived from the instance. The
// URL must not carry a path; "/api/v3" is always added by the client.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient injects the transport used for every request. The client
// is never modified; WithTimeout applies to a copy of it.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.hc = hc
	}
}

// WithTimeout sets a per-request timeout regardless of option order. Signing
// is unaffected: a slow request is never re-signed.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithClock replaces the time source used for request timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger. The secret key is never logged.
func WithLogger(logger hclog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient validates the identity and returns a ready client. It fails with
// a *ConfigError, before any request is attempted, if a field is missing or
// the base URL carries anything beyond scheme and host.
func NewClient(id Identity, opts ...Option) (*Client, error) {
	if err := id.Validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}

	c := &Client{
		identity: id,
		baseURL:  fmt.Sprintf("https://%s.threatconnect.com", id.Instance),
		now:      time.Now,
		logger:   hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if err := validateBaseURL(c.baseURL); err != nil {
		return nil, &ConfigError{Err: err}
	}

	c.http = transport.NewHTTPClient(c.baseURL, transport.WithClient(c.hc), transport.WithTimeout(c.timeout))
	c.hc = nil
	return c, nil
}

// validateBaseURL accepts scheme and host only, since every request path is
// appended to it verbatim and signed as "/api/v3...".
func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("base url: %w", err)
	}
	switch {
	case u.Scheme == "" || u.Host == "":
		return fmt.Errorf("base url %q: scheme and host are required", raw)
	case u.Path != "" && u.Path != "/":
		return fmt.Errorf("base url %q: path %q is not allowed", raw, u.Path)
	case u.RawQuery != "" || u.ForceQuery:
		return fmt.Errorf("base url %q: query is not allowed", raw)
	case u.Fragment != "":
		return fmt.Errorf("base url %q: fragment is not allowed", raw)
	case u.User != nil:
		return fmt.Errorf("base url %q: user info is not allowed", raw)
	}
	return nil
}

// AccessID returns the access id requests are signed for.
func (c *Client) AccessID() string {
	return c.identity.AccessID
}

// BaseURL returns the scheme and host requests are sent to.
func (c *Client) BaseURL() string {
	return c.http.BaseURL()
}

// Get performs one signed GET for endpoint (e.g. "/indicators") and decodes
// the JSON body into a T.
func Get[T any](ctx context.Context, c *Client, endpoint string, params Params) (T, error) {
	var result T
	if err := c.GetJSON(ctx, endpoint, params, &result); err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}

// GetJSON performs one signed GET for endpoint and unmarshals the body into
// out. Non-2xx responses return an *APIError without touching out.
func (c *Client) GetJSON(ctx context.Context, endpoint string, params Params, out any) error {
	if !strings.HasPrefix(endpoint, "/") {
		return &ValidationError{Field: "endpoint", Message: fmt.Sprintf("%q must begin with /", endpoint)}
	}

	pathAndQuery := signing.CanonicalPath(endpoint, params.Encode())
	timestamp := c.now().Unix()

	headers, err := signing.BuildHeaders(c.identity.credentials(), http.MethodGet, pathAndQuery, timestamp)
	if err != nil {
		return &SigningError{Err: err}
	}

	c.logger.Debug("sending request", "method", http.MethodGet, "url", c.http.BaseURL()+pathAndQuery, "timestamp", timestamp)

	resp, err := c.http.Get(ctx, pathAndQuery, headers)
	if err != nil {
		return c.wrapTransportError(pathAndQuery, err)
	}

	if !resp.Success() {
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Method:     resp.Method,
			Path:       resp.Path,
			Body:       string(resp.Body),
		}
		c.logger.Error("api error", "status", resp.StatusCode, "path", resp.Path, "body", snippet(apiErr.Body))
		return apiErr
	}

	if err := json.Unmarshal(resp.Body, out); err != nil {
		c.logger.Debug("response did not match expected shape", "path", resp.Path, "error", err)
		return &DecodeError{Body: string(resp.Body), Err: err}
	}
	return nil
}

func (c *Client) wrapTransportError(pathAndQuery string, err error) error {
	if errors.Is(err, transport.ErrRequestURIMismatch) {
		return &ValidationError{Field: "endpoint", Message: err.Error()}
	}
	if errors.Is(err, transport.ErrInvalidRequest) {
		return &ValidationError{Field: "request", Message: err.Error()}
	}
	var terr *transport.Error
	if errors.As(err, &terr) {
		c.logger.Debug("transport failure", "url", terr.URL, "error", terr.Err)
		return &TransportError{Method: http.MethodGet, URL: terr.URL, Err: terr.Err, timeout: terr.Timeout()}
	}
	return &TransportError{Method: http.MethodGet, URL: c.http.BaseURL() + pathAndQuery, Err: err}
}
