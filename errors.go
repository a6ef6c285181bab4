package threatconnect

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

// Kind classifies every error returned by this package.
type Kind int

const (
	KindUnknown Kind = iota
	KindSigning
	KindTransport
	KindAPI
	KindDecode
	KindConfig
	KindValidation
)

func (k Kind) String() string {
	switch k {
	case KindSigning:
		return "signing"
	case KindTransport:
		return "transport"
	case KindAPI:
		return "api"
	case KindDecode:
		return "decode"
	case KindConfig:
		return "config"
	case KindValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// Sentinel errors matched by APIError through errors.Is.
var (
	ErrUnauthorized = errors.New("threatconnect: unauthorized (401)")
	ErrForbidden    = errors.New("threatconnect: forbidden (403)")
	ErrNotFound     = errors.New("threatconnect: not found (404)")
	ErrRateLimited  = errors.New("threatconnect: rate limited (429)")
)

// APIError represents a non-2xx response. Body is the raw response text;
// it is not parsed since error payloads may be HTML or plain text.
type APIError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("threatconnect: %s %s returned %d: %s", e.Method, e.Path, e.StatusCode, snippet(e.Body))
}

// Is lets callers write errors.Is(err, ErrUnauthorized).
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.StatusCode == http.StatusUnauthorized
	case ErrForbidden:
		return e.StatusCode == http.StatusForbidden
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// SigningError indicates the secret key or method could not be used to sign.
// It is not retryable.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("threatconnect signing: %v", e.Err)
}

func (e *SigningError) Unwrap() error { return e.Err }

// TransportError wraps a network-level failure: DNS, TLS, connection reset,
// timeout or cancellation. Cancellation is visible through errors.Is with
// context.Canceled or context.DeadlineExceeded.
type TransportError struct {
	Method  string
	URL     string
	Err     error
	timeout bool
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("threatconnect: %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout reports whether the failure was a timeout.
func (e *TransportError) Timeout() bool { return e.timeout }

// DecodeError indicates a 2xx body that did not match the expected type.
// Body holds the raw response.
type DecodeError struct {
	Body string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("threatconnect: decoding response: %v (body: %s)", e.Err, snippet(e.Body))
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ConfigError indicates an incomplete Identity or an unusable base URL.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("threatconnect config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ValidationError indicates invalid input parameters.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("threatconnect validation: %s: %s", e.Field, e.Message)
}

// KindOf returns the Kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	var (
		apiErr       *APIError
		signErr      *SigningError
		transportErr *TransportError
		decodeErr    *DecodeError
		configErr    *ConfigError
		validErr     *ValidationError
	)
	switch {
	case errors.As(err, &apiErr):
		return KindAPI
	case errors.As(err, &signErr):
		return KindSigning
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.As(err, &decodeErr):
		return KindDecode
	case errors.As(err, &configErr):
		return KindConfig
	case errors.As(err, &validErr):
		return KindValidation
	}
	return KindUnknown
}

// IsRetryable returns true if the error is transient and a caller-level retry
// (with a fresh timestamp and signature) is reasonable. This package never
// retries on its own.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500 || apiErr.StatusCode == http.StatusTooManyRequests
	}
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Timeout()
	}
	return false
}

const maxSnippet = 512

func snippet(s string) string {
	if len(s) <= maxSnippet {
		return s
	}
	cut := maxSnippet
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
