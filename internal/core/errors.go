package core

import (
	"errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

// errAlreadyConsumed is returned when a streaming Body is materialized a
// second time; a stream can only be read once.
var errAlreadyConsumed = errors.New("core: body already consumed")

// ProtocolErrorKind discriminates the ways a request can fail before a
// response is produced at all.
type ProtocolErrorKind uint8

const (
	// ConnectionErr covers dial/TLS/DNS failures.
	ConnectionErr ProtocolErrorKind = iota
	// IoErr covers failures reading or writing request/response bodies.
	IoErr
	// DecodeErr covers failures materializing a body by content type.
	DecodeErr
	// TooManyRedirects is raised by Follow once its hop bound is exceeded.
	TooManyRedirects
	// TooManyRetries is raised by Retry once its attempt bound is exhausted.
	TooManyRetries
)

func (k ProtocolErrorKind) String() string {
	switch k {
	case ConnectionErr:
		return "connection"
	case IoErr:
		return "io"
	case DecodeErr:
		return "decode"
	case TooManyRedirects:
		return "too_many_redirects"
	case TooManyRetries:
		return "too_many_retries"
	default:
		return "unknown"
	}
}

// ProtocolError represents a failure to produce a response at all: a
// transport, IO, or decode failure, or a pipeline-enforced bound
// (redirects, retries) being exceeded. It never carries a response - by the
// time there is one, the failure belongs to HTTPError instead.
type ProtocolError struct {
	Kind ProtocolErrorKind
	Op   string
	URL  string
	Err  error
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("protocol error [%s] %s %s: %v", e.Kind, e.Op, e.URL, e.Err)
	}
	return fmt.Sprintf("protocol error [%s] %s: %v", e.Kind, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProtocolError) Unwrap() error { return e.Err }

// Is reports whether target matches this error's kind.
func (e *ProtocolError) Is(target error) bool {
	t, ok := target.(*ProtocolError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// NewConnectionError builds a ProtocolError of kind ConnectionErr.
func NewConnectionError(op, url string, err error) *ProtocolError {
	return &ProtocolError{Kind: ConnectionErr, Op: op, URL: url, Err: err}
}

// NewIoError builds a ProtocolError of kind IoErr.
func NewIoError(op, url string, err error) *ProtocolError {
	return &ProtocolError{Kind: IoErr, Op: op, URL: url, Err: err}
}

// NewDecodeError builds a ProtocolError of kind DecodeErr.
func NewDecodeError(op, url string, err error) *ProtocolError {
	return &ProtocolError{Kind: DecodeErr, Op: op, URL: url, Err: err}
}

// NewTooManyRedirectsError builds a ProtocolError of kind TooManyRedirects.
func NewTooManyRedirectsError(url string, limit int) *ProtocolError {
	return &ProtocolError{
		Kind: TooManyRedirects,
		Op:   "follow",
		URL:  url,
		Err:  fmt.Errorf("exceeded %d redirects", limit),
	}
}

// NewTooManyRetriesError builds a ProtocolError of kind TooManyRetries.
func NewTooManyRetriesError(url string, attempts int, lastErr error) *ProtocolError {
	return &ProtocolError{
		Kind: TooManyRetries,
		Op:   "retry",
		URL:  url,
		Err:  fmt.Errorf("exhausted %d attempts: %w", attempts, lastErr),
	}
}

// HTTPError represents a response the transport successfully produced but
// whose status indicates failure. It always carries the in-memory response
// so a caller can inspect status, headers, and body.
type HTTPError struct {
	StatusCode int
	Status     string
	Response   InMemoryResponse
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error: %d %s", e.StatusCode, e.Status)
}

// Is reports whether target matches this error's status code.
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode || t.StatusCode == 0
}

// NewHTTPError builds an HTTPError from a response, promoting its body to
// Text if it is a Bytes body that happens to be valid UTF-8, so the error
// message and any logging can show readable text rather than a byte dump.
func NewHTTPError(resp InMemoryResponse) *HTTPError {
	if resp.Body.kind == bodyBytes && utf8.Valid(resp.Body.bytes) {
		resp.Body = TextBody(string(resp.Body.bytes))
	}
	return &HTTPError{
		StatusCode: resp.StatusCode,
		Status:     http.StatusText(resp.StatusCode),
		Response:   resp,
	}
}

// IsProtocolError reports whether err is a ProtocolError, optionally of a
// specific kind when kinds is non-empty.
func IsProtocolError(err error, kinds ...ProtocolErrorKind) bool {
	var pe *ProtocolError
	if !errors.As(err, &pe) {
		return false
	}
	if len(kinds) == 0 {
		return true
	}
	for _, k := range kinds {
		if pe.Kind == k {
			return true
		}
	}
	return false
}

// IsHTTPError reports whether err is an HTTPError.
func IsHTTPError(err error) bool {
	var he *HTTPError
	return errors.As(err, &he)
}
