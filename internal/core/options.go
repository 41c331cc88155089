package core

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/url"
	"time"
)

// BasicAuth holds basic authentication credentials.
type BasicAuth struct {
	Username string
	Password string
}

// RequestOption configures a RequestConfig; the functional-options pattern
// lets RequestBuilder.Build and the package-level Get/Post/... helpers share
// one configuration surface.
type RequestOption func(*RequestConfig)

// RequestConfig accumulates everything a RequestOption can set before the
// builder turns it into an InMemoryRequest.
type RequestConfig struct {
	Timeout     time.Duration
	Headers     http.Header
	Query       url.Values
	BasicAuth   *BasicAuth
	BearerToken string
	Retry       *RetryPolicy
	Context     context.Context
}

// NewRequestConfig returns an empty, ready-to-use config.
func NewRequestConfig() *RequestConfig {
	return &RequestConfig{Headers: make(http.Header, 4), Query: make(url.Values, 4)}
}

// Apply runs every non-nil option against c in order.
func (c *RequestConfig) Apply(opts ...RequestOption) {
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
}

// ApplyToHeaders writes the config's auth and header settings into headers.
func (c *RequestConfig) ApplyToHeaders(headers http.Header) {
	for k, v := range c.Headers {
		for _, val := range v {
			headers.Add(k, val)
		}
	}
	if c.BasicAuth != nil {
		auth := c.BasicAuth.Username + ":" + c.BasicAuth.Password
		headers.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(auth)))
	}
	if c.BearerToken != "" {
		headers.Set("Authorization", "Bearer "+c.BearerToken)
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) RequestOption {
	return func(c *RequestConfig) { c.Timeout = d }
}

// WithHeader sets a single header.
func WithHeader(key, value string) RequestOption {
	return func(c *RequestConfig) {
		if c.Headers == nil {
			c.Headers = make(http.Header)
		}
		c.Headers.Set(key, value)
	}
}

// WithHeaders sets multiple headers.
func WithHeaders(headers map[string]string) RequestOption {
	return func(c *RequestConfig) {
		if c.Headers == nil {
			c.Headers = make(http.Header)
		}
		for k, v := range headers {
			c.Headers.Set(k, v)
		}
	}
}

// WithQuery sets a single query parameter.
func WithQuery(key, value string) RequestOption {
	return func(c *RequestConfig) {
		if c.Query == nil {
			c.Query = make(url.Values)
		}
		c.Query.Set(key, value)
	}
}

// WithQueryParams sets multiple query parameters.
func WithQueryParams(params map[string]string) RequestOption {
	return func(c *RequestConfig) {
		if c.Query == nil {
			c.Query = make(url.Values)
		}
		for k, v := range params {
			c.Query.Set(k, v)
		}
	}
}

// WithBasicAuth sets basic authentication.
func WithBasicAuth(username, password string) RequestOption {
	return func(c *RequestConfig) { c.BasicAuth = &BasicAuth{Username: username, Password: password} }
}

// WithBearerToken sets bearer token authentication.
func WithBearerToken(token string) RequestOption {
	return func(c *RequestConfig) { c.BearerToken = token }
}

// WithRetry attaches a retry policy; RequestBuilder.Do installs RetryMiddleware
// when one is present.
func WithRetry(policy RetryPolicy) RequestOption {
	return func(c *RequestConfig) { c.Retry = &policy }
}

// WithContext sets the request context.
func WithContext(ctx context.Context) RequestOption {
	return func(c *RequestConfig) { c.Context = ctx }
}

// WithContentType sets the Content-Type header.
func WithContentType(contentType string) RequestOption {
	return WithHeader("Content-Type", contentType)
}

// WithAccept sets the Accept header.
func WithAccept(accept string) RequestOption {
	return WithHeader("Accept", accept)
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(userAgent string) RequestOption {
	return WithHeader("User-Agent", userAgent)
}

// ClientOption configures a Client's default pipeline and transport.
type ClientOption func(*ClientConfig)

// ClientConfig holds client-wide defaults applied to every request the
// client builds.
type ClientConfig struct {
	BaseURL     string
	Timeout     time.Duration
	Proxy       string
	DNSServers  []string
	HTTP2       bool
	Headers     http.Header
	Middlewares []Middleware
	CookieJar   http.CookieJar
}

// NewClientConfig returns an empty, ready-to-use config.
func NewClientConfig() *ClientConfig {
	return &ClientConfig{Headers: make(http.Header)}
}

// WithBaseURL sets the base URL requests are resolved against.
func WithBaseURL(base string) ClientOption {
	return func(c *ClientConfig) { c.BaseURL = base }
}

// WithClientTimeout sets the per-request timeout applied by the transport.
func WithClientTimeout(d time.Duration) ClientOption {
	return func(c *ClientConfig) { c.Timeout = d }
}

// WithClientProxy routes all requests through proxyURL.
func WithClientProxy(proxyURL string) ClientOption {
	return func(c *ClientConfig) { c.Proxy = proxyURL }
}

// WithClientDNS sets a fixed list of DNS resolvers for dialing.
func WithClientDNS(servers []string) ClientOption {
	return func(c *ClientConfig) { c.DNSServers = servers }
}

// WithHTTP2 toggles HTTP/2 negotiation on the underlying transport.
func WithHTTP2(enabled bool) ClientOption {
	return func(c *ClientConfig) { c.HTTP2 = enabled }
}

// WithClientHeader sets a default header sent with every request.
func WithClientHeader(key, value string) ClientOption {
	return func(c *ClientConfig) {
		if c.Headers == nil {
			c.Headers = make(http.Header)
		}
		c.Headers.Set(key, value)
	}
}

// WithMiddleware appends a middleware to the client's pipeline, innermost
// last (closest to the transport).
func WithMiddleware(m Middleware) ClientOption {
	return func(c *ClientConfig) { c.Middlewares = append(c.Middlewares, m) }
}

// WithCookieJar replaces the client's cookie jar. Clients carry an
// in-memory jar by default; a nil jar is ignored and leaves that default in
// place, so turning cookie persistence off takes a jar that stores nothing.
func WithCookieJar(jar http.CookieJar) ClientOption {
	return func(c *ClientConfig) { c.CookieJar = jar }
}
