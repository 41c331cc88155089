// Package requests provides a simple and easy-to-use HTTP client library for Go.
package requests

import (
	"net/http"
	"net/url"
	"sync"

	"github.com/sunerpy/requests/internal/core"
)

// Client is a configured, reusable entry point for building requests: it
// carries a base URL, default headers, and a pipeline (transport plus
// middlewares) that every request built from it is driven through.
//
// A zero-value Client is not usable; build one with NewClient.
type Client struct {
	mu        sync.RWMutex
	config    *core.ClientConfig
	transport *core.HTTPTransport
	pipeline  *core.Pipeline
}

// NewClient builds a Client from opts, applying them to a fresh
// ClientConfig and wiring the resulting transport and middlewares into a
// Pipeline.
func NewClient(opts ...ClientOption) *Client {
	config := core.NewClientConfig()
	for _, opt := range opts {
		opt(config)
	}
	transport := core.NewHTTPTransport().
		WithHTTP2(config.HTTP2).
		WithProxy(config.Proxy).
		WithDNS(config.DNSServers)
	if config.Timeout > 0 {
		transport.WithTimeout(config.Timeout)
	}
	if config.CookieJar != nil {
		transport.WithCookieJar(config.CookieJar)
	}
	pipeline := core.NewPipeline(transport, config.Middlewares...)
	return &Client{config: config, transport: transport, pipeline: pipeline}
}

// WithOptions returns a copy of c with opts applied on top of its current
// configuration. The receiver is left unmodified.
func (c *Client) WithOptions(opts ...ClientOption) *Client {
	c.mu.RLock()
	next := *c.config
	next.Headers = c.config.Headers.Clone()
	next.Middlewares = append([]core.Middleware(nil), c.config.Middlewares...)
	c.mu.RUnlock()
	for _, opt := range opts {
		opt(&next)
	}
	transport := core.NewHTTPTransport().
		WithHTTP2(next.HTTP2).
		WithProxy(next.Proxy).
		WithDNS(next.DNSServers)
	if next.Timeout > 0 {
		transport.WithTimeout(next.Timeout)
	}
	if next.CookieJar != nil {
		transport.WithCookieJar(next.CookieJar)
	}
	pipeline := core.NewPipeline(transport, next.Middlewares...)
	return &Client{config: &next, transport: transport, pipeline: pipeline}
}

// resolveURL resolves rawURL against the client's base URL, when set.
func (c *Client) resolveURL(rawURL string) (string, error) {
	c.mu.RLock()
	base := c.config.BaseURL
	c.mu.RUnlock()
	if base == "" {
		return rawURL, nil
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return baseURL.ResolveReference(ref).String(), nil
}

// newBuilder returns a RequestBuilder for method and rawURL, resolved
// against the client's base URL and pre-populated with its default headers.
func (c *Client) newBuilder(method Method, rawURL string) *RequestBuilder {
	resolved, err := c.resolveURL(rawURL)
	if err != nil {
		resolved = rawURL
	}
	b := core.NewRequest(c.pipeline, method, resolved)
	c.mu.RLock()
	defaults := make(http.Header, len(c.config.Headers))
	applyHeaders(defaults, c.config.Headers)
	c.mu.RUnlock()
	for k, vs := range defaults {
		for _, v := range vs {
			b.WithHeader(k, v)
		}
	}
	return b
}

// Get returns a builder for a GET request.
func (c *Client) Get(rawURL string) *RequestBuilder { return c.newBuilder(MethodGet, rawURL) }

// Post returns a builder for a POST request.
func (c *Client) Post(rawURL string) *RequestBuilder { return c.newBuilder(MethodPost, rawURL) }

// Put returns a builder for a PUT request.
func (c *Client) Put(rawURL string) *RequestBuilder { return c.newBuilder(MethodPut, rawURL) }

// Delete returns a builder for a DELETE request.
func (c *Client) Delete(rawURL string) *RequestBuilder { return c.newBuilder(MethodDelete, rawURL) }

// Patch returns a builder for a PATCH request.
func (c *Client) Patch(rawURL string) *RequestBuilder { return c.newBuilder(MethodPatch, rawURL) }

// Pipeline returns the client's underlying pipeline, for callers who need
// to drive a builder obtained elsewhere through this client's transport and
// middlewares.
func (c *Client) Pipeline() *Pipeline { return c.pipeline }

// Close releases the client's pooled transport. After Close the client must
// not be used again.
func (c *Client) Close() {
	c.transport.Close()
}

// applyHeaders copies headers from src into dst, additively.
func applyHeaders(dst, src http.Header) {
	for k, vals := range src {
		for _, v := range vals {
			dst.Add(k, v)
		}
	}
}
