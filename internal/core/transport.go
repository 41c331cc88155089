package core

import (
	"bytes"
	"context"
	"crypto/tls"
	"io"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"
)

const (
	idleConnTimeout     = 90 * time.Second
	dnsResolveTimeout   = 15 * time.Second
	defaultMaxIdleConns = 100
)

var (
	http1TransportPool sync.Pool
	http2TransportPool sync.Pool
)

func init() {
	http1TransportPool = sync.Pool{
		New: func() any {
			return &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConns,
				IdleConnTimeout:     idleConnTimeout,
				ForceAttemptHTTP2:   false,
				TLSNextProto:        make(map[string]func(string, *tls.Conn) http.RoundTripper),
			}
		},
	}
	http2TransportPool = sync.Pool{
		New: func() any {
			return &http.Transport{
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConns,
				IdleConnTimeout:     idleConnTimeout,
				ForceAttemptHTTP2:   true,
			}
		},
	}
}

// getPooledTransport borrows a *http.Transport from the HTTP/1.1 or HTTP/2
// pool; putPooledTransport must be called on HTTPTransport.Close to return
// it.
func getPooledTransport(http2 bool) *http.Transport {
	if http2 {
		return http2TransportPool.Get().(*http.Transport)
	}
	return http1TransportPool.Get().(*http.Transport)
}

func putPooledTransport(tr *http.Transport) {
	if tr == nil {
		return
	}
	if tr.ForceAttemptHTTP2 {
		http2TransportPool.Put(tr)
	} else {
		http1TransportPool.Put(tr)
	}
}

// customDial resolves address through dnsServers in order, falling back to
// the next server on failure, then dials the first IP that accepts a
// connection.
func customDial(ctx context.Context, network, address string, dnsServers []string) (net.Conn, error) {
	dialer := &net.Dialer{Timeout: dnsResolveTimeout}
	resolver := &net.Resolver{
		PreferGo: true,
		Dial: func(ctx context.Context, network, _ string) (net.Conn, error) {
			var lastErr error
			for _, dns := range dnsServers {
				conn, err := dialer.DialContext(ctx, network, dns+":53")
				if err == nil {
					return conn, nil
				}
				lastErr = err
			}
			return nil, NewConnectionError("dns", address, lastErr)
		},
	}
	host, port, err := net.SplitHostPort(address)
	if err != nil {
		return nil, NewConnectionError("dns", address, err)
	}
	ips, err := resolver.LookupHost(ctx, host)
	if err != nil {
		return nil, NewConnectionError("dns", address, err)
	}
	var lastErr error
	for _, ip := range ips {
		conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
		if err == nil {
			return conn, nil
		}
		lastErr = err
	}
	return nil, NewConnectionError("dial", address, lastErr)
}

// HTTPTransport is the Transport terminator that actually performs network
// I/O. It wraps a pooled *http.Transport so repeated clients in the same
// process reuse connection pools instead of each opening their own.
type HTTPTransport struct {
	mu        sync.Mutex
	client    *http.Client
	useHTTP2  bool
	proxyURL  *url.URL
	dnsServer []string
}

// NewHTTPTransport builds a transport backed by a pooled *http.Transport,
// defaulting to HTTP/1.1 with an in-memory cookie jar so a Client's
// requests carry cookies set by earlier responses automatically.
func NewHTTPTransport() *HTTPTransport {
	tr := getPooledTransport(false)
	jar, _ := cookiejar.New(nil)
	return &HTTPTransport{client: &http.Client{Transport: tr, Jar: jar}}
}

// WithCookieJar replaces the transport's cookie jar; a nil jar disables
// cookie persistence across requests.
func (t *HTTPTransport) WithCookieJar(jar http.CookieJar) *HTTPTransport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.client.Jar = jar
	return t
}

// WithHTTP2 swaps the pooled transport for one that negotiates HTTP/2,
// returning the old one to its pool.
func (t *HTTPTransport) WithHTTP2(enabled bool) *HTTPTransport {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.useHTTP2 == enabled {
		return t
	}
	if old, ok := t.client.Transport.(*http.Transport); ok {
		putPooledTransport(old)
	}
	t.useHTTP2 = enabled
	t.client.Transport = getPooledTransport(enabled)
	t.applyLocked()
	return t
}

// WithProxy routes all requests through proxyURL; an empty string clears
// any previously configured proxy.
func (t *HTTPTransport) WithProxy(proxyURL string) *HTTPTransport {
	t.mu.Lock()
	defer t.mu.Unlock()
	if proxyURL == "" {
		t.proxyURL = nil
	} else if u, err := url.Parse(proxyURL); err == nil {
		t.proxyURL = u
	}
	t.applyLocked()
	return t
}

// WithDNS directs connection dialing through a fixed list of DNS resolvers
// instead of the system resolver.
func (t *HTTPTransport) WithDNS(servers []string) *HTTPTransport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.dnsServer = servers
	t.applyLocked()
	return t
}

// WithTimeout sets the overall per-request timeout.
func (t *HTTPTransport) WithTimeout(d time.Duration) *HTTPTransport {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.client.Timeout = d
	return t
}

func (t *HTTPTransport) applyLocked() {
	tr, ok := t.client.Transport.(*http.Transport)
	if !ok {
		return
	}
	if t.proxyURL != nil {
		tr.Proxy = http.ProxyURL(t.proxyURL)
	} else {
		tr.Proxy = http.ProxyFromEnvironment
	}
	if len(t.dnsServer) > 0 {
		servers := append([]string(nil), t.dnsServer...)
		tr.DialContext = func(ctx context.Context, network, address string) (net.Conn, error) {
			return customDial(ctx, network, address, servers)
		}
	} else {
		tr.DialContext = nil
	}
}

// RoundTrip implements Transport by sending req over the wire and wrapping
// the response body as a not-yet-materialized stream; the pipeline
// downstream of this call decides when (and by what content type) to read
// it.
func (t *HTTPTransport) RoundTrip(ctx context.Context, req InMemoryRequest) (Response, error) {
	body, err := req.Body.Bytes()
	if err != nil {
		return Response{}, NewIoError("transport", req.Host(), err)
	}
	var bodyReader io.Reader
	if len(body) > 0 {
		bodyReader = bytes.NewReader(body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method.String(), req.URL.String(), bodyReader)
	if err != nil {
		return Response{}, NewConnectionError("transport", req.Host(), err)
	}
	for k, vs := range req.Headers {
		for _, v := range vs {
			httpReq.Header.Add(k, v)
		}
	}
	httpResp, err := t.client.Do(httpReq)
	if err != nil {
		return Response{}, NewConnectionError("transport", req.Host(), err)
	}
	return Response{
		StatusCode: httpResp.StatusCode,
		Proto:      httpResp.Proto,
		Headers:    httpResp.Header,
		Body:       NewStreamingBodyWithSize(httpResp.Body, httpResp.ContentLength),
	}, nil
}

// Close returns the underlying *http.Transport to its pool. After Close the
// HTTPTransport must not be used again.
func (t *HTTPTransport) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if tr, ok := t.client.Transport.(*http.Transport); ok {
		putPooledTransport(tr)
		t.client.Transport = nil
	}
}
