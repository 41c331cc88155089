package core

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/sunerpy/requests/codec"
)

type queryParam struct {
	key   string
	value string
}

// RequestBuilder provides a fluent interface for building a Request, then
// driving it through a Pipeline via Do.
type RequestBuilder struct {
	method      Method
	rawURL      string
	headers     http.Header
	queryParams []queryParam
	body        InMemoryBody
	ctx         context.Context
	config      *RequestConfig
	pipeline    *Pipeline
	err         error
}

// NewRequest creates a builder for method and rawURL, driven by pipeline
// when Do is called.
func NewRequest(pipeline *Pipeline, method Method, rawURL string) *RequestBuilder {
	return &RequestBuilder{
		method:   method,
		rawURL:   rawURL,
		ctx:      context.Background(),
		config:   NewRequestConfig(),
		pipeline: pipeline,
		body:     EmptyBody(),
	}
}

// NewGetRequest creates a GET request builder.
func NewGetRequest(pipeline *Pipeline, rawURL string) *RequestBuilder {
	return NewRequest(pipeline, MethodGet, rawURL)
}

// NewPostRequest creates a POST request builder.
func NewPostRequest(pipeline *Pipeline, rawURL string) *RequestBuilder {
	return NewRequest(pipeline, MethodPost, rawURL)
}

// NewPutRequest creates a PUT request builder.
func NewPutRequest(pipeline *Pipeline, rawURL string) *RequestBuilder {
	return NewRequest(pipeline, MethodPut, rawURL)
}

// NewDeleteRequest creates a DELETE request builder.
func NewDeleteRequest(pipeline *Pipeline, rawURL string) *RequestBuilder {
	return NewRequest(pipeline, MethodDelete, rawURL)
}

// NewPatchRequest creates a PATCH request builder.
func NewPatchRequest(pipeline *Pipeline, rawURL string) *RequestBuilder {
	return NewRequest(pipeline, MethodPatch, rawURL)
}

// WithHeader adds a single header.
func (b *RequestBuilder) WithHeader(key, value string) *RequestBuilder {
	if b.headers == nil {
		b.headers = make(http.Header, 4)
	}
	b.headers.Set(key, value)
	return b
}

// WithHeaders adds multiple headers.
func (b *RequestBuilder) WithHeaders(headers map[string]string) *RequestBuilder {
	for k, v := range headers {
		b.WithHeader(k, v)
	}
	return b
}

// WithQuery adds a query parameter.
func (b *RequestBuilder) WithQuery(key, value string) *RequestBuilder {
	b.queryParams = append(b.queryParams, queryParam{key: key, value: value})
	return b
}

// WithQueryParams adds multiple query parameters.
func (b *RequestBuilder) WithQueryParams(params map[string]string) *RequestBuilder {
	for k, v := range params {
		b.queryParams = append(b.queryParams, queryParam{key: k, value: v})
	}
	return b
}

// WithJSON sets the request body as JSON.
func (b *RequestBuilder) WithJSON(data any) *RequestBuilder {
	b.body = JSONBody(data)
	return b.WithHeader("Content-Type", "application/json")
}

// WithText sets the request body as plain text.
func (b *RequestBuilder) WithText(text string) *RequestBuilder {
	b.body = TextBody(text)
	return b.WithHeader("Content-Type", "text/plain; charset=utf-8")
}

// WithBytes sets the request body as raw bytes.
func (b *RequestBuilder) WithBytes(data []byte) *RequestBuilder {
	b.body = BytesBody(data)
	return b.WithHeader("Content-Type", "application/octet-stream")
}

// WithForm sets the request body as url-encoded form data.
func (b *RequestBuilder) WithForm(data map[string]string) *RequestBuilder {
	values := make(url.Values, len(data))
	for k, v := range data {
		values.Set(k, v)
	}
	b.body = TextBody(values.Encode())
	return b.WithHeader("Content-Type", "application/x-www-form-urlencoded")
}

// WithMultipart sets the request body as a freshly-boundaried multipart form.
func (b *RequestBuilder) WithMultipart(parts []Part) *RequestBuilder {
	boundary, err := NewBoundary()
	if err != nil {
		b.err = err
		return b
	}
	data, contentType, err := EncodeMultipart(parts, boundary)
	if err != nil {
		b.err = err
		return b
	}
	b.body = BytesBody(data)
	return b.WithHeader("Content-Type", contentType)
}

// WithContext sets the request context.
func (b *RequestBuilder) WithContext(ctx context.Context) *RequestBuilder {
	b.ctx = ctx
	return b
}

// WithOptions applies functional RequestOptions to the builder's config.
func (b *RequestBuilder) WithOptions(opts ...RequestOption) *RequestBuilder {
	b.config.Apply(opts...)
	return b
}

// Build constructs the in-memory request the pipeline will run.
func (b *RequestBuilder) Build() (InMemoryRequest, error) {
	if b.err != nil {
		return InMemoryRequest{}, b.err
	}
	if b.rawURL == "" {
		return InMemoryRequest{}, &ProtocolError{Kind: ConnectionErr, Op: "build", Err: errMissingURL}
	}
	if !b.method.IsValid() {
		return InMemoryRequest{}, &ProtocolError{Kind: ConnectionErr, Op: "build", Err: errInvalidMethod}
	}
	parsedURL, err := url.Parse(b.rawURL)
	if err != nil {
		return InMemoryRequest{}, NewConnectionError("build", b.rawURL, err)
	}
	if len(b.queryParams) > 0 {
		q := parsedURL.Query()
		for _, p := range b.queryParams {
			q.Add(p.key, p.value)
		}
		parsedURL.RawQuery = q.Encode()
	}
	headers := b.headers
	if headers == nil {
		headers = make(http.Header)
	}
	if b.config != nil {
		b.config.ApplyToHeaders(headers)
		if len(b.config.Query) > 0 {
			q := parsedURL.Query()
			for k, vs := range b.config.Query {
				for _, v := range vs {
					q.Add(k, v)
				}
			}
			parsedURL.RawQuery = q.Encode()
		}
	}
	ctx := b.ctx
	if b.config != nil && b.config.Context != nil {
		ctx = b.config.Context
	}
	if b.config != nil && b.config.Timeout > 0 {
		ctx, _ = context.WithTimeout(ctx, b.config.Timeout) //nolint:lostcancel // cancellation scoped to the request's lifetime by the caller
	}
	return InMemoryRequest{
		Method:  b.method,
		URL:     parsedURL,
		Proto:   "HTTP/1.1",
		Headers: headers,
		Body:    b.body,
		Context: ctx,
	}, nil
}

// pipelineForRequest returns the retry-wrapped pipeline to run this
// request through, installing RetryMiddleware as the outermost layer when
// the config carries a retry policy.
func (b *RequestBuilder) pipelineForRequest() *Pipeline {
	if b.config == nil || b.config.Retry == nil {
		return b.pipeline
	}
	clone := b.pipeline.Clone()
	retried := NewPipeline(clone.transport)
	retried.Use(RetryMiddleware(*b.config.Retry))
	for _, m := range clone.middlewares {
		retried.Use(m)
	}
	return retried
}

// Do builds and runs the request, converting a 4xx/5xx response into an
// *HTTPError so callers can treat "built and sent successfully, but the
// server said no" as an error uniformly with transport failures.
func (b *RequestBuilder) Do() (InMemoryResponse, error) {
	req, err := b.Build()
	if err != nil {
		return InMemoryResponse{}, err
	}
	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}
	resp, err := b.pipelineForRequest().Run(ctx, req)
	if err != nil {
		return InMemoryResponse{}, err
	}
	mem, err := resp.InMemory()
	if err != nil {
		return InMemoryResponse{}, NewDecodeError("do", req.Host(), err)
	}
	if mem.IsError() {
		return mem, NewHTTPError(mem)
	}
	return mem, nil
}

// DoJSON runs the request and decodes a JSON response body into T.
func DoJSON[T any](b *RequestBuilder) (Result[T], error) {
	var zero Result[T]
	resp, err := b.Do()
	if err != nil {
		return zero, err
	}
	var data T
	raw, err := resp.Body.Bytes()
	if err != nil {
		return zero, NewDecodeError("DoJSON", b.rawURL, err)
	}
	if err := codec.Unmarshal(raw, &data); err != nil {
		return zero, NewDecodeError("DoJSON", b.rawURL, err)
	}
	return NewResult(data, resp), nil
}

var (
	errMissingURL    = strErr("URL is required")
	errInvalidMethod = strErr("invalid HTTP method")
)

type strErr string

func (e strErr) Error() string { return string(e) }

// basicAuth encodes username and password for HTTP Basic auth.
func basicAuth(username, password string) string {
	return base64Encode([]byte(username + ":" + password))
}

func base64Encode(data []byte) string {
	const base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"
	var result strings.Builder
	result.Grow((len(data) + 2) / 3 * 4)
	for i := 0; i < len(data); i += 3 {
		var n uint32
		remaining := len(data) - i
		switch remaining {
		case 1:
			n = uint32(data[i]) << 16
			result.WriteByte(base64Chars[n>>18&0x3F])
			result.WriteByte(base64Chars[n>>12&0x3F])
			result.WriteString("==")
		case 2:
			n = uint32(data[i])<<16 | uint32(data[i+1])<<8
			result.WriteByte(base64Chars[n>>18&0x3F])
			result.WriteByte(base64Chars[n>>12&0x3F])
			result.WriteByte(base64Chars[n>>6&0x3F])
			result.WriteByte('=')
		default:
			n = uint32(data[i])<<16 | uint32(data[i+1])<<8 | uint32(data[i+2])
			result.WriteByte(base64Chars[n>>18&0x3F])
			result.WriteByte(base64Chars[n>>12&0x3F])
			result.WriteByte(base64Chars[n>>6&0x3F])
			result.WriteByte(base64Chars[n&0x3F])
		}
	}
	return result.String()
}
