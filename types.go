package requests

import (
	"github.com/sunerpy/requests/internal/core"
)

// Type aliases for internal/core types - lets callers import only this
// package.
type (
	// Result wraps both parsed response data and response metadata.
	Result[T any] = core.Result[T]
	// InMemoryResponse is a fully-materialized HTTP response: status,
	// headers, and a body that is always one of Empty/Bytes/Text/Json.
	InMemoryResponse = core.InMemoryResponse
	// InMemoryRequest is a fully-materialized HTTP request.
	InMemoryRequest = core.InMemoryRequest
	// RequestBuilder provides a fluent interface for building requests.
	RequestBuilder = core.RequestBuilder
	// RequestOption configures a single request.
	RequestOption = core.RequestOption
	// ClientOption configures a Client's pipeline and transport.
	ClientOption = core.ClientOption
	// Middleware observes or alters a request/response pair flowing
	// through the pipeline.
	Middleware = core.Middleware
	// MiddlewareFunc adapts a function to Middleware.
	MiddlewareFunc = core.MiddlewareFunc
	// Handler processes an in-memory request and produces a response.
	Handler = core.Handler
	// Transport performs the actual network I/O at the end of a pipeline.
	Transport = core.Transport
	// Next is the cursor a Middleware calls to continue the pipeline.
	Next = core.Next
	// Response is a not-yet-materialized HTTP response as returned by a
	// Transport or middleware.
	Response = core.Response
	// Pipeline is an ordered list of middlewares terminated by a Transport.
	Pipeline = core.Pipeline
	// Hooks provides request/response/error lifecycle hooks.
	Hooks = core.Hooks
	// MetricsHook collects request/response/error counts.
	MetricsHook = core.MetricsHook
	// RetryPolicy configures the Retry middleware.
	RetryPolicy = core.RetryPolicy
	// BasicAuth holds basic authentication credentials.
	BasicAuth = core.BasicAuth
	// Method represents an HTTP method.
	Method = core.Method
	// Body is a possibly-streaming request or response payload.
	Body = core.Body
	// InMemoryBody is a materialized Empty/Bytes/Text/Json payload.
	InMemoryBody = core.InMemoryBody
	// Part is one field of a multipart form.
	Part = core.Part
	// RecorderMode selects how the Recorder middleware treats its cache.
	RecorderMode = core.RecorderMode
	// Store persists and retrieves recorded request/response pairs.
	Store = core.Store
	// Token is an OAuth2 access token.
	Token = core.Token
	// TokenSource obtains and refreshes OAuth2 tokens for OAuth2Middleware.
	TokenSource = core.TokenSource
	// OAuth2Middleware injects and refreshes a bearer token.
	OAuth2Middleware = core.OAuth2Middleware
)

// Error types
type (
	ProtocolError     = core.ProtocolError
	ProtocolErrorKind = core.ProtocolErrorKind
	HTTPError         = core.HTTPError
)

const (
	ConnectionErr    = core.ConnectionErr
	IoErr            = core.IoErr
	DecodeErr        = core.DecodeErr
	TooManyRedirects = core.TooManyRedirects
	TooManyRetries   = core.TooManyRetries
)

const (
	MethodGet     = core.MethodGet
	MethodPost    = core.MethodPost
	MethodPut     = core.MethodPut
	MethodDelete  = core.MethodDelete
	MethodPatch   = core.MethodPatch
	MethodHead    = core.MethodHead
	MethodOptions = core.MethodOptions
	MethodConnect = core.MethodConnect
	MethodTrace   = core.MethodTrace
)

const (
	RecordOrRequest  = core.RecordOrRequest
	IgnoreRecordings = core.IgnoreRecordings
	ForceNoRequests  = core.ForceNoRequests
)

// ============================================================================
// RequestBuilder constructors
// ============================================================================

// NewRequestBuilder creates a new RequestBuilder against pipeline.
func NewRequestBuilder(pipeline *Pipeline, method Method, rawURL string) *RequestBuilder {
	return core.NewRequest(pipeline, method, rawURL)
}

// NewGet creates a new GET request builder against the default pipeline.
func NewGet(rawURL string) *RequestBuilder {
	return core.NewGetRequest(core.DefaultPipeline, rawURL)
}

// NewPost creates a new POST request builder against the default pipeline.
func NewPost(rawURL string) *RequestBuilder {
	return core.NewPostRequest(core.DefaultPipeline, rawURL)
}

// NewPut creates a new PUT request builder against the default pipeline.
func NewPut(rawURL string) *RequestBuilder {
	return core.NewPutRequest(core.DefaultPipeline, rawURL)
}

// NewDeleteBuilder creates a new DELETE request builder against the default
// pipeline.
func NewDeleteBuilder(rawURL string) *RequestBuilder {
	return core.NewDeleteRequest(core.DefaultPipeline, rawURL)
}

// NewPatch creates a new PATCH request builder against the default pipeline.
func NewPatch(rawURL string) *RequestBuilder {
	return core.NewPatchRequest(core.DefaultPipeline, rawURL)
}

// NewPipeline builds a Pipeline over transport with the given middlewares,
// applied in order (first is outermost).
func NewPipeline(transport Transport, middlewares ...Middleware) *Pipeline {
	return core.NewPipeline(transport, middlewares...)
}

// NewHTTPTransport builds the default net/http-backed Transport.
func NewHTTPTransport() *core.HTTPTransport {
	return core.NewHTTPTransport()
}

// ============================================================================
// Request options
// ============================================================================

var (
	WithTimeout     = core.WithTimeout
	WithHeader      = core.WithHeader
	WithHeaders     = core.WithHeaders
	WithQuery       = core.WithQuery
	WithQueryParams = core.WithQueryParams
	WithBasicAuth   = core.WithBasicAuth
	WithBearerToken = core.WithBearerToken
	WithContext     = core.WithContext
	WithContentType = core.WithContentType
	WithAccept      = core.WithAccept
	WithUserAgent   = core.WithUserAgent
	WithRetry       = core.WithRetry
)

// ============================================================================
// Client options
// ============================================================================

var (
	WithBaseURL       = core.WithBaseURL
	WithClientTimeout = core.WithClientTimeout
	WithClientProxy   = core.WithClientProxy
	WithClientDNS     = core.WithClientDNS
	WithHTTP2         = core.WithHTTP2
	WithClientHeader  = core.WithClientHeader
	WithMiddleware    = core.WithMiddleware
	WithCookieJar     = core.WithCookieJar
)

// ============================================================================
// Middleware constructors
// ============================================================================

var (
	HeaderMiddleware    = core.HeaderMiddleware
	UserAgentMiddleware = core.UserAgentMiddleware
	RetryMiddleware     = core.RetryMiddleware
	FollowMiddleware    = core.FollowMiddleware
	RecorderMiddleware  = core.RecorderMiddleware
	NewOAuth2Middleware = core.NewOAuth2Middleware
	NewHooks            = core.NewHooks
	NewMetricsHook      = core.NewMetricsHook
	HooksMiddleware     = core.HooksMiddleware
	DefaultRetryPolicy  = core.DefaultRetryPolicy
	NewStore            = core.NewStore
	NewFileStore        = core.NewFileStore
	LoggingMiddleware   = core.LoggingMiddleware
	RecoveryMiddleware  = core.RecoveryMiddleware
	NewBoundary         = core.NewBoundary
	EncodeMultipart     = core.EncodeMultipart
	DecodeMultipart     = core.DecodeMultipart
)

// ============================================================================
// Generic request execution
// ============================================================================

// DoJSON executes a request builder and decodes a JSON response into T.
func DoJSON[T any](b *RequestBuilder) (Result[T], error) {
	return core.DoJSON[T](b)
}

// ============================================================================
// Error helpers
// ============================================================================

var (
	IsProtocolError = core.IsProtocolError
	IsHTTPError     = core.IsHTTPError
)
