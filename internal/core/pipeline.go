package core

import "context"

// Handler processes an in-memory request and produces a response. A
// Transport is a Handler that actually performs I/O; a Middleware wraps a
// Handler to observe or alter the request/response passing through it.
type Handler func(ctx context.Context, req InMemoryRequest) (Response, error)

// Transport is the terminal Handler at the end of every pipeline: it sends
// the request over the wire and returns whatever the wire gives back.
type Transport interface {
	RoundTrip(ctx context.Context, req InMemoryRequest) (Response, error)
}

// TransportFunc adapts a plain function to a Transport.
type TransportFunc func(ctx context.Context, req InMemoryRequest) (Response, error)

// RoundTrip calls f.
func (f TransportFunc) RoundTrip(ctx context.Context, req InMemoryRequest) (Response, error) {
	return f(ctx, req)
}

// Next is the cursor a Middleware calls to continue the pipeline: either
// into the next middleware in the list, or - once the list is exhausted -
// into the Transport terminator.
type Next struct {
	middlewares []Middleware
	transport   Transport
}

// Run invokes the head middleware with a cursor over the remainder, or
// hands the request to the transport once the list is exhausted.
func (n Next) Run(ctx context.Context, req InMemoryRequest) (Response, error) {
	if len(n.middlewares) == 0 {
		return n.transport.RoundTrip(ctx, req)
	}
	head := n.middlewares[0]
	rest := Next{middlewares: n.middlewares[1:], transport: n.transport}
	return head.Handle(ctx, req, rest)
}

// Middleware observes or alters a request on the way out and the response
// on the way back, by choosing when (and whether) to call next.Run.
type Middleware interface {
	Handle(ctx context.Context, req InMemoryRequest, next Next) (Response, error)
}

// MiddlewareFunc adapts a plain function to a Middleware.
type MiddlewareFunc func(ctx context.Context, req InMemoryRequest, next Next) (Response, error)

// Handle calls f.
func (f MiddlewareFunc) Handle(ctx context.Context, req InMemoryRequest, next Next) (Response, error) {
	return f(ctx, req, next)
}

// Pipeline is an ordered list of middlewares terminated by a Transport. It
// is the driver described by the component design: walking the list,
// invoking each middleware with a cursor over the remainder.
type Pipeline struct {
	middlewares []Middleware
	transport   Transport
}

// NewPipeline builds a Pipeline over transport with middlewares applied in
// the given order - the first middleware in the list is the outermost, the
// one that sees the request first and the response last.
func NewPipeline(transport Transport, middlewares ...Middleware) *Pipeline {
	return &Pipeline{
		middlewares: append([]Middleware(nil), middlewares...),
		transport:   transport,
	}
}

// Use appends a middleware to the end of the list (innermost, closest to
// the transport).
func (p *Pipeline) Use(m Middleware) *Pipeline {
	p.middlewares = append(p.middlewares, m)
	return p
}

// Run drives req through the full pipeline.
func (p *Pipeline) Run(ctx context.Context, req InMemoryRequest) (Response, error) {
	next := Next{middlewares: p.middlewares, transport: p.transport}
	return next.Run(ctx, req)
}

// Len returns the number of middlewares installed.
func (p *Pipeline) Len() int { return len(p.middlewares) }

// Clone returns a pipeline with an independent middleware slice sharing the
// same transport.
func (p *Pipeline) Clone() *Pipeline {
	clone := &Pipeline{
		middlewares: make([]Middleware, len(p.middlewares)),
		transport:   p.transport,
	}
	copy(clone.middlewares, p.middlewares)
	return clone
}

// HeaderMiddleware sets headers on every request that doesn't already carry
// them, leaving caller-supplied values untouched.
func HeaderMiddleware(headers map[string]string) Middleware {
	return MiddlewareFunc(func(ctx context.Context, req InMemoryRequest, next Next) (Response, error) {
		for k, v := range headers {
			if req.Headers.Get(k) == "" {
				req.Headers.Set(k, v)
			}
		}
		return next.Run(ctx, req)
	})
}

// UserAgentMiddleware sets the User-Agent header when absent.
func UserAgentMiddleware(userAgent string) Middleware {
	return HeaderMiddleware(map[string]string{"User-Agent": userAgent})
}

// ConditionalMiddleware only applies m when condition holds for the request.
func ConditionalMiddleware(condition func(InMemoryRequest) bool, m Middleware) Middleware {
	return MiddlewareFunc(func(ctx context.Context, req InMemoryRequest, next Next) (Response, error) {
		if condition(req) {
			return m.Handle(ctx, req, next)
		}
		return next.Run(ctx, req)
	})
}
