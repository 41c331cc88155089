package core

import (
	"net/http"
)

// InMemoryResponse is the message type middlewares observe on the inbound
// leg: status, HTTP version, headers, and an in-memory body.
type InMemoryResponse struct {
	StatusCode int
	Proto      string
	Headers    http.Header
	Body       InMemoryBody
}

// Clone returns an independent copy, used when the recorder stores a
// sanitized response separately from the one it hands back to the caller.
func (r InMemoryResponse) Clone() InMemoryResponse {
	clone := r
	if r.Headers != nil {
		clone.Headers = r.Headers.Clone()
	}
	clone.Body = r.Body.Clone()
	return clone
}

// IsRedirect reports whether the status is a 3xx.
func (r InMemoryResponse) IsRedirect() bool { return r.StatusCode >= 300 && r.StatusCode < 400 }

// IsError reports whether the status is 4xx or 5xx.
func (r InMemoryResponse) IsError() bool { return r.StatusCode >= 400 }

// Response is the pipeline-facing response: its body may still be
// streaming when returned from the transport terminator.
type Response struct {
	StatusCode int
	Proto      string
	Headers    http.Header
	Body       Body
}

// InMemory materializes the response body by its own Content-Type header.
func (r Response) InMemory() (InMemoryResponse, error) {
	contentType := ""
	if r.Headers != nil {
		contentType = r.Headers.Get("Content-Type")
	}
	body := r.Body
	mem, err := body.InMemory(contentType)
	if err != nil {
		return InMemoryResponse{}, err
	}
	return InMemoryResponse{
		StatusCode: r.StatusCode,
		Proto:      r.Proto,
		Headers:    r.Headers,
		Body:       mem,
	}, nil
}

// ResponseFromInMemory lifts an InMemoryResponse back into a Response, e.g.
// when the recorder serves a cached reply.
func ResponseFromInMemory(r InMemoryResponse) Response {
	return Response{
		StatusCode: r.StatusCode,
		Proto:      r.Proto,
		Headers:    r.Headers,
		Body:       NewInMemoryBody(r.Body),
	}
}
