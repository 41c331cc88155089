package core

import "net/http"

// Result pairs a decoded body of type T with the in-memory response it was
// decoded from, so a caller gets typed data and response metadata out of a
// single return value instead of juggling both separately.
type Result[T any] struct {
	data     T
	response InMemoryResponse
}

// NewResult builds a Result from decoded data and the response it came from.
func NewResult[T any](data T, response InMemoryResponse) Result[T] {
	return Result[T]{data: data, response: response}
}

// Data returns the decoded body.
func (r Result[T]) Data() T { return r.data }

// Response returns the underlying in-memory response.
func (r Result[T]) Response() InMemoryResponse { return r.response }

// StatusCode returns the HTTP status code.
func (r Result[T]) StatusCode() int { return r.response.StatusCode }

// Headers returns the response headers.
func (r Result[T]) Headers() http.Header { return r.response.Headers }

// IsSuccess reports whether the status code is 2xx.
func (r Result[T]) IsSuccess() bool {
	code := r.StatusCode()
	return code >= 200 && code < 300
}

// IsError reports whether the status code is 4xx or 5xx.
func (r Result[T]) IsError() bool { return r.response.IsError() }

// IsClientError reports whether the status code is 4xx.
func (r Result[T]) IsClientError() bool {
	code := r.StatusCode()
	return code >= 400 && code < 500
}

// IsServerError reports whether the status code is 5xx.
func (r Result[T]) IsServerError() bool { return r.StatusCode() >= 500 }

// ContentType returns the Content-Type header value.
func (r Result[T]) ContentType() string { return r.response.Headers.Get("Content-Type") }

// Text returns the response body as text, decoding it if it is not
// already the Text case.
func (r Result[T]) Text() string {
	text, _ := r.response.Body.Text()
	return text
}

// Bytes returns the response body as raw bytes.
func (r Result[T]) Bytes() []byte {
	data, _ := r.response.Body.Bytes()
	return data
}
