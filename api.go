package requests

import (
	"context"

	"github.com/sunerpy/requests/internal/core"
)

// Get performs a GET request against the package-level DefaultPipeline (no
// retry, follow, recording, or OAuth2 middleware installed). Build a Client
// with NewClient for configured, reusable request execution.
func Get(rawURL string, opts ...RequestOption) (InMemoryResponse, error) {
	return core.Get(rawURL, opts...)
}

// GetWithContext performs a GET request with ctx.
func GetWithContext(ctx context.Context, rawURL string, opts ...RequestOption) (InMemoryResponse, error) {
	return core.GetWithContext(ctx, rawURL, opts...)
}

// Post performs a POST request with a JSON body.
func Post(rawURL string, body any, opts ...RequestOption) (InMemoryResponse, error) {
	return core.Post(rawURL, body, opts...)
}

// PostWithContext performs a POST request with ctx and a JSON body.
func PostWithContext(ctx context.Context, rawURL string, body any, opts ...RequestOption) (InMemoryResponse, error) {
	return core.PostWithContext(ctx, rawURL, body, opts...)
}

// Put performs a PUT request with a JSON body.
func Put(rawURL string, body any, opts ...RequestOption) (InMemoryResponse, error) {
	return core.Put(rawURL, body, opts...)
}

// PutWithContext performs a PUT request with ctx and a JSON body.
func PutWithContext(ctx context.Context, rawURL string, body any, opts ...RequestOption) (InMemoryResponse, error) {
	return core.PutWithContext(ctx, rawURL, body, opts...)
}

// Delete performs a DELETE request.
func Delete(rawURL string, opts ...RequestOption) (InMemoryResponse, error) {
	return core.Delete(rawURL, opts...)
}

// DeleteWithContext performs a DELETE request with ctx.
func DeleteWithContext(ctx context.Context, rawURL string, opts ...RequestOption) (InMemoryResponse, error) {
	return core.DeleteWithContext(ctx, rawURL, opts...)
}

// Patch performs a PATCH request with a JSON body.
func Patch(rawURL string, body any, opts ...RequestOption) (InMemoryResponse, error) {
	return core.Patch(rawURL, body, opts...)
}

// PatchWithContext performs a PATCH request with ctx and a JSON body.
func PatchWithContext(ctx context.Context, rawURL string, body any, opts ...RequestOption) (InMemoryResponse, error) {
	return core.PatchWithContext(ctx, rawURL, body, opts...)
}

// GetJSON performs a GET request and decodes a JSON response into T.
func GetJSON[T any](rawURL string, opts ...RequestOption) (Result[T], error) {
	return core.GetJSON[T](rawURL, opts...)
}

// PostJSON performs a POST request with a JSON body and decodes a JSON
// response into T.
func PostJSON[T any](rawURL string, body any, opts ...RequestOption) (Result[T], error) {
	return core.PostJSON[T](rawURL, body, opts...)
}

// GetString performs a GET request and returns the response body as text.
func GetString(rawURL string, opts ...RequestOption) (string, error) {
	return core.GetString(rawURL, opts...)
}

// GetBytes performs a GET request and returns the response body as bytes.
func GetBytes(rawURL string, opts ...RequestOption) ([]byte, error) {
	return core.GetBytes(rawURL, opts...)
}
