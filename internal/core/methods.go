package core

import "context"

// DefaultPipeline is the zero-configuration pipeline the package-level
// Get/Post/... helpers drive requests through: just the HTTP transport, no
// middlewares installed. Callers who need retry, follow, recording, or
// OAuth2 build their own Pipeline and use NewRequest directly.
var DefaultPipeline = NewPipeline(NewHTTPTransport())

// Get performs a GET request against DefaultPipeline.
func Get(rawURL string, opts ...RequestOption) (InMemoryResponse, error) {
	return GetWithContext(context.Background(), rawURL, opts...)
}

// GetWithContext performs a GET request with ctx.
func GetWithContext(ctx context.Context, rawURL string, opts ...RequestOption) (InMemoryResponse, error) {
	return NewGetRequest(DefaultPipeline, rawURL).WithContext(ctx).WithOptions(opts...).Do()
}

// Post performs a POST request with a JSON body against DefaultPipeline.
func Post(rawURL string, body any, opts ...RequestOption) (InMemoryResponse, error) {
	return PostWithContext(context.Background(), rawURL, body, opts...)
}

// PostWithContext performs a POST request with ctx and a JSON body.
func PostWithContext(ctx context.Context, rawURL string, body any, opts ...RequestOption) (InMemoryResponse, error) {
	return NewPostRequest(DefaultPipeline, rawURL).WithContext(ctx).WithJSON(body).WithOptions(opts...).Do()
}

// Put performs a PUT request with a JSON body against DefaultPipeline.
func Put(rawURL string, body any, opts ...RequestOption) (InMemoryResponse, error) {
	return PutWithContext(context.Background(), rawURL, body, opts...)
}

// PutWithContext performs a PUT request with ctx and a JSON body.
func PutWithContext(ctx context.Context, rawURL string, body any, opts ...RequestOption) (InMemoryResponse, error) {
	return NewPutRequest(DefaultPipeline, rawURL).WithContext(ctx).WithJSON(body).WithOptions(opts...).Do()
}

// Delete performs a DELETE request against DefaultPipeline.
func Delete(rawURL string, opts ...RequestOption) (InMemoryResponse, error) {
	return DeleteWithContext(context.Background(), rawURL, opts...)
}

// DeleteWithContext performs a DELETE request with ctx.
func DeleteWithContext(ctx context.Context, rawURL string, opts ...RequestOption) (InMemoryResponse, error) {
	return NewDeleteRequest(DefaultPipeline, rawURL).WithContext(ctx).WithOptions(opts...).Do()
}

// Patch performs a PATCH request with a JSON body against DefaultPipeline.
func Patch(rawURL string, body any, opts ...RequestOption) (InMemoryResponse, error) {
	return PatchWithContext(context.Background(), rawURL, body, opts...)
}

// PatchWithContext performs a PATCH request with ctx and a JSON body.
func PatchWithContext(ctx context.Context, rawURL string, body any, opts ...RequestOption) (InMemoryResponse, error) {
	return NewPatchRequest(DefaultPipeline, rawURL).WithContext(ctx).WithJSON(body).WithOptions(opts...).Do()
}

// GetJSON performs a GET request and decodes a JSON response into T.
func GetJSON[T any](rawURL string, opts ...RequestOption) (Result[T], error) {
	return DoJSON[T](NewGetRequest(DefaultPipeline, rawURL).WithOptions(opts...))
}

// PostJSON performs a POST request with a JSON body and decodes a JSON
// response into T.
func PostJSON[T any](rawURL string, body any, opts ...RequestOption) (Result[T], error) {
	return DoJSON[T](NewPostRequest(DefaultPipeline, rawURL).WithJSON(body).WithOptions(opts...))
}

// GetString performs a GET request and returns the response body as text.
func GetString(rawURL string, opts ...RequestOption) (string, error) {
	resp, err := Get(rawURL, opts...)
	if err != nil {
		return "", err
	}
	return resp.Body.Text()
}

// GetBytes performs a GET request and returns the response body as bytes.
func GetBytes(rawURL string, opts ...RequestOption) ([]byte, error) {
	resp, err := Get(rawURL, opts...)
	if err != nil {
		return nil, err
	}
	return resp.Body.Bytes()
}
