package core

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHooks_TriggersRegisteredCallbacksInOrder(t *testing.T) {
	h := NewHooks()
	var calls []string
	h.OnRequest(func(req InMemoryRequest) { calls = append(calls, "req1") })
	h.OnRequest(func(req InMemoryRequest) { calls = append(calls, "req2") })
	h.TriggerRequest(newTestRequest(MethodGet, "http://example.com"))
	assert.Equal(t, []string{"req1", "req2"}, calls)
}

func TestHooksMiddleware_FiresRequestAndResponseHooksOnSuccess(t *testing.T) {
	transport := TransportFunc(func(ctx context.Context, req InMemoryRequest) (Response, error) {
		return Response{StatusCode: 200, Body: NewInMemoryBody(EmptyBody())}, nil
	})
	h := NewHooks()
	var requestFired bool
	var gotStatus int
	h.OnRequest(func(req InMemoryRequest) { requestFired = true })
	h.OnResponse(func(req InMemoryRequest, resp InMemoryResponse, d time.Duration) { gotStatus = resp.StatusCode })
	p := NewPipeline(transport, HooksMiddleware(h))
	_, err := p.Run(context.Background(), newTestRequest(MethodGet, "http://example.com"))
	assert.NoError(t, err)
	assert.True(t, requestFired)
	assert.Equal(t, 200, gotStatus)
}

func TestHooksMiddleware_FiresErrorHookOnFailure(t *testing.T) {
	transport := TransportFunc(func(ctx context.Context, req InMemoryRequest) (Response, error) {
		return Response{}, errors.New("boom")
	})
	h := NewHooks()
	var gotErr error
	h.OnError(func(req InMemoryRequest, err error, d time.Duration) { gotErr = err })
	p := NewPipeline(transport, HooksMiddleware(h))
	_, err := p.Run(context.Background(), newTestRequest(MethodGet, "http://example.com"))
	assert.Error(t, err)
	assert.Equal(t, err, gotErr)
}

func TestHooks_ConcurrentRegistrationIsSafe(t *testing.T) {
	h := NewHooks()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h.OnRequest(func(req InMemoryRequest) {})
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, h.Len())
}

func TestMetricsHook_CountsRequestsResponsesAndErrors(t *testing.T) {
	metrics := NewMetricsHook()
	h := NewHooks().OnRequest(metrics.RequestHook()).OnResponse(metrics.ResponseHook()).OnError(metrics.ErrorHook())

	okTransport := TransportFunc(func(ctx context.Context, req InMemoryRequest) (Response, error) {
		return Response{StatusCode: 200, Body: NewInMemoryBody(EmptyBody())}, nil
	})
	failTransport := TransportFunc(func(ctx context.Context, req InMemoryRequest) (Response, error) {
		return Response{}, errors.New("boom")
	})

	okPipeline := NewPipeline(okTransport, HooksMiddleware(h))
	failPipeline := NewPipeline(failTransport, HooksMiddleware(h))

	okPipeline.Run(context.Background(), newTestRequest(MethodGet, "http://example.com"))
	okPipeline.Run(context.Background(), newTestRequest(MethodGet, "http://example.com"))
	failPipeline.Run(context.Background(), newTestRequest(MethodGet, "http://example.com"))

	requests, responses, errs, _ := metrics.Stats()
	assert.Equal(t, int64(3), requests)
	assert.Equal(t, int64(2), responses)
	assert.Equal(t, int64(1), errs)

	metrics.Reset()
	requests, responses, errs, _ = metrics.Stats()
	assert.Zero(t, requests)
	assert.Zero(t, responses)
	assert.Zero(t, errs)
}
