package core

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// RequestHook is called before a request is sent.
type (
	RequestHook func(req InMemoryRequest)
	// ResponseHook is called after a response is received.
	ResponseHook func(req InMemoryRequest, resp InMemoryResponse, duration time.Duration)
	// ErrorHook is called when an error occurs.
	ErrorHook func(req InMemoryRequest, err error, duration time.Duration)

	// hooksData holds the immutable hook slices for atomic swap.
	hooksData struct {
		onRequest  []RequestHook
		onResponse []ResponseHook
		onError    []ErrorHook
	}

	// Hooks manages request/response hooks using atomic operations so the
	// hot path (Trigger*, called on every request) never takes a lock.
	Hooks struct {
		data atomic.Value // holds *hooksData
		mu   sync.Mutex   // only used for write operations
	}
)

// NewHooks creates a new Hooks instance.
func NewHooks() *Hooks {
	h := &Hooks{}
	h.data.Store(&hooksData{})
	return h
}

func (h *Hooks) getData() *hooksData {
	return h.data.Load().(*hooksData)
}

// OnRequest registers a request hook.
func (h *Hooks) OnRequest(hook RequestHook) *Hooks {
	h.mu.Lock()
	defer h.mu.Unlock()
	old := h.getData()
	newHooks := append(append([]RequestHook(nil), old.onRequest...), hook)
	h.data.Store(&hooksData{onRequest: newHooks, onResponse: old.onResponse, onError: old.onError})
	return h
}

// OnResponse registers a response hook.
func (h *Hooks) OnResponse(hook ResponseHook) *Hooks {
	h.mu.Lock()
	defer h.mu.Unlock()
	old := h.getData()
	newHooks := append(append([]ResponseHook(nil), old.onResponse...), hook)
	h.data.Store(&hooksData{onRequest: old.onRequest, onResponse: newHooks, onError: old.onError})
	return h
}

// OnError registers an error hook.
func (h *Hooks) OnError(hook ErrorHook) *Hooks {
	h.mu.Lock()
	defer h.mu.Unlock()
	old := h.getData()
	newHooks := append(append([]ErrorHook(nil), old.onError...), hook)
	h.data.Store(&hooksData{onRequest: old.onRequest, onResponse: old.onResponse, onError: newHooks})
	return h
}

// TriggerRequest calls all registered request hooks (lock-free).
func (h *Hooks) TriggerRequest(req InMemoryRequest) {
	for _, hook := range h.getData().onRequest {
		hook(req)
	}
}

// TriggerResponse calls all registered response hooks (lock-free).
func (h *Hooks) TriggerResponse(req InMemoryRequest, resp InMemoryResponse, duration time.Duration) {
	for _, hook := range h.getData().onResponse {
		hook(req, resp, duration)
	}
}

// TriggerError calls all registered error hooks (lock-free).
func (h *Hooks) TriggerError(req InMemoryRequest, err error, duration time.Duration) {
	for _, hook := range h.getData().onError {
		hook(req, err, duration)
	}
}

// Len returns the total number of registered hooks.
func (h *Hooks) Len() int {
	data := h.getData()
	return len(data.onRequest) + len(data.onResponse) + len(data.onError)
}

// HooksMiddleware triggers the registered hooks around the wrapped pipeline.
func HooksMiddleware(hooks *Hooks) Middleware {
	return MiddlewareFunc(func(ctx context.Context, req InMemoryRequest, next Next) (Response, error) {
		start := time.Now()
		hooks.TriggerRequest(req)
		resp, err := next.Run(ctx, req)
		duration := time.Since(start)
		if err != nil {
			hooks.TriggerError(req, err, duration)
			return resp, err
		}
		mem, merr := resp.InMemory()
		if merr != nil {
			hooks.TriggerError(req, merr, duration)
			return Response{}, merr
		}
		hooks.TriggerResponse(req, mem, duration)
		return ResponseFromInMemory(mem), nil
	})
}

// MetricsHook collects request/response/error counts and average duration
// using atomics, so it can be shared across concurrent requests without a
// lock.
type MetricsHook struct {
	requestCount  atomic.Int64
	responseCount atomic.Int64
	errorCount    atomic.Int64
	totalDuration atomic.Int64 // nanoseconds
}

// NewMetricsHook creates a new metrics hook.
func NewMetricsHook() *MetricsHook { return &MetricsHook{} }

// RequestHook returns a request hook that counts requests.
func (m *MetricsHook) RequestHook() RequestHook {
	return func(req InMemoryRequest) { m.requestCount.Add(1) }
}

// ResponseHook returns a response hook that counts responses.
func (m *MetricsHook) ResponseHook() ResponseHook {
	return func(req InMemoryRequest, resp InMemoryResponse, duration time.Duration) {
		m.responseCount.Add(1)
		m.totalDuration.Add(int64(duration))
	}
}

// ErrorHook returns an error hook that counts errors.
func (m *MetricsHook) ErrorHook() ErrorHook {
	return func(req InMemoryRequest, err error, duration time.Duration) {
		m.errorCount.Add(1)
		m.totalDuration.Add(int64(duration))
	}
}

// Stats returns the current metrics.
func (m *MetricsHook) Stats() (requests, responses, errors int64, avgDuration time.Duration) {
	requests = m.requestCount.Load()
	responses = m.responseCount.Load()
	errors = m.errorCount.Load()
	total := responses + errors
	if total > 0 {
		avgDuration = time.Duration(m.totalDuration.Load() / total)
	}
	return requests, responses, errors, avgDuration
}

// Reset zeroes the metrics.
func (m *MetricsHook) Reset() {
	m.requestCount.Store(0)
	m.responseCount.Store(0)
	m.errorCount.Store(0)
	m.totalDuration.Store(0)
}
