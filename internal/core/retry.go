package core

import (
	"context"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"time"
)

// DefaultRetryableStatuses is the status set the Retry middleware classifies
// as transient when no custom RetryIf is supplied.
var DefaultRetryableStatuses = map[int]bool{
	http.StatusRequestTimeout:     true, // 408
	http.StatusTooEarly:           true, // 425
	http.StatusTooManyRequests:    true, // 429
	http.StatusServiceUnavailable: true, // 503
}

// RetryPolicy configures the Retry middleware's attempt count and backoff.
type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
	MaxInterval     time.Duration
	Multiplier      float64
	Jitter          float64
	// RetryIf overrides status-set classification when non-nil. It receives
	// the in-memory response (nil on transport error) and the error.
	RetryIf func(resp *InMemoryResponse, err error) bool
}

// DefaultRetryPolicy makes up to 3 attempts in total, starting at a 100ms
// backoff and doubling each attempt, classifying by DefaultRetryableStatuses.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts:     3,
		InitialInterval: 100 * time.Millisecond,
		MaxInterval:     10 * time.Second,
		Multiplier:      2.0,
		Jitter:          0.1,
	}
}

func (p RetryPolicy) shouldRetry(resp *InMemoryResponse, err error) bool {
	if p.RetryIf != nil {
		return p.RetryIf(resp, err)
	}
	if err != nil {
		return true
	}
	if resp != nil {
		return DefaultRetryableStatuses[resp.StatusCode]
	}
	return false
}

func (p RetryPolicy) backoff(attempt int) time.Duration {
	delay := p.InitialInterval
	if p.Multiplier > 0 {
		delay = time.Duration(float64(delay) * math.Pow(p.Multiplier, float64(attempt)))
	}
	if p.MaxInterval > 0 && delay > p.MaxInterval {
		delay = p.MaxInterval
	}
	if p.Jitter > 0 {
		jitterRange := float64(delay) * p.Jitter
		delay = time.Duration(float64(delay) + (rand.Float64()*2-1)*jitterRange)
	}
	if delay < 0 {
		delay = 0
	}
	return delay
}

// retryAfterDelay parses a Retry-After header value, honoring either a
// decimal number of seconds or an RFC 2822/1123 HTTP date, and overrides the
// policy's own backoff when present.
func retryAfterDelay(resp InMemoryResponse) (time.Duration, bool) {
	v := resp.Headers.Get("Retry-After")
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.Atoi(v); err == nil {
		if secs < 0 {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	if when, err := http.ParseTime(v); err == nil {
		d := time.Until(when)
		if d < 0 {
			d = 0
		}
		return d, true
	}
	return 0, false
}

// RetryMiddleware retries the request according to policy, honoring a
// Retry-After response header over the policy's own backoff when present,
// and failing with a ProtocolError of kind TooManyRetries once MaxAttempts
// is exhausted.
func RetryMiddleware(policy RetryPolicy) Middleware {
	if policy.MaxAttempts <= 0 {
		policy.MaxAttempts = 1
	}
	return MiddlewareFunc(func(ctx context.Context, req InMemoryRequest, next Next) (Response, error) {
		var lastErr error
		var lastResp Response
		for attempt := 0; attempt < policy.MaxAttempts; attempt++ {
			select {
			case <-ctx.Done():
				return Response{}, NewIoError("retry", req.Host(), ctx.Err())
			default:
			}
			resp, err := next.Run(ctx, req.Clone())
			lastResp, lastErr = resp, err
			var mem *InMemoryResponse
			if err == nil {
				m, merr := resp.InMemory()
				if merr != nil {
					lastErr = merr
				} else {
					mem = &m
					lastResp = ResponseFromInMemory(m)
				}
			}
			if !policy.shouldRetry(mem, err) {
				return lastResp, lastErr
			}
			if attempt == policy.MaxAttempts-1 {
				break
			}
			delay := policy.backoff(attempt)
			if mem != nil {
				if d, ok := retryAfterDelay(*mem); ok {
					delay = d
				}
			}
			select {
			case <-ctx.Done():
				return Response{}, NewIoError("retry", req.Host(), ctx.Err())
			case <-time.After(delay):
			}
		}
		return Response{}, NewTooManyRetriesError(req.Host(), policy.MaxAttempts, lastErr)
	})
}
