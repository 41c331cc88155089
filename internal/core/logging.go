package core

import (
	"context"
	"net/url"
	"time"

	"go.uber.org/zap"
)

func urlString(u *url.URL) string {
	if u == nil {
		return ""
	}
	return u.String()
}

// LoggingMiddleware logs each request/response pair at Debug, and errors at
// Warn, using the given zap logger. Headers are sanitized before logging so
// a captured Authorization or Cookie value never lands in a log sink.
func LoggingMiddleware(logger *zap.Logger) Middleware {
	return MiddlewareFunc(func(ctx context.Context, req InMemoryRequest, next Next) (Response, error) {
		start := time.Now()
		sanitized := SanitizeRequest(req)
		url := urlString(sanitized.URL)
		logger.Debug("request",
			zap.String("method", sanitized.Method.String()),
			zap.String("url", url),
		)
		resp, err := next.Run(ctx, req)
		duration := time.Since(start)
		if err != nil {
			logger.Warn("request failed",
				zap.String("method", sanitized.Method.String()),
				zap.String("url", url),
				zap.Duration("duration", duration),
				zap.Error(err),
			)
			return resp, err
		}
		mem, merr := resp.InMemory()
		if merr != nil {
			logger.Warn("response decode failed", zap.Error(merr))
			return Response{}, merr
		}
		logger.Debug("response",
			zap.String("method", sanitized.Method.String()),
			zap.String("url", url),
			zap.Int("status", mem.StatusCode),
			zap.Duration("duration", duration),
		)
		return ResponseFromInMemory(mem), nil
	})
}

// RecoveryMiddleware recovers a panicking middleware or transport and turns
// it into a ProtocolError of kind IoErr, logging the recovered value before
// returning.
func RecoveryMiddleware(logger *zap.Logger) Middleware {
	return MiddlewareFunc(func(ctx context.Context, req InMemoryRequest, next Next) (resp Response, err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered in pipeline",
					zap.Any("recovered", r),
					zap.String("url", urlString(req.URL)),
				)
				err = NewIoError("pipeline.recover", req.Host(), errPanic(r))
			}
		}()
		return next.Run(ctx, req)
	})
}

type panicErr struct{ v any }

func (e panicErr) Error() string { return "panic: " + formatAny(e.v) }

func errPanic(v any) error { return panicErr{v: v} }

func formatAny(v any) string {
	if err, ok := v.(error); ok {
		return err.Error()
	}
	if s, ok := v.(string); ok {
		return s
	}
	return "non-error panic value"
}
