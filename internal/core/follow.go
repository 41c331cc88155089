package core

import (
	"context"
	"net/url"
)

// MaxRedirects is the hop bound Follow enforces before giving up.
const MaxRedirects = 10

func isRedirectStatus(code int) bool {
	switch code {
	case 301, 302, 303, 307, 308:
		return true
	default:
		return false
	}
}

// mergeLocation resolves a Location header against the previous request's
// URL, inheriting scheme and authority when Location is relative - exactly
// how url.URL.ResolveReference behaves, which is what this wraps.
func mergeLocation(prev *url.URL, location string) (*url.URL, error) {
	loc, err := url.Parse(location)
	if err != nil {
		return nil, err
	}
	if prev == nil {
		return loc, nil
	}
	return prev.ResolveReference(loc), nil
}

// FollowMiddleware follows 3xx redirects up to MaxRedirects hops. Unlike
// many HTTP clients it never rewrites the method on redirect (no 301/302
// GET-downgrade): the same method is replayed against the new location,
// since the pipeline has no notion of browser-compatibility quirks.
func FollowMiddleware() Middleware {
	return MiddlewareFunc(func(ctx context.Context, req InMemoryRequest, next Next) (Response, error) {
		current := req
		for hop := 0; ; hop++ {
			resp, err := next.Run(ctx, current.Clone())
			if err != nil {
				return resp, err
			}
			mem, merr := resp.InMemory()
			if merr != nil {
				return Response{}, NewDecodeError("follow", current.Host(), merr)
			}
			if !isRedirectStatus(mem.StatusCode) {
				return ResponseFromInMemory(mem), nil
			}
			if hop >= MaxRedirects {
				return Response{}, NewTooManyRedirectsError(current.Host(), MaxRedirects)
			}
			location := mem.Headers.Get("Location")
			if location == "" {
				return ResponseFromInMemory(mem), nil
			}
			resolved, err := mergeLocation(current.URL, location)
			if err != nil {
				return Response{}, NewDecodeError("follow", current.Host(), err)
			}
			current = current.Clone()
			current.URL = resolved
		}
	})
}
