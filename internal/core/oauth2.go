package core

import (
	"context"
	"sync"
	"time"
)

// Token is an OAuth2 access token the middleware injects as a bearer
// credential and refreshes on expiry or rejection.
type Token struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Expired reports whether the token is past its expiry. A token with no
// expiry set never expires.
func (t Token) Expired(now time.Time) bool {
	if t.ExpiresAt.IsZero() {
		return false
	}
	return !now.Before(t.ExpiresAt)
}

// TokenSource obtains a fresh token, either via the initial grant (Initiate)
// or by exchanging a refresh token (Exchange). Implementations talk to the
// authorization server; the middleware only calls these two methods.
type TokenSource interface {
	// Initiate performs the initial token acquisition.
	Initiate(ctx context.Context) (Token, error)
	// Exchange refreshes current into a new token.
	Exchange(ctx context.Context, current Token) (Token, error)
}

// OAuth2Middleware injects a bearer token into every request and refreshes
// it exactly once per 401 response before replaying the request exactly
// once. A single mutex serializes refreshes: concurrent requests that all
// hit 401 at once still only trigger one call to Exchange, and the rest
// wait for it and reuse the result, rather than each kicking off its own
// refresh against the authorization server.
type OAuth2Middleware struct {
	source TokenSource
	mu     sync.Mutex
	token  *Token
}

// NewOAuth2Middleware builds a middleware with no token yet acquired; the
// first request triggers Initiate.
func NewOAuth2Middleware(source TokenSource) *OAuth2Middleware {
	return &OAuth2Middleware{source: source}
}

func (m *OAuth2Middleware) currentToken(ctx context.Context) (Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token != nil && !m.token.Expired(time.Now()) {
		return *m.token, nil
	}
	var tok Token
	var err error
	if m.token == nil {
		tok, err = m.source.Initiate(ctx)
	} else {
		tok, err = m.source.Exchange(ctx, *m.token)
	}
	if err != nil {
		return Token{}, NewConnectionError("oauth2", "", err)
	}
	m.token = &tok
	return tok, nil
}

// refresh forces a new token via Exchange, used when a 401 indicates the
// cached token (even if unexpired by clock) was rejected by the server.
// Only one concurrent caller actually exchanges; others block on the mutex
// and then observe the token a sibling call already refreshed.
func (m *OAuth2Middleware) refresh(ctx context.Context, rejected Token) (Token, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token != nil && m.token.AccessToken != rejected.AccessToken {
		// Another caller already refreshed past the token we were rejected
		// on; use its result instead of refreshing again.
		return *m.token, nil
	}
	tok, err := m.source.Exchange(ctx, rejected)
	if err != nil {
		return Token{}, NewConnectionError("oauth2.refresh", "", err)
	}
	m.token = &tok
	return tok, nil
}

func injectBearer(req InMemoryRequest, tok Token) InMemoryRequest {
	clone := req.Clone()
	if clone.Headers == nil {
		clone.Headers = make(map[string][]string)
	}
	clone.Headers.Set("Authorization", "Bearer "+tok.AccessToken)
	return clone
}

// Handle implements Middleware.
func (m *OAuth2Middleware) Handle(ctx context.Context, req InMemoryRequest, next Next) (Response, error) {
	tok, err := m.currentToken(ctx)
	if err != nil {
		return Response{}, err
	}
	resp, err := next.Run(ctx, injectBearer(req, tok))
	if err != nil {
		return resp, err
	}
	mem, merr := resp.InMemory()
	if merr != nil {
		return Response{}, NewDecodeError("oauth2", req.Host(), merr)
	}
	if mem.StatusCode != 401 {
		return ResponseFromInMemory(mem), nil
	}
	refreshed, err := m.refresh(ctx, tok)
	if err != nil {
		return Response{}, err
	}
	// Replay exactly once against the refreshed token; a second 401 is
	// returned to the caller as-is rather than looping.
	return next.Run(ctx, injectBearer(req, refreshed))
}
