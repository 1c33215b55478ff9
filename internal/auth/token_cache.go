// internal/auth/token_cache.go

// Package auth caches carrier bearer tokens per (carrier, account). The cache
// is an injected object scoped to the engine's lifetime, never package-global,
// and is the only mutable state shared between concurrent quote calls.
package auth

import (
	"context"
	"sync"
	"time"

	"rate-engine/internal/common/metrics"
)

// Key identifies one cached token.
type Key struct {
	Carrier   string
	AccountID string
}

// Token is a bearer token with its expiry.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// RefreshFunc performs a fresh authentication call against a carrier.
type RefreshFunc func(ctx context.Context) (Token, error)

type refreshCall struct {
	done  chan struct{}
	token Token
	err   error
}

// TokenCache holds tokens until expiry and collapses concurrent refreshes for
// the same key into one authentication call. Refresh failures are returned,
// never cached; the next miss re-attempts authentication.
type TokenCache struct {
	mu       sync.Mutex
	tokens   map[Key]Token
	inflight map[Key]*refreshCall
	skew     time.Duration
	now      func() time.Time
}

func NewTokenCache() *TokenCache {
	return &TokenCache{
		tokens:   make(map[Key]Token),
		inflight: make(map[Key]*refreshCall),
		skew:     30 * time.Second,
		now:      time.Now,
	}
}

// GetOrRefresh returns a cached unexpired token for key, or runs refresh to
// obtain one. Concurrent callers missing on the same key wait for the single
// in-flight refresh instead of issuing their own.
func (c *TokenCache) GetOrRefresh(ctx context.Context, key Key, refresh RefreshFunc) (string, error) {
	c.mu.Lock()

	if tok, ok := c.tokens[key]; ok && tok.ExpiresAt.After(c.now().Add(c.skew)) {
		c.mu.Unlock()
		return tok.Value, nil
	}

	if call, ok := c.inflight[key]; ok {
		c.mu.Unlock()
		select {
		case <-call.done:
			return call.token.Value, call.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	call := &refreshCall{done: make(chan struct{})}
	c.inflight[key] = call
	c.mu.Unlock()

	tok, err := refresh(ctx)

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	metrics.TokenRefreshesTotal.WithLabelValues(key.Carrier, outcome).Inc()

	c.mu.Lock()
	if err == nil {
		c.tokens[key] = tok
	}
	delete(c.inflight, key)
	c.mu.Unlock()

	call.token = tok
	call.err = err
	close(call.done)

	return tok.Value, err
}

// Invalidate drops the cached token for key, forcing the next call to
// re-authenticate. Used after a carrier rejects a token mid-lifetime.
func (c *TokenCache) Invalidate(key Key) {
	c.mu.Lock()
	delete(c.tokens, key)
	c.mu.Unlock()
}
