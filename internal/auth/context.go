// file: internal/auth/context.go
package auth

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Context owns the backend auth token for this process. Lifecycle:
// Init loads whatever the store persisted, Set replaces the token on
// login, Clear drops it on logout or when verification fails. It is
// the single TokenSource handed to the API client, replacing the
// global mutable token the original client kept.
type Context struct {
	mu     sync.RWMutex
	token  string
	store  TokenStore
	logger *zap.Logger
}

// NewContext creates an auth context backed by the given store.
func NewContext(store TokenStore, logger *zap.Logger) *Context {
	return &Context{store: store, logger: logger}
}

// Init loads the persisted token, if any. Safe to call with an empty
// store; a load failure just means starting unauthenticated.
func (c *Context) Init() {
	token, err := c.store.Load()
	if err != nil {
		c.logger.Warn("Failed to load persisted auth token", zap.Error(err))
		return
	}
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	if token != "" {
		c.logger.Info("Restored persisted auth token")
	}
}

// Token returns the current token ("" when unauthenticated).
func (c *Context) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Set replaces the token and persists it.
func (c *Context) Set(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	if err := c.store.Save(token); err != nil {
		c.logger.Warn("Failed to persist auth token", zap.Error(err))
	}
}

// Clear drops the token and removes it from the store.
func (c *Context) Clear() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
	if err := c.store.Clear(); err != nil {
		c.logger.Warn("Failed to clear persisted auth token", zap.Error(err))
	}
}

// IsAuthenticated reports whether a token is present.
func (c *Context) IsAuthenticated() bool {
	return c.Token() != ""
}

// LikelyExpired inspects the token's exp claim locally without
// verifying the signature (the backend owns the signing key). It is a
// cheap pre-check before a round trip to the verify endpoint; a token
// that does not parse as a JWT is reported as not expired and left for
// the backend to judge.
func (c *Context) LikelyExpired() bool {
	token := c.Token()
	if token == "" {
		return false
	}
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
