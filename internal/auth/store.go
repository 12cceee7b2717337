// file: internal/auth/store.go
package auth

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/c5551051011/insidelab-frontend/internal/cache"
)

// TokenStore persists the auth token across restarts. One key, one
// value; the equivalent of the original client's localStorage entry.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

const tokenKey = "auth_token"

// ===============================
// FILE STORE
// ===============================

// FileStore keeps the token in a file with owner-only permissions.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed token store at path. The parent
// directory is created if needed.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create token dir: %w", err)
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func (s *FileStore) Save(token string) error {
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	return nil
}

func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove token file: %w", err)
	}
	return nil
}

// ===============================
// CACHE STORE
// ===============================

// CacheStore keeps the token in the shared cache, which survives
// restarts when the cache provider is Redis.
type CacheStore struct {
	cache cache.Cache
	ttl   time.Duration
}

// NewCacheStore creates a cache-backed token store. A zero ttl stores
// the token without expiry.
func NewCacheStore(c cache.Cache, ttl time.Duration) *CacheStore {
	return &CacheStore{cache: c, ttl: ttl}
}

func (s *CacheStore) Load() (string, error) {
	value, ok := s.cache.Get(context.Background(), tokenKey)
	if !ok {
		return "", nil
	}
	token, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("unexpected token type %T in cache", value)
	}
	return token, nil
}

func (s *CacheStore) Save(token string) error {
	return s.cache.Set(context.Background(), tokenKey, token, s.ttl)
}

func (s *CacheStore) Clear() error {
	return s.cache.Delete(context.Background(), tokenKey)
}
