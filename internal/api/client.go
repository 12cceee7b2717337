// file: internal/api/client.go
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// TokenSource supplies the bearer token attached to authenticated
// requests. An empty string means no token is available; the request
// is then sent without an Authorization header and the backend decides.
type TokenSource interface {
	Token() string
}

// Config holds API client configuration.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	MaxRetries     int
}

// DefaultConfig returns the client defaults for the hosted backend.
func DefaultConfig() Config {
	return Config{
		BaseURL:        "https://insidelab.up.railway.app/api/v1",
		RequestTimeout: 15 * time.Second,
		MaxRetries:     2,
	}
}

// Client is the HTTP client for the insidelab backend. It attaches
// JSON headers, optionally a bearer token, retries transport-level
// failures with exponential backoff, and converts non-2xx responses
// into *Error values. It never interprets status codes; that is the
// calling service's job.
type Client struct {
	config Config
	http   *http.Client
	tokens TokenSource
	logger *zap.Logger
}

// NewClient creates an API client.
func NewClient(cfg Config, tokens TokenSource, logger *zap.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultConfig().BaseURL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultConfig().RequestTimeout
	}
	return &Client{
		config: cfg,
		http:   &http.Client{Timeout: cfg.RequestTimeout},
		tokens: tokens,
		logger: logger,
	}
}

// Get performs a GET request against the backend.
func (c *Client) Get(ctx context.Context, path string, requireAuth bool) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil, requireAuth)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body interface{}, requireAuth bool) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body, requireAuth)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body interface{}, requireAuth bool) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, body, requireAuth)
}

// Delete performs a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, requireAuth bool) ([]byte, error) {
	return c.do(ctx, http.MethodDelete, path, nil, requireAuth)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}, requireAuth bool) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	start := time.Now()
	var respBody []byte
	var status int

	operation := func() error {
		var req *http.Request
		var err error
		if payload != nil {
			req, err = http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, bytes.NewReader(payload))
		} else {
			req, err = http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, nil)
		}
		if err != nil {
			return backoff.Permanent(err)
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "application/json")
		if requireAuth {
			if token := c.tokens.Token(); token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
		}

		resp, err := c.http.Do(req)
		if err != nil {
			// Transport failures are the only thing worth retrying.
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		defer resp.Body.Close()

		status = resp.StatusCode
		respBody, err = io.ReadAll(resp.Body)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("read response body: %w", err))
		}
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	err := backoff.RetryNotify(
		operation,
		backoff.WithMaxRetries(b, uint64(c.config.MaxRetries)),
		func(err error, d time.Duration) {
			c.logger.Warn("Request attempt failed",
				zap.String("method", method),
				zap.String("path", path),
				zap.Error(err),
				zap.Duration("backoff", d))
		},
	)
	if err != nil {
		c.logger.Error("Request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err))
		return nil, &Error{StatusCode: 0, Body: err.Error()}
	}

	c.logger.Debug("Request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", status),
		zap.Duration("duration", time.Since(start)))

	if status < 200 || status > 299 {
		return nil, &Error{StatusCode: status, Body: string(respBody)}
	}
	return respBody, nil
}
