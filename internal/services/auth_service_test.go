// file: internal/services/auth_service_test.go
package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/c5551051011/insidelab-frontend/internal/api"
	"github.com/c5551051011/insidelab-frontend/internal/auth"
	"github.com/c5551051011/insidelab-frontend/internal/cache"
)

// testEnv wires a real API client against an httptest backend, a
// memory cache and a file-backed auth context in a temp dir.
type testEnv struct {
	client  *api.Client
	cache   cache.Cache
	authCtx *auth.Context
	logger  *zap.Logger
}

func newTestEnv(t *testing.T, handler http.Handler) *testEnv {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	logger := zap.NewNop()
	store, err := auth.NewFileStore(filepath.Join(t.TempDir(), "token"))
	require.NoError(t, err)
	authCtx := auth.NewContext(store, logger)
	authCtx.Init()

	c := cache.NewMemoryCache(cache.DefaultConfig(), logger)
	t.Cleanup(func() { c.Close() })

	return &testEnv{
		client:  api.NewClient(api.Config{BaseURL: srv.URL, MaxRetries: 0}, authCtx, logger),
		cache:   c,
		authCtx: authCtx,
		logger:  logger,
	}
}

func serviceErr(t *testing.T, err error) *ServiceError {
	t.Helper()
	require.Error(t, err)
	svcErr, ok := err.(*ServiceError)
	require.True(t, ok, "expected *ServiceError, got %T", err)
	return svcErr
}

func TestLoginPersistsToken(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"access key", `{"access": "tok-1", "user": {"id": "1", "email": "a@b.edu"}}`},
		{"access_token key", `{"access_token": "tok-1"}`},
		{"token key", `{"token": "tok-1"}`},
		{"jwt key", `{"jwt": "tok-1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/auth/login/", r.URL.Path)
				w.Write([]byte(tt.body))
			}))
			svc := NewAuthService(env.client, env.authCtx, env.logger)

			result, err := svc.Login(context.Background(), "a@b.edu", "hunter22")
			require.NoError(t, err)
			assert.Equal(t, "tok-1", result.Access)
			assert.Equal(t, "tok-1", env.authCtx.Token())
			assert.True(t, env.authCtx.IsAuthenticated())
		})
	}
}

func TestLoginWithoutTokenFails(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "ok"}`))
	}))
	svc := NewAuthService(env.client, env.authCtx, env.logger)

	_, err := svc.Login(context.Background(), "a@b.edu", "hunter22")
	svcErr := serviceErr(t, err)
	assert.Equal(t, "INTERNAL_ERROR", svcErr.Type)
	assert.False(t, env.authCtx.IsAuthenticated())
}

func TestLoginInvalidCredentials(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail": "invalid"}`))
	}))
	svc := NewAuthService(env.client, env.authCtx, env.logger)

	_, err := svc.Login(context.Background(), "a@b.edu", "wrong")
	svcErr := serviceErr(t, err)
	assert.Equal(t, "UNAUTHORIZED", svcErr.Type)
	assert.Equal(t, "Invalid email or password.", svcErr.Message)
	assert.Equal(t, http.StatusUnauthorized, svcErr.GetStatusCode())
}

func TestRegisterFieldErrors(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"email": ["user with this email already exists."], "password": ["too short"]}`))
	}))
	svc := NewAuthService(env.client, env.authCtx, env.logger)

	_, err := svc.Register(context.Background(), RegisterData{
		Email: "a@b.edu", Password: "pw", Name: "A",
	})
	svcErr := serviceErr(t, err)
	assert.Equal(t, "VALIDATION_ERROR", svcErr.Type)
	assert.Equal(t, "user with this email already exists.", svcErr.Fields["email"])
	assert.Equal(t, "too short", svcErr.Fields["password"])
}

func TestRegisterConflict(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	svc := NewAuthService(env.client, env.authCtx, env.logger)

	_, err := svc.Register(context.Background(), RegisterData{
		Email: "a@b.edu", Password: "password1", Name: "A",
	})
	svcErr := serviceErr(t, err)
	assert.Equal(t, "CONFLICT", svcErr.Type)
	assert.Equal(t, "EMAIL_TAKEN", svcErr.Code)
}

func TestRegisterSuccess(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/register/", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "9", "email": "a@b.edu"}`))
	}))
	svc := NewAuthService(env.client, env.authCtx, env.logger)

	raw, err := svc.Register(context.Background(), RegisterData{
		Email: "a@b.edu", Password: "password1", Name: "A",
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": "9", "email": "a@b.edu"}`, string(raw))
}

func TestLogoutClearsToken(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	env.authCtx.Set("tok-1")
	svc := NewAuthService(env.client, env.authCtx, env.logger)

	svc.Logout(context.Background())
	assert.False(t, env.authCtx.IsAuthenticated())
}

func TestVerifyTokenClearsOnRejection(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer stale-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
	}))
	env.authCtx.Set("stale-token")
	svc := NewAuthService(env.client, env.authCtx, env.logger)

	assert.False(t, svc.VerifyToken(context.Background()))
	assert.False(t, env.authCtx.IsAuthenticated())
}

func TestVerifyTokenKeepsValidToken(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"valid": true}`))
	}))
	env.authCtx.Set("good-token")
	svc := NewAuthService(env.client, env.authCtx, env.logger)

	assert.True(t, svc.VerifyToken(context.Background()))
	assert.Equal(t, "good-token", env.authCtx.Token())
}

func TestVerifyTokenUnauthenticatedShortCircuits(t *testing.T) {
	called := false
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	svc := NewAuthService(env.client, env.authCtx, env.logger)

	assert.False(t, svc.VerifyToken(context.Background()))
	assert.False(t, called)
}

func TestCurrentUserBestEffort(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	svc := NewAuthService(env.client, env.authCtx, env.logger)

	assert.Nil(t, svc.CurrentUser(context.Background()))
}

func TestCurrentUserDecodes(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": "7", "email": "a@b.edu", "name": "Ada", "is_verified": true}`))
	}))
	env.authCtx.Set("tok")
	svc := NewAuthService(env.client, env.authCtx, env.logger)

	user := svc.CurrentUser(context.Background())
	require.NotNil(t, user)
	assert.Equal(t, "a@b.edu", user.Email)
	assert.Equal(t, "Ada", user.Name)
	assert.True(t, user.IsVerified)
}

func TestSignInWithGoogle(t *testing.T) {
	env := newTestEnv(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/google/", r.URL.Path)
		w.Write([]byte(`{"access": "google-tok", "user": {"email": "a@b.edu"}}`))
	}))
	svc := NewAuthService(env.client, env.authCtx, env.logger)

	result, err := svc.SignInWithGoogle(context.Background(), "id-token", "a@b.edu", "Ada")
	require.NoError(t, err)
	assert.Equal(t, "google-tok", result.Access)
	assert.Equal(t, "google-tok", env.authCtx.Token())
}
