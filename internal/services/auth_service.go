// file: internal/services/auth_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/c5551051011/insidelab-frontend/internal/api"
	"github.com/c5551051011/insidelab-frontend/internal/auth"
	"github.com/c5551051011/insidelab-frontend/internal/models"
	"go.uber.org/zap"
)

// tokenKeys are the response fields a login token has been observed
// under, in acceptance order. First non-empty wins.
var tokenKeys = []string{"access", "access_token", "token", "jwt", "auth_token"}

// LoginResult is the outcome of a successful login.
type LoginResult struct {
	Access string          `json:"access"`
	User   json.RawMessage `json:"user"`
}

// RegisterData is the sign-up payload forwarded to the backend.
type RegisterData struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=8"`
	Name       string `json:"name" validate:"required"`
	University string `json:"university,omitempty"`
	Department string `json:"department,omitempty"`
	Position   string `json:"position,omitempty"`
}

// AuthService handles authentication against the backend and owns the
// side effects on the auth context.
type AuthService struct {
	client  *api.Client
	authCtx *auth.Context
	logger  *zap.Logger
}

// NewAuthService creates an auth service.
func NewAuthService(client *api.Client, authCtx *auth.Context, logger *zap.Logger) *AuthService {
	return &AuthService{client: client, authCtx: authCtx, logger: logger}
}

// Login posts credentials and persists the returned token. The token
// is accepted from any of the known response shapes; if none carries
// one the login fails even on a 2xx response.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body, err := s.client.Post(ctx, "/auth/login/", map[string]string{
		"email":    email,
		"password": password,
	}, false)
	if err != nil {
		return nil, s.mapAuthError(err, "log in")
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, NewInternalError("unexpected login response", err)
	}

	var accessToken string
	for _, key := range tokenKeys {
		raw, ok := payload[key]
		if !ok {
			continue
		}
		var token string
		if err := json.Unmarshal(raw, &token); err == nil && token != "" {
			accessToken = token
			break
		}
	}
	if accessToken == "" {
		s.logger.Error("Login response carried no access token")
		return nil, NewInternalError("no access token received from server", nil)
	}

	user := payload["user"]
	if user == nil {
		user = payload["data"]
	}
	if user == nil {
		user = json.RawMessage(body)
	}

	s.authCtx.Set(accessToken)
	s.logger.Info("Login succeeded", zap.String("email", email))

	return &LoginResult{Access: accessToken, User: user}, nil
}

// Register posts the sign-up payload and returns the raw response;
// the caller interprets per-field validation errors.
func (s *AuthService) Register(ctx context.Context, data RegisterData) (json.RawMessage, error) {
	body, err := s.client.Post(ctx, "/auth/register/", data, false)
	if err != nil {
		switch api.StatusOf(err) {
		case 0:
			return nil, NewNetworkError("Could not reach the server. Please try again.", err)
		case 400:
			fields := parseFieldErrors(api.BodyOf(err), registerFieldKeys)
			if len(fields) > 0 {
				return nil, NewValidationError("Please fix the highlighted fields.", fields)
			}
			return nil, NewValidationError("Invalid registration data. Please check all fields.", nil)
		case 409:
			return nil, NewConflictError("An account with this email already exists.", "EMAIL_TAKEN")
		}
		return nil, NewInternalError("Failed to create account. Please try again.", err)
	}
	return json.RawMessage(body), nil
}

// Logout clears the persisted token.
func (s *AuthService) Logout(ctx context.Context) {
	s.authCtx.Clear()
	s.logger.Info("Logged out")
}

// CurrentUser fetches the authenticated user. Best effort: any
// failure returns nil rather than an error.
func (s *AuthService) CurrentUser(ctx context.Context) *models.User {
	body, err := s.client.Get(ctx, "/auth/user/", true)
	if err != nil {
		s.logger.Debug("Fetching current user failed", zap.Error(err))
		return nil
	}
	var user models.User
	if err := json.Unmarshal(body, &user); err != nil {
		s.logger.Warn("Unexpected current user payload", zap.Error(err))
		return nil
	}
	return &user
}

// VerifyToken checks the persisted token with the backend. Any failure
// is treated as invalid auth: the token is cleared and false returned.
// A token that is locally past its exp claim skips the round trip.
func (s *AuthService) VerifyToken(ctx context.Context) bool {
	if !s.authCtx.IsAuthenticated() {
		return false
	}
	if s.authCtx.LikelyExpired() {
		s.logger.Info("Persisted token is past its expiry, clearing")
		s.authCtx.Clear()
		return false
	}

	if _, err := s.client.Get(ctx, "/auth/verify-token/", true); err != nil {
		s.logger.Info("Token verification failed, clearing token", zap.Error(err))
		s.authCtx.Clear()
		return false
	}
	return true
}

// SendVerificationEmail asks the backend to send a verification email.
func (s *AuthService) SendVerificationEmail(ctx context.Context, email string) error {
	if _, err := s.client.Post(ctx, "/auth/send-verification/", map[string]string{"email": email}, false); err != nil {
		return s.mapAuthError(err, "send the verification email")
	}
	return nil
}

// SignInWithGoogle exchanges a Google ID token for a backend session.
func (s *AuthService) SignInWithGoogle(ctx context.Context, idToken, email, displayName string) (*LoginResult, error) {
	body, err := s.client.Post(ctx, "/auth/google/", map[string]string{
		"id_token": idToken,
		"email":    email,
		"name":     displayName,
	}, false)
	if err != nil {
		return nil, s.mapAuthError(err, "sign in with Google")
	}

	var result LoginResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, NewInternalError("unexpected Google sign-in response", err)
	}
	if result.Access != "" {
		s.authCtx.Set(result.Access)
	}
	return &result, nil
}

func (s *AuthService) mapAuthError(err error, action string) error {
	switch api.StatusOf(err) {
	case 0:
		return NewNetworkError("Could not reach the server. Please check your connection.", err)
	case 400:
		return NewValidationError(fmt.Sprintf("Invalid request. Could not %s.", action), nil)
	case 401:
		return NewUnauthorizedError("Invalid email or password.")
	case 403:
		return NewForbiddenError("Your account is not allowed to do that.")
	case 404:
		return NewNotFoundError("Account not found.")
	}
	return NewInternalError(fmt.Sprintf("Failed to %s. Please try again.", action), err)
}
