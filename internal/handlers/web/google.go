// file: internal/handlers/web/google.go
package web

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

const oauthStateCookie = "oauth_state"

type googleUserInfo struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// GoogleLogin starts the Google OAuth flow: a random state value is
// stored in a short-lived cookie and the user is sent to Google's
// consent page.
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	if h.googleOAuth == nil {
		h.RenderErrorPage(w, r, http.StatusNotFound, "Google sign-in is not configured.")
		return
	}

	state, err := randomState()
	if err != nil {
		h.RenderErrorPage(w, r, http.StatusInternalServerError, "Could not start Google sign-in.")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		Expires:  time.Now().Add(10 * time.Minute),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   r.TLS != nil,
	})

	http.Redirect(w, r, h.googleOAuth.AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// GoogleCallback completes the flow: the state cookie is checked, the
// code is exchanged for tokens, and the Google identity is handed to
// the backend to mint a session.
func (h *Handler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.googleOAuth == nil {
		h.NotFound(w, r)
		return
	}

	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		h.RenderErrorPage(w, r, http.StatusBadRequest, "Sign-in session expired. Please try again.")
		return
	}
	http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Value: "", Path: "/", MaxAge: -1})

	code := r.URL.Query().Get("code")
	if code == "" {
		h.RenderErrorPage(w, r, http.StatusBadRequest, "Google did not return an authorization code.")
		return
	}

	token, err := h.googleOAuth.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("OAuth code exchange failed", zap.Error(err))
		h.RenderErrorPage(w, r, http.StatusBadGateway, "Could not complete Google sign-in.")
		return
	}

	info, err := h.fetchGoogleUserInfo(r.Context(), token)
	if err != nil {
		h.logger.Error("Google user info fetch failed", zap.Error(err))
		h.RenderErrorPage(w, r, http.StatusBadGateway, "Could not read your Google profile.")
		return
	}

	idToken, _ := token.Extra("id_token").(string)
	if _, err := h.auth.SignInWithGoogle(r.Context(), idToken, info.Email, info.Name); err != nil {
		h.builder.WriteError(w, r, err)
		return
	}

	h.logger.Info("Google sign-in completed", zap.String("email", info.Email))
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) fetchGoogleUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := h.googleOAuth.Client(ctx, token)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		return nil, fmt.Errorf("user info request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info request: status %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	return &info, nil
}

func randomState() (string, error) {
	raw := make([]byte, 24)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
