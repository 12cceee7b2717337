// file: internal/handlers/web/auth.go
package web

import (
	"encoding/json"
	"net/http"

	"github.com/c5551051011/insidelab-frontend/internal/services"
	"github.com/c5551051011/insidelab-frontend/internal/validation"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Next     string `json:"next"`
}

// Login handles the sign-in form submission.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if fields := validation.FieldMessages(validation.ValidateStruct(&req)); fields != nil {
		h.builder.WriteValidationError(w, r, "Please fix the highlighted fields.", fields)
		return
	}

	result, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.builder.WriteError(w, r, err)
		return
	}

	h.logger.Info("User logged in", zap.String("email", req.Email))
	h.builder.WriteSuccess(w, r, map[string]interface{}{
		"user":     result.User,
		"redirect": safeNext(req.Next),
	})
}

// Register handles the sign-up form submission.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterData
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if fields := validation.FieldMessages(validation.ValidateStruct(&req)); fields != nil {
		h.builder.WriteValidationError(w, r, "Please fix the highlighted fields.", fields)
		return
	}

	user, err := h.auth.Register(r.Context(), req)
	if err != nil {
		h.builder.WriteError(w, r, err)
		return
	}

	// Queue the verification mail; registration already succeeded.
	if err := h.auth.SendVerificationEmail(r.Context(), req.Email); err != nil {
		h.logger.Warn("Verification email failed", zap.String("email", req.Email), zap.Error(err))
	}

	h.logger.Info("User registered", zap.String("email", req.Email))
	h.builder.WriteCreated(w, r, map[string]interface{}{
		"user":     user,
		"redirect": "/sign-in",
	})
}

// Logout clears the session and sends the user home.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ResendVerification re-sends the verification email.
func (h *Handler) ResendVerification(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email" validate:"required,email"`
	}
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if fields := validation.FieldMessages(validation.ValidateStruct(&req)); fields != nil {
		h.builder.WriteValidationError(w, r, "Please enter a valid email address.", fields)
		return
	}
	if err := h.auth.SendVerificationEmail(r.Context(), req.Email); err != nil {
		h.builder.WriteError(w, r, err)
		return
	}
	h.builder.WriteSuccess(w, r, map[string]string{"status": "sent"})
}

func (h *Handler) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := decoder.Decode(dst); err != nil {
		h.builder.WriteError(w, r, services.NewValidationError("Invalid request body.", nil))
		return false
	}
	return true
}
