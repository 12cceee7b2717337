// file: internal/handlers/web/handlers.go
package web

import (
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/c5551051011/insidelab-frontend/internal/auth"
	"github.com/c5551051011/insidelab-frontend/internal/models"
	"github.com/c5551051011/insidelab-frontend/internal/response"
	"github.com/c5551051011/insidelab-frontend/internal/services"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// Handler serves the site's pages and JSON endpoints.
type Handler struct {
	auth         *services.AuthService
	universities *services.UniversityService
	reviews      *services.ReviewService
	search       *services.SearchService
	authCtx      *auth.Context
	builder      *response.Builder
	logger       *zap.Logger
	templates    *template.Template
	googleOAuth  *oauth2.Config
}

// NewHandler wires the page handlers to their services. googleOAuth
// may be nil when Google sign-in is not configured.
func NewHandler(
	authService *services.AuthService,
	universityService *services.UniversityService,
	reviewService *services.ReviewService,
	searchService *services.SearchService,
	authCtx *auth.Context,
	builder *response.Builder,
	googleOAuth *oauth2.Config,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		auth:         authService,
		universities: universityService,
		reviews:      reviewService,
		search:       searchService,
		authCtx:      authCtx,
		builder:      builder,
		googleOAuth:  googleOAuth,
		logger:       logger,
	}
}

// InitTemplates parses the page templates under templateDir.
func (h *Handler) InitTemplates(templateDir string) error {
	funcMap := template.FuncMap{
		"toLower": strings.ToLower,
		"toUpper": strings.ToUpper,
		"join": func(items []string, sep string) string {
			return strings.Join(items, sep)
		},
		"formatRating": func(rating float64) string {
			lab := models.Lab{OverallRating: rating}
			return lab.FormattedRating(1)
		},
		"formatTime": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"truncate": func(s string, length int) string {
			if len(s) <= length {
				return s
			}
			return s[:length] + "..."
		},
	}

	templates, err := template.New("").Funcs(funcMap).ParseGlob(filepath.Join(templateDir, "*.html"))
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	h.templates = templates
	return nil
}

// PageData is the payload every page template receives.
type PageData struct {
	Title      string
	IsLoggedIn bool
	User       *models.User
	Data       interface{}
	Error      string
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data *PageData) {
	data.IsLoggedIn = h.authCtx.IsAuthenticated()
	if data.IsLoggedIn && data.User == nil {
		data.User = h.auth.CurrentUser(r.Context())
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("Failed to render template",
			zap.String("template", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// RenderErrorPage renders the error template with the given status.
func (h *Handler) RenderErrorPage(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	data := &PageData{
		Title:      fmt.Sprintf("%d %s", status, http.StatusText(status)),
		IsLoggedIn: h.authCtx.IsAuthenticated(),
		Error:      message,
	}
	if err := h.templates.ExecuteTemplate(w, "error.html", data); err != nil {
		h.logger.Error("Failed to render error template", zap.Error(err))
		http.Error(w, message, status)
	}
}

// NotFound renders the 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.RenderErrorPage(w, r, http.StatusNotFound, fmt.Sprintf("Page not found: %s", r.URL.Path))
}
