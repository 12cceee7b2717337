// file: internal/handlers/web/pages.go
package web

import (
	"net/http"
	"strconv"

	"github.com/c5551051011/insidelab-frontend/internal/models"
	"github.com/c5551051011/insidelab-frontend/internal/search"
	"go.uber.org/zap"
)

// HomePage renders the landing page with the featured labs.
func (h *Handler) HomePage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		h.NotFound(w, r)
		return
	}

	result, err := h.search.SearchLabs(r.Context(), "", models.NewSearchFilter(), 1, 6)
	if err != nil {
		h.logger.Warn("Featured labs unavailable", zap.Error(err))
		result = &search.Result{}
	}

	h.render(w, r, "home.html", &PageData{
		Title: "InsideLab",
		Data: map[string]interface{}{
			"FeaturedLabs": result.Results,
			"Degraded":     result.Degraded,
		},
	})
}

// SignInPage renders the sign-in form. A `next` query parameter is
// carried through so login can return the user where they started.
func (h *Handler) SignInPage(w http.ResponseWriter, r *http.Request) {
	if h.authCtx.IsAuthenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.render(w, r, "sign_in.html", &PageData{
		Title: "Sign In",
		Data: map[string]interface{}{
			"Next":         safeNext(r.URL.Query().Get("next")),
			"GoogleSignIn": h.googleOAuth != nil,
		},
	})
}

// SignUpPage renders the registration form with the position options.
func (h *Handler) SignUpPage(w http.ResponseWriter, r *http.Request) {
	if h.authCtx.IsAuthenticated() {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	universities := h.universities.SearchUniversities(r.Context(), "")
	h.render(w, r, "sign_up.html", &PageData{
		Title: "Sign Up",
		Data: map[string]interface{}{
			"Universities": universities,
			"Positions":    models.PositionOptions,
		},
	})
}

// SearchPage renders the lab search page. Query parameters select the
// initial query, filter, sort and page so results are shareable links.
func (h *Handler) SearchPage(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := params.Get("q")
	filter := models.FilterFromQueryParams(params)
	page := intParam(params.Get("page"), 1)

	result, err := h.search.SearchLabs(r.Context(), query, filter, page, search.DefaultPageSize)
	pageData := map[string]interface{}{
		"Query":         query,
		"Filter":        filter,
		"FilterOptions": search.DefaultFilterOptions(),
		"Intent":        search.InfoFor(search.DetectIntent(query)),
	}
	if err != nil {
		h.logger.Warn("Search page query failed", zap.String("query", query), zap.Error(err))
		pageData["Error"] = "Failed to search labs. Please try again."
		pageData["Result"] = &search.Result{Page: 1}
	} else {
		pageData["Result"] = result
	}

	h.render(w, r, "search.html", &PageData{Title: "Search Labs", Data: pageData})
}

// WriteReviewPage renders the review form with its cascade options and
// rating categories preloaded.
func (h *Handler) WriteReviewPage(w http.ResponseWriter, r *http.Request) {
	universities, err := h.universities.AllUniversities(r.Context(), "")
	if err != nil {
		h.RenderErrorPage(w, r, http.StatusBadGateway, "Could not load universities. Please try again.")
		return
	}
	categories, err := h.reviews.RatingCategories(r.Context())
	if err != nil {
		h.RenderErrorPage(w, r, http.StatusBadGateway, "Could not load rating categories. Please try again.")
		return
	}

	cascade := models.ReviewCascade{Universities: universities.Universities}
	h.render(w, r, "write_review.html", &PageData{
		Title: "Write a Review",
		Data: map[string]interface{}{
			"Cascade":    cascade,
			"Categories": categories.Categories,
			"Positions":  models.PositionOptions,
			"Durations":  models.DurationOptions,
			"Degraded":   universities.Degraded || categories.Degraded,
		},
	})
}

// safeNext keeps post-login redirects on-site.
func safeNext(next string) string {
	if next == "" || next[0] != '/' || (len(next) > 1 && next[1] == '/') {
		return "/"
	}
	return next
}

func intParam(raw string, fallback int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
