// file: internal/handlers/web/search.go
package web

import (
	"net/http"

	"github.com/c5551051011/insidelab-frontend/internal/models"
	"github.com/c5551051011/insidelab-frontend/internal/search"
)

// Suggestions serves the typeahead dropdown. Short queries return an
// empty list so the client can close the dropdown.
func (h *Handler) Suggestions(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	suggestions := h.search.Suggestions(r.Context(), query)
	h.builder.WriteSuccess(w, r, map[string]interface{}{
		"suggestions": suggestions,
		"intent":      search.InfoFor(search.DetectIntent(query)),
	})
}

// SearchLabs serves a page of filtered, sorted lab results.
func (h *Handler) SearchLabs(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	query := params.Get("q")
	filter := models.FilterFromQueryParams(params)
	page := intParam(params.Get("page"), 1)
	pageSize := intParam(params.Get("page_size"), search.DefaultPageSize)

	result, err := h.search.SearchLabs(r.Context(), query, filter, page, pageSize)
	if err != nil {
		h.builder.WriteError(w, r, err)
		return
	}

	h.builder.WritePaginated(w, r, result.Results,
		result.Page, result.PageSize, result.Total, result.HasMore, result.Degraded)
}

// LabDetail serves a single lab with its review stats.
func (h *Handler) LabDetail(w http.ResponseWriter, r *http.Request) {
	labID := r.PathValue("id")
	lab, err := h.search.LabByID(r.Context(), labID)
	if err != nil {
		h.builder.WriteError(w, r, err)
		return
	}

	stats := h.reviews.LabReviewStats(r.Context(), labID)
	h.builder.WriteSuccess(w, r, map[string]interface{}{
		"lab":   lab,
		"stats": stats,
	})
}
