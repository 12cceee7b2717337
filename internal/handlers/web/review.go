// file: internal/handlers/web/review.go
package web

import (
	"net/http"

	"github.com/c5551051011/insidelab-frontend/internal/models"
	"github.com/c5551051011/insidelab-frontend/internal/search"
	"go.uber.org/zap"
)

// ===============================
// CASCADE OPTION LOADS
// ===============================

// Universities serves the university picker options, optionally
// filtered by a search term.
func (h *Handler) Universities(w http.ResponseWriter, r *http.Request) {
	list, err := h.universities.AllUniversities(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		h.builder.WriteError(w, r, err)
		return
	}
	h.builder.WriteSuccess(w, r, map[string]interface{}{
		"universities": list.Universities,
		"degraded":     list.Degraded,
	})
}

// Departments serves a university's department options.
func (h *Handler) Departments(w http.ResponseWriter, r *http.Request) {
	list, err := h.universities.DepartmentsByUniversity(r.Context(), r.PathValue("id"))
	if err != nil {
		h.builder.WriteError(w, r, err)
		return
	}
	h.builder.WriteSuccess(w, r, map[string]interface{}{
		"departments": list.Departments,
		"degraded":    list.Degraded,
	})
}

// ResearchGroups serves a department's research group options. An
// empty list is a normal outcome; the group level is optional.
func (h *Handler) ResearchGroups(w http.ResponseWriter, r *http.Request) {
	groups := h.reviews.ResearchGroupsByDepartment(r.Context(), r.PathValue("id"))
	h.builder.WriteSuccess(w, r, map[string]interface{}{"researchGroups": groups})
}

// LabOptions serves the scoped, debounce-driven lab search inside the
// review form.
func (h *Handler) LabOptions(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	labs := h.reviews.SearchLabsForReview(r.Context(),
		params.Get("q"),
		params.Get("university"),
		params.Get("department"),
		params.Get("research_group"),
	)
	h.builder.WriteSuccess(w, r, map[string]interface{}{"labs": labs})
}

// RatingCategoryOptions serves the review form's rating categories.
func (h *Handler) RatingCategoryOptions(w http.ResponseWriter, r *http.Request) {
	list, err := h.reviews.RatingCategories(r.Context())
	if err != nil {
		h.builder.WriteError(w, r, err)
		return
	}
	h.builder.WriteSuccess(w, r, map[string]interface{}{
		"categories": list.Categories,
		"degraded":   list.Degraded,
	})
}

// ===============================
// ADD-ENTITY MODALS
// ===============================

// AddUniversity creates a university from the add-entity modal and
// returns it so the form can append and select it without a refetch.
func (h *Handler) AddUniversity(w http.ResponseWriter, r *http.Request) {
	var req models.University
	if !h.decodeJSON(w, r, &req) {
		return
	}
	created, err := h.universities.AddUniversity(r.Context(), req)
	if err != nil {
		h.builder.WriteError(w, r, err)
		return
	}
	h.builder.WriteCreated(w, r, created)
}

// AddDepartment creates a department under a university.
func (h *Handler) AddDepartment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !h.decodeJSON(w, r, &req) {
		return
	}
	created, err := h.universities.AddDepartment(r.Context(), r.PathValue("id"), req.Name)
	if err != nil {
		h.builder.WriteError(w, r, err)
		return
	}
	h.builder.WriteCreated(w, r, created)
}

// AddResearchGroup creates a research group under a department.
func (h *Handler) AddResearchGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !h.decodeJSON(w, r, &req) {
		return
	}
	created, err := h.reviews.AddResearchGroup(r.Context(), r.PathValue("id"), req.Name)
	if err != nil {
		h.builder.WriteError(w, r, err)
		return
	}
	h.builder.WriteCreated(w, r, created)
}

// AddLab creates a lab from the add-entity modal.
func (h *Handler) AddLab(w http.ResponseWriter, r *http.Request) {
	var req map[string]interface{}
	if !h.decodeJSON(w, r, &req) {
		return
	}
	created, err := h.reviews.AddLab(r.Context(), req)
	if err != nil {
		h.builder.WriteError(w, r, err)
		return
	}
	h.builder.WriteCreated(w, r, created)
}

// ===============================
// REVIEWS
// ===============================

// SubmitReview validates the review form and forwards it. Validation
// failures never reach the backend; they come back as field errors.
func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var form models.ReviewFormData
	if !h.decodeJSON(w, r, &form) {
		return
	}

	if result := form.Validate(); !result.IsValid {
		h.builder.WriteValidationError(w, r, "Please fix the highlighted fields.", result.Errors)
		return
	}

	created, err := h.reviews.SubmitReview(r.Context(), form.ToReview())
	if err != nil {
		h.builder.WriteError(w, r, err)
		return
	}

	h.logger.Info("Review submitted", zap.String("lab_id", created.LabID))
	h.builder.WriteCreated(w, r, created)
}

// LabReviews serves a page of a lab's reviews.
func (h *Handler) LabReviews(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	page := intParam(params.Get("page"), 1)
	pageSize := intParam(params.Get("page_size"), search.DefaultPageSize)

	reviews, err := h.reviews.LabReviews(r.Context(), r.PathValue("id"), page, pageSize)
	if err != nil {
		h.builder.WriteError(w, r, err)
		return
	}
	h.builder.WritePaginated(w, r, reviews.Results, reviews.Page, reviews.PageSize, reviews.Count, reviews.HasMore, false)
}

// MyReviews serves the signed-in user's reviews.
func (h *Handler) MyReviews(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	page := intParam(params.Get("page"), 1)
	pageSize := intParam(params.Get("page_size"), search.DefaultPageSize)

	reviews, err := h.reviews.UserReviews(r.Context(), page, pageSize)
	if err != nil {
		h.builder.WriteError(w, r, err)
		return
	}
	h.builder.WritePaginated(w, r, reviews.Results, reviews.Page, reviews.PageSize, reviews.Count, reviews.HasMore, false)
}

// VoteOnReview records a helpfulness vote.
func (h *Handler) VoteOnReview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Helpful bool `json:"helpful"`
	}
	if !h.decodeJSON(w, r, &req) {
		return
	}
	if err := h.reviews.VoteOnReview(r.Context(), r.PathValue("id"), req.Helpful); err != nil {
		h.builder.WriteError(w, r, err)
		return
	}
	h.builder.WriteSuccess(w, r, map[string]string{"status": "voted"})
}

// DeleteReview removes one of the user's reviews.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := h.reviews.DeleteReview(r.Context(), r.PathValue("id")); err != nil {
		h.builder.WriteError(w, r, err)
		return
	}
	h.builder.WriteSuccess(w, r, map[string]string{"status": "deleted"})
}

// UpdateReview edits one of the user's reviews after revalidation.
func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	var form models.ReviewFormData
	if !h.decodeJSON(w, r, &form) {
		return
	}
	if result := form.Validate(); !result.IsValid {
		h.builder.WriteValidationError(w, r, "Please fix the highlighted fields.", result.Errors)
		return
	}

	updated, err := h.reviews.UpdateReview(r.Context(), r.PathValue("id"), form.ToReview())
	if err != nil {
		h.builder.WriteError(w, r, err)
		return
	}
	h.builder.WriteSuccess(w, r, updated)
}
