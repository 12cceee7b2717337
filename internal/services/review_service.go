// file: internal/services/review_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/c5551051011/insidelab-frontend/internal/api"
	"github.com/c5551051011/insidelab-frontend/internal/cache"
	"github.com/c5551051011/insidelab-frontend/internal/models"
	"go.uber.org/zap"
)

// ReviewPage is one page of reviews.
type ReviewPage struct {
	Results  []models.Review `json:"results"`
	Count    int             `json:"count"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
	HasMore  bool            `json:"hasMore"`
}

// CategoryList is the rating category result, flagged when served
// from the built-in fallback set.
type CategoryList struct {
	Categories []models.RatingCategory `json:"categories"`
	Degraded   bool                    `json:"degraded"`
}

// ReviewService wraps the review resource plus the review form's
// supporting lookups (scoped lab search, research groups, new-entity
// creation).
type ReviewService struct {
	client   *api.Client
	cache    cache.Cache
	logger   *zap.Logger
	degraded bool
}

// NewReviewService creates a review service.
func NewReviewService(client *api.Client, c cache.Cache, degradedMode bool, logger *zap.Logger) *ReviewService {
	return &ReviewService{client: client, cache: c, logger: logger, degraded: degradedMode}
}

// RatingCategories returns the per-aspect rating dimensions, cached
// for five minutes. When the backend fails and degraded mode is on,
// the built-in seven categories are served and flagged.
func (s *ReviewService) RatingCategories(ctx context.Context) (*CategoryList, error) {
	const cacheKey = "rating_categories"
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		if list, ok := cached.(*CategoryList); ok {
			return list, nil
		}
	}

	body, err := s.client.Get(ctx, "/reviews/rating-categories/", false)
	if err != nil {
		if s.degraded {
			s.logger.Warn("Rating category fetch failed, serving defaults", zap.Error(err))
			return &CategoryList{Categories: models.DefaultRatingCategories(), Degraded: true}, nil
		}
		return nil, NewInternalError("Failed to load rating categories.", err)
	}

	categories, err := decodeResults[models.RatingCategory](body)
	if err != nil {
		return nil, NewInternalError("unexpected rating categories payload", err)
	}

	list := &CategoryList{Categories: categories}
	if err := s.cache.Set(ctx, cacheKey, list, catalogCacheTTL); err != nil {
		s.logger.Warn("Failed to cache rating categories", zap.Error(err))
	}
	return list, nil
}

// SubmitReview validates and submits a review. Invalid reviews are
// rejected locally and never sent to the backend.
func (s *ReviewService) SubmitReview(ctx context.Context, review models.Review) (*models.Review, error) {
	if !review.Valid() {
		return nil, NewValidationError("Review data is invalid.", nil)
	}

	body, err := s.client.Post(ctx, "/reviews/", review.APIFormat(), true)
	if err != nil {
		return nil, s.mapSubmitError(err)
	}

	var created models.Review
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, NewInternalError("unexpected review response", err)
	}
	s.logger.Info("Review submitted", zap.String("lab_id", review.LabID))
	return &created, nil
}

// LabReviews returns one page of a lab's reviews.
func (s *ReviewService) LabReviews(ctx context.Context, labID string, page, pageSize int) (*ReviewPage, error) {
	params := url.Values{}
	params.Set("lab", labID)
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))

	body, err := s.client.Get(ctx, "/reviews/?"+params.Encode(), false)
	if err != nil {
		return nil, NewInternalError("Failed to load reviews.", err)
	}
	return s.decodeReviewPage(body, page, pageSize)
}

// UserReviews returns one page of the authenticated user's reviews.
func (s *ReviewService) UserReviews(ctx context.Context, page, pageSize int) (*ReviewPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))
	params.Set("page_size", strconv.Itoa(pageSize))

	body, err := s.client.Get(ctx, "/reviews/my-reviews/?"+params.Encode(), true)
	if err != nil {
		if api.StatusOf(err) == 401 {
			return nil, NewUnauthorizedError("You must be logged in to see your reviews.")
		}
		return nil, NewInternalError("Failed to load your reviews.", err)
	}
	return s.decodeReviewPage(body, page, pageSize)
}

// UpdateReview replaces an existing review.
func (s *ReviewService) UpdateReview(ctx context.Context, reviewID string, review models.Review) (*models.Review, error) {
	if !review.Valid() {
		return nil, NewValidationError("Review data is invalid.", nil)
	}

	body, err := s.client.Put(ctx, fmt.Sprintf("/reviews/%s/", url.PathEscape(reviewID)), review.APIFormat(), true)
	if err != nil {
		switch api.StatusOf(err) {
		case 401:
			return nil, NewUnauthorizedError("You must be logged in to update reviews.")
		case 403:
			return nil, NewForbiddenError("You can only update your own reviews.")
		case 404:
			return nil, NewNotFoundError("Review not found.")
		}
		return nil, NewInternalError("Failed to update review. Please try again.", err)
	}

	var updated models.Review
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, NewInternalError("unexpected review response", err)
	}
	return &updated, nil
}

// DeleteReview removes a review.
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID string) error {
	if _, err := s.client.Delete(ctx, fmt.Sprintf("/reviews/%s/", url.PathEscape(reviewID)), true); err != nil {
		switch api.StatusOf(err) {
		case 401:
			return NewUnauthorizedError("You must be logged in to delete reviews.")
		case 403:
			return NewForbiddenError("You can only delete your own reviews.")
		case 404:
			return NewNotFoundError("Review not found.")
		}
		return NewInternalError("Failed to delete review. Please try again.", err)
	}
	return nil
}

// VoteOnReview records a helpful / not-helpful vote.
func (s *ReviewService) VoteOnReview(ctx context.Context, reviewID string, helpful bool) error {
	_, err := s.client.Post(ctx, fmt.Sprintf("/reviews/%s/vote/", url.PathEscape(reviewID)),
		map[string]bool{"helpful": helpful}, true)
	if err != nil {
		switch api.StatusOf(err) {
		case 400:
			return NewConflictError("You have already voted on this review.", "ALREADY_VOTED")
		case 401:
			return NewUnauthorizedError("You must be logged in to vote on reviews.")
		}
		return NewInternalError("Failed to vote on review. Please try again.", err)
	}
	return nil
}

// LabReviewStats aggregates a lab's review figures. Failures yield
// zero-value stats; the stats panel is non-critical.
func (s *ReviewService) LabReviewStats(ctx context.Context, labID string) models.ReviewStats {
	body, err := s.client.Get(ctx, "/reviews/stats/?lab="+url.QueryEscape(labID), false)
	if err != nil {
		s.logger.Warn("Review stats fetch failed", zap.String("lab_id", labID), zap.Error(err))
		return models.ReviewStats{
			RatingDistribution: map[string]int{},
			CategoryAverages:   map[string]float64{},
		}
	}
	var stats models.ReviewStats
	if err := json.Unmarshal(body, &stats); err != nil {
		s.logger.Warn("Unexpected review stats payload", zap.Error(err))
		return models.ReviewStats{
			RatingDistribution: map[string]int{},
			CategoryAverages:   map[string]float64{},
		}
	}
	return stats
}

// SearchLabsForReview searches labs within the review form's current
// cascade scope. Failures yield an empty slice.
func (s *ReviewService) SearchLabsForReview(ctx context.Context, query, universityID, departmentID, researchGroupID string) []models.Lab {
	params := url.Values{}
	if query != "" {
		params.Set("search", query)
	}
	if universityID != "" {
		params.Set("university", universityID)
	}
	if departmentID != "" {
		params.Set("department", departmentID)
	}
	if researchGroupID != "" {
		params.Set("research_group", researchGroupID)
	}

	body, err := s.client.Get(ctx, "/labs/search/?"+params.Encode(), false)
	if err != nil {
		s.logger.Warn("Lab search failed", zap.String("query", query), zap.Error(err))
		return []models.Lab{}
	}
	labs, err := decodeResults[models.Lab](body)
	if err != nil {
		s.logger.Warn("Unexpected lab search payload", zap.Error(err))
		return []models.Lab{}
	}
	return labs
}

// ResearchGroupsByDepartment lists a department's research groups.
// Groups are optional in the cascade, so failures yield an empty slice.
func (s *ReviewService) ResearchGroupsByDepartment(ctx context.Context, departmentID string) []models.ResearchGroup {
	body, err := s.client.Get(ctx, fmt.Sprintf("/departments/%s/research-groups/", url.PathEscape(departmentID)), false)
	if err != nil {
		s.logger.Debug("Research group fetch failed", zap.String("department_id", departmentID), zap.Error(err))
		return []models.ResearchGroup{}
	}
	groups, err := decodeResults[models.ResearchGroup](body)
	if err != nil {
		s.logger.Warn("Unexpected research groups payload", zap.Error(err))
		return []models.ResearchGroup{}
	}
	return groups
}

// AddResearchGroup creates a research group under a department.
func (s *ReviewService) AddResearchGroup(ctx context.Context, departmentID, name string) (*models.ResearchGroup, error) {
	body, err := s.client.Post(ctx, "/research-groups/", map[string]string{
		"name":       name,
		"department": departmentID,
	}, true)
	if err != nil {
		switch api.StatusOf(err) {
		case 400:
			return nil, NewValidationError("Invalid research group data. Please check all fields.", nil)
		case 401:
			return nil, NewUnauthorizedError("You must be logged in to add a research group.")
		case 409:
			return nil, NewConflictError("This research group already exists in this department.", "GROUP_EXISTS")
		}
		return nil, NewInternalError("Failed to add research group. Please try again.", err)
	}

	var created models.ResearchGroup
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, NewInternalError("unexpected add-research-group response", err)
	}
	if created.DepartmentID == "" {
		created.DepartmentID = departmentID
	}
	return &created, nil
}

// AddLab creates a lab.
func (s *ReviewService) AddLab(ctx context.Context, data map[string]interface{}) (*models.Lab, error) {
	body, err := s.client.Post(ctx, "/labs/", data, true)
	if err != nil {
		switch api.StatusOf(err) {
		case 400:
			return nil, NewValidationError("Invalid lab data. Please check all fields including website.", nil)
		case 401:
			return nil, NewUnauthorizedError("You must be logged in to add a lab.")
		case 409:
			return nil, NewConflictError("This lab already exists.", "LAB_EXISTS")
		}
		return nil, NewInternalError("Failed to add lab. Please try again.", err)
	}

	var created models.Lab
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, NewInternalError("unexpected add-lab response", err)
	}
	return &created, nil
}

// IsAcademicDomain reports whether a website looks like an academic
// institution's domain.
func IsAcademicDomain(website string) bool {
	if website == "" {
		return false
	}
	domain := strings.ToLower(website)
	suffixes := []string{
		".edu", ".ac.", ".edu.", ".university", ".college",
		".mit.edu", ".stanford.edu", ".harvard.edu", ".berkeley.edu",
		".cmu.edu", ".caltech.edu", ".ox.ac.uk", ".cam.ac.uk",
	}
	for _, s := range suffixes {
		if strings.Contains(domain, s) {
			return true
		}
	}
	return false
}

func (s *ReviewService) decodeReviewPage(body []byte, page, pageSize int) (*ReviewPage, error) {
	reviews, count, hasMore, err := decodePage[models.Review](body)
	if err != nil {
		return nil, NewInternalError("unexpected reviews payload", err)
	}
	return &ReviewPage{
		Results:  reviews,
		Count:    count,
		Page:     page,
		PageSize: pageSize,
		HasMore:  hasMore,
	}, nil
}

func (s *ReviewService) mapSubmitError(err error) error {
	switch api.StatusOf(err) {
	case 0:
		return NewNetworkError("Could not reach the server. Your review was not submitted.", err)
	case 400:
		if fields := parseFieldErrors(api.BodyOf(err), reviewFieldKeys); fields != nil {
			return NewValidationError("Please fix the highlighted fields.", fields)
		}
		return NewValidationError("Invalid review data. Please check all fields and try again.", nil)
	case 401:
		return NewUnauthorizedError("You must be logged in to submit a review.")
	case 403:
		return NewForbiddenError("You do not have permission to submit reviews.")
	case 409:
		return NewConflictError("You have already reviewed this lab.", "ALREADY_REVIEWED")
	}
	return NewInternalError("Failed to submit review. Please try again.", err)
}
