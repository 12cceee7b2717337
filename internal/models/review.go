// file: internal/models/review.go
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ===============================
// CONSTANTS
// ===============================

// Review content bounds enforced client-side before anything is sent
// to the backend.
const (
	ReviewTextMinLength = 50
	ReviewTextMaxLength = 2000
	RatingMin           = 0.5
	RatingMax           = 5.0
	RatingStep          = 0.5
)

// PositionOptions are the selectable reviewer positions.
var PositionOptions = []string{
	"PhD Student",
	"MS Student",
	"Undergrad",
	"PostDoc",
	"Research Assistant",
	"faculty",
}

// DurationOptions are the selectable stay durations.
var DurationOptions = []string{
	"< 6 months",
	"6 months",
	"1 year",
	"2 years",
	"3 years",
	"4+ years",
}

// ===============================
// REVIEW
// ===============================

// Review is a submitted lab review.
type Review struct {
	ID              string             `json:"id"`
	LabID           string             `json:"labId"`
	UserID          string             `json:"userId"`
	Position        string             `json:"position"`
	Duration        string             `json:"duration"`
	ReviewDate      time.Time          `json:"reviewDate"`
	Rating          float64            `json:"rating"`
	CategoryRatings map[string]float64 `json:"categoryRatings"`
	ReviewText      string             `json:"reviewText"`
	Pros            []string           `json:"pros"`
	Cons            []string           `json:"cons"`
	HelpfulCount    int                `json:"helpfulCount"`
	UserVote        *bool              `json:"userVote,omitempty"`
	IsVerified      bool               `json:"isVerified"`
	CreatedAt       *time.Time         `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time         `json:"updatedAt,omitempty"`
}

type reviewWire struct {
	ID              FlexID             `json:"id"`
	LabID           FlexID             `json:"labId"`
	LabIDSnake      FlexID             `json:"lab_id"`
	Lab             FlexID             `json:"lab"`
	UserID          FlexID             `json:"userId"`
	UserIDSnake     FlexID             `json:"user_id"`
	Position        string             `json:"position"`
	Duration        string             `json:"duration"`
	ReviewDate      *time.Time         `json:"reviewDate"`
	ReviewDateSnake *time.Time         `json:"review_date"`
	Rating          float64            `json:"rating"`
	Categories      map[string]float64 `json:"categoryRatings"`
	CategoriesSnake map[string]float64 `json:"category_ratings"`
	CategoriesInput map[string]float64 `json:"ratings_input"`
	Text            string             `json:"reviewText"`
	TextSnake       string             `json:"review_text"`
	Pros            flexStrings        `json:"pros"`
	Cons            flexStrings        `json:"cons"`
	Helpful         int                `json:"helpfulCount"`
	HelpfulSnake    int                `json:"helpful_count"`
	UserVote        *bool              `json:"userVote"`
	UserVoteSnake   *bool              `json:"user_vote"`
	Verified        bool               `json:"isVerified"`
	VerifiedSnake   bool               `json:"is_verified"`
	CreatedAt       *time.Time         `json:"createdAt"`
	CreatedAtSnake  *time.Time         `json:"created_at"`
	UpdatedAt       *time.Time         `json:"updatedAt"`
	UpdatedAtSnake  *time.Time         `json:"updated_at"`
}

// flexStrings accepts either a JSON array of strings or a single
// string, which some backend serializers emit for one-element lists.
type flexStrings []string

func (fs *flexStrings) UnmarshalJSON(data []byte) error {
	if len(data) == 0 || string(data) == "null" {
		*fs = nil
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*fs = []string{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*fs = list
	return nil
}

// UnmarshalJSON decodes a review payload, tolerating the snake_case
// spellings and the `ratings_input` alias for category ratings.
func (r *Review) UnmarshalJSON(data []byte) error {
	var w reviewWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode review: %w", err)
	}

	r.ID = w.ID.String()
	r.LabID = firstNonEmpty(w.LabID.String(), w.LabIDSnake.String(), w.Lab.String())
	r.UserID = firstNonEmpty(w.UserID.String(), w.UserIDSnake.String())
	r.Position = w.Position
	r.Duration = w.Duration
	switch {
	case w.ReviewDate != nil:
		r.ReviewDate = *w.ReviewDate
	case w.ReviewDateSnake != nil:
		r.ReviewDate = *w.ReviewDateSnake
	default:
		r.ReviewDate = time.Now()
	}
	r.Rating = w.Rating
	switch {
	case w.Categories != nil:
		r.CategoryRatings = w.Categories
	case w.CategoriesSnake != nil:
		r.CategoryRatings = w.CategoriesSnake
	case w.CategoriesInput != nil:
		r.CategoryRatings = w.CategoriesInput
	default:
		r.CategoryRatings = map[string]float64{}
	}
	r.ReviewText = firstNonEmpty(w.Text, w.TextSnake)
	r.Pros = w.Pros
	r.Cons = w.Cons
	if r.Pros == nil {
		r.Pros = []string{}
	}
	if r.Cons == nil {
		r.Cons = []string{}
	}
	r.HelpfulCount = pickInt(w.Helpful, w.HelpfulSnake)
	if w.UserVote != nil {
		r.UserVote = w.UserVote
	} else {
		r.UserVote = w.UserVoteSnake
	}
	r.IsVerified = w.Verified || w.VerifiedSnake
	if w.CreatedAt != nil {
		r.CreatedAt = w.CreatedAt
	} else {
		r.CreatedAt = w.CreatedAtSnake
	}
	if w.UpdatedAt != nil {
		r.UpdatedAt = w.UpdatedAt
	} else {
		r.UpdatedAt = w.UpdatedAtSnake
	}
	return nil
}

// FormattedRating returns the rating rounded to the given decimals.
func (r *Review) FormattedRating(decimals int) string {
	return fmt.Sprintf("%.*f", decimals, r.Rating)
}

// RatingDescription maps the numeric rating to its display word.
func (r *Review) RatingDescription() string {
	switch {
	case r.Rating >= 4.5:
		return "Excellent"
	case r.Rating >= 3.5:
		return "Good"
	case r.Rating >= 2.5:
		return "Average"
	case r.Rating >= 1.5:
		return "Below Average"
	default:
		return "Poor"
	}
}

// AverageCategoryRating returns the mean of the per-category ratings,
// or 0 when none are set.
func (r *Review) AverageCategoryRating() float64 {
	if len(r.CategoryRatings) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range r.CategoryRatings {
		sum += v
	}
	return sum / float64(len(r.CategoryRatings))
}

// IsRecent reports whether the review was posted within the last 30 days.
func (r *Review) IsRecent() bool {
	return time.Since(r.ReviewDate) <= 30*24*time.Hour
}

// Valid reports whether the review can be submitted: references a lab,
// position and duration set, rating within bounds, and the review text
// at minimum length.
func (r *Review) Valid() bool {
	return r.LabID != "" &&
		r.Position != "" &&
		r.Duration != "" &&
		r.Rating >= RatingMin &&
		r.Rating <= RatingMax &&
		len(r.ReviewText) >= ReviewTextMinLength
}

// APIFormat returns the submission payload the backend expects.
func (r *Review) APIFormat() map[string]interface{} {
	return map[string]interface{}{
		"lab":           FlexID(r.LabID).Int(),
		"position":      r.Position,
		"duration":      r.Duration,
		"rating":        r.Rating,
		"ratings_input": r.CategoryRatings,
		"review_text":   r.ReviewText,
		"pros":          r.Pros,
		"cons":          r.Cons,
	}
}

// ===============================
// REVIEW FORM DATA
// ===============================

// ReviewFormData is the mutable staging state of the write-review form,
// including the cascading selection (university → department → research
// group → lab). Pros and cons are kept as raw textarea content and split
// into lists on submit.
type ReviewFormData struct {
	University      string             `json:"university"`
	Department      string             `json:"department"`
	ResearchGroup   string             `json:"researchGroup"`
	Lab             string             `json:"lab"`
	Position        string             `json:"position"`
	Duration        string             `json:"duration"`
	Rating          float64            `json:"rating"`
	CategoryRatings map[string]float64 `json:"categoryRatings"`
	ReviewText      string             `json:"reviewText"`
	Pros            string             `json:"pros"`
	Cons            string             `json:"cons"`
}

// ValidationResult is the outcome of validating form data. Errors is
// keyed by field name so the form can render messages inline.
type ValidationResult struct {
	IsValid bool              `json:"isValid"`
	Errors  map[string]string `json:"errors"`
}

// Validate checks the form and returns field-keyed error messages.
func (f *ReviewFormData) Validate() ValidationResult {
	errors := make(map[string]string)

	if f.University == "" {
		errors["university"] = "University is required"
	}
	if f.Lab == "" {
		errors["lab"] = "Lab selection is required"
	}
	if f.Position == "" {
		errors["position"] = "Position is required"
	}
	if f.Duration == "" {
		errors["duration"] = "Duration is required"
	}
	if f.Rating < RatingMin || f.Rating > RatingMax {
		errors["rating"] = "Rating must be between 0.5 and 5.0"
	}
	switch {
	case f.ReviewText == "":
		errors["reviewText"] = "Review text is required"
	case len(f.ReviewText) < ReviewTextMinLength:
		errors["reviewText"] = "Review text must be at least 50 characters"
	case len(f.ReviewText) > ReviewTextMaxLength:
		errors["reviewText"] = "Review text must be less than 2000 characters"
	}
	for category, rating := range f.CategoryRatings {
		if rating < RatingMin || rating > RatingMax {
			errors["category_"+category] = fmt.Sprintf("%s rating must be between 0.5 and 5.0", category)
		}
	}

	return ValidationResult{IsValid: len(errors) == 0, Errors: errors}
}

// IsComplete reports whether the form would pass validation.
func (f *ReviewFormData) IsComplete() bool {
	return f.Validate().IsValid
}

// ToReview converts the staged form into a Review ready for submission.
func (f *ReviewFormData) ToReview() Review {
	return Review{
		LabID:           f.Lab,
		Position:        f.Position,
		Duration:        f.Duration,
		ReviewDate:      time.Now(),
		Rating:          f.Rating,
		CategoryRatings: f.CategoryRatings,
		ReviewText:      f.ReviewText,
		Pros:            splitLines(f.Pros),
		Cons:            splitLines(f.Cons),
	}
}

// Reset clears all staged state.
func (f *ReviewFormData) Reset() {
	*f = ReviewFormData{CategoryRatings: map[string]float64{}}
}

func splitLines(s string) []string {
	out := []string{}
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// ===============================
// RATING CATEGORY
// ===============================

// RatingCategory is one of the per-aspect rating dimensions shown on
// the review form.
type RatingCategory struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Order       int    `json:"order"`
	IsRequired  bool   `json:"isRequired"`
}

type ratingCategoryWire struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Order         int    `json:"order"`
	Required      bool   `json:"isRequired"`
	RequiredSnake bool   `json:"is_required"`
}

func (c *RatingCategory) UnmarshalJSON(data []byte) error {
	var w ratingCategoryWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode rating category: %w", err)
	}
	c.ID = w.ID
	c.Name = w.Name
	c.Description = w.Description
	c.Order = w.Order
	c.IsRequired = w.Required || w.RequiredSnake
	return nil
}

// DefaultRatingCategories is the fixed category set used when the
// backend category list is unavailable.
func DefaultRatingCategories() []RatingCategory {
	return []RatingCategory{
		{ID: 1, Name: "Research Environment", Description: "Quality of research facilities and resources", Order: 1, IsRequired: true},
		{ID: 2, Name: "Advisor Support", Description: "Mentorship and guidance from advisor", Order: 2, IsRequired: true},
		{ID: 3, Name: "Work-Life Balance", Description: "Balance between work demands and personal life", Order: 3, IsRequired: true},
		{ID: 4, Name: "Career Support", Description: "Support for career development and opportunities", Order: 4, IsRequired: true},
		{ID: 5, Name: "Funding & Resources", Description: "Availability of funding and research resources", Order: 5, IsRequired: true},
		{ID: 6, Name: "Lab Culture", Description: "Overall lab environment and team dynamics", Order: 6, IsRequired: true},
		{ID: 7, Name: "Mentorship Quality", Description: "Quality of mentorship and training received", Order: 7, IsRequired: true},
	}
}
