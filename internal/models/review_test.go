// file: internal/models/review_test.go
package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() ReviewFormData {
	return ReviewFormData{
		University:    "1",
		Department:    "2",
		ResearchGroup: "3",
		Lab:           "42",
		Position:      "PhD Student",
		Duration:      "2 years",
		Rating:        4.5,
		CategoryRatings: map[string]float64{
			"Advisor Support": 5.0,
			"Lab Culture":     4.0,
		},
		ReviewText: strings.Repeat("Great lab env. ", 10),
		Pros:       "Supportive advisor\nGood funding",
		Cons:       "Long hours",
	}
}

func TestReviewFormValidateOK(t *testing.T) {
	form := validForm()
	result := form.Validate()
	assert.True(t, result.IsValid)
	assert.Empty(t, result.Errors)
	assert.True(t, form.IsComplete())
}

func TestReviewFormValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ReviewFormData)
		field   string
		message string
	}{
		{
			name:    "missing university",
			mutate:  func(f *ReviewFormData) { f.University = "" },
			field:   "university",
			message: "University is required",
		},
		{
			name:    "missing lab",
			mutate:  func(f *ReviewFormData) { f.Lab = "" },
			field:   "lab",
			message: "Lab selection is required",
		},
		{
			name:    "missing position",
			mutate:  func(f *ReviewFormData) { f.Position = "" },
			field:   "position",
			message: "Position is required",
		},
		{
			name:    "missing duration",
			mutate:  func(f *ReviewFormData) { f.Duration = "" },
			field:   "duration",
			message: "Duration is required",
		},
		{
			name:    "zero rating",
			mutate:  func(f *ReviewFormData) { f.Rating = 0 },
			field:   "rating",
			message: "Rating must be between 0.5 and 5.0",
		},
		{
			name:    "rating above max",
			mutate:  func(f *ReviewFormData) { f.Rating = 5.5 },
			field:   "rating",
			message: "Rating must be between 0.5 and 5.0",
		},
		{
			name:    "empty review text",
			mutate:  func(f *ReviewFormData) { f.ReviewText = "" },
			field:   "reviewText",
			message: "Review text is required",
		},
		{
			name:    "short review text",
			mutate:  func(f *ReviewFormData) { f.ReviewText = "Too short." },
			field:   "reviewText",
			message: "Review text must be at least 50 characters",
		},
		{
			name:    "long review text",
			mutate:  func(f *ReviewFormData) { f.ReviewText = strings.Repeat("a", ReviewTextMaxLength+1) },
			field:   "reviewText",
			message: "Review text must be less than 2000 characters",
		},
		{
			name:    "category out of range",
			mutate:  func(f *ReviewFormData) { f.CategoryRatings["Lab Culture"] = 6 },
			field:   "category_Lab Culture",
			message: "Lab Culture rating must be between 0.5 and 5.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := validForm()
			tt.mutate(&form)
			result := form.Validate()
			assert.False(t, result.IsValid)
			assert.Equal(t, tt.message, result.Errors[tt.field])
		})
	}
}

func TestReviewFormBoundaryRatings(t *testing.T) {
	for _, rating := range []float64{RatingMin, RatingMax} {
		form := validForm()
		form.Rating = rating
		assert.True(t, form.Validate().IsValid, "rating=%v", rating)
	}
}

func TestReviewFormToReview(t *testing.T) {
	form := validForm()
	form.Pros = "  Supportive advisor \n\nGood funding\n"
	form.Cons = ""

	review := form.ToReview()
	assert.Equal(t, "42", review.LabID)
	assert.Equal(t, "PhD Student", review.Position)
	assert.Equal(t, "2 years", review.Duration)
	assert.Equal(t, 4.5, review.Rating)
	assert.Equal(t, []string{"Supportive advisor", "Good funding"}, review.Pros)
	assert.Equal(t, []string{}, review.Cons)
	assert.WithinDuration(t, time.Now(), review.ReviewDate, time.Minute)
	assert.True(t, review.Valid())
}

func TestReviewFormReset(t *testing.T) {
	form := validForm()
	form.Reset()
	assert.Equal(t, "", form.University)
	assert.Equal(t, "", form.Lab)
	assert.NotNil(t, form.CategoryRatings)
	assert.Empty(t, form.CategoryRatings)
}

func TestReviewUnmarshalSnakeCase(t *testing.T) {
	payload := `{
		"id": 101,
		"lab": 42,
		"user_id": "u-7",
		"position": "PhD Student",
		"duration": "2 years",
		"rating": 4.5,
		"ratings_input": {"Advisor Support": 5.0},
		"review_text": "Detailed and thorough review text goes here.",
		"pros": "Supportive advisor",
		"cons": ["Long hours", "Low pay"],
		"helpful_count": 3,
		"is_verified": true
	}`

	var review Review
	require.NoError(t, json.Unmarshal([]byte(payload), &review))

	assert.Equal(t, "101", review.ID)
	assert.Equal(t, "42", review.LabID)
	assert.Equal(t, "u-7", review.UserID)
	assert.Equal(t, 4.5, review.Rating)
	assert.Equal(t, map[string]float64{"Advisor Support": 5.0}, review.CategoryRatings)
	assert.Equal(t, "Detailed and thorough review text goes here.", review.ReviewText)
	assert.Equal(t, []string{"Supportive advisor"}, review.Pros)
	assert.Equal(t, []string{"Long hours", "Low pay"}, review.Cons)
	assert.Equal(t, 3, review.HelpfulCount)
	assert.True(t, review.IsVerified)
	assert.WithinDuration(t, time.Now(), review.ReviewDate, time.Minute)
}

func TestReviewUnmarshalDefaults(t *testing.T) {
	var review Review
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1}`), &review))

	assert.NotNil(t, review.CategoryRatings)
	assert.Equal(t, []string{}, review.Pros)
	assert.Equal(t, []string{}, review.Cons)
	assert.Nil(t, review.UserVote)
}

func TestReviewAPIFormat(t *testing.T) {
	review := Review{
		LabID:           "42",
		Position:        "PostDoc",
		Duration:        "1 year",
		Rating:          4.0,
		CategoryRatings: map[string]float64{"Lab Culture": 3.5},
		ReviewText:      "text",
		Pros:            []string{"a"},
		Cons:            []string{},
	}

	payload := review.APIFormat()
	assert.Equal(t, int64(42), payload["lab"])
	assert.Equal(t, "PostDoc", payload["position"])
	assert.Equal(t, 4.0, payload["rating"])
	assert.Equal(t, map[string]float64{"Lab Culture": 3.5}, payload["ratings_input"])
	assert.Equal(t, "text", payload["review_text"])
}

func TestReviewRatingDescription(t *testing.T) {
	tests := []struct {
		rating float64
		want   string
	}{
		{5.0, "Excellent"},
		{4.5, "Excellent"},
		{4.0, "Good"},
		{3.0, "Average"},
		{2.0, "Below Average"},
		{1.0, "Poor"},
	}
	for _, tt := range tests {
		r := Review{Rating: tt.rating}
		assert.Equal(t, tt.want, r.RatingDescription(), "rating=%v", tt.rating)
	}
}

func TestReviewAverageCategoryRating(t *testing.T) {
	r := Review{CategoryRatings: map[string]float64{"a": 4.0, "b": 5.0}}
	assert.InDelta(t, 4.5, r.AverageCategoryRating(), 0.001)

	empty := Review{}
	assert.Zero(t, empty.AverageCategoryRating())
}

func TestRatingCategoryUnmarshal(t *testing.T) {
	var cat RatingCategory
	require.NoError(t, json.Unmarshal([]byte(
		`{"id": 2, "name": "Advisor Support", "order": 2, "is_required": true}`), &cat))
	assert.Equal(t, 2, cat.ID)
	assert.Equal(t, "Advisor Support", cat.Name)
	assert.True(t, cat.IsRequired)
}

func TestDefaultRatingCategoriesOrdered(t *testing.T) {
	cats := DefaultRatingCategories()
	require.Len(t, cats, 7)
	for i, cat := range cats {
		assert.Equal(t, i+1, cat.Order)
		assert.True(t, cat.IsRequired)
		assert.NotEmpty(t, cat.Name)
	}
}

func TestFlexIDUnmarshal(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`7`, "7"},
		{`"abc"`, "abc"},
		{`null`, ""},
	}
	for _, tt := range tests {
		var id FlexID
		require.NoError(t, json.Unmarshal([]byte(tt.raw), &id))
		assert.Equal(t, tt.want, id.String())
	}

	assert.Equal(t, int64(42), FlexID("42").Int())
	assert.Equal(t, int64(0), FlexID("abc").Int())
}
