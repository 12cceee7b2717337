// file: internal/models/filter_test.go
package models

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterQueryParamsRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		filter SearchFilter
	}{
		{
			name:   "default filter",
			filter: NewSearchFilter(),
		},
		{
			name: "everything set",
			filter: SearchFilter{
				Rating:          4.5,
				Universities:    []string{"MIT", "Stanford University"},
				ResearchAreas:   []string{"Machine Learning", "Robotics"},
				Tags:            []string{"Well Funded"},
				SortBy:          SortByReviews,
				RecruitmentOnly: true,
			},
		},
		{
			name:   "rating only",
			filter: SearchFilter{Rating: 3.5, SortBy: SortByLabName},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			restored := FilterFromQueryParams(tt.filter.QueryParams())
			assert.Equal(t, tt.filter, restored)
		})
	}
}

func TestFilterFromQueryParamsDefaultsSort(t *testing.T) {
	f := FilterFromQueryParams(url.Values{})
	assert.Equal(t, SortByRating, f.SortBy)

	f = FilterFromQueryParams(url.Values{"sort_by": {"bogus"}})
	assert.Equal(t, SortByRating, f.SortBy)
}

func TestFilterQueryParamsOmitsZeroValues(t *testing.T) {
	f := SearchFilter{SortBy: SortByRating}
	params := f.QueryParams()

	assert.Empty(t, params.Get("min_rating"))
	assert.Empty(t, params.Get("universities"))
	assert.Empty(t, params.Get("recruiting_only"))
	assert.Equal(t, "rating", params.Get("sort_by"))
}

func TestFilterClearKeepsSortOrder(t *testing.T) {
	f := SearchFilter{
		Rating:          4.0,
		Universities:    []string{"MIT"},
		SortBy:          SortByProfessor,
		RecruitmentOnly: true,
	}
	require.True(t, f.HasActiveFilters())

	f.Clear()

	assert.False(t, f.HasActiveFilters())
	assert.Equal(t, SortByProfessor, f.SortBy)
	assert.Zero(t, f.Rating)
	assert.Empty(t, f.Universities)
	assert.False(t, f.RecruitmentOnly)
}

func TestFilterActiveFilterCount(t *testing.T) {
	tests := []struct {
		name   string
		filter SearchFilter
		want   int
	}{
		{"none", NewSearchFilter(), 0},
		{"rating", SearchFilter{Rating: 4.0}, 1},
		{"two universities", SearchFilter{Universities: []string{"MIT", "Stanford University"}}, 2},
		{
			"mixed",
			SearchFilter{
				Rating:          3.5,
				Universities:    []string{"MIT"},
				ResearchAreas:   []string{"Robotics", "Machine Learning"},
				RecruitmentOnly: true,
			},
			5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.ActiveFilterCount())
		})
	}
}

func TestFilterMatches(t *testing.T) {
	lab := Lab{
		ID:             "1",
		LabName:        "Computer Vision Lab",
		ProfessorName:  "Dr. Sarah Chen",
		UniversityName: "Stanford University",
		OverallRating:  4.8,
		ResearchAreas:  []string{"Computer Vision", "Machine Learning"},
		Tags:           []string{"Well Funded", "Collaborative"},
		Recruitment:    RecruitmentStatus{PhD: true},
	}

	tests := []struct {
		name   string
		filter SearchFilter
		want   bool
	}{
		{"empty filter matches", SearchFilter{}, true},
		{"rating at threshold", SearchFilter{Rating: 4.8}, true},
		{"rating above", SearchFilter{Rating: 4.9}, false},
		{"university member", SearchFilter{Universities: []string{"MIT", "Stanford University"}}, true},
		{"university miss", SearchFilter{Universities: []string{"MIT"}}, false},
		{"area overlap", SearchFilter{ResearchAreas: []string{"Robotics", "Machine Learning"}}, true},
		{"area miss", SearchFilter{ResearchAreas: []string{"Robotics"}}, false},
		{"tag overlap", SearchFilter{Tags: []string{"Collaborative"}}, true},
		{"tag miss", SearchFilter{Tags: []string{"Remote Friendly"}}, false},
		{"recruiting only matches", SearchFilter{RecruitmentOnly: true}, true},
		{
			"all constraints",
			SearchFilter{
				Rating:          4.0,
				Universities:    []string{"Stanford University"},
				ResearchAreas:   []string{"Computer Vision"},
				Tags:            []string{"Well Funded"},
				RecruitmentOnly: true,
			},
			true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Matches(&lab))
		})
	}
}

func TestFilterMatchesNotRecruiting(t *testing.T) {
	lab := Lab{LabName: "Quiet Lab", Recruitment: RecruitmentStatus{}}
	f := SearchFilter{RecruitmentOnly: true}
	assert.False(t, f.Matches(&lab))
}
