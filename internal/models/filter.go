// file: internal/models/filter.go
package models

import (
	"net/url"
	"strconv"
	"strings"
)

// SortKey identifies the search result ordering.
type SortKey string

const (
	SortByRating     SortKey = "rating"
	SortByReviews    SortKey = "reviews"
	SortByLabName    SortKey = "labName"
	SortByProfessor  SortKey = "professor"
	SortByUniversity SortKey = "university"
)

// ValidSortKey reports whether k is one of the supported sort keys.
func ValidSortKey(k SortKey) bool {
	switch k {
	case SortByRating, SortByReviews, SortByLabName, SortByProfessor, SortByUniversity:
		return true
	}
	return false
}

// SearchFilter holds the active search constraints for one search
// session. Updates are full replacements: handlers build a new filter
// and swap it in rather than mutating fields of a shared one.
type SearchFilter struct {
	Rating          float64  `json:"rating"`
	Universities    []string `json:"universities"`
	ResearchAreas   []string `json:"researchAreas"`
	Tags            []string `json:"tags"`
	SortBy          SortKey  `json:"sortBy"`
	RecruitmentOnly bool     `json:"recruitmentOnly"`
}

// NewSearchFilter returns a filter with the default sort key.
func NewSearchFilter() SearchFilter {
	return SearchFilter{SortBy: SortByRating}
}

// HasActiveFilters reports whether any constraint is set.
func (f *SearchFilter) HasActiveFilters() bool {
	return f.Rating > 0 ||
		len(f.Universities) > 0 ||
		len(f.ResearchAreas) > 0 ||
		len(f.Tags) > 0 ||
		f.RecruitmentOnly
}

// ActiveFilterCount returns how many constraint groups are set.
func (f *SearchFilter) ActiveFilterCount() int {
	count := 0
	if f.Rating > 0 {
		count++
	}
	if len(f.Universities) > 0 {
		count++
	}
	if len(f.ResearchAreas) > 0 {
		count++
	}
	if len(f.Tags) > 0 {
		count++
	}
	if f.RecruitmentOnly {
		count++
	}
	return count
}

// Clear resets all constraints. The sort key is deliberately kept.
func (f *SearchFilter) Clear() {
	f.Rating = 0
	f.Universities = nil
	f.ResearchAreas = nil
	f.Tags = nil
	f.RecruitmentOnly = false
}

// Matches reports whether the lab passes every active constraint:
// minimum rating, university membership, research area overlap, tag
// overlap, and the recruiting-only flag.
func (f *SearchFilter) Matches(lab *Lab) bool {
	if f.Rating > 0 && lab.OverallRating < f.Rating {
		return false
	}

	if len(f.Universities) > 0 {
		found := false
		for _, u := range f.Universities {
			if u == lab.UniversityName {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(f.ResearchAreas) > 0 {
		found := false
		for _, area := range f.ResearchAreas {
			if lab.HasResearchArea(area) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if len(f.Tags) > 0 {
		found := false
		for _, tag := range f.Tags {
			if lab.HasTag(tag) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if f.RecruitmentOnly && !lab.IsRecruiting() {
		return false
	}

	return true
}

// QueryParams serializes the filter into backend query parameters.
// List values are comma-joined; zero values produce no parameter.
func (f *SearchFilter) QueryParams() url.Values {
	params := url.Values{}

	if f.Rating > 0 {
		params.Set("min_rating", strconv.FormatFloat(f.Rating, 'f', -1, 64))
	}
	if len(f.Universities) > 0 {
		params.Set("universities", strings.Join(f.Universities, ","))
	}
	if len(f.ResearchAreas) > 0 {
		params.Set("research_areas", strings.Join(f.ResearchAreas, ","))
	}
	if len(f.Tags) > 0 {
		params.Set("tags", strings.Join(f.Tags, ","))
	}
	if f.SortBy != "" {
		params.Set("sort_by", string(f.SortBy))
	}
	if f.RecruitmentOnly {
		params.Set("recruiting_only", "true")
	}

	return params
}

// FilterFromQueryParams restores a filter serialized by QueryParams.
// A missing or unknown sort_by falls back to the rating sort, so the
// round trip is lossless up to that default.
func FilterFromQueryParams(params url.Values) SearchFilter {
	f := SearchFilter{
		SortBy:          SortByRating,
		RecruitmentOnly: params.Get("recruiting_only") == "true",
	}

	if v := params.Get("min_rating"); v != "" {
		if rating, err := strconv.ParseFloat(v, 64); err == nil {
			f.Rating = rating
		}
	}
	if v := params.Get("universities"); v != "" {
		f.Universities = strings.Split(v, ",")
	}
	if v := params.Get("research_areas"); v != "" {
		f.ResearchAreas = strings.Split(v, ",")
	}
	if v := params.Get("tags"); v != "" {
		f.Tags = strings.Split(v, ",")
	}
	if v := SortKey(params.Get("sort_by")); ValidSortKey(v) {
		f.SortBy = v
	}

	return f
}
