// file: internal/search/engine.go
package search

import (
	"sort"
	"strings"

	"github.com/c5551051011/insidelab-frontend/internal/models"
)

// DefaultPageSize is the result page size used when callers pass 0.
const DefaultPageSize = 20

// Result is one page of search results.
type Result struct {
	Results  []models.Lab `json:"results"`
	Total    int          `json:"total"`
	Page     int          `json:"page"`
	PageSize int          `json:"pageSize"`
	HasMore  bool         `json:"hasMore"`
	Degraded bool         `json:"degraded"`
}

// Engine evaluates searches client-side over an in-memory lab list.
// It backs the degraded/offline search mode and the tests that pin
// the filtering semantics.
type Engine struct {
	labs []models.Lab
}

// NewEngine creates an engine over the given labs.
func NewEngine(labs []models.Lab) *Engine {
	return &Engine{labs: labs}
}

// Search filters the lab list by query and filter, sorts by the
// filter's sort key and returns the requested page.
func (e *Engine) Search(query string, filter models.SearchFilter, page, pageSize int) *Result {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	matched := make([]models.Lab, 0, len(e.labs))
	for i := range e.labs {
		lab := &e.labs[i]
		if !matchesSearchQuery(lab, query) {
			continue
		}
		if !filter.Matches(lab) {
			continue
		}
		matched = append(matched, *lab)
	}

	SortLabs(matched, filter.SortBy)

	total := len(matched)
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return &Result{
		Results:  matched[start:end],
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasMore:  end < total,
	}
}

// matchesSearchQuery checks the query against lab name, professor,
// university, research areas and description, case-insensitively.
func matchesSearchQuery(lab *models.Lab, query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(lab.LabName), q) ||
		strings.Contains(strings.ToLower(lab.ProfessorName), q) ||
		strings.Contains(strings.ToLower(lab.UniversityName), q) ||
		strings.Contains(strings.ToLower(lab.Description), q) {
		return true
	}
	for _, area := range lab.ResearchAreas {
		if strings.Contains(strings.ToLower(area), q) {
			return true
		}
	}
	return false
}

// SortLabs orders labs in place by the given key: rating and review
// count descending, names lexicographic ascending. The sort is stable
// so equal keys keep their input order. An unknown key sorts by rating.
func SortLabs(labs []models.Lab, key models.SortKey) {
	var less func(a, b *models.Lab) bool
	switch key {
	case models.SortByReviews:
		less = func(a, b *models.Lab) bool { return a.ReviewCount > b.ReviewCount }
	case models.SortByLabName:
		less = func(a, b *models.Lab) bool { return a.LabName < b.LabName }
	case models.SortByProfessor:
		less = func(a, b *models.Lab) bool { return a.ProfessorName < b.ProfessorName }
	case models.SortByUniversity:
		less = func(a, b *models.Lab) bool { return a.UniversityName < b.UniversityName }
	default:
		less = func(a, b *models.Lab) bool { return a.OverallRating > b.OverallRating }
	}
	sort.SliceStable(labs, func(i, j int) bool { return less(&labs[i], &labs[j]) })
}

// SuggestFrom returns up to limit entries of pool containing the query,
// case-insensitively.
func SuggestFrom(pool []string, query string, limit int) []string {
	q := strings.ToLower(query)
	out := []string{}
	for _, s := range pool {
		if strings.Contains(strings.ToLower(s), q) {
			out = append(out, s)
			if len(out) == limit {
				break
			}
		}
	}
	return out
}
