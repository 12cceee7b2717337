// file: internal/search/session.go
package search

import (
	"context"
	"sync"
	"time"

	"github.com/c5551051011/insidelab-frontend/internal/models"
	"go.uber.org/zap"
)

// State is the search session's display state.
type State string

const (
	StateIdle              State = "idle"
	StateSuggesting        State = "suggesting"
	StateSearching         State = "searching"
	StateDisplayingResults State = "results"
	StateDisplayingEmpty   State = "empty"
	StateDisplayingError   State = "error"
)

// minSuggestionQueryLen is the query length below which suggestion
// fetches short-circuit to empty without any I/O.
const minSuggestionQueryLen = 2

// Searcher performs the session's backend work.
type Searcher interface {
	Suggestions(ctx context.Context, query string) []string
	SearchLabs(ctx context.Context, query string, filter models.SearchFilter, page, pageSize int) (*Result, error)
}

// Session drives one search page's lifecycle:
// Idle → Suggesting → Searching → Displaying{results|empty|error}.
// Suggestion fetches are debounced and generation-guarded so only the
// latest query's suggestions are ever applied; an explicit submit
// replaces results while LoadMore appends the next page.
type Session struct {
	mu       sync.Mutex
	searcher Searcher
	debounce *Debouncer
	logger   *zap.Logger

	state    State
	query    string
	intent   Intent
	filter   models.SearchFilter
	page     int
	pageSize int

	results  []models.Lab
	total    int
	hasMore  bool
	degraded bool
	lastErr  string

	suggestions     []string
	showSuggestions bool
	selected        int // index into suggestions, -1 when none highlighted
}

// Snapshot is an immutable view of the session for rendering.
type Snapshot struct {
	State           State               `json:"state"`
	Query           string              `json:"query"`
	Intent          Intent              `json:"intent"`
	IntentInfo      IntentInfo          `json:"intentInfo"`
	Filter          models.SearchFilter `json:"filter"`
	Page            int                 `json:"page"`
	Results         []models.Lab        `json:"results"`
	Total           int                 `json:"total"`
	HasMore         bool                `json:"hasMore"`
	Degraded        bool                `json:"degraded"`
	Error           string              `json:"error,omitempty"`
	Suggestions     []string            `json:"suggestions"`
	ShowSuggestions bool                `json:"showSuggestions"`
	Selected        int                 `json:"selected"`
}

// NewSession creates a session with the default filter.
func NewSession(searcher Searcher, pageSize int, debounceDelay time.Duration, logger *zap.Logger) *Session {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Session{
		searcher: searcher,
		debounce: NewDebouncer(debounceDelay),
		logger:   logger,
		state:    StateIdle,
		filter:   models.NewSearchFilter(),
		page:     1,
		pageSize: pageSize,
		selected: -1,
	}
}

// SetQuery records a keystroke: the intent is re-detected, any
// highlighted suggestion is dropped, and a debounced suggestion fetch
// is scheduled. Queries under two characters clear the suggestion
// list without touching the network.
func (s *Session) SetQuery(ctx context.Context, query string) {
	s.mu.Lock()
	s.query = query
	s.intent = DetectIntent(query)
	s.selected = -1

	if len(query) < minSuggestionQueryLen {
		s.suggestions = nil
		s.showSuggestions = false
		s.mu.Unlock()
		s.debounce.Cancel()
		return
	}
	s.state = StateSuggesting
	s.mu.Unlock()

	s.debounce.Trigger(func(generation uint64) {
		suggestions := s.searcher.Suggestions(ctx, query)
		if !s.debounce.Latest(generation) {
			return // superseded by a newer keystroke
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.query != query {
			return
		}
		s.suggestions = suggestions
		s.showSuggestions = len(suggestions) > 0
	})
}

// Submit runs the search for the current query and filter from page 1,
// replacing any previous results.
func (s *Session) Submit(ctx context.Context) {
	s.mu.Lock()
	s.showSuggestions = false
	s.selected = -1
	s.page = 1
	query, filter, pageSize := s.query, s.filter, s.pageSize
	s.state = StateSearching
	s.mu.Unlock()

	s.runSearch(ctx, query, filter, 1, pageSize, false)
}

// LoadMore fetches the next page and appends it.
func (s *Session) LoadMore(ctx context.Context) {
	s.mu.Lock()
	if !s.hasMore || s.state == StateSearching {
		s.mu.Unlock()
		return
	}
	next := s.page + 1
	query, filter, pageSize := s.query, s.filter, s.pageSize
	s.state = StateSearching
	s.mu.Unlock()

	s.runSearch(ctx, query, filter, next, pageSize, true)
}

// SetFilter replaces the filter wholesale and re-runs the search from
// page 1. Filters are never mutated in place.
func (s *Session) SetFilter(ctx context.Context, filter models.SearchFilter) {
	s.mu.Lock()
	s.filter = filter
	s.mu.Unlock()
	s.Submit(ctx)
}

// ClearFilters drops all constraints (keeping the sort key) and
// re-runs the search.
func (s *Session) ClearFilters(ctx context.Context) {
	s.mu.Lock()
	s.filter.Clear()
	s.mu.Unlock()
	s.Submit(ctx)
}

func (s *Session) runSearch(ctx context.Context, query string, filter models.SearchFilter, page, pageSize int, appendResults bool) {
	result, err := s.searcher.SearchLabs(ctx, query, filter, page, pageSize)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.logger.Warn("Search failed", zap.String("query", query), zap.Error(err))
		s.state = StateDisplayingError
		s.lastErr = "Failed to search labs. Please try again."
		return
	}

	s.lastErr = ""
	s.page = page
	s.total = result.Total
	s.hasMore = result.HasMore
	s.degraded = result.Degraded
	if appendResults {
		s.results = append(s.results, result.Results...)
	} else {
		s.results = result.Results
	}

	if len(s.results) == 0 {
		s.state = StateDisplayingEmpty
	} else {
		s.state = StateDisplayingResults
	}
}

// ===============================
// SUGGESTION NAVIGATION
// ===============================

// MoveDown advances the suggestion highlight, wrapping to the top.
func (s *Session) MoveDown() {
	s.moveSelection(1)
}

// MoveUp retreats the suggestion highlight, wrapping to the bottom.
func (s *Session) MoveUp() {
	s.moveSelection(-1)
}

func (s *Session) moveSelection(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.suggestions)
	if !s.showSuggestions || n == 0 {
		return
	}
	if s.selected < 0 && delta < 0 {
		// Moving up with nothing highlighted lands on the last entry.
		s.selected = n - 1
		return
	}
	s.selected = ((s.selected+delta)%n + n) % n
}

// PressEnter selects the highlighted suggestion as the query and
// submits; with nothing highlighted the raw query is submitted.
func (s *Session) PressEnter(ctx context.Context) {
	s.mu.Lock()
	if s.showSuggestions && s.selected >= 0 && s.selected < len(s.suggestions) {
		s.query = s.suggestions[s.selected]
		s.intent = DetectIntent(s.query)
	}
	s.mu.Unlock()
	s.Submit(ctx)
}

// PressEscape closes the suggestion list and clears the highlight.
func (s *Session) PressEscape() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showSuggestions = false
	s.selected = -1
}

// Close cancels any pending debounced work.
func (s *Session) Close() {
	s.debounce.Stop()
}

// View returns a copy of the session state for rendering.
func (s *Session) View() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]models.Lab, len(s.results))
	copy(results, s.results)
	suggestions := make([]string, len(s.suggestions))
	copy(suggestions, s.suggestions)

	return Snapshot{
		State:           s.state,
		Query:           s.query,
		Intent:          s.intent,
		IntentInfo:      InfoFor(s.intent),
		Filter:          s.filter,
		Page:            s.page,
		Results:         results,
		Total:           s.total,
		HasMore:         s.hasMore,
		Degraded:        s.degraded,
		Error:           s.lastErr,
		Suggestions:     suggestions,
		ShowSuggestions: s.showSuggestions,
		Selected:        s.selected,
	}
}
