// file: internal/services/search_service.go
package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/c5551051011/insidelab-frontend/internal/api"
	"github.com/c5551051011/insidelab-frontend/internal/cache"
	"github.com/c5551051011/insidelab-frontend/internal/models"
	"github.com/c5551051011/insidelab-frontend/internal/search"
	"go.uber.org/zap"
)

// searchCacheTTL bounds suggestion and result staleness.
const searchCacheTTL = 5 * time.Minute

// SearchService runs lab searches against the backend, falling back to
// a local engine over the reference corpus when the backend is
// unavailable (or when offline search is forced on).
type SearchService struct {
	client   *api.Client
	cache    cache.Cache
	engine   *search.Engine
	logger   *zap.Logger
	degraded bool // fallback-on-failure enabled
	offline  bool // skip the backend entirely
}

// NewSearchService creates a search service. degradedMode controls
// fallback-on-failure; offline forces local evaluation only.
func NewSearchService(client *api.Client, c cache.Cache, degradedMode, offline bool, logger *zap.Logger) *SearchService {
	return &SearchService{
		client:   client,
		cache:    c,
		engine:   search.NewEngine(search.ReferenceLabs()),
		logger:   logger,
		degraded: degradedMode,
		offline:  offline,
	}
}

// Suggestions returns typeahead completions for a partial query.
// Queries under two characters return nothing without any I/O.
// Backend failures fall back to prefix-matching the local suggestion
// pool so the dropdown never errors.
func (s *SearchService) Suggestions(ctx context.Context, query string) []string {
	trimmed := strings.TrimSpace(query)
	if len(trimmed) < 2 {
		return []string{}
	}

	cacheKey := "suggestions:" + strings.ToLower(trimmed)
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		if suggestions, ok := cached.([]string); ok {
			return suggestions
		}
	}

	suggestions := s.fetchSuggestions(ctx, trimmed)
	if err := s.cache.Set(ctx, cacheKey, suggestions, searchCacheTTL); err != nil {
		s.logger.Warn("Failed to cache suggestions", zap.Error(err))
	}
	return suggestions
}

func (s *SearchService) fetchSuggestions(ctx context.Context, query string) []string {
	if s.offline {
		return search.SuggestFrom(search.ReferenceSuggestions(), query, 8)
	}

	body, err := s.client.Get(ctx, "/labs/suggestions/?q="+url.QueryEscape(query), false)
	if err != nil {
		s.logger.Debug("Suggestion fetch failed, using local pool",
			zap.String("query", query), zap.Error(err))
		return search.SuggestFrom(search.ReferenceSuggestions(), query, 8)
	}

	suggestions, err := decodeResults[string](body)
	if err != nil {
		s.logger.Warn("Unexpected suggestions payload", zap.Error(err))
		return search.SuggestFrom(search.ReferenceSuggestions(), query, 8)
	}
	return suggestions
}

// SearchLabs runs a filtered, sorted, paginated lab search. The filter
// travels to the backend as query parameters; when the backend fails
// and degraded mode is on, the same query is evaluated locally over
// the reference corpus and the result is flagged Degraded.
func (s *SearchService) SearchLabs(ctx context.Context, query string, filter models.SearchFilter, page, pageSize int) (*search.Result, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = search.DefaultPageSize
	}

	if s.offline {
		return s.engine.Search(query, filter, page, pageSize), nil
	}

	cacheKey := searchCacheKey(query, filter, page, pageSize)
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		if result, ok := cached.(*search.Result); ok {
			return result, nil
		}
	}

	params := filter.QueryParams()
	if q := strings.TrimSpace(query); q != "" {
		params.Set("q", q)
	}
	params.Set("page", fmt.Sprintf("%d", page))
	params.Set("page_size", fmt.Sprintf("%d", pageSize))

	body, err := s.client.Get(ctx, "/labs/search/?"+params.Encode(), false)
	if err != nil {
		if s.degraded {
			s.logger.Warn("Lab search failed, evaluating locally",
				zap.String("query", query), zap.Error(err))
			result := s.engine.Search(query, filter, page, pageSize)
			result.Degraded = true
			return result, nil
		}
		return nil, s.mapSearchError(err)
	}

	labs, total, hasMore, err := decodePage[models.Lab](body)
	if err != nil {
		return nil, NewInternalError("unexpected lab search payload", err)
	}

	result := &search.Result{
		Results:  labs,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
		HasMore:  hasMore,
	}
	if err := s.cache.Set(ctx, cacheKey, result, searchCacheTTL); err != nil {
		s.logger.Warn("Failed to cache search results", zap.Error(err))
	}
	return result, nil
}

// LabByID fetches a single lab.
func (s *SearchService) LabByID(ctx context.Context, labID string) (*models.Lab, error) {
	body, err := s.client.Get(ctx, "/labs/"+url.PathEscape(labID)+"/", false)
	if err != nil {
		if api.StatusOf(err) == 404 {
			return nil, NewNotFoundError("Lab not found.")
		}
		return nil, s.mapSearchError(err)
	}

	var lab models.Lab
	if err := lab.UnmarshalJSON(body); err != nil {
		return nil, NewInternalError("unexpected lab payload", err)
	}
	return &lab, nil
}

func (s *SearchService) mapSearchError(err error) error {
	if api.StatusOf(err) == 0 {
		return NewNetworkError("Could not reach the search service. Please check your connection.", err)
	}
	return NewInternalError("Search failed. Please try again.", err)
}

func searchCacheKey(query string, filter models.SearchFilter, page, pageSize int) string {
	return fmt.Sprintf("search:%s|%s|%d|%d",
		strings.ToLower(strings.TrimSpace(query)), filter.QueryParams().Encode(), page, pageSize)
}
