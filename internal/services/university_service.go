// file: internal/services/university_service.go
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/c5551051011/insidelab-frontend/internal/api"
	"github.com/c5551051011/insidelab-frontend/internal/cache"
	"github.com/c5551051011/insidelab-frontend/internal/models"
	"go.uber.org/zap"
)

// catalogCacheTTL bounds how stale the university and department
// lists may get before a fresh fetch.
const catalogCacheTTL = 5 * time.Minute

// UniversityList is a university query result. Degraded is set when
// the data is the local fallback list rather than backend data, so
// the web layer can flag it.
type UniversityList struct {
	Universities []models.University `json:"universities"`
	Degraded     bool                `json:"degraded"`
}

// DepartmentList is a department query result.
type DepartmentList struct {
	Departments []models.Department `json:"departments"`
	Degraded    bool                `json:"degraded"`
}

// UniversityService wraps the university and department resources.
type UniversityService struct {
	client   *api.Client
	cache    cache.Cache
	logger   *zap.Logger
	degraded bool // fallback-on-failure enabled

	mu       sync.Mutex
	listKeys map[string]struct{} // cache keys holding university lists, per search term
}

// NewUniversityService creates a university service. degradedMode
// controls whether backend failures substitute fixed fallback lists.
func NewUniversityService(client *api.Client, c cache.Cache, degradedMode bool, logger *zap.Logger) *UniversityService {
	return &UniversityService{
		client:   client,
		cache:    c,
		logger:   logger,
		degraded: degradedMode,
		listKeys: make(map[string]struct{}),
	}
}

// AllUniversities lists universities, optionally filtered by a search
// term. Results are cached for five minutes per term. When the
// backend fails and degraded mode is on, a fixed fallback list is
// returned and flagged.
func (s *UniversityService) AllUniversities(ctx context.Context, search string) (*UniversityList, error) {
	cacheKey := "universities:" + search
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		if list, ok := cached.(*UniversityList); ok {
			return list, nil
		}
	}

	endpoint := "/universities/"
	if search != "" {
		endpoint += "?search=" + url.QueryEscape(search)
	}

	body, err := s.client.Get(ctx, endpoint, false)
	if err != nil {
		if s.degraded {
			s.logger.Warn("University fetch failed, serving fallback list",
				zap.String("search", search), zap.Error(err))
			return &UniversityList{Universities: FallbackUniversities(), Degraded: true}, nil
		}
		return nil, s.mapCatalogError(err, "universities")
	}

	universities, err := decodeResults[models.University](body)
	if err != nil {
		return nil, NewInternalError("unexpected universities payload", err)
	}

	list := &UniversityList{Universities: universities}
	if err := s.cache.Set(ctx, cacheKey, list, catalogCacheTTL); err != nil {
		s.logger.Warn("Failed to cache universities", zap.Error(err))
	} else {
		s.mu.Lock()
		s.listKeys[cacheKey] = struct{}{}
		s.mu.Unlock()
	}
	return list, nil
}

// invalidateUniversityLists drops every cached university list,
// whatever search term it was keyed under.
func (s *UniversityService) invalidateUniversityLists(ctx context.Context) {
	s.mu.Lock()
	keys := make([]string, 0, len(s.listKeys))
	for key := range s.listKeys {
		keys = append(keys, key)
	}
	s.listKeys = make(map[string]struct{})
	s.mu.Unlock()

	for _, key := range keys {
		if err := s.cache.Delete(ctx, key); err != nil {
			s.logger.Debug("Failed to invalidate cached universities",
				zap.String("key", key), zap.Error(err))
		}
	}
}

// SearchUniversities is AllUniversities with an empty-list failure
// mode, for typeahead use.
func (s *UniversityService) SearchUniversities(ctx context.Context, query string) []models.University {
	list, err := s.AllUniversities(ctx, query)
	if err != nil {
		s.logger.Debug("University search failed", zap.String("query", query), zap.Error(err))
		return []models.University{}
	}
	return list.Universities
}

// AllDepartments lists every department across universities. Failures
// yield an empty slice; this feeds a non-critical picker.
func (s *UniversityService) AllDepartments(ctx context.Context) []models.Department {
	body, err := s.client.Get(ctx, "/departments/", false)
	if err != nil {
		s.logger.Warn("Department fetch failed", zap.Error(err))
		return []models.Department{}
	}
	departments, err := decodeResults[models.Department](body)
	if err != nil {
		s.logger.Warn("Unexpected departments payload", zap.Error(err))
		return []models.Department{}
	}
	return departments
}

// DepartmentsByUniversity lists a university's departments with the
// same cache and fallback policy as AllUniversities.
func (s *UniversityService) DepartmentsByUniversity(ctx context.Context, universityID string) (*DepartmentList, error) {
	cacheKey := "departments:" + universityID
	if cached, ok := s.cache.Get(ctx, cacheKey); ok {
		if list, ok := cached.(*DepartmentList); ok {
			return list, nil
		}
	}

	body, err := s.client.Get(ctx, fmt.Sprintf("/universities/%s/departments/", url.PathEscape(universityID)), false)
	if err != nil {
		if s.degraded {
			s.logger.Warn("Department fetch failed, serving fallback list",
				zap.String("university_id", universityID), zap.Error(err))
			return &DepartmentList{Departments: FallbackDepartments(universityID), Degraded: true}, nil
		}
		return nil, s.mapCatalogError(err, "departments")
	}

	departments, err := decodeResults[models.Department](body)
	if err != nil {
		return nil, NewInternalError("unexpected departments payload", err)
	}

	list := &DepartmentList{Departments: departments}
	if err := s.cache.Set(ctx, cacheKey, list, catalogCacheTTL); err != nil {
		s.logger.Warn("Failed to cache departments", zap.Error(err))
	}
	return list, nil
}

// AddUniversity creates a university and invalidates the cached lists.
func (s *UniversityService) AddUniversity(ctx context.Context, data models.University) (*models.University, error) {
	body, err := s.client.Post(ctx, "/universities/", map[string]string{
		"name":    data.Name,
		"website": data.Website,
		"country": data.Country,
		"state":   data.State,
		"city":    data.City,
	}, true)
	if err != nil {
		switch api.StatusOf(err) {
		case 400:
			return nil, NewValidationError("Invalid university data. Please check all fields.", nil)
		case 401:
			return nil, NewUnauthorizedError("You must be logged in to add a university.")
		case 409:
			return nil, NewConflictError("This university already exists.", "UNIVERSITY_EXISTS")
		}
		return nil, NewInternalError("Failed to add university. Please try again.", err)
	}

	var created models.University
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, NewInternalError("unexpected add-university response", err)
	}
	s.invalidateUniversityLists(ctx)
	return &created, nil
}

// AddDepartment creates a department under a university and
// invalidates that university's cached department list.
func (s *UniversityService) AddDepartment(ctx context.Context, universityID string, name string) (*models.Department, error) {
	body, err := s.client.Post(ctx, fmt.Sprintf("/universities/%s/departments/", url.PathEscape(universityID)),
		map[string]string{"name": name}, true)
	if err != nil {
		switch api.StatusOf(err) {
		case 400:
			return nil, NewValidationError("Invalid department data. Please check all fields.", nil)
		case 401:
			return nil, NewUnauthorizedError("You must be logged in to add a department.")
		case 409:
			return nil, NewConflictError("This department already exists in this university.", "DEPARTMENT_EXISTS")
		}
		return nil, NewInternalError("Failed to add department. Please try again.", err)
	}

	var created models.Department
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, NewInternalError("unexpected add-department response", err)
	}
	if created.UniversityID == "" {
		created.UniversityID = universityID
	}
	_ = s.cache.Delete(ctx, "departments:"+universityID)
	return &created, nil
}

func (s *UniversityService) mapCatalogError(err error, resource string) error {
	switch api.StatusOf(err) {
	case 0:
		return NewNetworkError(fmt.Sprintf("Could not load %s. Please check your connection.", resource), err)
	case 404:
		return NewNotFoundError(fmt.Sprintf("No %s found.", resource))
	}
	return NewInternalError(fmt.Sprintf("Failed to load %s. Please try again.", resource), err)
}

// ===============================
// FALLBACK DATA
// ===============================

// FallbackUniversities is the fixed list served in degraded mode.
func FallbackUniversities() []models.University {
	return []models.University{
		{ID: "1", Name: "MIT", Website: "https://mit.edu"},
		{ID: "2", Name: "Stanford University", Website: "https://stanford.edu"},
		{ID: "3", Name: "Harvard University", Website: "https://harvard.edu"},
		{ID: "4", Name: "UC Berkeley", Website: "https://berkeley.edu"},
		{ID: "5", Name: "Carnegie Mellon University", Website: "https://cmu.edu"},
		{ID: "6", Name: "Georgia Tech", Website: "https://gatech.edu"},
		{ID: "7", Name: "University of Washington", Website: "https://washington.edu"},
		{ID: "8", Name: "University of Illinois", Website: "https://illinois.edu"},
		{ID: "9", Name: "Cornell University", Website: "https://cornell.edu"},
		{ID: "10", Name: "Princeton University", Website: "https://princeton.edu"},
	}
}

// FallbackDepartments is the fixed department list served in degraded
// mode, scoped to the requesting university.
func FallbackDepartments(universityID string) []models.Department {
	names := []string{
		"Computer Science",
		"Electrical Engineering",
		"Mechanical Engineering",
		"Biology",
		"Chemistry",
		"Physics",
		"Mathematics",
		"Statistics",
		"Bioengineering",
		"Materials Science",
	}
	departments := make([]models.Department, 0, len(names))
	for i, name := range names {
		departments = append(departments, models.Department{
			ID:           fmt.Sprintf("%d", i+1),
			Name:         name,
			UniversityID: universityID,
		})
	}
	return departments
}
