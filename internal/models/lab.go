// file: internal/models/lab.go
package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ===============================
// LAB
// ===============================

// Lab represents a research lab as served by the backend.
// Instances are built fresh from API responses and treated as
// immutable value objects after decoding.
type Lab struct {
	ID             string            `json:"id"`
	LabName        string            `json:"labName"`
	ProfessorName  string            `json:"professorName"`
	UniversityName string            `json:"universityName"`
	Department     string            `json:"department"`
	ResearchGroup  string            `json:"researchGroup"`
	OverallRating  float64           `json:"overallRating"`
	ReviewCount    int               `json:"reviewCount"`
	ResearchAreas  []string          `json:"researchAreas"`
	Tags           []string          `json:"tags"`
	Recruitment    RecruitmentStatus `json:"recruitmentStatus"`
	Description    string            `json:"description"`
	Website        string            `json:"website"`
	Email          string            `json:"email"`
	Location       string            `json:"location"`

	RatingBreakdown map[string]float64 `json:"ratingBreakdown,omitempty"`

	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// labWire is the decode target for lab payloads. The backend has served
// both camelCase and snake_case spellings over time, so both are accepted;
// the camelCase key wins when both are present.
type labWire struct {
	ID               FlexID             `json:"id"`
	LabName          string             `json:"labName"`
	LabNameSnake     string             `json:"lab_name"`
	Name             string             `json:"name"`
	Professor        string             `json:"professorName"`
	ProfessorSnake   string             `json:"professor_name"`
	University       string             `json:"universityName"`
	UniversitySnake  string             `json:"university_name"`
	Department       string             `json:"department"`
	Group            string             `json:"researchGroup"`
	GroupSnake       string             `json:"research_group"`
	Rating           float64            `json:"overallRating"`
	RatingSnake      float64            `json:"overall_rating"`
	Reviews          int                `json:"reviewCount"`
	ReviewsSnake     int                `json:"review_count"`
	Areas            []string           `json:"researchAreas"`
	AreasSnake       []string           `json:"research_areas"`
	Tags             []string           `json:"tags"`
	Recruitment      *RecruitmentStatus `json:"recruitmentStatus"`
	RecruitmentSnake *RecruitmentStatus `json:"recruitment_status"`
	Description      string             `json:"description"`
	Website          string             `json:"website"`
	Email            string             `json:"email"`
	Location         string             `json:"location"`
	Breakdown        map[string]float64 `json:"ratingBreakdown"`
	BreakdownSnake   map[string]float64 `json:"rating_breakdown"`
	CreatedAt        *time.Time         `json:"createdAt"`
	CreatedAtSnake   *time.Time         `json:"created_at"`
	UpdatedAt        *time.Time         `json:"updatedAt"`
	UpdatedAtSnake   *time.Time         `json:"updated_at"`
}

// UnmarshalJSON decodes a lab payload, tolerating snake_case field names
// and clamping the overall rating into [0, 5].
func (l *Lab) UnmarshalJSON(data []byte) error {
	var w labWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode lab: %w", err)
	}

	l.ID = w.ID.String()
	l.LabName = firstNonEmpty(w.LabName, w.LabNameSnake, w.Name)
	l.ProfessorName = firstNonEmpty(w.Professor, w.ProfessorSnake)
	l.UniversityName = firstNonEmpty(w.University, w.UniversitySnake)
	l.Department = w.Department
	l.ResearchGroup = firstNonEmpty(w.Group, w.GroupSnake)
	l.OverallRating = clampRating(pickFloat(w.Rating, w.RatingSnake))
	l.ReviewCount = pickInt(w.Reviews, w.ReviewsSnake)
	l.ResearchAreas = pickSlice(w.Areas, w.AreasSnake)
	l.Tags = w.Tags
	if l.Tags == nil {
		l.Tags = []string{}
	}
	if w.Recruitment != nil {
		l.Recruitment = *w.Recruitment
	} else if w.RecruitmentSnake != nil {
		l.Recruitment = *w.RecruitmentSnake
	} else {
		l.Recruitment = RecruitmentStatus{}
	}
	l.Description = w.Description
	l.Website = w.Website
	l.Email = w.Email
	l.Location = w.Location
	if w.Breakdown != nil {
		l.RatingBreakdown = w.Breakdown
	} else {
		l.RatingBreakdown = w.BreakdownSnake
	}
	if w.CreatedAt != nil {
		l.CreatedAt = w.CreatedAt
	} else {
		l.CreatedAt = w.CreatedAtSnake
	}
	if w.UpdatedAt != nil {
		l.UpdatedAt = w.UpdatedAt
	} else {
		l.UpdatedAt = w.UpdatedAtSnake
	}
	return nil
}

// LabsFromJSON decodes a list of lab payloads.
func LabsFromJSON(data []byte) ([]Lab, error) {
	var labs []Lab
	if err := json.Unmarshal(data, &labs); err != nil {
		return nil, fmt.Errorf("decode lab list: %w", err)
	}
	return labs, nil
}

// Initials returns up to two characters used for the lab avatar.
func (l *Lab) Initials() string {
	words := strings.Fields(l.LabName)
	if len(words) >= 2 {
		return string([]rune(words[0])[:1]) + string([]rune(words[1])[:1])
	}
	runes := []rune(l.LabName)
	if len(runes) > 2 {
		runes = runes[:2]
	}
	return string(runes)
}

// FormattedRating returns the overall rating rounded to the given
// number of decimals, e.g. "4.8".
func (l *Lab) FormattedRating(decimals int) string {
	return fmt.Sprintf("%.*f", decimals, l.OverallRating)
}

// ReviewCountText returns the human readable review count.
func (l *Lab) ReviewCountText() string {
	switch l.ReviewCount {
	case 0:
		return "No reviews"
	case 1:
		return "1 review"
	default:
		return fmt.Sprintf("%d reviews", l.ReviewCount)
	}
}

// MatchesQuery reports whether the lab matches a free-text query.
// An empty query matches everything.
func (l *Lab) MatchesQuery(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	fields := []string{
		l.LabName,
		l.ProfessorName,
		l.UniversityName,
		l.Department,
		l.Description,
	}
	fields = append(fields, l.ResearchAreas...)
	fields = append(fields, l.Tags...)

	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

// HasResearchArea reports whether the lab lists the area (case-insensitive).
func (l *Lab) HasResearchArea(area string) bool {
	for _, a := range l.ResearchAreas {
		if strings.EqualFold(a, area) {
			return true
		}
	}
	return false
}

// HasTag reports whether the lab carries the tag (case-insensitive).
func (l *Lab) HasTag(tag string) bool {
	for _, t := range l.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

// IsRecruiting reports whether any recruitment type is open.
func (l *Lab) IsRecruiting() bool {
	return l.Recruitment.HasActiveRecruitment()
}

// Hierarchy returns the "Department > Research Group" breadcrumb.
func (l *Lab) Hierarchy() string {
	return fmt.Sprintf("%s > %s", l.Department, l.ResearchGroup)
}

// Valid reports whether the required identity fields are present.
func (l *Lab) Valid() bool {
	return l.ID != "" &&
		l.LabName != "" &&
		l.ProfessorName != "" &&
		l.UniversityName != ""
}

// ===============================
// RECRUITMENT STATUS
// ===============================

// RecruitmentStatus describes which positions a lab is currently hiring for.
type RecruitmentStatus struct {
	PhD         bool       `json:"phd"`
	PostDoc     bool       `json:"postdoc"`
	Intern      bool       `json:"intern"`
	Notes       string     `json:"notes,omitempty"`
	LastUpdated *time.Time `json:"lastUpdated,omitempty"`
}

type recruitmentWire struct {
	PhD              bool       `json:"phd"`
	PostDoc          bool       `json:"postdoc"`
	Intern           bool       `json:"intern"`
	Notes            string     `json:"notes"`
	LastUpdated      *time.Time `json:"lastUpdated"`
	LastUpdatedSnake *time.Time `json:"last_updated"`
}

func (r *RecruitmentStatus) UnmarshalJSON(data []byte) error {
	var w recruitmentWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode recruitment status: %w", err)
	}
	r.PhD = w.PhD
	r.PostDoc = w.PostDoc
	r.Intern = w.Intern
	r.Notes = w.Notes
	if w.LastUpdated != nil {
		r.LastUpdated = w.LastUpdated
	} else {
		r.LastUpdated = w.LastUpdatedSnake
	}
	return nil
}

// HasActiveRecruitment reports whether any position type is open.
func (r *RecruitmentStatus) HasActiveRecruitment() bool {
	return r.PhD || r.PostDoc || r.Intern
}

// ActiveTypes returns the open position labels in display order.
func (r *RecruitmentStatus) ActiveTypes() []string {
	var active []string
	if r.PhD {
		active = append(active, "PhD")
	}
	if r.PostDoc {
		active = append(active, "PostDoc")
	}
	if r.Intern {
		active = append(active, "Intern")
	}
	return active
}

// Summary returns a human readable recruitment summary.
func (r *RecruitmentStatus) Summary() string {
	active := r.ActiveTypes()
	switch len(active) {
	case 0:
		return "Not recruiting"
	case 1:
		return "Recruiting " + active[0]
	case 2:
		return "Recruiting " + strings.Join(active, " and ")
	default:
		return fmt.Sprintf("Recruiting %s and %s",
			strings.Join(active[:len(active)-1], ", "), active[len(active)-1])
	}
}
