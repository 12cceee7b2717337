// file: internal/models/catalog.go
package models

import (
	"encoding/json"
	"fmt"
)

// University is a selectable university in the review form cascade.
type University struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
	Country string `json:"country,omitempty"`
	State   string `json:"state,omitempty"`
	City    string `json:"city,omitempty"`
}

type universityWire struct {
	ID      FlexID `json:"id"`
	Name    string `json:"name"`
	Website string `json:"website"`
	Country string `json:"country"`
	State   string `json:"state"`
	City    string `json:"city"`
}

func (u *University) UnmarshalJSON(data []byte) error {
	var w universityWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode university: %w", err)
	}
	u.ID = w.ID.String()
	u.Name = w.Name
	u.Website = w.Website
	u.Country = w.Country
	u.State = w.State
	u.City = w.City
	return nil
}

// Department is a selectable department within a university.
type Department struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	UniversityID string `json:"universityId"`
}

type departmentWire struct {
	ID              FlexID `json:"id"`
	Name            string `json:"name"`
	UniversityID    FlexID `json:"universityId"`
	UniversitySnake FlexID `json:"university_id"`
	University      FlexID `json:"university"`
}

func (d *Department) UnmarshalJSON(data []byte) error {
	var w departmentWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode department: %w", err)
	}
	d.ID = w.ID.String()
	d.Name = w.Name
	d.UniversityID = firstNonEmpty(w.UniversityID.String(), w.UniversitySnake.String(), w.University.String())
	return nil
}

// ResearchGroup is an optional grouping level between department and lab.
type ResearchGroup struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DepartmentID string `json:"departmentId"`
}

type researchGroupWire struct {
	ID              FlexID `json:"id"`
	Name            string `json:"name"`
	DepartmentID    FlexID `json:"departmentId"`
	DepartmentSnake FlexID `json:"department_id"`
	Department      FlexID `json:"department"`
}

func (g *ResearchGroup) UnmarshalJSON(data []byte) error {
	var w researchGroupWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode research group: %w", err)
	}
	g.ID = w.ID.String()
	g.Name = w.Name
	g.DepartmentID = firstNonEmpty(w.DepartmentID.String(), w.DepartmentSnake.String(), w.Department.String())
	return nil
}

// User is the authenticated account as returned by the backend.
type User struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	IsVerified bool   `json:"isVerified"`
	University string `json:"university,omitempty"`
	Department string `json:"department,omitempty"`
}

type userWire struct {
	ID            FlexID `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	Username      string `json:"username"`
	Verified      bool   `json:"isVerified"`
	VerifiedSnake bool   `json:"is_verified"`
	University    string `json:"university"`
	Department    string `json:"department"`
}

func (u *User) UnmarshalJSON(data []byte) error {
	var w userWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode user: %w", err)
	}
	u.ID = w.ID.String()
	u.Email = w.Email
	u.Name = firstNonEmpty(w.Name, w.Username)
	u.IsVerified = w.Verified || w.VerifiedSnake
	u.University = w.University
	u.Department = w.Department
	return nil
}

// ReviewStats aggregates a lab's review figures.
type ReviewStats struct {
	TotalReviews       int                `json:"totalReviews"`
	AverageRating      float64            `json:"averageRating"`
	RatingDistribution map[string]int     `json:"ratingDistribution"`
	CategoryAverages   map[string]float64 `json:"categoryAverages"`
	RecommendationRate float64            `json:"recommendationRate"`
}

type reviewStatsWire struct {
	TotalReviews       int                `json:"total_reviews"`
	AverageRating      float64            `json:"average_rating"`
	RatingDistribution map[string]int     `json:"rating_distribution"`
	CategoryAverages   map[string]float64 `json:"category_averages"`
	RecommendationRate float64            `json:"recommendation_rate"`
}

func (s *ReviewStats) UnmarshalJSON(data []byte) error {
	var w reviewStatsWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode review stats: %w", err)
	}
	s.TotalReviews = w.TotalReviews
	s.AverageRating = w.AverageRating
	s.RatingDistribution = w.RatingDistribution
	s.CategoryAverages = w.CategoryAverages
	s.RecommendationRate = w.RecommendationRate
	if s.RatingDistribution == nil {
		s.RatingDistribution = map[string]int{}
	}
	if s.CategoryAverages == nil {
		s.CategoryAverages = map[string]float64{}
	}
	return nil
}
