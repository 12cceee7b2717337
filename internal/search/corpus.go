// file: internal/search/corpus.go
package search

import "github.com/c5551051011/insidelab-frontend/internal/models"

// ReferenceLabs is the fixed lab corpus evaluated when search runs in
// degraded or offline mode.
func ReferenceLabs() []models.Lab {
	return []models.Lab{
		{
			ID:             "1",
			LabName:        "Computer Vision Lab",
			ProfessorName:  "Dr. Sarah Chen",
			UniversityName: "Stanford University",
			Department:     "Computer Science",
			ResearchGroup:  "AI Research Group",
			OverallRating:  4.8,
			ReviewCount:    24,
			ResearchAreas:  []string{"Computer Vision", "Machine Learning", "Deep Learning"},
			Tags:           []string{"Well Funded", "International Friendly", "PhD Recruiting"},
			Recruitment:    models.RecruitmentStatus{PhD: true, Intern: true},
			Description:    "Leading research in computer vision and deep learning applications.",
		},
		{
			ID:             "2",
			LabName:        "Robotics and AI Lab",
			ProfessorName:  "Dr. Michael Johnson",
			UniversityName: "MIT",
			Department:     "Electrical Engineering",
			ResearchGroup:  "Robotics Division",
			OverallRating:  4.6,
			ReviewCount:    18,
			ResearchAreas:  []string{"Robotics", "AI", "Control Systems"},
			Tags:           []string{"Collaborative", "Good Work-Life Balance"},
			Recruitment:    models.RecruitmentStatus{PhD: true, PostDoc: true},
			Description:    "Cutting-edge research in autonomous systems and robotics.",
		},
		{
			ID:             "3",
			LabName:        "Natural Language Processing Lab",
			ProfessorName:  "Dr. Emily Zhang",
			UniversityName: "Carnegie Mellon University",
			Department:     "Language Technologies Institute",
			ResearchGroup:  "NLP Research Group",
			OverallRating:  4.9,
			ReviewCount:    31,
			ResearchAreas:  []string{"NLP", "Computational Linguistics", "Machine Learning"},
			Tags:           []string{"Cutting-edge Research", "International Friendly", "Well Funded"},
			Recruitment:    models.RecruitmentStatus{PhD: true, Intern: true},
			Description:    "Advanced natural language understanding and generation research.",
		},
		{
			ID:             "4",
			LabName:        "Human-Computer Interaction Lab",
			ProfessorName:  "Dr. Alex Kim",
			UniversityName: "UC Berkeley",
			Department:     "EECS",
			ResearchGroup:  "HCI Research",
			OverallRating:  4.7,
			ReviewCount:    15,
			ResearchAreas:  []string{"HCI", "User Experience", "Design"},
			Tags:           []string{"User-Centered", "Interdisciplinary"},
			Recruitment:    models.RecruitmentStatus{PostDoc: true, Intern: true},
			Description:    "Exploring the future of human-computer interaction.",
		},
	}
}

// ReferenceSuggestions is the pool suggestions are drawn from in
// degraded or offline mode.
func ReferenceSuggestions() []string {
	return []string{
		"Computer Vision Lab",
		"Machine Learning Research",
		"Stanford University",
		"MIT CSAIL",
		"Dr. Sarah Chen",
		"Natural Language Processing",
		"Robotics Lab",
		"Carnegie Mellon University",
		"Berkeley AI Research",
		"Deep Learning Group",
	}
}

// FallbackSuggestions is served when a live suggestion fetch fails.
func FallbackSuggestions() []string {
	return []string{
		"Computer Vision",
		"Machine Learning",
		"Natural Language Processing",
		"Robotics",
		"Stanford University",
	}
}

// FilterOptions are the selectable values offered by the filter
// sidebar.
type FilterOptions struct {
	Universities  []string     `json:"universities"`
	ResearchAreas []string     `json:"researchAreas"`
	Tags          []string     `json:"tags"`
	SortOptions   []SortOption `json:"sortOptions"`
}

// SortOption pairs a sort key with its display label.
type SortOption struct {
	Value models.SortKey `json:"value"`
	Label string         `json:"label"`
}

// DefaultFilterOptions returns the filter sidebar's option sets.
func DefaultFilterOptions() FilterOptions {
	return FilterOptions{
		Universities: []string{
			"Stanford University",
			"MIT",
			"Carnegie Mellon University",
			"UC Berkeley",
			"Harvard University",
			"University of Washington",
			"Georgia Tech",
			"Caltech",
		},
		ResearchAreas: []string{
			"Machine Learning",
			"Computer Vision",
			"Natural Language Processing",
			"Robotics",
			"Human-Computer Interaction",
			"Bioinformatics",
			"Computer Graphics",
			"Cybersecurity",
			"Database Systems",
			"Distributed Systems",
		},
		Tags: []string{
			"Well Funded",
			"International Friendly",
			"Good Work-Life Balance",
			"Cutting-edge Research",
			"Collaborative",
			"Industry Connections",
			"Publication Focused",
			"Startup Friendly",
			"Remote Friendly",
			"Diverse Team",
		},
		SortOptions: []SortOption{
			{Value: models.SortByRating, Label: "Highest Rating"},
			{Value: models.SortByReviews, Label: "Most Reviews"},
			{Value: models.SortByLabName, Label: "Lab Name (A-Z)"},
			{Value: models.SortByProfessor, Label: "Professor Name (A-Z)"},
			{Value: models.SortByUniversity, Label: "University Name (A-Z)"},
		},
	}
}
