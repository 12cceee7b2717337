// file: internal/search/intent.go
package search

import (
	"regexp"
	"strings"
)

// Intent is the heuristic classification of a free-text query. It only
// drives display affordances (icon, label, placeholder); filtering
// never depends on it.
type Intent string

const (
	IntentUniversity   Intent = "university"
	IntentProfessor    Intent = "professor"
	IntentLabName      Intent = "labName"
	IntentResearchArea Intent = "researchArea"
	IntentGeneral      Intent = "general"
)

// intentPatterns are evaluated in order; the first match wins.
var intentPatterns = []struct {
	intent  Intent
	pattern *regexp.Regexp
}{
	{IntentUniversity, regexp.MustCompile(`(?i)\b(university|college|institute|school|mit|stanford|harvard|berkeley|cmu)\b`)},
	{IntentProfessor, regexp.MustCompile(`(?i)\b(dr\.?|prof\.?|professor)\s`)},
	{IntentLabName, regexp.MustCompile(`(?i)\b(lab|laboratory|group|center|institute)\b`)},
	{IntentResearchArea, regexp.MustCompile(`(?i)\b(machine learning|ml|ai|computer vision|nlp|robotics|bioinformatics|hci)\b`)},
}

// DetectIntent classifies a query.
func DetectIntent(query string) Intent {
	normalized := strings.ToLower(strings.TrimSpace(query))
	for _, p := range intentPatterns {
		if p.pattern.MatchString(normalized) {
			return p.intent
		}
	}
	return IntentGeneral
}

// IntentInfo is the display metadata for an intent.
type IntentInfo struct {
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
}

var intentInfos = map[Intent]IntentInfo{
	IntentUniversity: {
		Icon:        "school",
		Color:       "#2563EB",
		Label:       "University",
		Placeholder: "Search universities...",
	},
	IntentProfessor: {
		Icon:        "user",
		Color:       "#10B981",
		Label:       "Professor",
		Placeholder: "Search professors...",
	},
	IntentLabName: {
		Icon:        "beaker",
		Color:       "#8B5CF6",
		Label:       "Lab",
		Placeholder: "Search lab names...",
	},
	IntentResearchArea: {
		Icon:        "beaker",
		Color:       "#F59E0B",
		Label:       "Research Area",
		Placeholder: "Search research areas...",
	},
	IntentGeneral: {
		Icon:        "search",
		Color:       "#2563EB",
		Label:       "Search",
		Placeholder: "Search labs, professors, universities...",
	},
}

// InfoFor returns the display metadata for an intent, falling back to
// the general entry for unknown values.
func InfoFor(intent Intent) IntentInfo {
	if info, ok := intentInfos[intent]; ok {
		return info
	}
	return intentInfos[IntentGeneral]
}
