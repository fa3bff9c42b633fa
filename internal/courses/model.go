package courses

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Tier partitions the catalog into free and paid offerings.
type Tier string

const (
	TierFree Tier = "free"
	TierPaid Tier = "paid"
)

// StoredCourse is a catalog row as persisted.
type StoredCourse struct {
	ID          uuid.UUID
	Title       string
	Platform    string
	Tier        Tier
	Price       string
	Rating      *float64
	Duration    string
	Level       string
	Description string
	URL         string
	CreatedAt   time.Time
}

// Course is the recommendation output shape.
type Course struct {
	Title            string   `json:"title"`
	Platform         string   `json:"platform"`
	SkillsCovered    []string `json:"skills_covered"`
	AdditionalSkills []string `json:"additional_skills"`
	Duration         string   `json:"duration"`
	Difficulty       string   `json:"difficulty"`
	Description      string   `json:"description"`
	WhyEfficient     string   `json:"why_efficient"`
	Cost             string   `json:"cost"`
	Link             string   `json:"link"`
	Rating           *float64 `json:"rating"`
}

// Recommendations is the course block of a skill-gap report.
type Recommendations struct {
	FreeCourses        []Course            `json:"free_courses"`
	PaidCourses        []Course            `json:"paid_courses"`
	SkillCoverage      map[string][]string `json:"skill_coverage"`
	UncoveredSkills    []string            `json:"uncovered_skills"`
	CoveragePercentage int                 `json:"coverage_percentage"`
}

// EmptyRecommendations returns the zero recommendation block with every
// collection non-nil so the JSON encodes as [] and {} rather than null.
func EmptyRecommendations(coveragePct int) Recommendations {
	return Recommendations{
		FreeCourses:        []Course{},
		PaidCourses:        []Course{},
		SkillCoverage:      map[string][]string{},
		UncoveredSkills:    []string{},
		CoveragePercentage: coveragePct,
	}
}

// normalizeLevel maps free-form catalog levels onto the difficulty labels
// surfaced in reports.
func normalizeLevel(level string) string {
	trimmed := strings.TrimSpace(level)
	if trimmed == "" {
		return "All Levels"
	}
	lower := strings.ToLower(trimmed)
	switch {
	case strings.Contains(lower, "beginner"), strings.Contains(lower, "all"):
		return "Beginner"
	case strings.Contains(lower, "intermediate"):
		return "Intermediate"
	case strings.Contains(lower, "advanced"):
		return "Advanced"
	}
	return trimmed
}

func normalizeDuration(duration string) string {
	if strings.TrimSpace(duration) == "" {
		return "N/A"
	}
	return duration
}
