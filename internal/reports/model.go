package reports

import (
	"skillbridge-backend/internal/courses"
	"skillbridge-backend/internal/llm"
	"skillbridge-backend/internal/match"
)

// Report is the full analysis payload returned to clients: the match scores
// plus course and project recommendations.
type Report struct {
	match.Report
	CourseRecommendations  courses.Recommendations  `json:"course_recommendations"`
	ProjectRecommendations map[string][]llm.Project `json:"project_recommendations"`
}
