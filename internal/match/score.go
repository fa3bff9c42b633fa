// Package match computes weighted skill-gap scores between a résumé skill
// set and a job's requirement profile. Scoring is a pure function: no I/O,
// total over well-formed inputs.
package match

import (
	"math"
	"sort"
	"strings"

	"skillbridge-backend/internal/skills"
)

// Default block weights. Required skills count double per the product
// scoring rules; both are overridable through configuration.
const (
	DefaultRequiredWeight  = 2.0
	DefaultPreferredWeight = 1.0
)

// Config carries the weighting ratio applied to the two requirement blocks.
type Config struct {
	RequiredWeight  float64
	PreferredWeight float64
}

// DefaultConfig returns the standard 2:1 required:preferred weighting.
func DefaultConfig() Config {
	return Config{RequiredWeight: DefaultRequiredWeight, PreferredWeight: DefaultPreferredWeight}
}

// BlockScore is the coverage result for one requirement block.
type BlockScore struct {
	TotalCount    int      `json:"total_count"`
	CoveredCount  int      `json:"covered_count"`
	MatchScore    float64  `json:"match_score"`
	CoveredSkills []string `json:"covered_skills"`
	MissingSkills []string `json:"missing_skills"`
}

// OverallScore aggregates both blocks into a single weighted figure.
type OverallScore struct {
	WeightedScore float64 `json:"weighted_score"`
	TotalSkills   int     `json:"total_skills"`
	MatchedSkills int     `json:"matched_skills"`
}

// Report is the immutable result of scoring one résumé against one job.
type Report struct {
	Overall          OverallScore `json:"overall_score"`
	Required         BlockScore   `json:"required_skills"`
	Preferred        BlockScore   `json:"preferred_skills"`
	IsGradStudentJob bool         `json:"is_grad_student_job"`
}

// Score compares normalized résumé skills against a requirement profile.
// Matching is exact after normalization — "Python" covers "python" but not
// "Python 3.11"; fuzzy matching is deliberately out of scope. gradJob is a
// classification supplied by the job extractor and passed through unchanged.
//
// Both inputs must already be normalized (skills.NewSet output); Score does
// not re-normalize.
func Score(resume skills.Set, req skills.RequirementProfile, gradJob bool, cfg Config) Report {
	if cfg.RequiredWeight <= 0 && cfg.PreferredWeight <= 0 {
		cfg = DefaultConfig()
	}
	req = req.Dedup()

	have := resume.FoldSet()
	required := scoreBlock(req.Required, have)
	preferred := scoreBlock(req.Preferred, have)

	// Weight only the blocks that actually carry requirements, so a job
	// with no preferred section is not penalized for it.
	weightSum := 0.0
	weighted := 0.0
	if required.TotalCount > 0 {
		weighted += cfg.RequiredWeight * float64(required.CoveredCount) / float64(required.TotalCount)
		weightSum += cfg.RequiredWeight
	}
	if preferred.TotalCount > 0 {
		weighted += cfg.PreferredWeight * float64(preferred.CoveredCount) / float64(preferred.TotalCount)
		weightSum += cfg.PreferredWeight
	}
	overall := 0.0
	if weightSum > 0 {
		overall = round1(100 * weighted / weightSum)
	}

	return Report{
		Overall: OverallScore{
			WeightedScore: overall,
			TotalSkills:   required.TotalCount + preferred.TotalCount,
			MatchedSkills: required.CoveredCount + preferred.CoveredCount,
		},
		Required:         required,
		Preferred:        preferred,
		IsGradStudentJob: gradJob,
	}
}

func scoreBlock(need skills.Set, have map[string]struct{}) BlockScore {
	covered := []string{}
	missing := []string{}
	for _, name := range need.Flatten() {
		if _, ok := have[strings.ToLower(name)]; ok {
			covered = append(covered, name)
		} else {
			missing = append(missing, name)
		}
	}
	sort.Strings(covered)
	sort.Strings(missing)

	total := len(covered) + len(missing)
	score := 0.0
	if total > 0 {
		score = round1(100 * float64(len(covered)) / float64(total))
	}
	return BlockScore{
		TotalCount:    total,
		CoveredCount:  len(covered),
		MatchScore:    score,
		CoveredSkills: covered,
		MissingSkills: missing,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
