package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"skillbridge-backend/internal/skills"
)

// Client abstracts LLM providers for skill extraction and content generation.
type Client interface {
	ExtractResumeSkills(ctx context.Context, resumeText string) (skills.Set, error)
	ExtractJobSkills(ctx context.Context, jobText string) (JobSkills, error)
	RecommendProjects(ctx context.Context, input ProjectsInput) (map[string][]Project, error)
	GenerateCoverLetter(ctx context.Context, input CoverLetterInput) (string, error)
}

// JobSkills is the structured result of parsing a job description.
type JobSkills struct {
	Profile          skills.RequirementProfile
	IsGradStudentJob bool
}

// CourseSummary is the slice of a course recommendation passed into the
// project prompt so generated projects align with what the candidate
// would actually learn.
type CourseSummary struct {
	Title         string   `json:"title"`
	Platform      string   `json:"platform"`
	SkillsCovered []string `json:"skills_covered"`
	Description   string   `json:"description"`
}

// ProjectsInput captures everything the project recommender feeds the model.
type ProjectsInput struct {
	JobText         string
	ResumeSkills    skills.Set
	GapSkills       []string
	PrimaryGapSkill string
	PaidCourses     []CourseSummary
}

// CoverLetterInput captures the inputs for cover letter drafting.
type CoverLetterInput struct {
	ResumeText     string
	JobText        string
	Template       string
	TemplateCustom bool
	CurrentDate    string
}

// ImplementationPhase is one step of a project build plan.
type ImplementationPhase struct {
	Phase   string `json:"phase"`
	Details string `json:"details"`
}

// Project is a portfolio project suggestion keyed under a gap skill.
type Project struct {
	Title                string                `json:"title"`
	Difficulty           string                `json:"difficulty"`
	EstimatedTime        string                `json:"estimated_time"`
	Description          string                `json:"description"`
	KeyFeatures          []string              `json:"key_features"`
	SkillsDemonstrated   []string              `json:"skills_demonstrated"`
	TechStack            []string              `json:"tech_stack"`
	ProjectOutline       string                `json:"project_outline"`
	ImplementationPhases []ImplementationPhase `json:"implementation_phases"`
	PortfolioImpact      string                `json:"portfolio_impact"`
	BonusChallenges      []string              `json:"bonus_challenges"`
}

// ErrNotImplemented is returned by the placeholder client.
var ErrNotImplemented = errors.New("LLM not implemented")

// PlaceholderClient is a stub implementation until provider wiring is added.
type PlaceholderClient struct{}

func (PlaceholderClient) ExtractResumeSkills(ctx context.Context, resumeText string) (skills.Set, error) {
	_ = ctx
	_ = resumeText
	return nil, ErrNotImplemented
}

func (PlaceholderClient) ExtractJobSkills(ctx context.Context, jobText string) (JobSkills, error) {
	_ = ctx
	_ = jobText
	return JobSkills{}, ErrNotImplemented
}

func (PlaceholderClient) RecommendProjects(ctx context.Context, input ProjectsInput) (map[string][]Project, error) {
	_ = ctx
	_ = input
	return nil, ErrNotImplemented
}

func (PlaceholderClient) GenerateCoverLetter(ctx context.Context, input CoverLetterInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrNotImplemented
}

var _ Client = PlaceholderClient{}

// ParseResumeSkills decodes the resume extractor payload. The model is asked
// for {"skills": {bucket: [...]}} but a flat bucket map is tolerated.
func ParseResumeSkills(raw json.RawMessage) (skills.Set, error) {
	var wrapped struct {
		Skills map[string][]string `json:"skills"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && len(wrapped.Skills) > 0 {
		return skills.NewSet(wrapped.Skills), nil
	}
	var flat map[string][]string
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, fmt.Errorf("resume skills payload: %w", err)
	}
	return skills.NewSet(flat), nil
}

// ParseJobSkills decodes the job extractor payload into a requirement profile.
func ParseJobSkills(raw json.RawMessage) (JobSkills, error) {
	var payload struct {
		Required         json.RawMessage `json:"required"`
		Preferred        json.RawMessage `json:"preferred"`
		IsGradStudentJob bool            `json:"is_grad_student_job"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return JobSkills{}, fmt.Errorf("job skills payload: %w", err)
	}

	required, err := decodeSkillBlock(payload.Required)
	if err != nil {
		return JobSkills{}, fmt.Errorf("job skills payload: required: %w", err)
	}
	preferred, err := decodeSkillBlock(payload.Preferred)
	if err != nil {
		return JobSkills{}, fmt.Errorf("job skills payload: preferred: %w", err)
	}

	profile := skills.RequirementProfile{
		Required:  skills.NewSet(required),
		Preferred: skills.NewSet(preferred),
	}
	profile = profile.Dedup()
	return JobSkills{Profile: profile, IsGradStudentJob: payload.IsGradStudentJob}, nil
}

// decodeSkillBlock accepts either {"skills": {bucket: [...]}} or a flat
// bucket map. A missing block yields an empty map.
func decodeSkillBlock(raw json.RawMessage) (map[string][]string, error) {
	if len(raw) == 0 || strings.TrimSpace(string(raw)) == "null" {
		return map[string][]string{}, nil
	}
	var wrapped struct {
		Skills map[string][]string `json:"skills"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Skills != nil {
		return wrapped.Skills, nil
	}
	var flat map[string][]string
	if err := json.Unmarshal(raw, &flat); err != nil {
		return nil, err
	}
	if flat == nil {
		flat = map[string][]string{}
	}
	return flat, nil
}

// ParseProjects decodes and sanitizes the project recommender payload:
// one gap-skill key mapping to at most two clamped projects, the project
// demonstrating the most skills listed first.
func ParseProjects(raw json.RawMessage) (map[string][]Project, error) {
	var payload map[string][]Project
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("projects payload: %w", err)
	}
	out := make(map[string][]Project, 1)
	for key, projects := range payload {
		key = clampString(key, 80)
		if key == "" || len(projects) == 0 {
			continue
		}
		if len(projects) > 2 {
			projects = projects[:2]
		}
		for i := range projects {
			clampProject(&projects[i])
		}
		if len(projects) == 2 && len(projects[1].SkillsDemonstrated) > len(projects[0].SkillsDemonstrated) {
			projects[0], projects[1] = projects[1], projects[0]
		}
		out[key] = projects
		break
	}
	return out, nil
}

func clampProject(p *Project) {
	p.Title = clampString(p.Title, 200)
	p.Difficulty = clampString(p.Difficulty, 40)
	p.EstimatedTime = clampString(p.EstimatedTime, 60)
	p.Description = clampString(p.Description, 800)
	p.KeyFeatures = clampList(p.KeyFeatures, 5)
	p.SkillsDemonstrated = clampList(p.SkillsDemonstrated, 10)
	p.TechStack = clampList(p.TechStack, 15)
	p.ProjectOutline = clampString(p.ProjectOutline, 500)
	p.PortfolioImpact = clampString(p.PortfolioImpact, 400)
	p.BonusChallenges = clampList(p.BonusChallenges, 8)
	if len(p.ImplementationPhases) > 10 {
		p.ImplementationPhases = p.ImplementationPhases[:10]
	}
	phases := p.ImplementationPhases[:0]
	for _, phase := range p.ImplementationPhases {
		phase.Phase = clampString(phase.Phase, 100)
		phase.Details = clampString(phase.Details, 500)
		if phase.Phase != "" {
			phases = append(phases, phase)
		}
	}
	p.ImplementationPhases = phases
	if p.KeyFeatures == nil {
		p.KeyFeatures = []string{}
	}
	if p.SkillsDemonstrated == nil {
		p.SkillsDemonstrated = []string{}
	}
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
	if p.BonusChallenges == nil {
		p.BonusChallenges = []string{}
	}
	if p.ImplementationPhases == nil {
		p.ImplementationPhases = []ImplementationPhase{}
	}
}

func clampString(s string, max int) string {
	s = strings.TrimSpace(s)
	if len(s) > max {
		return s[:max]
	}
	return s
}

func clampList(values []string, max int) []string {
	if len(values) > max {
		values = values[:max]
	}
	return values
}
