package llm

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"skillbridge-backend/internal/skills"
)

func TestParseResumeSkills_Wrapped(t *testing.T) {
	raw := json.RawMessage(`{"skills":{"ProgrammingLanguages":["python3","SQL"],"ToolsPlatforms":["Docker"]}}`)
	set, err := ParseResumeSkills(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	langs := set.Get(skills.CategoryProgrammingLanguages)
	if len(langs) != 2 || langs[0] != "Python" {
		t.Fatalf("unexpected languages: %v", langs)
	}
}

func TestParseResumeSkills_FlatFallback(t *testing.T) {
	raw := json.RawMessage(`{"ProgrammingLanguages":["Go"],"FrameworksLibraries":["Gin"]}`)
	set, err := ParseResumeSkills(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if set.Len() != 2 {
		t.Fatalf("expected 2 skills, got %d", set.Len())
	}
}

func TestParseJobSkills(t *testing.T) {
	raw := json.RawMessage(`{
		"required": {"skills": {"ProgrammingLanguages": ["Python"], "ToolsPlatforms": ["Docker", "AWS"]}},
		"preferred": {"skills": {"ProgrammingLanguages": ["Python"], "FrameworksLibraries": ["TensorFlow"]}},
		"is_grad_student_job": true
	}`)
	job, err := ParseJobSkills(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !job.IsGradStudentJob {
		t.Fatal("expected grad student flag")
	}
	if job.Profile.Required.Len() != 3 {
		t.Fatalf("expected 3 required skills, got %d", job.Profile.Required.Len())
	}
	// Python overlaps required, so dedup removes it from preferred.
	if job.Profile.Preferred.Len() != 1 {
		t.Fatalf("expected 1 preferred skill, got %d", job.Profile.Preferred.Len())
	}
}

func TestParseJobSkills_FlatBlocksAndMissingPreferred(t *testing.T) {
	raw := json.RawMessage(`{"required": {"ProgrammingLanguages": ["Go"]}}`)
	job, err := ParseJobSkills(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if job.Profile.Required.Len() != 1 || job.Profile.Preferred.Len() != 0 {
		t.Fatalf("unexpected profile: required=%d preferred=%d", job.Profile.Required.Len(), job.Profile.Preferred.Len())
	}
	if job.IsGradStudentJob {
		t.Fatal("grad flag should default to false")
	}
}

func TestParseProjects_ClampsAndSorts(t *testing.T) {
	raw := json.RawMessage(`{
		"Kubernetes": [
			{"title": "Small", "skills_demonstrated": ["Go"]},
			{"title": "Big", "skills_demonstrated": ["Go", "Docker", "Kubernetes"]},
			{"title": "Extra", "skills_demonstrated": []}
		]
	}`)
	projects, err := ParseProjects(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	got, ok := projects["Kubernetes"]
	if !ok {
		t.Fatalf("missing key, got %v", projects)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(got))
	}
	if got[0].Title != "Big" {
		t.Fatalf("expected most skills first, got %q", got[0].Title)
	}
	if got[0].KeyFeatures == nil || got[0].TechStack == nil {
		t.Fatal("list fields should be non-nil after clamping")
	}
}

func TestParseProjects_LongFieldsTruncated(t *testing.T) {
	long := strings.Repeat("x", 1000)
	raw := json.RawMessage(`{"Go": [{"title": "` + long + `", "description": "` + long + `"}]}`)
	projects, err := ParseProjects(raw)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	p := projects["Go"][0]
	if len(p.Title) != 200 || len(p.Description) != 800 {
		t.Fatalf("clamp failed: title=%d description=%d", len(p.Title), len(p.Description))
	}
}

func TestPlaceholderClient(t *testing.T) {
	var c Client = PlaceholderClient{}
	if _, err := c.ExtractResumeSkills(context.Background(), "resume"); err != ErrNotImplemented {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}
}
