package openai

import (
	"strings"
	"testing"

	"skillbridge-backend/internal/llm"
	"skillbridge-backend/internal/skills"
)

func TestBuildProjectsPrompt_ReplacesPlaceholders(t *testing.T) {
	input := llm.ProjectsInput{
		JobText:         "We need a Kubernetes platform engineer.",
		ResumeSkills:    skills.NewSet(map[string][]string{"ProgrammingLanguages": {"Go"}}),
		GapSkills:       []string{"Kubernetes", "Terraform"},
		PrimaryGapSkill: "Kubernetes",
		PaidCourses: []llm.CourseSummary{
			{Title: "Kubernetes Deep Dive", Platform: "Udemy", SkillsCovered: []string{"Kubernetes"}},
		},
	}

	messages := buildProjectsPrompt(input)
	if len(messages) != 1 {
		t.Fatalf("expected single user message, got %d", len(messages))
	}
	content := messages[0].Content
	if strings.Contains(content, "{{") {
		t.Fatalf("unreplaced placeholder in prompt:\n%s", content)
	}
	for _, want := range []string{`"Go"`, `"Terraform"`, `"Kubernetes Deep Dive"`, "platform engineer"} {
		if !strings.Contains(content, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}

func TestBuildProjectsPrompt_DefaultsPrimarySkill(t *testing.T) {
	messages := buildProjectsPrompt(llm.ProjectsInput{JobText: "job"})
	if !strings.Contains(messages[0].Content, `"General"`) {
		t.Fatal("expected General fallback for primary skill")
	}
}

func TestBuildCoverLetterPrompt_SelectsSystemPrompt(t *testing.T) {
	base := llm.CoverLetterInput{ResumeText: "resume", JobText: "job", Template: "Dear Hiring Manager:", CurrentDate: "August 26, 2026"}

	custom := base
	custom.TemplateCustom = true

	defaultMsgs := buildCoverLetterPrompt(base)
	customMsgs := buildCoverLetterPrompt(custom)
	if defaultMsgs[0].Content == customMsgs[0].Content {
		t.Fatal("custom and default templates should use different system prompts")
	}
	if !strings.Contains(defaultMsgs[1].Content, "CURRENT DATE: August 26, 2026") {
		t.Fatalf("user prompt missing date:\n%s", defaultMsgs[1].Content)
	}
}

func TestBuildFixPrompt(t *testing.T) {
	messages := buildFixPrompt([]byte(`{"broken":`))
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Content != systemPromptFixJSON {
		t.Fatal("fix prompt should use the repair system prompt")
	}
	if !strings.Contains(messages[1].Content, `{"broken":`) {
		t.Fatal("fix prompt should carry the raw output")
	}
}
