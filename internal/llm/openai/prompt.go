package openai

import (
	"encoding/json"
	"fmt"
	"strings"

	"skillbridge-backend/internal/llm"
)

// Message represents an OpenAI chat message.
type Message struct {
	Role    string
	Content string
}

const systemPromptFixJSON = "You are a JSON repair tool. Return only valid JSON that matches the schema exactly."

func buildResumeSkillsPrompt(resumeText string) []Message {
	return []Message{
		{Role: "system", Content: llm.ResumeSkillsPrompt()},
		{Role: "user", Content: "Resume:\n" + resumeText},
	}
}

func buildJobSkillsPrompt(jobText string) []Message {
	return []Message{
		{Role: "system", Content: llm.JobSkillsPrompt()},
		{Role: "user", Content: "Job Description:\n" + jobText},
	}
}

func buildProjectsPrompt(input llm.ProjectsInput) []Message {
	available := input.ResumeSkills.Flatten()
	if available == nil {
		available = []string{}
	}
	gaps := input.GapSkills
	if gaps == nil {
		gaps = []string{}
	}
	paid := input.PaidCourses
	if paid == nil {
		paid = []llm.CourseSummary{}
	}

	primary := input.PrimaryGapSkill
	if strings.TrimSpace(primary) == "" {
		primary = "General"
	}

	replacer := strings.NewReplacer(
		"{{AVAILABLE_SKILLS}}", mustJSON(available),
		"{{GAP_SKILLS}}", mustJSON(gaps),
		"{{PRIMARY_GAP_SKILL}}", mustJSON(primary),
		"{{PAID_COURSES}}", mustJSON(paid),
		"{{JOB_TEXT}}", input.JobText,
	)
	return []Message{
		{Role: "user", Content: replacer.Replace(llm.ProjectsPromptTemplate())},
	}
}

func buildCoverLetterPrompt(input llm.CoverLetterInput) []Message {
	user := fmt.Sprintf(
		"Analyze the resume and job description, then generate a complete cover letter following the template.\n\n"+
			"RESUME TEXT:\n---\n%s\n---\n\n"+
			"JOB DESCRIPTION:\n---\n%s\n---\n\n"+
			"TEMPLATE TO FOLLOW:\n---\n%s\n---\n\n"+
			"CURRENT DATE: %s",
		input.ResumeText, input.JobText, input.Template, input.CurrentDate,
	)
	return []Message{
		{Role: "system", Content: llm.CoverLetterPrompt(input.TemplateCustom)},
		{Role: "user", Content: user},
	}
}

func buildFixPrompt(raw []byte) []Message {
	return []Message{
		{Role: "system", Content: systemPromptFixJSON},
		{Role: "user", Content: fmt.Sprintf("Fix this JSON to match the schema exactly. Output JSON only:\n%s", string(raw))},
	}
}

func mustJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "[]"
	}
	return string(data)
}
