package llm

import _ "embed"

var (
	//go:embed prompts/resume_skills.txt
	promptResumeSkills string
	//go:embed prompts/job_skills.txt
	promptJobSkills string
	//go:embed prompts/projects.txt
	promptProjects string
	//go:embed prompts/cover_letter_default.txt
	promptCoverLetterDefault string
	//go:embed prompts/cover_letter_custom.txt
	promptCoverLetterCustom string
)

// ResumeSkillsPrompt returns the system prompt for resume skill extraction.
func ResumeSkillsPrompt() string { return promptResumeSkills }

// JobSkillsPrompt returns the system prompt for job description parsing.
func JobSkillsPrompt() string { return promptJobSkills }

// ProjectsPromptTemplate returns the project recommendation prompt with its
// {{...}} placeholders still in place.
func ProjectsPromptTemplate() string { return promptProjects }

// CoverLetterPrompt returns the drafting system prompt. Custom templates get
// the header/body split variant.
func CoverLetterPrompt(customTemplate bool) string {
	if customTemplate {
		return promptCoverLetterCustom
	}
	return promptCoverLetterDefault
}
