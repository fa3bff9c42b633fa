// Package coverletter drafts a tailored cover letter from a résumé and a
// job description, optionally following a caller-supplied template.
package coverletter

import (
	"context"
	_ "embed"
	"io"
	"strings"
	"time"

	"skillbridge-backend/internal/llm"
	"skillbridge-backend/internal/reports"
	"skillbridge-backend/internal/shared/storage/object"
	"skillbridge-backend/internal/shared/telemetry"
)

//go:embed templates/default.txt
var embeddedTemplate string

// templateObjectKey is where a deployment can override the embedded
// default template in the object store.
const templateObjectKey = "templates/default.txt"

// progressSteps are emitted in order over the stream before the draft
// is returned.
var progressSteps = []string{
	"Extracting personal information from resume...",
	"Extracting company information from job description...",
	"Extracting skills and projects...",
	"Drafting cover letter content...",
}

// Service generates cover letters. Unlike report generation there is no
// result cache: letters are expected to differ run to run.
type Service struct {
	llm   llm.Client
	store object.ObjectStore
	now   func() time.Time
}

// NewService wires the LLM client and an optional object store holding a
// replacement default template. store may be nil.
func NewService(client llm.Client, store object.ObjectStore) *Service {
	return &Service{llm: client, store: store, now: time.Now}
}

// Generate streams progress events followed by exactly one terminal
// event carrying {"cover_letter": ...} or the failure message.
func (s *Service) Generate(ctx context.Context, resumeText, jobText, templateText string) <-chan reports.Event {
	out := make(chan reports.Event, len(progressSteps)+1)
	go func() {
		defer close(out)
		for _, step := range progressSteps {
			sendEvent(ctx, out, reports.Event{Type: reports.EventProgress, Message: step})
		}
		letter, err := s.GenerateSync(ctx, resumeText, jobText, templateText)
		if err != nil {
			sendEvent(ctx, out, reports.Event{Type: reports.EventError, Message: err.Error()})
			return
		}
		sendEvent(ctx, out, reports.Event{
			Type: reports.EventComplete,
			Data: Letter{CoverLetter: letter},
		})
	}()
	return out
}

// Letter is the terminal payload of a successful generation.
type Letter struct {
	CoverLetter string `json:"cover_letter"`
}

// GenerateSync produces the letter without streaming.
func (s *Service) GenerateSync(ctx context.Context, resumeText, jobText, templateText string) (string, error) {
	if strings.TrimSpace(jobText) == "" {
		return "", reports.NewInputError("Job description is required")
	}
	if strings.TrimSpace(resumeText) == "" {
		return "", reports.NewInputError("No text extracted from resume. The file might be image-based or corrupted.")
	}

	custom := strings.TrimSpace(templateText) != ""
	template := templateText
	if !custom {
		template = s.defaultTemplate(ctx)
	}

	letter, err := s.llm.GenerateCoverLetter(ctx, llm.CoverLetterInput{
		ResumeText:     resumeText,
		JobText:        jobText,
		Template:       template,
		TemplateCustom: custom,
		CurrentDate:    s.now().Format("January 2, 2006"),
	})
	if err != nil {
		return "", &reports.CollaboratorError{Stage: "cover letter generation", Err: err}
	}
	letter = strings.TrimSpace(letter)
	if letter == "" {
		return "", &reports.InternalError{Message: "cover letter draft came back empty"}
	}
	return letter, nil
}

// defaultTemplate prefers the object-store copy so operators can adjust
// the letter shape without a redeploy, falling back to the embedded one.
func (s *Service) defaultTemplate(ctx context.Context) string {
	if s.store == nil {
		return embeddedTemplate
	}
	rc, err := s.store.Open(ctx, templateObjectKey)
	if err != nil {
		return embeddedTemplate
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil || len(strings.TrimSpace(string(data))) == 0 {
		telemetry.Warn("cover letter template unreadable, using embedded default", map[string]any{
			"key": templateObjectKey,
		})
		return embeddedTemplate
	}
	return string(data)
}

func sendEvent(ctx context.Context, out chan<- reports.Event, event reports.Event) {
	select {
	case out <- event:
	case <-ctx.Done():
	}
}
