package coverletter

import (
	"io"

	"github.com/gin-gonic/gin"

	"skillbridge-backend/internal/extract"
	"skillbridge-backend/internal/reports"
	"skillbridge-backend/internal/shared/server/respond"
)

// MaxTemplateBytes caps uploaded template documents.
const MaxTemplateBytes = 2 << 20

// Handler exposes the cover letter endpoints.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches cover letter routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/cover-letter", h.generateStream)
	rg.POST("/cover-letter-sync", h.generateSync)
}

type generateInput struct {
	ResumeText   string
	JobText      string
	TemplateText string
}

// parseRequest reads the résumé and job text the same way the analysis
// endpoints do, plus an optional "template" document.
func parseRequest(c *gin.Context) (generateInput, error) {
	base, err := reports.ParseAnalyzeRequest(c)
	if err != nil {
		return generateInput{}, err
	}
	templateText, err := readTemplate(c)
	if err != nil {
		return generateInput{}, err
	}
	return generateInput{
		ResumeText:   base.ResumeText,
		JobText:      base.JobText,
		TemplateText: templateText,
	}, nil
}

func readTemplate(c *gin.Context) (string, error) {
	fileHeader, err := c.FormFile("template")
	if err != nil {
		// Optional field; absence means the default template.
		return "", nil
	}
	if fileHeader.Size > MaxTemplateBytes {
		return "", reports.NewInputError("Template file too large")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return "", reports.NewInputError("Failed to read template file")
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, MaxTemplateBytes+1))
	if err != nil {
		return "", reports.NewInputError("Failed to read template file")
	}
	if len(raw) > MaxTemplateBytes {
		return "", reports.NewInputError("Template file too large")
	}
	text, err := extract.ExtractTextFromBytes(c.Request.Context(), raw, fileHeader.Header.Get("Content-Type"), fileHeader.Filename)
	if err != nil {
		return "", reports.NewInputError("Failed to extract text from template: %v", err)
	}
	return text, nil
}

// generateStream emits progress over SSE and ends with a single terminal
// event. Parse failures surface as an in-stream error event.
func (h *Handler) generateStream(c *gin.Context) {
	reports.SetStreamHeaders(c)

	input, err := parseRequest(c)
	if err != nil {
		reports.WriteEvent(c.Writer, reports.Event{Type: reports.EventError, Message: err.Error()})
		return
	}
	reports.StreamEvents(c, h.Svc.Generate(c.Request.Context(), input.ResumeText, input.JobText, input.TemplateText))
}

// generateSync returns the finished letter as plain JSON.
func (h *Handler) generateSync(c *gin.Context) {
	input, err := parseRequest(c)
	if err != nil {
		reports.RespondError(c, err)
		return
	}
	letter, err := h.Svc.GenerateSync(c.Request.Context(), input.ResumeText, input.JobText, input.TemplateText)
	if err != nil {
		reports.RespondError(c, err)
		return
	}
	respond.OK(c, Letter{CoverLetter: letter})
}
