package reports

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-contrib/sse"
	"github.com/gin-gonic/gin"

	"skillbridge-backend/internal/extract"
	"skillbridge-backend/internal/shared/server/respond"
	"skillbridge-backend/internal/shared/util"
)

// MaxResumeBytes caps uploaded resume size.
const MaxResumeBytes = 10 << 20

// Handler wires HTTP handlers to the report service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze", h.analyzeStream)
	rg.POST("/analyze-sync", h.analyzeSync)
}

// AnalyzeInput is a parsed analyze request: resume text plus the raw bytes
// the fingerprint is computed from.
type AnalyzeInput struct {
	ResumeBytes []byte
	ResumeText  string
	JobText     string
	Fingerprint string
}

// ParseAnalyzeRequest reads the multipart form (resume file + job_text
// field), extracts the resume text and computes the request fingerprint.
// Failures are InputErrors.
func ParseAnalyzeRequest(c *gin.Context) (AnalyzeInput, error) {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return AnalyzeInput{}, NewInputError("Resume file is required")
	}
	if fileHeader.Size > MaxResumeBytes {
		return AnalyzeInput{}, NewInputError("Resume file too large")
	}

	jobText := c.PostForm("job_text")

	file, err := fileHeader.Open()
	if err != nil {
		return AnalyzeInput{}, NewInputError("Failed to read resume file")
	}
	defer file.Close()

	raw, err := io.ReadAll(io.LimitReader(file, MaxResumeBytes+1))
	if err != nil {
		return AnalyzeInput{}, NewInputError("Failed to read resume file")
	}
	if len(raw) > MaxResumeBytes {
		return AnalyzeInput{}, NewInputError("Resume file too large")
	}

	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		return AnalyzeInput{}, NewInputError("Invalid resume file name")
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	text, err := extract.ExtractTextFromBytes(c.Request.Context(), raw, mimeType, fileName)
	if err != nil {
		return AnalyzeInput{}, NewInputError("Failed to extract text from resume: %v", err)
	}
	if text == "" {
		return AnalyzeInput{}, NewInputError("No text extracted from resume. The file might be image-based or corrupted.")
	}

	fingerprint := util.Fingerprint(raw, jobText)
	c.Set("fingerprint", fingerprint)

	return AnalyzeInput{
		ResumeBytes: raw,
		ResumeText:  text,
		JobText:     jobText,
		Fingerprint: fingerprint,
	}, nil
}

// analyzeStream runs the pipeline and streams progress as Server-Sent
// Events. The stream always opens with 200; failures surface as a terminal
// error event rather than an HTTP status.
func (h *Handler) analyzeStream(c *gin.Context) {
	SetStreamHeaders(c)

	input, err := ParseAnalyzeRequest(c)
	if err != nil {
		WriteEvent(c.Writer, Event{Type: EventError, Message: err.Error()})
		return
	}

	events := h.Svc.Generate(c.Request.Context(), input.Fingerprint, input.ResumeText, input.JobText)
	StreamEvents(c, events)
}

// analyzeSync runs the pipeline and returns the final report as plain JSON.
func (h *Handler) analyzeSync(c *gin.Context) {
	input, err := ParseAnalyzeRequest(c)
	if err != nil {
		RespondError(c, err)
		return
	}

	report, err := h.Svc.GenerateSync(c.Request.Context(), input.Fingerprint, input.ResumeText, input.JobText)
	if err != nil {
		RespondError(c, err)
		return
	}
	respond.OK(c, report)
}

// SetStreamHeaders prepares the response for Server-Sent Events.
func SetStreamHeaders(c *gin.Context) {
	header := c.Writer.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
}

// WriteEvent encodes one SSE frame and flushes it.
func WriteEvent(w gin.ResponseWriter, event Event) {
	if err := sse.Encode(w, sse.Event{Data: event}); err != nil {
		return
	}
	w.Flush()
}

// StreamEvents drains the event channel into the response, one SSE frame
// per event, stopping when the channel closes or the client goes away.
func StreamEvents(c *gin.Context, events <-chan Event) {
	done := c.Request.Context().Done()
	for {
		select {
		case <-done:
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			WriteEvent(c.Writer, event)
		}
	}
}

// RespondError maps the error taxonomy onto HTTP statuses for synchronous
// endpoints.
func RespondError(c *gin.Context, err error) {
	switch {
	case IsInputError(err):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case IsCollaboratorError(err):
		respond.Error(c, http.StatusBadGateway, "collaborator_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fmt.Sprintf("unexpected error: %v", err), nil)
	}
}
