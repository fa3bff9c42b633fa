package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"skillbridge-backend/internal/llm"
	"skillbridge-backend/internal/shared/telemetry"
	"skillbridge-backend/internal/skills"
)

const apiURL = "https://api.openai.com/v1/chat/completions"

// Client implements llm.Client using OpenAI Chat Completions.
type Client struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient constructs a new OpenAI client.
func NewClient(apiKey, model string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("LLM_MODEL is required for OpenAI")
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &Client{
		apiKey: apiKey,
		model:  model,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    *float32        `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Usage *struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage,omitempty"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

func (c *Client) ExtractResumeSkills(ctx context.Context, resumeText string) (skills.Set, error) {
	raw, err := c.completeJSON(ctx, "resume_skills", buildResumeSkillsPrompt(resumeText))
	if err != nil {
		return nil, err
	}
	return llm.ParseResumeSkills(raw)
}

func (c *Client) ExtractJobSkills(ctx context.Context, jobText string) (llm.JobSkills, error) {
	raw, err := c.completeJSON(ctx, "job_skills", buildJobSkillsPrompt(jobText))
	if err != nil {
		return llm.JobSkills{}, err
	}
	return llm.ParseJobSkills(raw)
}

func (c *Client) RecommendProjects(ctx context.Context, input llm.ProjectsInput) (map[string][]llm.Project, error) {
	raw, err := c.completeJSON(ctx, "projects", buildProjectsPrompt(input))
	if err != nil {
		return nil, err
	}
	return llm.ParseProjects(raw)
}

func (c *Client) GenerateCoverLetter(ctx context.Context, input llm.CoverLetterInput) (string, error) {
	text, err := c.completeText(ctx, "cover_letter", buildCoverLetterPrompt(input))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// completeJSON runs a json_object-mode chat completion. Invalid JSON output
// is sent back once through a repair prompt before giving up.
func (c *Client) completeJSON(ctx context.Context, op string, messages []Message) (json.RawMessage, error) {
	raw, err := c.completeOnce(ctx, op, messages, true)
	if err != nil {
		return nil, err
	}
	if json.Valid([]byte(raw)) {
		return json.RawMessage(raw), nil
	}

	repaired, err := c.completeOnce(ctx, op+"_fix_json", buildFixPrompt([]byte(raw)), true)
	if err != nil {
		return nil, err
	}
	if !json.Valid([]byte(repaired)) {
		return nil, fmt.Errorf("invalid JSON from OpenAI")
	}
	return json.RawMessage(repaired), nil
}

func (c *Client) completeText(ctx context.Context, op string, messages []Message) (string, error) {
	return c.completeOnce(ctx, op, messages, false)
}

func (c *Client) completeOnce(ctx context.Context, op string, messages []Message, jsonMode bool) (string, error) {
	temp := float32(0)
	reqMessages := make([]chatMessage, 0, len(messages))
	for _, m := range messages {
		reqMessages = append(reqMessages, chatMessage{Role: m.Role, Content: m.Content})
	}
	reqBody := chatRequest{
		Model:       c.model,
		Messages:    reqMessages,
		Temperature: &temp,
	}
	if jsonMode {
		reqBody.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || strings.Contains(err.Error(), "Client.Timeout") {
			return "", fmt.Errorf("openai request timeout: %w", err)
		}
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("openai response parse: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("openai error: %s (%s)", parsed.Error.Message, parsed.Error.Type)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("openai response missing choices")
	}

	content := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("openai response empty content")
	}
	logUsage(c.model, op, parsed.Usage)
	return content, nil
}

func logUsage(model, op string, usage *struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}) {
	fields := map[string]any{"model": model, "op": op}
	if usage != nil {
		fields["prompt_tokens"] = usage.PromptTokens
		fields["completion_tokens"] = usage.CompletionTokens
		fields["total_tokens"] = usage.TotalTokens
	}
	telemetry.Info("llm response", fields)
}

var _ llm.Client = (*Client)(nil)
