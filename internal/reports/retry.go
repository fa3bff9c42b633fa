package reports

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"skillbridge-backend/internal/llm"
	"skillbridge-backend/internal/shared/telemetry"
	"skillbridge-backend/internal/skills"
)

const (
	retryAttempts  = 3
	retryBaseDelay = 300 * time.Millisecond
)

// retryingLLM wraps an llm.Client with bounded retries on transient
// collaborator failures. Parse errors and canceled contexts are not retried.
type retryingLLM struct {
	inner llm.Client
	sleep func(ctx context.Context, d time.Duration) error
}

func newRetryingLLM(inner llm.Client) *retryingLLM {
	return &retryingLLM{inner: inner, sleep: sleepContext}
}

func (r *retryingLLM) ExtractResumeSkills(ctx context.Context, resumeText string) (skills.Set, error) {
	return retry(ctx, r.sleep, "resume_skills", func() (skills.Set, error) {
		return r.inner.ExtractResumeSkills(ctx, resumeText)
	})
}

func (r *retryingLLM) ExtractJobSkills(ctx context.Context, jobText string) (llm.JobSkills, error) {
	return retry(ctx, r.sleep, "job_skills", func() (llm.JobSkills, error) {
		return r.inner.ExtractJobSkills(ctx, jobText)
	})
}

func (r *retryingLLM) RecommendProjects(ctx context.Context, input llm.ProjectsInput) (map[string][]llm.Project, error) {
	return retry(ctx, r.sleep, "projects", func() (map[string][]llm.Project, error) {
		return r.inner.RecommendProjects(ctx, input)
	})
}

func (r *retryingLLM) GenerateCoverLetter(ctx context.Context, input llm.CoverLetterInput) (string, error) {
	return retry(ctx, r.sleep, "cover_letter", func() (string, error) {
		return r.inner.GenerateCoverLetter(ctx, input)
	})
}

var _ llm.Client = (*retryingLLM)(nil)

func retry[T any](ctx context.Context, sleep func(context.Context, time.Duration) error, op string, call func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	delay := retryBaseDelay
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		result, err := call()
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !shouldRetry(ctx, err) || attempt == retryAttempts {
			return zero, err
		}
		telemetry.Warn("llm call retrying", map[string]any{
			"op":      op,
			"attempt": attempt,
			"error":   err.Error(),
		})
		if err := sleep(ctx, delay); err != nil {
			return zero, lastErr
		}
		delay *= 2
	}
	return zero, lastErr
}

// shouldRetry treats timeouts and transport-level failures as transient.
// Once the caller's context is done, retrying only delays the error.
func shouldRetry(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	msg := err.Error()
	for _, marker := range []string{"timeout", "connection reset", "connection refused", "EOF", "rate_limit", "server_error", "service unavailable"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
