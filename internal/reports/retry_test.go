package reports

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"skillbridge-backend/internal/llm"
	"skillbridge-backend/internal/skills"
)

type flakyLLM struct {
	llm.PlaceholderClient
	calls    atomic.Int32
	failures int
	err      error
}

func (f *flakyLLM) ExtractResumeSkills(ctx context.Context, resumeText string) (skills.Set, error) {
	n := f.calls.Add(1)
	if int(n) <= f.failures {
		return nil, f.err
	}
	return skills.NewSet(map[string][]string{"ProgrammingLanguages": {"Go"}}), nil
}

func noSleep(ctx context.Context, d time.Duration) error { return nil }

func TestRetryRecoversFromTransientFailure(t *testing.T) {
	inner := &flakyLLM{failures: 2, err: fmt.Errorf("openai request timeout: %w", context.DeadlineExceeded)}
	client := &retryingLLM{inner: inner, sleep: noSleep}

	set, err := client.ExtractResumeSkills(context.Background(), "resume")
	if err != nil {
		t.Fatalf("expected recovery after retries, got %v", err)
	}
	if set.Len() != 1 {
		t.Fatalf("unexpected skills: %v", set)
	}
	if got := inner.calls.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestRetryGivesUpAfterMaxAttempts(t *testing.T) {
	inner := &flakyLLM{failures: 10, err: errors.New("connection reset by peer")}
	client := &retryingLLM{inner: inner, sleep: noSleep}

	if _, err := client.ExtractResumeSkills(context.Background(), "resume"); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
	if got := inner.calls.Load(); got != retryAttempts {
		t.Fatalf("expected %d attempts, got %d", retryAttempts, got)
	}
}

func TestRetrySkipsNonTransientErrors(t *testing.T) {
	inner := &flakyLLM{failures: 10, err: errors.New("resume skills payload: invalid character")}
	client := &retryingLLM{inner: inner, sleep: noSleep}

	if _, err := client.ExtractResumeSkills(context.Background(), "resume"); err == nil {
		t.Fatal("expected error")
	}
	if got := inner.calls.Load(); got != 1 {
		t.Fatalf("parse errors should not retry, got %d attempts", got)
	}
}

func TestRetryStopsWhenContextCanceled(t *testing.T) {
	inner := &flakyLLM{failures: 10, err: errors.New("timeout")}
	client := &retryingLLM{inner: inner, sleep: noSleep}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.ExtractResumeSkills(ctx, "resume"); err == nil {
		t.Fatal("expected error")
	}
	if got := inner.calls.Load(); got != 1 {
		t.Fatalf("canceled context should stop retries, got %d attempts", got)
	}
}
