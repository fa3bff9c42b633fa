package reports

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"skillbridge-backend/internal/courses"
	"skillbridge-backend/internal/llm"
	"skillbridge-backend/internal/skills"
)

// fakeLLM returns fixed skill sets and counts pipeline executions.
type fakeLLM struct {
	resumeCalls  atomic.Int32
	resumeDelay  time.Duration
	resumeErr    error
	projectCalls atomic.Int32
}

func (f *fakeLLM) ExtractResumeSkills(ctx context.Context, resumeText string) (skills.Set, error) {
	f.resumeCalls.Add(1)
	if f.resumeDelay > 0 {
		select {
		case <-time.After(f.resumeDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.resumeErr != nil {
		return nil, f.resumeErr
	}
	return skills.NewSet(map[string][]string{
		"ProgrammingLanguages": {"Python", "TypeScript"},
		"FrameworksLibraries":  {"FastAPI", "React"},
		"ToolsPlatforms":       {"MongoDB"},
	}), nil
}

func (f *fakeLLM) ExtractJobSkills(ctx context.Context, jobText string) (llm.JobSkills, error) {
	return llm.JobSkills{
		Profile: skills.RequirementProfile{
			Required: skills.NewSet(map[string][]string{
				"ProgrammingLanguages": {"Python"},
				"FrameworksLibraries":  {"FastAPI"},
				"ToolsPlatforms":       {"MongoDB", "Docker", "Kubernetes"},
			}),
			Preferred: skills.NewSet(map[string][]string{
				"ProgrammingLanguages": {"TypeScript"},
				"FrameworksLibraries":  {"React", "GraphQL"},
				"ToolsPlatforms":       {"AWS", "Redis"},
			}),
		},
	}, nil
}

func (f *fakeLLM) RecommendProjects(ctx context.Context, input llm.ProjectsInput) (map[string][]llm.Project, error) {
	f.projectCalls.Add(1)
	return map[string][]llm.Project{
		input.PrimaryGapSkill: {{Title: "Gap Closer"}},
	}, nil
}

func (f *fakeLLM) GenerateCoverLetter(ctx context.Context, input llm.CoverLetterInput) (string, error) {
	return "Dear Hiring Manager,", nil
}

func newTestService(client llm.Client) *Service {
	return NewService(client, &courses.Recommender{Repo: courses.NewMemoryRepo(), MaxFree: 5, MaxPaid: 5}, Options{})
}

func drain(t *testing.T, events <-chan Event) []Event {
	t.Helper()
	var out []Event
	timeout := time.After(5 * time.Second)
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, event)
		case <-timeout:
			t.Fatalf("stream did not terminate, got %v", out)
		}
	}
}

func TestGenerateEmitsProgressThenComplete(t *testing.T) {
	svc := newTestService(&fakeLLM{})

	events := drain(t, svc.Generate(context.Background(), "fp-1", "resume", "job"))
	if len(events) < 2 {
		t.Fatalf("expected progress plus terminal events, got %v", events)
	}

	wantProgress := []string{
		"Extracting skills from resume...",
		"Extracting skills from job description...",
		"Computing skills match scores and analyzing skill priorities...",
		"Generating course recommendations...",
		"Generating project recommendations...",
	}
	for i, msg := range wantProgress {
		if events[i].Type != EventProgress || events[i].Message != msg {
			t.Fatalf("event %d = %+v, want progress %q", i, events[i], msg)
		}
	}

	terminal := events[len(events)-1]
	if terminal.Type != EventComplete {
		t.Fatalf("terminal event = %+v", terminal)
	}
	report, ok := terminal.Data.(Report)
	if !ok {
		t.Fatalf("terminal data is %T", terminal.Data)
	}
	if report.Overall.WeightedScore != 53.3 {
		t.Fatalf("weighted score = %v, want 53.3", report.Overall.WeightedScore)
	}
	if report.ProjectRecommendations == nil {
		t.Fatal("project recommendations missing")
	}
}

func TestGenerateCacheHitSkipsPipeline(t *testing.T) {
	client := &fakeLLM{}
	svc := newTestService(client)

	drain(t, svc.Generate(context.Background(), "fp-1", "resume", "job"))
	events := drain(t, svc.Generate(context.Background(), "fp-1", "resume", "job"))

	if len(events) != 1 || events[0].Type != EventComplete {
		t.Fatalf("cache hit should emit a single complete event, got %v", events)
	}
	if got := client.resumeCalls.Load(); got != 1 {
		t.Fatalf("pipeline ran %d times, want 1", got)
	}
}

func TestGenerateConcurrentDedup(t *testing.T) {
	client := &fakeLLM{resumeDelay: 100 * time.Millisecond}
	svc := newTestService(client)

	var wg sync.WaitGroup
	results := make([][]Event, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var events []Event
			for event := range svc.Generate(context.Background(), "fp-shared", "resume", "job") {
				events = append(events, event)
			}
			results[i] = events
		}(i)
	}
	wg.Wait()

	if got := client.resumeCalls.Load(); got != 1 {
		t.Fatalf("concurrent identical requests ran the pipeline %d times, want 1", got)
	}
	for i, events := range results {
		terminal := events[len(events)-1]
		if terminal.Type != EventComplete {
			t.Fatalf("caller %d terminal = %+v", i, terminal)
		}
	}
}

func TestGenerateFailureNotCached(t *testing.T) {
	client := &fakeLLM{resumeErr: errors.New("boom")}
	svc := newTestService(client)

	events := drain(t, svc.Generate(context.Background(), "fp-err", "resume", "job"))
	terminal := events[len(events)-1]
	if terminal.Type != EventError {
		t.Fatalf("expected error terminal, got %+v", terminal)
	}
	if terminal.Message == "" {
		t.Fatal("error event needs a message")
	}

	// A second request must re-run the pipeline, not serve a cached failure.
	client.resumeErr = nil
	events = drain(t, svc.Generate(context.Background(), "fp-err", "resume", "job"))
	if events[len(events)-1].Type != EventComplete {
		t.Fatalf("retry after failure should succeed, got %v", events)
	}
	if got := client.resumeCalls.Load(); got != 2 {
		t.Fatalf("pipeline ran %d times, want 2", got)
	}
}

func TestGenerateEmptyJobTextIsInputError(t *testing.T) {
	client := &fakeLLM{}
	svc := newTestService(client)

	_, err := svc.GenerateSync(context.Background(), "fp-empty", "resume", "   ")
	if !IsInputError(err) {
		t.Fatalf("expected InputError, got %v", err)
	}
	if got := client.resumeCalls.Load(); got != 0 {
		t.Fatalf("no pipeline stage should run on empty job text, got %d calls", got)
	}
}

func TestGenerateSyncReturnsReport(t *testing.T) {
	svc := newTestService(&fakeLLM{})

	report, err := svc.GenerateSync(context.Background(), "fp-sync", "resume", "job")
	if err != nil {
		t.Fatalf("GenerateSync: %v", err)
	}
	if report.Required.CoveredCount != 3 || report.Required.MatchScore != 60.0 {
		t.Fatalf("required block = %+v", report.Required)
	}
	if report.Preferred.CoveredCount != 2 || report.Preferred.MatchScore != 40.0 {
		t.Fatalf("preferred block = %+v", report.Preferred)
	}
}
