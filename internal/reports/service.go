package reports

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"skillbridge-backend/internal/courses"
	"skillbridge-backend/internal/llm"
	"skillbridge-backend/internal/match"
	"skillbridge-backend/internal/shared/metrics"
	"skillbridge-backend/internal/shared/telemetry"
)

// progressBuffer bounds per-stream event buffering. Events that do not fit
// (slow or disconnected readers) are dropped; the terminal event is sent
// with a context guard instead.
const progressBuffer = 16

// Options configures a report Service.
type Options struct {
	CacheTTL        time.Duration
	CacheMaxEntries int
	PipelineTimeout time.Duration
	MatchConfig     match.Config
}

// Service orchestrates the analysis pipeline: skill extraction, match
// scoring, course and project recommendations. Identical concurrent
// requests (same fingerprint) share a single pipeline execution, and
// completed reports are cached for a short TTL.
type Service struct {
	llm         llm.Client
	recommender *courses.Recommender
	cache       *resultCache
	group       singleflight.Group
	timeout     time.Duration
	matchCfg    match.Config
}

// NewService wires a Service. The LLM client is wrapped with bounded
// retries for transient collaborator failures.
func NewService(client llm.Client, recommender *courses.Recommender, opts Options) *Service {
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 60 * time.Second
	}
	if opts.CacheMaxEntries <= 0 {
		opts.CacheMaxEntries = 64
	}
	if opts.PipelineTimeout <= 0 {
		opts.PipelineTimeout = 5 * time.Minute
	}
	if opts.MatchConfig.RequiredWeight <= 0 && opts.MatchConfig.PreferredWeight <= 0 {
		opts.MatchConfig = match.DefaultConfig()
	}
	return &Service{
		llm:         newRetryingLLM(client),
		recommender: recommender,
		cache:       newResultCache(opts.CacheTTL, opts.CacheMaxEntries),
		timeout:     opts.PipelineTimeout,
		matchCfg:    opts.MatchConfig,
	}
}

// Generate runs the pipeline for one request and streams its events.
// The returned channel is closed after exactly one terminal event. A fresh
// cache hit produces a single complete event with no progress events;
// callers joining an in-flight identical request also receive only the
// terminal event.
func (s *Service) Generate(ctx context.Context, fingerprint, resumeText, jobText string) <-chan Event {
	out := make(chan Event, progressBuffer)
	go func() {
		defer close(out)
		report, err := s.generate(ctx, fingerprint, resumeText, jobText, func(msg string) {
			// Drop progress for slow readers rather than stalling the pipeline.
			select {
			case out <- Event{Type: EventProgress, Message: msg}:
			default:
			}
		})
		if err != nil {
			sendEvent(ctx, out, Event{Type: EventError, Message: err.Error()})
			return
		}
		sendEvent(ctx, out, Event{Type: EventComplete, Data: report})
	}()
	return out
}

// GenerateSync runs the pipeline and returns only the terminal result.
func (s *Service) GenerateSync(ctx context.Context, fingerprint, resumeText, jobText string) (Report, error) {
	return s.generate(ctx, fingerprint, resumeText, jobText, func(string) {})
}

func (s *Service) generate(ctx context.Context, fingerprint, resumeText, jobText string, progress func(string)) (Report, error) {
	if strings.TrimSpace(jobText) == "" {
		return Report{}, NewInputError("Job description is required")
	}
	if strings.TrimSpace(resumeText) == "" {
		return Report{}, NewInputError("No text extracted from resume. The file might be image-based or corrupted.")
	}

	if report, ok := s.cache.Get(fingerprint); ok {
		metrics.IncReportCacheHit()
		telemetry.Info("report cache hit", map[string]any{"fingerprint": fingerprint})
		return report, nil
	}

	initiated := false
	result, err, shared := s.group.Do(fingerprint, func() (any, error) {
		initiated = true
		return s.runPipeline(fingerprint, resumeText, jobText, progress)
	})
	if shared && !initiated {
		metrics.IncReportDeduped()
		telemetry.Info("report request deduplicated", map[string]any{"fingerprint": fingerprint})
	}
	if err != nil {
		return Report{}, err
	}
	if ctx.Err() != nil {
		return Report{}, ctx.Err()
	}
	return result.(Report), nil
}

// runPipeline executes the five stages on a context detached from the
// caller so a disconnecting client does not starve joined requests. Only a
// successful run populates the cache.
func (s *Service) runPipeline(fingerprint, resumeText, jobText string, progress func(string)) (Report, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	metrics.IncReportStarted()

	fail := func(err error) (Report, error) {
		metrics.IncReportFailed()
		telemetry.Error("report pipeline failed", map[string]any{
			"fingerprint": fingerprint,
			"error":       err.Error(),
		})
		return Report{}, err
	}

	progress("Extracting skills from resume...")
	resumeSkills, err := s.llm.ExtractResumeSkills(ctx, resumeText)
	if err != nil {
		return fail(&CollaboratorError{Stage: "resume skill extraction", Err: err})
	}

	progress("Extracting skills from job description...")
	jobSkills, err := s.llm.ExtractJobSkills(ctx, jobText)
	if err != nil {
		return fail(&CollaboratorError{Stage: "job skill extraction", Err: err})
	}

	progress("Computing skills match scores and analyzing skill priorities...")
	matchReport := match.Score(resumeSkills, jobSkills.Profile, jobSkills.IsGradStudentJob, s.matchCfg)
	if err := verifyReport(matchReport); err != nil {
		return fail(err)
	}

	progress("Generating course recommendations...")
	recs, err := s.recommender.Recommend(ctx, resumeSkills, jobSkills.Profile)
	if err != nil {
		return fail(&CollaboratorError{Stage: "course recommendations", Err: err})
	}

	progress("Generating project recommendations...")
	gapSkills := courses.GapSkillsForProjects(resumeSkills, jobSkills.Profile)
	primary := ""
	if len(gapSkills) > 0 {
		primary = gapSkills[0]
	}
	projects, err := s.llm.RecommendProjects(ctx, llm.ProjectsInput{
		JobText:         jobText,
		ResumeSkills:    resumeSkills,
		GapSkills:       gapSkills,
		PrimaryGapSkill: primary,
		PaidCourses:     paidCourseSummaries(recs),
	})
	if err != nil {
		return fail(&CollaboratorError{Stage: "project recommendations", Err: err})
	}
	if projects == nil {
		projects = map[string][]llm.Project{}
	}

	report := Report{
		Report:                 matchReport,
		CourseRecommendations:  recs,
		ProjectRecommendations: projects,
	}
	s.cache.Put(fingerprint, report)

	elapsed := time.Since(start)
	metrics.IncReportCompleted()
	metrics.ObserveReportDurationMs(float64(elapsed.Milliseconds()))
	telemetry.Info("report pipeline completed", map[string]any{
		"fingerprint": fingerprint,
		"duration_ms": elapsed.Milliseconds(),
		"score":       report.Overall.WeightedScore,
	})
	return report, nil
}

// verifyReport checks the scoring invariants before a report leaves the
// service. A violation is an InternalError, never retried.
func verifyReport(report match.Report) error {
	for _, block := range []struct {
		name  string
		score match.BlockScore
	}{
		{"required", report.Required},
		{"preferred", report.Preferred},
	} {
		if block.score.CoveredCount+len(block.score.MissingSkills) != block.score.TotalCount {
			return &InternalError{Message: fmt.Sprintf(
				"scoring totals mismatch for %s skills: covered=%d missing=%d total=%d",
				block.name, block.score.CoveredCount, len(block.score.MissingSkills), block.score.TotalCount,
			)}
		}
	}
	return nil
}

// paidCourseSummaries passes the top paid picks into the project prompt so
// the gap-closing project aligns with courses the candidate would take.
func paidCourseSummaries(recs courses.Recommendations) []llm.CourseSummary {
	limit := 3
	if len(recs.PaidCourses) < limit {
		limit = len(recs.PaidCourses)
	}
	out := make([]llm.CourseSummary, 0, limit)
	for _, course := range recs.PaidCourses[:limit] {
		description := course.Description
		if len(description) > 300 {
			description = description[:300]
		}
		out = append(out, llm.CourseSummary{
			Title:         course.Title,
			Platform:      course.Platform,
			SkillsCovered: course.SkillsCovered,
			Description:   description,
		})
	}
	return out
}

func sendEvent(ctx context.Context, out chan<- Event, event Event) {
	select {
	case out <- event:
	case <-ctx.Done():
	}
}
