package match

import (
	"encoding/json"
	"math/rand"
	"testing"

	"skillbridge-backend/internal/skills"
)

func setOf(langs, frameworks, tools []string) skills.Set {
	return skills.NewSet(map[string][]string{
		"ProgrammingLanguages": langs,
		"FrameworksLibraries":  frameworks,
		"ToolsPlatforms":       tools,
	})
}

func TestScoreWorkedExample(t *testing.T) {
	resume := setOf(
		[]string{"Python", "TypeScript"},
		[]string{"FastAPI", "React"},
		[]string{"MongoDB"},
	)
	req := skills.RequirementProfile{
		Required: setOf(
			[]string{"Python"},
			[]string{"FastAPI"},
			[]string{"MongoDB", "Docker", "Kubernetes"},
		),
		Preferred: setOf(
			[]string{"TypeScript"},
			[]string{"React"},
			[]string{"AWS", "GraphQL", "Redis"},
		),
	}

	report := Score(resume, req, false, DefaultConfig())

	if report.Required.CoveredCount != 3 || report.Required.TotalCount != 5 {
		t.Fatalf("required coverage = %d/%d, want 3/5", report.Required.CoveredCount, report.Required.TotalCount)
	}
	if report.Required.MatchScore != 60.0 {
		t.Errorf("required match score = %v, want 60.0", report.Required.MatchScore)
	}
	wantMissing := []string{"Docker", "Kubernetes"}
	if len(report.Required.MissingSkills) != len(wantMissing) {
		t.Fatalf("required missing = %v, want %v", report.Required.MissingSkills, wantMissing)
	}
	for i, s := range wantMissing {
		if report.Required.MissingSkills[i] != s {
			t.Errorf("required missing[%d] = %q, want %q", i, report.Required.MissingSkills[i], s)
		}
	}

	if report.Preferred.CoveredCount != 2 || report.Preferred.TotalCount != 5 {
		t.Fatalf("preferred coverage = %d/%d, want 2/5", report.Preferred.CoveredCount, report.Preferred.TotalCount)
	}
	if report.Preferred.MatchScore != 40.0 {
		t.Errorf("preferred match score = %v, want 40.0", report.Preferred.MatchScore)
	}

	// Overall 2:1 weighting: (60*2 + 40*1)/3 = 53.3.
	if report.Overall.WeightedScore != 53.3 {
		t.Errorf("weighted score = %v, want 53.3", report.Overall.WeightedScore)
	}
	if report.Overall.TotalSkills != 10 || report.Overall.MatchedSkills != 5 {
		t.Errorf("overall totals = %d/%d, want 5/10", report.Overall.MatchedSkills, report.Overall.TotalSkills)
	}
}

func TestScoreEmptyBlocksAreZeroNotFault(t *testing.T) {
	resume := setOf([]string{"Python"}, nil, nil)
	report := Score(resume, skills.RequirementProfile{}, false, DefaultConfig())

	if report.Required.MatchScore != 0 || report.Required.CoveredCount != 0 {
		t.Errorf("empty required block: got score=%v covered=%d, want zeros", report.Required.MatchScore, report.Required.CoveredCount)
	}
	if report.Preferred.MatchScore != 0 {
		t.Errorf("empty preferred block: got score=%v, want 0", report.Preferred.MatchScore)
	}
	if report.Overall.WeightedScore != 0 {
		t.Errorf("overall score = %v, want 0", report.Overall.WeightedScore)
	}
}

func TestScoreOnlyPreferredBlockPresent(t *testing.T) {
	resume := setOf(nil, []string{"React"}, nil)
	req := skills.RequirementProfile{
		Preferred: setOf(nil, []string{"React", "Vue.js"}, nil),
	}
	report := Score(resume, req, false, DefaultConfig())

	// With no required skills the preferred block carries full weight.
	if report.Overall.WeightedScore != 50.0 {
		t.Errorf("weighted score = %v, want 50.0", report.Overall.WeightedScore)
	}
}

func TestScoreInvariantCoveredPlusMissingEqualsTotal(t *testing.T) {
	resume := setOf([]string{"Python", "Go"}, []string{"React"}, []string{"Docker"})
	req := skills.RequirementProfile{
		Required:  setOf([]string{"Python", "Rust"}, []string{"Django"}, []string{"Docker", "AWS"}),
		Preferred: setOf([]string{"Go"}, nil, []string{"GCP"}),
	}
	report := Score(resume, req, false, DefaultConfig())

	for _, block := range []BlockScore{report.Required, report.Preferred} {
		if block.CoveredCount+len(block.MissingSkills) != block.TotalCount {
			t.Errorf("covered(%d) + missing(%d) != total(%d)", block.CoveredCount, len(block.MissingSkills), block.TotalCount)
		}
		if block.CoveredCount != len(block.CoveredSkills) {
			t.Errorf("covered count %d disagrees with list length %d", block.CoveredCount, len(block.CoveredSkills))
		}
	}
}

func TestScoreOrderIndependentAndIdempotent(t *testing.T) {
	langs := []string{"Python", "Go", "TypeScript", "Rust"}
	tools := []string{"Docker", "Kubernetes", "AWS", "Terraform"}

	base := Score(
		setOf(langs, nil, tools),
		skills.RequirementProfile{Required: setOf(langs[:2], nil, tools[:3])},
		true,
		DefaultConfig(),
	)
	baseJSON, err := json.Marshal(base)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 10; i++ {
		shuffledLangs := append([]string(nil), langs...)
		shuffledTools := append([]string(nil), tools...)
		rng.Shuffle(len(shuffledLangs), func(a, b int) { shuffledLangs[a], shuffledLangs[b] = shuffledLangs[b], shuffledLangs[a] })
		rng.Shuffle(len(shuffledTools), func(a, b int) { shuffledTools[a], shuffledTools[b] = shuffledTools[b], shuffledTools[a] })

		got := Score(
			setOf(shuffledLangs, nil, shuffledTools),
			skills.RequirementProfile{Required: setOf(langs[:2], nil, tools[:3])},
			true,
			DefaultConfig(),
		)
		gotJSON, err := json.Marshal(got)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(gotJSON) != string(baseJSON) {
			t.Fatalf("permuted input changed report:\n%s\nvs\n%s", gotJSON, baseJSON)
		}
	}
}

func TestScoreExactMatchOnlyNoFuzzy(t *testing.T) {
	// "Python 3.11" does not normalize to "Python"; near-matches are a
	// deliberate non-feature of the scorer.
	resume := setOf([]string{"Python 3.11"}, nil, nil)
	req := skills.RequirementProfile{Required: setOf([]string{"Python"}, nil, nil)}
	report := Score(resume, req, false, DefaultConfig())

	if report.Required.CoveredCount != 0 {
		t.Errorf("fuzzy match happened: covered = %v", report.Required.CoveredSkills)
	}
}

func TestScoreDeduplicatesWithinCategory(t *testing.T) {
	resume := setOf([]string{"python", "Python", "PYTHON"}, nil, nil)
	req := skills.RequirementProfile{Required: setOf([]string{"Python"}, nil, nil)}
	report := Score(resume, req, false, DefaultConfig())

	if report.Required.TotalCount != 1 || report.Required.CoveredCount != 1 {
		t.Errorf("dedup failed: %d/%d", report.Required.CoveredCount, report.Required.TotalCount)
	}
}

func TestScorePassesThroughGradFlag(t *testing.T) {
	report := Score(skills.Set{}, skills.RequirementProfile{}, true, DefaultConfig())
	if !report.IsGradStudentJob {
		t.Error("grad flag not passed through")
	}
}

func TestScoreRequiredWinsOverlapWithPreferred(t *testing.T) {
	resume := setOf([]string{"Python"}, nil, nil)
	req := skills.RequirementProfile{
		Required:  setOf([]string{"Python"}, nil, nil),
		Preferred: setOf([]string{"Python", "Go"}, nil, nil),
	}
	report := Score(resume, req, false, DefaultConfig())

	// Python is required, so it must not be double counted as preferred.
	if report.Preferred.TotalCount != 1 {
		t.Errorf("preferred total = %d, want 1 after dedup against required", report.Preferred.TotalCount)
	}
	if report.Overall.TotalSkills != 2 {
		t.Errorf("overall total = %d, want 2", report.Overall.TotalSkills)
	}
}
