package courses

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"skillbridge-backend/internal/skills"
)

// Course recommendations ignore soft skills entirely.
var targetBuckets = []skills.Category{
	skills.CategoryProgrammingLanguages,
	skills.CategoryFrameworksLibraries,
	skills.CategoryToolsPlatforms,
}

// Importance weights per bucket (higher means more important for gap closure).
var bucketWeights = map[skills.Category]float64{
	skills.CategoryToolsPlatforms:       1.0,
	skills.CategoryFrameworksLibraries:  0.9,
	skills.CategoryProgrammingLanguages: 0.8,
	skills.CategorySoftSkills:           0.3,
}

// Over-fetch factor so scoring has variety to pick from.
const fetchMultiplier = 10

// Recommender matches catalog courses against a candidate's skill gaps.
type Recommender struct {
	Repo    Repo
	MaxFree int
	MaxPaid int
}

// Recommend builds the course block for a report. Required-skill gaps drive
// the matching; when the resume already covers every required skill the
// preferred gaps are used instead.
func (r *Recommender) Recommend(ctx context.Context, resume skills.Set, profile skills.RequirementProfile) (Recommendations, error) {
	gaps := computeGaps(resume, profile.Required)
	if gapsEmpty(gaps) {
		gaps = computeGaps(resume, profile.Preferred)
	}

	targetSkills, weights := flattenGaps(gaps)
	if len(targetSkills) == 0 {
		return EmptyRecommendations(100), nil
	}

	// The top three missing skills get boosted weights so courses covering
	// them win ties against broad surveys.
	ranked := rankMissingSkills(gaps)
	for i, multiplier := range []float64{3.0, 2.0, 1.5} {
		if i < len(ranked) {
			weights[ranked[i]] *= multiplier
		}
	}
	critical := ranked
	if len(critical) > 3 {
		critical = critical[:3]
	}

	free, err := r.recommendTier(ctx, TierFree, r.MaxFree, targetSkills, weights, critical)
	if err != nil {
		return Recommendations{}, fmt.Errorf("recommend free courses: %w", err)
	}
	paid, err := r.recommendTier(ctx, TierPaid, r.MaxPaid, targetSkills, weights, critical)
	if err != nil {
		return Recommendations{}, fmt.Errorf("recommend paid courses: %w", err)
	}

	coverage := map[string][]string{}
	covered := map[string]bool{}
	for _, course := range append(append([]Course{}, free...), paid...) {
		for _, skill := range course.SkillsCovered {
			if !containsString(coverage[skill], course.Title) {
				coverage[skill] = append(coverage[skill], course.Title)
			}
			covered[skill] = true
		}
	}

	var uncovered []string
	for _, skill := range targetSkills {
		if !covered[skill] {
			uncovered = append(uncovered, skill)
		}
	}
	sort.Strings(uncovered)
	if uncovered == nil {
		uncovered = []string{}
	}

	pct := int(math.Round(100 * float64(len(targetSkills)-len(uncovered)) / float64(len(targetSkills))))

	return Recommendations{
		FreeCourses:        free,
		PaidCourses:        paid,
		SkillCoverage:      coverage,
		UncoveredSkills:    uncovered,
		CoveragePercentage: pct,
	}, nil
}

func (r *Recommender) recommendTier(ctx context.Context, tier Tier, max int, targetSkills []string, weights map[string]float64, critical []string) ([]Course, error) {
	if max <= 0 {
		return []Course{}, nil
	}
	catalog, err := r.Repo.ListByTier(ctx, tier, max*fetchMultiplier)
	if err != nil {
		return nil, err
	}

	scored := matchCoursesToSkills(targetSkills, catalog, weights, critical)
	if len(scored) > max {
		scored = scored[:max]
	}

	cost := "Free"
	if tier == TierPaid {
		cost = "Paid"
	}
	out := make([]Course, 0, len(scored))
	for _, sc := range scored {
		out = append(out, formatCourse(sc, cost))
	}
	return out, nil
}

type scoredCourse struct {
	course            StoredCourse
	matched           []string
	coversTopCritical bool
	criticalCoverage  float64
	coverage          float64
	score             float64
}

// matchCoursesToSkills scores every catalog course against the missing
// skills and returns them best first. Courses covering the single most
// critical skill rank above everything else, then critical coverage, then
// total coverage.
func matchCoursesToSkills(targetSkills []string, catalog []StoredCourse, weights map[string]float64, critical []string) []scoredCourse {
	if len(targetSkills) == 0 {
		return nil
	}

	var scored []scoredCourse
	for _, course := range catalog {
		title := strings.TrimSpace(course.Title)
		if title == "" {
			continue
		}

		var matched, matchedCritical []string
		var weightedScore, totalWeight float64
		for _, skill := range targetSkills {
			match := skillMatchScore(skill, title)
			if match <= 0 {
				continue
			}
			matched = append(matched, skill)
			weight := weights[skill]
			if weight == 0 {
				weight = 1.0
			}
			weightedScore += match * weight
			totalWeight += weight
			if containsString(critical, skill) {
				matchedCritical = append(matchedCritical, skill)
			}
		}
		if len(matched) == 0 {
			continue
		}

		coverage := float64(len(matched)) / float64(len(targetSkills))
		criticalCoverage := 0.0
		if len(critical) > 0 {
			criticalCoverage = float64(len(matchedCritical)) / float64(len(critical))
		}
		avgWeighted := weightedScore / math.Max(1, totalWeight)

		coversTop := len(critical) > 0 && containsString(matched, critical[0])
		topBoost := 1.0
		if coversTop {
			topBoost = 5.0
		}
		criticalBoost := (1 + criticalCoverage*criticalCoverage) * 3.0
		coverageBoost := coverage * coverage

		final := avgWeighted * topBoost * criticalBoost *
			(1 + 2.0*coverageBoost) * (1 + 0.3*float64(len(matched)))

		scored = append(scored, scoredCourse{
			course:            course,
			matched:           matched,
			coversTopCritical: coversTop,
			criticalCoverage:  criticalCoverage,
			coverage:          coverage,
			score:             final,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		a, b := scored[i], scored[j]
		if a.coversTopCritical != b.coversTopCritical {
			return a.coversTopCritical
		}
		if a.criticalCoverage != b.criticalCoverage {
			return a.criticalCoverage > b.criticalCoverage
		}
		if a.coverage != b.coverage {
			return a.coverage > b.coverage
		}
		if len(a.matched) != len(b.matched) {
			return len(a.matched) > len(b.matched)
		}
		if a.score != b.score {
			return a.score > b.score
		}
		return ratingOrZero(a.course.Rating) > ratingOrZero(b.course.Rating)
	})
	return scored
}

// skillMatchScore rates how well a course title covers a skill, 0 to 1.
func skillMatchScore(skill, title string) float64 {
	skillLower := strings.ToLower(strings.TrimSpace(skill))
	titleLower := strings.ToLower(strings.TrimSpace(title))
	if skillLower == "" || titleLower == "" {
		return 0
	}
	if skillLower == titleLower {
		return 1.0
	}
	if wordBoundaryMatch(skillLower, titleLower) {
		return 0.9
	}
	if strings.Contains(titleLower, skillLower) {
		return 0.7
	}
	words := strings.Fields(skillLower)
	if len(words) > 1 {
		matches := 0
		for _, word := range words {
			if strings.Contains(titleLower, word) {
				matches++
			}
		}
		if matches == len(words) {
			return 0.8
		}
		if matches > 0 {
			return 0.5 * float64(matches) / float64(len(words))
		}
	}
	return 0
}

func wordBoundaryMatch(needle, haystack string) bool {
	re, err := regexp.Compile(`\b` + regexp.QuoteMeta(needle) + `\b`)
	if err != nil {
		return false
	}
	return re.MatchString(haystack)
}

func formatCourse(sc scoredCourse, cost string) Course {
	description := strings.TrimSpace(sc.course.Description)
	if description == "" {
		description = "Course covering " + strings.Join(sc.matched, ", ")
	}
	return Course{
		Title:            sc.course.Title,
		Platform:         sc.course.Platform,
		SkillsCovered:    sc.matched,
		AdditionalSkills: []string{},
		Duration:         normalizeDuration(sc.course.Duration),
		Difficulty:       normalizeLevel(sc.course.Level),
		Description:      description,
		WhyEfficient:     "Covers multiple skills: " + strings.Join(sc.matched, ", "),
		Cost:             cost,
		Link:             sc.course.URL,
		Rating:           sc.course.Rating,
	}
}

func computeGaps(have skills.Set, need skills.Set) map[skills.Category][]string {
	haveFold := have.FoldSet()
	gaps := make(map[skills.Category][]string, len(targetBuckets))
	for _, bucket := range targetBuckets {
		var missing []string
		for _, skill := range need.Get(bucket) {
			if _, ok := haveFold[strings.ToLower(skill)]; !ok {
				missing = append(missing, skill)
			}
		}
		sort.Strings(missing)
		gaps[bucket] = missing
	}
	return gaps
}

func gapsEmpty(gaps map[skills.Category][]string) bool {
	for _, missing := range gaps {
		if len(missing) > 0 {
			return false
		}
	}
	return true
}

func flattenGaps(gaps map[skills.Category][]string) ([]string, map[string]float64) {
	var target []string
	weights := map[string]float64{}
	for _, bucket := range targetBuckets {
		weight := bucketWeights[bucket]
		for _, skill := range gaps[bucket] {
			if _, seen := weights[skill]; !seen {
				target = append(target, skill)
				weights[skill] = weight
			}
		}
	}
	return target, weights
}

// rankMissingSkills orders gap skills most important bucket first,
// alphabetical within a bucket.
func rankMissingSkills(gaps map[skills.Category][]string) []string {
	type entry struct {
		weight float64
		lower  string
		skill  string
	}
	var entries []entry
	for _, bucket := range targetBuckets {
		for _, skill := range gaps[bucket] {
			entries = append(entries, entry{bucketWeights[bucket], strings.ToLower(skill), skill})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].weight != entries[j].weight {
			return entries[i].weight > entries[j].weight
		}
		return entries[i].lower < entries[j].lower
	})
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.skill)
	}
	return out
}

func containsString(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}

// GapSkillsForProjects exposes the ranked required-gap list so the project
// recommender can align with course matching.
func GapSkillsForProjects(resume skills.Set, profile skills.RequirementProfile) []string {
	gaps := computeGaps(resume, profile.Required)
	if gapsEmpty(gaps) {
		gaps = computeGaps(resume, profile.Preferred)
	}
	return rankMissingSkills(gaps)
}
