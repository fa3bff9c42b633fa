package skills

import (
	"sort"
	"strings"
)

// Category is one of the fixed skill buckets produced by the extractors.
type Category string

const (
	CategoryProgrammingLanguages Category = "ProgrammingLanguages"
	CategoryFrameworksLibraries  Category = "FrameworksLibraries"
	CategoryToolsPlatforms       Category = "ToolsPlatforms"
	CategorySoftSkills           Category = "SoftSkills"
)

// Categories lists every valid bucket in canonical order.
var Categories = []Category{
	CategoryProgrammingLanguages,
	CategoryFrameworksLibraries,
	CategoryToolsPlatforms,
	CategorySoftSkills,
}

// Set is a categorized collection of normalized skill names. Values are
// canonical display names (e.g. "Python", "Node.js"), deduplicated
// case-insensitively and sorted within each bucket. A Set is never mutated
// after construction.
type Set map[Category][]string

// NewSet builds a Set from raw extractor output. Unknown category keys are
// dropped, skill names are normalized through the canonical alias map, and
// duplicates (after case folding) are removed.
func NewSet(raw map[string][]string) Set {
	out := make(Set, len(Categories))
	for _, cat := range Categories {
		seen := make(map[string]struct{})
		var names []string
		for key, values := range raw {
			if matchCategory(key) != cat {
				continue
			}
			for _, v := range values {
				name := Normalize(v)
				if name == "" {
					continue
				}
				fold := strings.ToLower(name)
				if _, ok := seen[fold]; ok {
					continue
				}
				seen[fold] = struct{}{}
				names = append(names, name)
			}
		}
		sort.Strings(names)
		out[cat] = names
	}
	return out
}

// Get returns the skills in a bucket, never nil.
func (s Set) Get(cat Category) []string {
	if s == nil {
		return nil
	}
	return s[cat]
}

// Len returns the total number of skills across all buckets.
func (s Set) Len() int {
	n := 0
	for _, cat := range Categories {
		n += len(s[cat])
	}
	return n
}

// Flatten returns every skill across all buckets, sorted and deduplicated.
func (s Set) Flatten() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, cat := range Categories {
		for _, name := range s[cat] {
			fold := strings.ToLower(name)
			if _, ok := seen[fold]; ok {
				continue
			}
			seen[fold] = struct{}{}
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

// FoldSet returns the case-folded skill names as a lookup set.
func (s Set) FoldSet() map[string]struct{} {
	out := make(map[string]struct{}, s.Len())
	for _, cat := range Categories {
		for _, name := range s[cat] {
			out[strings.ToLower(name)] = struct{}{}
		}
	}
	return out
}

// RequirementProfile is a job posting's skills split into required and
// preferred sets. A skill appears in at most one of the two; Dedup enforces
// the invariant by removing required skills from the preferred set.
type RequirementProfile struct {
	Required  Set
	Preferred Set
}

// Dedup returns a copy of the profile with any skill present in Required
// removed from Preferred.
func (p RequirementProfile) Dedup() RequirementProfile {
	required := p.Required.FoldSet()
	preferred := make(Set, len(Categories))
	for _, cat := range Categories {
		var kept []string
		for _, name := range p.Preferred[cat] {
			if _, ok := required[strings.ToLower(name)]; ok {
				continue
			}
			kept = append(kept, name)
		}
		preferred[cat] = kept
	}
	return RequirementProfile{Required: p.Required, Preferred: preferred}
}

func matchCategory(key string) Category {
	switch strings.ToLower(strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(key), "_", ""), " ", "")) {
	case "programminglanguages", "programminglanguage", "languages":
		return CategoryProgrammingLanguages
	case "frameworkslibraries", "frameworks/libraries", "frameworks", "libraries":
		return CategoryFrameworksLibraries
	case "toolsplatforms", "tools/platforms", "tools", "platforms":
		return CategoryToolsPlatforms
	case "softskills", "soft":
		return CategorySoftSkills
	default:
		return ""
	}
}
