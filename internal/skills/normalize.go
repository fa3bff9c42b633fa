package skills

import "strings"

// canonicalNames maps common aliases and spelling variants to a single
// canonical display name. Keys are case-folded forms; matching is exact after
// folding — no fuzzy matching happens anywhere downstream.
var canonicalNames = map[string]string{
	// Programming languages
	"python":   "Python",
	"python3":  "Python",
	"python 3": "Python",
	"py":       "Python",

	"javascript": "JavaScript",
	"js":         "JavaScript",
	"ecmascript": "JavaScript",

	"typescript": "TypeScript",
	"ts":         "TypeScript",

	"golang": "Go",
	"go":     "Go",

	"html":  "HTML",
	"html5": "HTML",
	"css":   "CSS",
	"css3":  "CSS",

	"node.js": "Node.js",
	"nodejs":  "Node.js",
	"node":    "Node.js",

	"c":   "C",
	"c++": "C++",
	"c#":  "C#",

	"sql":        "SQL",
	"mysql":      "MySQL",
	"postgresql": "PostgreSQL",
	"postgres":   "PostgreSQL",
	"mongodb":    "MongoDB",
	"mongo":      "MongoDB",
	"redis":      "Redis",

	// Frameworks and libraries
	"react":        "React",
	"react.js":     "React",
	"reactjs":      "React",
	"vue":          "Vue.js",
	"vue.js":       "Vue.js",
	"vuejs":        "Vue.js",
	"angular":      "Angular",
	"angularjs":    "Angular",
	"django":       "Django",
	"flask":        "Flask",
	"fastapi":      "FastAPI",
	"fast api":     "FastAPI",
	"express":      "Express.js",
	"express.js":   "Express.js",
	"expressjs":    "Express.js",
	"spring":       "Spring",
	"springboot":   "Spring Boot",
	"tensorflow":   "TensorFlow",
	"pytorch":      "PyTorch",
	"sklearn":      "scikit-learn",
	"scikit":       "scikit-learn",
	"scikitlearn":  "scikit-learn",
	"scikit-learn": "scikit-learn",
	"pandas":       "pandas",
	"numpy":        "NumPy",

	// Tools and platforms
	"git":                 "Git",
	"github":              "GitHub",
	"docker":              "Docker",
	"kubernetes":          "Kubernetes",
	"k8s":                 "Kubernetes",
	"aws":                 "AWS",
	"amazon web services": "AWS",
	"gcp":                 "GCP",
	"google cloud":        "GCP",
	"azure":               "Azure",
	"terraform":           "Terraform",
	"jenkins":             "Jenkins",
	"linux":               "Linux",
	"graphql":             "GraphQL",
	"rest":                "REST",
	"rest api":            "REST",
	"restful":             "REST",
	"ci/cd":               "CI/CD",
	"cicd":                "CI/CD",
	"ci-cd":               "CI/CD",

	// ML / AI / data domains
	"ml":                          "Machine Learning",
	"machine learning":            "Machine Learning",
	"machine-learning":            "Machine Learning",
	"ai":                          "Artificial Intelligence",
	"artificial intelligence":     "Artificial Intelligence",
	"dl":                          "Deep Learning",
	"deep learning":               "Deep Learning",
	"data science":                "Data Science",
	"data scientist":              "Data Science",
	"ds":                          "Data Science",
	"data analytics":              "Data Analytics",
	"data analyst":                "Data Analytics",
	"mlops":                       "MLOps",
	"ml ops":                      "MLOps",
	"llm":                         "Large Language Models",
	"large language model":        "Large Language Models",
	"large language models":       "Large Language Models",
	"nlp":                         "Natural Language Processing",
	"natural language processing": "Natural Language Processing",
	"cv":                          "Computer Vision",
	"computer vision":             "Computer Vision",
}

// Normalize trims a raw skill token and maps it onto its canonical display
// name. Unknown skills keep their trimmed original casing. Empty input
// normalizes to the empty string.
func Normalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	fold := strings.ToLower(trimmed)
	if canonical, ok := canonicalNames[fold]; ok {
		return canonical
	}
	// Hyphen and spacing variants, e.g. "machine-learning" vs "machine learning".
	dehyphenated := strings.ReplaceAll(fold, "-", " ")
	if canonical, ok := canonicalNames[dehyphenated]; ok {
		return canonical
	}
	return trimmed
}
