package parsing

import (
	"strings"
)

// MaxSkills caps the extracted skill list on every path
const MaxSkills = 30

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":                "Go",
	"go lang":               "Go",
	"javascript":            "JavaScript",
	"js":                    "JavaScript",
	"ecmascript":            "JavaScript",
	"typescript":            "TypeScript",
	"ts":                    "TypeScript",
	"k8s":                   "Kubernetes",
	"kubernetes":            "Kubernetes",
	"react.js":              "React",
	"reactjs":               "React",
	"vue.js":                "Vue",
	"vuejs":                 "Vue",
	"node.js":               "Node.js",
	"nodejs":                "Node.js",
	"node":                  "Node.js",
	"postgres":              "PostgreSQL",
	"postgresql":            "PostgreSQL",
	"psql":                  "PostgreSQL",
	"mysql":                 "MySQL",
	"mongodb":               "MongoDB",
	"mongo":                 "MongoDB",
	"amazon web services":   "AWS",
	"aws":                   "AWS",
	"gcp":                   "Google Cloud",
	"google cloud platform": "Google Cloud",
	"ms excel":              "Excel",
	"microsoft excel":       "Excel",
	"c sharp":               "C#",
	"cpp":                   "C++",
	"ci/cd":                 "CI/CD",
	"cicd":                  "CI/CD",
	"ml":                    "Machine Learning",
	"machine learning":      "Machine Learning",
	"html5":                 "HTML",
	"css3":                  "CSS",
	"restful":               "REST",
	"rest api":              "REST",
	"rest apis":             "REST",
	"graphql":               "GraphQL",
	"terraform":             "Terraform",
	"docker":                "Docker",
}

// acronymMaxLen is the longest all-caps token kept as an acronym ("SQL", "HTML")
const acronymMaxLen = 5

// NormalizeSkillName normalizes a skill name to its canonical form
func NormalizeSkillName(skillName string) string {
	normalized := strings.Join(strings.Fields(skillName), " ")
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}

	// Mixed case is assumed intentional ("DevOps", "PyTorch")
	if normalized != strings.ToUpper(normalized) && normalized != lower {
		return normalized
	}

	if strings.Contains(normalized, " ") {
		return normalized
	}

	if normalized == strings.ToUpper(normalized) {
		if len(normalized) <= acronymMaxLen {
			return normalized
		}
		return strings.ToUpper(normalized[:1]) + strings.ToLower(normalized[1:])
	}

	return strings.ToUpper(normalized[:1]) + normalized[1:]
}

// NormalizeSkills trims, drops empties and deduplicates case-insensitively, keeping the
// first spelling, then caps the list at MaxSkills. It never fabricates entries.
func NormalizeSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, s := range skills {
		s = strings.Join(strings.Fields(s), " ")
		if s == "" {
			continue
		}
		key := strings.ToLower(s)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, s)
		if len(out) == MaxSkills {
			break
		}
	}
	return out
}

// CanonicalSkills applies NormalizeSkillName to each entry and then NormalizeSkills
func CanonicalSkills(skills []string) []string {
	canonical := make([]string, 0, len(skills))
	for _, s := range skills {
		canonical = append(canonical, NormalizeSkillName(s))
	}
	return NormalizeSkills(canonical)
}

// suggestedSkills are generic suggestions offered to a user whose documents yielded no skills.
// They are never merged into extracted data.
var suggestedSkills = []string{
	"Communication",
	"Teamwork",
	"Problem Solving",
	"Time Management",
	"Microsoft Office",
}

// SuggestedSkills returns a copy of the generic skill suggestions
func SuggestedSkills() []string {
	out := make([]string, len(suggestedSkills))
	copy(out, suggestedSkills)
	return out
}
