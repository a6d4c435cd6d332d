// Package jobspec extracts structured role requirements and question-generation
// context from free-text job descriptions. Everything here is rule-based and
// total: malformed or empty input yields named defaults, never an error.
package jobspec

import (
	"regexp"
	"strings"
)

// ExperienceLevel is the seniority bucket detected in a job description.
type ExperienceLevel string

const (
	LevelJunior ExperienceLevel = "junior"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
)

const (
	defaultRole          = "Software Engineer"
	maxRawExcerpt        = 1500
	maxResponsibilities  = 5
	maxResponsibilityLen = 150
)

// Requirements is the structured view of a job description. Produced once per
// session and immutable afterwards.
type Requirements struct {
	Role                string          `json:"role"`
	RequiredSkills      []string        `json:"required_skills"`
	NiceToHave          []string        `json:"nice_to_have"`
	ExperienceLevel     ExperienceLevel `json:"experience_level"`
	KeyResponsibilities []string        `json:"key_responsibilities"`
	RawExcerpt          string          `json:"raw_excerpt"`
}

// knownRoles are matched first; the first line of the posting is the fallback.
var knownRoles = []string{
	"Software Engineer", "Backend Developer", "Frontend Developer", "Full Stack Developer",
	"Data Scientist", "ML Engineer", "DevOps Engineer", "Data Engineer",
	"Product Manager", "Technical Lead", "Solutions Architect",
}

var knownSkills = []string{
	"Python", "Java", "JavaScript", "TypeScript", "C++", "Go", "Rust", "SQL",
	"React", "Vue", "Angular", "Node.js", "Django", "Flask", "FastAPI", "Spring Boot",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Terraform", "CI/CD",
	"Machine Learning", "Deep Learning", "TensorFlow", "PyTorch", "NLP", "Data Science",
	"Data Structures", "Algorithms", "System Design",
	"REST API", "GraphQL", "Microservices", "ETL", "Spark", "Kafka",
}

// Parse extracts role, required skills, experience level and responsibilities
// from a job description. Empty input yields defaults with mid seniority.
func Parse(text string) Requirements {
	if strings.TrimSpace(text) == "" {
		return Requirements{
			Role:            defaultRole,
			RequiredSkills:  []string{},
			NiceToHave:      []string{},
			ExperienceLevel: LevelMid,
		}
	}

	excerpt := text
	if len(excerpt) > maxRawExcerpt {
		excerpt = excerpt[:maxRawExcerpt]
	}

	return Requirements{
		Role:                extractRole(text),
		RequiredSkills:      extractRequiredSkills(text),
		NiceToHave:          []string{},
		ExperienceLevel:     extractExperienceLevel(text),
		KeyResponsibilities: extractResponsibilities(text),
		RawExcerpt:          strings.TrimSpace(excerpt),
	}
}

func extractRole(text string) string {
	lower := strings.ToLower(text)
	for _, role := range knownRoles {
		if strings.Contains(lower, strings.ToLower(role)) {
			return role
		}
	}

	firstLine := strings.TrimSpace(strings.SplitN(text, "\n", 2)[0])
	if firstLine != "" && len(firstLine) < 80 {
		return firstLine
	}

	return defaultRole
}

func extractRequiredSkills(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0)
	for _, skill := range knownSkills {
		if strings.Contains(lower, strings.ToLower(skill)) {
			found = append(found, skill)
		}
	}
	if len(found) == 0 {
		return []string{"Problem Solving", "Communication"}
	}
	return found
}

func extractExperienceLevel(text string) ExperienceLevel {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "senior") || strings.Contains(lower, "lead") ||
		strings.Contains(text, "5+") || strings.Contains(text, "8+"):
		return LevelSenior
	case strings.Contains(lower, "junior") || strings.Contains(lower, "entry") ||
		strings.Contains(text, "0-2") || strings.Contains(text, "1-2"):
		return LevelJunior
	default:
		return LevelMid
	}
}

var (
	respHeaderRe  = regexp.MustCompile(`(?i)^\s*(?:key\s+)?responsibilit(?:y|ies)\b|^\s*what you'll do\b`)
	otherHeaderRe = regexp.MustCompile(`(?i)^\s*(?:requirements?|qualifications?|skills?|education|benefits?)\b`)
	bulletRe      = regexp.MustCompile(`^\s*[-•*]\s*(.+)$`)
)

// extractResponsibilities collects bullet items under a responsibilities
// section header until the next section starts.
func extractResponsibilities(text string) []string {
	lines := strings.Split(text, "\n")

	items := make([]string, 0, maxResponsibilities)
	inSection := false
	for _, line := range lines {
		if !inSection {
			if respHeaderRe.MatchString(line) {
				inSection = true
			}
			continue
		}

		if otherHeaderRe.MatchString(line) {
			break
		}

		m := bulletRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		item := strings.TrimSpace(m[1])
		if len(item) > maxResponsibilityLen {
			item = item[:maxResponsibilityLen]
		}
		if item != "" {
			items = append(items, item)
		}
		if len(items) >= maxResponsibilities {
			break
		}
	}

	return items
}
