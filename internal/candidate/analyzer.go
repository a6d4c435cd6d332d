package candidate

import (
	"regexp"
	"strings"
)

const (
	maxExperienceEntries = 5
	maxExperienceDetails = 200
	maxProjects          = 5
	maxEducationEntries  = 3
	maxSummaryLen        = 500
)

var techSkills = []string{
	"Python", "Java", "JavaScript", "TypeScript", "C++", "C#", "Go", "Rust", "Kotlin", "Swift",
	"SQL", "NoSQL", "MongoDB", "PostgreSQL", "MySQL", "Redis",
	"React", "Angular", "Vue", "Node.js", "Django", "Flask", "FastAPI", "Spring Boot",
	"Machine Learning", "Deep Learning", "NLP", "Computer Vision", "TensorFlow", "PyTorch", "scikit-learn",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "CI/CD", "Git", "Linux",
	"Data Structures", "Algorithms", "System Design", "REST API", "GraphQL", "Microservices",
	"Pandas", "NumPy", "Data Analysis", "ETL", "Data Engineering",
	"Agile", "Scrum", "JIRA", "GitHub", "GitLab",
}

var (
	jobTitleRe     = regexp.MustCompile(`(?i)(?:Software Engineer|Developer|Data Scientist|ML Engineer|Backend|Frontend|Full Stack|Intern)[^,\n]*`)
	datesRe        = regexp.MustCompile(`\d{4}|Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec`)
	resumeBulletRe = regexp.MustCompile(`(?m)^\s*[-•*]\s*(.+)$`)

	skillsHeaderRe    = regexp.MustCompile(`(?i)^\s*(?:technical\s+)?skills?\b|^\s*technologies\b`)
	projectsHeaderRe  = regexp.MustCompile(`(?i)^\s*(?:key\s+)?projects?\b`)
	educationHeaderRe = regexp.MustCompile(`(?i)^\s*education\b|^\s*academic\b`)
	anyHeaderRe       = regexp.MustCompile(`(?i)^\s*(?:technical\s+)?skills?\b|^\s*technologies\b|^\s*(?:key\s+)?projects?\b|^\s*education\b|^\s*academic\b|^\s*(?:work\s+)?experience\b|^\s*employment\b`)
)

var achievementVerbs = []string{"built", "developed", "implemented", "designed", "created"}

// Analyze extracts skills, experience, projects and education from résumé
// text. Rule-based and total: empty input yields an empty profile with the
// default role relevance. It may miss or over-match; it never fails.
func Analyze(text string) Profile {
	if strings.TrimSpace(text) == "" {
		return Profile{
			Skills:        []string{},
			Experience:    []ExperienceEntry{},
			Projects:      []Project{},
			Education:     []string{},
			RoleRelevance: "general",
		}
	}

	summary := text
	if len(summary) > maxSummaryLen {
		summary = summary[:maxSummaryLen] + "..."
	}

	return Profile{
		Skills:        extractSkills(text),
		Experience:    extractExperience(text),
		Projects:      extractProjects(text),
		Education:     extractEducation(text),
		Summary:       summary,
		RoleRelevance: "general",
	}
}

func extractSkills(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0)
	seen := make(map[string]bool)
	for _, skill := range techSkills {
		if strings.Contains(lower, strings.ToLower(skill)) && !seen[skill] {
			seen[skill] = true
			found = append(found, skill)
		}
	}

	// A skills section may list tools the full-text scan spelled differently.
	if section := sectionLines(text, skillsHeaderRe); len(section) > 0 {
		sectionLower := strings.ToLower(strings.Join(section, "\n"))
		for _, skill := range techSkills {
			if strings.Contains(sectionLower, strings.ToLower(skill)) && !seen[skill] {
				seen[skill] = true
				found = append(found, skill)
			}
		}
	}

	if len(found) == 0 {
		// No signal at all: assume a common baseline so question generation
		// has something to work with.
		return append([]string{}, techSkills[:5]...)
	}
	return found
}

func extractExperience(text string) []ExperienceEntry {
	lines := strings.Split(text, "\n")
	entries := make([]ExperienceEntry, 0, maxExperienceEntries)

	for i, line := range lines {
		if jobTitleRe.FindString(line) == "" {
			continue
		}

		period := ""
		if i > 0 && datesRe.MatchString(lines[i-1]) {
			period = strings.TrimSpace(lines[i-1])
		}

		details := ""
		if i+1 < len(lines) {
			end := i + 4
			if end > len(lines) {
				end = len(lines)
			}
			details = strings.Join(lines[i+1:end], "\n")
			if len(details) > maxExperienceDetails {
				details = details[:maxExperienceDetails]
			}
		}

		entries = append(entries, ExperienceEntry{
			Period:  period,
			Title:   strings.TrimSpace(line),
			Details: details,
		})
		if len(entries) >= maxExperienceEntries {
			break
		}
	}

	return entries
}

func extractProjects(text string) []Project {
	projects := make([]Project, 0, maxProjects)

	for _, line := range sectionLines(text, projectsHeaderRe) {
		line = strings.TrimSpace(line)
		if len(line) <= 10 {
			continue
		}
		name := line
		if len(name) > 80 {
			name = name[:80]
		}
		projects = append(projects, Project{Name: name, Description: line})
		if len(projects) >= maxProjects {
			break
		}
	}

	if len(projects) == 0 {
		for _, m := range resumeBulletRe.FindAllStringSubmatch(text, -1) {
			bullet := strings.TrimSpace(m[1])
			if len(bullet) <= 30 || !containsAchievementVerb(bullet) {
				continue
			}
			name := bullet
			if len(name) > 50 {
				name = name[:50] + "..."
			}
			projects = append(projects, Project{Name: name, Description: bullet})
			if len(projects) >= 3 {
				break
			}
		}
	}

	return projects
}

func extractEducation(text string) []string {
	entries := make([]string, 0, maxEducationEntries)
	for _, line := range sectionLines(text, educationHeaderRe) {
		line = strings.TrimSpace(line)
		if len(line) > 5 {
			entries = append(entries, line)
		}
		if len(entries) >= maxEducationEntries {
			break
		}
	}
	return entries
}

func containsAchievementVerb(s string) bool {
	lower := strings.ToLower(s)
	for _, v := range achievementVerbs {
		if strings.Contains(lower, v) {
			return true
		}
	}
	return false
}

// sectionLines returns the lines following a section header until the next
// section header or a blank gap ends it.
func sectionLines(text string, header *regexp.Regexp) []string {
	lines := strings.Split(text, "\n")

	start := -1
	for i, line := range lines {
		if header.MatchString(line) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	section := make([]string, 0)
	blanks := 0
	for _, line := range lines[start:] {
		if strings.TrimSpace(line) == "" {
			blanks++
			if blanks >= 2 || len(section) > 0 && blanks >= 1 {
				break
			}
			continue
		}
		if anyHeaderRe.MatchString(line) {
			break
		}
		blanks = 0
		section = append(section, line)
	}
	return section
}
