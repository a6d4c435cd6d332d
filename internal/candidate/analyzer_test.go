package candidate

import (
	"reflect"
	"strings"
	"testing"
)

const sampleResume = `Jane Doe
Software Engineer with a focus on data platforms.

Experience
2019 - 2023
Software Engineer, Acme Corp
- Built an ETL pipeline processing millions of events daily
- Developed REST API services in Python with Django

Skills
Python, SQL, Docker, AWS, Kafka

Education
BSc Computer Science, State University
`

func TestAnalyzeEmptyInput(t *testing.T) {
	p := Analyze("  \n ")

	if len(p.Skills) != 0 || len(p.Experience) != 0 || len(p.Projects) != 0 || len(p.Education) != 0 {
		t.Fatalf("expected an empty profile, got %+v", p)
	}
	if p.RoleRelevance != "general" {
		t.Fatalf("expected the default role relevance, got %q", p.RoleRelevance)
	}
}

func TestAnalyzeSampleResume(t *testing.T) {
	p := Analyze(sampleResume)

	for _, skill := range []string{"Python", "SQL", "Docker", "AWS"} {
		found := false
		for _, s := range p.Skills {
			if s == skill {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("expected %s in skills, got %v", skill, p.Skills)
		}
	}

	if len(p.Experience) == 0 {
		t.Fatalf("expected at least one experience entry")
	}
	first := p.Experience[0]
	if !strings.Contains(first.Title, "Software Engineer") {
		t.Fatalf("unexpected experience title: %q", first.Title)
	}

	if len(p.Education) == 0 || !strings.Contains(p.Education[0], "BSc Computer Science") {
		t.Fatalf("expected the education entry, got %v", p.Education)
	}

	if p.Summary == "" {
		t.Fatalf("expected a non-empty summary")
	}
}

func TestExtractSkillsBaselineFallback(t *testing.T) {
	skills := extractSkills("A friendly person who likes teamwork.")
	if !reflect.DeepEqual(skills, append([]string{}, techSkills[:5]...)) {
		t.Fatalf("expected the baseline skills, got %v", skills)
	}
}

func TestExtractExperiencePeriodFromPreviousLine(t *testing.T) {
	text := "Jan 2020 - Dec 2022\nBackend Developer at Widgets Inc\n- Shipped the billing service"

	entries := extractExperience(text)
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0].Period != "Jan 2020 - Dec 2022" {
		t.Fatalf("unexpected period: %q", entries[0].Period)
	}
	if !strings.Contains(entries[0].Details, "billing service") {
		t.Fatalf("unexpected details: %q", entries[0].Details)
	}
}

func TestExtractProjectsFromAchievementBullets(t *testing.T) {
	text := strings.Join([]string{
		"Summary of my work",
		"- Built a recommendation engine serving two million users",
		"- Attended many meetings about planning",
		"- Designed a streaming ingestion layer for clickstream data",
	}, "\n")

	projects := extractProjects(text)
	if len(projects) != 2 {
		t.Fatalf("expected 2 achievement projects, got %v", projects)
	}
	if !strings.Contains(projects[0].Description, "recommendation engine") {
		t.Fatalf("unexpected first project: %+v", projects[0])
	}
}

func TestExtractProjectsFromSection(t *testing.T) {
	text := strings.Join([]string{
		"Projects",
		"Realtime fraud detection pipeline on Kafka",
		"Internal developer portal for service templates",
		"",
		"Education",
		"BSc",
	}, "\n")

	projects := extractProjects(text)
	if len(projects) != 2 {
		t.Fatalf("expected 2 section projects, got %v", projects)
	}
	if projects[0].Name != "Realtime fraud detection pipeline on Kafka" {
		t.Fatalf("unexpected project name: %q", projects[0].Name)
	}
}

func TestSectionLinesStopsAtNextHeader(t *testing.T) {
	text := strings.Join([]string{
		"Skills",
		"Python",
		"SQL",
		"Education",
		"Should not appear",
	}, "\n")

	lines := sectionLines(text, skillsHeaderRe)
	if !reflect.DeepEqual(lines, []string{"Python", "SQL"}) {
		t.Fatalf("unexpected section lines: %v", lines)
	}
}
