package interview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spigell/interview-coach/internal/ai"
	"github.com/spigell/interview-coach/internal/candidate"
	"github.com/spigell/interview-coach/internal/jobspec"
)

func TestGenerateIsDeterministic(t *testing.T) {
	g := NewGenerator(nil, nil)
	req := jobspec.Parse(testJD)

	first := g.Generate(context.Background(), candidate.Profile{}, req, nil, DifficultyMedium, CategoryTechnical)
	second := g.Generate(context.Background(), candidate.Profile{}, req, nil, DifficultyMedium, CategoryTechnical)

	if first.Text != second.Text {
		t.Fatalf("same inputs must yield the same question:\n%q\n%q", first.Text, second.Text)
	}
	if first.Difficulty != DifficultyMedium || first.Category != CategoryTechnical {
		t.Fatalf("unexpected question metadata: %+v", first)
	}
}

func TestGenerateUsesJobSkills(t *testing.T) {
	g := NewGenerator(nil, nil)
	req := jobspec.Parse(testJD)

	q := g.Generate(context.Background(), candidate.Profile{}, req, nil, DifficultyMedium, CategoryTechnical)

	if !strings.Contains(q.Text, "Python") {
		t.Fatalf("expected the top job skill in the question, got %q", q.Text)
	}
	if q.SkillArea != "Python" {
		t.Fatalf("expected skill area Python, got %q", q.SkillArea)
	}
}

func TestGenerateCyclesCategories(t *testing.T) {
	g := NewGenerator(nil, nil)
	req := jobspec.Parse(testJD)

	want := []Category{CategoryTechnical, CategoryConceptual, CategoryBehavioral, CategoryScenario, CategoryTechnical}

	asked := []Question{}
	for i, expected := range want {
		q := g.Generate(context.Background(), candidate.Profile{}, req, asked, DifficultyMedium, "")
		if q.Category != expected {
			t.Fatalf("question %d: category = %s, want %s", i+1, q.Category, expected)
		}
		asked = append(asked, q)
	}
}

func TestGenerateFallsBackToProfileSkills(t *testing.T) {
	g := NewGenerator(nil, nil)

	// A job description with no recognizable technology leaves the context
	// without skills; the resume fills the gap.
	req := jobspec.Requirements{Role: "Widget Wrangler"}
	profile := candidate.Profile{Skills: []string{"Erlang", "Elixir"}}

	q := g.Generate(context.Background(), profile, req, nil, DifficultyMedium, CategoryTechnical)

	if !strings.Contains(q.Text, "Erlang") {
		t.Fatalf("expected the profile skill in the question, got %q", q.Text)
	}
}

func TestGenerateWithoutAnySkills(t *testing.T) {
	g := NewGenerator(nil, nil)

	q := g.Generate(context.Background(), candidate.Profile{}, jobspec.Requirements{}, nil, DifficultyMedium, CategoryTechnical)

	if q.Text == "" {
		t.Fatalf("generation must always produce a question")
	}
	if q.SkillArea != "general" {
		t.Fatalf("expected the general skill area without any skills, got %q", q.SkillArea)
	}
}

func TestFilterRecentDropsOverlappingPrefixes(t *testing.T) {
	bank := []string{
		"What is your experience with Python? How have you used it in projects?",
		"Describe your approach to optimizing Python for scale.",
	}
	asked := []Question{{Text: "What is your experience with Python? How have you used it in projects?"}}

	fresh := filterRecent(bank, asked)

	if len(fresh) != 1 {
		t.Fatalf("expected one fresh candidate, got %d", len(fresh))
	}
	if fresh[0] != bank[1] {
		t.Fatalf("expected the recently asked question to be filtered, got %q", fresh[0])
	}
}

func TestFilterRecentWindow(t *testing.T) {
	bank := []string{"What is your experience with Python? How have you used it in projects?"}

	// The matching question is outside the three-question recency window.
	asked := []Question{
		{Text: "What is your experience with Python? How have you used it in projects?"},
		{Text: "Describe a failure with Kafka and what you learned."},
		{Text: "Tell me about a time you had to deploy under pressure."},
		{Text: "How do you stay updated with Python and AWS?"},
	}

	if fresh := filterRecent(bank, asked); len(fresh) != 1 {
		t.Fatalf("questions outside the recency window must not be filtered, got %d candidates", len(fresh))
	}
}

func TestGenerateWithAssistant(t *testing.T) {
	stub := &stubAssistant{draft: &ai.QuestionDraft{
		Question:  "How would you shard a Postgres cluster?",
		SkillArea: "PostgreSQL",
		Category:  "technical",
	}}
	g := NewGenerator(stub, nil)

	q := g.Generate(context.Background(), candidate.Profile{}, jobspec.Parse(testJD), nil, DifficultyHard, CategoryTechnical)

	if stub.questionCalls != 1 {
		t.Fatalf("expected one assistant call, got %d", stub.questionCalls)
	}
	if q.Text != "How would you shard a Postgres cluster?" {
		t.Fatalf("expected the assistant question, got %q", q.Text)
	}
	if q.SkillArea != "PostgreSQL" || q.Difficulty != DifficultyHard {
		t.Fatalf("unexpected question metadata: %+v", q)
	}
}

func TestGenerateKeepsCategoryOnInvalidDraft(t *testing.T) {
	stub := &stubAssistant{draft: &ai.QuestionDraft{
		Question: "Tell me about a hard bug.",
		Category: "philosophical",
	}}
	g := NewGenerator(stub, nil)

	q := g.Generate(context.Background(), candidate.Profile{}, jobspec.Parse(testJD), nil, DifficultyMedium, CategoryBehavioral)

	if q.Category != CategoryBehavioral {
		t.Fatalf("an unknown draft category must not override the requested one, got %s", q.Category)
	}
	if q.SkillArea != "general" {
		t.Fatalf("expected the general skill area for an empty draft area, got %q", q.SkillArea)
	}
}

func TestGenerateFallsBackOnAssistantError(t *testing.T) {
	stub := &stubAssistant{err: errors.New("quota exceeded")}
	g := NewGenerator(stub, nil)

	q := g.Generate(context.Background(), candidate.Profile{}, jobspec.Parse(testJD), nil, DifficultyMedium, CategoryTechnical)

	if q.Text == "" {
		t.Fatalf("expected a template question after assistant failure")
	}
	if !strings.Contains(q.Text, "Python") {
		t.Fatalf("expected the fallback to use the job context, got %q", q.Text)
	}
}

func TestCycleCategory(t *testing.T) {
	if got := CycleCategory(-1); got != CategoryTechnical {
		t.Fatalf("negative count must behave as zero, got %s", got)
	}
	if got := CycleCategory(7); got != CategoryScenario {
		t.Fatalf("CycleCategory(7) = %s, want scenario", got)
	}
}
