package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spigell/interview-coach/internal/ai"
	"go.uber.org/zap"
)

type stubGenerator struct {
	response        string
	err             error
	lastPrompt      string
	lastTemperature float32
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string, temperature float32) (string, error) {
	s.lastPrompt = prompt
	s.lastTemperature = temperature
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func (s *stubGenerator) Model() string {
	return "stub-model"
}

func questionRequest() *ai.QuestionRequest {
	return &ai.QuestionRequest{
		Role:              "Backend Engineer",
		RequiredSkills:    []string{"Python", "AWS"},
		Responsibilities:  []string{"Build services"},
		JDExcerpt:         "We build payment infrastructure.",
		Difficulty:        "medium",
		Category:          "technical",
		PreviousQuestions: []string{"What is a goroutine?"},
	}
}

func TestProposeQuestion(t *testing.T) {
	stub := &stubGenerator{response: `{"question": "How do you scale Python workers?", "skill_area": "Python", "category": "Technical"}`}
	interviewer := NewInterviewer(stub, zap.NewNop(), 0)

	draft, err := interviewer.ProposeQuestion(context.Background(), questionRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if draft.Question != "How do you scale Python workers?" {
		t.Fatalf("unexpected question: %q", draft.Question)
	}
	if draft.SkillArea != "Python" {
		t.Fatalf("unexpected skill area: %q", draft.SkillArea)
	}
	if draft.Category != "technical" {
		t.Fatalf("expected the category to be lowercased, got %q", draft.Category)
	}

	if stub.lastTemperature != questionTemperature {
		t.Fatalf("expected question temperature %v, got %v", questionTemperature, stub.lastTemperature)
	}
	for _, want := range []string{"Backend Engineer", "Python, AWS", "What is a goroutine?"} {
		if !strings.Contains(stub.lastPrompt, want) {
			t.Fatalf("expected %q in the prompt", want)
		}
	}
}

func TestProposeQuestionStripsCodeFences(t *testing.T) {
	stub := &stubGenerator{response: "```json\n{\"question\": \"Explain CAP.\"}\n```"}
	interviewer := NewInterviewer(stub, zap.NewNop(), 0)

	draft, err := interviewer.ProposeQuestion(context.Background(), questionRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if draft.Question != "Explain CAP." {
		t.Fatalf("unexpected question: %q", draft.Question)
	}
}

func TestProposeQuestionMissingField(t *testing.T) {
	stub := &stubGenerator{response: `{"skill_area": "Python"}`}
	interviewer := NewInterviewer(stub, zap.NewNop(), 0)

	if _, err := interviewer.ProposeQuestion(context.Background(), questionRequest()); err == nil {
		t.Fatalf("expected an error for a missing question field")
	}
}

func TestProposeQuestionGeneratorError(t *testing.T) {
	stub := &stubGenerator{err: errors.New("rate limited")}
	interviewer := NewInterviewer(stub, zap.NewNop(), 0)

	if _, err := interviewer.ProposeQuestion(context.Background(), questionRequest()); err == nil {
		t.Fatalf("expected the generator error to propagate")
	}
}

func TestAssessAnswer(t *testing.T) {
	stub := &stubGenerator{response: `{"accuracy": 85, "clarity": "72.5", "depth": 90, "relevance": 120, "feedback": "Good."}`}
	interviewer := NewInterviewer(stub, zap.NewNop(), 0)

	assessment, err := interviewer.AssessAnswer(context.Background(), &ai.AssessmentRequest{
		Question:   "Explain indexes.",
		Difficulty: "medium",
		Answer:     "They speed up lookups.",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if assessment.Accuracy != 85 {
		t.Fatalf("unexpected accuracy: %v", assessment.Accuracy)
	}
	if assessment.Clarity != 72.5 {
		t.Fatalf("expected numeric strings to be coerced, got %v", assessment.Clarity)
	}
	if assessment.Relevance != 100 {
		t.Fatalf("expected out-of-range scores to be clamped, got %v", assessment.Relevance)
	}
	if assessment.Feedback != "Good." {
		t.Fatalf("unexpected feedback: %q", assessment.Feedback)
	}
	if stub.lastTemperature != assessmentTemperature {
		t.Fatalf("expected assessment temperature %v, got %v", assessmentTemperature, stub.lastTemperature)
	}
}

func TestAssessAnswerMissingScore(t *testing.T) {
	stub := &stubGenerator{response: `{"accuracy": 85, "clarity": 70, "depth": 90, "feedback": "No relevance."}`}
	interviewer := NewInterviewer(stub, zap.NewNop(), 0)

	_, err := interviewer.AssessAnswer(context.Background(), &ai.AssessmentRequest{Question: "q", Difficulty: "easy", Answer: "a"})
	if err == nil || !strings.Contains(err.Error(), "relevance") {
		t.Fatalf("expected a missing relevance error, got %v", err)
	}
}

func TestAssessAnswerNonNumericScore(t *testing.T) {
	stub := &stubGenerator{response: `{"accuracy": "high", "clarity": 70, "depth": 90, "relevance": 80}`}
	interviewer := NewInterviewer(stub, zap.NewNop(), 0)

	if _, err := interviewer.AssessAnswer(context.Background(), &ai.AssessmentRequest{Question: "q", Difficulty: "easy", Answer: "a"}); err == nil {
		t.Fatalf("expected an error for a non-numeric score")
	}
}

func TestAssessAnswerMalformedJSON(t *testing.T) {
	stub := &stubGenerator{response: "I think the answer deserves an 80."}
	interviewer := NewInterviewer(stub, zap.NewNop(), 0)

	if _, err := interviewer.AssessAnswer(context.Background(), &ai.AssessmentRequest{Question: "q", Difficulty: "easy", Answer: "a"}); err == nil {
		t.Fatalf("expected an error for prose output")
	}
}

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced without language", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding whitespace", "  {\"a\":1}\n", `{"a":1}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSON(tc.raw); got != tc.want {
				t.Fatalf("extractJSON(%q) = %q, want %q", tc.raw, got, tc.want)
			}
		})
	}
}
