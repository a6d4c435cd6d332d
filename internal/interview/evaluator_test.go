package interview

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/spigell/interview-coach/internal/ai"
)

type stubAssistant struct {
	draft      *ai.QuestionDraft
	assessment *ai.AnswerAssessment
	err        error

	questionCalls   int
	assessmentCalls int
	lastAssessment  *ai.AssessmentRequest
}

func (s *stubAssistant) ProposeQuestion(_ context.Context, _ *ai.QuestionRequest) (*ai.QuestionDraft, error) {
	s.questionCalls++
	if s.err != nil {
		return nil, s.err
	}
	return s.draft, nil
}

func (s *stubAssistant) AssessAnswer(_ context.Context, req *ai.AssessmentRequest) (*ai.AnswerAssessment, error) {
	s.assessmentCalls++
	s.lastAssessment = req
	if s.err != nil {
		return nil, s.err
	}
	return s.assessment, nil
}

func TestTimeEfficiencyScore(t *testing.T) {
	cases := []struct {
		name      string
		timeTaken float64
		limit     float64
		want      float64
	}{
		{"instant", 0, 180, 100},
		{"half the limit", 90, 180, 90},
		{"exactly at limit", 180, 180, 80},
		{"fifty percent over", 270, 180, 25},
		{"double the limit", 360, 180, 0},
		{"far over", 900, 180, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := timeEfficiencyScore(tc.timeTaken, tc.limit)
			if math.Abs(got-tc.want) > 1e-9 {
				t.Fatalf("timeEfficiencyScore(%v, %v) = %v, want %v", tc.timeTaken, tc.limit, got, tc.want)
			}
		})
	}
}

func TestHeuristicEvaluation(t *testing.T) {
	short := heuristicEvaluation("ok sure", 100)
	if short.Depth != 40 {
		t.Fatalf("expected depth 40 for a terse answer, got %v", short.Depth)
	}
	if short.Clarity != 60 {
		t.Fatalf("expected clarity 60 for a terse answer, got %v", short.Clarity)
	}
	if short.Accuracy != 65 || short.Relevance != 70 {
		t.Fatalf("expected fixed accuracy/relevance defaults, got %v/%v", short.Accuracy, short.Relevance)
	}
	if short.Feedback != fallbackFeedback {
		t.Fatalf("expected the fixed fallback feedback")
	}

	// 30 words: depth = 30 + 60 = 90, clarity = 40 + 30 = 70.
	long := heuristicEvaluation(strings.Repeat("word ", 30), 100)
	if long.Depth != 90 {
		t.Fatalf("expected depth 90 for 30 words, got %v", long.Depth)
	}
	if long.Clarity != 70 {
		t.Fatalf("expected clarity 70 for 30 words, got %v", long.Clarity)
	}

	// Very long answers saturate depth and lose the clarity bonus.
	huge := heuristicEvaluation(strings.Repeat("word ", 250), 100)
	if huge.Depth != 100 {
		t.Fatalf("expected depth to cap at 100, got %v", huge.Depth)
	}
	if huge.Clarity != 60 {
		t.Fatalf("expected clarity to fall back to 60 past 200 words, got %v", huge.Clarity)
	}
}

func TestWeightsOverall(t *testing.T) {
	weights := DefaultWeights()
	eval := Evaluation{Accuracy: 80, Clarity: 70, Depth: 90, Relevance: 60, TimeEfficiency: 100}

	want := 80*0.30 + 70*0.20 + 90*0.25 + 60*0.15 + 100*0.10
	want = math.Round(want*10) / 10

	if got := weights.Overall(eval); got != want {
		t.Fatalf("Overall = %v, want %v", got, want)
	}
}

func TestWeightsValidate(t *testing.T) {
	if err := DefaultWeights().Validate(); err != nil {
		t.Fatalf("default weights must be valid: %v", err)
	}

	bad := Weights{Accuracy: 0.5, Clarity: 0.5, Depth: 0.5}
	if err := bad.Validate(); err == nil {
		t.Fatalf("expected an error for weights not summing to 1.0")
	}
}

func TestEvaluateUsesAssistant(t *testing.T) {
	stub := &stubAssistant{assessment: &ai.AnswerAssessment{
		Accuracy:  85,
		Clarity:   75,
		Depth:     80,
		Relevance: 90,
		Feedback:  "Solid answer with concrete examples.",
	}}

	evaluator, err := NewEvaluator(stub, DefaultSettings(), nil)
	if err != nil {
		t.Fatalf("building evaluator: %v", err)
	}

	q := Question{Text: "Explain connection pooling.", Difficulty: DifficultyMedium, SkillArea: "Python"}
	eval := evaluator.Evaluate(context.Background(), q, "Pooling reuses connections to cut setup cost.", 90)

	if stub.assessmentCalls != 1 {
		t.Fatalf("expected one assistant call, got %d", stub.assessmentCalls)
	}
	if stub.lastAssessment.Question != q.Text || stub.lastAssessment.Difficulty != "medium" {
		t.Fatalf("unexpected assessment request: %+v", stub.lastAssessment)
	}
	if eval.Accuracy != 85 || eval.Depth != 80 {
		t.Fatalf("expected assistant scores to be used, got %+v", eval)
	}
	if eval.TimeEfficiency != 90 {
		t.Fatalf("time efficiency must be computed locally, got %v", eval.TimeEfficiency)
	}
	if eval.Feedback != "Solid answer with concrete examples." {
		t.Fatalf("unexpected feedback: %s", eval.Feedback)
	}
	if eval.SkillArea != "Python" {
		t.Fatalf("expected the question's skill area, got %s", eval.SkillArea)
	}

	want := DefaultWeights().Overall(eval)
	if eval.OverallScore != want {
		t.Fatalf("OverallScore = %v, want %v", eval.OverallScore, want)
	}
}

func TestEvaluateFallsBackOnAssistantError(t *testing.T) {
	stub := &stubAssistant{err: errors.New("model unavailable")}

	evaluator, err := NewEvaluator(stub, DefaultSettings(), nil)
	if err != nil {
		t.Fatalf("building evaluator: %v", err)
	}

	q := Question{Text: "Explain indexes.", Difficulty: DifficultyMedium, SkillArea: "SQL"}
	eval := evaluator.Evaluate(context.Background(), q, strings.Repeat("index ", 30), 90)

	if eval.Accuracy != 65 || eval.Relevance != 70 {
		t.Fatalf("expected heuristic defaults after assistant failure, got %+v", eval)
	}
	if eval.OverallScore <= 0 {
		t.Fatalf("expected a positive heuristic score")
	}
}

func TestNewEvaluatorRejectsBadSettings(t *testing.T) {
	settings := DefaultSettings()
	settings.Weights.Accuracy = 0.9

	if _, err := NewEvaluator(nil, settings, nil); err == nil {
		t.Fatalf("expected an error for invalid weights")
	}
}
