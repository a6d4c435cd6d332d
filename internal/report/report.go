// Package report turns a finished interview into a hiring readiness report.
package report

import (
	"errors"
	"math"
	"strings"

	"github.com/spigell/interview-coach/internal/interview"
)

// ErrLengthMismatch is returned when the question and evaluation lists are
// not the same length.
var ErrLengthMismatch = errors.New("questions and evaluations must have equal length")

// earlyTerminationPenalty scales the readiness score down when the interview
// was cut short for poor performance.
const earlyTerminationPenalty = 0.9

const maxActionableFeedback = 5

// Hiring indicator bands on the readiness score.
const (
	strongYesFloor = 80.0
	yesFloor       = 65.0
	maybeFloor     = 50.0
)

// Fallback report content used when the evaluations alone do not support a
// specific statement.
var (
	defaultStrengths = []string{
		"Willingness to engage",
		"Response structure",
	}
	defaultWeaknesses = []string{
		"Depth of technical knowledge",
		"Time management",
	}
	genericFeedback = []string{
		"Practice structuring answers with clear examples.",
		"Focus on time management during responses.",
		"Brush up on fundamentals for the role.",
	}
)

// SkillScore is the average score for one skill area, in first-seen order.
type SkillScore struct {
	Area  string  `json:"area"`
	Score float64 `json:"score"`
}

// QuestionResult is the per-question line of the report.
type QuestionResult struct {
	Question   string  `json:"question"`
	Difficulty string  `json:"difficulty"`
	Category   string  `json:"category"`
	Score      float64 `json:"score"`
	Feedback   string  `json:"feedback"`
}

// Report is the final interview assessment.
type Report struct {
	ReadinessScore     float64          `json:"readiness_score"`
	HiringIndicator    string           `json:"hiring_indicator"`
	PerformanceBySkill []SkillScore     `json:"performance_by_skill"`
	Strengths          []string         `json:"strengths"`
	Weaknesses         []string         `json:"weaknesses"`
	ActionableFeedback []string         `json:"actionable_feedback"`
	QuestionResults    []QuestionResult `json:"question_results"`
	EarlyTerminated    bool             `json:"early_terminated"`
}

// FromSession builds the report for a finished session.
func FromSession(s *interview.Session) (*Report, error) {
	return Generate(s.Questions, s.Evaluations, s.TerminatedEarly)
}

// Generate computes the readiness report from the parallel question and
// evaluation lists. Works for an empty interview too: zero readiness and the
// default narrative content.
func Generate(questions []interview.Question, evals []interview.Evaluation, earlyTerminated bool) (*Report, error) {
	if len(questions) != len(evals) {
		return nil, ErrLengthMismatch
	}

	scores := make([]float64, len(evals))
	for i, e := range evals {
		scores[i] = e.OverallScore
	}

	r := &Report{
		ReadinessScore:     ComputeReadiness(scores, earlyTerminated),
		PerformanceBySkill: performanceBySkill(evals),
		QuestionResults:    questionResults(questions, evals),
		EarlyTerminated:    earlyTerminated,
	}
	r.HiringIndicator = HiringIndicator(r.ReadinessScore)
	r.Strengths, r.Weaknesses = strengthsAndWeaknesses(r.PerformanceBySkill, r.ReadinessScore)
	r.ActionableFeedback = actionableFeedback(evals)

	return r, nil
}

// ComputeReadiness maps the score history to a 0-100 readiness value, one
// decimal. Early termination applies a flat multiplicative penalty.
func ComputeReadiness(scores []float64, earlyTerminated bool) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	readiness := sum / float64(len(scores))
	if earlyTerminated {
		readiness *= earlyTerminationPenalty
	}
	return round1(math.Min(100, math.Max(0, readiness)))
}

// HiringIndicator maps a readiness score to the four-level recommendation.
func HiringIndicator(readiness float64) string {
	switch {
	case readiness >= strongYesFloor:
		return "Strong Yes"
	case readiness >= yesFloor:
		return "Yes"
	case readiness >= maybeFloor:
		return "Maybe"
	default:
		return "No"
	}
}

// performanceBySkill averages overall scores per skill area, preserving
// first-seen order.
func performanceBySkill(evals []interview.Evaluation) []SkillScore {
	type acc struct {
		sum   float64
		count int
	}
	order := []string{}
	byArea := map[string]*acc{}

	for _, e := range evals {
		area := e.SkillArea
		if area == "" {
			area = "general"
		}
		a, ok := byArea[area]
		if !ok {
			a = &acc{}
			byArea[area] = a
			order = append(order, area)
		}
		a.sum += e.OverallScore
		a.count++
	}

	out := make([]SkillScore, 0, len(order))
	for _, area := range order {
		a := byArea[area]
		out = append(out, SkillScore{
			Area:  area,
			Score: round1(a.sum / float64(a.count)),
		})
	}
	return out
}

func strengthsAndWeaknesses(bySkill []SkillScore, readiness float64) (strengths, weaknesses []string) {
	for _, s := range bySkill {
		switch {
		case s.Score >= 75:
			strengths = append(strengths, s.Area)
		case s.Score < 60:
			weaknesses = append(weaknesses, s.Area)
		}
	}

	if len(strengths) == 0 {
		strengths = append(strengths, defaultStrengths...)
	}
	if len(weaknesses) == 0 && readiness < 70 {
		weaknesses = append(weaknesses, defaultWeaknesses...)
	}
	return strengths, weaknesses
}

// actionableFeedback collects distinct non-empty feedback lines, capped. When
// nothing usable was collected it falls back to generic advice.
func actionableFeedback(evals []interview.Evaluation) []string {
	seen := map[string]bool{}
	out := []string{}

	for _, e := range evals {
		fb := strings.TrimSpace(e.Feedback)
		if fb == "" || seen[fb] {
			continue
		}
		seen[fb] = true
		out = append(out, fb)
		if len(out) == maxActionableFeedback {
			break
		}
	}

	if len(out) == 0 {
		out = append(out, genericFeedback...)
	}
	return out
}

func questionResults(questions []interview.Question, evals []interview.Evaluation) []QuestionResult {
	out := make([]QuestionResult, len(questions))
	for i, q := range questions {
		out[i] = QuestionResult{
			Question:   q.Text,
			Difficulty: string(q.Difficulty),
			Category:   string(q.Category),
			Score:      evals[i].OverallScore,
			Feedback:   evals[i].Feedback,
		}
	}
	return out
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
