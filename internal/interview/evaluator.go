package interview

import (
	"context"
	"math"
	"strings"

	"github.com/spigell/interview-coach/internal/ai"
	"go.uber.org/zap"
)

const fallbackFeedback = "Consider providing more specific examples and structure your answers with clear points."

// Evaluator scores candidate answers. When an AI collaborator is configured it
// is tried first for the four content dimensions; any failure falls back to
// heuristic scoring. Time efficiency is always computed locally. Evaluate
// never fails.
type Evaluator struct {
	assistant ai.Interviewer // nil when no collaborator is configured
	settings  Settings
	logger    *zap.Logger
}

// NewEvaluator builds an evaluator, validating the rubric weights up front.
func NewEvaluator(assistant ai.Interviewer, settings Settings, log *zap.Logger) (*Evaluator, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Evaluator{assistant: assistant, settings: settings, logger: log}, nil
}

// Evaluate scores an answer against the rubric. timeTaken is in seconds.
func (e *Evaluator) Evaluate(ctx context.Context, q Question, answer string, timeTaken float64) Evaluation {
	timeScore := timeEfficiencyScore(timeTaken, e.settings.TimeLimitSeconds)

	if e.assistant != nil && strings.TrimSpace(answer) != "" {
		assessment, err := e.assistant.AssessAnswer(ctx, &ai.AssessmentRequest{
			Question:   q.Text,
			Difficulty: string(q.Difficulty),
			Answer:     answer,
		})
		if err == nil {
			eval := Evaluation{
				Accuracy:       assessment.Accuracy,
				Clarity:        assessment.Clarity,
				Depth:          assessment.Depth,
				Relevance:      assessment.Relevance,
				TimeEfficiency: timeScore,
				Feedback:       assessment.Feedback,
				SkillArea:      q.SkillArea,
			}
			if eval.Feedback == "" {
				eval.Feedback = fallbackFeedback
			}
			eval.OverallScore = e.settings.Weights.Overall(eval)
			return eval
		}

		e.logger.Warn("AI answer assessment failed, using heuristic scoring", zap.Error(err))
	}

	eval := heuristicEvaluation(answer, timeScore)
	eval.SkillArea = q.SkillArea
	eval.OverallScore = e.settings.Weights.Overall(eval)
	return eval
}

// timeEfficiencyScore rewards promptness and penalizes overtime, never leaving
// [0,100]. Within the limit the score decays slightly from 100 toward 80 with
// a floor of 50; past the limit it decays from 50 toward 0.
func timeEfficiencyScore(timeTaken, limit float64) float64 {
	if timeTaken <= limit {
		score := 100 - (timeTaken/limit)*20
		return math.Min(100, math.Max(50, score))
	}
	overtime := (timeTaken - limit) / limit
	return math.Max(0, 50-overtime*50)
}

// heuristicEvaluation scores an answer with no external signal: word count
// drives depth and clarity, accuracy and relevance take fixed defaults since
// correctness cannot be judged offline.
func heuristicEvaluation(answer string, timeScore float64) Evaluation {
	wordCount := len(strings.Fields(answer))

	depth := 40.0
	if wordCount > 10 {
		depth = math.Min(100, 30+float64(wordCount)*2)
	}

	clarity := 60.0
	if wordCount > 20 && wordCount < 200 {
		clarity = math.Min(100, 40+float64(wordCount))
	}

	return Evaluation{
		Accuracy:       65,
		Clarity:        clarity,
		Depth:          depth,
		Relevance:      70,
		TimeEfficiency: timeScore,
		Feedback:       fallbackFeedback,
	}
}
