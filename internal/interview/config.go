package interview

import (
	"fmt"
	"math"
)

// Fixed thresholds carried over from the interview methodology. Their values
// have no documented derivation; do not tune them casually.
const (
	DefaultMinQuestions = 5
	DefaultMaxQuestions = 15

	// DefaultTimeLimitSeconds is the per-question budget.
	DefaultTimeLimitSeconds = 180

	// EarlyTerminationThreshold ends the interview when the running average
	// drops below it.
	EarlyTerminationThreshold = 35.0

	// MinQuestionsBeforeTermination is the number of questions that must be
	// asked before early termination is considered at all.
	MinQuestionsBeforeTermination = 3

	// ConsecutiveLowScores is the window size for the consecutive-low rule.
	ConsecutiveLowScores = 2

	// consecutiveLowScoreBar is the per-answer bar for the window above.
	consecutiveLowScoreBar = 40.0

	// Difficulty steps up at or above the first score, down below the second.
	difficultyStepUpScore   = 80.0
	difficultyStepDownScore = 50.0
)

// Weights is the rubric weighting applied to every evaluation. The weights
// must sum to 1.0.
type Weights struct {
	Accuracy       float64
	Clarity        float64
	Depth          float64
	Relevance      float64
	TimeEfficiency float64
}

// DefaultWeights returns the standard rubric weighting.
func DefaultWeights() Weights {
	return Weights{
		Accuracy:       0.30,
		Clarity:        0.20,
		Depth:          0.25,
		Relevance:      0.15,
		TimeEfficiency: 0.10,
	}
}

// Validate ensures the weights form a proper convex combination.
func (w Weights) Validate() error {
	sum := w.Accuracy + w.Clarity + w.Depth + w.Relevance + w.TimeEfficiency
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("scoring weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// Overall applies the weighting to the five sub-scores, rounded to one
// decimal.
func (w Weights) Overall(e Evaluation) float64 {
	overall := e.Accuracy*w.Accuracy +
		e.Clarity*w.Clarity +
		e.Depth*w.Depth +
		e.Relevance*w.Relevance +
		e.TimeEfficiency*w.TimeEfficiency
	return round1(overall)
}

// Settings holds the per-session knobs. The zero value is not usable; start
// from DefaultSettings.
type Settings struct {
	MinQuestions     int
	MaxQuestions     int
	TimeLimitSeconds float64
	Weights          Weights
}

// DefaultSettings returns the standard interview configuration.
func DefaultSettings() Settings {
	return Settings{
		MinQuestions:     DefaultMinQuestions,
		MaxQuestions:     DefaultMaxQuestions,
		TimeLimitSeconds: DefaultTimeLimitSeconds,
		Weights:          DefaultWeights(),
	}
}

// Validate checks the settings are internally consistent.
func (s Settings) Validate() error {
	if s.MaxQuestions < 1 {
		return fmt.Errorf("max questions must be positive, got %d", s.MaxQuestions)
	}
	if s.TimeLimitSeconds <= 0 {
		return fmt.Errorf("time limit must be positive, got %v", s.TimeLimitSeconds)
	}
	return s.Weights.Validate()
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
