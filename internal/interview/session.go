package interview

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/spigell/interview-coach/internal/candidate"
	"github.com/spigell/interview-coach/internal/jobspec"
	"go.uber.org/zap"
)

var (
	// ErrBlankAnswer is returned when Submit is called with an empty answer.
	// The session state is unchanged.
	ErrBlankAnswer = errors.New("answer must not be blank")

	// ErrTooFewQuestions is returned when Finish is requested before two
	// questions were recorded.
	ErrTooFewQuestions = errors.New("complete at least 2 questions for a meaningful report")

	// ErrSessionTerminated is returned for any operation on a finished
	// session.
	ErrSessionTerminated = errors.New("interview session is already finished")
)

// Session is the full state of one interview. Questions and Evaluations are
// parallel lists of equal length at all times; a question and its evaluation
// are appended together. Once Terminated is set the session is frozen.
type Session struct {
	ID           string               `json:"id"`
	Profile      candidate.Profile    `json:"profile"`
	Requirements jobspec.Requirements `json:"requirements"`

	Questions   []Question   `json:"questions"`
	Evaluations []Evaluation `json:"evaluations"`

	// Current is the question awaiting an answer, nil once terminated.
	Current           *Question  `json:"current,omitempty"`
	CurrentDifficulty Difficulty `json:"current_difficulty"`

	// QuestionStartedAt marks when Current was presented, for callers that
	// measure answer time server-side.
	QuestionStartedAt time.Time `json:"question_started_at"`

	Terminated      bool `json:"terminated"`
	TerminatedEarly bool `json:"terminated_early"`
}

// AverageScore returns the running mean of all overall scores, 0 when no
// answers were recorded yet.
func (s *Session) AverageScore() float64 {
	if len(s.Evaluations) == 0 {
		return 0
	}
	sum := 0.0
	for _, e := range s.Evaluations {
		sum += e.OverallScore
	}
	return sum / float64(len(s.Evaluations))
}

// Scores returns the ordered list of overall scores.
func (s *Session) Scores() []float64 {
	scores := make([]float64, len(s.Evaluations))
	for i, e := range s.Evaluations {
		scores[i] = e.OverallScore
	}
	return scores
}

// Controller drives the interview loop: it owns difficulty progression, the
// early-termination policy and the question/evaluate/advance cycle. It holds
// no session state itself; the session is threaded explicitly through every
// operation, so independent sessions share nothing.
type Controller struct {
	generator *Generator
	evaluator *Evaluator
	settings  Settings
	logger    *zap.Logger
}

// NewController wires a generator and evaluator into a controller.
func NewController(generator *Generator, evaluator *Evaluator, settings Settings, log *zap.Logger) (*Controller, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		generator: generator,
		evaluator: evaluator,
		settings:  settings,
		logger:    log,
	}, nil
}

// Start creates a session at medium difficulty and generates the first
// question.
func (c *Controller) Start(ctx context.Context, id string, profile candidate.Profile, req jobspec.Requirements) *Session {
	s := &Session{
		ID:                id,
		Profile:           profile,
		Requirements:      req,
		Questions:         []Question{},
		Evaluations:       []Evaluation{},
		CurrentDifficulty: DifficultyMedium,
	}

	first := c.generator.Generate(ctx, profile, req, nil, s.CurrentDifficulty, "")
	s.Current = &first
	s.QuestionStartedAt = time.Now()

	c.logger.Info("interview session started",
		zap.String("session_id", id),
		zap.String("role", req.Role),
		zap.String("experience_level", string(req.ExperienceLevel)),
	)

	return s
}

// Submit evaluates the answer to the current question, records the pair and
// advances the interview. A blank answer is rejected with ErrBlankAnswer and
// no state change.
func (c *Controller) Submit(ctx context.Context, s *Session, answer string, timeTaken float64) error {
	if s.Terminated || s.Current == nil {
		return ErrSessionTerminated
	}
	if strings.TrimSpace(answer) == "" {
		return ErrBlankAnswer
	}

	q := *s.Current
	eval := c.evaluator.Evaluate(ctx, q, answer, timeTaken)

	c.record(s, q, eval)
	c.advance(ctx, s, eval)
	return nil
}

// Skip records the current question with a fixed zero-valued evaluation. The
// zero score flows through the same difficulty adaptation and termination
// rules as a submitted answer, pulling difficulty down.
func (c *Controller) Skip(ctx context.Context, s *Session) error {
	if s.Terminated || s.Current == nil {
		return ErrSessionTerminated
	}

	q := *s.Current
	eval := SkippedEvaluation(q)

	c.record(s, q, eval)
	c.advance(ctx, s, eval)
	return nil
}

// Finish ends the interview on the candidate's request. At least two
// questions must have been recorded. Not flagged as early termination.
func (c *Controller) Finish(s *Session) error {
	if s.Terminated {
		return ErrSessionTerminated
	}
	if len(s.Questions) < 2 {
		return ErrTooFewQuestions
	}

	c.terminate(s, false)
	return nil
}

// record appends the question and its evaluation together, keeping the
// parallel lists in lockstep.
func (c *Controller) record(s *Session, q Question, eval Evaluation) {
	s.Questions = append(s.Questions, q)
	s.Evaluations = append(s.Evaluations, eval)

	c.logger.Debug("answer recorded",
		zap.String("session_id", s.ID),
		zap.Int("question", len(s.Questions)),
		zap.Float64("score", eval.OverallScore),
		zap.String("skill_area", eval.SkillArea),
	)
}

func (c *Controller) advance(ctx context.Context, s *Session, latest Evaluation) {
	scores := s.Scores()

	if ShouldTerminateEarly(len(s.Questions), scores) {
		c.logger.Info("terminating interview early",
			zap.String("session_id", s.ID),
			zap.Float64("average_score", s.AverageScore()),
		)
		c.terminate(s, true)
		return
	}

	if len(s.Questions) >= c.settings.MaxQuestions {
		c.terminate(s, false)
		return
	}

	s.CurrentDifficulty = NextDifficulty(s.CurrentDifficulty, latest)

	next := c.generator.Generate(ctx, s.Profile, s.Requirements, s.Questions, s.CurrentDifficulty, "")
	s.Current = &next
	s.QuestionStartedAt = time.Now()
}

func (c *Controller) terminate(s *Session, early bool) {
	s.Terminated = true
	s.TerminatedEarly = early
	s.Current = nil
}

// NextDifficulty adapts difficulty by at most one step on the ordered scale:
// up at or above 80, down below 50, unchanged otherwise. Idempotent at the
// boundaries.
func NextDifficulty(current Difficulty, latest Evaluation) Difficulty {
	idx := current.index()

	switch {
	case latest.OverallScore >= difficultyStepUpScore && idx < len(difficultyLevels)-1:
		return difficultyLevels[idx+1]
	case latest.OverallScore < difficultyStepDownScore && idx > 0:
		return difficultyLevels[idx-1]
	default:
		return current
	}
}

// ShouldTerminateEarly reports whether sustained poor performance should end
// the interview. Always false before MinQuestionsBeforeTermination questions;
// afterwards true when the running average falls below the threshold or the
// last ConsecutiveLowScores answers all scored below the bar. Evaluated fresh
// on every call; no persisted counters.
func ShouldTerminateEarly(questionCount int, scores []float64) bool {
	if questionCount < MinQuestionsBeforeTermination {
		return false
	}

	if len(scores) > 0 {
		sum := 0.0
		for _, s := range scores {
			sum += s
		}
		if sum/float64(len(scores)) < EarlyTerminationThreshold {
			return true
		}
	}

	if len(scores) >= ConsecutiveLowScores {
		allLow := true
		for _, s := range scores[len(scores)-ConsecutiveLowScores:] {
			if s >= consecutiveLowScoreBar {
				allLow = false
				break
			}
		}
		if allLow {
			return true
		}
	}

	return false
}
