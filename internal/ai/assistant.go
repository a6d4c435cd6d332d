// Package ai defines the narrow contract between the interview engine and an
// optional language-model collaborator. The engine treats every failure from
// these interfaces the same way as "collaborator not configured": it falls
// through to its deterministic offline path.
package ai

import "context"

// QuestionRequest carries everything a collaborator needs to tailor a single
// interview question to the role.
type QuestionRequest struct {
	Role              string
	RequiredSkills    []string
	Responsibilities  []string
	JDExcerpt         string
	Difficulty        string
	Category          string
	PreviousQuestions []string
}

// QuestionDraft is a proposed question. Question must be non-empty; SkillArea
// and Category may be refined by the collaborator.
type QuestionDraft struct {
	Question  string
	SkillArea string
	Category  string
}

// AssessmentRequest carries a candidate answer for scoring. Time efficiency is
// scored locally and is not part of the collaborator contract.
type AssessmentRequest struct {
	Question   string
	Difficulty string
	Answer     string
}

// AnswerAssessment holds the collaborator's rubric sub-scores, each in [0,100].
type AnswerAssessment struct {
	Accuracy  float64
	Clarity   float64
	Depth     float64
	Relevance float64
	Feedback  string
}

// Interviewer is implemented by AI providers. Both methods make a single
// attempt with a bounded timeout; callers must treat any error as a cue to use
// their fallback path, never as a user-facing failure.
type Interviewer interface {
	ProposeQuestion(ctx context.Context, req *QuestionRequest) (*QuestionDraft, error)
	AssessAnswer(ctx context.Context, req *AssessmentRequest) (*AnswerAssessment, error)
}
