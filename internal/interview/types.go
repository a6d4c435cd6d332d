// Package interview implements the adaptive interview engine: question
// generation, answer evaluation and the session state machine that ties them
// together. All scoring and generation paths work fully offline; an AI
// collaborator, when configured, only enhances them.
package interview

// Difficulty is one of an ordered three-level scale.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

var difficultyLevels = []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}

func (d Difficulty) index() int {
	for i, level := range difficultyLevels {
		if level == d {
			return i
		}
	}
	return 1 // unknown values behave as medium
}

// Valid reports whether d is one of the known levels.
func (d Difficulty) Valid() bool {
	for _, level := range difficultyLevels {
		if level == d {
			return true
		}
	}
	return false
}

// Category is the kind of question asked.
type Category string

const (
	CategoryTechnical  Category = "technical"
	CategoryConceptual Category = "conceptual"
	CategoryBehavioral Category = "behavioral"
	CategoryScenario   Category = "scenario"
)

var categoryCycle = []Category{CategoryTechnical, CategoryConceptual, CategoryBehavioral, CategoryScenario}

// CycleCategory returns the category for the n-th question of a session,
// guaranteeing even category coverage over any run length.
func CycleCategory(asked int) Category {
	if asked < 0 {
		asked = 0
	}
	return categoryCycle[asked%len(categoryCycle)]
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, cat := range categoryCycle {
		if cat == c {
			return true
		}
	}
	return false
}

// Question is one interview question. Immutable once created; identified by
// its position in the session's ordered question list.
type Question struct {
	Text       string     `json:"text"`
	Difficulty Difficulty `json:"difficulty"`
	Category   Category   `json:"category"`
	SkillArea  string     `json:"skill_area"`
}

// Evaluation scores one answer across the rubric dimensions, each in [0,100].
// Exactly one evaluation exists per asked question, in the same order.
type Evaluation struct {
	Accuracy       float64 `json:"accuracy"`
	Clarity        float64 `json:"clarity"`
	Depth          float64 `json:"depth"`
	Relevance      float64 `json:"relevance"`
	TimeEfficiency float64 `json:"time_efficiency"`
	OverallScore   float64 `json:"overall_score"`
	Feedback       string  `json:"feedback"`
	SkillArea      string  `json:"skill_area"`
}

// SkippedEvaluation is the fixed zero-valued evaluation recorded when the
// candidate skips a question.
func SkippedEvaluation(q Question) Evaluation {
	return Evaluation{
		Feedback:  "Question skipped by candidate.",
		SkillArea: q.SkillArea,
	}
}
