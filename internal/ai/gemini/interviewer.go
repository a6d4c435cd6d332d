package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/spigell/interview-coach/internal/ai"
	"github.com/spigell/interview-coach/internal/logger"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string, temperature float32) (string, error)
	Model() string
}

// Interviewer implements ai.Interviewer on top of a Gemini content generator.
type Interviewer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

//go:embed question_prompt.md
var questionPromptTemplate string

//go:embed evaluation_prompt.md
var evaluationPromptTemplate string

const (
	defaultMaxLogLength = 200
	maxJDExcerptRunes   = 1200

	// Creative sampling for question variety, near-deterministic for scoring.
	questionTemperature   = 0.8
	assessmentTemperature = 0.2
)

// NewInterviewer wires a content generator into the ai.Interviewer contract.
func NewInterviewer(generator contentGenerator, log *zap.Logger, maxLogLength int) *Interviewer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Interviewer{
		generator: generator,
		logger:    logger.WithFields(log, logger.CommonFields("gemini", generator.Model())...),
		maxLogLen: maxLogLength,
	}
}

// ProposeQuestion asks Gemini for one role-tailored question. The response must
// be a JSON object with a non-empty "question" field; anything else is an error
// and the caller falls back to template generation.
func (i *Interviewer) ProposeQuestion(ctx context.Context, req *ai.QuestionRequest) (*ai.QuestionDraft, error) {
	if req == nil {
		return nil, errors.New("question request is required")
	}

	excerpt := req.JDExcerpt
	if runes := []rune(excerpt); len(runes) > maxJDExcerptRunes {
		excerpt = string(runes[:maxJDExcerptRunes])
	}

	prompt := questionPromptTemplate
	prompt = strings.ReplaceAll(prompt, "{{ROLE}}", req.Role)
	prompt = strings.ReplaceAll(prompt, "{{REQUIRED_SKILLS}}", strings.Join(req.RequiredSkills, ", "))
	prompt = strings.ReplaceAll(prompt, "{{RESPONSIBILITIES}}", strings.Join(req.Responsibilities, "; "))
	prompt = strings.ReplaceAll(prompt, "{{JD_EXCERPT}}", excerpt)
	prompt = strings.ReplaceAll(prompt, "{{DIFFICULTY}}", req.Difficulty)
	prompt = strings.ReplaceAll(prompt, "{{CATEGORY}}", req.Category)
	prompt = strings.ReplaceAll(prompt, "{{PREVIOUS_QUESTIONS}}", strings.Join(req.PreviousQuestions, " | "))

	raw, err := i.generate(ctx, "question", prompt, questionTemperature)
	if err != nil {
		return nil, err
	}

	data, err := parseJSONObject(raw)
	if err != nil {
		return nil, err
	}

	question := coerceString(data["question"])
	if question == "" {
		return nil, errors.New("gemini response is missing the question field")
	}

	return &ai.QuestionDraft{
		Question:  question,
		SkillArea: coerceString(data["skill_area"]),
		Category:  strings.ToLower(coerceString(data["category"])),
	}, nil
}

// AssessAnswer asks Gemini to score an answer on the four content dimensions.
// All four scores must be present and numeric; a missing or malformed field is
// an error and the caller falls back to heuristic scoring.
func (i *Interviewer) AssessAnswer(ctx context.Context, req *ai.AssessmentRequest) (*ai.AnswerAssessment, error) {
	if req == nil {
		return nil, errors.New("assessment request is required")
	}

	prompt := evaluationPromptTemplate
	prompt = strings.ReplaceAll(prompt, "{{DIFFICULTY}}", req.Difficulty)
	prompt = strings.ReplaceAll(prompt, "{{QUESTION}}", req.Question)
	prompt = strings.ReplaceAll(prompt, "{{ANSWER}}", req.Answer)

	raw, err := i.generate(ctx, "assessment", prompt, assessmentTemperature)
	if err != nil {
		return nil, err
	}

	data, err := parseJSONObject(raw)
	if err != nil {
		return nil, err
	}

	assessment := &ai.AnswerAssessment{Feedback: coerceString(data["feedback"])}
	for _, field := range []struct {
		name string
		dst  *float64
	}{
		{"accuracy", &assessment.Accuracy},
		{"clarity", &assessment.Clarity},
		{"depth", &assessment.Depth},
		{"relevance", &assessment.Relevance},
	} {
		value, ok := data[field.name]
		if !ok {
			return nil, fmt.Errorf("gemini response is missing the %s field", field.name)
		}
		score := coerceFloat(value)
		if math.IsNaN(score) {
			return nil, fmt.Errorf("gemini response has a non-numeric %s field", field.name)
		}
		*field.dst = clampScore(score)
	}

	return assessment, nil
}

func (i *Interviewer) generate(ctx context.Context, kind, prompt string, temperature float32) (string, error) {
	i.logger.Debug("gemini generate content request",
		zap.String("kind", kind),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, i.maxLogLen)),
	)

	raw, err := i.generator.GenerateContent(ctx, prompt, temperature)
	if err != nil {
		return "", err
	}

	i.logger.Debug("gemini generate content response",
		zap.String("kind", kind),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, i.maxLogLen)),
	)

	return raw, nil
}

func parseJSONObject(raw string) (map[string]any, error) {
	cleaned := extractJSON(raw)

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse gemini response: %w", err)
	}
	return data, nil
}

// extractJSON strips markdown code fences the model sometimes wraps around its
// JSON output.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	default:
		if v == nil {
			return ""
		}
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
