package interview

import (
	"context"
	"hash/fnv"
	"io"
	"strconv"
	"strings"

	"github.com/spigell/interview-coach/internal/ai"
	"github.com/spigell/interview-coach/internal/candidate"
	"github.com/spigell/interview-coach/internal/jobspec"
	"go.uber.org/zap"
)

const (
	// Recency de-duplication compares the first characters of candidate and
	// previously asked questions.
	recencyWindow          = 3
	recencyAskedPrefix     = 40
	recencyCandidatePrefix = 50

	// The AI collaborator sees the last questions to avoid repetition.
	aiPreviousQuestions = 2
)

// Generator produces interview questions. When an AI collaborator is
// configured it is tried first; any failure falls back to the deterministic
// template path. Generate never fails.
type Generator struct {
	assistant ai.Interviewer // nil when no collaborator is configured
	logger    *zap.Logger
}

// NewGenerator builds a question generator.
func NewGenerator(assistant ai.Interviewer, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{assistant: assistant, logger: log}
}

// Generate produces the next non-repeating question for the session. When
// category is empty it cycles deterministically through the four categories
// based on how many questions were asked so far.
func (g *Generator) Generate(ctx context.Context, profile candidate.Profile, req jobspec.Requirements, asked []Question, difficulty Difficulty, category Category) Question {
	if category == "" {
		category = CycleCategory(len(asked))
	}

	if g.assistant != nil {
		if q, err := g.proposeWithAI(ctx, req, asked, difficulty, category); err == nil {
			return q
		} else {
			g.logger.Warn("AI question generation failed, using template fallback", zap.Error(err))
		}
	}

	return g.generateFallback(profile, req, asked, difficulty, category)
}

func (g *Generator) proposeWithAI(ctx context.Context, req jobspec.Requirements, asked []Question, difficulty Difficulty, category Category) (Question, error) {
	previous := make([]string, 0, aiPreviousQuestions)
	for _, q := range lastQuestions(asked, aiPreviousQuestions) {
		text := q.Text
		if len(text) > 80 {
			text = text[:80]
		}
		previous = append(previous, text)
	}

	draft, err := g.assistant.ProposeQuestion(ctx, &ai.QuestionRequest{
		Role:              req.Role,
		RequiredSkills:    req.RequiredSkills,
		Responsibilities:  req.KeyResponsibilities,
		JDExcerpt:         req.RawExcerpt,
		Difficulty:        string(difficulty),
		Category:          string(category),
		PreviousQuestions: previous,
	})
	if err != nil {
		return Question{}, err
	}

	q := Question{
		Text:       draft.Question,
		Difficulty: difficulty,
		Category:   category,
		SkillArea:  draft.SkillArea,
	}
	if c := Category(draft.Category); c.Valid() {
		q.Category = c
	}
	if q.SkillArea == "" {
		q.SkillArea = "general"
	}
	return q, nil
}

// generateFallback builds the question bank from the job context, filters out
// recently asked questions and picks one via a stable hash so the same inputs
// always yield the same question.
func (g *Generator) generateFallback(profile candidate.Profile, req jobspec.Requirements, asked []Question, difficulty Difficulty, category Category) Question {
	jctx := jobspec.ExtractContext(req.RawExcerpt, req)
	if len(jctx.Skills) == 0 && len(profile.Skills) > 0 {
		jctx = jctx.WithSkills(profile.Skills)
	}

	bank := templateBank(jctx, category, difficulty)

	candidates := filterRecent(bank, asked)
	if len(candidates) == 0 {
		// Never fail for lack of a fresh question.
		candidates = bank
	}

	idx := stablePick(jctx.Role, len(asked), category, len(candidates))

	skillArea := jctx.Skill
	if skillArea == "" || skillArea == jobspec.DefaultSkill {
		skillArea = "general"
	}

	return Question{
		Text:       candidates[idx],
		Difficulty: difficulty,
		Category:   category,
		SkillArea:  skillArea,
	}
}

// filterRecent drops candidates whose lowercase prefix overlaps with one of
// the recently asked questions.
func filterRecent(bank []string, asked []Question) []string {
	recent := lastQuestions(asked, recencyWindow)
	if len(recent) == 0 {
		return bank
	}

	prefixes := make([]string, 0, len(recent))
	for _, q := range recent {
		prefixes = append(prefixes, lowerPrefix(q.Text, recencyAskedPrefix))
	}

	fresh := make([]string, 0, len(bank))
	for _, text := range bank {
		head := lowerPrefix(text, recencyCandidatePrefix)
		seen := false
		for _, p := range prefixes {
			if p != "" && strings.Contains(head, p) {
				seen = true
				break
			}
		}
		if !seen {
			fresh = append(fresh, text)
		}
	}
	return fresh
}

// stablePick reduces a stable FNV-1a hash of (role, asked count, category)
// into the candidate range. A fixed non-cryptographic hash keeps the pick
// reproducible across runs and platforms.
func stablePick(role string, asked int, category Category, n int) int {
	if n <= 0 {
		return 0
	}
	h := fnv.New32a()
	io.WriteString(h, role)
	io.WriteString(h, strconv.Itoa(asked))
	io.WriteString(h, string(category))
	return int(h.Sum32() % uint32(n))
}

func lastQuestions(asked []Question, n int) []Question {
	if len(asked) <= n {
		return asked
	}
	return asked[len(asked)-n:]
}

func lowerPrefix(s string, n int) string {
	s = strings.ToLower(s)
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
