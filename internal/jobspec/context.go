package jobspec

import (
	"regexp"
	"strings"
	"unicode"
)

// Context is the ephemeral, per-question view of a job description: the
// first-ranked terms used to instantiate question templates. Recomputed on
// every generation call and never persisted.
type Context struct {
	Role    string
	Skills  []string
	Skill   string
	Skill2  string
	Verbs   []string
	Verb    string
	Domains []string
	Domain  string
	Phrases []string
	Phrase  string
}

const (
	DefaultSkill  = "the role"
	DefaultSkill2 = "core technologies"
	DefaultVerb   = "work with"
	DefaultDomain = "production"
	DefaultPhrase = "your main responsibilities"

	maxContextSkills  = 10
	maxContextVerbs   = 5
	maxContextDomains = 3
	maxContextPhrases = 5
	maxPhraseLen      = 80
)

var actionVerbs = []string{
	"build", "design", "develop", "implement", "optimize", "deploy", "manage",
	"create", "improve", "scale", "integrate", "analyze", "maintain", "debug",
	"evaluate", "monitor", "automate", "refactor", "test", "migrate",
}

var domainTerms = []string{
	"real-time", "scalable", "distributed", "high-traffic", "production",
	"microservices", "cloud", "performance", "security", "reliable",
	"large-scale", "data-driven", "user-facing", "mission-critical",
}

var techTokenRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(python|java|javascript|react|node\.?js|aws|docker|kubernetes|sql|nosql|mongodb|postgres|redis|kafka|spark|tensorflow|pytorch|ml|api|rest|graphql)\b`),
	regexp.MustCompile(`(?i)\b([a-z]+\.js|[a-z]+\.py)\b`),
	regexp.MustCompile(`(?i)\b(ci/cd|agile|scrum|tdd|bdd)\b`),
}

var phraseSplitRe = regexp.MustCompile(`\s+and\s+|\s*,\s*`)

// ExtractContext scans the job description for action verbs, domain descriptors
// and technology tokens, merging them with the parsed requirements. Best-effort:
// it may miss or over-match, but it never fails and absent data yields named
// defaults.
func ExtractContext(jdText string, req Requirements) Context {
	text := strings.ToLower(jdText)

	verbs := make([]string, 0, maxContextVerbs)
	for _, v := range actionVerbs {
		if strings.Contains(text, v) {
			verbs = append(verbs, v)
			if len(verbs) >= maxContextVerbs {
				break
			}
		}
	}

	domains := make([]string, 0, maxContextDomains)
	for _, d := range domainTerms {
		if strings.Contains(text, d) {
			domains = append(domains, d)
			if len(domains) >= maxContextDomains {
				break
			}
		}
	}

	skills := mergeSkills(req.RequiredSkills, detectTechTokens(text))

	phrases := make([]string, 0, maxContextPhrases)
	for _, r := range req.KeyResponsibilities {
		if len(phrases) >= maxContextPhrases {
			break
		}
		if len(r) <= 10 {
			continue
		}
		phrase := strings.TrimSpace(phraseSplitRe.Split(r, 2)[0])
		if len(phrase) > maxPhraseLen {
			phrase = phrase[:maxPhraseLen]
		}
		if phrase != "" {
			phrases = append(phrases, phrase)
		}
	}

	role := strings.TrimSpace(req.Role)
	if role == "" {
		role = defaultRole
	}

	ctx := Context{
		Role:    role,
		Skills:  skills,
		Skill:   DefaultSkill,
		Skill2:  DefaultSkill2,
		Verbs:   verbs,
		Verb:    DefaultVerb,
		Domains: domains,
		Domain:  DefaultDomain,
		Phrases: phrases,
		Phrase:  DefaultPhrase,
	}

	if len(skills) > 0 {
		ctx.Skill = skills[0]
		ctx.Skill2 = skills[0]
		if len(skills) > 1 {
			ctx.Skill2 = skills[1]
		}
	}
	if len(verbs) > 0 {
		ctx.Verb = verbs[0]
	}
	if len(domains) > 0 {
		ctx.Domain = domains[0]
	}
	if len(phrases) > 0 {
		ctx.Phrase = phrases[0]
	}

	return ctx
}

// WithSkills returns a copy of the context with the skill picks replaced, used
// when the job description yields nothing and the candidate profile has to fill
// the gap.
func (c Context) WithSkills(skills []string) Context {
	if len(skills) == 0 {
		return c
	}
	c.Skills = skills
	c.Skill = skills[0]
	c.Skill2 = skills[0]
	if len(skills) > 1 {
		c.Skill2 = skills[1]
	}
	return c
}

// detectTechTokens finds technology names beyond the fixed skill list via
// token-class regexes. Tokens are title-cased for display.
func detectTechTokens(lowerText string) []string {
	seen := make(map[string]bool)
	tokens := make([]string, 0)
	for _, re := range techTokenRes {
		for _, m := range re.FindAllStringSubmatch(lowerText, -1) {
			t := strings.ToLower(m[1])
			if len(t) <= 2 || t == "the" || t == "and" || t == "for" || t == "with" {
				continue
			}
			if !seen[t] {
				seen[t] = true
				tokens = append(tokens, titleToken(t))
			}
		}
	}
	return tokens
}

// mergeSkills concatenates required skills with detected tokens, de-duplicated
// case-insensitively preserving first-seen order, capped at maxContextSkills.
func mergeSkills(required, detected []string) []string {
	seen := make(map[string]bool)
	merged := make([]string, 0, maxContextSkills)
	for _, s := range append(append([]string{}, required...), detected...) {
		key := strings.ToLower(strings.TrimSpace(s))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, strings.TrimSpace(s))
		if len(merged) >= maxContextSkills {
			break
		}
	}
	return merged
}

func titleToken(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
