package interview

import (
	"fmt"

	"github.com/spigell/interview-coach/internal/jobspec"
)

// templateBank instantiates the fixed question-template bank for a category
// and difficulty with the job context. Works for any role; there is no
// per-role question list.
func templateBank(ctx jobspec.Context, category Category, diff Difficulty) []string {
	s, s2 := ctx.Skill, ctx.Skill2
	v := ctx.Verb
	d, phrase := ctx.Domain, ctx.Phrase
	role := ctx.Role

	var banks map[Difficulty][]string

	switch category {
	case CategoryConceptual:
		banks = map[Difficulty][]string{
			DifficultyEasy: {
				fmt.Sprintf("Why is %s important for %s?", s, role),
				fmt.Sprintf("What does good %s look like in your experience?", phrase),
				fmt.Sprintf("How do you stay updated with %s and %s?", s, s2),
			},
			DifficultyMedium: {
				fmt.Sprintf("Explain the relationship between %s and %s systems.", s, d),
				fmt.Sprintf("What principles guide your approach to %s?", phrase),
				fmt.Sprintf("How would you explain %s to a non-technical stakeholder?", s),
			},
			DifficultyHard: {
				fmt.Sprintf("Discuss trade-offs in %s when scaling with %s.", phrase, s),
				fmt.Sprintf("How would you approach technical debt in a %s-based codebase?", s),
				fmt.Sprintf("What would you change about how %s is typically used in the industry?", s),
			},
		}
	case CategoryBehavioral:
		banks = map[Difficulty][]string{
			DifficultyEasy: {
				fmt.Sprintf("Tell me about a project where you used %s. What was your contribution?", s),
				fmt.Sprintf("How do you handle disagreements about %s?", phrase),
				fmt.Sprintf("Describe a time you learned %s quickly.", s),
			},
			DifficultyMedium: {
				fmt.Sprintf("Describe a challenging situation with %s. How did you resolve it?", phrase),
				fmt.Sprintf("Tell me about a time you had to %s under pressure.", v),
				fmt.Sprintf("How do you prioritize when working on %s and %s simultaneously?", s, s2),
			},
			DifficultyHard: {
				fmt.Sprintf("Describe a failure with %s and what you learned.", s),
				fmt.Sprintf("Tell me about a technical decision you made with incomplete information regarding %s.", phrase),
				fmt.Sprintf("How have you mentored others on %s?", s),
			},
		}
	case CategoryScenario:
		banks = map[Difficulty][]string{
			DifficultyEasy: {
				fmt.Sprintf("A teammate asks for help with %s. How do you approach it?", s),
				fmt.Sprintf("You need to onboard someone to %s. What's your plan?", phrase),
				fmt.Sprintf("A bug appears in a %s component. Walk through your debugging steps.", s),
			},
			DifficultyMedium: {
				fmt.Sprintf("Your %s deployment fails at 2 AM. What do you do?", s),
				fmt.Sprintf("A stakeholder wants to change scope for %s. How do you respond?", phrase),
				fmt.Sprintf("The %s system is slow. How do you investigate and fix it?", d),
				fmt.Sprintf("You discover a critical issue with %s in production. What's your process?", s),
			},
			DifficultyHard: {
				fmt.Sprintf("Design a rollout strategy for migrating from %s to %s with zero downtime.", s, s2),
				fmt.Sprintf("You have to choose between speed and quality for %s. How do you decide?", phrase),
				fmt.Sprintf("A security vulnerability is found in your %s stack. How do you handle it?", s),
			},
		}
	default: // technical
		banks = map[Difficulty][]string{
			DifficultyEasy: {
				fmt.Sprintf("What is your experience with %s? How have you used it in projects?", s),
				fmt.Sprintf("Explain the key concepts of %s relevant to %s.", s, role),
				fmt.Sprintf("How would you get started with %s for a new project?", s),
				fmt.Sprintf("What are the main features of %s that matter for %s systems?", s, d),
				fmt.Sprintf("Describe a simple use case where you applied %s.", s),
			},
			DifficultyMedium: {
				fmt.Sprintf("How would you %s %s in a %s environment?", v, s, d),
				fmt.Sprintf("Describe your approach to optimizing %s for scale.", s),
				fmt.Sprintf("What challenges have you faced with %s and how did you solve them?", s),
				fmt.Sprintf("How do you integrate %s with %s in practice?", s, s2),
				fmt.Sprintf("Walk through how you would design a solution using %s for %s.", s, phrase),
				fmt.Sprintf("What are the trade-offs when choosing %s over alternatives?", s),
			},
			DifficultyHard: {
				fmt.Sprintf("Design a %s system using %s. What architecture would you choose and why?", d, s),
				fmt.Sprintf("How would you handle failure scenarios when %s %s at scale?", v, s),
				fmt.Sprintf("Discuss the limitations of %s and how you would work around them.", s),
				fmt.Sprintf("Your %s-based system is degrading under load. How do you diagnose and fix it?", s),
				fmt.Sprintf("Compare %s and %s for %s. When would you use each?", s, s2, phrase),
			},
		}
	}

	bank, ok := banks[diff]
	if !ok || len(bank) == 0 {
		bank = banks[DifficultyMedium]
	}
	return bank
}
