// Package candidate turns free-text résumés into a structured profile used to
// seed question generation and the final report.
package candidate

// ExperienceEntry is one detected position in the résumé.
type ExperienceEntry struct {
	Period  string `json:"period"`
	Title   string `json:"title"`
	Details string `json:"details"`
}

// Project is one detected project or significant achievement.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Profile is the structured view of a résumé. Produced once per session and
// immutable afterwards.
type Profile struct {
	Skills        []string          `json:"skills"`
	Experience    []ExperienceEntry `json:"experience"`
	Projects      []Project         `json:"projects"`
	Education     []string          `json:"education"`
	Summary       string            `json:"summary"`
	RoleRelevance string            `json:"role_relevance"`
}
