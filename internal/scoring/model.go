// Package scoring drives the LLM-based comparison of a vacancy against a
// candidate resume and validates the returned verdict.
package scoring

// CandidateInfo is the candidate summary echoed back by the model.
type CandidateInfo struct {
	Name               string `json:"name"`
	CurrentLocation    string `json:"current_location"`
	IndustryBackground string `json:"industry_background"`
}

// Breakdown is the four-part score decomposition. The parts are free-text
// "X/35"-style entries that conceptually sum to 100.
type Breakdown struct {
	HardSkills        string `json:"hard_skills" validate:"required"`
	Experience        string `json:"experience" validate:"required"`
	Location          string `json:"location" validate:"required"`
	SoftSkillsCulture string `json:"soft_skills_culture" validate:"required"`
}

// Score is the total score with its decomposition.
type Score struct {
	TotalScore int       `json:"total_score" validate:"min=0,max=100"`
	Breakdown  Breakdown `json:"breakdown" validate:"required"`
}

// Analysis is the full scoring result for one (vacancy, resume) pair. A
// response that fails validation is treated as an extraction failure for the
// pair, not retried.
type Analysis struct {
	CandidateInfo  CandidateInfo `json:"candidate_info"`
	Scoring        Score         `json:"scoring" validate:"required"`
	Verdict        string        `json:"verdict" validate:"required,oneof=Рекомендован Резерв Отказ"`
	LocationLogic  string        `json:"location_logic"`
	Pros           []string      `json:"pros"`
	Cons           []string      `json:"cons"`
	RedFlags       []string      `json:"red_flags,omitempty"`
	ReasoningChain string        `json:"reasoning_chain"`

	// Source metadata, attached by the batch layer.
	VacancyFile string `json:"vacancy_file,omitempty"`
	ResumeFile  string `json:"resume_file,omitempty"`
}
