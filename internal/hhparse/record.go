package hhparse

// Kind identifies the shape of a parsed document.
type Kind string

const (
	KindResume  Kind = "resume"
	KindVacancy Kind = "vacancy"
)

// ExperienceItem is one employment entry of a resume.
type ExperienceItem struct {
	Period      string `json:"period"`
	Company     string `json:"company"`
	Website     string `json:"website"`
	Industry    string `json:"industry"`
	Position    string `json:"position"`
	Description string `json:"description"`
}

// EducationItem is one education entry of a resume.
type EducationItem struct {
	Year    string `json:"year"`
	Name    string `json:"name"`
	Details string `json:"details"`
}

// Resume is the normalized record extracted from a resume page. Every field
// has a usable zero value; a marker missing from the markup leaves the field
// at its default rather than failing the extraction.
type Resume struct {
	Type            Kind             `json:"type"`
	Name            string           `json:"name"`
	Title           string           `json:"title"`
	Salary          string           `json:"salary"`
	Gender          string           `json:"gender"`
	Age             string           `json:"age"`
	BirthDate       string           `json:"birth_date"`
	Area            string           `json:"area"`
	Relocation      string           `json:"relocation"`
	Metro           string           `json:"metro"`
	Specializations []string         `json:"specializations"`
	EmploymentModes []string         `json:"employment_modes"`
	ExperienceTotal string           `json:"experience_total"`
	ExperienceItems []ExperienceItem `json:"experience_items"`
	EducationItems  []EducationItem  `json:"education_items"`
	LanguageItems   []string         `json:"language_items"`
	Skills          []string         `json:"skills"`
	DriverExp       string           `json:"driver_experience"`
	About           string           `json:"about"`
	Citizenship     []string         `json:"citizenship"`
}

// Vacancy is the normalized record extracted from a vacancy page.
type Vacancy struct {
	Type        Kind     `json:"type"`
	Title       string   `json:"title"`
	Salary      string   `json:"salary"`
	Experience  string   `json:"experience"`
	Schedule    []string `json:"schedule"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Company     string   `json:"company"`
	Address     string   `json:"address"`
}

// Document is the terminal output of a parse: exactly one of Resume or
// Vacancy is set, matching Kind.
type Document struct {
	Kind    Kind     `json:"kind"`
	Resume  *Resume  `json:"resume,omitempty"`
	Vacancy *Vacancy `json:"vacancy,omitempty"`
}

func newResume() *Resume {
	return &Resume{
		Type:            KindResume,
		Specializations: []string{},
		EmploymentModes: []string{},
		ExperienceItems: []ExperienceItem{},
		EducationItems:  []EducationItem{},
		LanguageItems:   []string{},
		Skills:          []string{},
		Citizenship:     []string{},
	}
}

func newVacancy() *Vacancy {
	return &Vacancy{
		Type:     KindVacancy,
		Schedule: []string{},
		Skills:   []string{},
	}
}
