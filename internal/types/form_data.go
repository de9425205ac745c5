package types

// MappedField is the result of resolving one free-text mention against the
// catalog. Resolution state is carried explicitly rather than encoded in the
// value, so an unresolved mention can never be mistaken for a catalog name
// downstream.
type MappedField struct {
	Resolved bool   `json:"resolved"`
	ID       string `json:"id,omitempty"`       // catalog id, set when resolved
	Name     string `json:"name,omitempty"`     // catalog name, set when resolved
	Original string `json:"original,omitempty"` // free text as extracted, kept for review
}

// ResolvedField builds a MappedField pointing at a catalog record
func ResolvedField(id, name string) MappedField {
	return MappedField{Resolved: true, ID: id, Name: name}
}

// UnresolvedField builds a MappedField carrying only the original free text
func UnresolvedField(original string) MappedField {
	return MappedField{Original: original}
}

// Value returns the catalog name when resolved, otherwise the original text.
// This is what the form layer displays either way.
func (f MappedField) Value() string {
	if f.Resolved {
		return f.Name
	}
	return f.Original
}

// PortfolioFormData is the shape consumed by the downstream form layer. The
// pipeline produces it from a ParsedCV; the form layer owns it afterwards.
type PortfolioFormData struct {
	PersonalInfo   FormPersonalInfo     `json:"personal_info"`
	Education      []FormEducation      `json:"education"`
	SkillSets      []FormSkillSet       `json:"skill_sets"`
	Certifications []FormCertification  `json:"certifications"`
	Courses        []FormCourse         `json:"courses"`
	WorkExperience []FormWorkExperience `json:"work_experience"`
	Projects       []FormProject        `json:"projects"`
}

// FormPersonalInfo is the personal-information block of the portfolio form
type FormPersonalInfo struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Designation       string `json:"designation"`
	YearsOfExperience int    `json:"years_of_experience"`
	Summary           string `json:"summary,omitempty"`
	Location          string `json:"location,omitempty"`
	Nationality       string `json:"nationality,omitempty"`
}

// FormEducation is one education row with catalog-mapped degree/institution
type FormEducation struct {
	Degree         MappedField `json:"degree"`
	Institution    MappedField `json:"institution"`
	GraduationYear int         `json:"graduation_year,omitempty"`
	Grade          string      `json:"grade,omitempty"`
}

// FormSkillSet is one skill category and its catalog-mapped skills
type FormSkillSet struct {
	Category MappedField   `json:"category"`
	Skills   []MappedField `json:"skills"`
}

// FormCertification mirrors CertificationEntry; no catalog resolution needed
type FormCertification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Year   string `json:"year,omitempty"`
}

// FormCourse mirrors CourseEntry; no catalog resolution needed
type FormCourse struct {
	Name     string `json:"name"`
	Provider string `json:"provider,omitempty"`
	Year     string `json:"year,omitempty"`
}

// FormWorkExperience mirrors WorkExperienceEntry; no catalog resolution needed
type FormWorkExperience struct {
	Position         string   `json:"position"`
	Company          string   `json:"company"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	IsCurrentRole    bool     `json:"is_current_role"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Technologies     []string `json:"technologies,omitempty"`
}

// FormProject mirrors ProjectEntry; no catalog resolution needed
type FormProject struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	URL          string   `json:"url,omitempty"`
	Repository   string   `json:"repository,omitempty"`
}

// UnmappedSkill is a skill mention the resolver could not match, together
// with the category name it appeared under (empty for raw mentions). The
// category reference lets the creator place the new skill in its own
// newly created category instead of the fallback bucket.
type UnmappedSkill struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
}

// UnmappedFields collects the original free-text names the resolver could not
// match, grouped by entity kind. Order follows first appearance in the CV.
type UnmappedFields struct {
	Degrees         []string        `json:"degrees,omitempty"`
	Institutions    []string        `json:"institutions,omitempty"`
	Skills          []UnmappedSkill `json:"skills,omitempty"`
	SkillCategories []string        `json:"skill_categories,omitempty"`
}

// IsEmpty reports whether every kind resolved
func (u *UnmappedFields) IsEmpty() bool {
	return len(u.Degrees) == 0 && len(u.Institutions) == 0 &&
		len(u.Skills) == 0 && len(u.SkillCategories) == 0
}

// NormalizationResult is the output of the normalization stage
type NormalizationResult struct {
	FormData PortfolioFormData `json:"form_data"`
	Unmapped UnmappedFields    `json:"unmapped_fields"`
	Warnings []string          `json:"warnings,omitempty"`
}

// EntityCreationResult reports what the unmapped-entity creator inserted.
// The id maps are keyed by the original free-text name. Failed holds
// "<Kind>: <name>" entries for inserts that errored; a failed insert never
// aborts the batch.
type EntityCreationResult struct {
	SkillCategoryIDs map[string]string `json:"skill_category_ids"`
	DegreeIDs        map[string]string `json:"degree_ids"`
	InstitutionIDs   map[string]string `json:"institution_ids"`
	SkillIDs         map[string]string `json:"skill_ids"`

	CreatedCategories   int `json:"created_categories"`
	CreatedDegrees      int `json:"created_degrees"`
	CreatedInstitutions int `json:"created_institutions"`
	CreatedSkills       int `json:"created_skills"`

	Failed []string `json:"failed,omitempty"`
}

// TotalCreated sums the per-kind creation counts
func (r *EntityCreationResult) TotalCreated() int {
	return r.CreatedCategories + r.CreatedDegrees + r.CreatedInstitutions + r.CreatedSkills
}
