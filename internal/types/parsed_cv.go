package types

// ParseMethod identifies which parsing strategy produced a ParsedCV
type ParseMethod string

// Parse method constants
const (
	// MethodDeterministic is the regex/heuristic section parser
	MethodDeterministic ParseMethod = "deterministic"
	// MethodLLM is the language-model parser
	MethodLLM ParseMethod = "llm"
	// MethodHybrid is the merged deterministic + LLM result
	MethodHybrid ParseMethod = "hybrid"
)

// ParsedCV is the central record of the pipeline: everything the parsers
// could extract from one resume, with per-record confidence scores. It is
// produced once by the parsing stage and consumed read-only downstream.
type ParsedCV struct {
	PersonalInfo   PersonalInfo            `json:"personal_info"`
	Education      []EducationEntry        `json:"education"`
	Certifications []CertificationEntry    `json:"certifications"`
	Courses        []CourseEntry           `json:"courses"`
	Skills         SkillGroups             `json:"skills"`
	WorkExperience []WorkExperienceEntry   `json:"work_experience"`
	Projects       []ProjectEntry          `json:"projects"`
	Metadata       ParseMetadata           `json:"metadata"`
}

// PersonalInfo holds contact and identity fields extracted from the resume
type PersonalInfo struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Summary     string `json:"summary,omitempty"`
	Location    string `json:"location,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	LinkedIn    string `json:"linkedin,omitempty"`
	GitHub      string `json:"github,omitempty"`
}

// EducationEntry is one degree/institution pair. Entries are only emitted
// when both degree and institution were captured.
type EducationEntry struct {
	Degree         string  `json:"degree"`
	Institution    string  `json:"institution"`
	GraduationYear int     `json:"graduation_year,omitempty"`
	Grade          string  `json:"grade,omitempty"` // GPA/CGPA/grade text as written
	Confidence     float64 `json:"confidence"`
}

// CertificationEntry is a professional certification with optional issuer
type CertificationEntry struct {
	Name       string  `json:"name"`
	Issuer     string  `json:"issuer,omitempty"`
	Year       string  `json:"year,omitempty"`
	Confidence float64 `json:"confidence"`
}

// CourseEntry is a completed course or training
type CourseEntry struct {
	Name       string  `json:"name"`
	Provider   string  `json:"provider,omitempty"`
	Year       string  `json:"year,omitempty"`
	Confidence float64 `json:"confidence"`
}

// SkillGroups separates skills found under a category heading from
// uncategorized ("raw") mentions.
type SkillGroups struct {
	Categories []SkillCategoryGroup `json:"categories"`
	Raw        []SkillMention       `json:"raw"`
}

// SkillCategoryGroup is one category heading and the skills listed under it
type SkillCategoryGroup struct {
	Name   string         `json:"name"`
	Skills []SkillMention `json:"skills"`
}

// SkillMention is a single free-text skill name with extraction confidence
type SkillMention struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
}

// WorkExperienceEntry is one job. Entries are only emitted when both company
// and position were captured.
type WorkExperienceEntry struct {
	Position         string   `json:"position"`
	Company          string   `json:"company"`
	StartDate        string   `json:"start_date,omitempty"` // as written, e.g. "Jan 2020"
	EndDate          string   `json:"end_date,omitempty"`   // as written or "Present"
	IsCurrentRole    bool     `json:"is_current_role"`
	Responsibilities []string `json:"responsibilities,omitempty"`
	Technologies     []string `json:"technologies,omitempty"`
	Confidence       float64  `json:"confidence"`
}

// ProjectEntry is a personal or professional project
type ProjectEntry struct {
	Title        string   `json:"title"`
	Description  string   `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	StartDate    string   `json:"start_date,omitempty"`
	EndDate      string   `json:"end_date,omitempty"`
	URL          string   `json:"url,omitempty"`
	Repository   string   `json:"repository,omitempty"` // GitHub URLs are routed here
	Confidence   float64  `json:"confidence"`
}

// ParseMetadata describes how a ParsedCV was produced
type ParseMetadata struct {
	Method          ParseMethod `json:"method"`
	DurationMS      int64       `json:"duration_ms"`
	TotalConfidence float64     `json:"total_confidence"` // arithmetic mean of record confidences
	Warnings        []string    `json:"warnings,omitempty"`
	Errors          []string    `json:"errors,omitempty"`
}

// RecordConfidences returns the confidence of every list-item record in the
// CV, in section order. Used to aggregate TotalConfidence; individual scores
// are never retroactively recomputed.
func (cv *ParsedCV) RecordConfidences() []float64 {
	var scores []float64
	for _, e := range cv.Education {
		scores = append(scores, e.Confidence)
	}
	for _, c := range cv.Certifications {
		scores = append(scores, c.Confidence)
	}
	for _, c := range cv.Courses {
		scores = append(scores, c.Confidence)
	}
	for _, cat := range cv.Skills.Categories {
		for _, s := range cat.Skills {
			scores = append(scores, s.Confidence)
		}
	}
	for _, s := range cv.Skills.Raw {
		scores = append(scores, s.Confidence)
	}
	for _, w := range cv.WorkExperience {
		scores = append(scores, w.Confidence)
	}
	for _, p := range cv.Projects {
		scores = append(scores, p.Confidence)
	}
	return scores
}

// AggregateConfidence computes the arithmetic mean of all record confidences,
// or 0 when the CV holds no records.
func (cv *ParsedCV) AggregateConfidence() float64 {
	scores := cv.RecordConfidences()
	if len(scores) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores))
}

// HasAnyContent reports whether any section extracted at least one record
func (cv *ParsedCV) HasAnyContent() bool {
	return len(cv.Education) > 0 ||
		len(cv.Certifications) > 0 ||
		len(cv.Courses) > 0 ||
		len(cv.Skills.Categories) > 0 ||
		len(cv.Skills.Raw) > 0 ||
		len(cv.WorkExperience) > 0 ||
		len(cv.Projects) > 0 ||
		cv.PersonalInfo.Name != "" ||
		cv.PersonalInfo.Email != ""
}
