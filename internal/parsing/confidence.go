package parsing

// Confidence scores assigned by the deterministic parsers. Each value
// reflects how precisely the extraction heuristic for that section can
// identify real entries: structured sections like education carry more
// signal (degree keyword plus institution keyword) than free-form lists
// like courses.
const (
	// ConfidenceEducation applies to education entries that captured
	// both a degree line and an institution line.
	ConfidenceEducation = 0.7

	// ConfidenceCertification applies to certification entries keyed
	// off a year-bearing title line.
	ConfidenceCertification = 0.6

	// ConfidenceCourse applies to course entries. Course sections are
	// the least structured, so the score is lowest.
	ConfidenceCourse = 0.5

	// ConfidenceSkill applies to individual skill mentions, whether
	// categorized or raw.
	ConfidenceSkill = 0.6

	// ConfidenceWorkExperience applies to work entries that captured
	// both a position and a company.
	ConfidenceWorkExperience = 0.7

	// ConfidenceProject applies to project entries keyed off a
	// title-shaped line.
	ConfidenceProject = 0.6
)

// Confidence scores assigned to LLM-parsed entries. LLM output is not
// graded per entry, so each field type receives a flat score.
const (
	// LLMConfidenceStructured applies to entries in sections the model
	// reliably reproduces from explicit resume structure: education,
	// work experience, and certifications.
	LLMConfidenceStructured = 0.85

	// LLMConfidenceDefault applies to everything else the model emits.
	LLMConfidenceDefault = 0.8
)
