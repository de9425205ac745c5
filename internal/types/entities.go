package types

// Degree levels recognized by the catalog
const (
	DegreeLevelPostgraduate  = "Postgraduate"
	DegreeLevelGraduate      = "Graduate"
	DegreeLevelUndergraduate = "Undergraduate"
	DegreeLevelDiploma       = "Diploma"
	DegreeLevelCertificate   = "Certificate"
)

// Institution types recognized by the catalog
const (
	InstitutionTypeUniversity = "University"
	InstitutionTypeCollege    = "College"
	InstitutionTypeSchool     = "School"
	InstitutionTypeInstitute  = "Institute"
)

// Degree is a catalog reference record for an academic degree
type Degree struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ShortName string `json:"short_name,omitempty"` // e.g. "BSc"
	Level     string `json:"level"`                // one of the DegreeLevel constants
	IsActive  bool   `json:"is_active"`
}

// Institution is a catalog reference record for a school or university
type Institution struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"` // one of the InstitutionType constants
	Location string `json:"location,omitempty"`
	Division string `json:"division,omitempty"`
	Verified bool   `json:"verified"`
	IsActive bool   `json:"is_active"`
}

// Skill is a catalog reference record for a single skill
type Skill struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	CategoryID string `json:"category_id"`
}

// SkillCategory is a catalog reference record grouping related skills
type SkillCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MatchKind describes how an entity match was obtained
type MatchKind string

// Match kind constants
const (
	MatchExact   MatchKind = "exact"
	MatchFuzzy   MatchKind = "fuzzy"
	MatchCreated MatchKind = "created"
)

// EntityMatch is the uniform contract returned by every resolver operation.
// Entity is nil when Matched is false.
type EntityMatch[T any] struct {
	Matched    bool      `json:"matched"`
	Entity     *T        `json:"entity,omitempty"`
	Confidence float64   `json:"match_confidence,omitempty"`
	Kind       MatchKind `json:"match_type,omitempty"`
}

// NoMatch returns the negative result shared by all resolver operations
func NoMatch[T any]() EntityMatch[T] {
	return EntityMatch[T]{}
}
