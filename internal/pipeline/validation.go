package pipeline

import (
	"fmt"

	"github.com/jonathan/cv-ingest/internal/types"
)

// Issue severities, from most to least serious. Only critical and error
// severities indicate data the reviewer must fix; warnings are
// informational.
const (
	SeverityCritical = "critical"
	SeverityError    = "error"
	SeverityWarning  = "warning"
)

// sectionCount is the number of top-level CV sections scored for
// completeness: personal info, education, certifications, courses,
// skills, work experience, projects.
const sectionCount = 7

// Scoring weights for the quality score
const (
	penaltyCritical      = 25
	penaltyError         = 15
	penaltyWarning       = 5
	penaltyLowConfidence = 10
	bonusFullCoverage    = 5
	lowConfidenceFloor   = 0.5
)

// Issue is one validation finding
type Issue struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// ValidationReport scores a parsed CV for the human reviewer. Neither
// score ever blocks the pipeline; output is always subject to manual
// confirmation before it becomes a portfolio record.
type ValidationReport struct {
	CompletenessScore int     `json:"completeness_score"` // 0-100, fraction of sections populated
	QualityScore      int     `json:"quality_score"`      // 0-100, penalty-based
	Issues            []Issue `json:"issues,omitempty"`
}

// HasCritical reports whether any issue carries critical severity
func (r *ValidationReport) HasCritical() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// ValidateResult scores the parsed CV and the remaining unmapped
// entities. A missing email is critical and an unresolvable name is an
// error; everything else is at most a warning.
func ValidateResult(cv *types.ParsedCV, unmapped types.UnmappedFields) *ValidationReport {
	report := &ValidationReport{}

	populated := 0
	if cv.PersonalInfo.Name != "" || cv.PersonalInfo.Email != "" {
		populated++
	}
	if len(cv.Education) > 0 {
		populated++
	}
	if len(cv.Certifications) > 0 {
		populated++
	}
	if len(cv.Courses) > 0 {
		populated++
	}
	if len(cv.Skills.Categories) > 0 || len(cv.Skills.Raw) > 0 {
		populated++
	}
	if len(cv.WorkExperience) > 0 {
		populated++
	}
	if len(cv.Projects) > 0 {
		populated++
	}
	report.CompletenessScore = populated * 100 / sectionCount

	if cv.PersonalInfo.Email == "" {
		report.addIssue(SeverityCritical, "no email address found")
	}
	if cv.PersonalInfo.Name == "" {
		report.addIssue(SeverityError, "no candidate name found")
	}
	if cv.PersonalInfo.Phone == "" {
		report.addIssue(SeverityWarning, "no phone number found")
	}
	if len(cv.Education) == 0 {
		report.addIssue(SeverityWarning, "no education entries found")
	}
	if len(cv.WorkExperience) == 0 {
		report.addIssue(SeverityWarning, "no work experience entries found")
	}
	if n := countUnmapped(unmapped); n > 0 {
		report.addIssue(SeverityWarning, fmt.Sprintf("%d entities could not be mapped to the catalog", n))
	}

	lowConfidence := cv.Metadata.TotalConfidence > 0 && cv.Metadata.TotalConfidence < lowConfidenceFloor
	if lowConfidence {
		report.addIssue(SeverityWarning, fmt.Sprintf("overall parse confidence is low (%.2f)", cv.Metadata.TotalConfidence))
	}

	quality := 100
	for _, issue := range report.Issues {
		switch issue.Severity {
		case SeverityCritical:
			quality -= penaltyCritical
		case SeverityError:
			quality -= penaltyError
		case SeverityWarning:
			quality -= penaltyWarning
		}
	}
	if lowConfidence {
		quality -= penaltyLowConfidence
	}
	if populated == sectionCount {
		quality += bonusFullCoverage
	}
	report.QualityScore = max(0, min(100, quality))

	return report
}

func (r *ValidationReport) addIssue(severity, message string) {
	r.Issues = append(r.Issues, Issue{Severity: severity, Message: message})
}

func countUnmapped(unmapped types.UnmappedFields) int {
	return len(unmapped.Degrees) + len(unmapped.Institutions) +
		len(unmapped.Skills) + len(unmapped.SkillCategories)
}
