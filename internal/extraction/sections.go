package extraction

import (
	"regexp"
	"strings"

	"github.com/jonathan/cv-ingest/internal/types"
)

// Canonical section headings emitted by DetectSections
const (
	SectionPersonalInfo   = "Personal Information"
	SectionSummary        = "Summary"
	SectionEducation      = "Education"
	SectionExperience     = "Experience"
	SectionSkills         = "Skills"
	SectionProjects       = "Projects"
	SectionCertifications = "Certifications"
	SectionCourses        = "Courses"
	SectionReferences     = "References"
)

// headingConfidence is assigned to every detected section. Pattern matches
// are not differentiated further.
const headingConfidence = 0.8

// headingPattern binds one canonical heading to the regexes that open it
type headingPattern struct {
	heading  string
	patterns []*regexp.Regexp
}

// compileHeading anchors each expression to a full trimmed line with an
// optional trailing colon.
func compileHeading(heading string, exprs ...string) headingPattern {
	compiled := make([]*regexp.Regexp, len(exprs))
	for i, expr := range exprs {
		compiled[i] = regexp.MustCompile(`(?i)^\s*(?:` + expr + `)\s*:?\s*$`)
	}
	return headingPattern{heading: heading, patterns: compiled}
}

// headingPatterns is checked in order; the first canonical heading whose
// pattern matches a line wins.
var headingPatterns = []headingPattern{
	compileHeading(SectionPersonalInfo,
		`personal (?:information|details|info)`,
		`contact(?: information| details)?`),
	compileHeading(SectionSummary,
		`(?:professional |career )?summary`,
		`objective`,
		`profile`,
		`about(?: me)?`),
	compileHeading(SectionEducation,
		`education(?:al)?(?: background| qualifications?| history)?`,
		`academic (?:background|qualifications?|history)`),
	compileHeading(SectionExperience,
		`(?:work |professional |employment |career )?experience`,
		`employment history`,
		`work history`),
	compileHeading(SectionSkills,
		`(?:technical |core |key )?skills(?: (?:&|and) (?:abilities|competencies))?`,
		`core competenc(?:ies|y)`,
		`technologies`,
		`areas? of expertise`),
	compileHeading(SectionProjects,
		`(?:personal |academic |selected |key )?projects?`),
	compileHeading(SectionCertifications,
		`certifications?`,
		`certificates?`,
		`licenses? (?:&|and) certifications?`),
	compileHeading(SectionCourses,
		`courses?`,
		`(?:relevant )?coursework`,
		`trainings?(?: (?:&|and) courses?)?`),
	compileHeading(SectionReferences,
		`references?`,
		`referees?`),
}

// matchHeading returns the canonical heading a line opens, if any
func matchHeading(line string) (string, bool) {
	for _, hp := range headingPatterns {
		for _, re := range hp.patterns {
			if re.MatchString(line) {
				return hp.heading, true
			}
		}
	}
	return "", false
}

// DetectSections scans the text once, line by line. A heading line closes the
// previously open section and opens a new one; non-empty lines accumulate
// into the open section's content. Lines before the first heading are dropped
// — a deliberate simplification, not an oversight: preamble lines (name,
// contact block) are covered by the field extractors instead.
func DetectSections(text string) []types.ExtractedSection {
	lines := strings.Split(text, "\n")

	var sections []types.ExtractedSection
	var current *types.ExtractedSection
	var content []string

	closeCurrent := func() {
		if current == nil {
			return
		}
		current.Content = strings.Join(content, "\n")
		sections = append(sections, *current)
		current = nil
		content = nil
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)

		if heading, ok := matchHeading(line); ok {
			closeCurrent()
			current = &types.ExtractedSection{
				Heading:    heading,
				Confidence: headingConfidence,
				StartLine:  i,
				EndLine:    i,
			}
			continue
		}

		if current != nil && line != "" {
			content = append(content, line)
			current.EndLine = i
		}
	}
	closeCurrent()

	return sections
}
