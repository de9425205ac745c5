// Package parsing converts extracted CV text into a structured
// ParsedCV. The deterministic parser runs regex- and keyword-driven
// state machines over each detected section; the LLM parser delegates
// the whole document to a language model; the hybrid parser combines
// the two, preferring deterministic output and filling gaps with the
// model only when confidence falls short.
package parsing

import (
	"fmt"
	"time"

	"github.com/jonathan/cv-ingest/internal/extraction"
	"github.com/jonathan/cv-ingest/internal/types"
)

// Parser is the deterministic CV parser. It carries no state between
// calls; each Parse run accumulates its own warnings and errors.
type Parser struct{}

// NewParser returns a deterministic parser.
func NewParser() *Parser {
	return &Parser{}
}

// parseRun holds the accumulators for a single Parse call.
type parseRun struct {
	warnings []string
	errors   []string
}

func (r *parseRun) warnf(format string, args ...any) {
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

// Parse builds a ParsedCV from extracted text using heuristics only.
// Section parsers are independent: a failure in one is recorded in the
// result metadata and does not prevent the others from running. A
// panic during parsing is converted into a ParseFailureError after
// being recorded, so callers always see it as a regular error.
func (p *Parser) Parse(extracted *types.ExtractedText) (cv *types.ParsedCV, err error) {
	start := time.Now()
	run := &parseRun{}

	defer func() {
		if r := recover(); r != nil {
			run.errors = append(run.errors, fmt.Sprintf("parser panic: %v", r))
			cv = nil
			err = &ParseFailureError{Message: fmt.Sprintf("panic: %v", r)}
		}
	}()

	cv = &types.ParsedCV{
		PersonalInfo: parsePersonalInfo(extracted, run),
	}

	if sec := sectionContent(extracted, extraction.SectionEducation); sec != "" {
		cv.Education = parseEducation(sec)
	}
	if sec := sectionContent(extracted, extraction.SectionCertifications); sec != "" {
		cv.Certifications = parseCertifications(sec)
	}
	if sec := sectionContent(extracted, extraction.SectionCourses); sec != "" {
		cv.Courses = parseCourses(sec)
	}
	if sec := sectionContent(extracted, extraction.SectionSkills); sec != "" {
		cv.Skills = parseSkills(sec)
	}
	if sec := sectionContent(extracted, extraction.SectionExperience); sec != "" {
		cv.WorkExperience = parseWorkExperience(sec)
	}
	if sec := sectionContent(extracted, extraction.SectionProjects); sec != "" {
		cv.Projects = parseProjects(sec)
	}

	cv.Metadata = types.ParseMetadata{
		Method:          types.MethodDeterministic,
		DurationMS:      time.Since(start).Milliseconds(),
		TotalConfidence: cv.AggregateConfidence(),
		Warnings:        run.warnings,
		Errors:          run.errors,
	}
	return cv, nil
}

// sectionContent returns the content of the named section, or "" when
// the section was not detected.
func sectionContent(extracted *types.ExtractedText, heading string) string {
	if sec := extracted.SectionByHeading(heading); sec != nil {
		return sec.Content
	}
	return ""
}
