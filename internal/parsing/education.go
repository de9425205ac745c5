package parsing

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/cv-ingest/internal/types"
)

var (
	degreeKeywordPattern = regexp.MustCompile(`(?i)\b(bachelor|master|doctor(?:ate)?|ph\.?d|b\.?\s?sc|m\.?\s?sc|b\.?\s?a|m\.?\s?a|b\.?\s?s|m\.?\s?s|mba|bba|b\.?\s?tech|m\.?\s?tech|b\.?\s?ed|m\.?\s?ed|llb|llm|mbbs|diploma|hsc|ssc|a[- ]levels?|o[- ]levels?)\b`)

	institutionKeywordPattern = regexp.MustCompile(`(?i)\b(university|college|institute|institution|school|academy|polytechnic|madrasa)\b`)

	yearPattern = regexp.MustCompile(`\b(19|20)\d{2}\b`)

	trailingYearPattern = regexp.MustCompile(`\s*\(\s*(?:19|20)\d{2}\s*\)\s*$`)

	gradePattern = regexp.MustCompile(`(?i)\b(?:gpa|cgpa|grade)\b\s*[:\-]?\s*(.+)`)
)

// parseEducation walks the section line by line. A degree-keyword line
// starts a new entry; an institution-keyword line attaches to the open
// entry; years and GPA lines annotate it. An entry is emitted only
// when both degree and institution were captured.
func parseEducation(content string) []types.EducationEntry {
	var entries []types.EducationEntry
	var current *types.EducationEntry

	emit := func() {
		if current != nil && current.Degree != "" && current.Institution != "" {
			entries = append(entries, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case degreeKeywordPattern.MatchString(line):
			emit()
			current = &types.EducationEntry{
				Degree:     line,
				Confidence: ConfidenceEducation,
			}
			// Degree and institution sometimes share a line
			// ("BSc in CS, XYZ University").
			if institutionKeywordPattern.MatchString(line) {
				if degree, institution, ok := splitDegreeInstitution(line); ok {
					current.Degree = degree
					current.Institution = institution
				}
			}
			if year := firstYear(line); year != 0 {
				current.GraduationYear = year
			}
		case institutionKeywordPattern.MatchString(line):
			if current == nil {
				current = &types.EducationEntry{Confidence: ConfidenceEducation}
			}
			current.Institution = trailingYearPattern.ReplaceAllString(line, "")
			if year := firstYear(line); year != 0 && current.GraduationYear == 0 {
				current.GraduationYear = year
			}
		case gradePattern.MatchString(line):
			if current != nil {
				current.Grade = strings.TrimSpace(gradePattern.FindStringSubmatch(line)[1])
			}
		case yearPattern.MatchString(line):
			if current != nil {
				current.GraduationYear = firstYear(line)
			}
		}
	}
	emit()
	return entries
}

// splitDegreeInstitution splits a combined line at the last comma or
// dash where the trailing part carries the institution keyword.
func splitDegreeInstitution(line string) (degree, institution string, ok bool) {
	for _, sep := range []string{",", " - ", " – ", " — "} {
		if idx := strings.LastIndex(line, sep); idx > 0 {
			head := strings.TrimSpace(line[:idx])
			tail := strings.TrimSpace(line[idx+len(sep):])
			if head != "" && institutionKeywordPattern.MatchString(tail) && !institutionKeywordPattern.MatchString(head) {
				// "XYZ University (2020)" -> the year annotates the
				// entry, not the institution name
				return head, trailingYearPattern.ReplaceAllString(tail, ""), true
			}
		}
	}
	return "", "", false
}

func firstYear(line string) int {
	match := yearPattern.FindString(line)
	if match == "" {
		return 0
	}
	year, err := strconv.Atoi(match)
	if err != nil {
		return 0
	}
	return year
}
