package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/cv-ingest/internal/extraction"
	"github.com/jonathan/cv-ingest/internal/types"
)

const (
	nameLineMinLen  = 2
	nameLineMaxLen  = 50
	nameSearchLines = 5
)

var (
	// Lines at the top of a resume that are layout boilerplate rather
	// than the candidate's name.
	boilerplatePattern = regexp.MustCompile(`(?i)\b(resume|curriculum\s+vitae|cv|contact|profile|portfolio)\b`)

	locationLabelPattern    = regexp.MustCompile(`(?im)^\s*(?:location|address|city)\s*[:\-]\s*(.+)$`)
	nationalityLabelPattern = regexp.MustCompile(`(?im)^\s*nationality\s*[:\-]\s*(.+)$`)
)

// parsePersonalInfo gathers contact and identity fields from the whole
// document rather than a single section: contact details routinely sit
// in headers, footers, or the preamble above the first heading.
func parsePersonalInfo(extracted *types.ExtractedText, run *parseRun) types.PersonalInfo {
	info := types.PersonalInfo{
		Name: extractName(extracted.FullText),
	}
	if info.Name == "" {
		run.warnf("no candidate name found in the first %d lines", nameSearchLines)
	}

	if emails := extraction.ExtractEmails(extracted.FullText); len(emails) > 0 {
		info.Email = emails[0]
	}
	if phones := extraction.ExtractPhones(extracted.FullText); len(phones) > 0 {
		info.Phone = phones[0]
	}
	if links := extraction.ExtractLinkedIn(extracted.FullText); len(links) > 0 {
		info.LinkedIn = links[0]
	}
	if repos := extraction.ExtractGitHub(extracted.FullText); len(repos) > 0 {
		info.GitHub = repos[0]
	}

	if sec := extracted.SectionByHeading(extraction.SectionSummary); sec != nil {
		info.Summary = strings.TrimSpace(sec.Content)
	}
	if m := locationLabelPattern.FindStringSubmatch(extracted.FullText); m != nil {
		info.Location = strings.TrimSpace(m[1])
	}
	if m := nationalityLabelPattern.FindStringSubmatch(extracted.FullText); m != nil {
		info.Nationality = strings.TrimSpace(m[1])
	}
	return info
}

// extractName returns the first plausible name line among the leading
// lines of the document: short, non-empty, containing letters, and not
// matching resume boilerplate or a bare contact detail.
func extractName(fullText string) string {
	lines := strings.Split(fullText, "\n")
	seen := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		seen++
		if seen > nameSearchLines {
			break
		}
		if len(line) < nameLineMinLen || len(line) > nameLineMaxLen {
			continue
		}
		if boilerplatePattern.MatchString(line) {
			continue
		}
		if strings.ContainsAny(line, "@/") {
			continue
		}
		if !strings.ContainsFunc(line, func(r rune) bool {
			return r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z'
		}) {
			continue
		}
		return line
	}
	return ""
}
