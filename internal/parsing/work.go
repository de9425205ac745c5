package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/cv-ingest/internal/types"
)

var (
	positionKeywordPattern = regexp.MustCompile(`(?i)\b(engineer|developer|programmer|manager|analyst|consultant|designer|architect|director|officer|lead|head|intern|specialist|administrator|scientist|researcher|executive|coordinator|founder)\b`)

	companyKeywordPattern = regexp.MustCompile(`(?i)\b(inc|ltd|llc|corp|corporation|limited|technologies|technology|solutions|systems|software|labs|group|agency|studio|consultancy|bank|telecom)\b\.?`)

	// "Jan 2020 - Present", "2018 – 2021", "March 2019 to June 2020".
	dateRangePattern = regexp.MustCompile(`(?i)((?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+\d{4}|\d{1,2}/\d{4}|(?:19|20)\d{2})\s*(?:[-–—~]+|to)\s*((?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+\d{4}|\d{1,2}/\d{4}|(?:19|20)\d{2}|present|current|now)`)

	techLinePattern = regexp.MustCompile(`(?i)^\s*(?:technologies|tech\s+stack|tools|stack)\s*(?:used)?\s*[:\-]\s*(.+)$`)

	parentheticalPattern = regexp.MustCompile(`\(([^)]+)\)`)
)

// parseWorkExperience walks the section line by line. Position lines
// are recognized by a fixed job-title vocabulary; a position line only
// closes the open entry when that entry already has a position of its
// own, so "Senior Engineer" followed by "Acme Corp" stays one entry.
// Entries are emitted only when both position and company were
// captured.
func parseWorkExperience(content string) []types.WorkExperienceEntry {
	var entries []types.WorkExperienceEntry
	var current *types.WorkExperienceEntry

	emit := func() {
		if current != nil && current.Position != "" && current.Company != "" {
			entries = append(entries, *current)
		}
		current = nil
	}
	open := func() *types.WorkExperienceEntry {
		if current == nil {
			current = &types.WorkExperienceEntry{Confidence: ConfidenceWorkExperience}
		}
		return current
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		switch {
		case isBulletLine(line):
			open().Responsibilities = append(open().Responsibilities, stripBullet(line))
		case techLinePattern.MatchString(line):
			list := techLinePattern.FindStringSubmatch(line)[1]
			open().Technologies = append(open().Technologies, splitList(list)...)
		case dateRangePattern.MatchString(line):
			m := dateRangePattern.FindStringSubmatch(line)
			e := open()
			e.StartDate = strings.TrimSpace(m[1])
			e.EndDate = strings.TrimSpace(m[2])
			e.IsCurrentRole = isOngoing(e.EndDate)
		case strings.HasPrefix(line, "@"):
			open().Company = strings.TrimSpace(strings.TrimPrefix(line, "@"))
		case positionKeywordPattern.MatchString(line):
			if current != nil && current.Position != "" {
				emit()
			}
			e := open()
			e.Position = trimParenthetical(line, e)
		case companyKeywordPattern.MatchString(line):
			e := open()
			e.Company = trimParenthetical(line, e)
		}
	}
	emit()
	return entries
}

func isBulletLine(line string) bool {
	return strings.IndexAny(line, "-•*▪◦") == 0
}

func stripBullet(line string) string {
	return strings.TrimSpace(strings.TrimLeft(line, "-•*▪◦ "))
}

func splitList(text string) []string {
	var out []string
	for _, token := range skillSplitPattern.Split(text, -1) {
		if token = strings.TrimSpace(token); token != "" {
			out = append(out, token)
		}
	}
	return out
}

func isOngoing(endDate string) bool {
	switch strings.ToLower(endDate) {
	case "present", "current", "now":
		return true
	}
	return false
}

// trimParenthetical removes a trailing parenthetical from a position
// or company line, routing its content to the technology list when it
// reads like one (contains a comma).
func trimParenthetical(line string, e *types.WorkExperienceEntry) string {
	m := parentheticalPattern.FindStringSubmatch(line)
	if m == nil {
		return line
	}
	if strings.Contains(m[1], ",") {
		e.Technologies = append(e.Technologies, splitList(m[1])...)
	}
	return strings.TrimSpace(strings.Replace(line, m[0], "", 1))
}
