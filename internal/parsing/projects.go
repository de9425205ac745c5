package parsing

import (
	"strings"
	"unicode"

	"github.com/jonathan/cv-ingest/internal/extraction"
	"github.com/jonathan/cv-ingest/internal/types"
)

const (
	projectTitleMinLen = 3
	projectTitleMaxLen = 100
)

// parseProjects walks the section line by line. A title-shaped line
// (capitalized, short, not bulleted) starts a new entry; date ranges,
// technology lines, and URLs annotate the open entry; everything else
// accumulates as description.
func parseProjects(content string) []types.ProjectEntry {
	var entries []types.ProjectEntry
	var current *types.ProjectEntry

	emit := func() {
		if current != nil && current.Title != "" {
			current.Description = strings.TrimSpace(current.Description)
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
		case techLinePattern.MatchString(line):
			if current != nil {
				list := techLinePattern.FindStringSubmatch(line)[1]
				current.Technologies = append(current.Technologies, splitList(list)...)
			}
		case dateRangePattern.MatchString(line) && current != nil:
			m := dateRangePattern.FindStringSubmatch(line)
			current.StartDate = strings.TrimSpace(m[1])
			current.EndDate = strings.TrimSpace(m[2])
		case lineIsURL(line):
			if current != nil {
				attachProjectURL(current, line)
			}
		case isProjectTitle(line):
			emit()
			current = &types.ProjectEntry{
				Title:      line,
				Confidence: ConfidenceProject,
			}
		default:
			if current != nil {
				if current.Description != "" {
					current.Description += "\n"
				}
				current.Description += stripBullet(line)
				for _, url := range extraction.ExtractURLs(line) {
					attachProjectURL(current, url)
				}
			}
		}
	}
	emit()
	return entries
}

func isProjectTitle(line string) bool {
	if isBulletLine(line) {
		return false
	}
	if len(line) < projectTitleMinLen || len(line) > projectTitleMaxLen {
		return false
	}
	// Sentences read as description, not titles.
	if strings.HasSuffix(line, ".") || strings.Count(line, " ") > 7 {
		return false
	}
	runes := []rune(line)
	return unicode.IsUpper(runes[0])
}

func lineIsURL(line string) bool {
	urls := extraction.ExtractURLs(line)
	return len(urls) == 1 && urls[0] == line
}

// attachProjectURL stores the first URL of each kind: GitHub links go
// to the repository field, anything else to the generic URL field.
func attachProjectURL(p *types.ProjectEntry, url string) {
	if strings.Contains(strings.ToLower(url), "github.com") {
		if p.Repository == "" {
			p.Repository = url
		}
		return
	}
	if p.URL == "" {
		p.URL = url
	}
}
