package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/cv-ingest/internal/types"
)

var (
	issuerPattern = regexp.MustCompile(`(?i)\b(?:issued\s+by|by|from)\b\s+(.+)`)

	// Title/year separators: en/em dashes, hyphens, commas, parens.
	certSplitPattern = regexp.MustCompile(`\s*[\-–—,|(]\s*`)
)

// certItem is a name/issuer/year triple shared by the certification
// and course parsers, which read the same line shapes.
type certItem struct {
	name   string
	issuer string
	year   string
}

// parseCertItems walks the section line by line. A year-bearing line
// is treated as a new item whose title is the text before the first
// separator; a "by"/"from"/"issued by" line attaches an issuer to the
// most recent item. Lines with neither shape start a plain item.
func parseCertItems(content string) []certItem {
	var items []certItem

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-•*  "))
		if line == "" {
			continue
		}

		if issuer := issuerOnlyLine(line); issuer != "" && len(items) > 0 {
			items[len(items)-1].issuer = issuer
			continue
		}

		item := certItem{name: line}
		if year := yearPattern.FindString(line); year != "" {
			item.year = year
			if parts := certSplitPattern.Split(line, 2); len(parts) > 0 {
				if title := strings.TrimSpace(parts[0]); title != "" && !yearPattern.MatchString(title) {
					item.name = title
				}
			}
		}
		if m := issuerPattern.FindStringSubmatch(item.name); m != nil {
			item.name = strings.TrimSpace(item.name[:len(item.name)-len(m[0])])
			item.issuer = strings.TrimSpace(strings.TrimSuffix(m[1], ")"))
		}
		if item.name == "" {
			continue
		}
		items = append(items, item)
	}
	return items
}

// issuerOnlyLine reports the issuer when the whole line is an issuer
// attribution ("by Coursera", "Issued by AWS"), else "".
func issuerOnlyLine(line string) string {
	m := issuerPattern.FindStringSubmatch(line)
	if m == nil || m[0] != line {
		return ""
	}
	return strings.TrimSpace(m[1])
}

func parseCertifications(content string) []types.CertificationEntry {
	items := parseCertItems(content)
	entries := make([]types.CertificationEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, types.CertificationEntry{
			Name:       it.name,
			Issuer:     it.issuer,
			Year:       it.year,
			Confidence: ConfidenceCertification,
		})
	}
	return entries
}

func parseCourses(content string) []types.CourseEntry {
	items := parseCertItems(content)
	entries := make([]types.CourseEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, types.CourseEntry{
			Name:       it.name,
			Provider:   it.issuer,
			Year:       it.year,
			Confidence: ConfidenceCourse,
		})
	}
	return entries
}
