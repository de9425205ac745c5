package parsing

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/cv-ingest/internal/types"
)

const categoryHeadingMaxLen = 30

// skillSplitPattern separates individual skills on a list line.
var skillSplitPattern = regexp.MustCompile(`[,;|•·]+`)

// parseSkills walks the section line by line. A category line (ends
// with ":" or is a short capitalized phrase with no list punctuation)
// opens a group; every other line is tokenized into skill mentions and
// attached to the open group. Skills listed before any category line
// are kept as raw, uncategorized mentions.
func parseSkills(content string) types.SkillGroups {
	var groups types.SkillGroups
	var current *types.SkillCategoryGroup

	flush := func() {
		if current != nil && len(current.Skills) > 0 {
			groups.Categories = append(groups.Categories, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if name, rest, ok := splitCategoryLine(line); ok {
			flush()
			current = &types.SkillCategoryGroup{Name: name}
			// Inline list after the colon ("Languages: Go, Python").
			current.Skills = append(current.Skills, tokenizeSkills(rest)...)
			continue
		}

		skills := tokenizeSkills(line)
		if current != nil {
			current.Skills = append(current.Skills, skills...)
		} else {
			groups.Raw = append(groups.Raw, skills...)
		}
	}
	flush()
	return groups
}

// splitCategoryLine reports whether the line opens a skill category,
// returning the category name and any inline skill list after a colon.
func splitCategoryLine(line string) (name, rest string, ok bool) {
	if idx := strings.Index(line, ":"); idx > 0 {
		return strings.TrimSpace(line[:idx]), strings.TrimSpace(line[idx+1:]), true
	}
	// Bulleted lines are list items even when short and capitalized.
	if strings.IndexAny(line, "-•*") == 0 {
		return "", "", false
	}
	if len(line) > categoryHeadingMaxLen || strings.ContainsAny(line, ",;.|•") {
		return "", "", false
	}
	runes := []rune(line)
	if len(runes) == 0 || !unicode.IsUpper(runes[0]) {
		return "", "", false
	}
	return line, "", true
}

func tokenizeSkills(line string) []types.SkillMention {
	line = strings.TrimLeft(line, "-•* ")
	var skills []types.SkillMention
	for _, token := range skillSplitPattern.Split(line, -1) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		skills = append(skills, types.SkillMention{
			Name:       token,
			Confidence: ConfidenceSkill,
		})
	}
	return skills
}
