// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-ingest/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintExtractedText outputs a summary of the extraction stage: detected
// sections with their confidences, plus document-level counts.
func (p *Printer) PrintExtractedText(extracted *types.ExtractedText) {
	if extracted == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Words:    %d\n", extracted.Metadata.WordCount))
	if extracted.Metadata.PageCount > 0 {
		sb.WriteString(fmt.Sprintf("Pages:    %d\n", extracted.Metadata.PageCount))
	}
	sb.WriteString(fmt.Sprintf("Sections: %d\n", len(extracted.Sections)))

	if len(extracted.Sections) > 0 {
		sb.WriteString("\n")
		for _, section := range extracted.Sections {
			sb.WriteString(fmt.Sprintf("  • %-16s lines %d-%d (%.2f)\n",
				section.Heading, section.StartLine, section.EndLine, section.Confidence))
		}
	}

	p.printBox("EXTRACTED TEXT", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintParsedCV outputs a human-readable summary of the parsed CV.
func (p *Printer) PrintParsedCV(cv *types.ParsedCV) {
	if cv == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:   %s\n", valueOr(cv.PersonalInfo.Name, "(not found)")))
	sb.WriteString(fmt.Sprintf("Email:  %s\n", valueOr(cv.PersonalInfo.Email, "(not found)")))
	sb.WriteString(fmt.Sprintf("Method: %s\n", cv.Metadata.Method))
	sb.WriteString(fmt.Sprintf("Confidence: %.2f\n", cv.Metadata.TotalConfidence))
	sb.WriteString("\n")

	skillCount := len(cv.Skills.Raw)
	for _, group := range cv.Skills.Categories {
		skillCount += len(group.Skills)
	}
	sb.WriteString(fmt.Sprintf("Education:      %d\n", len(cv.Education)))
	sb.WriteString(fmt.Sprintf("Certifications: %d\n", len(cv.Certifications)))
	sb.WriteString(fmt.Sprintf("Courses:        %d\n", len(cv.Courses)))
	sb.WriteString(fmt.Sprintf("Skills:         %d\n", skillCount))
	sb.WriteString(fmt.Sprintf("Jobs:           %d\n", len(cv.WorkExperience)))
	sb.WriteString(fmt.Sprintf("Projects:       %d\n", len(cv.Projects)))

	if len(cv.Metadata.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		count := min(len(cv.Metadata.Warnings), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", cv.Metadata.Warnings[i]))
		}
		if len(cv.Metadata.Warnings) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(cv.Metadata.Warnings)-maxItemsToShow))
		}
	}

	p.printBox("PARSED CV", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintUnmappedFields outputs the mentions the resolver could not match.
func (p *Printer) PrintUnmappedFields(unmapped types.UnmappedFields) {
	if unmapped.IsEmpty() {
		return
	}

	var sb strings.Builder
	writeKind := func(kind string, names []string) {
		if len(names) == 0 {
			return
		}
		sb.WriteString(fmt.Sprintf("%s:\n", kind))
		count := min(len(names), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", names[i]))
		}
		if len(names) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(names)-maxItemsToShow))
		}
	}
	writeKind("Skill categories", unmapped.SkillCategories)
	writeKind("Degrees", unmapped.Degrees)
	writeKind("Institutions", unmapped.Institutions)
	skillNames := make([]string, 0, len(unmapped.Skills))
	for _, skill := range unmapped.Skills {
		skillNames = append(skillNames, skill.Name)
	}
	writeKind("Skills", skillNames)

	p.printBox("UNMAPPED ENTITIES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCreationResult outputs what the entity creator inserted.
func (p *Printer) PrintCreationResult(result *types.EntityCreationResult) {
	if result == nil || (result.TotalCreated() == 0 && len(result.Failed) == 0) {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Categories:   %d\n", result.CreatedCategories))
	sb.WriteString(fmt.Sprintf("Degrees:      %d\n", result.CreatedDegrees))
	sb.WriteString(fmt.Sprintf("Institutions: %d\n", result.CreatedInstitutions))
	sb.WriteString(fmt.Sprintf("Skills:       %d\n", result.CreatedSkills))

	if len(result.Failed) > 0 {
		sb.WriteString("\nFailed:\n")
		count := min(len(result.Failed), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", result.Failed[i]))
		}
		if len(result.Failed) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(result.Failed)-maxItemsToShow))
		}
	}

	p.printBox("CREATED ENTITIES", strings.TrimSuffix(sb.String(), "\n"))
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
