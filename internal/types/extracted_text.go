// Package types provides type definitions for structured data used throughout the cv-ingest pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ExtractedText is the output of the text extraction stage. It is produced
// once per uploaded file and never mutated afterwards.
type ExtractedText struct {
	FullText string             `json:"full_text"`
	Sections []ExtractedSection `json:"sections"`
	Metadata TextMetadata       `json:"metadata"`
}

// ExtractedSection is a contiguous run of lines belonging to one detected
// heading. Sections are ordered by position and never overlap; a line belongs
// to at most one section (the most recently opened heading before it).
type ExtractedSection struct {
	Heading    string  `json:"heading"`    // canonical name, e.g. "Education"
	Content    string  `json:"content"`    // raw lines belonging to the section
	Confidence float64 `json:"confidence"` // [0,1] heading-detection certainty
	StartLine  int     `json:"start_line"` // line offset of the heading
	EndLine    int     `json:"end_line"`   // line offset of the last content line
}

// TextMetadata carries document-level facts gathered during extraction
type TextMetadata struct {
	PageCount int  `json:"page_count,omitempty"` // PDF only
	WordCount int  `json:"word_count"`
	HasImages bool `json:"has_images"`
}

// SectionByHeading returns the first section with the given canonical heading,
// or nil when no such section was detected.
func (t *ExtractedText) SectionByHeading(heading string) *ExtractedSection {
	for i := range t.Sections {
		if t.Sections[i].Heading == heading {
			return &t.Sections[i]
		}
	}
	return nil
}
