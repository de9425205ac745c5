// Package extraction converts uploaded resume files (PDF, DOCX, TXT) into
// plain text with heuristically detected sections.
package extraction

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/cv-ingest/internal/types"
)

// PDFBackend extracts plain text from raw PDF bytes. Two implementations
// exist: StructureBackend walks the PDF object tree directly, RenderBackend
// reads the rendered text layer page by page. Both must produce equivalent
// full-text and page-count semantics; which one runs is an environment
// decision made at construction time, not hidden module state.
type PDFBackend interface {
	Name() string
	ExtractText(data []byte) (text string, pageCount int, err error)
}

// Extractor turns a resume file into an ExtractedText
type Extractor struct {
	pdf PDFBackend
}

// NewExtractor builds an Extractor using the given PDF backend
func NewExtractor(pdf PDFBackend) *Extractor {
	return &Extractor{pdf: pdf}
}

// DefaultExtractor builds an Extractor with the pure-Go structure backend,
// which needs no native rendering library.
func DefaultExtractor() *Extractor {
	return NewExtractor(&StructureBackend{})
}

// BackendByName selects a PDF backend by its Name value. The empty
// string selects the structure backend.
func BackendByName(name string) (PDFBackend, error) {
	switch name {
	case "", "structure":
		return &StructureBackend{}, nil
	case "render":
		return &RenderBackend{}, nil
	default:
		return nil, &UnknownBackendError{Name: name}
	}
}

// ExtractFile reads a file from disk and extracts its text
func (e *Extractor) ExtractFile(path string) (*types.ExtractedText, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &DecodeError{Format: "file", Cause: err}
	}
	return e.Extract(filepath.Base(path), data)
}

// Extract converts raw file bytes into plain text plus detected sections.
// Dispatch is by file extension; unknown extensions fail with
// UnsupportedTypeError, decoder failures with DecodeError.
func (e *Extractor) Extract(filename string, data []byte) (*types.ExtractedText, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))

	var (
		text      string
		pageCount int
		hasImages bool
		err       error
	)

	switch ext {
	case "pdf":
		text, pageCount, err = e.pdf.ExtractText(data)
		if err != nil {
			return nil, &DecodeError{Format: "pdf", Cause: err}
		}
		hasImages = pdfHasImages(data)
	case "docx", "doc":
		text, hasImages, err = extractDOCX(data)
		if err != nil {
			return nil, &DecodeError{Format: "docx", Cause: err}
		}
	case "txt":
		text = string(data)
	default:
		return nil, &UnsupportedTypeError{Extension: ext}
	}

	text = normalizeLineEndings(text)

	result := &types.ExtractedText{
		FullText: text,
		Sections: DetectSections(text),
		Metadata: types.TextMetadata{
			PageCount: pageCount,
			WordCount: len(strings.Fields(text)),
			HasImages: hasImages,
		},
	}
	return result, nil
}

// normalizeLineEndings maps CRLF and bare CR to LF
func normalizeLineEndings(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}
