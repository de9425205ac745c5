package extraction

import (
	"bytes"
	"strings"

	"github.com/gen2brain/go-fitz"
	"github.com/ledongthuc/pdf"
)

// StructureBackend extracts text by walking the PDF object tree. Pure Go, no
// native dependencies; the default for server and test environments.
type StructureBackend struct{}

// Name identifies the backend in debug output
func (b *StructureBackend) Name() string { return "structure" }

// ExtractText implements PDFBackend
func (b *StructureBackend) ExtractText(data []byte) (string, int, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, err
	}

	pageCount := reader.NumPage()
	var text strings.Builder
	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the document
			continue
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}

	return text.String(), pageCount, nil
}

// RenderBackend extracts the rendered text layer through MuPDF. Used where
// the native library is available and layout-faithful line breaks matter.
type RenderBackend struct{}

// Name identifies the backend in debug output
func (b *RenderBackend) Name() string { return "render" }

// ExtractText implements PDFBackend
func (b *RenderBackend) ExtractText(data []byte) (string, int, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", 0, err
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	var text strings.Builder
	for i := 0; i < pageCount; i++ {
		pageText, err := doc.Text(i)
		if err != nil {
			continue
		}
		text.WriteString(pageText)
		text.WriteString("\n")
	}

	return text.String(), pageCount, nil
}

// pdfHasImages reports whether the raw PDF declares any image XObjects.
// A byte-level scan is enough for the metadata flag; decoding is not needed.
func pdfHasImages(data []byte) bool {
	return bytes.Contains(data, []byte("/Subtype /Image")) ||
		bytes.Contains(data, []byte("/Subtype/Image"))
}
