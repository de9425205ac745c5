package extraction

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// extractDOCX reads a .docx as a zip archive and pulls text runs out of
// word/document.xml. Paragraph boundaries become newlines so section
// detection sees the same line structure a text-layer PDF read would give.
func extractDOCX(data []byte) (string, bool, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", false, err
	}

	var docFile *zip.File
	hasImages := false
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			docFile = f
		}
		if strings.HasPrefix(f.Name, "word/media/") {
			hasImages = true
		}
	}
	if docFile == nil {
		return "", false, fmt.Errorf("word/document.xml not found in archive")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", false, err
	}
	defer func() { _ = rc.Close() }()

	text, err := decodeDocumentXML(rc)
	if err != nil {
		return "", false, err
	}
	return text, hasImages, nil
}

// decodeDocumentXML streams WordprocessingML, collecting w:t text runs and
// closing each w:p paragraph with a newline.
func decodeDocumentXML(r io.Reader) (string, error) {
	decoder := xml.NewDecoder(r)
	var sb strings.Builder

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", err
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t": // w:t text run
				var content string
				if err := decoder.DecodeElement(&content, &el); err == nil {
					sb.WriteString(content)
				}
			case "tab":
				sb.WriteString("\t")
			case "br":
				sb.WriteString("\n")
			}
		case xml.EndElement:
			if el.Name.Local == "p" {
				sb.WriteString("\n")
			}
		}
	}

	return sb.String(), nil
}
