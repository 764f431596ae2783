// Package extract pulls plain text out of locally stored judgment PDFs.
package extract

import (
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// MaxTextBytes caps extracted text to keep pathological PDFs bounded (1MB)
	MaxTextBytes = 1024 * 1024
)

// PDFExtractor extracts text from judgment PDFs on disk
type PDFExtractor struct{}

// NewPDFExtractor creates a new PDF text extractor
func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

// ExtractText returns the concatenated page text of the PDF at path, in
// document order, with a visible separator between pages. A structurally
// valid but textless document (a scanned image, typically) yields an empty
// string, not an error; deciding whether that is enough text is the caller's
// concern. A document that cannot be opened or parsed is an error.
func (e *PDFExtractor) ExtractText(path string) (string, error) {
	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	totalPages := reader.NumPage()

	var b strings.Builder
	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not discard the rest of the judgment.
			continue
		}

		cleaned := cleanPageText(text)
		if cleaned == "" {
			continue
		}

		fmt.Fprintf(&b, "\n--- Page %d ---\n", pageNum)
		b.WriteString(cleaned)
		b.WriteString("\n")

		if b.Len() > MaxTextBytes {
			break
		}
	}

	text := b.String()
	if len(text) > MaxTextBytes {
		text = text[:MaxTextBytes]
	}
	return text, nil
}

// cleanPageText strips null bytes and surrounding whitespace from one page
func cleanPageText(text string) string {
	text = strings.ReplaceAll(text, "\x00", "")
	return strings.TrimSpace(text)
}
