// Package extract converts uploaded PDF bytes into plain text.
package extract

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

var pdfMagic = []byte("%PDF-")

// IsPDF reports whether the bytes carry the PDF magic header. The check is
// on content, not the uploaded filename.
func IsPDF(b []byte) bool {
	return bytes.HasPrefix(b, pdfMagic)
}

// PDFExtractor pulls plain text out of PDF bytes. Extraction is
// best-effort: a document that yields no text (scanned pages, malformed
// xref tables) produces an empty string, never an error — storage of the
// document must not be blocked by extraction quality.
type PDFExtractor struct {
	logger *slog.Logger
}

func NewPDFExtractor(logger *slog.Logger) *PDFExtractor {
	return &PDFExtractor{logger: logger.With("component", "pdf_extractor")}
}

func (e *PDFExtractor) Text(b []byte) string {
	text, err := plainText(b)
	if err != nil {
		e.logger.Warn("pdf text extraction failed", "error", err)
		return ""
	}
	return text
}

func plainText(b []byte) (text string, err error) {
	// The parser panics on some malformed files; treat that as no text.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf parser panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(b), int64(len(b)))
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	for page := 1; page <= reader.NumPage(); page++ {
		p := reader.Page(page)
		if p.V.IsNull() {
			continue
		}
		content, err := p.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(content)
	}
	return sb.String(), nil
}
