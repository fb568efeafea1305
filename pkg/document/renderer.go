// Package document converts the plain-text report markup (headings,
// bullets, nested bullets, paragraphs) into a paginated PDF, degrading to
// raw UTF-8 text when PDF output is unavailable.
package document

import (
	"bytes"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog/log"
)

const (
	pageMargin  = 54.0 // 0.75 inch in points
	bodySize    = 10.5
	bodyLine    = 14.0
	headingLine = 20.0
)

// Renderer lays out markup as a single flowing block sequence on A4 pages.
type Renderer struct {
	plainText bool
}

// NewRenderer returns a PDF-producing renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// NewTextRenderer returns a renderer with the PDF engine disabled; Render
// degrades to plain-text bytes.
func NewTextRenderer() *Renderer {
	return &Renderer{plainText: true}
}

// Render produces document bytes for the given title and markup. Rendering
// never fails the request: any PDF engine failure degrades to the
// plain-text form of title + blank line + content.
func (r *Renderer) Render(title, content string) ([]byte, string) {
	content = CleanMarkup(content)
	if r.plainText {
		return PlainText(title, content), "text/plain; charset=utf-8"
	}

	pdf, err := r.buildPDF(title, content)
	if err != nil {
		log.Warn().Err(err).Msg("pdf engine failed, degrading to plain text")
		return PlainText(title, content), "text/plain; charset=utf-8"
	}
	return pdf, "application/pdf"
}

// PlainText is the degraded output contract.
func PlainText(title, content string) []byte {
	return []byte(title + "\n\n" + content)
}

func (r *Renderer) buildPDF(title, content string) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	// Core fonts are cp1252; translate UTF-8 and swap glyphs with no
	// cp1252 equivalent.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	safe := strings.NewReplacer("○", "o")
	write := func(text string, indent float64, height float64) {
		pdf.SetLeftMargin(pageMargin + indent)
		pdf.SetX(pageMargin + indent)
		pdf.MultiCell(0, height, tr(safe.Replace(text)), "", "L", false)
		pdf.SetLeftMargin(pageMargin)
	}

	pdf.SetFont("Helvetica", "B", 18)
	write(title, 0, 24)
	pdf.Ln(10)

	for _, b := range parseMarkup(content) {
		switch b.kind {
		case blockGap:
			pdf.Ln(8)
		case blockHeading1:
			pdf.SetFont("Helvetica", "B", 14)
			write(b.text, 0, headingLine)
			pdf.Ln(6)
		case blockHeading2:
			pdf.SetFont("Helvetica", "B", 12)
			write(b.text, 0, 16)
			pdf.Ln(4)
		case blockBullet:
			pdf.SetFont("Helvetica", "", bodySize)
			write(b.text, 14, bodyLine)
		case blockNestedBullet:
			pdf.SetFont("Helvetica", "", bodySize)
			write(b.text, 28, bodyLine)
		case blockParagraph:
			pdf.SetFont("Helvetica", "", bodySize)
			write(b.text, 0, bodyLine)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
