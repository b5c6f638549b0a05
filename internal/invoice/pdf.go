package invoice

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// PDF renders documents as single-page A4 PDFs with a centered header and one
// left-aligned row per line.
type PDF struct{}

func NewPDF() *PDF {
	return &PDF{}
}

func (p *PDF) Render(doc Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "", 12)

	pdf.CellFormat(200, 10, doc.Header, "", 1, "C", false, 0, "")
	for _, line := range doc.Lines {
		text := line.Label
		if line.Value != "" {
			text = line.Label + ": " + line.Value
		}
		pdf.CellFormat(200, 10, text, "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}
