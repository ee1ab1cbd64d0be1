package render

import (
	"bytes"
	"fmt"
	"time"

	"splitledger/internal/core/ports"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer implements ports.SheetRenderer using fpdf.
type PDFRenderer struct{}

// NewPDFRenderer creates a new PDF balance sheet renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces a one-page balance sheet. Each row shows a counterparty
// and the net amount: positive means they owe the viewpoint user, negative
// means the viewpoint user owes them.
func (r *PDFRenderer) Render(viewpointName string, rows []ports.BalanceRow) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Balance Sheet", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Balance Sheet", "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Prepared for %s", viewpointName), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, time.Now().UTC().Format("2 Jan 2006"), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(110, 8, "Counterparty", "1", 0, "L", true, 0, "")
	pdf.CellFormat(40, 8, "Net", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 8, "Direction", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	if len(rows) == 0 {
		pdf.CellFormat(190, 8, "All settled up.", "1", 1, "C", false, 0, "")
	}

	var totalOwed, totalOwing int64
	for _, row := range rows {
		direction := "owes you"
		if row.Net < 0 {
			direction = "you owe"
			totalOwing += -row.Net
		} else {
			totalOwed += row.Net
		}
		pdf.CellFormat(110, 8, row.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, formatMinor(row.Net), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 8, direction, "1", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Owed to you: %s", formatMinor(totalOwed)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("You owe: %s", formatMinor(totalOwing)), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render balance sheet pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// formatMinor renders minor currency units as a decimal string, e.g.
// 12345 -> "123.45" and -5 -> "-0.05".
func formatMinor(v int64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}
