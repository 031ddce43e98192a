package memory

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// renderSlip writes a single-page A4 salary slip. Text is translated to
// cp1252 so accented names survive the core Helvetica font.
func renderSlip(s slip, periodLabel string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetCreationDate(s.Generated)
	pdf.SetTitle("Salary Slip "+periodLabel, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr("Salary Slip - "+periodLabel), "B", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 12)
	rows := [][2]string{
		{"Employee", s.FullName + " (" + s.EmployeeID + ")"},
		{"Monthly salary", fmt.Sprintf("%.2f", s.Base)},
		{"Earned this month", fmt.Sprintf("%.2f", s.Earned)},
		{"Incentive", fmt.Sprintf("%.2f", s.Incentive)},
	}
	for _, row := range rows {
		pdf.CellFormat(50, 8, tr(row[0]+":"), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, tr(row[1]), "", 1, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 10, fmt.Sprintf("Net pay: %.2f", s.Earned+s.Incentive), "T", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 8, "Generated: "+s.Generated.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render salary slip: %w", err)
	}
	return buf.Bytes(), nil
}
