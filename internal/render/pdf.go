package render

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/rhyrak/go-timetable/pkg/model"
)

const (
	pageWidth = 277.0 // A4 landscape minus margins
	dayWidth  = 25.0
	rowHeight = 14.0
)

// WritePDF renders the timetable as a landscape grid with one filled cell per
// session spanning its slots.
func WritePDF(w io.Writer, tt *model.Timetable, colors *Colors) error {
	if len(tt.Slots) == 0 {
		return fmt.Errorf("pdf requires at least one time slot")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 10, strings.ToUpper(strings.ReplaceAll(tt.Name, "_", " ")), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	colWidth := (pageWidth - dayWidth) / float64(len(tt.Slots))
	pdf.SetFont("Arial", "B", 7)
	pdf.CellFormat(dayWidth, 8, "", "1", 0, "C", false, 0, "")
	for _, s := range tt.Slots {
		pdf.CellFormat(colWidth, 8, s.Label, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	for _, day := range tt.Days {
		pdf.SetFont("Arial", "B", 8)
		pdf.CellFormat(dayWidth, rowHeight, day.Name, "1", 0, "C", false, 0, "")
		pdf.SetFont("Arial", "B", 6)
		spans := day.Spans()
		next := 0
		for i := 0; i < len(tt.Slots); i++ {
			if next < len(spans) && spans[next].Start == i {
				span := spans[next]
				r, g, b := rgb(colors.For(span.Occupant))
				pdf.SetFillColor(r, g, b)
				width := float64(span.End-span.Start+1) * colWidth
				pdf.CellFormat(width, rowHeight, span.Occupant.String(), "1", 0, "C", true, 0, "")
				i = span.End
				next++
				continue
			}
			pdf.CellFormat(colWidth, rowHeight, "", "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

// SavePDF writes the document to path.
func SavePDF(path string, tt *model.Timetable, colors *Colors) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	return WritePDF(out, tt, colors)
}
