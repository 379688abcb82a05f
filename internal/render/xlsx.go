package render

import (
	"fmt"
	"io"
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/rhyrak/go-timetable/pkg/model"
)

const sheet = "Sheet1"

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
}

// WriteXLSX writes the timetable as a workbook: slot labels across, days down,
// one merged, coloured cell per session.
func WriteXLSX(w io.Writer, tt *model.Timetable, colors *Colors) error {
	f := excelize.NewFile()
	defer f.Close()

	for j, s := range tt.Slots {
		cell, err := excelize.CoordinatesToCellName(j+2, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, s.Label); err != nil {
			return err
		}
	}
	if err := f.SetColWidth(sheet, "B", columnName(len(tt.Slots)+1), 16); err != nil {
		return err
	}

	styles := make(map[string]int)
	for i, day := range tt.Days {
		row := i + 2
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), day.Name); err != nil {
			return err
		}
		for _, span := range day.Spans() {
			first, _ := excelize.CoordinatesToCellName(span.Start+2, row)
			last, _ := excelize.CoordinatesToCellName(span.End+2, row)
			if err := f.SetCellValue(sheet, first, span.Occupant.String()); err != nil {
				return err
			}
			if span.End > span.Start {
				if err := f.MergeCell(sheet, first, last); err != nil {
					return fmt.Errorf("merge %s:%s: %w", first, last, err)
				}
			}

			color := colors.For(span.Occupant)
			style, ok := styles[color]
			if !ok {
				var err error
				style, err = f.NewStyle(&excelize.Style{
					Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
					Font:      &excelize.Font{Bold: true},
					Fill:      excelize.Fill{Type: "pattern", Color: []string{"#" + color}, Pattern: 1},
					Border:    thinBorder,
				})
				if err != nil {
					return fmt.Errorf("create style: %w", err)
				}
				styles[color] = style
			}
			if err := f.SetCellStyle(sheet, first, last, style); err != nil {
				return err
			}
		}
	}

	return f.Write(w)
}

// SaveXLSX writes the workbook to path.
func SaveXLSX(path string, tt *model.Timetable, colors *Colors) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	return WriteXLSX(out, tt, colors)
}

func columnName(col int) string {
	name, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return "B"
	}
	return name
}
