package csvio

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// ExportTimetable formats the timetable into TimetableCSVRow structs and
// writes it to the CSV file specified by the given path.
func ExportTimetable(tt *model.Timetable, path string) (string, error) {
	rows := formatTimetable(tt)
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if err := gocsv.MarshalFile(&rows, out); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}

// ExportTimetableString is ExportTimetable into a string.
func ExportTimetableString(tt *model.Timetable) (string, error) {
	rows := formatTimetable(tt)
	return gocsv.MarshalString(&rows)
}

// PrintTimetable prints the weekly timetable grouped by day.
func PrintTimetable(w io.Writer, tt *model.Timetable) {
	printed := 0
	fmt.Fprintf(w, "%s %s %s\n", strings.Repeat("=", 8), tt.Name, strings.Repeat("=", 8))
	for _, day := range tt.Days {
		fmt.Fprintf(w, "\n%s %s %s\n", strings.Repeat("-", (32-len(day.Name))/2), day.Name, strings.Repeat("-", int(0.5+(32-float32(len(day.Name)))/2.0)))
		for _, span := range day.Spans() {
			start, _, _ := strings.Cut(tt.Slots[span.Start].Label, "-")
			_, end, _ := strings.Cut(tt.Slots[span.End].Label, "-")
			fmt.Fprintf(w, "%-5s-%-5s   %-20s %s\n", start, end, span.Occupant.String(), span.Occupant.Faculty)
			printed++
		}
	}
	fmt.Fprintf(w, "Printed sessions: %d\n", printed)
}

func formatTimetable(tt *model.Timetable) []*model.TimetableCSVRow {
	formatted := []*model.TimetableCSVRow{}
	for _, day := range tt.Days {
		for _, span := range day.Spans() {
			duration := 0.0
			for i := span.Start; i <= span.End; i++ {
				duration += tt.Slots[i].Duration
			}
			start, _, _ := strings.Cut(tt.Slots[span.Start].Label, "-")
			_, end, _ := strings.Cut(tt.Slots[span.End].Label, "-")
			o := span.Occupant
			formatted = append(formatted, &model.TimetableCSVRow{
				Day:        day.Name,
				Start:      start,
				End:        end,
				Duration:   duration,
				CourseCode: o.CourseCode,
				Session:    o.Session.String(),
				Room:       o.Room,
				Faculty:    o.Faculty,
				Label:      o.String(),
			})
		}
	}
	return formatted
}
