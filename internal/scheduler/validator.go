package scheduler

import (
	"fmt"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// Validate checks a timetable for content in excluded slots, faculty teaching
// twice on one day and under-allocated courses.
// Returns false and a message for invalid timetables.
func Validate(tt *model.Timetable, excluded []string) (bool, string) {
	var message string
	var valid bool = true
	var hasExcludedContent bool = false
	var hasFacultyClash bool = false

	excludedSet := make(map[string]bool, len(excluded))
	for _, e := range excluded {
		excludedSet[e] = true
	}

	for _, day := range tt.Days {
		for i, slot := range tt.Slots {
			if excludedSet[slot.Label] && !day.IsFree(i) {
				valid = false
				hasExcludedContent = true
				message += fmt.Sprintf("- %s %s holds %s\n", day.Name, slot.Label, day.Cells[i].String())
			}
		}
	}

	for _, day := range tt.Days {
		sessions := make(map[string]map[int]bool)
		for _, c := range day.Cells {
			if c == nil || c.Faculty == "" {
				continue
			}
			if sessions[c.Faculty] == nil {
				sessions[c.Faculty] = make(map[int]bool)
			}
			sessions[c.Faculty][c.SessionID] = true
		}
		for faculty, ids := range sessions {
			if len(ids) > 1 {
				valid = false
				hasFacultyClash = true
				message += fmt.Sprintf("- %s teaches %d sessions on %s\n", faculty, len(ids), day.Name)
			}
		}
	}

	short := tt.Underallocated()
	if len(short) > 0 {
		valid = false
		message += fmt.Sprintf("- There are %d under-allocated sessions:\n", len(short))
		for _, o := range short {
			message += fmt.Sprintf("    %s %s %.2f/%.2f h after %d passes\n", o.CourseCode, o.Session, o.Placed, o.Requested, o.Passes)
		}
	}

	if len(short) > 0 {
		message = "[FAIL]: Allocation completeness check.\n" + message
	} else {
		message = "[  OK]: Allocation completeness check.\n" + message
	}
	if hasFacultyClash {
		message = "[FAIL]: Faculty same-day check.\n" + message
	} else {
		message = "[  OK]: Faculty same-day check.\n" + message
	}
	if hasExcludedContent {
		message = "[FAIL]: Excluded slot check.\n" + message
	} else {
		message = "[  OK]: Excluded slot check.\n" + message
	}

	return valid, message
}
