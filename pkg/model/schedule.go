package model

import "fmt"

type SessionType string

const (
	Lecture   SessionType = "L"
	Tutorial  SessionType = "T"
	Practical SessionType = "P"
)

// SessionTypes is the order in which a course's sessions are scheduled.
var SessionTypes = []SessionType{Lecture, Tutorial, Practical}

func (s SessionType) String() string {
	switch s {
	case Lecture:
		return "lecture"
	case Tutorial:
		return "tutorial"
	case Practical:
		return "practical"
	}
	return string(s)
}

// SlotSpec is one entry of the slot catalog file.
type SlotSpec struct {
	Start string `yaml:"start" json:"start"`
	End   string `yaml:"end" json:"end"`
}

type TimeSlot struct {
	Label    string
	Duration float64 // hours
}

// Occupant is what a placed session writes into each of its slots.
type Occupant struct {
	CourseCode string
	Faculty    string
	Session    SessionType
	Room       string
	Elective   bool
	SessionID  int // shared by every slot of one placement
}

// String renders the occupant the way it appears in the output grid.
// Elective occupants never carry a room.
func (o *Occupant) String() string {
	if o == nil {
		return ""
	}
	switch o.Session {
	case Tutorial:
		if o.Elective {
			return o.CourseCode + "T"
		}
		return fmt.Sprintf("%sT (%s)", o.CourseCode, o.Room)
	case Practical:
		if o.Elective {
			return o.CourseCode
		}
		return fmt.Sprintf("%s (Lab-%s)", o.CourseCode, o.Room)
	default:
		if o.Elective {
			return o.CourseCode
		}
		return fmt.Sprintf("%s (%s)", o.CourseCode, o.Room)
	}
}

type Day struct {
	Name  string
	Cells []*Occupant // nil = free, parallel to Timetable.Slots
}

// IsFree checks if the slot at index i is unoccupied.
func (d *Day) IsFree(i int) bool {
	return d.Cells[i] == nil
}

// SessionOutcome reports how much of one course/session requirement was placed.
type SessionOutcome struct {
	CourseCode string
	Session    SessionType
	Requested  float64
	Placed     float64
	Passes     int
	Satisfied  bool
}

type Timetable struct {
	Name     string
	Days     []*Day
	Slots    []TimeSlot
	Outcomes []SessionOutcome
	Rooms    map[string]string // course code -> room
	Elective string            // code of the course standing in for "Elective", if any
}

type TimetableCSVRow struct {
	Day        string  `csv:"day"`
	Start      string  `csv:"start"`
	End        string  `csv:"end"`
	Duration   float64 `csv:"duration"`
	CourseCode string  `csv:"course_code"`
	Session    string  `csv:"session"`
	Room       string  `csv:"room"`
	Faculty    string  `csv:"faculty"`
	Label      string  `csv:"label"`
}

/* NewTimetable creates an empty grid with one row per day. */
func NewTimetable(name string, days []string, slots []TimeSlot) *Timetable {
	tt := Timetable{Name: name, Days: make([]*Day, len(days)), Slots: slots, Rooms: make(map[string]string)}
	for i, d := range days {
		tt.Days[i] = &Day{Name: d, Cells: make([]*Occupant, len(slots))}
	}
	return &tt
}

// Day finds a day row by name.
func (t *Timetable) Day(name string) *Day {
	for _, d := range t.Days {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// Cell returns the display string at (day, slot label); empty when free.
func (t *Timetable) Cell(day string, slot string) string {
	d := t.Day(day)
	if d == nil {
		return ""
	}
	for i, s := range t.Slots {
		if s.Label == slot {
			return d.Cells[i].String()
		}
	}
	return ""
}

// Underallocated lists outcomes that did not reach their requested hours.
func (t *Timetable) Underallocated() []SessionOutcome {
	var short []SessionOutcome
	for _, o := range t.Outcomes {
		if !o.Satisfied {
			short = append(short, o)
		}
	}
	return short
}

// Span is one placed session within a day row: slots [Start, End].
type Span struct {
	Start, End int
	Occupant   *Occupant
}

// Spans groups adjacent cells written by the same placement.
func (d *Day) Spans() []Span {
	var spans []Span
	for i := 0; i < len(d.Cells); i++ {
		c := d.Cells[i]
		if c == nil {
			continue
		}
		end := i
		for end+1 < len(d.Cells) && d.Cells[end+1] != nil && d.Cells[end+1].SessionID == c.SessionID {
			end++
		}
		spans = append(spans, Span{Start: i, End: end, Occupant: c})
		i = end
	}
	return spans
}
