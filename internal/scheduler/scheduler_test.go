package scheduler

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rhyrak/go-timetable/pkg/model"
)

func hourlySlots(labels ...string) []model.SlotSpec {
	specs := make([]model.SlotSpec, 0, len(labels))
	for _, l := range labels {
		parts := strings.Split(l, "-")
		specs = append(specs, model.SlotSpec{Start: parts[0], End: parts[1]})
	}
	return specs
}

func newTestState(t *testing.T, cfg *Configuration, pools model.RoomPools, labels ...string) *State {
	t.Helper()
	catalog, err := NewCatalog(hourlySlots(labels...))
	require.NoError(t, err)
	return NewState("test", cfg, catalog, pools, rand.New(rand.NewSource(1)), nil)
}

func plainConfig() *Configuration {
	cfg := NewDefaultConfiguration()
	cfg.ExcludedSlots = nil
	return cfg
}

func TestParseSlotDuration(t *testing.T) {
	cases := []struct {
		label string
		want  float64
	}{
		{"09:00-10:30", 1.5},
		{"08:00-09:00", 1},
		{"13:15-14:00", 0.75},
		{"07:30-09:00", 1.5},
	}
	for _, tc := range cases {
		got, err := ParseSlotDuration(tc.label)
		require.NoError(t, err, tc.label)
		assert.InDelta(t, tc.want, got, 1e-9, tc.label)
		assert.Greater(t, got, 0.0)
	}

	for _, bad := range []string{"0900-1000", "09:00-10:00-11:00", "aa:00-10:00", "09:00"} {
		_, err := ParseSlotDuration(bad)
		assert.True(t, errors.Is(err, ErrMalformedSlot), bad)
	}
}

func TestNewCatalogTrimsLabels(t *testing.T) {
	catalog, err := NewCatalog([]model.SlotSpec{{Start: " 08:00 ", End: "09:00 "}, {Start: "09:00", End: "10:30"}})
	require.NoError(t, err)
	assert.Equal(t, 2, catalog.Len())
	assert.Equal(t, "08:00-09:00", catalog.Label(0))
	assert.Equal(t, 1, catalog.Index("09:00-10:30"))
	assert.Equal(t, -1, catalog.Index("10:30-11:00"))
	assert.InDelta(t, 1.5, catalog.Duration(1), 1e-9)

	_, err = NewCatalog([]model.SlotSpec{{Start: "8", End: "9"}})
	assert.ErrorIs(t, err, ErrMalformedSlot)
}

func TestFreeBlocksSplitAtExcludedSlot(t *testing.T) {
	cfg := plainConfig()
	s := newTestState(t, cfg, model.RoomPools{}, "08:00-09:00", "09:00-10:00", "10:00-11:00", "11:00-12:00", "12:00-13:00")
	excluded := map[string]bool{"10:00-11:00": true}

	blocks := FreeBlocks(s.grid.Day("Monday"), s.catalog, excluded)
	require.Len(t, blocks, 2)
	assert.Equal(t, []string{"08:00-09:00", "09:00-10:00"}, blocks[0].Labels(s.catalog))
	assert.Equal(t, []string{"11:00-12:00", "12:00-13:00"}, blocks[1].Labels(s.catalog))
	assert.InDelta(t, 2.0, blocks[1].Duration(s.catalog), 1e-9)
}

func TestFreeBlocksSplitAtOccupiedSlot(t *testing.T) {
	s := newTestState(t, plainConfig(), model.RoomPools{}, "08:00-09:00", "09:00-10:00", "10:00-11:00")
	s.grid.Day("Tuesday").Cells[1] = &model.Occupant{CourseCode: "X"}

	blocks := FreeBlocks(s.grid.Day("Tuesday"), s.catalog, nil)
	assert.Equal(t, []Block{{0}, {2}}, blocks)
	assert.Equal(t, []Block{{0, 1, 2}}, FreeBlocks(s.grid.Day("Monday"), s.catalog, nil))
}

func TestPlaceFillsFirstFittingBlock(t *testing.T) {
	s := newTestState(t, plainConfig(), model.RoomPools{Classrooms: []string{"R1"}}, "08:00-09:00", "09:00-10:00", "10:00-11:00", "11:00-12:30")
	s.grid.Day("Monday").Cells[1] = &model.Occupant{CourseCode: "OTHER", SessionID: 99}

	ok := s.Place("Monday", "X", "CS101", 1.5, model.Lecture, false)
	require.True(t, ok)

	mon := s.grid.Day("Monday")
	assert.True(t, mon.IsFree(0), "first block is too short")
	assert.Equal(t, "OTHER", mon.Cells[1].CourseCode, "occupied slot must not be overwritten")
	assert.Equal(t, "CS101 (R1)", mon.Cells[2].String())
	assert.Equal(t, "CS101 (R1)", mon.Cells[3].String())
	assert.Equal(t, mon.Cells[2].SessionID, mon.Cells[3].SessionID)
	assert.True(t, s.IsBusy("Monday", "X"))
	assert.False(t, s.IsBusy("Tuesday", "X"))
}

func TestPlaceNeverTouchesExcludedSlot(t *testing.T) {
	cfg := plainConfig()
	cfg.ExcludedSlots = []string{"09:00-10:00"}
	s := newTestState(t, cfg, model.RoomPools{Classrooms: []string{"R1"}}, "08:00-09:00", "09:00-10:00", "10:00-11:00")

	assert.False(t, s.Place("Monday", "", "CS101", 2, model.Lecture, false))
	assert.True(t, s.Place("Monday", "", "CS101", 1, model.Lecture, false))
	assert.True(t, s.Place("Monday", "", "CS102", 1, model.Lecture, false))
	mon := s.grid.Day("Monday")
	assert.True(t, mon.IsFree(1))
	assert.Equal(t, "CS101", mon.Cells[0].CourseCode)
	assert.Equal(t, "CS102", mon.Cells[2].CourseCode)
}

func TestPlaceFailsWithoutRoomAndLeavesGrid(t *testing.T) {
	s := newTestState(t, plainConfig(), model.RoomPools{Classrooms: []string{"R1"}}, "08:00-09:00", "09:00-10:00")

	assert.False(t, s.Place("Monday", "X", "CS101", 1, model.Practical, false))
	assert.True(t, s.grid.Day("Monday").IsFree(0))
	assert.False(t, s.IsBusy("Monday", "X"))
	assert.Empty(t, s.grid.Rooms)

	assert.False(t, s.Place("Monday", "X", "CS101", 5, model.Lecture, false), "no block is long enough")
	assert.Empty(t, s.grid.Rooms)
}

func TestPlaceReusesRoomPerCourse(t *testing.T) {
	pools := model.RoomPools{Classrooms: []string{"R1", "R2", "R3", "R4"}, Labs: []string{"L1", "L2"}}
	s := newTestState(t, plainConfig(), pools, "08:00-09:00", "09:00-10:00", "10:00-11:00")

	require.True(t, s.Place("Monday", "", "CS101", 1, model.Lecture, false))
	require.True(t, s.Place("Tuesday", "", "CS101", 1, model.Tutorial, false))
	require.True(t, s.Place("Wednesday", "", "CS101", 2, model.Practical, false))

	room := s.grid.Rooms["CS101"]
	require.Contains(t, pools.Classrooms, room)
	assert.Equal(t, "CS101 ("+room+")", s.grid.Day("Monday").Cells[0].String())
	assert.Equal(t, "CS101T ("+room+")", s.grid.Day("Tuesday").Cells[0].String())
	assert.Equal(t, "CS101 (Lab-"+room+")", s.grid.Day("Wednesday").Cells[1].String())
}

func TestPlaceElectiveHasNoRoom(t *testing.T) {
	s := newTestState(t, plainConfig(), model.RoomPools{}, "08:00-09:00", "09:00-10:00")

	require.True(t, s.Place("Monday", "F", model.ElectiveCode, 1, model.Lecture, true))
	require.True(t, s.Place("Tuesday", "F", model.ElectiveCode, 1, model.Tutorial, true))
	assert.Equal(t, "Elective", s.grid.Day("Monday").Cells[0].String())
	assert.Equal(t, "ElectiveT", s.grid.Day("Tuesday").Cells[0].String())
	assert.Empty(t, s.grid.Rooms)
}

func TestScheduleSessionsSingleCourse(t *testing.T) {
	s := newTestState(t, plainConfig(), model.RoomPools{Classrooms: []string{"R1"}}, "08:00-09:00", "09:00-10:00", "10:00-11:00")

	out := s.ScheduleSessions("CODE", "X", model.Lecture, 2, false)

	// 1.5h takes two hour slots on Monday, the remaining 0.5h takes one on Tuesday.
	mon, tue := s.grid.Day("Monday"), s.grid.Day("Tuesday")
	assert.Equal(t, "CODE (R1)", mon.Cells[0].String())
	assert.Equal(t, "CODE (R1)", mon.Cells[1].String())
	assert.True(t, mon.IsFree(2))
	assert.Equal(t, "CODE (R1)", tue.Cells[0].String())
	assert.True(t, tue.IsFree(1))
	assert.True(t, out.Satisfied)
	assert.Equal(t, 2, out.Passes)
	assert.InDelta(t, 2.0, out.Placed, 1e-9)
	assert.Equal(t, Exhausted, OutcomeState(out))
}

func TestScheduleSessionsSizes(t *testing.T) {
	assert.Equal(t, 1.5, sessionLength(model.Lecture, 3))
	assert.Equal(t, 0.5, sessionLength(model.Lecture, 0.5))
	assert.Equal(t, 1.0, sessionLength(model.Tutorial, 0.5))
	assert.Equal(t, 2.0, sessionLength(model.Practical, 3))
	assert.Equal(t, 1.0, sessionLength(model.Practical, 1))
}

func TestScheduleSessionsBudgetExpired(t *testing.T) {
	cfg := plainConfig()
	s := newTestState(t, cfg, model.RoomPools{Classrooms: []string{"R1"}}, "08:00-09:00", "09:00-10:00")
	for _, d := range cfg.WeekDays {
		s.MarkBusy(d, "A")
	}

	out := s.ScheduleSessions("CS101", "A", model.Lecture, 3, false)
	assert.False(t, out.Satisfied)
	assert.Equal(t, 0.0, out.Placed)
	assert.Equal(t, cfg.MaxAttempts, out.Passes)
	assert.Equal(t, 10, out.Passes)
	assert.Equal(t, BudgetExpired, OutcomeState(out))
	for _, d := range s.grid.Days {
		for i := range d.Cells {
			assert.True(t, d.IsFree(i))
		}
	}
}

func TestBuildOneSessionPerFacultyPerDay(t *testing.T) {
	cfg := plainConfig()
	catalog, err := NewCatalog(hourlySlots("08:00-09:00", "09:00-10:00", "10:00-11:00", "11:00-12:00", "12:00-13:00"))
	require.NoError(t, err)
	b := NewBuilder(cfg, catalog, model.RoomPools{Classrooms: []string{"R1", "R2"}}, rand.New(rand.NewSource(7)), nil)

	tt := b.Build("week", []*model.Course{{Course_Code: "MA101", Faculty: "A", LTPSC: "3-1-0-0-3"}})

	lecture := 0.0
	for _, d := range tt.Days {
		ids := map[int]bool{}
		for i, c := range d.Cells {
			if c == nil {
				continue
			}
			ids[c.SessionID] = true
			if c.Session == model.Lecture {
				lecture += tt.Slots[i].Duration
			}
		}
		assert.LessOrEqual(t, len(ids), 1, d.Name)
	}
	assert.GreaterOrEqual(t, lecture, 3.0)
	require.Len(t, tt.Outcomes, 2)
	assert.True(t, tt.Outcomes[0].Satisfied)
	assert.True(t, tt.Outcomes[1].Satisfied)
	assert.Equal(t, model.Tutorial, tt.Outcomes[1].Session)

	valid, report := Validate(tt, cfg.ExcludedSlots)
	assert.True(t, valid, report)
}

func TestBuildSkipsMalformedHours(t *testing.T) {
	catalog, err := NewCatalog(hourlySlots("08:00-09:00", "09:00-10:00"))
	require.NoError(t, err)
	b := NewBuilder(plainConfig(), catalog, model.RoomPools{Classrooms: []string{"R1"}}, rand.New(rand.NewSource(1)), nil)

	tt := b.Build("bad", []*model.Course{
		{Course_Code: "BAD", Faculty: "A", LTPSC: "3-1-0"},
		{Course_Code: "NAN", Faculty: "B", LTPSC: "x-1-0-0-3"},
	})
	assert.Empty(t, tt.Outcomes)
	assert.Empty(t, tt.Rooms)
	for _, d := range tt.Days {
		for i := range d.Cells {
			assert.True(t, d.IsFree(i))
		}
	}
}

func TestBuildSingleElective(t *testing.T) {
	catalog, err := NewCatalog(hourlySlots("08:00-09:00", "09:00-10:00", "10:00-11:00"))
	require.NoError(t, err)
	b := NewBuilder(plainConfig(), catalog, model.RoomPools{Classrooms: []string{"R1"}, Labs: []string{"L1"}}, rand.New(rand.NewSource(3)), nil)
	courses := []*model.Course{
		{Course_Code: "CS101", Faculty: "A", LTPSC: "1-0-0-0-1"},
		{Course_Code: "EL500", Faculty: "F", LTPSC: "2-1-2-0-3", Elective: "1"},
	}

	queue, chosen := b.pickElective(courses)
	require.Len(t, queue, 2)
	assert.Equal(t, "EL500", chosen.Code())
	assert.Equal(t, model.ElectiveCode, queue[1].Code())
	assert.Equal(t, "F", queue[1].Faculty)
	chosenHours, _ := chosen.Hours()
	pseudoHours, err := queue[1].Hours()
	require.NoError(t, err)
	assert.Equal(t, chosenHours, pseudoHours)

	tt := b.Build("electives", courses)
	assert.Equal(t, "EL500", tt.Elective)
	_, bound := tt.Rooms[model.ElectiveCode]
	assert.False(t, bound)
	found := 0
	for _, d := range tt.Days {
		for _, c := range d.Cells {
			if c != nil && c.CourseCode == model.ElectiveCode {
				found++
				assert.True(t, c.Elective)
				assert.NotContains(t, c.String(), "(")
			}
			if c != nil {
				assert.NotEqual(t, "EL500", c.CourseCode, "elective candidates are only scheduled as the pseudo-course")
			}
		}
	}
	assert.Positive(t, found)
}

func TestBuildDropsUnchosenElectives(t *testing.T) {
	catalog, err := NewCatalog(hourlySlots("08:00-09:00", "09:00-10:00"))
	require.NoError(t, err)
	b := NewBuilder(plainConfig(), catalog, model.RoomPools{Classrooms: []string{"R1"}}, rand.New(rand.NewSource(11)), nil)

	queue, chosen := b.pickElective([]*model.Course{
		{Course_Code: "E1", Faculty: "F1", LTPSC: "1-0-0-0-1", Elective: "1"},
		{Course_Code: "E2", Faculty: "F2", LTPSC: "2-0-0-0-2", Elective: "1"},
		{Course_Code: "E3", Faculty: "F3", LTPSC: "3-0-0-0-3", Elective: " 1 "},
	})
	require.Len(t, queue, 1)
	assert.Equal(t, chosen.Faculty, queue[0].Faculty)
	assert.Equal(t, chosen.LTPSC, queue[0].LTPSC)
}

func TestBuildClearsExcludedSlots(t *testing.T) {
	cfg := plainConfig()
	cfg.ExcludedSlots = []string{"09:00-10:00"}
	catalog, err := NewCatalog(hourlySlots("08:00-09:00", "09:00-10:00", "10:00-11:00"))
	require.NoError(t, err)
	b := NewBuilder(cfg, catalog, model.RoomPools{Classrooms: []string{"R1"}}, rand.New(rand.NewSource(1)), nil)
	state := NewState("pre", cfg, catalog, b.pools, b.rng, nil)
	state.Timetable().Day("Friday").Cells[1] = &model.Occupant{CourseCode: "STRAY"}

	tt := b.BuildWith(state, nil)
	assert.True(t, tt.Day("Friday").IsFree(1))
	assert.Equal(t, "", tt.Cell("Friday", "09:00-10:00"))
}

func TestValidateReportsUnderallocation(t *testing.T) {
	cfg := plainConfig()
	catalog, err := NewCatalog(hourlySlots("08:00-09:00"))
	require.NoError(t, err)
	b := NewBuilder(cfg, catalog, model.RoomPools{Classrooms: []string{"R1"}}, rand.New(rand.NewSource(1)), nil)

	// One hour per day cannot hold a 2h practical.
	tt := b.Build("short", []*model.Course{{Course_Code: "PH101", Faculty: "P", LTPSC: "0-0-2-0-1"}})
	require.Len(t, tt.Underallocated(), 1)

	valid, report := Validate(tt, cfg.ExcludedSlots)
	assert.False(t, valid)
	assert.Contains(t, report, "[FAIL]: Allocation completeness check.")
	assert.Contains(t, report, "[  OK]: Faculty same-day check.")
	assert.Contains(t, report, "PH101 practical 0.00/2.00 h after 10 passes")
}

func TestValidateFlagsExcludedAndClashes(t *testing.T) {
	tt := model.NewTimetable("manual", []string{"Monday"}, []model.TimeSlot{{Label: "08:00-09:00", Duration: 1}, {Label: "09:00-10:00", Duration: 1}})
	tt.Days[0].Cells[0] = &model.Occupant{CourseCode: "A1", Faculty: "Z", Room: "R1", SessionID: 1}
	tt.Days[0].Cells[1] = &model.Occupant{CourseCode: "A2", Faculty: "Z", Room: "R2", SessionID: 2}

	valid, report := Validate(tt, []string{"09:00-10:00"})
	assert.False(t, valid)
	assert.Contains(t, report, "[FAIL]: Excluded slot check.")
	assert.Contains(t, report, "[FAIL]: Faculty same-day check.")
	assert.Contains(t, report, "Z teaches 2 sessions on Monday")
}

func TestBuildSemesterHalves(t *testing.T) {
	cfg := plainConfig()
	catalog, err := NewCatalog(hourlySlots("08:00-09:00", "09:00-10:00", "10:00-11:00", "11:00-12:00"))
	require.NoError(t, err)
	pools := model.RoomPools{Classrooms: []string{"R1", "R2", "R3"}, Labs: []string{"L1", "L2"}}
	courses := []*model.Course{
		{Course_Code: "A", Faculty: "FA", LTPSC: "3-0-0-0-3", Semester_Half: "1"},
		{Course_Code: "B", Faculty: "FB", LTPSC: "1-1-2-0-3", Semester_Half: "2"},
		{Course_Code: "C", Faculty: "FC", LTPSC: "2-0-0-0-2", Semester_Half: "0"},
	}

	sem := BuildSemester(cfg, catalog, courses, pools, nil)
	require.Len(t, sem.Timetables, 2)
	first, second := sem.Timetables[0], sem.Timetables[1]
	assert.Equal(t, "timetable_first_half", first.Name)
	assert.Contains(t, first.Rooms, "A")
	assert.Contains(t, first.Rooms, "C")
	assert.NotContains(t, first.Rooms, "B")
	assert.Contains(t, second.Rooms, "B")
	assert.NotContains(t, second.Rooms, "A")

	again := BuildSemester(cfg, catalog, courses, pools, nil)
	for h := range sem.Timetables {
		assert.Equal(t, render(sem.Timetables[h]), render(again.Timetables[h]), "same seed, same timetable")
	}
}

func TestBuildSemesterIndependentStreams(t *testing.T) {
	cfg := plainConfig()
	cfg.IndependentStreams = true
	catalog, err := NewCatalog(hourlySlots("08:00-09:00", "09:00-10:00", "10:00-11:00"))
	require.NoError(t, err)
	pools := model.RoomPools{Classrooms: []string{"R1", "R2", "R3", "R4", "R5"}}
	second := &model.Course{Course_Code: "B", Faculty: "FB", LTPSC: "2-0-0-0-2", Semester_Half: "2"}

	small := BuildSemester(cfg, catalog, []*model.Course{second}, pools, nil)
	large := BuildSemester(cfg, catalog, []*model.Course{
		{Course_Code: "A1", Faculty: "F1", LTPSC: "3-0-0-0-3", Semester_Half: "1"},
		{Course_Code: "A2", Faculty: "F2", LTPSC: "3-0-0-0-3", Semester_Half: "1"},
		second,
	}, pools, nil)

	assert.Equal(t, render(small.Timetables[1]), render(large.Timetables[1]))
}

func render(tt *model.Timetable) []string {
	var cells []string
	for _, d := range tt.Days {
		for _, c := range d.Cells {
			cells = append(cells, c.String())
		}
	}
	return cells
}
