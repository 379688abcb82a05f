package scheduler

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// State is the mutable allocation state of one timetable build: the grid, the
// per-day faculty sets and the room bindings. It is never shared between builds.
type State struct {
	catalog  *Catalog
	excluded map[string]bool
	pools    model.RoomPools
	rng      *rand.Rand
	logger   *zap.Logger
	attempts int

	grid    *model.Timetable
	faculty map[string]map[string]bool // day -> faculty placed that day
	nextID  int
}

// NewState creates an empty grid for the configured days and catalog.
func NewState(name string, cfg *Configuration, catalog *Catalog, pools model.RoomPools, rng *rand.Rand, logger *zap.Logger) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &State{
		catalog:  catalog,
		excluded: cfg.excludedSet(),
		pools:    pools,
		rng:      rng,
		logger:   logger,
		attempts: cfg.MaxAttempts,
		grid:     model.NewTimetable(name, cfg.WeekDays, catalog.Slots()),
		faculty:  make(map[string]map[string]bool, len(cfg.WeekDays)),
	}
	for _, d := range cfg.WeekDays {
		s.faculty[d] = make(map[string]bool)
	}
	return s
}

// Timetable exposes the grid being filled.
func (s *State) Timetable() *model.Timetable {
	return s.grid
}

// IsBusy reports whether faculty already teaches on day.
func (s *State) IsBusy(day, faculty string) bool {
	return faculty != "" && s.faculty[day][faculty]
}

// MarkBusy records faculty as teaching on day.
func (s *State) MarkBusy(day, faculty string) {
	if faculty == "" {
		return
	}
	if _, ok := s.faculty[day]; !ok {
		s.faculty[day] = make(map[string]bool)
	}
	s.faculty[day][faculty] = true
}

// Place puts one session of the given length into the first free block of day
// that is long enough. The grid is only written when the whole session fits and
// a room could be resolved.
func (s *State) Place(day, faculty, code string, hours float64, kind model.SessionType, elective bool) bool {
	row := s.grid.Day(day)
	if row == nil {
		return false
	}

	for _, block := range FreeBlocks(row, s.catalog, s.excluded) {
		if !atLeast(block.Duration(s.catalog), hours) {
			continue
		}

		var fill Block
		accum := 0.0
		for _, i := range block {
			fill = append(fill, i)
			accum += s.catalog.Duration(i)
			if atLeast(accum, hours) {
				break
			}
		}

		var room string
		if !elective {
			var ok bool
			room, ok = s.resolveRoom(code, kind)
			if !ok {
				return false
			}
		}

		s.nextID++
		for _, i := range fill {
			row.Cells[i] = &model.Occupant{
				CourseCode: code,
				Faculty:    faculty,
				Session:    kind,
				Room:       room,
				Elective:   elective,
				SessionID:  s.nextID,
			}
		}
		s.MarkBusy(day, faculty)
		return true
	}
	return false
}

// Reuse the course's room, otherwise draw one from the pool matching the
// session type and bind it for the rest of the build.
func (s *State) resolveRoom(code string, kind model.SessionType) (string, bool) {
	if room, ok := s.grid.Rooms[code]; ok {
		return room, true
	}
	pool := s.pools.For(kind)
	if len(pool) == 0 {
		if kind == model.Practical {
			s.logger.Warn("no labs available", zap.String("course", code))
		} else {
			s.logger.Warn("no classrooms available", zap.String("course", code))
		}
		return "", false
	}
	room := pool[s.rng.Intn(len(pool))]
	s.grid.Rooms[code] = room
	return room, true
}
