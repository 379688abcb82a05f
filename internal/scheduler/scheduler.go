package scheduler

import (
	"math"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// SchedulingState is where a course/session run ended up.
type SchedulingState int

const (
	Scheduling SchedulingState = iota
	Exhausted
	BudgetExpired
)

func (s SchedulingState) String() string {
	switch s {
	case Exhausted:
		return "exhausted"
	case BudgetExpired:
		return "budget-expired"
	}
	return "scheduling"
}

// OutcomeState classifies a finished outcome.
func OutcomeState(o model.SessionOutcome) SchedulingState {
	if o.Satisfied {
		return Exhausted
	}
	return BudgetExpired
}

// sessionLength is the size of a single placement attempt.
func sessionLength(kind model.SessionType, remaining float64) float64 {
	switch kind {
	case model.Tutorial:
		return 1
	case model.Practical:
		return math.Min(2, remaining)
	default:
		return math.Min(1.5, remaining)
	}
}

// ScheduleSessions places sessions of one kind for a course until the required
// hours are used up or the pass budget runs out. Each pass walks the days in
// order and stops at the first successful placement, so a pass adds at most
// one session.
func (s *State) ScheduleSessions(code, faculty string, kind model.SessionType, required float64, elective bool) model.SessionOutcome {
	remaining := required
	passes := 0
	for !exhausted(remaining) && passes < s.attempts {
		passes++
		for _, day := range s.grid.Days {
			if exhausted(remaining) || s.IsBusy(day.Name, faculty) {
				continue
			}
			length := sessionLength(kind, remaining)
			if s.Place(day.Name, faculty, code, length, kind, elective) {
				remaining -= length
				break
			}
		}
	}

	outcome := model.SessionOutcome{
		CourseCode: code,
		Session:    kind,
		Requested:  required,
		Placed:     roundHours(required - math.Max(remaining, 0)),
		Passes:     passes,
		Satisfied:  exhausted(remaining),
	}
	if !outcome.Satisfied {
		s.logger.Warn("course under-allocated",
			zap.String("course", code),
			zap.String("session", kind.String()),
			zap.Float64("requested", outcome.Requested),
			zap.Float64("placed", outcome.Placed),
			zap.Int("passes", passes),
		)
	}
	return outcome
}
