package scheduler

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// Builder turns a course list into one filled timetable.
type Builder struct {
	cfg     *Configuration
	catalog *Catalog
	pools   model.RoomPools
	rng     *rand.Rand
	logger  *zap.Logger
}

func NewBuilder(cfg *Configuration, catalog *Catalog, pools model.RoomPools, rng *rand.Rand, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{cfg: cfg, catalog: catalog, pools: pools, rng: rng, logger: logger}
}

// Build schedules every course into a fresh grid. Courses are processed in
// input order with the drawn elective last.
func (b *Builder) Build(name string, courses []*model.Course) *model.Timetable {
	state := NewState(name, b.cfg, b.catalog, b.pools, b.rng, b.logger)
	return b.BuildWith(state, courses)
}

// BuildWith fills a prepared state, e.g. one with faculty already marked busy.
func (b *Builder) BuildWith(state *State, courses []*model.Course) *model.Timetable {
	tt := state.Timetable()
	queue, chosen := b.pickElective(courses)
	if chosen != nil {
		tt.Elective = chosen.Code()
		b.logger.Debug("elective drawn", zap.String("timetable", tt.Name), zap.String("course", tt.Elective))
	}

	for _, course := range queue {
		code := course.Code()
		hours, err := course.Hours()
		if err != nil {
			b.logger.Debug("skipping course", zap.String("course", code), zap.String("ltpsc", course.LTPSC), zap.Error(err))
			continue
		}
		elective := code == model.ElectiveCode
		required := map[model.SessionType]int{model.Lecture: hours.L, model.Tutorial: hours.T, model.Practical: hours.P}
		for _, kind := range model.SessionTypes {
			outcome := state.ScheduleSessions(code, course.Lecturer(), kind, float64(required[kind]), elective)
			if outcome.Requested > 0 {
				tt.Outcomes = append(tt.Outcomes, outcome)
			}
		}
	}

	clearExcluded(tt, b.cfg.excludedSet())
	return tt
}

// pickElective separates electives from the rest and replaces them with a
// single synthetic course built from one randomly drawn elective.
func (b *Builder) pickElective(courses []*model.Course) ([]*model.Course, *model.Course) {
	var electives, queue []*model.Course
	for _, c := range courses {
		if c.IsElective() {
			electives = append(electives, c)
		} else {
			queue = append(queue, c)
		}
	}
	if len(electives) == 0 {
		return queue, nil
	}
	chosen := electives[b.rng.Intn(len(electives))]
	queue = append(queue, &model.Course{
		Course_Code: model.ElectiveCode,
		Faculty:     chosen.Faculty,
		LTPSC:       chosen.LTPSC,
	})
	return queue, chosen
}

func clearExcluded(tt *model.Timetable, excluded map[string]bool) {
	for i, slot := range tt.Slots {
		if !excluded[slot.Label] {
			continue
		}
		for _, d := range tt.Days {
			d.Cells[i] = nil
		}
	}
}
