package scheduler

import (
	"math/rand"

	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/pkg/model"
)

// Halves are built in this order; names double as output file stems.
var Halves = []struct {
	Half int
	Name string
}{
	{1, "timetable_first_half"},
	{2, "timetable_second_half"},
}

// Semester holds the timetables of one run and the stream they drew from.
type Semester struct {
	Timetables []*model.Timetable
	Rand       *rand.Rand
}

// BuildSemester builds the first and second half timetables. Unless
// IndependentStreams is set, both halves consume one stream seeded once, so the
// second half depends on what the first half drew.
func BuildSemester(cfg *Configuration, catalog *Catalog, courses []*model.Course, pools model.RoomPools, logger *zap.Logger) *Semester {
	if logger == nil {
		logger = zap.NewNop()
	}
	shared := rand.New(rand.NewSource(cfg.Seed))
	sem := &Semester{Rand: shared}
	for _, h := range Halves {
		rng := shared
		if cfg.IndependentStreams {
			rng = rand.New(rand.NewSource(cfg.Seed + int64(h.Half)))
		}
		list := model.FilterByHalf(courses, h.Half)
		tt := NewBuilder(cfg, catalog, pools, rng, logger).Build(h.Name, list)
		logger.Info("timetable built",
			zap.String("timetable", tt.Name),
			zap.Int("courses", len(list)),
			zap.Int("underallocated", len(tt.Underallocated())),
		)
		sem.Timetables = append(sem.Timetables, tt)
	}
	return sem
}
