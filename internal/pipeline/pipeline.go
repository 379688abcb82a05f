// Package pipeline wires loading, scheduling, validation and rendering of one
// timetable run together for the CLI and the server.
package pipeline

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/csvio"
	"github.com/rhyrak/go-timetable/internal/render"
	"github.com/rhyrak/go-timetable/internal/scheduler"
	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
	"github.com/rhyrak/go-timetable/pkg/model"
)

type Inputs struct {
	Courses []*model.Course
	Pools   model.RoomPools
	Catalog *scheduler.Catalog
}

// LoadInputs reads the course, room and slot files named by cfg.
func LoadInputs(cfg *scheduler.Configuration) (*Inputs, error) {
	specs, err := csvio.LoadSlotCatalog(cfg.SlotsFile)
	if err != nil {
		return nil, err
	}
	catalog, err := scheduler.NewCatalog(specs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInput.Code, appErrors.ErrInput.Status, "invalid time slot catalog")
	}
	courses, err := csvio.LoadCourses(cfg.CoursesFile, cfg.Delimiter)
	if err != nil {
		return nil, err
	}
	rooms, err := csvio.LoadRooms(cfg.RoomsFile, cfg.Delimiter)
	if err != nil {
		return nil, err
	}
	return &Inputs{Courses: courses, Pools: model.NewRoomPools(rooms), Catalog: catalog}, nil
}

// Run is one generated pair of timetables.
type Run struct {
	ID         string
	CreatedAt  time.Time
	Timetables []*model.Timetable
	Valid      []bool
	Reports    []string
	colors     []*render.Colors
}

// Generate builds both halves, validates them and fixes their colours.
func Generate(cfg *scheduler.Configuration, in *Inputs, logger *zap.Logger) *Run {
	if logger == nil {
		logger = zap.NewNop()
	}
	start := time.Now()
	sem := scheduler.BuildSemester(cfg, in.Catalog, in.Courses, in.Pools, logger)
	palette := render.NewPalette(sem.Rand, render.PaletteSize)

	run := &Run{ID: uuid.NewString(), CreatedAt: start.UTC(), Timetables: sem.Timetables}
	for _, tt := range sem.Timetables {
		valid, report := scheduler.Validate(tt, cfg.ExcludedSlots)
		run.Valid = append(run.Valid, valid)
		run.Reports = append(run.Reports, report)
		run.colors = append(run.colors, render.NewColors(sem.Rand, palette).Assign(tt))
	}
	logger.Info("timetables generated",
		zap.String("run", run.ID),
		zap.Int("courses", len(in.Courses)),
		zap.Duration("took", time.Since(start)),
	)
	return run
}

// Find returns the index of a timetable by name or half number ("1", "2").
func (r *Run) Find(name string) (int, bool) {
	for i, tt := range r.Timetables {
		if tt.Name == name || fmt.Sprint(scheduler.Halves[i].Half) == name {
			return i, true
		}
	}
	return 0, false
}

func (r *Run) WriteXLSX(w io.Writer, i int) error {
	return render.WriteXLSX(w, r.Timetables[i], r.colors[i])
}

func (r *Run) WritePDF(w io.Writer, i int) error {
	return render.WritePDF(w, r.Timetables[i], r.colors[i])
}

// Export writes every timetable in each requested format into dir and returns
// the written paths.
func (r *Run) Export(dir string, formats []string, logger *zap.Logger) ([]string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	var paths []string
	for i, tt := range r.Timetables {
		for _, format := range formats {
			path := filepath.Join(dir, tt.Name+"."+format)
			var err error
			switch format {
			case "csv":
				_, err = csvio.ExportTimetable(tt, path)
			case "xlsx":
				err = render.SaveXLSX(path, tt, r.colors[i])
			case "pdf":
				err = render.SavePDF(path, tt, r.colors[i])
			default:
				err = appErrors.Clone(appErrors.ErrValidation, "unknown output format "+format)
			}
			if err != nil {
				return paths, err
			}
			logger.Debug("exported timetable", zap.String("path", path))
			paths = append(paths, path)
		}
	}
	return paths, nil
}
