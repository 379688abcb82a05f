package main

import (
	"bytes"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rhyrak/go-timetable/internal/csvio"
	"github.com/rhyrak/go-timetable/internal/logger"
	"github.com/rhyrak/go-timetable/internal/pipeline"
	"github.com/rhyrak/go-timetable/internal/scheduler"
	appErrors "github.com/rhyrak/go-timetable/pkg/errors"
	"github.com/rhyrak/go-timetable/pkg/model"
)

type server struct {
	cfg     *scheduler.Configuration
	log     *zap.Logger
	store   *runStore
	metrics *metrics
}

func newServer(cfg *scheduler.Configuration, log *zap.Logger) *server {
	if log == nil {
		log = zap.NewNop()
	}
	return &server{cfg: cfg, log: log, store: newRunStore(), metrics: newMetrics()}
}

func (s *server) router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware(s.log))

	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	r.GET("/timetable", s.handleGetTimetables)
	r.GET("/timetable/:id", s.handleGetTimetableWithId)
	r.GET("/timetable/:id/:half/:format", s.handleGetTimetableDocument)
	r.POST("/timetable", s.handlePostTimetable)
	r.GET("/metrics", gin.WrapH(s.metrics.handler))
	return r
}

func respondError(ctx *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	ctx.JSON(appErr.Status, gin.H{"error": appErr})
}

func (s *server) handleGetTimetables(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"timetableIds": s.store.IDs(),
	})
}

type outcomeView struct {
	CourseCode string  `json:"courseCode"`
	Session    string  `json:"session"`
	Requested  float64 `json:"requested"`
	Placed     float64 `json:"placed"`
	Passes     int     `json:"passes"`
	Satisfied  bool    `json:"satisfied"`
}

type timetableView struct {
	Name     string        `json:"name"`
	Elective string        `json:"elective,omitempty"`
	Valid    bool          `json:"valid"`
	Report   string        `json:"report"`
	Data     string        `json:"data"`
	Outcomes []outcomeView `json:"outcomes"`
}

func (s *server) handleGetTimetableWithId(ctx *gin.Context) {
	run, ok := s.store.Get(ctx.Param("id"))
	if !ok {
		respondError(ctx, appErrors.Clone(appErrors.ErrNotFound, "timetable not found"))
		return
	}

	views := make([]timetableView, 0, len(run.Timetables))
	for i, tt := range run.Timetables {
		data, err := csvio.ExportTimetableString(tt)
		if err != nil {
			respondError(ctx, err)
			return
		}
		views = append(views, timetableView{
			Name:     tt.Name,
			Elective: tt.Elective,
			Valid:    run.Valid[i],
			Report:   run.Reports[i],
			Data:     data,
			Outcomes: outcomeViews(tt.Outcomes),
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"id":         run.ID,
		"createdAt":  run.CreatedAt,
		"timetables": views,
	})
}

func outcomeViews(outcomes []model.SessionOutcome) []outcomeView {
	views := make([]outcomeView, len(outcomes))
	for i, o := range outcomes {
		views[i] = outcomeView{
			CourseCode: o.CourseCode,
			Session:    o.Session.String(),
			Requested:  o.Requested,
			Placed:     o.Placed,
			Passes:     o.Passes,
			Satisfied:  o.Satisfied,
		}
	}
	return views
}

func (s *server) handleGetTimetableDocument(ctx *gin.Context) {
	run, ok := s.store.Get(ctx.Param("id"))
	if !ok {
		respondError(ctx, appErrors.Clone(appErrors.ErrNotFound, "timetable not found"))
		return
	}
	i, ok := run.Find(ctx.Param("half"))
	if !ok {
		respondError(ctx, appErrors.Clone(appErrors.ErrNotFound, "unknown semester half"))
		return
	}

	var buf bytes.Buffer
	var contentType string
	var err error
	switch ctx.Param("format") {
	case "xlsx":
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		err = run.WriteXLSX(&buf, i)
	case "pdf":
		contentType = "application/pdf"
		err = run.WritePDF(&buf, i)
	case "csv":
		contentType = "text/csv"
		var data string
		data, err = csvio.ExportTimetableString(run.Timetables[i])
		buf.WriteString(data)
	default:
		respondError(ctx, appErrors.Clone(appErrors.ErrValidation, "format must be one of csv, xlsx, pdf"))
		return
	}
	if err != nil {
		s.log.Error("render timetable", zap.String("run", run.ID), zap.Error(err))
		respondError(ctx, err)
		return
	}

	name := run.Timetables[i].Name + "." + ctx.Param("format")
	ctx.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	ctx.Data(http.StatusOK, contentType, buf.Bytes())
}

// handlePostTimetable generates a run. Uploaded "courses", "rooms" and "slots"
// files replace the configured ones; a request without a multipart body uses
// the configured files only.
func (s *server) handlePostTimetable(ctx *gin.Context) {
	start := time.Now()
	cfg := *s.cfg

	form, err := ctx.MultipartForm()
	switch {
	case errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		respondError(ctx, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid multipart form"))
		return
	default:
		prefix := uuid.NewString()
		uploads := map[string]*string{
			"courses": &cfg.CoursesFile,
			"rooms":   &cfg.RoomsFile,
			"slots":   &cfg.SlotsFile,
		}
		for field, target := range uploads {
			files := form.File[field]
			if len(files) == 0 {
				continue
			}
			if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
				respondError(ctx, err)
				return
			}
			path := filepath.Join(cfg.UploadDir, prefix+"-"+filepath.Base(files[0].Filename))
			if err := ctx.SaveUploadedFile(files[0], path); err != nil {
				respondError(ctx, err)
				return
			}
			*target = path
		}
	}

	in, err := pipeline.LoadInputs(&cfg)
	if err != nil {
		s.log.Warn("load timetable inputs", zap.Error(err))
		respondError(ctx, err)
		return
	}
	run := pipeline.Generate(&cfg, in, s.log)
	s.store.Save(run)
	s.metrics.observe(run, time.Since(start))

	ctx.JSON(http.StatusOK, gin.H{
		"id":    run.ID,
		"valid": run.Valid,
	})
}
