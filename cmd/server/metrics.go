package main

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rhyrak/go-timetable/internal/pipeline"
)

type metrics struct {
	registry       *prometheus.Registry
	handler        http.Handler
	runs           prometheus.Counter
	underallocated *prometheus.CounterVec
	duration       prometheus.Histogram
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()

	runs := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "timetable_runs_total",
		Help: "Total number of generated timetable runs",
	})
	underallocated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "timetable_underallocated_sessions_total",
		Help: "Course sessions left with fewer hours than requested",
	}, []string{"timetable", "session"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "timetable_generation_seconds",
		Help:    "Time spent loading and generating a run",
		Buckets: prometheus.DefBuckets,
	})

	registry.MustRegister(runs, underallocated, duration)
	return &metrics{
		registry:       registry,
		handler:        promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		runs:           runs,
		underallocated: underallocated,
		duration:       duration,
	}
}

func (m *metrics) observe(run *pipeline.Run, took time.Duration) {
	m.runs.Inc()
	m.duration.Observe(took.Seconds())
	for _, tt := range run.Timetables {
		for _, o := range tt.Underallocated() {
			m.underallocated.WithLabelValues(tt.Name, o.Session.String()).Inc()
		}
	}
}
