package sinks

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/shelfdata/bookharvest/internal/progress"
)

// PrometheusSink exports harvest progress metrics. It owns all collectors
// for task outcomes and per-category book counters.
type PrometheusSink struct {
	tasksStarted prometheus.Counter
	tasksEnded   *prometheus.CounterVec
	taskRuntime  *prometheus.HistogramVec

	booksScraped  *prometheus.CounterVec
	booksDropped  *prometheus.CounterVec
	fetchBytes    *prometheus.CounterVec
	fetchDuration *prometheus.HistogramVec
}

// NewPrometheusSink registers the collectors against the provided registry.
func NewPrometheusSink(reg prometheus.Registerer) (*PrometheusSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PrometheusSink{
		tasksStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "harvest_tasks_started_total",
			Help: "Total shelf tasks that have started.",
		}),
		tasksEnded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "harvest_tasks_ended_total",
			Help: "Total shelf tasks ended partitioned by outcome.",
		}, []string{"outcome"}),
		taskRuntime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "harvest_task_runtime_seconds",
			Help:    "Wall time per ended task.",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"outcome"}),
		booksScraped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "harvest_books_scraped_total",
			Help: "Book records extracted partitioned by category and status class.",
		}, []string{"category", "status_class"}),
		booksDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "harvest_books_dropped_total",
			Help: "Books dropped by the absent-on-error policy, per category.",
		}, []string{"category"}),
		fetchBytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "harvest_fetch_bytes_total",
			Help: "Document bytes obtained per category.",
		}, []string{"category"}),
		fetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "harvest_fetch_duration_seconds",
			Help:    "Book fetch duration partitioned by status class.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		}, []string{"status_class"}),
	}
	for _, collector := range []prometheus.Collector{
		s.tasksStarted,
		s.tasksEnded,
		s.taskRuntime,
		s.booksScraped,
		s.booksDropped,
		s.fetchBytes,
		s.fetchDuration,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register progress collector: %w", err)
		}
	}
	return s, nil
}

// Consume updates the collectors using the provided batch. It is safe for
// concurrent use.
func (s *PrometheusSink) Consume(_ context.Context, batch []progress.Event) error {
	for _, evt := range batch {
		switch evt.Stage {
		case progress.StageTaskStart:
			s.tasksStarted.Inc()
		case progress.StageTaskDone:
			s.endTask(evt, "completed")
		case progress.StageTaskSkip:
			s.endTask(evt, "skipped")
		case progress.StageTaskAbort:
			s.endTask(evt, "aborted")
		case progress.StageBookDone:
			s.observeBook(evt)
		case progress.StageBookDrop:
			s.booksDropped.WithLabelValues(category(evt)).Inc()
		}
	}
	return nil
}

func (s *PrometheusSink) endTask(evt progress.Event, outcome string) {
	s.tasksEnded.WithLabelValues(outcome).Inc()
	if evt.Dur > 0 {
		s.taskRuntime.WithLabelValues(outcome).Observe(evt.Dur.Seconds())
	}
}

func (s *PrometheusSink) observeBook(evt progress.Event) {
	class := string(evt.StatusClass)
	if class == "" {
		class = string(progress.StatusOther)
	}
	s.booksScraped.WithLabelValues(category(evt), class).Inc()
	if evt.Bytes > 0 {
		s.fetchBytes.WithLabelValues(category(evt)).Add(float64(evt.Bytes))
	}
	if evt.Dur > 0 {
		s.fetchDuration.WithLabelValues(class).Observe(evt.Dur.Seconds())
	}
}

func category(evt progress.Event) string {
	if evt.Category == "" {
		return "unknown"
	}
	return evt.Category
}

// Close implements the Sink interface; it performs no action.
func (s *PrometheusSink) Close(context.Context) error {
	return nil
}
