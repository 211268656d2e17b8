package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/markbook/core/metrics"
	"github.com/kilianp07/markbook/core/model"
)

// PromSink records grading runs in Prometheus metrics. When a textfile path
// is set, Flush writes the gathered metrics there for the node exporter
// textfile collector.
type PromSink struct {
	runs     *prometheus.CounterVec
	grades   *prometheus.CounterVec
	overall  prometheus.Histogram
	last     *prometheus.GaugeVec
	gatherer prometheus.Gatherer
	textfile string
}

// NewPromSink registers grading metrics on the default Prometheus registerer.
func NewPromSink(textfile string) (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer, prometheus.DefaultGatherer, textfile)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer, gatherer prometheus.Gatherer, textfile string) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
		gatherer = prometheus.DefaultGatherer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "markbook_runs_total",
		Help: "Total number of grading runs",
	}, []string{"status", "error_kind"})
	grades := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "markbook_grades_total",
		Help: "Total number of students graded per band",
	}, []string{"grade"})
	overall := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "markbook_overall_mark",
		Help:    "Distribution of overall marks",
		Buckets: []float64{33, 40, 50, 60, 70, 80, 90, 100},
	})
	last := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "markbook_last_run_students",
		Help: "Students per band in the most recent successful run",
	}, []string{"grade"})

	var err error
	if runs, err = register(reg, runs); err != nil {
		return nil, err
	}
	if grades, err = register(reg, grades); err != nil {
		return nil, err
	}
	if overall, err = register(reg, overall); err != nil {
		return nil, err
	}
	if last, err = register(reg, last); err != nil {
		return nil, err
	}
	return &PromSink{runs: runs, grades: grades, overall: overall, last: last, gatherer: gatherer, textfile: textfile}, nil
}

// register reuses an already registered collector of the same description.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordRun updates the run counter, and for successful runs the grade
// counters, the overall mark histogram and the last run gauges.
func (s *PromSink) RecordRun(ev coremetrics.RunEvent) error {
	s.runs.WithLabelValues(ev.Status(), ev.ErrorKind).Inc()
	if ev.Failed() {
		return nil
	}
	for _, r := range ev.Records {
		s.grades.WithLabelValues(r.Grade.Label()).Inc()
		s.overall.Observe(float64(r.OverallMark))
	}
	for _, g := range model.Grades {
		s.last.WithLabelValues(g.Label()).Set(float64(ev.Summary.Count(g)))
	}
	return nil
}

// Flush writes the textfile export when configured.
func (s *PromSink) Flush() error {
	if s.textfile == "" || s.gatherer == nil {
		return nil
	}
	return prometheus.WriteToTextfile(s.textfile, s.gatherer)
}
