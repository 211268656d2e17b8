package metrics

import (
	"time"

	"github.com/kilianp07/markbook/core/distribution"
	"github.com/kilianp07/markbook/core/model"
)

// RunEvent describes one completed or failed pipeline run.
type RunEvent struct {
	RunID    string
	Input    string
	Time     time.Time
	Duration time.Duration
	Weight   float64
	Rounding string
	// Records is the graded dataset in input order. Empty when the run failed.
	Records []model.StudentRecord
	Summary distribution.Summary
	// ErrorKind is the failure sentinel text, empty on success.
	ErrorKind string
}

// Failed reports whether the run ended in an error.
func (e RunEvent) Failed() bool { return e.ErrorKind != "" }

// Status returns "ok" or "failed".
func (e RunEvent) Status() string {
	if e.Failed() {
		return "failed"
	}
	return "ok"
}

// MetricsSink records run results for observability purposes.
type MetricsSink interface {
	RecordRun(ev RunEvent) error
}

// Flusher is implemented by sinks that buffer output until the run ends.
type Flusher interface {
	Flush() error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordRun(RunEvent) error { return nil }
