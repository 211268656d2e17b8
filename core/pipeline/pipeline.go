// Package pipeline runs a mark sheet through parsing, validation, grading,
// report publishing and summarizing, then records the outcome.
package pipeline

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/markbook/core/distribution"
	"github.com/kilianp07/markbook/core/grading"
	"github.com/kilianp07/markbook/core/history"
	"github.com/kilianp07/markbook/core/logger"
	"github.com/kilianp07/markbook/core/metrics"
	"github.com/kilianp07/markbook/core/model"
	"github.com/kilianp07/markbook/core/monitoring"
	"github.com/kilianp07/markbook/core/parser"
	"github.com/kilianp07/markbook/core/report"
)

// Result is the outcome of a successful run.
type Result struct {
	RunID string
	// Dataset holds the graded records in input order.
	Dataset *model.Dataset
	// Ranked holds the same records ordered as in the report.
	Ranked  []model.StudentRecord
	Summary distribution.Summary
	// Output is the published report path, empty for in-memory runs.
	Output string
}

// Pipeline wires the grading stages to the run history, metrics and error
// reporting side channels. Failures of a side channel are logged and never
// change the result of a run.
type Pipeline struct {
	engine     *grading.Engine
	validation grading.ValidationConfig
	history    history.Store
	sink       metrics.MetricsSink
	monitor    monitoring.Monitor
	log        logger.Logger
	now        func() time.Time
	newID      func() string
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithHistory records every run in s.
func WithHistory(s history.Store) Option { return func(p *Pipeline) { p.history = s } }

// WithMetrics sends every run to s.
func WithMetrics(s metrics.MetricsSink) Option { return func(p *Pipeline) { p.sink = s } }

// WithMonitor reports failed runs to m.
func WithMonitor(m monitoring.Monitor) Option { return func(p *Pipeline) { p.monitor = m } }

// WithLogger sets the pipeline logger.
func WithLogger(l logger.Logger) Option { return func(p *Pipeline) { p.log = l } }

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option { return func(p *Pipeline) { p.now = now } }

// WithIDGenerator overrides run id generation.
func WithIDGenerator(f func() string) Option { return func(p *Pipeline) { p.newID = f } }

// New returns a Pipeline grading with engine.
func New(engine *grading.Engine, validation grading.ValidationConfig, opts ...Option) *Pipeline {
	p := &Pipeline{
		engine:     engine,
		validation: validation,
		history:    history.NopStore{},
		sink:       metrics.NopSink{},
		monitor:    monitoring.NopMonitor{},
		log:        logger.NopLogger{},
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Run grades the sheet at input and publishes the ranked report to output.
// The report is either fully written or absent.
func (p *Pipeline) Run(ctx context.Context, input, output string) (*Result, error) {
	r := p.begin(input, output)
	ds, err := parser.ParseFile(input)
	if err != nil {
		return nil, p.finish(ctx, r, nil, err)
	}
	res, err := p.grade(r.ID, ds)
	if err != nil {
		return nil, p.finish(ctx, r, ds, err)
	}
	if err := report.WriteFile(output, res.Dataset.Records); err != nil {
		return nil, p.finish(ctx, r, ds, err)
	}
	res.Output = output
	return res, p.finish(ctx, r, res.Dataset, nil)
}

// Evaluate grades the sheet at input without publishing a report.
func (p *Pipeline) Evaluate(ctx context.Context, input string) (*Result, error) {
	r := p.begin(input, "")
	ds, err := parser.ParseFile(input)
	if err != nil {
		return nil, p.finish(ctx, r, nil, err)
	}
	res, err := p.grade(r.ID, ds)
	if err != nil {
		return nil, p.finish(ctx, r, ds, err)
	}
	return res, p.finish(ctx, r, res.Dataset, nil)
}

// RunReader grades a sheet read from src without publishing a report file.
// name identifies the source in the run history.
func (p *Pipeline) RunReader(ctx context.Context, name string, src io.Reader) (*Result, error) {
	r := p.begin(name, "")
	ds, err := parser.Parse(src)
	if err != nil {
		return nil, p.finish(ctx, r, nil, err)
	}
	res, err := p.grade(r.ID, ds)
	if err != nil {
		return nil, p.finish(ctx, r, ds, err)
	}
	return res, p.finish(ctx, r, res.Dataset, nil)
}

type runState struct {
	history.RunRecord
	started time.Time
}

func (p *Pipeline) begin(input, output string) *runState {
	now := p.now()
	return &runState{
		RunRecord: history.RunRecord{
			ID:        p.newID(),
			Timestamp: now,
			Input:     input,
			Output:    output,
			Rounding:  string(p.engine.Rounding()),
		},
		started: now,
	}
}

func (p *Pipeline) grade(id string, ds *model.Dataset) (*Result, error) {
	if p.validation.Enabled() {
		if err := grading.Validate(ds, p.validation); err != nil {
			return nil, err
		}
	}
	graded := p.engine.Grade(ds)
	return &Result{
		RunID:   id,
		Dataset: graded,
		Ranked:  report.Rank(graded.Records),
		Summary: distribution.Summarize(graded.Records),
	}, nil
}

// finish records the run in every side channel and returns runErr unchanged.
func (p *Pipeline) finish(ctx context.Context, r *runState, ds *model.Dataset, runErr error) error {
	rec := r.RunRecord
	rec.DurationMS = p.now().Sub(r.started).Milliseconds()
	rec.Status = history.StatusOK
	var records []model.StudentRecord
	if ds != nil {
		rec.DeclaredCount = ds.DeclaredCount
		rec.Weight = ds.CourseworkWeight
		rec.Records = len(ds.Records)
	}
	if runErr != nil {
		rec.Status = history.StatusFailed
		rec.Error = runErr.Error()
		rec.ErrorKind = kindOf(runErr)
		rec.Summary = distribution.Summarize(nil)
	} else {
		records = ds.Records
		rec.Summary = distribution.Summarize(records)
	}

	if err := p.history.Append(ctx, rec); err != nil {
		p.log.Warnf("history append for run %s: %v", rec.ID, err)
	}
	ev := metrics.RunEvent{
		RunID:     rec.ID,
		Input:     rec.Input,
		Time:      rec.Timestamp,
		Duration:  time.Duration(rec.DurationMS) * time.Millisecond,
		Weight:    rec.Weight,
		Rounding:  rec.Rounding,
		Records:   records,
		Summary:   rec.Summary,
		ErrorKind: rec.ErrorKind,
	}
	if err := p.sink.RecordRun(ev); err != nil {
		p.log.Warnf("metrics for run %s: %v", rec.ID, err)
	}
	if f, ok := p.sink.(metrics.Flusher); ok {
		if err := f.Flush(); err != nil {
			p.log.Warnf("metrics flush for run %s: %v", rec.ID, err)
		}
	}

	fields := map[string]any{
		"run_id":      rec.ID,
		"input":       rec.Input,
		"records":     rec.Records,
		"duration_ms": rec.DurationMS,
	}
	if runErr != nil {
		fields["error_kind"] = rec.ErrorKind
		p.log.Infow("run failed", fields)
		p.monitor.CaptureException(runErr, map[string]string{"error_kind": rec.ErrorKind, "run_id": rec.ID})
		return runErr
	}
	fields["fail"] = rec.Summary.Fail
	p.log.Infow("run completed", fields)
	return nil
}

func kindOf(err error) string {
	if k := model.Kind(err); k != nil {
		return k.Error()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return "canceled"
	}
	return "unknown"
}
