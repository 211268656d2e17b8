package grading

import (
	"github.com/kilianp07/markbook/core/logger"
	"github.com/kilianp07/markbook/core/model"
)

// Engine computes overall marks and grades.
type Engine struct {
	rounding RoundingMode
	rules    []Rule
	log      logger.Logger
}

// NewEngine builds an Engine from cfg. A nil logger discards debug output.
func NewEngine(cfg Config, log logger.Logger) (*Engine, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, _ := ParseRoundingMode(cfg.Rounding)
	if log == nil {
		log = logger.NopLogger{}
	}
	return &Engine{rounding: mode, rules: DefaultRules(cfg.Thresholds), log: log}, nil
}

// Rounding returns the engine's rounding mode.
func (e *Engine) Rounding() RoundingMode { return e.rounding }

// Grade returns a graded copy of ds. The input dataset is left untouched.
func (e *Engine) Grade(ds *model.Dataset) *model.Dataset {
	out := ds.Clone()
	for i := range out.Records {
		out.Records[i] = e.GradeRecord(out.Records[i], ds.CourseworkWeight)
	}
	return out
}

// GradeRecord fills OverallMark and Grade for a single record.
func (e *Engine) GradeRecord(r model.StudentRecord, weight float64) model.StudentRecord {
	r.OverallMark = OverallMark(r.ExamMark, r.CourseworkMark, weight, e.rounding)
	g, rule := Classify(e.rules, r)
	r.Grade = g
	e.log.Debugw("record graded", map[string]any{
		"reg_no":  r.RegNo,
		"overall": r.OverallMark,
		"grade":   g.Label(),
		"rule":    rule,
	})
	return r
}

// Check reports whether r's stored grade and overall mark agree with the
// engine for the given weight.
func (e *Engine) Check(r model.StudentRecord, weight float64) bool {
	want := e.GradeRecord(model.StudentRecord{RegNo: r.RegNo, ExamMark: r.ExamMark, CourseworkMark: r.CourseworkMark}, weight)
	return want.OverallMark == r.OverallMark && want.Grade == r.Grade
}

// CheckGrade reports whether r's grade agrees with its marks and stored
// overall mark. It is used when the weight is not known, e.g. when verifying
// a report file.
func (e *Engine) CheckGrade(r model.StudentRecord) bool {
	g, _ := Classify(e.rules, r)
	return g == r.Grade
}
