package grading

import (
	"fmt"
	"strings"

	"github.com/kilianp07/markbook/core/model"
)

// Issue describes one validation failure. Index is the position of the
// offending record, or -1 for dataset level issues.
type Issue struct {
	Index  int    `json:"index"`
	RegNo  int    `json:"reg_no,omitempty"`
	Reason string `json:"reason"`
}

// ValidationError lists every issue found in a dataset.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		if is.Index < 0 {
			parts = append(parts, is.Reason)
			continue
		}
		parts = append(parts, fmt.Sprintf("record %d (reg no %d): %s", is.Index+1, is.RegNo, is.Reason))
	}
	return fmt.Sprintf("%v: %s", model.ErrValidation, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return model.ErrValidation }

// Validate applies the checks enabled in cfg and returns a *ValidationError
// when any of them fail.
func Validate(ds *model.Dataset, cfg ValidationConfig) error {
	var issues []Issue
	if cfg.StrictCount && ds.DeclaredCount != len(ds.Records) {
		issues = append(issues, Issue{Index: -1, Reason: fmt.Sprintf("header declares %d students, found %d", ds.DeclaredCount, len(ds.Records))})
	}
	if cfg.StrictRange && (ds.CourseworkWeight < 0 || ds.CourseworkWeight > 100) {
		issues = append(issues, Issue{Index: -1, Reason: fmt.Sprintf("coursework weight %g outside 0-100", ds.CourseworkWeight)})
	}
	seen := make(map[int]int)
	for i, r := range ds.Records {
		if cfg.StrictRange {
			if !inRange(r.ExamMark) {
				issues = append(issues, Issue{Index: i, RegNo: r.RegNo, Reason: fmt.Sprintf("exam mark %d outside 0-100", r.ExamMark)})
			}
			if !inRange(r.CourseworkMark) {
				issues = append(issues, Issue{Index: i, RegNo: r.RegNo, Reason: fmt.Sprintf("coursework mark %d outside 0-100", r.CourseworkMark)})
			}
		}
		if cfg.UniqueRegNo {
			if first, ok := seen[r.RegNo]; ok {
				issues = append(issues, Issue{Index: i, RegNo: r.RegNo, Reason: fmt.Sprintf("duplicate of record %d", first+1)})
			} else {
				seen[r.RegNo] = i
			}
		}
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func inRange(v int) bool { return v >= 0 && v <= 100 }
