package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Grade is the classification band assigned to a student.
type Grade int

const (
	GradeUnknown Grade = iota
	GradeFirst
	GradeSecond
	GradeThird
	GradeFail
)

// Grades lists the valid grades in report order.
var Grades = []Grade{GradeFirst, GradeSecond, GradeThird, GradeFail}

// String returns the short code written in the report's Grade column.
func (g Grade) String() string {
	switch g {
	case GradeFirst:
		return "1"
	case GradeSecond:
		return "2"
	case GradeThird:
		return "3"
	case GradeFail:
		return "F"
	default:
		return "?"
	}
}

// Label returns the human readable name of the grade.
func (g Grade) Label() string {
	switch g {
	case GradeFirst:
		return "First"
	case GradeSecond:
		return "Second"
	case GradeThird:
		return "Third"
	case GradeFail:
		return "Fail"
	default:
		return "Unknown"
	}
}

// ParseGrade accepts either the report code ("1", "F") or the label ("First", "fail").
func ParseGrade(s string) (Grade, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "first":
		return GradeFirst, nil
	case "2", "second":
		return GradeSecond, nil
	case "3", "third":
		return GradeThird, nil
	case "f", "fail":
		return GradeFail, nil
	}
	return GradeUnknown, fmt.Errorf("unknown grade %q", s)
}

// MarshalJSON encodes the grade as its label.
func (g Grade) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Label())
}

// UnmarshalJSON decodes a grade from its label or code.
func (g *Grade) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" || strings.EqualFold(s, "unknown") {
		*g = GradeUnknown
		return nil
	}
	v, err := ParseGrade(s)
	if err != nil {
		return err
	}
	*g = v
	return nil
}
