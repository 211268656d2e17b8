package grading

import "github.com/kilianp07/markbook/core/model"

// Rule maps records matching a predicate to a grade.
type Rule struct {
	Name  string
	Match func(model.StudentRecord) bool
	Grade model.Grade
}

// DefaultRules returns the classification rules in evaluation order. The
// automatic fail is checked on the raw marks before any band.
func DefaultRules(t Thresholds) []Rule {
	autoFail := t.AutoFailMark()
	return []Rule{
		{
			Name: "auto_fail",
			Match: func(r model.StudentRecord) bool {
				return r.ExamMark < autoFail || r.CourseworkMark < autoFail
			},
			Grade: model.GradeFail,
		},
		{
			Name:  "first",
			Match: func(r model.StudentRecord) bool { return r.OverallMark >= t.First },
			Grade: model.GradeFirst,
		},
		{
			Name:  "second",
			Match: func(r model.StudentRecord) bool { return r.OverallMark >= t.Second && r.OverallMark < t.First },
			Grade: model.GradeSecond,
		},
		{
			Name:  "third",
			Match: func(r model.StudentRecord) bool { return r.OverallMark >= t.Third && r.OverallMark < t.Second },
			Grade: model.GradeThird,
		},
		{
			Name:  "fail",
			Match: func(model.StudentRecord) bool { return true },
			Grade: model.GradeFail,
		},
	}
}

// Classify returns the grade of the first matching rule along with its name.
// A record matching no rule is a fail.
func Classify(rules []Rule, r model.StudentRecord) (model.Grade, string) {
	for _, rule := range rules {
		if rule.Match(r) {
			return rule.Grade, rule.Name
		}
	}
	return model.GradeFail, "fail"
}
