package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/markbook/core/model"
)

func newEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	e, err := NewEngine(cfg, nil)
	require.NoError(t, err)
	return e
}

func TestEngine_WorkedExamples(t *testing.T) {
	e := newEngine(t, Config{})
	cases := []struct {
		name    string
		weight  float64
		exam    int
		cw      int
		overall int
		grade   model.Grade
	}{
		{"weighted second", 20, 60, 80, 64, model.GradeSecond},
		{"exam below auto fail", 50, 30, 90, 60, model.GradeFail},
		{"zero weight ignores coursework", 0, 70, 0, 70, model.GradeFirst},
		{"full weight ignores exam", 100, 40, 75, 75, model.GradeFirst},
		{"third", 50, 45, 45, 45, model.GradeThird},
		{"fail below forty", 50, 35, 40, 38, model.GradeFail},
		{"coursework below auto fail", 10, 90, 32, 84, model.GradeFail},
		{"at auto fail threshold", 50, 33, 33, 33, model.GradeFail},
		{"first boundary", 50, 70, 70, 70, model.GradeFirst},
		{"second upper boundary", 50, 69, 69, 69, model.GradeSecond},
		{"second lower boundary", 50, 50, 50, 50, model.GradeSecond},
		{"third upper boundary", 50, 49, 49, 49, model.GradeThird},
		{"third lower boundary", 50, 40, 40, 40, model.GradeThird},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := e.GradeRecord(model.StudentRecord{RegNo: 1, ExamMark: c.exam, CourseworkMark: c.cw}, c.weight)
			assert.Equal(t, c.overall, r.OverallMark)
			assert.Equal(t, c.grade, r.Grade)
		})
	}
}

func TestEngine_AutoFailOverridesOverall(t *testing.T) {
	e := newEngine(t, Config{})
	for exam := 0; exam <= 100; exam += 3 {
		for cw := 0; cw <= 100; cw += 3 {
			r := e.GradeRecord(model.StudentRecord{ExamMark: exam, CourseworkMark: cw}, 35)
			if exam < 33 || cw < 33 {
				assert.Equal(t, model.GradeFail, r.Grade, "exam=%d cw=%d", exam, cw)
			}
		}
	}
}

func TestClassify_BandsAreExhaustive(t *testing.T) {
	rules := DefaultRules(DefaultThresholds())
	for overall := -10; overall <= 200; overall++ {
		r := model.StudentRecord{ExamMark: 100, CourseworkMark: 100, OverallMark: overall}
		matched := 0
		for _, rule := range rules[1:4] {
			if rule.Match(r) {
				matched++
			}
		}
		g, _ := Classify(rules, r)
		switch {
		case overall >= 70:
			assert.Equal(t, model.GradeFirst, g)
		case overall >= 50:
			assert.Equal(t, model.GradeSecond, g)
		case overall >= 40:
			assert.Equal(t, model.GradeThird, g)
		default:
			assert.Equal(t, model.GradeFail, g)
			assert.Zero(t, matched)
			continue
		}
		assert.Equal(t, 1, matched, "overall %d matched %d bands", overall, matched)
	}
}

func TestEngine_GradeDoesNotMutateInput(t *testing.T) {
	e := newEngine(t, Config{})
	ds := &model.Dataset{CourseworkWeight: 20, Records: []model.StudentRecord{{RegNo: 1, ExamMark: 60, CourseworkMark: 80}}}
	out := e.Grade(ds)
	assert.Zero(t, ds.Records[0].OverallMark)
	assert.Equal(t, model.GradeUnknown, ds.Records[0].Grade)
	assert.Equal(t, 64, out.Records[0].OverallMark)
	assert.True(t, e.Check(out.Records[0], 20))
	assert.False(t, e.Check(out.Records[0], 80))
}

func TestEngine_CustomThresholds(t *testing.T) {
	e := newEngine(t, Config{Thresholds: Thresholds{AutoFail: AutoFail(0), First: 80, Second: 60, Third: 45}})
	r := e.GradeRecord(model.StudentRecord{ExamMark: 75, CourseworkMark: 10}, 0)
	assert.Equal(t, model.GradeSecond, r.Grade)
}

func TestConfig_PartialThresholdsKeepDefaults(t *testing.T) {
	cfg := Config{Thresholds: Thresholds{First: 80}}
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 80, cfg.Thresholds.First)
	assert.Equal(t, 50, cfg.Thresholds.Second)
	assert.Equal(t, 40, cfg.Thresholds.Third)
	assert.Equal(t, 33, cfg.Thresholds.AutoFailMark())

	e := newEngine(t, Config{Thresholds: Thresholds{First: 80}})
	assert.Equal(t, model.GradeSecond, e.GradeRecord(model.StudentRecord{ExamMark: 75, CourseworkMark: 75}, 50).Grade)
	assert.Equal(t, model.GradeFail, e.GradeRecord(model.StudentRecord{ExamMark: 90, CourseworkMark: 32}, 10).Grade)
}

func TestConfig_NegativeAutoFailRejected(t *testing.T) {
	_, err := NewEngine(Config{Thresholds: Thresholds{AutoFail: AutoFail(-1)}}, nil)
	assert.Error(t, err)
}

func TestNewEngine_InvalidConfig(t *testing.T) {
	_, err := NewEngine(Config{Rounding: "bankers"}, nil)
	assert.Error(t, err)
	_, err = NewEngine(Config{Thresholds: Thresholds{First: 50, Second: 60, Third: 40}}, nil)
	assert.Error(t, err)
}
