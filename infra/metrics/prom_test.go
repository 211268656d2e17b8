package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/markbook/core/distribution"
	coremetrics "github.com/kilianp07/markbook/core/metrics"
	"github.com/kilianp07/markbook/core/model"
)

func sampleEvent() coremetrics.RunEvent {
	recs := []model.StudentRecord{
		{RegNo: 1, ExamMark: 60, CourseworkMark: 80, OverallMark: 64, Grade: model.GradeSecond},
		{RegNo: 2, ExamMark: 30, CourseworkMark: 90, OverallMark: 60, Grade: model.GradeFail},
		{RegNo: 3, ExamMark: 70, CourseworkMark: 70, OverallMark: 70, Grade: model.GradeFirst},
	}
	return coremetrics.RunEvent{RunID: "run-1", Input: "marks.txt", Records: recs, Summary: distribution.Summarize(recs)}
}

func TestPromSink_RecordRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg, reg, "")
	require.NoError(t, err)

	require.NoError(t, sink.RecordRun(sampleEvent()))
	require.NoError(t, sink.RecordRun(coremetrics.RunEvent{ErrorKind: "malformed header"}))

	expected := `
# HELP markbook_grades_total Total number of students graded per band
# TYPE markbook_grades_total counter
markbook_grades_total{grade="Fail"} 1
markbook_grades_total{grade="First"} 1
markbook_grades_total{grade="Second"} 1
`
	assert.NoError(t, testutil.CollectAndCompare(sink.grades, strings.NewReader(expected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.runs.WithLabelValues("ok", "")))
	assert.Equal(t, 1.0, testutil.ToFloat64(sink.runs.WithLabelValues("failed", "malformed header")))
	assert.Equal(t, 0.0, testutil.ToFloat64(sink.last.WithLabelValues("Third")))
	assert.Equal(t, 1, testutil.CollectAndCount(sink.overall))
}

func TestPromSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewPromSinkWithRegistry(reg, reg, "")
	require.NoError(t, err)
	b, err := NewPromSinkWithRegistry(reg, reg, "")
	require.NoError(t, err)
	require.NoError(t, a.RecordRun(sampleEvent()))
	assert.Equal(t, 1.0, testutil.ToFloat64(b.grades.WithLabelValues("First")))
}

func TestPromSink_Textfile(t *testing.T) {
	reg := prometheus.NewRegistry()
	path := filepath.Join(t.TempDir(), "markbook.prom")
	sink, err := NewPromSinkWithRegistry(reg, reg, path)
	require.NoError(t, err)
	require.NoError(t, sink.RecordRun(sampleEvent()))
	require.NoError(t, sink.Flush())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `markbook_last_run_students{grade="First"} 1`)
}
