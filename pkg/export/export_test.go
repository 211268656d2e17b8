package export

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/kilianp07/markbook/core/distribution"
	"github.com/kilianp07/markbook/core/model"
)

func records() []model.StudentRecord {
	return []model.StudentRecord{
		{RegNo: 2, ExamMark: 30, CourseworkMark: 90, OverallMark: 42, Grade: model.GradeFail},
		{RegNo: 1, ExamMark: 60, CourseworkMark: 80, OverallMark: 64, Grade: model.GradeSecond},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("XLSX")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)
	_, err = ParseFormat("pdf")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records()))
	want := "reg_no,exam_mark,coursework_mark,overall_mark,grade\n2,30,90,42,F\n1,60,80,64,2\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteJSON(t *testing.T) {
	recs := records()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, recs, distribution.Summarize(recs)))

	var doc struct {
		Records []struct {
			RegNo int    `json:"reg_no"`
			Grade string `json:"grade"`
		} `json:"records"`
		Summary distribution.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	require.Len(t, doc.Records, 2)
	assert.Equal(t, 2, doc.Records[0].RegNo)
	assert.Equal(t, "Fail", doc.Records[0].Grade)
	assert.Equal(t, []int{2}, doc.Summary.Failed)
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil, distribution.Summarize(nil)))
	assert.Contains(t, buf.String(), `"records": []`)
}

func TestWriteXLSX(t *testing.T) {
	recs := records()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatXLSX, recs, distribution.Summarize(recs)))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(ResultsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, []string{"2", "30", "90", "42", "F"}, rows[1])

	dist, err := f.GetRows(DistributionSheet)
	require.NoError(t, err)
	assert.Equal(t, []string{"Second", "1"}, dist[2])
	assert.Equal(t, []string{"Fail", "1"}, dist[4])
	assert.Equal(t, []string{"Total", "2"}, dist[5])
}
