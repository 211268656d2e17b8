package report

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/markbook/core/model"
)

func sample() []model.StudentRecord {
	return []model.StudentRecord{
		{RegNo: 1001, ExamMark: 60, CourseworkMark: 80, OverallMark: 64, Grade: model.GradeSecond},
		{RegNo: 1002, ExamMark: 30, CourseworkMark: 90, OverallMark: 42, Grade: model.GradeFail},
		{RegNo: 1003, ExamMark: 70, CourseworkMark: 0, OverallMark: 56, Grade: model.GradeFail},
		{RegNo: 1004, ExamMark: 45, CourseworkMark: 35, OverallMark: 43, Grade: model.GradeThird},
		{RegNo: 1005, ExamMark: 64, CourseworkMark: 64, OverallMark: 64, Grade: model.GradeSecond},
		{RegNo: 1006, ExamMark: 42, CourseworkMark: 42, OverallMark: 42, Grade: model.GradeThird},
	}
}

func TestRank_StableAscending(t *testing.T) {
	in := sample()
	out := Rank(in)
	var ids []int
	for _, r := range out {
		ids = append(ids, r.RegNo)
	}
	assert.Equal(t, []int{1002, 1006, 1004, 1003, 1001, 1005}, ids)
	assert.Equal(t, 1001, in[0].RegNo, "input must not be reordered")
}

func TestRank_AllEqualKeepsInputOrder(t *testing.T) {
	in := make([]model.StudentRecord, 50)
	for i := range in {
		in[i] = model.StudentRecord{RegNo: i, OverallMark: 55}
	}
	out := Rank(in)
	for i, r := range out {
		assert.Equal(t, i, r.RegNo)
	}
}

func TestWriteTable_Layout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, []model.StudentRecord{
		{RegNo: 1001, ExamMark: 60, CourseworkMark: 80, OverallMark: 64, Grade: model.GradeSecond},
	}))
	want := "RegNo     ExamMark    CourseworkMark OverallMark Grade \n" +
		strings.Repeat("=", 55) + "\n" +
		"1001      60          80             64          2     \n"
	assert.Equal(t, want, buf.String())
}

func TestWriteTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, nil))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	recs, err := ReadTable(&buf)
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestRoundTrip(t *testing.T) {
	wide := []model.StudentRecord{
		{RegNo: 1234567890, ExamMark: 100, CourseworkMark: 100, OverallMark: 100, Grade: model.GradeFirst},
		{RegNo: 12345678901, ExamMark: 100, CourseworkMark: 100, OverallMark: 100, Grade: model.GradeFirst},
		{RegNo: 7, ExamMark: 123456789012, CourseworkMark: -5, OverallMark: 123456789012345, Grade: model.GradeFail},
	}
	ranked := Rank(append(sample(), wide...))
	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, ranked))
	got, err := ReadTable(&buf)
	require.NoError(t, err)
	assert.Equal(t, ranked, got)
}

func TestWriteTable_WideValuesKeepSeparator(t *testing.T) {
	var buf bytes.Buffer
	rec := model.StudentRecord{RegNo: 12345678901, ExamMark: 100, CourseworkMark: 100, OverallMark: 100, Grade: model.GradeFirst}
	require.NoError(t, WriteTable(&buf, []model.StudentRecord{rec}))
	lines := strings.Split(buf.String(), "\n")
	require.GreaterOrEqual(t, len(lines), 3)
	assert.Equal(t, "12345678901 100         100            100         1     ", lines[2])
}

func TestReadTable_OverflowedRowWithoutSeparator(t *testing.T) {
	row := "12345678901100         100            100         1     "
	_, err := ReadTable(strings.NewReader(Header + "\n" + strings.Repeat("=", 55) + "\n" + row + "\n"))
	assert.Error(t, err)
}

func TestReadTable_Errors(t *testing.T) {
	_, err := ReadTable(strings.NewReader("nope\n"))
	assert.Error(t, err)
	_, err = ReadTable(strings.NewReader(Header + "\n" + "----\n"))
	assert.Error(t, err)
	_, err = ReadTable(strings.NewReader(Header + "\n=====\n1 2 3 4 X\n"))
	assert.Error(t, err)
	_, err = ReadTable(strings.NewReader(""))
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "output.txt")
	require.NoError(t, WriteFile(path, sample()))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	got, err := ReadTable(f)
	require.NoError(t, err)
	assert.Equal(t, Rank(sample()), got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestWriteFile_MissingDirectory(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "missing", "output.txt"), sample())
	assert.ErrorIs(t, err, model.ErrWriteFailure)
}

func TestAtomicWrite_FailureKeepsPreviousFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "output.txt")
	require.NoError(t, os.WriteFile(path, []byte("previous"), 0o644))

	boom := errors.New("boom")
	err := AtomicWrite(path, func(w io.Writer) error {
		_, _ = w.Write([]byte("partial"))
		return boom
	})
	assert.ErrorIs(t, err, model.ErrWriteFailure)
	assert.ErrorIs(t, err, boom)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
