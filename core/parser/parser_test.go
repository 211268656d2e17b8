package parser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/markbook/core/model"
)

func TestParse_Basic(t *testing.T) {
	src := "3 20\n1001   60 80\n\n1002\t30 90\n   1003 70  0   \n"
	ds, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 3, ds.DeclaredCount)
	assert.Equal(t, 20.0, ds.CourseworkWeight)
	assert.Equal(t, []model.StudentRecord{
		{RegNo: 1001, ExamMark: 60, CourseworkMark: 80},
		{RegNo: 1002, ExamMark: 30, CourseworkMark: 90},
		{RegNo: 1003, ExamMark: 70, CourseworkMark: 0},
	}, ds.Records)
}

func TestParse_FractionalWeightAndExtraHeaderTokens(t *testing.T) {
	ds, err := Parse(strings.NewReader("1 37.5 ignored\n7 50 50\n"))
	require.NoError(t, err)
	assert.Equal(t, 37.5, ds.CourseworkWeight)
	assert.Len(t, ds.Records, 1)
}

func TestParse_CountMismatchIsAccepted(t *testing.T) {
	ds, err := Parse(strings.NewReader("10 20\n1 50 50\n"))
	require.NoError(t, err)
	assert.Equal(t, 10, ds.DeclaredCount)
	assert.Len(t, ds.Records, 1)
}

func TestParse_HeaderOnly(t *testing.T) {
	ds, err := Parse(strings.NewReader("0 50\n"))
	require.NoError(t, err)
	assert.Empty(t, ds.Records)
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		kind error
		line int
	}{
		{"empty", "", model.ErrMalformedHeader, 1},
		{"non numeric count", "abc 10\n1 2 3\n", model.ErrMalformedHeader, 1},
		{"non numeric weight", "3 heavy\n", model.ErrMalformedHeader, 1},
		{"short header", "3\n1 2 3\n", model.ErrMalformedHeader, 1},
		{"nan weight", "3 NaN\n", model.ErrMalformedHeader, 1},
		{"float count", "3.0 20\n", model.ErrMalformedHeader, 1},
		{"two fields", "1 20\n1 2\n", model.ErrMalformedRow, 2},
		{"four fields", "1 20\n1 2 3 4\n", model.ErrMalformedRow, 2},
		{"non numeric mark", "2 20\n1 50 50\n\n2 fifty 50\n", model.ErrMalformedRow, 4},
		{"float mark", "1 20\n1 50.5 50\n", model.ErrMalformedRow, 2},
		{"header too long", "3 20 " + strings.Repeat("x", 70000), model.ErrMalformedHeader, 1},
		{"row too long", "1 20\n" + strings.Repeat("1", 70000) + "\n", model.ErrMalformedRow, 2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ds, err := Parse(strings.NewReader(c.src))
			require.Error(t, err)
			assert.Nil(t, ds)
			assert.True(t, errors.Is(err, c.kind), "got %v", err)
			var perr *Error
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, c.line, perr.Line)
		})
	}
}

func TestParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "marks.txt")
	require.NoError(t, os.WriteFile(path, []byte("1 0\n5 70 0\n"), 0o644))
	ds, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, ds.Records, 1)

	_, err = ParseFile(filepath.Join(dir, "missing.txt"))
	assert.ErrorIs(t, err, model.ErrSourceNotFound)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
