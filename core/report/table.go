package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kilianp07/markbook/core/model"
)

// Column widths of the fixed-width table.
const (
	regNoWidth      = 10
	examWidth       = 12
	courseworkWidth = 15
	overallWidth    = 12
	gradeWidth      = 6
)

var (
	headerFormat = fmt.Sprintf("%%-%ds%%-%ds%%-%ds%%-%ds%%-%ds\n", regNoWidth, examWidth, courseworkWidth, overallWidth, gradeWidth)
	separator    = strings.Repeat("=", 55) + "\n"
)

// Header is the first line of the table, without the newline.
var Header = strings.TrimRight(fmt.Sprintf(headerFormat, "RegNo", "ExamMark", "CourseworkMark", "OverallMark", "Grade"), "\n")

// WriteTable writes records as a fixed-width table in the order given.
// Callers wanting the ranked report pass the output of Rank.
func WriteTable(w io.Writer, records []model.StudentRecord) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, headerFormat, "RegNo", "ExamMark", "CourseworkMark", "OverallMark", "Grade"); err != nil {
		return err
	}
	if _, err := bw.WriteString(separator); err != nil {
		return err
	}
	for _, r := range records {
		if _, err := bw.WriteString(formatRow(r)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// formatRow left-aligns each numeric column to its width. A value that fills
// or overflows its column is still followed by one space so the row can be
// split on whitespace.
func formatRow(r model.StudentRecord) string {
	var b strings.Builder
	cols := [...]struct{ v, width int }{
		{r.RegNo, regNoWidth},
		{r.ExamMark, examWidth},
		{r.CourseworkMark, courseworkWidth},
		{r.OverallMark, overallWidth},
	}
	for _, c := range cols {
		s := strconv.Itoa(c.v)
		b.WriteString(s)
		b.WriteString(strings.Repeat(" ", max(c.width-len(s), 1)))
	}
	b.WriteString(fmt.Sprintf("%-*s\n", gradeWidth, r.Grade.String()))
	return b.String()
}

// WriteFile ranks records and publishes the table at path. The file is
// either fully written or left untouched.
func WriteFile(path string, records []model.StudentRecord) error {
	ranked := Rank(records)
	return AtomicWrite(path, func(w io.Writer) error {
		return WriteTable(w, ranked)
	})
}
