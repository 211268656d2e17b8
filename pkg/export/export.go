// Package export writes graded records in interchange formats.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kilianp07/markbook/core/distribution"
	"github.com/kilianp07/markbook/core/model"
)

// Format names an export encoding.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatCSV, FormatJSON, FormatXLSX:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (want csv, json or xlsx)", s)
}

// Columns is the header shared by every tabular format.
var Columns = []string{"reg_no", "exam_mark", "coursework_mark", "overall_mark", "grade"}

// Write encodes records in format f.
func Write(w io.Writer, f Format, records []model.StudentRecord, s distribution.Summary) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, records)
	case FormatJSON:
		return WriteJSON(w, records, s)
	case FormatXLSX:
		return WriteXLSX(w, records, s)
	}
	return fmt.Errorf("unknown export format %q", f)
}

type document struct {
	Records []model.StudentRecord `json:"records"`
	Summary distribution.Summary  `json:"summary"`
}

// WriteJSON writes the records and their summary to w in JSON format.
func WriteJSON(w io.Writer, records []model.StudentRecord, s distribution.Summary) error {
	if records == nil {
		records = []model.StudentRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(document{Records: records, Summary: s})
}

// WriteCSV writes the records to w in CSV format with a header row. Grades
// use their report code.
func WriteCSV(w io.Writer, records []model.StudentRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return err
	}
	for _, r := range records {
		rec := []string{
			strconv.Itoa(r.RegNo),
			strconv.Itoa(r.ExamMark),
			strconv.Itoa(r.CourseworkMark),
			strconv.Itoa(r.OverallMark),
			r.Grade.String(),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
