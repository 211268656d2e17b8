package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/kilianp07/markbook/core/distribution"
	"github.com/kilianp07/markbook/core/model"
)

// Sheet names used by WriteXLSX.
const (
	ResultsSheet      = "Results"
	DistributionSheet = "Distribution"
)

// WriteXLSX writes a workbook with the records on the Results sheet and the
// grade counts on the Distribution sheet.
func WriteXLSX(w io.Writer, records []model.StudentRecord, s distribution.Summary) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", ResultsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(ResultsSheet, "A1", &header); err != nil {
		return err
	}
	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []any{r.RegNo, r.ExamMark, r.CourseworkMark, r.OverallMark, r.Grade.String()}
		if err := f.SetSheetRow(ResultsSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	if _, err := f.NewSheet(DistributionSheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	counts := [][]any{
		{"grade", "count"},
		{model.GradeFirst.Label(), s.First},
		{model.GradeSecond.Label(), s.Second},
		{model.GradeThird.Label(), s.Third},
		{model.GradeFail.Label(), s.Fail},
		{"Total", s.Total},
	}
	for i, row := range counts {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(DistributionSheet, cell, &row); err != nil {
			return err
		}
	}
	_, err := f.WriteTo(w)
	return err
}
