package report

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kilianp07/markbook/core/model"
)

var columnStarts = []int{
	0,
	regNoWidth,
	regNoWidth + examWidth,
	regNoWidth + examWidth + courseworkWidth,
	regNoWidth + examWidth + courseworkWidth + overallWidth,
}

// ReadTable parses a table produced by WriteTable back into records.
func ReadTable(r io.Reader) ([]model.StudentRecord, error) {
	scanner := bufio.NewScanner(r)
	line := 0
	var out []model.StudentRecord
	for scanner.Scan() {
		line++
		text := scanner.Text()
		switch line {
		case 1:
			if strings.TrimRight(text, " ") != strings.TrimRight(Header, " ") {
				return nil, fmt.Errorf("line 1: unexpected header %q", text)
			}
			continue
		case 2:
			if strings.Trim(text, "=") != "" || text == "" {
				return nil, fmt.Errorf("line 2: expected separator")
			}
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		rec, err := parseTableRow(text)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if line < 2 {
		return nil, fmt.Errorf("missing table header")
	}
	return out, nil
}

// parseTableRow reads the fixed columns, falling back to whitespace
// splitting when a value overflowed its column. An overflowed row is never
// read by position.
func parseTableRow(text string) (model.StudentRecord, error) {
	if overflowed(text) {
		rec, err := parseFields(strings.Fields(text))
		if err != nil {
			return model.StudentRecord{}, fmt.Errorf("overflowed row: %w", err)
		}
		return rec, nil
	}
	if rec, err := parseFields(fixedColumns(text)); err == nil {
		return rec, nil
	}
	return parseFields(strings.Fields(text))
}

// overflowed reports whether a value runs into the next column, i.e. the
// character before a column start is not padding.
func overflowed(text string) bool {
	for _, start := range columnStarts[1:] {
		if start <= len(text) && text[start-1] != ' ' {
			return true
		}
	}
	return false
}

func fixedColumns(text string) []string {
	cols := make([]string, 0, len(columnStarts))
	for i, start := range columnStarts {
		if start >= len(text) {
			return cols
		}
		end := len(text)
		if i+1 < len(columnStarts) && columnStarts[i+1] < end {
			end = columnStarts[i+1]
		}
		cols = append(cols, strings.TrimSpace(text[start:end]))
	}
	return cols
}

func parseFields(fields []string) (model.StudentRecord, error) {
	if len(fields) != 5 {
		return model.StudentRecord{}, fmt.Errorf("expected 5 columns, got %d", len(fields))
	}
	var nums [4]int
	for i := 0; i < 4; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return model.StudentRecord{}, fmt.Errorf("column %d: %w", i+1, err)
		}
		nums[i] = v
	}
	g, err := model.ParseGrade(fields[4])
	if err != nil {
		return model.StudentRecord{}, err
	}
	return model.StudentRecord{RegNo: nums[0], ExamMark: nums[1], CourseworkMark: nums[2], OverallMark: nums[3], Grade: g}, nil
}
