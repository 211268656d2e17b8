package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/kilianp07/markbook/core/model"
)

// Error describes a parse failure on a given line. Kind is one of the model
// sentinels so callers can branch with errors.Is.
type Error struct {
	Line int
	Kind error
	Err  error
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v: %v", e.Line, e.Kind, e.Err)
	}
	return fmt.Sprintf("%v: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() []error { return []error{e.Kind, e.Err} }

// ParseFile opens path and parses it. A missing or unreadable file yields
// model.ErrSourceNotFound.
func ParseFile(path string) (*model.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &Error{Kind: model.ErrSourceNotFound, Err: err}
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Parse reads a dataset from r. No partial dataset is returned on error.
func Parse(r io.Reader) (*model.Dataset, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			if errors.Is(err, bufio.ErrTooLong) {
				return nil, &Error{Line: 1, Kind: model.ErrMalformedHeader, Err: err}
			}
			return nil, &Error{Kind: model.ErrSourceNotFound, Err: err}
		}
		return nil, &Error{Line: 1, Kind: model.ErrMalformedHeader, Err: errors.New("empty source")}
	}
	ds, err := parseHeader(scanner.Text())
	if err != nil {
		return nil, &Error{Line: 1, Kind: model.ErrMalformedHeader, Err: err}
	}

	line := 1
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		rec, err := parseRow(fields)
		if err != nil {
			return nil, &Error{Line: line, Kind: model.ErrMalformedRow, Err: err}
		}
		ds.Records = append(ds.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, &Error{Line: line + 1, Kind: model.ErrMalformedRow, Err: err}
	}
	return ds, nil
}

// parseHeader reads the declared count and coursework weight. Tokens after
// the second are ignored.
func parseHeader(s string) (*model.Dataset, error) {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return nil, fmt.Errorf("expected count and weight, got %d token(s)", len(fields))
	}
	count, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, fmt.Errorf("count %q: %w", fields[0], err)
	}
	weight, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return nil, fmt.Errorf("weight %q: %w", fields[1], err)
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) {
		return nil, fmt.Errorf("weight %q is not finite", fields[1])
	}
	return &model.Dataset{DeclaredCount: count, CourseworkWeight: weight}, nil
}

func parseRow(fields []string) (model.StudentRecord, error) {
	if len(fields) != 3 {
		return model.StudentRecord{}, fmt.Errorf("expected 3 fields, got %d", len(fields))
	}
	var vals [3]int
	names := [3]string{"reg no", "exam mark", "coursework mark"}
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return model.StudentRecord{}, fmt.Errorf("%s %q: %w", names[i], f, err)
		}
		vals[i] = v
	}
	return model.StudentRecord{RegNo: vals[0], ExamMark: vals[1], CourseworkMark: vals[2]}, nil
}
