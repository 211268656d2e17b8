// Package distribution tallies graded records.
package distribution

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/kilianp07/markbook/core/model"
)

// Summary holds grade counts and the failing registration numbers in input order.
type Summary struct {
	First  int   `json:"first"`
	Second int   `json:"second"`
	Third  int   `json:"third"`
	Fail   int   `json:"fail"`
	Total  int   `json:"total"`
	Failed []int `json:"failed"`
	Stats  Stats `json:"stats"`
}

// Stats describes the spread of overall marks. All fields are zero for an
// empty dataset.
type Stats struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Median float64 `json:"median"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
}

// Summarize counts grades over records. Ungraded records are counted in
// Total only.
func Summarize(records []model.StudentRecord) Summary {
	s := Summary{Total: len(records), Failed: []int{}}
	for _, r := range records {
		switch r.Grade {
		case model.GradeFirst:
			s.First++
		case model.GradeSecond:
			s.Second++
		case model.GradeThird:
			s.Third++
		case model.GradeFail:
			s.Fail++
			s.Failed = append(s.Failed, r.RegNo)
		}
	}
	s.Stats = computeStats(records)
	return s
}

// Count returns the number of records with grade g.
func (s Summary) Count(g model.Grade) int {
	switch g {
	case model.GradeFirst:
		return s.First
	case model.GradeSecond:
		return s.Second
	case model.GradeThird:
		return s.Third
	case model.GradeFail:
		return s.Fail
	}
	return 0
}

func computeStats(records []model.StudentRecord) Stats {
	if len(records) == 0 {
		return Stats{}
	}
	marks := make([]float64, len(records))
	st := Stats{Min: math.MaxInt, Max: math.MinInt}
	for i, r := range records {
		marks[i] = float64(r.OverallMark)
		st.Min = min(st.Min, r.OverallMark)
		st.Max = max(st.Max, r.OverallMark)
	}
	st.Mean, st.StdDev = stat.MeanStdDev(marks, nil)
	if len(marks) < 2 {
		st.StdDev = 0
	}
	sort.Float64s(marks)
	st.Median = median(marks)
	return st
}

// median of sorted values, averaging the two middle values for even lengths.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
