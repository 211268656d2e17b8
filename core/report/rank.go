package report

import (
	"sort"

	"github.com/kilianp07/markbook/core/model"
)

// Rank returns a copy of records ordered by ascending overall mark. Records
// with equal marks keep their input order.
func Rank(records []model.StudentRecord) []model.StudentRecord {
	out := make([]model.StudentRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OverallMark < out[j].OverallMark
	})
	return out
}
