// Package history persists one record per grading run so past runs can be
// listed and audited.
package history

import (
	"context"
	"time"

	"github.com/kilianp07/markbook/core/distribution"
)

// Run status values.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// RunRecord captures the outcome of one pipeline run.
type RunRecord struct {
	ID            string               `json:"id"`
	Timestamp     time.Time            `json:"timestamp"`
	Input         string               `json:"input"`
	Output        string               `json:"output,omitempty"`
	Status        string               `json:"status"`
	Error         string               `json:"error,omitempty"`
	ErrorKind     string               `json:"error_kind,omitempty"`
	Weight        float64              `json:"coursework_weight"`
	DeclaredCount int                  `json:"declared_count"`
	Records       int                  `json:"records"`
	Rounding      string               `json:"rounding"`
	DurationMS    int64                `json:"duration_ms"`
	Summary       distribution.Summary `json:"summary"`
}

// Query filters records. Zero values match everything.
type Query struct {
	Start  time.Time
	End    time.Time
	Input  string
	Status string
	Limit  int
}

func (q Query) match(r RunRecord) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Input != "" && r.Input != q.Input {
		return false
	}
	if q.Status != "" && r.Status != q.Status {
		return false
	}
	return true
}

// limit keeps the most recent q.Limit records of a timestamp ordered slice.
func (q Query) limit(recs []RunRecord) []RunRecord {
	if q.Limit > 0 && len(recs) > q.Limit {
		return recs[len(recs)-q.Limit:]
	}
	return recs
}

// Store persists RunRecords and supports querying.
type Store interface {
	Append(ctx context.Context, rec RunRecord) error
	Query(ctx context.Context, q Query) ([]RunRecord, error)
	Close() error
}

// NopStore discards records.
type NopStore struct{}

func (NopStore) Append(context.Context, RunRecord) error           { return nil }
func (NopStore) Query(context.Context, Query) ([]RunRecord, error) { return nil, nil }
func (NopStore) Close() error                                      { return nil }
