package model

// StudentRecord holds the marks of one student. OverallMark and Grade are
// zero until the record has been graded.
type StudentRecord struct {
	RegNo          int   `json:"reg_no"`
	ExamMark       int   `json:"exam_mark"`
	CourseworkMark int   `json:"coursework_mark"`
	OverallMark    int   `json:"overall_mark"`
	Grade          Grade `json:"grade"`
}

// Graded reports whether a grade has been assigned.
func (r StudentRecord) Graded() bool { return r.Grade != GradeUnknown }

// Dataset is one batch of records read from a single source.
type Dataset struct {
	// DeclaredCount is the student count announced by the header. It is
	// advisory unless strict count validation is enabled.
	DeclaredCount int `json:"declared_count"`
	// CourseworkWeight is the coursework share of the overall mark, 0-100.
	CourseworkWeight float64         `json:"coursework_weight"`
	Records          []StudentRecord `json:"records"`
}

// Clone returns a deep copy so later stages never alias an earlier stage's records.
func (d *Dataset) Clone() *Dataset {
	out := *d
	out.Records = make([]StudentRecord, len(d.Records))
	copy(out.Records, d.Records)
	return &out
}
