package model

import "errors"

var (
	// ErrSourceNotFound is returned when the input source cannot be opened.
	ErrSourceNotFound = errors.New("source not found")
	// ErrMalformedHeader is returned when the header line is missing or invalid.
	ErrMalformedHeader = errors.New("malformed header")
	// ErrMalformedRow is returned when a data row has the wrong shape or a non-numeric field.
	ErrMalformedRow = errors.New("malformed row")
	// ErrValidation is returned when strict validation rejects a dataset.
	ErrValidation = errors.New("validation failed")
	// ErrWriteFailure is returned when the report cannot be created or written.
	ErrWriteFailure = errors.New("write failure")
)

// Kind returns the sentinel matched by err, or nil for unclassified errors.
func Kind(err error) error {
	for _, k := range []error{ErrSourceNotFound, ErrMalformedHeader, ErrMalformedRow, ErrValidation, ErrWriteFailure} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
