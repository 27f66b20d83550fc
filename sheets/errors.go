package sheets

import (
	"errors"
	"fmt"
	"strings"
)

// Run-level failures. Any of these aborts a pipeline run with no partial result.
var (
	ErrInvalidSourceURL = errors.New("sheets: invalid spreadsheet url")
	ErrRetrievalFailed  = errors.New("sheets: retrieval failed")
	ErrEmptyPayload     = errors.New("sheets: empty payload")
)

// ErrRowRejected marks a row that could not become a race. It never aborts a run.
var ErrRowRejected = errors.New("sheets: row rejected")

// RetrievalError is returned when the export endpoint answers with a
// non-success status. It matches ErrRetrievalFailed with errors.Is.
type RetrievalError struct {
	StatusCode int
	Status     string
}

func (e *RetrievalError) Error() string {
	return fmt.Sprintf("%s: status %s", ErrRetrievalFailed, e.Status)
}

func (e *RetrievalError) Unwrap() error { return ErrRetrievalFailed }

// RowRejectedError describes why a mapped row was dropped.
type RowRejectedError struct {
	Row     int
	Name    string
	Missing []string
}

func (e *RowRejectedError) Error() string {
	return fmt.Sprintf("%s: row %d missing %s", ErrRowRejected, e.Row, strings.Join(e.Missing, ", "))
}

func (e *RowRejectedError) Unwrap() error { return ErrRowRejected }
