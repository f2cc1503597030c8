package catalog

import (
	"context"
	"errors"
	"io"
	"time"
)

// ImportSummary describes the outcome of a successful import.
type ImportSummary struct {
	// Rows is the number of data rows read from the document.
	Rows int

	// Inserted is the number of new authors stored.
	Inserted int

	// Skipped is the number of rows ignored because the author
	// already existed.
	Skipped int

	// Duration of the whole import.
	Duration time.Duration
}

// Populator imports authors from a CSV document.
type Populator interface {
	// PopulateAuthors reads a CSV document with a header row containing
	// a `name` column and bulk-inserts one author per data row, ignoring
	// names that already exist. A malformed document leaves the storage
	// untouched.
	PopulateAuthors(ctx context.Context, src io.Reader) (*ImportSummary, error)
}

// ErrMalformedDocument marks import failures caused by the content of
// the document rather than by the storage.
var ErrMalformedDocument = errors.New("malformed document")
