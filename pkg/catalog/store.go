package catalog

import (
	"context"
	"errors"

	"github.com/gnames/bookshelf/pkg/schema"
)

// ErrAuthorNotFound is returned by AuthorStore.Get when no author has
// the requested ID.
var ErrAuthorNotFound = errors.New("author not found")

// AuthorFilter narrows down and paginates AuthorStore.List results.
type AuthorFilter struct {
	// Name is matched as a case-insensitive substring. Empty value
	// disables filtering.
	Name string

	// Offset is the number of matching authors to skip.
	Offset int

	// Limit is the maximum number of authors to return, zero means no limit.
	Limit int
}

// AuthorStore provides persistence of Author records.
type AuthorStore interface {
	// Create inserts one author and sets its ID. A duplicate name
	// is an error.
	Create(ctx context.Context, author *schema.Author) error

	// BulkCreate inserts all authors in one transaction. When
	// ignoreConflicts is true, authors whose name already exists
	// (in the table or earlier in the batch) are skipped silently.
	// It returns the number of inserted rows.
	BulkCreate(
		ctx context.Context,
		authors []schema.Author,
		ignoreConflicts bool,
	) (int, error)

	// List returns authors ordered by ID together with the total
	// number of authors matching the filter.
	List(ctx context.Context, filter AuthorFilter) ([]schema.Author, int64, error)

	// Get returns the author with the given ID or ErrAuthorNotFound.
	Get(ctx context.Context, id uint) (*schema.Author, error)

	// Ping verifies that the storage is reachable.
	Ping(ctx context.Context) error
}
