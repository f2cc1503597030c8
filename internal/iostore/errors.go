package iostore

import (
	"errors"
	"fmt"

	"github.com/gnames/bookshelf/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError creates an error for store calls made before
// the operator is connected.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Author store used without database connection",
		Err:  errors.New("not connected to database"),
	}
}

// CreateError creates an error for a failed single insert.
func CreateError(name string, err error) error {
	return &gn.Error{
		Code: errcode.StoreCreateError,
		Msg:  "Cannot save author <em>%s</em>",
		Vars: []any{name},
		Err:  fmt.Errorf("failed to insert author %q: %w", name, err),
	}
}

// BulkCreateError creates an error for a failed bulk insert.
func BulkCreateError(count int, err error) error {
	msg := `Cannot insert <em>%d</em> authors

<em>Possible causes:</em>
  - Database schema is missing, run <em>bookshelf create</em>
  - Database connection was lost`

	return &gn.Error{
		Code: errcode.StoreBulkCreateError,
		Msg:  msg,
		Vars: []any{count},
		Err:  fmt.Errorf("failed to bulk insert %d authors: %w", count, err),
	}
}

// ListError creates an error for a failed author query.
func ListError(name string, err error) error {
	return &gn.Error{
		Code: errcode.StoreListError,
		Msg:  "Cannot list authors matching <em>%s</em>",
		Vars: []any{name},
		Err:  fmt.Errorf("failed to list authors: %w", err),
	}
}

// GetError creates an error for a failed lookup by ID.
func GetError(id uint, err error) error {
	return &gn.Error{
		Code: errcode.StoreGetError,
		Msg:  "Cannot read author <em>%d</em>",
		Vars: []any{id},
		Err:  fmt.Errorf("failed to get author %d: %w", id, err),
	}
}
