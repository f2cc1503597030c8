package iopopulate

import (
	"errors"
	"fmt"

	"github.com/gnames/bookshelf/pkg/catalog"
	"github.com/gnames/bookshelf/pkg/errcode"
	"github.com/gnames/gn"
)

// MalformedDocumentError creates an error for CSV content that cannot
// be turned into authors. The wrapped error matches
// catalog.ErrMalformedDocument.
func MalformedDocumentError(line int, err error) error {
	msg := `Error on document format at line <em>%d</em>

The file must be a CSV document with a header row
that contains a <em>name</em> column.`

	return &gn.Error{
		Code: errcode.PopulateMalformedDocumentError,
		Msg:  msg,
		Vars: []any{line},
		Err: fmt.Errorf("%w: line %d: %w",
			catalog.ErrMalformedDocument, line, err),
	}
}

// InsertError creates an error for a failed bulk insert of authors.
func InsertError(count int, err error) error {
	msg := "Cannot store <em>%d</em> authors"

	return &gn.Error{
		Code: errcode.PopulateInsertError,
		Msg:  msg,
		Vars: []any{count},
		Err:  fmt.Errorf("failed to insert %d authors: %w", count, err),
	}
}

// OpenFileError creates an error for a CSV file that cannot be opened.
func OpenFileError(path string, err error) error {
	msg := "Cannot open authors file <em>%s</em>"

	return &gn.Error{
		Code: errcode.PopulateOpenFileError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("cannot open %s: %w", path, err),
	}
}

// IsMalformedDocument reports whether err was caused by the content of
// the imported document.
func IsMalformedDocument(err error) bool {
	var gnErr *gn.Error
	if errors.As(err, &gnErr) {
		return errors.Is(gnErr.Err, catalog.ErrMalformedDocument)
	}
	return errors.Is(err, catalog.ErrMalformedDocument)
}
