package iopopulate

import (
	"encoding/csv"
	"errors"
	"io"
	"iter"
	"strings"
)

var errEmptyDocument = errors.New("document has no header row")

// row is one CSV record bound to the header of the document.
type row struct {
	line   int
	fields map[string]string
}

// rowReader reads CSV records one at a time.
type rowReader struct {
	r      *csv.Reader
	header []string
}

// newRowReader consumes the header line of src.
func newRowReader(src io.Reader) (*rowReader, error) {
	r := csv.NewReader(src)
	// short rows are reported by the caller, long rows are fine
	r.FieldsPerRecord = -1
	// quotes inside unquoted fields are kept, as in `Dwayne "The Rock" Johnson`
	r.LazyQuotes = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, errEmptyDocument
	}
	if err != nil {
		return nil, err
	}

	header[0] = strings.TrimPrefix(header[0], "\ufeff")
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}
	return &rowReader{r: r, header: header}, nil
}

func (rr *rowReader) hasColumn(name string) bool {
	for _, v := range rr.header {
		if v == name {
			return true
		}
	}
	return false
}

// rows yields data rows until the end of the document. Reading stops
// at the first error.
func (rr *rowReader) rows() iter.Seq2[row, error] {
	return func(yield func(row, error) bool) {
		for {
			rec, err := rr.r.Read()
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(row{}, err)
				return
			}

			line, _ := rr.r.FieldPos(0)
			fields := make(map[string]string, len(rec))
			for i, v := range rec {
				if i < len(rr.header) {
					fields[rr.header[i]] = v
				}
			}
			if !yield(row{line: line, fields: fields}, nil) {
				return
			}
		}
	}
}

// errLine returns the line where the record with a CSV parsing error
// starts, or 0.
func errLine(err error) int {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return pe.StartLine
	}
	return 0
}
