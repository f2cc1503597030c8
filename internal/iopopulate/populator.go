// Package iopopulate implements Populator interface for importing
// authors from CSV documents.
// This is an impure I/O package that reads CSV files and performs
// bulk inserts through an AuthorStore.
package iopopulate

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/bookshelf/pkg/catalog"
	"github.com/gnames/bookshelf/pkg/schema"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlib"
)

// Messages printed during import. Scripts that wrap populate-authors
// rely on them.
const (
	MsgStart     = "Init Authors Creation"
	MsgFinish    = "Finish authors creation"
	MsgMalformed = "Error on document format."
)

// nameField is the CSV column that holds author names.
const nameField = "name"

// populator implements the catalog.Populator interface.
type populator struct {
	store    catalog.AuthorStore
	stdout   io.Writer
	stderr   io.Writer
	progress *progress
}

type progress struct {
	total int64
	w     io.Writer
}

// Option configures a Populator.
type Option func(*populator)

// OptStdout sets the writer for start and finish messages.
func OptStdout(w io.Writer) Option {
	return func(p *populator) {
		if w != nil {
			p.stdout = w
		}
	}
}

// OptStderr sets the writer for the malformed document message.
func OptStderr(w io.Writer) Option {
	return func(p *populator) {
		if w != nil {
			p.stderr = w
		}
	}
}

// OptProgress shows a progress bar on w while reading a document of
// total bytes.
func OptProgress(total int64, w io.Writer) Option {
	return func(p *populator) {
		if total > 0 && w != nil {
			p.progress = &progress{total: total, w: w}
		}
	}
}

// New creates a new Populator.
func New(store catalog.AuthorStore, opts ...Option) catalog.Populator {
	res := &populator{
		store:  store,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// PopulateAuthors reads all rows of src first and stores them with
// one bulk insert, so a malformed document leaves the database
// untouched.
func (p *populator) PopulateAuthors(
	ctx context.Context,
	src io.Reader,
) (*catalog.ImportSummary, error) {
	startTime := time.Now()
	fmt.Fprintln(p.stdout, MsgStart)
	slog.Info("Starting authors import")

	if p.progress != nil {
		bar := newProgressBar(p.progress.total, p.progress.w)
		src = bar.NewProxyReader(src)
		defer bar.Finish()
	}

	authors, err := readAuthors(src)
	if err != nil {
		fmt.Fprintln(p.stderr, MsgMalformed)
		slog.Error("Cannot parse authors document", "error", err)
		return nil, err
	}

	inserted, err := p.store.BulkCreate(ctx, authors, true)
	if err != nil {
		slog.Error("Cannot store authors", "error", err)
		return nil, InsertError(len(authors), err)
	}

	res := &catalog.ImportSummary{
		Rows:     len(authors),
		Inserted: inserted,
		Skipped:  len(authors) - inserted,
		Duration: time.Since(startTime),
	}
	slog.Info("Authors import complete",
		"rows", humanize.Comma(int64(res.Rows)),
		"inserted", humanize.Comma(int64(res.Inserted)),
		"skipped", humanize.Comma(int64(res.Skipped)),
		"duration", gnfmt.TimeString(res.Duration.Seconds()),
	)

	fmt.Fprintln(p.stdout, MsgFinish)
	return res, nil
}

// readAuthors builds the whole import batch from a CSV document.
func readAuthors(src io.Reader) ([]schema.Author, error) {
	rr, err := newRowReader(src)
	if err != nil {
		return nil, MalformedDocumentError(max(errLine(err), 1), err)
	}

	if !rr.hasColumn(nameField) {
		err = fmt.Errorf("header %q has no %q column",
			strings.Join(rr.header, ","), nameField)
		return nil, MalformedDocumentError(1, err)
	}

	var res []schema.Author
	for r, err := range rr.rows() {
		if err != nil {
			return nil, MalformedDocumentError(errLine(err), err)
		}

		name, ok := r.fields[nameField]
		if !ok {
			err = fmt.Errorf("row has no value for %q", nameField)
			return nil, MalformedDocumentError(r.line, err)
		}
		res = append(res, schema.Author{Name: cleanName(name)})
	}
	return res, nil
}

func cleanName(s string) string {
	return strings.TrimSpace(gnlib.FixUtf8(s))
}

func newProgressBar(total int64, w io.Writer) *pb.ProgressBar {
	bar := pb.New64(total).SetTemplate(pb.Full).SetWriter(w)
	bar.Set("prefix", "Reading authors: ")
	bar.Set(pb.Bytes, true)
	bar.Set(pb.CleanOnFinish, true)
	return bar.Start()
}
