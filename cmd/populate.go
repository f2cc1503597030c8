/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gnames/bookshelf/internal/iopopulate"
	"github.com/gnames/bookshelf/internal/iostore"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"
)

// getPopulateAuthorsCmd returns the populate-authors command.
func getPopulateAuthorsCmd() *cobra.Command {
	populateCmd := &cobra.Command{
		Use:   "populate-authors <file.csv>",
		Short: "Import authors from a CSV file",
		Long: `Import authors from a CSV file into the database.

The file must be UTF-8 CSV with a header row that has a 'name'
column. Other columns are ignored. Authors whose name is already in
the database are skipped, so the same file can be imported again
safely. A malformed file leaves the database unchanged.

Examples:
  bookshelf populate-authors authors.csv
  bookshelf populate authors.csv --progress`,
		Aliases: []string{"populate"},
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runPopulateAuthors(cmd, args[0])
			// The populator already reported a malformed document.
			if err != nil && !iopopulate.IsMalformedDocument(err) {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	populateCmd.Flags().BoolP("progress", "p", false,
		"show import progress bar")

	return populateCmd
}

func runPopulateAuthors(cmd *cobra.Command, path string) error {
	ctx := context.Background()
	cfg.Update(flagOptions(cmd, progressFlag))

	f, err := os.Open(path)
	if err != nil {
		return iopopulate.OpenFileError(path, err)
	}
	defer f.Close()

	op, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	if err = requireSchema(ctx, op); err != nil {
		return err
	}

	popOpts := []iopopulate.Option{
		iopopulate.OptStdout(cmd.OutOrStdout()),
		iopopulate.OptStderr(cmd.ErrOrStderr()),
	}
	if cfg.Populate.WithProgress {
		if fi, err := f.Stat(); err == nil {
			popOpts = append(popOpts,
				iopopulate.OptProgress(fi.Size(), cmd.ErrOrStderr()))
		}
	}

	store := iostore.New(op, cfg.Database.BatchSize)
	populator := iopopulate.New(store, popOpts...)

	res, err := populator.PopulateAuthors(ctx, f)
	if err != nil {
		return err
	}

	// stdout and stderr carry only the import notifications
	slog.Info("Authors imported",
		"file", path,
		"rows", humanize.Comma(int64(res.Rows)),
		"inserted", humanize.Comma(int64(res.Inserted)),
		"skipped", humanize.Comma(int64(res.Skipped)),
		"duration", gnfmt.TimeString(res.Duration.Seconds()),
	)
	return nil
}
