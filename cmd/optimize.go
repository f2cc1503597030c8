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

	"github.com/gnames/bookshelf/internal/iooptimize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getOptimizeCmd returns the optimize command.
func getOptimizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "optimize",
		Short: "Optimize database after import",
		Long: `Run database maintenance after large imports.

This command:
  1. Runs VACUUM to reclaim unused storage
  2. Runs ANALYZE to refresh query planner statistics

Examples:
  bookshelf optimize`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runOptimize()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}
}

func runOptimize() error {
	ctx := context.Background()

	op, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s</em>", dbTarget(cfg))

	if err = requireSchema(ctx, op); err != nil {
		return err
	}

	return iooptimize.NewOptimizer(op).Optimize(ctx)
}
