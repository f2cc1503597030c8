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
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/bookshelf/internal/iostore"
	"github.com/gnames/bookshelf/internal/ioweb"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getServeCmd returns the serve command.
func getServeCmd() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start REST API for authors",
		Long: `Start a read-only REST API over the authors table.

Endpoints:
  GET /authors/?name=<substring>&page=<n|last>
  GET /authors/<id>/
  GET /health

The server stops gracefully on SIGINT or SIGTERM.

Examples:
  bookshelf serve
  bookshelf serve --port 8080 --page-size 25`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(
				context.Background(), os.Interrupt, syscall.SIGTERM,
			)
			defer stop()

			err := runServe(ctx, cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	serveCmd.Flags().Int("port", 0, "web server port (default from config)")
	serveCmd.Flags().Int("page-size", 0,
		"authors per page (default from config)")

	return serveCmd
}

func runServe(ctx context.Context, cmd *cobra.Command) error {
	cfg.Update(flagOptions(cmd, portFlag, pageSizeFlag))

	op, err := connect(ctx, cfg)
	if err != nil {
		return err
	}
	defer op.Close()

	gn.Info("Connected to database: <em>%s</em>", dbTarget(cfg))

	if err = requireSchema(ctx, op); err != nil {
		return err
	}

	store := iostore.New(op, cfg.Database.BatchSize)
	srv := ioweb.New(cfg.Server, store)

	gn.Info("Serving authors on <em>http://localhost:%d/authors/</em>",
		cfg.Server.Port)
	return srv.Run(ctx)
}
