// Package ioweb serves the author catalog over HTTP with gin.
package ioweb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gnames/bookshelf/pkg/catalog"
	"github.com/gnames/bookshelf/pkg/config"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// Server is a read-only REST API over an AuthorStore.
type Server struct {
	cfg    config.ServerConfig
	store  catalog.AuthorStore
	engine *gin.Engine
}

// New creates a Server with routes and middleware registered.
func New(cfg config.ServerConfig, store catalog.AuthorStore) *Server {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(RequestID(), Logger(), Recovery())

	s := &Server{cfg: cfg, store: store, engine: r}

	r.GET("/health", s.health)
	r.GET("/authors/", s.listAuthors)
	r.GET("/authors/:id/", s.getAuthor)
	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": msgNotFound})
	})

	return s
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves HTTP until ctx is cancelled, then shuts the server down
// letting active requests finish.
func (s *Server) Run(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("Starting web server", "addr", addr)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return ServerStartError(addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), shutdownTimeout,
		)
		defer cancel()

		slog.Info("Stopping web server", "addr", addr)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return ServerShutdownError(err)
		}
		return nil
	})

	return g.Wait()
}
