package ioweb

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gnames/bookshelf/pkg/catalog"
	"github.com/gnames/bookshelf/pkg/schema"
)

const (
	msgNotFound    = "Not found."
	msgInvalidPage = "Invalid page."
)

// authorPage is the paginated body of GET /authors/.
type authorPage struct {
	Count    int64           `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []schema.Author `json:"results"`
}

func (s *Server) health(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		slog.Error("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable,
			gin.H{"status": "unavailable", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// listAuthors handles GET /authors/?name=&page=.
func (s *Server) listAuthors(c *gin.Context) {
	ctx := c.Request.Context()
	size := s.cfg.PageSize
	name := c.Query("name")
	pageParam := c.Query("page")

	page := 1
	if pageParam != "" && pageParam != "last" {
		n, err := strconv.Atoi(pageParam)
		if err != nil || n < 1 {
			c.JSON(http.StatusNotFound, gin.H{"detail": msgInvalidPage})
			return
		}
		page = n
	}

	filter := catalog.AuthorFilter{
		Name:   name,
		Offset: (page - 1) * size,
		Limit:  size,
	}
	authors, total, err := s.store.List(ctx, filter)
	if err != nil {
		s.storeError(c, err)
		return
	}

	last := lastPage(total, size)
	if pageParam == "last" && last != page {
		page = last
		filter.Offset = (page - 1) * size
		authors, total, err = s.store.List(ctx, filter)
		if err != nil {
			s.storeError(c, err)
			return
		}
		last = lastPage(total, size)
	}

	if page > last {
		c.JSON(http.StatusNotFound, gin.H{"detail": msgInvalidPage})
		return
	}

	res := authorPage{Count: total, Results: authors}
	if page < last {
		res.Next = pageURL(c, page+1)
	}
	if page > 1 {
		res.Previous = pageURL(c, page-1)
	}
	c.JSON(http.StatusOK, res)
}

// getAuthor handles GET /authors/:id/.
func (s *Server) getAuthor(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": msgNotFound})
		return
	}

	author, err := s.store.Get(c.Request.Context(), uint(id))
	if errors.Is(err, catalog.ErrAuthorNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"detail": msgNotFound})
		return
	}
	if err != nil {
		s.storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, author)
}

func (s *Server) storeError(c *gin.Context, err error) {
	slog.Error("Author store failed",
		"request_id", c.GetString(keyRequestID),
		"error", err,
	)
	c.JSON(http.StatusInternalServerError, gin.H{"detail": err.Error()})
}
