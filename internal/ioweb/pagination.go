package ioweb

import (
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"
)

// lastPage returns the number of the last page. An empty result set
// still has one (empty) page.
func lastPage(total int64, size int) int {
	if total <= 0 {
		return 1
	}
	return int((total + int64(size) - 1) / int64(size))
}

// pageURL builds an absolute link to another page of the current
// request, keeping all other query parameters. The first page is
// linked without the page parameter.
func pageURL(c *gin.Context, page int) *string {
	q := c.Request.URL.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}

	u := url.URL{
		Scheme:   scheme(c),
		Host:     c.Request.Host,
		Path:     c.Request.URL.Path,
		RawQuery: q.Encode(),
	}
	res := u.String()
	return &res
}

func scheme(c *gin.Context) string {
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if c.Request.TLS != nil {
		return "https"
	}
	return "http"
}
