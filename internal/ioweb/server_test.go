package ioweb_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gnames/bookshelf/internal/iostore"
	"github.com/gnames/bookshelf/internal/iotesting"
	"github.com/gnames/bookshelf/internal/ioweb"
	"github.com/gnames/bookshelf/pkg/catalog"
	"github.com/gnames/bookshelf/pkg/config"
	"github.com/gnames/bookshelf/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seedNames = []string{
	"test1", "test2", "test3", "test4", "test5", "test6", "test7",
	"test8", "test9", "José Saramago", "José Martí", "Clarice Lispector",
}

type page struct {
	Count    int64            `json:"count"`
	Next     *string          `json:"next"`
	Previous *string          `json:"previous"`
	Results  []map[string]any `json:"results"`
}

func newTestServer(t *testing.T) (*ioweb.Server, catalog.AuthorStore) {
	t.Helper()
	op := iotesting.SQLiteOperator(t)
	store := iostore.New(op, 100)

	authors := make([]schema.Author, len(seedNames))
	for i, v := range seedNames {
		authors[i] = schema.Author{Name: v}
	}
	n, err := store.BulkCreate(context.Background(), authors, true)
	require.NoError(t, err)
	require.Equal(t, len(seedNames), n)

	cfg := config.New().Server
	return ioweb.New(cfg, store), store
}

func get(t *testing.T, s *ioweb.Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder) page {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var res page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	return res
}

func TestListAuthors(t *testing.T) {
	s, _ := newTestServer(t)

	t.Run("first page", func(t *testing.T) {
		res := decodePage(t, get(t, s, "/authors/"))
		assert.Equal(t, int64(len(seedNames)), res.Count)
		assert.Len(t, res.Results, 10)
		assert.Nil(t, res.Previous)
		require.NotNil(t, res.Next)
		assert.Equal(t, "http://example.com/authors/?page=2", *res.Next)

		for _, v := range res.Results {
			assert.Len(t, v, 2)
			assert.Contains(t, v, "id")
			assert.Contains(t, v, "name")
		}
		assert.Equal(t, "test1", res.Results[0]["name"])
	})

	t.Run("second page", func(t *testing.T) {
		res := decodePage(t, get(t, s, "/authors/?page=2"))
		assert.Len(t, res.Results, 2)
		assert.Nil(t, res.Next)
		require.NotNil(t, res.Previous)
		assert.Equal(t, "http://example.com/authors/", *res.Previous)
	})

	t.Run("last page", func(t *testing.T) {
		res := decodePage(t, get(t, s, "/authors/?page=last"))
		assert.Len(t, res.Results, 2)
		assert.Equal(t, "Clarice Lispector", res.Results[1]["name"])
	})

	t.Run("invalid pages", func(t *testing.T) {
		for _, v := range []string{"3", "0", "-1", "abc"} {
			w := get(t, s, "/authors/?page="+v)
			assert.Equal(t, http.StatusNotFound, w.Code, v)
			assert.JSONEq(t, `{"detail":"Invalid page."}`, w.Body.String())
		}
	})
}

func TestListAuthorsFilter(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		msg   string
		name  string
		count int64
	}{
		{"exact", "test1", 1},
		{"prefix", "test", 9},
		{"unicode", "José", 2},
		{"case insensitive", "clarice", 1},
		{"like wildcard is literal", "%", 0},
		{"unknown", "Machado", 0},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			target := "/authors/?name=" + url.QueryEscape(tt.name)
			res := decodePage(t, get(t, s, target))
			assert.Equal(t, tt.count, res.Count)
			assert.Len(t, res.Results, int(tt.count))
		})
	}

	t.Run("pagination keeps filter", func(t *testing.T) {
		_, store := newTestServer(t)
		s := ioweb.New(config.ServerConfig{Port: 8000, PageSize: 5}, store)
		res := decodePage(t, get(t, s, "/authors/?name=test"))
		assert.Equal(t, int64(9), res.Count)
		require.NotNil(t, res.Next)
		assert.Equal(t, "http://example.com/authors/?name=test&page=2", *res.Next)
	})
}

func TestListAuthorsEmpty(t *testing.T) {
	op := iotesting.SQLiteOperator(t)
	s := ioweb.New(config.New().Server, iostore.New(op, 100))

	res := decodePage(t, get(t, s, "/authors/"))
	assert.Equal(t, int64(0), res.Count)
	assert.Empty(t, res.Results)
	assert.Nil(t, res.Next)
	assert.Nil(t, res.Previous)
	assert.Contains(t, get(t, s, "/authors/").Body.String(), `"results":[]`)
}

func TestGetAuthor(t *testing.T) {
	s, _ := newTestServer(t)

	w := get(t, s, "/authors/1/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"name":"test1"}`, w.Body.String())

	for _, v := range []string{"/authors/999/", "/authors/abc/", "/authors/0/"} {
		w = get(t, s, v)
		assert.Equal(t, http.StatusNotFound, w.Code, v)
		assert.JSONEq(t, `{"detail":"Not found."}`, w.Body.String())
	}
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	w := get(t, s, "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestRequestID(t *testing.T) {
	s, _ := newTestServer(t)

	w := get(t, s, "/health")
	assert.Len(t, w.Header().Get("X-Request-ID"), 36)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
}

func TestStoreFailures(t *testing.T) {
	s := ioweb.New(config.New().Server, brokenStore{})

	w := get(t, s, "/authors/")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "detail")

	w = get(t, s, "/authors/1/")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"detail":"Internal server error."}`, w.Body.String())

	w = get(t, s, "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRun(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	_, store := newTestServer(t)
	s := ioweb.New(config.ServerConfig{Port: port, PageSize: 10}, store)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	addr := fmt.Sprintf("http://127.0.0.1:%d/health", port)
	require.Eventually(t, func() bool {
		resp, err := http.Get(addr)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(15 * time.Second):
		t.Fatal("server did not stop")
	}
}

// brokenStore fails List and Ping, and panics on Get.
type brokenStore struct{}

var errBroken = errors.New("database is gone")

func (brokenStore) Create(context.Context, *schema.Author) error { return errBroken }

func (brokenStore) BulkCreate(context.Context, []schema.Author, bool) (int, error) {
	return 0, errBroken
}

func (brokenStore) List(context.Context, catalog.AuthorFilter) ([]schema.Author, int64, error) {
	return nil, 0, errBroken
}

func (brokenStore) Get(context.Context, uint) (*schema.Author, error) {
	panic("unexpected call")
}

func (brokenStore) Ping(context.Context) error { return errBroken }
