package dataset

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestExportURL(t *testing.T) {
	t.Run("link with gid", func(t *testing.T) {
		url, err := ExportURL("https://docs.google.com/spreadsheets/d/abc123-XY_z/edit#gid=42")
		require.NoError(t, err)
		assert.Equal(t, "https://docs.google.com/spreadsheets/d/abc123-XY_z/export?format=csv&gid=42", url)
	})

	t.Run("link without gid defaults to first tab", func(t *testing.T) {
		url, err := ExportURL("https://docs.google.com/spreadsheets/d/abc123/edit")
		require.NoError(t, err)
		assert.Contains(t, url, "gid=0")
	})

	t.Run("link without sheet id", func(t *testing.T) {
		_, err := ExportURL("https://example.com/not-a-sheet")
		assert.ErrorIs(t, err, ErrBadSheetURL)
	})
}

func TestFetcher_FetchCSV(t *testing.T) {
	ctx := context.Background()

	t.Run("successful fetch", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte("Q1\n5\n"))
		}))
		defer srv.Close()

		f := NewFetcher(srv.Client(), nil, 0, zap.NewNop())
		data, err := f.fetchCSV(ctx, srv.URL)

		require.NoError(t, err)
		assert.Equal(t, "Q1\n5\n", string(data))
	})

	t.Run("non-200 status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer srv.Close()

		f := NewFetcher(srv.Client(), nil, 0, zap.NewNop())
		_, err := f.fetchCSV(ctx, srv.URL)

		assert.ErrorIs(t, err, ErrSourceUnavailable)
	})

	t.Run("private sheet serves html", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html>sign in</html>"))
		}))
		defer srv.Close()

		f := NewFetcher(srv.Client(), nil, 0, zap.NewNop())
		_, err := f.fetchCSV(ctx, srv.URL)

		assert.ErrorIs(t, err, ErrSourceUnavailable)
		assert.Contains(t, err.Error(), "publicly readable")
	})

	t.Run("unreachable host", func(t *testing.T) {
		f := NewFetcher(&http.Client{Timeout: 100 * time.Millisecond}, nil, 0, zap.NewNop())
		_, err := f.fetchCSV(ctx, "http://127.0.0.1:1/export")

		assert.ErrorIs(t, err, ErrSourceUnavailable)
	})

	t.Run("cache avoids second download", func(t *testing.T) {
		var hits atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.Header().Set("Content-Type", "text/csv")
			_, _ = w.Write([]byte("Q1\n5\n"))
		}))
		defer srv.Close()

		cache := newMemoryCache()
		f := NewFetcher(srv.Client(), cache, time.Minute, zap.NewNop())

		_, err := f.fetchCSV(ctx, srv.URL)
		require.NoError(t, err)
		_, err = f.fetchCSV(ctx, srv.URL)
		require.NoError(t, err)

		assert.Equal(t, int32(1), hits.Load())
	})
}
