package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/locgen"
	locgenhttp "github.com/fwojciec/locgen/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time verification that Fetcher implements locgen.Fetcher.
var _ locgen.Fetcher = (*locgenhttp.Fetcher)(nil)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<form><input name="q"></form>`))
		}))
		defer server.Close()

		fetcher := locgenhttp.NewFetcher()
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), server.URL)
		require.NoError(t, err)
		assert.Equal(t, `<form><input name="q"></form>`, html)
	})

	t.Run("sends user agent", func(t *testing.T) {
		t.Parallel()

		var got string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.UserAgent()
		}))
		defer server.Close()

		fetcher := locgenhttp.NewFetcher(locgenhttp.WithUserAgent("test-agent"))
		_, err := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, "test-agent", got)
	})

	t.Run("respects custom timeout option", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
			_, _ = w.Write([]byte("response"))
		}))
		defer server.Close()

		fetcher := locgenhttp.NewFetcher(locgenhttp.WithTimeout(10 * time.Millisecond))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(100 * time.Millisecond)
		}))
		defer server.Close()

		fetcher := locgenhttp.NewFetcher()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, server.URL)
		require.Error(t, err)
	})

	t.Run("returns ENOTFOUND for 404", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.NotFoundHandler())
		defer server.Close()

		fetcher := locgenhttp.NewFetcher()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, locgen.ENOTFOUND, locgen.ErrorCode(err))
		assert.Contains(t, locgen.ErrorMessage(err), "404")
	})

	t.Run("returns error for server failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		fetcher := locgenhttp.NewFetcher()

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, locgen.ErrorMessage(err), "502")
	})

	t.Run("rejects oversized documents", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("x", 64)))
		}))
		defer server.Close()

		fetcher := locgenhttp.NewFetcher(locgenhttp.WithMaxBytes(32))

		_, err := fetcher.Fetch(context.Background(), server.URL)
		require.Error(t, err)
		assert.Equal(t, locgen.EINVALID, locgen.ErrorCode(err))
	})

	t.Run("returns EINVALID for malformed URL", func(t *testing.T) {
		t.Parallel()

		fetcher := locgenhttp.NewFetcher()

		_, err := fetcher.Fetch(context.Background(), "http://[::1")
		require.Error(t, err)
		assert.Equal(t, locgen.EINVALID, locgen.ErrorCode(err))
	})
}
