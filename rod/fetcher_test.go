//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/locgen"
	"github.com/fwojciec/locgen/goquery"
	"github.com/fwojciec/locgen/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher()
	require.NoError(t, err)
	t.Cleanup(func() { _ = fetcher.Close() })

	t.Run("returns rendered HTML", func(t *testing.T) {
		t.Parallel()

		srv := serve(t, `<!DOCTYPE html>
<html><body>
<div id="content">Loading...</div>
<script>document.getElementById('content').textContent = 'Rendered';</script>
</body></html>`)

		html, err := fetcher.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Contains(t, html, "Rendered")
		assert.NotContains(t, html, "Loading...")
	})

	t.Run("captures elements created by scripts", func(t *testing.T) {
		t.Parallel()

		srv := serve(t, `<html><body><script>
const b = document.createElement('button');
b.id = 'late';
b.textContent = 'Go';
document.body.appendChild(b);
</script></body></html>`)

		html, err := fetcher.Fetch(context.Background(), srv.URL)
		require.NoError(t, err)

		elems, err := goquery.NewExtractor().Extract(html)
		require.NoError(t, err)
		var keys []string
		for _, el := range elems {
			keys = append(keys, el.Key)
		}
		assert.Contains(t, keys, "button-late-1")
	})

	t.Run("returns canceled error for canceled context", func(t *testing.T) {
		t.Parallel()

		srv := serve(t, `<html></html>`)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fetcher.Fetch(ctx, srv.URL)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("handles concurrent fetches", func(t *testing.T) {
		t.Parallel()

		srv := serve(t, `<html><body><p>ok</p></body></html>`)

		var wg sync.WaitGroup
		errs := make([]error, 4)
		for i := range errs {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = fetcher.Fetch(context.Background(), srv.URL)
			}(i)
		}
		wg.Wait()

		for _, err := range errs {
			assert.NoError(t, err)
		}
	})
}

func TestFetcher_FetchTimeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(100 * time.Millisecond))
	require.NoError(t, err)
	defer fetcher.Close()

	_, err = fetcher.Fetch(context.Background(), srv.URL)

	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetcher_Close(t *testing.T) {
	t.Parallel()

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)

		require.NoError(t, fetcher.Close())
		assert.NoError(t, fetcher.Close())
		assert.Zero(t, fetcher.LauncherPID())
	})

	t.Run("rejects fetch after close", func(t *testing.T) {
		t.Parallel()

		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)
		require.NoError(t, fetcher.Close())

		_, err = fetcher.Fetch(context.Background(), "http://example.com")

		assert.Equal(t, locgen.EINVALID, locgen.ErrorCode(err))
	})
}

func TestFetcher_RestartsBrowserAfterMaxPages(t *testing.T) {
	t.Parallel()

	srv := serve(t, `<html><body><p>ok</p></body></html>`)

	fetcher, err := rod.NewFetcher(rod.WithMaxPages(1))
	require.NoError(t, err)
	defer fetcher.Close()

	_, err = fetcher.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	first := fetcher.LauncherPID()

	_, err = fetcher.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.NotEqual(t, first, fetcher.LauncherPID())
}
