package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/fwojciec/locgen"
	"github.com/fwojciec/locgen/batch"
	main "github.com/fwojciec/locgen/cmd/locgen"
	"github.com/fwojciec/locgen/goquery"
	"github.com/fwojciec/locgen/mock"
)

const loginForm = `<form id="login">
<input name="user" placeholder="Username">
<button class="btn primary" type="submit">Sign in</button>
<a href="/help">Need help?</a>
</form>`

// testDeps returns dependencies whose runner reads html from stdin and
// serves pages from the given map for URL sources.
func testDeps(html string, pages map[string]string) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	fetcher := &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			page, ok := pages[url]
			if !ok {
				return "", locgen.Errorf(locgen.ENOTFOUND, "page not found: %s", url)
			}
			return page, nil
		},
	}
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: stderr,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Runner: &batch.Runner{
			Extractor: goquery.NewExtractor(),
			Fetcher:   fetcher,
			Stdin:     strings.NewReader(html),
		},
	}
	return deps, stdout, stderr
}
