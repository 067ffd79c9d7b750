// Package http provides an HTTP-based implementation of locgen.Fetcher for
// capturing the HTML of static pages that don't need JavaScript rendering.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/locgen"
)

// Fetcher defaults.
const (
	DefaultFetchTimeout = 10 * time.Second
	DefaultMaxBytes     = 10 << 20
	DefaultUserAgent    = "locgen/1.0 (+https://github.com/fwojciec/locgen)"
)

// Ensure Fetcher implements locgen.Fetcher at compile time.
var _ locgen.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves the HTML served at a URL with a plain GET request.
// Unlike rod.Fetcher it does not execute JavaScript, so elements created by
// scripts will be missing from the result.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	maxBytes  int64
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBytes limits how much of the response body is read.
// Larger documents are rejected with EINVALID.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		maxBytes:  DefaultMaxBytes,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
// Non-200 responses return ENOTFOUND for 404 and 410, EINTERNAL otherwise.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", locgen.Errorf(locgen.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound, http.StatusGone:
		return "", locgen.Errorf(locgen.ENOTFOUND, "HTTP %d for %s", resp.StatusCode, url)
	default:
		return "", locgen.Errorf(locgen.EINTERNAL, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(body)) > f.maxBytes {
		return "", locgen.Errorf(locgen.EINVALID, "document at %s exceeds %d bytes", url, f.maxBytes)
	}

	return string(body), nil
}

// Close is a no-op; http.Client needs no explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
