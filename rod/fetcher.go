// Package rod provides a locgen.Fetcher that renders pages in headless
// Chrome, so that elements created by JavaScript are part of the captured
// HTML.
package rod

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/locgen"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Fetcher defaults.
const (
	DefaultFetchTimeout = 10 * time.Second
	DefaultMaxPages     = 75
)

// Ensure Fetcher implements locgen.Fetcher at compile time.
var _ locgen.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome browser automation.
// The browser is restarted after maxPages pages, since Chrome's memory use
// keeps growing under sustained load.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	timeout  time.Duration
	maxPages int
	settle   time.Duration
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    int
	closed   bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout bounds the time spent loading a single page.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPages sets how many pages are rendered before the browser is
// restarted.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// WithSettleDelay waits d after the load event before capturing HTML, for
// pages that render asynchronously.
func WithSettleDelay(d time.Duration) Option {
	return func(f *Fetcher) {
		f.settle = d
	}
}

// NewFetcher launches a headless Chrome browser and returns a Fetcher using
// it. Close must be called when the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}

	browser, l, err := launch()
	if err != nil {
		return nil, err
	}
	f.browser, f.launcher = browser, l
	return f, nil
}

// Fetch navigates to url and returns the document's outer HTML once the
// page has loaded.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	browser, err := f.acquire()
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", err
	}
	defer page.Close()

	page = page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return "", err
	}
	if err := page.WaitLoad(); err != nil {
		return "", err
	}
	if f.settle > 0 {
		select {
		case <-time.After(f.settle):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	return page.HTML()
}

// acquire returns the browser for the next page, restarting it once the
// page budget is spent. A failed restart keeps the old browser.
func (f *Fetcher) acquire() (*rod.Browser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, locgen.Errorf(locgen.EINVALID, "fetcher is closed")
	}

	if f.maxPages > 0 && f.pages >= f.maxPages {
		if browser, l, err := launch(); err == nil {
			_ = f.browser.Close()
			f.launcher.Kill()
			f.browser, f.launcher, f.pages = browser, l, 0
		}
	}
	f.pages++
	return f.browser, nil
}

// LauncherPID returns the process ID of the browser launcher, or 0 after
// Close.
func (f *Fetcher) LauncherPID() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.launcher == nil {
		return 0
	}
	return f.launcher.PID()
}

// Close shuts down the browser. It is safe to call more than once.
func (f *Fetcher) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	f.closed = true

	err := f.browser.Close()
	f.launcher.Kill()
	f.browser, f.launcher = nil, nil
	return err
}

// launch starts a headless browser with flags that keep background pages
// from being throttled.
func launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}

	return browser, l, nil
}
