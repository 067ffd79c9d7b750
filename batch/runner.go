// Package batch extracts locators from many sources concurrently.
// A source is a file path, "-" for standard input, or an http(s) URL.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/locgen"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of sources processed at once when
// Runner.Concurrency is not set.
const DefaultConcurrency = 4

// Runner loads sources and runs the extractor over each of them.
type Runner struct {
	Extractor   locgen.Extractor
	Fetcher     locgen.Fetcher
	Limiter     Limiter
	Concurrency int
	RetryDelays []time.Duration

	// Stdin is read for the "-" source. Defaults to os.Stdin.
	Stdin io.Reader
	// ReadFile loads file sources. Defaults to os.ReadFile.
	ReadFile func(name string) ([]byte, error)

	stdinOnce sync.Once
	stdin     []byte
	stdinErr  error
}

// Result holds the outcome of processing a single source.
type Result struct {
	Source   string
	HTML     string
	Elements []*locgen.ElementInfo
	Err      error
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Source    string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// Run processes sources concurrently and returns one result per source in
// input order. Failures of individual sources are recorded on their result;
// Run itself only fails when it is misconfigured or ctx is done.
//
// A source whose document yields no elements is recorded as ENOTFOUND.
func (r *Runner) Run(ctx context.Context, sources []string, progress ProgressFunc) ([]*Result, error) {
	if r.Extractor == nil {
		return nil, locgen.Errorf(locgen.EINVALID, "batch runner requires an extractor")
	}
	if len(sources) == 0 {
		return nil, locgen.Errorf(locgen.EINVALID, "at least one source is required")
	}

	concurrency := r.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(sources)
	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	results := make([]*Result, total)
	var completed atomic.Int64
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, source := range sources {
		g.Go(func() error {
			result := r.process(gctx, source)
			results[i] = result

			n := int(completed.Add(1))
			if progress != nil {
				event := ProgressEvent{
					Type:      ProgressCompleted,
					Completed: n,
					Total:     total,
					Source:    source,
				}
				if result.Err != nil {
					event.Type = ProgressFailed
					event.Error = result.Err
				}
				mu.Lock()
				progress(event)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return results, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}
	return results, nil
}

func (r *Runner) process(ctx context.Context, source string) *Result {
	result := &Result{Source: source}

	html, err := r.load(ctx, source)
	if err != nil {
		result.Err = err
		return result
	}
	result.HTML = html

	if err := locgen.ValidateInput(html); err != nil {
		result.Err = err
		return result
	}

	elems, err := r.Extractor.Extract(html)
	if err != nil {
		result.Err = err
		return result
	}
	if len(elems) == 0 {
		result.Err = locgen.Errorf(locgen.ENOTFOUND, "no elements found in %s", source)
	}
	result.Elements = elems
	return result
}

func (r *Runner) load(ctx context.Context, source string) (string, error) {
	switch {
	case source == Stdin:
		return r.readStdin()
	case IsURL(source):
		return r.fetch(ctx, source)
	default:
		readFile := r.ReadFile
		if readFile == nil {
			readFile = os.ReadFile
		}
		b, err := readFile(source)
		if os.IsNotExist(err) {
			return "", locgen.Errorf(locgen.ENOTFOUND, "file not found: %s", source)
		} else if err != nil {
			return "", fmt.Errorf("reading %s: %w", source, err)
		}
		return string(b), nil
	}
}

// readStdin reads standard input once; every "-" source shares the content.
func (r *Runner) readStdin() (string, error) {
	r.stdinOnce.Do(func() {
		in := r.Stdin
		if in == nil {
			in = os.Stdin
		}
		r.stdin, r.stdinErr = io.ReadAll(in)
	})
	if r.stdinErr != nil {
		return "", fmt.Errorf("reading stdin: %w", r.stdinErr)
	}
	return string(r.stdin), nil
}

func (r *Runner) fetch(ctx context.Context, url string) (string, error) {
	if r.Fetcher == nil {
		return "", locgen.Errorf(locgen.EINVALID, "no fetcher configured for %s", url)
	}

	delays := r.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	return fetchWithRetry(ctx, url, func(ctx context.Context, url string) (string, error) {
		if r.Limiter != nil {
			if err := r.Limiter.Wait(ctx, host(url)); err != nil {
				return "", err
			}
		}
		return r.Fetcher.Fetch(ctx, url)
	}, delays)
}
