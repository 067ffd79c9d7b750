package locgen

import "context"

// Fetcher retrieves HTML from URLs so that live pages can be used as
// extraction input.
type Fetcher interface {
	// Fetch retrieves the HTML for url. Implementations may render
	// JavaScript before returning the document.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the fetcher.
	Close() error
}
