// Package engine defines the page-fetching collaborators used by the extraction pipeline.
package engine

import "context"

// Fetcher retrieves the raw content of a product page.
//
// Implementations return an empty string rather than an error when a store answers with an
// empty page; blocks, timeouts and transport failures are reported as *FetchError.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)

	// Name returns the name of the fetcher implementation
	Name() string
}

// FetcherFunc adapts a plain function to the Fetcher interface
type FetcherFunc func(ctx context.Context, url string) (string, error)

// Fetch calls f
func (f FetcherFunc) Fetch(ctx context.Context, url string) (string, error) {
	return f(ctx, url)
}

// Name returns "func"
func (f FetcherFunc) Name() string {
	return "func"
}
