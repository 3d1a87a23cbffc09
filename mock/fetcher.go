package mock

import (
	"context"

	"github.com/fwojciec/distill"
)

var _ distill.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of distill.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ distill.BrowserFetcher = (*BrowserFetcher)(nil)

// BrowserFetcher is a mock implementation of distill.BrowserFetcher.
type BrowserFetcher struct {
	FetchFn         func(ctx context.Context, url string) (string, error)
	FetchRenderedFn func(ctx context.Context, url string, mode distill.Dynamic) (string, error)
	CloseFn         func() error
}

func (f *BrowserFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *BrowserFetcher) FetchRendered(ctx context.Context, url string, mode distill.Dynamic) (string, error) {
	return f.FetchRenderedFn(ctx, url, mode)
}

func (f *BrowserFetcher) Close() error {
	return f.CloseFn()
}
