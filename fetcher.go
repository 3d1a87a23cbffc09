package distill

import (
	"context"
	"time"
)

// DefaultUserAgent is sent by fetchers when no user agent is configured.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// DefaultSettleDelay is how long dynamic retrieval waits after page load
// for scripts to finish rendering.
const DefaultSettleDelay = 2 * time.Second

// Fetcher retrieves raw HTML from URLs.
type Fetcher interface {
	// Fetch returns the HTML served at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// BrowserFetcher is a Fetcher that renders pages in a browser.
type BrowserFetcher interface {
	Fetcher

	// FetchRendered navigates to url, waits for load plus the mode's
	// settle delay, and returns the rendered HTML.
	FetchRendered(ctx context.Context, url string, mode Dynamic) (html string, err error)
}

// FetchMode selects how a page is retrieved. It is either Static or Dynamic.
type FetchMode interface {
	// Method names the retrieval method for reporting.
	Method() string

	fetchMode()
}

// Static retrieves a page with a plain HTTP GET.
type Static struct{}

// Method returns "static".
func (Static) Method() string { return "static" }

func (Static) fetchMode() {}

// Dynamic retrieves a page through a browser so JavaScript can render it.
type Dynamic struct {
	// SettleDelay is waited after the load event.
	SettleDelay time.Duration

	// Headless runs the browser without a window.
	Headless bool
}

// Method returns "dynamic".
func (Dynamic) Method() string { return "dynamic" }

func (Dynamic) fetchMode() {}
