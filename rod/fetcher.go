// Package rod implements dynamic page retrieval for distill by rendering
// pages in Chrome through go-rod.
package rod

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fwojciec/distill"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultFetchTimeout bounds navigation, load and settle for one page.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements distill.BrowserFetcher at compile time.
var _ distill.BrowserFetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML using Chrome. Browsers are launched on
// first use, one per headless setting, and recycled every maxPages pages.
//
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	timeout   time.Duration
	userAgent string
	maxPages  int64
	defaults  distill.Dynamic

	mu       sync.Mutex
	managers map[bool]*BrowserManager
	closed   atomic.Bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page timeout. Defaults to DefaultFetchTimeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the browser user agent.
// Defaults to distill.DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithFetcherMaxPages sets how many pages a browser serves before it is recycled.
func WithFetcherMaxPages(n int64) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// WithDefaults sets the mode used by Fetch. Defaults to a headless browser
// with distill.DefaultSettleDelay.
func WithDefaults(mode distill.Dynamic) Option {
	return func(f *Fetcher) {
		f.defaults = mode
	}
}

// NewFetcher creates a new Fetcher. No browser is started until the first
// page is requested. Close must be called when the Fetcher is no longer needed.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: distill.DefaultUserAgent,
		maxPages:  DefaultMaxPages,
		defaults:  distill.Dynamic{SettleDelay: distill.DefaultSettleDelay, Headless: true},
		managers:  make(map[bool]*BrowserManager),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch renders url with the fetcher's default mode.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchRendered(ctx, url, f.defaults)
}

// FetchRendered navigates to url, waits for the load event and the mode's
// settle delay, and returns the rendered HTML.
func (f *Fetcher) FetchRendered(ctx context.Context, url string, mode distill.Dynamic) (string, error) {
	if f.closed.Load() {
		return "", distill.Errorf(distill.EINVALID, "fetcher closed")
	}
	if err := ctx.Err(); err != nil {
		return "", distill.Errorf(distill.ECANCELED, "fetch %s: %v", url, err)
	}

	manager, err := f.manager(mode.Headless)
	if err != nil {
		return "", err
	}
	browser, err := manager.Browser()
	if err != nil {
		return "", err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", distill.Errorf(distill.EFETCH, "open page: %v", err)
	}
	defer page.Close()
	defer manager.IncrementPageCount()

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()
	page = page.Context(ctx)

	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: f.userAgent}); err != nil {
		return "", fetchError(ctx, url, err)
	}
	if err := page.Navigate(url); err != nil {
		return "", fetchError(ctx, url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", fetchError(ctx, url, err)
	}

	if mode.SettleDelay > 0 {
		select {
		case <-ctx.Done():
			return "", fetchError(ctx, url, ctx.Err())
		case <-time.After(mode.SettleDelay):
		}
	}

	html, err := page.HTML()
	if err != nil {
		return "", fetchError(ctx, url, err)
	}
	return html, nil
}

// Close shuts down every browser. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	if !f.closed.CompareAndSwap(false, true) {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	var errs []error
	for headless, m := range f.managers {
		errs = append(errs, m.Close())
		delete(f.managers, headless)
	}
	return errors.Join(errs...)
}

// LauncherPID returns the process ID of the headless browser, or 0 if it
// has not been started.
func (f *Fetcher) LauncherPID() int {
	f.mu.Lock()
	m := f.managers[true]
	f.mu.Unlock()
	if m == nil {
		return 0
	}
	return m.LauncherPID()
}

// manager returns the browser manager for the headless setting, launching
// it on first use. Close may run between a caller's closed check and here,
// so closed is checked again under the lock.
func (f *Fetcher) manager(headless bool) (*BrowserManager, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed.Load() {
		return nil, distill.Errorf(distill.EINVALID, "fetcher closed")
	}
	if m, ok := f.managers[headless]; ok {
		return m, nil
	}
	m, err := NewBrowserManager(WithHeadless(headless), WithMaxPages(f.maxPages))
	if err != nil {
		return nil, err
	}
	f.managers[headless] = m
	return m, nil
}

// fetchError classifies a failure after navigation started.
func fetchError(ctx context.Context, url string, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return distill.Errorf(distill.ECANCELED, "fetch %s: %v", url, ctx.Err())
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return distill.Errorf(distill.EFETCH, "fetch %s: timeout: %v", url, ctx.Err())
	default:
		return distill.Errorf(distill.EFETCH, "fetch %s: %v", url, err)
	}
}
