// Package scrape retrieves web pages and turns them into distill.ScrapeResults:
// fetched statically or through a browser, analyzed, cleaned to text and
// optionally mined for links, images and Markdown.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/distill"
	"golang.org/x/sync/errgroup"
)

// DefaultMaxConcurrent bounds ScrapeAll when MaxConcurrent is not set.
const DefaultMaxConcurrent = 5

// Ensure Scraper implements distill.Scraper at compile time.
var _ distill.Scraper = (*Scraper)(nil)

// Scraper orchestrates retrieval and analysis of pages.
// Static and Cleaner are required; every other collaborator is optional.
type Scraper struct {
	Static  distill.Fetcher
	Browser distill.BrowserFetcher
	Cleaner distill.Cleaner

	Analyzer  distill.Analyzer
	Links     distill.LinkExtractor
	Images    distill.ImageExtractor
	Content   distill.ContentExtractor
	Converter distill.Converter

	RateLimiter   distill.DomainLimiter
	RetryDelays   []time.Duration
	MaxConcurrent int
	Logger        *slog.Logger
}

// Scrape retrieves and analyzes one page. It never returns nil; failures
// are reported with Success false and Method "none".
func (s *Scraper) Scrape(ctx context.Context, rawURL string, opts distill.ScrapeOptions) (result *distill.ScrapeResult) {
	begin := time.Now()
	result = &distill.ScrapeResult{
		URL:    rawURL,
		Method: "none",
		Links:  []distill.LinkRecord{},
		Images: []distill.ImageRecord{},
	}
	defer func() {
		if r := recover(); r != nil {
			s.logger().Error("scrape panicked", "url", rawURL, "panic", r)
			result.Success = false
			result.Error = fmt.Sprintf("scrape failed: %v", r)
		}
		result.ProcessingTime = time.Since(begin)
	}()

	if !validURL(rawURL) {
		result.Error = distill.ErrorMessage(distill.Errorf(distill.EINVALID, "invalid URL provided"))
		return result
	}
	if s.Static == nil || s.Cleaner == nil {
		result.Error = distill.ErrorMessage(distill.Errorf(distill.EINTERNAL, "scraper not configured"))
		return result
	}

	mode := opts.Mode
	if mode == nil {
		mode = distill.Static{}
	}

	raw, err := s.fetch(ctx, rawURL, mode)
	if err != nil {
		s.logger().Warn("scrape failed", "url", rawURL, "method", mode.Method(), "err", err)
		result.Error = distill.ErrorMessage(err)
		return result
	}
	result.Method = mode.Method()
	result.RawContent = raw

	if s.Analyzer != nil {
		if a := s.Analyzer.Analyze(raw); a != nil {
			result.DOMAnalysis = a
			result.Title = a.Title
		}
	}

	body := raw
	if s.Content != nil {
		if c, err := s.Content.Extract(raw); err != nil || c == nil || strings.TrimSpace(c.ContentHTML) == "" {
			s.logger().Debug("main content not found, using full page", "url", rawURL, "err", err)
		} else {
			body = c.ContentHTML
			if result.Title == "" {
				result.Title = c.Title
			}
		}
	}

	result.Content = s.Cleaner.Clean(body)
	if opts.ExtractLinks && s.Links != nil {
		result.Links = s.Links.ExtractLinks(raw)
	}
	if opts.ExtractImages && s.Images != nil {
		result.Images = s.Images.ExtractImages(raw)
	}
	if s.Converter != nil {
		md, err := s.Converter.Convert(body)
		if err != nil {
			s.logger().Warn("markdown conversion failed", "url", rawURL, "err", err)
		}
		result.Markdown = md
	}

	result.Metadata = map[string]any{
		"content_length": utf8.RuneCountInString(result.Content),
		"raw_length":     utf8.RuneCountInString(raw),
		"links_count":    len(result.Links),
		"images_count":   len(result.Images),
		"content_hash":   computeHash(result.Content),
	}
	if result.DOMAnalysis != nil {
		result.Metadata["elements_count"] = result.DOMAnalysis.TotalElements
	}
	result.Success = true
	return result
}

// ScrapeAll scrapes urls concurrently, at most MaxConcurrent at a time.
// Results are in input order; one failure does not stop the others.
func (s *Scraper) ScrapeAll(ctx context.Context, urls []string, opts distill.ScrapeOptions) []*distill.ScrapeResult {
	limit := s.MaxConcurrent
	if limit <= 0 {
		limit = DefaultMaxConcurrent
	}

	results := make([]*distill.ScrapeResult, len(urls))
	var g errgroup.Group
	g.SetLimit(limit)
	for i, u := range urls {
		g.Go(func() error {
			results[i] = s.Scrape(ctx, u, opts)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// fetch retrieves rawURL with the selected mode, honoring the rate limiter
// and retry delays.
func (s *Scraper) fetch(ctx context.Context, rawURL string, mode distill.FetchMode) (string, error) {
	var fetch FetchFunc
	switch m := mode.(type) {
	case distill.Dynamic:
		if s.Browser == nil {
			return "", distill.Errorf(distill.EINVALID, "dynamic retrieval not available")
		}
		fetch = func(ctx context.Context, u string) (string, error) {
			return s.Browser.FetchRendered(ctx, u, m)
		}
	default:
		fetch = s.Static.Fetch
	}

	if s.RateLimiter != nil {
		limited := fetch
		fetch = func(ctx context.Context, u string) (string, error) {
			if err := s.RateLimiter.Wait(ctx, hostOf(u)); err != nil {
				return "", err
			}
			return limited(ctx, u)
		}
	}

	return FetchWithRetry(ctx, rawURL, fetch, s.logger(), s.RetryDelays)
}

func (s *Scraper) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// validURL reports whether rawURL is an absolute http or https URL.
func validURL(rawURL string) bool {
	if strings.TrimSpace(rawURL) == "" {
		return false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// computeHash fingerprints cleaned content so unchanged pages can be recognized.
func computeHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}
