package distill

import (
	"context"
	"encoding/json"
	"time"
)

// ScrapeOptions controls a single page scrape.
type ScrapeOptions struct {
	// Mode selects static or dynamic retrieval. Nil means Static.
	Mode FetchMode

	ExtractLinks  bool
	ExtractImages bool
}

// ScrapeResult is the outcome of retrieving and analyzing one page.
// It is returned for every call, including failed ones.
type ScrapeResult struct {
	URL            string         `json:"url"`
	Success        bool           `json:"success"`
	Title          string         `json:"title,omitempty"`
	Content        string         `json:"content"`
	Markdown       string         `json:"markdown,omitempty"`
	RawContent     string         `json:"raw_content,omitempty"`
	DOMAnalysis    *DOMAnalysis   `json:"dom_analysis,omitempty"`
	Links          []LinkRecord   `json:"extracted_links"`
	Images         []ImageRecord  `json:"extracted_images"`
	ProcessingTime time.Duration  `json:"-"`
	Method         string         `json:"method"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	Error          string         `json:"error,omitempty"`
}

// MarshalJSON encodes the result with processing_time in seconds.
func (r *ScrapeResult) MarshalJSON() ([]byte, error) {
	type result ScrapeResult
	return json.Marshal(&struct {
		*result
		ProcessingTime float64 `json:"processing_time"`
	}{
		result:         (*result)(r),
		ProcessingTime: r.ProcessingTime.Seconds(),
	})
}

// Scraper retrieves pages and turns them into ScrapeResults.
type Scraper interface {
	// Scrape never fails; retrieval errors are reported on the result.
	Scrape(ctx context.Context, url string, opts ScrapeOptions) *ScrapeResult

	// ScrapeAll scrapes every URL, returning results in input order.
	// One URL failing does not cancel the others.
	ScrapeAll(ctx context.Context, urls []string, opts ScrapeOptions) []*ScrapeResult
}

// Report merges the scrape of a page with the extraction run over its content.
type Report struct {
	Scrape     *ScrapeResult     `json:"scrape"`
	Extraction *ExtractionResult `json:"extraction,omitempty"`
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
