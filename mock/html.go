package mock

import "github.com/fwojciec/distill"

var _ distill.Cleaner = (*Cleaner)(nil)

// Cleaner is a mock implementation of distill.Cleaner.
type Cleaner struct {
	CleanFn func(html string) string
}

func (c *Cleaner) Clean(html string) string {
	return c.CleanFn(html)
}

var _ distill.Analyzer = (*Analyzer)(nil)

// Analyzer is a mock implementation of distill.Analyzer.
type Analyzer struct {
	AnalyzeFn func(html string) *distill.DOMAnalysis
}

func (a *Analyzer) Analyze(html string) *distill.DOMAnalysis {
	return a.AnalyzeFn(html)
}

var (
	_ distill.LinkExtractor  = (*MediaExtractor)(nil)
	_ distill.ImageExtractor = (*MediaExtractor)(nil)
)

// MediaExtractor is a mock implementation of distill.LinkExtractor and
// distill.ImageExtractor.
type MediaExtractor struct {
	ExtractLinksFn  func(html string) []distill.LinkRecord
	ExtractImagesFn func(html string) []distill.ImageRecord
}

func (m *MediaExtractor) ExtractLinks(html string) []distill.LinkRecord {
	return m.ExtractLinksFn(html)
}

func (m *MediaExtractor) ExtractImages(html string) []distill.ImageRecord {
	return m.ExtractImagesFn(html)
}
