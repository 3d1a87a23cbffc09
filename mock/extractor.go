package mock

import "github.com/fwojciec/distill"

var _ distill.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of distill.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*distill.Content, error)
}

func (e *ContentExtractor) Extract(html string) (*distill.Content, error) {
	return e.ExtractFn(html)
}
