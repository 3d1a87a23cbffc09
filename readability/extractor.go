// Package readability narrows pages to their main content with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/distill"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements distill.ContentExtractor at compile time.
var _ distill.ContentExtractor = (*Extractor)(nil)

// Extractor keeps the readable article of a page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the article title and content HTML. A page readability
// cannot find an article in is an EINVALID error.
func (e *Extractor) Extract(rawHTML string) (*distill.Content, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, distill.Errorf(distill.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, distill.Errorf(distill.EINVALID, "main content: %v", err)
	}
	if strings.TrimSpace(article.Content) == "" {
		return nil, distill.Errorf(distill.EINVALID, "no main content found")
	}

	return &distill.Content{
		Title:       strings.TrimSpace(article.Title),
		ContentHTML: article.Content,
	}, nil
}
