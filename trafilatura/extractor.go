// Package trafilatura narrows pages to their main content with go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/distill"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements distill.ContentExtractor at compile time.
var _ distill.ContentExtractor = (*Extractor)(nil)

// Extractor keeps the main content of a page and drops boilerplate.
// Links are kept so the narrowed HTML still converts to useful Markdown.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the page title and main content HTML. A page with no
// recognizable main content is an EINVALID error.
func (e *Extractor) Extract(rawHTML string) (*distill.Content, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, distill.Errorf(distill.EINVALID, "empty HTML input")
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		IncludeLinks:    true,
	})
	if err != nil {
		return nil, distill.Errorf(distill.EINVALID, "main content: %v", err)
	}
	if result.ContentNode == nil {
		return nil, distill.Errorf(distill.EINVALID, "no main content found")
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, result.ContentNode); err != nil {
		return nil, distill.Errorf(distill.EINTERNAL, "render main content: %v", err)
	}

	return &distill.Content{
		Title:       strings.TrimSpace(result.Metadata.Title),
		ContentHTML: buf.String(),
	}, nil
}
