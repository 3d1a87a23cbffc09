package goquery

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/distill"
)

var (
	_ distill.LinkExtractor  = (*MediaExtractor)(nil)
	_ distill.ImageExtractor = (*MediaExtractor)(nil)
)

// MediaExtractor pulls anchors and images out of raw HTML.
type MediaExtractor struct {
	logger *slog.Logger
}

// NewMediaExtractor creates a new MediaExtractor. A nil logger discards warnings.
func NewMediaExtractor(logger *slog.Logger) *MediaExtractor {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &MediaExtractor{logger: logger}
}

// ExtractLinks returns every anchor that has both an href and visible text.
// Duplicates are kept in document order.
func (m *MediaExtractor) ExtractLinks(rawHTML string) (links []distill.LinkRecord) {
	links = []distill.LinkRecord{}
	defer func() {
		if r := recover(); r != nil {
			m.logger.Warn("link extraction failed", "err", fmt.Sprint(r))
			links = []distill.LinkRecord{}
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		m.logger.Warn("link extraction failed", "err", err)
		return links
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := sel.AttrOr("href", "")
		text := strings.TrimSpace(sel.Text())
		if strings.TrimSpace(href) == "" || text == "" {
			return
		}
		links = append(links, distill.LinkRecord{
			Text:  text,
			Href:  href,
			Title: sel.AttrOr("title", ""),
		})
	})
	return links
}

// ExtractImages returns every image that has a src, in document order.
func (m *MediaExtractor) ExtractImages(rawHTML string) (images []distill.ImageRecord) {
	images = []distill.ImageRecord{}
	defer func() {
		if r := recover(); r != nil {
			m.logger.Warn("image extraction failed", "err", fmt.Sprint(r))
			images = []distill.ImageRecord{}
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		m.logger.Warn("image extraction failed", "err", err)
		return images
	}

	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src := sel.AttrOr("src", "")
		if strings.TrimSpace(src) == "" {
			return
		}
		images = append(images, distill.ImageRecord{
			Src:    src,
			Alt:    sel.AttrOr("alt", ""),
			Title:  sel.AttrOr("title", ""),
			Width:  sel.AttrOr("width", ""),
			Height: sel.AttrOr("height", ""),
		})
	})
	return images
}
