// Package goquery implements the HTML-facing parts of distill on top of
// goquery: text cleaning, DOM structure analysis and link/image extraction.
package goquery

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/distill"
	"golang.org/x/net/html"
)

// Ensure Cleaner implements distill.Cleaner at compile time.
var _ distill.Cleaner = (*Cleaner)(nil)

// excludedSelector matches elements that never carry page content.
const excludedSelector = "script, style, noscript, nav, footer, header, aside"

// inlineElements do not break the text flow. Every other element starts
// and ends a line.
var inlineElements = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true,
	"cite": true, "code": true, "data": true, "dfn": true, "em": true,
	"font": true, "i": true, "kbd": true, "label": true, "mark": true,
	"q": true, "s": true, "samp": true, "small": true, "span": true,
	"strong": true, "sub": true, "sup": true, "time": true, "u": true,
	"var": true, "wbr": true,
}

// Cleaner strips non-content markup and reduces HTML to plain text lines.
type Cleaner struct {
	logger *slog.Logger
}

// NewCleaner creates a new Cleaner. A nil logger discards warnings.
func NewCleaner(logger *slog.Logger) *Cleaner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Cleaner{logger: logger}
}

// Clean removes scripts, styles and page chrome (nav, header, footer, aside),
// then returns the remaining text with one line per block. Lines are trimmed
// and empty lines dropped. On failure the input is returned unchanged.
func (c *Cleaner) Clean(rawHTML string) (text string) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("content cleaning failed", "err", fmt.Sprint(r))
			text = rawHTML
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		c.logger.Warn("content cleaning failed", "err", err)
		return rawHTML
	}
	doc.Find(excludedSelector).Remove()

	var sb strings.Builder
	for _, n := range doc.Nodes {
		writeText(&sb, n)
	}

	lines := strings.Split(sb.String(), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// writeText appends the text below n, surrounding block elements with line breaks.
func writeText(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.CommentNode, html.DoctypeNode:
		return
	}

	block := n.Type == html.ElementNode && !inlineElements[n.Data]
	if block {
		sb.WriteByte('\n')
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		writeText(sb, child)
	}
	if block {
		sb.WriteByte('\n')
	}
}
