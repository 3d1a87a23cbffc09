package goquery

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/distill"
	"golang.org/x/net/html"
)

// Ensure Analyzer implements distill.Analyzer at compile time.
var _ distill.Analyzer = (*Analyzer)(nil)

// Analyzer computes structural statistics of raw HTML.
type Analyzer struct {
	logger *slog.Logger
}

// NewAnalyzer creates a new Analyzer. A nil logger discards warnings.
func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Analyzer{logger: logger}
}

// Analyze counts elements, headings, classes and ids in rawHTML and grades
// its structure. The HTML is not modified.
func (a *Analyzer) Analyze(rawHTML string) (analysis *distill.DOMAnalysis) {
	defer func() {
		if r := recover(); r != nil {
			analysis = failedAnalysis(a.logger, fmt.Sprint(r))
		}
	}()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return failedAnalysis(a.logger, err.Error())
	}

	count := func(selector string) int {
		return doc.Find(selector).Length()
	}

	analysis = &distill.DOMAnalysis{
		Title:         strings.TrimSpace(doc.Find("head title").First().Text()),
		TotalElements: countElements(rawHTML),
		Headings:      make(map[string]int, 6),
		Links:         count("a"),
		Images:        count("img"),
		Forms:         count("form"),
		Tables:        count("table"),
		Divs:          count("div"),
		Paragraphs:    count("p"),
		Lists:         count("ul, ol"),
		Scripts:       count("script"),
		Styles:        count("style"),
	}
	for level := 1; level <= 6; level++ {
		tag := fmt.Sprintf("h%d", level)
		analysis.Headings[tag] = count(tag)
	}

	classes := make(map[string]struct{})
	doc.Find("[class]").Each(func(_ int, s *goquery.Selection) {
		for _, name := range strings.Fields(s.AttrOr("class", "")) {
			classes[name] = struct{}{}
		}
	})
	ids := make(map[string]struct{})
	doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		if id := s.AttrOr("id", ""); id != "" {
			ids[id] = struct{}{}
		}
	})
	analysis.Classes = inventory(classes)
	analysis.IDs = inventory(ids)

	text := doc.Text()
	analysis.TextLength = utf8.RuneCountInString(text)
	analysis.WordCount = len(strings.Fields(text))
	analysis.StructureQuality = distill.GradeStructure(analysis)

	return analysis
}

// countElements counts the start tags written in the source. The parsed
// document is not used because the parser adds html, head, body and tbody
// elements the author never wrote.
func countElements(rawHTML string) int {
	n := 0
	z := html.NewTokenizer(strings.NewReader(rawHTML))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return n
		case html.StartTagToken, html.SelfClosingTagToken:
			n++
		}
	}
}

// inventory returns the sorted names, capped at distill.MaxInventory.
func inventory(set map[string]struct{}) []string {
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	if len(names) > distill.MaxInventory {
		names = names[:distill.MaxInventory]
	}
	return names
}

func failedAnalysis(logger *slog.Logger, msg string) *distill.DOMAnalysis {
	logger.Warn("DOM analysis failed", "err", msg)
	return &distill.DOMAnalysis{
		Headings: map[string]int{},
		Classes:  []string{},
		IDs:      []string{},
		Error:    msg,
	}
}
