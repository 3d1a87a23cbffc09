package distill

import (
	"fmt"
	"strings"
)

// FormatScrapeResult renders a scrape result as a short human-readable block:
// a header line, then the cleaned content.
func FormatScrapeResult(r *ScrapeResult) string {
	if r == nil {
		return ""
	}

	var sb strings.Builder
	header := r.Title
	if header == "" {
		header = r.URL
	}
	fmt.Fprintf(&sb, "## %s\n", header)
	if !r.Success {
		fmt.Fprintf(&sb, "url: %s\nerror: %s\n", r.URL, r.Error)
		return sb.String()
	}
	fmt.Fprintf(&sb, "url: %s\nmethod: %s\ntime: %.2fs\n", r.URL, r.Method, r.ProcessingTime.Seconds())
	if r.DOMAnalysis != nil {
		fmt.Fprintf(&sb, "structure: %s\n", r.DOMAnalysis.StructureQuality)
	}
	for _, l := range r.Links {
		fmt.Fprintf(&sb, "link: %s -> %s\n", l.Text, l.Href)
	}
	for _, img := range r.Images {
		fmt.Fprintf(&sb, "image: %s\n", img.Src)
	}
	if r.Content != "" {
		sb.WriteString("\n" + r.Content + "\n")
	}
	return sb.String()
}

// FormatExtraction renders an extraction result: the aggregated content
// followed by a one-line summary of chunk outcomes.
func FormatExtraction(r *ExtractionResult) string {
	if r == nil {
		return ""
	}

	var sb strings.Builder
	if r.Content != "" {
		sb.WriteString(r.Content + "\n\n")
	}
	fmt.Fprintf(&sb, "chunks=%d succeeded=%d empty=%d failed=%d confidence=%.2f model=%s time=%.2fs\n",
		r.ChunksProcessed, r.SuccessfulChunks, r.EmptyChunks, r.FailedChunks,
		r.Confidence, r.ModelUsed, r.ProcessingTime.Seconds())
	if r.Error != "" {
		fmt.Fprintf(&sb, "error: %s\n", r.Error)
	}
	return sb.String()
}

// FormatReport renders a report. When extraction ran, its content replaces
// the page text.
func FormatReport(r *Report) string {
	if r == nil {
		return ""
	}
	if r.Extraction == nil {
		return FormatScrapeResult(r.Scrape)
	}
	if r.Scrape == nil {
		return FormatExtraction(r.Extraction)
	}

	s := *r.Scrape
	s.Content = ""
	return FormatScrapeResult(&s) + "\n" + FormatExtraction(r.Extraction)
}
