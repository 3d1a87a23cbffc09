package main

import (
	"fmt"

	"github.com/fwojciec/distill"
)

// Run executes the extract command: the page is scraped and its cleaned
// content is handed to the extractor.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	page := deps.Scraper.Scrape(deps.Ctx, c.URL, distill.ScrapeOptions{
		Mode:          deps.Mode,
		ExtractLinks:  c.Links,
		ExtractImages: c.Images,
	})
	deps.Stats.RecordScrape(page)
	if !c.Raw {
		page.RawContent = ""
	}

	report := &distill.Report{Scrape: page}
	if !page.Success {
		if err := writeOutput(deps.Stdout, deps.Format, report); err != nil {
			return err
		}
		return scrapeError(deps, page)
	}

	report.Extraction = deps.Extractor.Extract(deps.Ctx, &distill.ExtractionRequest{
		Content:      page.Content,
		Instructions: c.Instructions,
	})
	deps.Stats.RecordExtraction(report.Extraction)

	if err := writeOutput(deps.Stdout, deps.Format, report); err != nil {
		return err
	}
	if !report.Extraction.Success {
		fmt.Fprintf(deps.Stderr, "error: %s\n", report.Extraction.Error)
		return distill.Errorf(distill.EORACLE, "extraction failed: %s", report.Extraction.Error)
	}
	return nil
}
