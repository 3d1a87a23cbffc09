package main

import (
	"fmt"

	"github.com/fwojciec/distill"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	result := deps.Scraper.Scrape(deps.Ctx, c.URL, distill.ScrapeOptions{
		Mode:          deps.Mode,
		ExtractLinks:  c.Links,
		ExtractImages: c.Images,
	})
	deps.Stats.RecordScrape(result)
	if !c.Raw {
		result.RawContent = ""
	}

	if err := writeOutput(deps.Stdout, deps.Format, result); err != nil {
		return err
	}
	return scrapeError(deps, result)
}

// scrapeError reports a failed scrape on stderr and returns it as an error.
func scrapeError(deps *Dependencies, result *distill.ScrapeResult) error {
	if result.Success {
		return nil
	}
	fmt.Fprintf(deps.Stderr, "error: %s\n", result.Error)
	return distill.Errorf(distill.EFETCH, "scrape %s: %s", result.URL, result.Error)
}
