package main

import (
	"github.com/fwojciec/distill"
)

// Run executes the analyze command.
func (c *AnalyzeCmd) Run(deps *Dependencies) error {
	result := deps.Scraper.Scrape(deps.Ctx, c.URL, distill.ScrapeOptions{Mode: deps.Mode})
	deps.Stats.RecordScrape(result)
	if !result.Success {
		return scrapeError(deps, result)
	}
	if result.DOMAnalysis == nil {
		return distill.Errorf(distill.EINTERNAL, "no DOM analysis available")
	}
	return writeOutput(deps.Stdout, deps.Format, result.DOMAnalysis)
}
