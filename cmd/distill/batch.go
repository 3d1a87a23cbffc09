package main

import (
	"fmt"

	"github.com/fwojciec/distill"
)

// Run executes the batch command. Every URL is reported; the command
// fails only when no page could be retrieved.
func (c *BatchCmd) Run(deps *Dependencies) error {
	results := deps.Scraper.ScrapeAll(deps.Ctx, c.URLs, distill.ScrapeOptions{
		Mode:          deps.Mode,
		ExtractLinks:  c.Links,
		ExtractImages: c.Images,
	})
	for _, r := range results {
		deps.Stats.RecordScrape(r)
		r.RawContent = ""
	}

	if err := writeOutput(deps.Stdout, deps.Format, results); err != nil {
		return err
	}
	fmt.Fprintln(deps.Stderr, deps.Stats.Summary())

	if len(results) > 0 && deps.Stats.FailedScrapes == len(results) {
		return distill.Errorf(distill.EFETCH, "all %d pages failed", len(results))
	}
	return nil
}
