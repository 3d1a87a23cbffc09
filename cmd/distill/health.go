package main

import (
	"fmt"

	"github.com/fwojciec/distill"
	"github.com/fwojciec/distill/extract"
)

// Run executes the health command.
func (c *HealthCmd) Run(deps *Dependencies) error {
	h := deps.Extractor.HealthCheck(deps.Ctx)
	if err := writeOutput(deps.Stdout, deps.Format, h); err != nil {
		return err
	}
	if h.Status != extract.StatusHealthy {
		fmt.Fprintf(deps.Stderr, "error: %s\n", h.Error)
		return distill.Errorf(distill.EORACLE, "model unhealthy: %s", h.Error)
	}
	return nil
}

// Run executes the info command.
func (c *InfoCmd) Run(deps *Dependencies) error {
	return writeOutput(deps.Stdout, deps.Format, deps.Extractor.Info())
}
