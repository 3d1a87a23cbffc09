package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/distill"
	"github.com/fwojciec/distill/extract"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Format    string
	Mode      distill.FetchMode
	Scraper   distill.Scraper
	Extractor *extract.Extractor
	Stats     *distill.Stats
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Globals

	Scrape  ScrapeCmd  `cmd:"" help:"Retrieve a page and print its cleaned content"`
	Extract ExtractCmd `cmd:"" help:"Retrieve a page and extract information from it"`
	Batch   BatchCmd   `cmd:"" help:"Retrieve several pages concurrently"`
	Analyze AnalyzeCmd `cmd:"" help:"Print the DOM structure analysis of a page"`
	Health  HealthCmd  `cmd:"" help:"Run a test extraction against the model"`
	Info    InfoCmd    `cmd:"" help:"Show the extraction configuration"`
}

// Globals are flags shared by every command.
type Globals struct {
	Format   string `short:"o" enum:"json,yaml,text" default:"json" help:"Output format (json, yaml, text)"`
	LogLevel string `default:"info" env:"DISTILL_LOG_LEVEL" help:"Log level (debug, info, warn, error)"`

	Provider    string  `enum:"ollama,openai,gemini" default:"ollama" env:"DISTILL_PROVIDER" help:"Model provider (ollama, openai, gemini)"`
	Model       string  `env:"DISTILL_MODEL" help:"Model name (default depends on provider)"`
	Temperature float32 `default:"0.1" env:"DISTILL_TEMPERATURE" help:"Sampling temperature"`
	ChunkSize   int     `default:"6000" env:"DISTILL_CHUNK_SIZE" help:"Maximum characters per chunk"`
	BaseURL     string  `env:"DISTILL_BASE_URL" help:"OpenAI-compatible endpoint"`
	APIKey      string  `env:"OPENAI_API_KEY,GEMINI_API_KEY" help:"API key for the provider"`

	Timeout     time.Duration `default:"30s" env:"DISTILL_TIMEOUT" help:"Per-page retrieval timeout"`
	Dynamic     bool          `short:"d" env:"DISTILL_DYNAMIC" help:"Render pages in a browser"`
	Headless    bool          `default:"true" negatable:"" env:"DISTILL_HEADLESS" help:"Run the browser without a window"`
	Settle      time.Duration `default:"2s" env:"DISTILL_SETTLE" help:"Wait after page load in dynamic mode"`
	MainContent string        `enum:"none,trafilatura,readability" default:"none" help:"Narrow pages to main content before cleaning (none, trafilatura, readability)"`
	Markdown    bool          `help:"Include a Markdown rendering of the page"`
	Retry       bool          `help:"Retry failed retrievals with backoff"`
	RateLimit   float64       `help:"Maximum requests per second per host (0 disables)"`
}

// mode returns the retrieval mode selected by the flags.
func (g *Globals) mode() distill.FetchMode {
	if g.Dynamic {
		return distill.Dynamic{SettleDelay: g.Settle, Headless: g.Headless}
	}
	return distill.Static{}
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL    string `arg:"" help:"Page URL"`
	Links  bool   `short:"l" help:"Extract links"`
	Images bool   `short:"i" help:"Extract images"`
	Raw    bool   `help:"Include the raw HTML"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL          string `arg:"" help:"Page URL"`
	Instructions string `arg:"" help:"What to extract, in plain language"`
	Links        bool   `short:"l" help:"Extract links"`
	Images       bool   `short:"i" help:"Extract images"`
	Raw          bool   `help:"Include the raw HTML"`
}

// BatchCmd is the "batch" subcommand.
type BatchCmd struct {
	URLs        []string `arg:"" name:"url" help:"Page URLs"`
	Concurrency int      `short:"c" default:"5" env:"DISTILL_MAX_CONCURRENT" help:"Concurrent retrieval limit"`
	Links       bool     `short:"l" help:"Extract links"`
	Images      bool     `short:"i" help:"Extract images"`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// HealthCmd is the "health" subcommand.
type HealthCmd struct{}

// InfoCmd is the "info" subcommand.
type InfoCmd struct{}
