// Command distill retrieves web pages, analyzes and cleans them, and
// extracts information from them with a language model.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/distill"
	"github.com/fwojciec/distill/extract"
	"github.com/fwojciec/distill/gemini"
	"github.com/fwojciec/distill/goquery"
	"github.com/fwojciec/distill/htmltomarkdown"
	distillhttp "github.com/fwojciec/distill/http"
	"github.com/fwojciec/distill/openai"
	"github.com/fwojciec/distill/readability"
	"github.com/fwojciec/distill/rod"
	"github.com/fwojciec/distill/scrape"
	distillslog "github.com/fwojciec/distill/slog"
	"github.com/fwojciec/distill/trafilatura"
	"google.golang.org/genai"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Default models per provider.
const (
	defaultOllamaModel = "llama3.2:1b"
	defaultOpenAIModel = "gpt-4o-mini"
	openAIBaseURL      = "https://api.openai.com/v1"
)

// Main represents the program.
type Main struct {
	// Collaborators for end-to-end testing. When nil, real implementations
	// are built from the parsed flags.
	StaticFetcher  distill.Fetcher
	BrowserFetcher distill.BrowserFetcher
	Oracle         distill.Oracle

	closers []io.Closer
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close releases fetchers opened by Run.
func (m *Main) Close() error {
	var firstErr error
	for _, c := range m.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Stats:  &distill.Stats{},
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("distill"),
		kong.Description("Retrieve web pages and extract information from them with a language model."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'distill --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level, err := distillslog.ParseLevel(cli.LogLevel)
	if err != nil {
		return err
	}
	deps.Logger = distillslog.NewLogger(stderr, level)
	deps.Format = cli.Format
	deps.Mode = cli.mode()

	defer m.Close()

	cmd := strings.Fields(kongCtx.Command())[0]
	switch cmd {
	case "scrape", "analyze", "batch", "extract":
		s := m.newScraper(cli, deps)
		if cmd == "batch" {
			s.MaxConcurrent = cli.Batch.Concurrency
		}
		deps.Scraper = s
	}

	switch cmd {
	case "extract", "health":
		oracle, err := m.newOracle(ctx, cli, deps)
		if err != nil {
			return err
		}
		deps.Extractor = m.newExtractor(cli, deps, oracle)
	case "info":
		deps.Extractor = m.newExtractor(cli, deps, nil)
	}

	return kongCtx.Run(deps)
}

// newScraper wires retrieval, cleaning and analysis from the flags.
func (m *Main) newScraper(cli *CLI, deps *Dependencies) *scrape.Scraper {
	static := m.StaticFetcher
	if static == nil {
		f := distillhttp.NewFetcher(distillhttp.WithTimeout(cli.Timeout))
		m.closers = append(m.closers, f)
		static = distillslog.NewLoggingFetcher(f, deps.Logger)
	}

	browser := m.BrowserFetcher
	if browser == nil && cli.Dynamic {
		f := rod.NewFetcher(rod.WithFetchTimeout(cli.Timeout))
		m.closers = append(m.closers, f)
		browser = distillslog.NewLoggingBrowserFetcher(f, deps.Logger)
	}

	media := goquery.NewMediaExtractor(deps.Logger)
	s := &scrape.Scraper{
		Static:   static,
		Browser:  browser,
		Cleaner:  goquery.NewCleaner(deps.Logger),
		Analyzer: goquery.NewAnalyzer(deps.Logger),
		Links:    media,
		Images:   media,
		Logger:   deps.Logger,
	}

	switch cli.MainContent {
	case "trafilatura":
		s.Content = trafilatura.NewExtractor()
	case "readability":
		s.Content = readability.NewExtractor()
	}
	if cli.Markdown {
		s.Converter = htmltomarkdown.NewConverter()
	}
	if cli.Retry {
		s.RetryDelays = scrape.DefaultRetryDelays()
	}
	if cli.RateLimit > 0 {
		s.RateLimiter = scrape.NewDomainLimiter(cli.RateLimit)
	}
	return s
}

// newOracle builds the model client for the selected provider.
func (m *Main) newOracle(ctx context.Context, cli *CLI, deps *Dependencies) (distill.Oracle, error) {
	if m.Oracle != nil {
		return m.Oracle, nil
	}

	var oracle distill.Oracle
	switch cli.Provider {
	case "gemini":
		if cli.APIKey == "" {
			fmt.Fprintln(deps.Stderr, "Hint: set GEMINI_API_KEY. Get a key at https://aistudio.google.com/apikey")
			return nil, distill.Errorf(distill.EINVALID, "GEMINI_API_KEY not set")
		}
		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  cli.APIKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			return nil, distill.Errorf(distill.EORACLE, "failed to connect to Gemini API: %v", err)
		}
		oracle = gemini.NewOracle(client, distill.OracleConfig{Model: modelFor(cli), Temperature: cli.Temperature})
	case "openai":
		baseURL := cli.BaseURL
		if baseURL == "" {
			baseURL = openAIBaseURL
		}
		oracle = openai.NewOracle(openai.NewClient(baseURL, cli.APIKey), distill.OracleConfig{Model: modelFor(cli), Temperature: cli.Temperature})
	default:
		oracle = openai.NewOracle(openai.NewClient(cli.BaseURL, cli.APIKey), distill.OracleConfig{Model: modelFor(cli), Temperature: cli.Temperature})
	}
	return distillslog.NewLoggingOracle(oracle, deps.Logger), nil
}

// newExtractor builds the extraction orchestrator. Token counting is only
// available for Gemini models, whose tokenizer runs locally.
func (m *Main) newExtractor(cli *CLI, deps *Dependencies, oracle distill.Oracle) *extract.Extractor {
	e := &extract.Extractor{
		Oracle:      oracle,
		ChunkSize:   cli.ChunkSize,
		Model:       modelFor(cli),
		Temperature: cli.Temperature,
		Logger:      deps.Logger,
	}
	if cli.Provider == "gemini" {
		if tc, err := gemini.NewTokenCounter(e.Model); err == nil {
			e.TokenCounter = tc
		} else {
			deps.Logger.Debug("token counting unavailable", "model", e.Model, "err", err)
		}
	}
	return e
}

// modelFor returns the configured model or the provider's default.
func modelFor(cli *CLI) string {
	if cli.Model != "" {
		return cli.Model
	}
	switch cli.Provider {
	case "gemini":
		return gemini.DefaultModel
	case "openai":
		return defaultOpenAIModel
	default:
		return defaultOllamaModel
	}
}
