package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/fwojciec/distill"
	main "github.com/fwojciec/distill/cmd/distill"
	"github.com/fwojciec/distill/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const productPage = `<html><head><title>Shop</title></head><body>
<nav>Menu</nav>
<h1>Products</h1>
<p>Widget costs $10.</p>
<p>Gadget costs $25.</p>
<a href="/cart">Cart</a>
</body></html>`

func pageFetcher(pages map[string]string) *mock.Fetcher {
	return &mock.Fetcher{
		FetchFn: func(_ context.Context, url string) (string, error) {
			if html, ok := pages[url]; ok {
				return html, nil
			}
			return "", distill.Errorf(distill.EFETCH, "HTTP 404 for %s", url)
		},
		CloseFn: func() error { return nil },
	}
}

func TestMain_Run_Scrape(t *testing.T) {
	t.Parallel()

	t.Run("prints the cleaned page as JSON", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.StaticFetcher = pageFetcher(map[string]string{"https://shop.test/": productPage})
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"scrape", "--links", "https://shop.test/"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, true, got["success"])
		assert.Equal(t, "Shop", got["title"])
		assert.Equal(t, "static", got["method"])
		assert.Equal(t, "Shop\nProducts\nWidget costs $10.\nGadget costs $25.\nCart", got["content"])
		assert.NotContains(t, got, "raw_content")
		assert.Len(t, got["extracted_links"], 1)
		assert.Contains(t, got, "processing_time")
	})

	t.Run("prints YAML", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.StaticFetcher = pageFetcher(map[string]string{"https://shop.test/": productPage})
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"-o", "yaml", "scrape", "https://shop.test/"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, "Shop", got["title"])
		assert.Contains(t, stdout.String(), "method: static")
	})

	t.Run("reports failures on stderr and returns an error", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.StaticFetcher = pageFetcher(nil)
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"scrape", "https://shop.test/missing"}, stdout, stderr)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "error: HTTP 404")
		assert.Contains(t, stdout.String(), `"method": "none"`)
	})

	t.Run("uses the browser in dynamic mode", func(t *testing.T) {
		t.Parallel()

		var mode distill.Dynamic
		m := main.NewMain()
		m.StaticFetcher = pageFetcher(nil)
		m.BrowserFetcher = &mock.BrowserFetcher{
			FetchRenderedFn: func(_ context.Context, _ string, d distill.Dynamic) (string, error) {
				mode = d
				return "<p>rendered</p>", nil
			},
			CloseFn: func() error { return nil },
		}
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--dynamic", "--no-headless", "--settle", "500ms", "-o", "text", "scrape", "https://app.test/"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.False(t, mode.Headless)
		assert.Equal(t, "500ms", mode.SettleDelay.String())
		assert.Contains(t, stdout.String(), "method: dynamic")
		assert.Contains(t, stdout.String(), "rendered")
	})
}

func TestMain_Run_Extract(t *testing.T) {
	t.Parallel()

	t.Run("merges scrape and extraction into one report", func(t *testing.T) {
		t.Parallel()

		oracle := &mock.ScriptedOracle{Replies: []mock.OracleReply{{Output: "Widget: $10\nGadget: $25"}}}
		m := main.NewMain()
		m.StaticFetcher = pageFetcher(map[string]string{"https://shop.test/": productPage})
		m.Oracle = oracle
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--model", "test-model", "extract", "https://shop.test/", "Extract all prices"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		var got struct {
			Scrape     map[string]any `json:"scrape"`
			Extraction map[string]any `json:"extraction"`
		}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, true, got.Scrape["success"])
		assert.Equal(t, true, got.Extraction["success"])
		assert.Equal(t, "Widget: $10\nGadget: $25", got.Extraction["content"])
		assert.Equal(t, "test-model", got.Extraction["model_used"])
		assert.InDelta(t, 1.0, got.Extraction["confidence"], 0.001)
		require.Len(t, oracle.Calls(), 1)
		assert.Contains(t, oracle.Calls()[0], "Widget costs $10.")
	})

	t.Run("includes links and images in the report when asked", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.StaticFetcher = pageFetcher(map[string]string{
			"https://shop.test/": productPage + `<img src="/widget.png" alt="Widget">`,
		})
		m.Oracle = &mock.ScriptedOracle{Replies: []mock.OracleReply{{Output: "Widget: $10"}}}
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"extract", "--links", "--images", "https://shop.test/", "Extract prices"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		var got struct {
			Scrape struct {
				Links  []distill.LinkRecord  `json:"extracted_links"`
				Images []distill.ImageRecord `json:"extracted_images"`
			} `json:"scrape"`
		}
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		require.Len(t, got.Scrape.Links, 1)
		assert.Equal(t, "/cart", got.Scrape.Links[0].Href)
		require.Len(t, got.Scrape.Images, 1)
		assert.Equal(t, "/widget.png", got.Scrape.Images[0].Src)
	})

	t.Run("skips extraction when the page cannot be retrieved", func(t *testing.T) {
		t.Parallel()

		oracle := &mock.ScriptedOracle{}
		m := main.NewMain()
		m.StaticFetcher = pageFetcher(nil)
		m.Oracle = oracle
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"extract", "https://shop.test/gone", "Extract prices"}, stdout, &bytes.Buffer{})

		require.Error(t, err)
		assert.Empty(t, oracle.Calls())
		assert.NotContains(t, stdout.String(), `"extraction"`)
	})

	t.Run("splits long pages into chunks", func(t *testing.T) {
		t.Parallel()

		var body strings.Builder
		body.WriteString("<html><body>")
		for range 40 {
			body.WriteString("<p>Widget costs ten dollars. Gadget costs twenty dollars.</p>")
		}
		body.WriteString("</body></html>")

		oracle := &mock.ScriptedOracle{Replies: []mock.OracleReply{
			{Output: "Widget: $10"},
			{Err: errors.New("model overloaded")},
			{Output: "Widget: $10"},
		}}
		m := main.NewMain()
		m.StaticFetcher = pageFetcher(map[string]string{"https://shop.test/": body.String()})
		m.Oracle = oracle
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"--chunk-size", "1000", "-o", "text", "extract", "https://shop.test/", "Extract prices"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		assert.Len(t, oracle.Calls(), 3)
		assert.Contains(t, stdout.String(), "chunks=3 succeeded=2 empty=0 failed=1 confidence=0.67")
	})
}

func TestMain_Run_Batch(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.StaticFetcher = pageFetcher(map[string]string{
		"https://a.test/": "<p>A</p>",
		"https://b.test/": "<p>B</p>",
	})
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"batch", "-c", "2", "https://a.test/", "https://missing.test/", "https://b.test/"}, stdout, stderr)

	require.NoError(t, err)
	var got []map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "A", got[0]["content"])
	assert.Equal(t, false, got[1]["success"])
	assert.Equal(t, "B", got[2]["content"])
	assert.Contains(t, stderr.String(), "scrapes=3 failed=1")
}

func TestMain_Run_Analyze(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	m.StaticFetcher = pageFetcher(map[string]string{"https://shop.test/": productPage})
	stdout := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"-o", "text", "analyze", "https://shop.test/"}, stdout, &bytes.Buffer{})

	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "title: Shop")
	assert.Contains(t, stdout.String(), "h1: 1")
	assert.Contains(t, stdout.String(), "paragraphs: 2")
	assert.Contains(t, stdout.String(), "structure: fair")
}

func TestMain_Run_HealthAndInfo(t *testing.T) {
	t.Parallel()

	t.Run("health is healthy when the model answers", func(t *testing.T) {
		t.Parallel()

		m := main.NewMain()
		m.Oracle = &mock.ScriptedOracle{Replies: []mock.OracleReply{{Output: "Test content"}}}
		stdout := &bytes.Buffer{}

		err := m.Run(context.Background(), []string{"health"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, "healthy", got["status"])
		assert.Equal(t, "llama3.2:1b", got["model"])
	})

	t.Run("info reports configuration", func(t *testing.T) {
		t.Parallel()

		stdout := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"--provider", "openai", "--chunk-size", "3000", "info"}, stdout, &bytes.Buffer{})

		require.NoError(t, err)
		var got map[string]any
		require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))
		assert.Equal(t, "gpt-4o-mini", got["model"])
		assert.InDelta(t, 3000, got["chunk_size"], 0)
		assert.Equal(t, "operational", got["status"])
	})

	t.Run("gemini without a key is rejected", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}

		err := main.NewMain().Run(context.Background(), []string{"--provider", "gemini", "--api-key", "", "health"}, &bytes.Buffer{}, stderr)

		require.Error(t, err)
		assert.Equal(t, distill.EINVALID, distill.ErrorCode(err))
	})
}
