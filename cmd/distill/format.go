package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fwojciec/distill"
	"github.com/fwojciec/distill/extract"
	"gopkg.in/yaml.v3"
)

// writeOutput renders v to w in the requested format.
func writeOutput(w io.Writer, format string, v any) error {
	var (
		out []byte
		err error
	)
	switch format {
	case "yaml":
		out, err = toYAML(v)
	case "text":
		out = []byte(toText(v))
	default:
		out, err = json.MarshalIndent(v, "", "  ")
		out = append(out, '\n')
	}
	if err != nil {
		return distill.Errorf(distill.EINTERNAL, "format %s: %v", format, err)
	}
	_, err = w.Write(out)
	return err
}

// toYAML renders v as block-style YAML using its JSON field names.
func toYAML(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	blockStyle(&node)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// blockStyle clears the flow and quoting styles JSON input leaves behind.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

func toText(v any) string {
	switch v := v.(type) {
	case *distill.ScrapeResult:
		return distill.FormatScrapeResult(v)
	case []*distill.ScrapeResult:
		parts := make([]string, 0, len(v))
		for _, r := range v {
			parts = append(parts, distill.FormatScrapeResult(r))
		}
		return strings.Join(parts, "\n")
	case *distill.Report:
		return distill.FormatReport(v)
	case *distill.DOMAnalysis:
		return formatAnalysis(v)
	case extract.ServiceInfo:
		return fmt.Sprintf("model: %s\ntemperature: %.2f\nchunk_size: %d\nstatus: %s\nfeatures: %s\n",
			v.Model, v.Temperature, v.ChunkSize, v.Status, strings.Join(v.Features, ", "))
	case extract.Health:
		s := fmt.Sprintf("status: %s\nmodel: %s\nresponse_time: %.2fs\n", v.Status, v.Model, v.ResponseTime.Seconds())
		if v.Error != "" {
			s += "error: " + v.Error + "\n"
		}
		return s
	default:
		return fmt.Sprintf("%v\n", v)
	}
}

func formatAnalysis(a *distill.DOMAnalysis) string {
	var sb strings.Builder
	if a.Title != "" {
		fmt.Fprintf(&sb, "title: %s\n", a.Title)
	}
	fmt.Fprintf(&sb, "structure: %s\nelements: %d\n", a.StructureQuality, a.TotalElements)

	levels := make([]string, 0, len(a.Headings))
	for h := range a.Headings {
		levels = append(levels, h)
	}
	sort.Strings(levels)
	for _, h := range levels {
		if a.Headings[h] > 0 {
			fmt.Fprintf(&sb, "%s: %d\n", h, a.Headings[h])
		}
	}

	fmt.Fprintf(&sb, "paragraphs: %d\nlinks: %d\nimages: %d\ntables: %d\nforms: %d\nlists: %d\ndivs: %d\n",
		a.Paragraphs, a.Links, a.Images, a.Tables, a.Forms, a.Lists, a.Divs)
	fmt.Fprintf(&sb, "words: %d\n", a.WordCount)
	if a.Error != "" {
		fmt.Fprintf(&sb, "error: %s\n", a.Error)
	}
	return sb.String()
}
