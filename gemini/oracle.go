// Package gemini implements distill.Oracle and distill.TokenCounter on top
// of the Google Gemini API.
package gemini

import (
	"context"

	"github.com/fwojciec/distill"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// Ensure Oracle implements distill.Oracle at compile time.
var _ distill.Oracle = (*Oracle)(nil)

// Oracle extracts information from content chunks using Gemini.
type Oracle struct {
	client *genai.Client
	config distill.OracleConfig
}

// NewOracle creates a new Oracle. An empty model selects DefaultModel.
func NewOracle(client *genai.Client, config distill.OracleConfig) *Oracle {
	if config.Model == "" {
		config.Model = DefaultModel
	}
	return &Oracle{client: client, config: config}
}

// Invoke asks the model to apply instructions to content.
func (o *Oracle) Invoke(ctx context.Context, content, instructions string) (string, error) {
	if o.client == nil {
		return "", distill.Errorf(distill.EINTERNAL, "gemini client not configured")
	}

	result, err := o.client.Models.GenerateContent(ctx, o.config.Model,
		[]*genai.Content{{
			Role:  "user",
			Parts: []*genai.Part{{Text: distill.BuildPrompt(content, instructions)}},
		}},
		BuildConfig(o.config.Temperature),
	)
	if err != nil {
		return "", distill.Errorf(distill.EORACLE, "gemini: %v", err)
	}
	if result == nil {
		return "", distill.Errorf(distill.EORACLE, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for extraction calls.
func BuildConfig(temperature float32) *genai.GenerateContentConfig {
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: distill.SystemPrompt}},
		},
		Temperature: &temperature,
	}
}
