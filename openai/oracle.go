// Package openai implements distill.Oracle against any OpenAI-compatible
// chat completion endpoint, such as a local Ollama server.
package openai

import (
	"context"
	"strings"

	"github.com/fwojciec/distill"
	openai "github.com/sashabaranov/go-openai"
)

// DefaultBaseURL is the OpenAI-compatible endpoint of a local Ollama server.
const DefaultBaseURL = "http://localhost:11434/v1"

// Ensure Oracle implements distill.Oracle at compile time.
var _ distill.Oracle = (*Oracle)(nil)

// Oracle extracts information from content chunks with a chat completion model.
type Oracle struct {
	client *openai.Client
	config distill.OracleConfig
}

// NewClient creates a chat completion client for baseURL. Ollama ignores
// the API key but the client requires a non-empty one.
func NewClient(baseURL, apiKey string) *openai.Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if apiKey == "" {
		apiKey = "ollama"
	}
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimRight(baseURL, "/")
	return openai.NewClientWithConfig(cfg)
}

// NewOracle creates a new Oracle.
func NewOracle(client *openai.Client, config distill.OracleConfig) *Oracle {
	return &Oracle{client: client, config: config}
}

// Invoke asks the model to apply instructions to content.
func (o *Oracle) Invoke(ctx context.Context, content, instructions string) (string, error) {
	if o.client == nil {
		return "", distill.Errorf(distill.EINTERNAL, "openai client not configured")
	}
	if strings.TrimSpace(o.config.Model) == "" {
		return "", distill.Errorf(distill.EINVALID, "model required")
	}

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: distill.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: distill.BuildPrompt(content, instructions)},
		},
		Temperature: o.config.Temperature,
		N:           1,
	})
	if err != nil {
		return "", distill.Errorf(distill.EORACLE, "chat completion: %v", err)
	}
	if len(resp.Choices) == 0 {
		return "", distill.Errorf(distill.EORACLE, "chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
