//go:build integration

package gemini_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/distill"
	"github.com/fwojciec/distill/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestOracle_Integration_ExtractsPrice(t *testing.T) {
	t.Parallel()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	require.NoError(t, err)

	oracle := gemini.NewOracle(client, distill.OracleConfig{Temperature: 0.1})

	answer, err := oracle.Invoke(ctx, "The Acme widget costs $10 and ships in two days.", "Extract the price")

	require.NoError(t, err)
	assert.Contains(t, answer, "10")
}
