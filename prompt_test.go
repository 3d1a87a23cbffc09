package distill_test

import (
	"testing"

	"github.com/fwojciec/distill"
	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	t.Parallel()

	prompt := distill.BuildPrompt("Widget costs $10.", "  Extract all prices\n")

	assert.Contains(t, prompt, "CONTENT:\nWidget costs $10.")
	assert.Contains(t, prompt, "INSTRUCTIONS:\nExtract all prices\n")
	assert.Contains(t, prompt, `"No relevant data found"`)
	assert.NotContains(t, prompt, distill.SystemPrompt)
}
