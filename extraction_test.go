package distill_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fwojciec/distill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractionRequest_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts content and instructions", func(t *testing.T) {
		t.Parallel()

		req := &distill.ExtractionRequest{Content: "page", Instructions: "find prices"}

		assert.NoError(t, req.Validate())
	})

	t.Run("rejects blank content", func(t *testing.T) {
		t.Parallel()

		req := &distill.ExtractionRequest{Content: "  \n", Instructions: "find prices"}

		err := req.Validate()

		require.Error(t, err)
		assert.Equal(t, distill.EINVALID, distill.ErrorCode(err))
		assert.Contains(t, distill.ErrorMessage(err), "empty content")
	})

	t.Run("rejects blank instructions", func(t *testing.T) {
		t.Parallel()

		req := &distill.ExtractionRequest{Content: "page", Instructions: "\t"}

		err := req.Validate()

		require.Error(t, err)
		assert.Equal(t, distill.EINVALID, distill.ErrorCode(err))
		assert.Contains(t, distill.ErrorMessage(err), "instructions")
	})
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	t.Run("drops empty output and exact duplicates", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "A\n\nB", distill.Aggregate([]string{"A", "B", "A", ""}))
	})

	t.Run("returns sentinel when every output is empty", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, distill.NoRelevantData, distill.Aggregate([]string{"", "", ""}))
	})

	t.Run("returns sentinel for no outputs", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, distill.NoRelevantData, distill.Aggregate(nil))
	})

	t.Run("preserves first occurrence order", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "C\n\nA\n\nB", distill.Aggregate([]string{"C", "A", "C", "B", "A"}))
	})

	t.Run("drops no-data answers", func(t *testing.T) {
		t.Parallel()

		got := distill.Aggregate([]string{"No relevant data found.", "Price: $10", "no relevant data found"})

		assert.Equal(t, "Price: $10", got)
	})

	t.Run("keeps near duplicates", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "A\n\nA.", distill.Aggregate([]string{"A", "A."}))
	})
}

func TestConfidence(t *testing.T) {
	t.Parallel()

	assert.Zero(t, distill.Confidence(0, 0))
	assert.Zero(t, distill.Confidence(0, 3))
	assert.InDelta(t, 0.667, distill.Confidence(2, 3), 0.001)
	assert.Equal(t, 1.0, distill.Confidence(3, 3))
}

func TestIsNoData(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "  ", "No relevant data found", "no relevant data found.", `"No relevant data found"`} {
		assert.True(t, distill.IsNoData(s), "%q", s)
	}
	for _, s := range []string{"A", "No relevant data found except the price $10"} {
		assert.False(t, distill.IsNoData(s), "%q", s)
	}
}

func TestNewChunkResult(t *testing.T) {
	t.Parallel()

	t.Run("trims and marks content as succeeded", func(t *testing.T) {
		t.Parallel()

		r := distill.NewChunkResult(1, "  Price: $10\n")

		assert.Equal(t, 1, r.ChunkIndex)
		assert.Equal(t, "Price: $10", r.RawOutput)
		assert.True(t, r.Succeeded())
	})

	t.Run("marks sentinel answers as empty", func(t *testing.T) {
		t.Parallel()

		r := distill.NewChunkResult(0, "No relevant data found")

		assert.Equal(t, distill.ChunkEmpty, r.Status)
		assert.False(t, r.Succeeded())
	})
}

func TestExtractionResult_MarshalJSON(t *testing.T) {
	t.Parallel()

	r := &distill.ExtractionResult{
		Success:          true,
		Content:          "A",
		Confidence:       0.5,
		ProcessingTime:   1500 * time.Millisecond,
		ChunksProcessed:  2,
		SuccessfulChunks: 1,
		ModelUsed:        "llama3.2:1b",
	}

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.InDelta(t, 1.5, got["processing_time"], 0.0001)
	assert.Equal(t, "llama3.2:1b", got["model_used"])
	assert.EqualValues(t, 2, got["chunks_processed"])
	assert.NotContains(t, got, "error")
}
