package extract_test

import (
	"context"
	"errors"
	"testing"

	"github.com/fwojciec/distill"
	"github.com/fwojciec/distill/extract"
	"github.com/fwojciec/distill/mock"
	"github.com/stretchr/testify/assert"
)

func TestExtractor_Info(t *testing.T) {
	t.Parallel()

	e := &extract.Extractor{Model: "m", Temperature: 0.1, ChunkSize: 100}

	info := e.Info()

	assert.Equal(t, "m", info.Model)
	assert.Equal(t, float32(0.1), info.Temperature)
	assert.Equal(t, 100, info.ChunkSize)
	assert.Equal(t, "operational", info.Status)
	assert.Equal(t, extract.Features, info.Features)
}

func TestExtractor_HealthCheck(t *testing.T) {
	t.Parallel()

	t.Run("healthy when the oracle answers", func(t *testing.T) {
		t.Parallel()

		oracle := &mock.ScriptedOracle{Replies: []mock.OracleReply{{Output: "Test content"}}}
		e := &extract.Extractor{Oracle: oracle}

		h := e.HealthCheck(context.Background())

		assert.Equal(t, extract.StatusHealthy, h.Status)
		assert.Empty(t, h.Error)
		assert.Equal(t, []string{"Test content for health check"}, oracle.Calls())
		assert.False(t, h.Timestamp.IsZero())
	})

	t.Run("degraded when the model is unreachable", func(t *testing.T) {
		t.Parallel()

		e := &extract.Extractor{Oracle: distill.OracleFunc(func(context.Context, string, string) (string, error) {
			return "", errors.New("connection refused")
		})}

		h := e.HealthCheck(context.Background())

		assert.Equal(t, extract.StatusDegraded, h.Status)
		assert.Contains(t, h.Error, "connection refused")
	})

	t.Run("degraded when extraction cannot run", func(t *testing.T) {
		t.Parallel()

		e := &extract.Extractor{}

		h := e.HealthCheck(context.Background())

		assert.Equal(t, extract.StatusDegraded, h.Status)
		assert.NotEmpty(t, h.Error)
	})
}
