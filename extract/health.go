package extract

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fwojciec/distill"
)

// Health statuses reported by HealthCheck.
const (
	StatusHealthy  = "healthy"
	StatusDegraded = "degraded"
)

// Features lists the capabilities reported by Info.
var Features = []string{
	"static retrieval",
	"dynamic retrieval",
	"dom analysis",
	"link extraction",
	"image extraction",
	"chunked extraction",
}

// ServiceInfo describes the extractor configuration.
type ServiceInfo struct {
	Model       string   `json:"model"`
	Temperature float32  `json:"temperature"`
	ChunkSize   int      `json:"chunk_size"`
	Status      string   `json:"status"`
	Features    []string `json:"features"`
}

// Health is the outcome of a live extraction round-trip.
type Health struct {
	Status       string        `json:"status"`
	Model        string        `json:"model"`
	ResponseTime time.Duration `json:"-"`
	Timestamp    time.Time     `json:"timestamp"`
	Error        string        `json:"error,omitempty"`
}

// MarshalJSON encodes the health with response_time in seconds.
func (h Health) MarshalJSON() ([]byte, error) {
	type health Health
	return json.Marshal(struct {
		health
		ResponseTime float64 `json:"response_time"`
	}{
		health:       health(h),
		ResponseTime: h.ResponseTime.Seconds(),
	})
}

// Info returns the extractor configuration.
func (e *Extractor) Info() ServiceInfo {
	return ServiceInfo{
		Model:       e.model(),
		Temperature: e.Temperature,
		ChunkSize:   e.chunkSize(),
		Status:      "operational",
		Features:    append([]string(nil), Features...),
	}
}

// HealthCheck runs a small extraction through the oracle and reports
// healthy when it succeeds with no failed chunks.
func (e *Extractor) HealthCheck(ctx context.Context) Health {
	begin := e.now()
	result := e.Extract(ctx, &distill.ExtractionRequest{
		Content:      "Test content for health check",
		Instructions: "Extract any text",
	})

	h := Health{
		Status:       StatusHealthy,
		Model:        result.ModelUsed,
		ResponseTime: e.now().Sub(begin),
		Timestamp:    begin,
	}
	switch {
	case !result.Success:
		h.Status = StatusDegraded
		h.Error = result.Error
	case result.FailedChunks > 0:
		h.Status = StatusDegraded
		h.Error, _ = result.Metadata["last_chunk_error"].(string)
	}
	return h
}
