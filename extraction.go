package distill

import (
	"encoding/json"
	"strings"
	"time"
)

// NoRelevantData is the aggregate content reported when no chunk produced
// usable output. Oracles are also prompted to answer with it when a chunk
// holds nothing matching the instructions.
const NoRelevantData = "No relevant data found"

// ExtractionRequest pairs page content with a natural-language description
// of what to extract from it.
type ExtractionRequest struct {
	Content      string `json:"content"`
	Instructions string `json:"instructions"`
}

// Validate returns an error if the request cannot be attempted.
func (r *ExtractionRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return Errorf(EINVALID, "empty content provided")
	}
	if strings.TrimSpace(r.Instructions) == "" {
		return Errorf(EINVALID, "no extraction instructions provided")
	}
	return nil
}

// ChunkStatus classifies the outcome of a single oracle call.
type ChunkStatus string

// ChunkStatus values.
const (
	// ChunkSucceeded means the oracle returned usable content.
	ChunkSucceeded ChunkStatus = "succeeded"
	// ChunkEmpty means the oracle answered but found nothing relevant.
	ChunkEmpty ChunkStatus = "empty"
	// ChunkFailed means the oracle call returned an error or panicked.
	ChunkFailed ChunkStatus = "failed"
)

// ChunkResult is the oracle outcome for one chunk.
type ChunkResult struct {
	ChunkIndex int         `json:"chunk_index"`
	RawOutput  string      `json:"raw_output"`
	Status     ChunkStatus `json:"status"`
	Err        error       `json:"-"`
}

// Succeeded reports whether the chunk contributed extracted content.
func (r ChunkResult) Succeeded() bool {
	return r.Status == ChunkSucceeded
}

// NewChunkResult classifies raw oracle output for the chunk at index.
func NewChunkResult(index int, output string) ChunkResult {
	output = strings.TrimSpace(output)
	status := ChunkSucceeded
	if IsNoData(output) {
		status = ChunkEmpty
	}
	return ChunkResult{ChunkIndex: index, RawOutput: output, Status: status}
}

// IsNoData reports whether an oracle answer carries no extracted content:
// blank output or a variant of the NoRelevantData sentinel.
func IsNoData(output string) bool {
	s := strings.Trim(strings.TrimSpace(output), `."'`)
	return s == "" || strings.EqualFold(s, NoRelevantData)
}

// ExtractionResult is the caller-facing outcome of an extraction. It is
// returned for every call, including failed ones.
type ExtractionResult struct {
	ID               string         `json:"id"`
	Success          bool           `json:"success"`
	Content          string         `json:"content"`
	Confidence       float64        `json:"confidence"`
	ProcessingTime   time.Duration  `json:"-"`
	ChunksProcessed  int            `json:"chunks_processed"`
	SuccessfulChunks int            `json:"successful_chunks"`
	EmptyChunks      int            `json:"empty_chunks"`
	FailedChunks     int            `json:"failed_chunks"`
	ModelUsed        string         `json:"model_used"`
	Metadata         map[string]any `json:"metadata,omitempty"`
	Error            string         `json:"error,omitempty"`
}

// MarshalJSON encodes the result with processing_time in seconds.
func (r *ExtractionResult) MarshalJSON() ([]byte, error) {
	type result ExtractionResult
	return json.Marshal(&struct {
		*result
		ProcessingTime float64 `json:"processing_time"`
	}{
		result:         (*result)(r),
		ProcessingTime: r.ProcessingTime.Seconds(),
	})
}

// Aggregate combines chunk outputs into one answer. Blank and no-data
// outputs are dropped, exact duplicates are removed keeping the first
// occurrence, and the survivors are joined by a blank line. Returns
// NoRelevantData when nothing survives.
func Aggregate(outputs []string) string {
	seen := make(map[string]struct{}, len(outputs))
	unique := make([]string, 0, len(outputs))
	for _, out := range outputs {
		if IsNoData(out) {
			continue
		}
		if _, ok := seen[out]; ok {
			continue
		}
		seen[out] = struct{}{}
		unique = append(unique, out)
	}

	if len(unique) == 0 {
		return NoRelevantData
	}
	return strings.Join(unique, "\n\n")
}

// Confidence returns the fraction of processed chunks that succeeded,
// or 0 when nothing was processed.
func Confidence(successful, processed int) float64 {
	if processed <= 0 {
		return 0
	}
	return float64(successful) / float64(processed)
}
