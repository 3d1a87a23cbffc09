// Package extract runs natural-language extraction over cleaned page text.
// It splits the text into chunks, asks an oracle about each chunk in turn,
// and merges the answers into one ExtractionResult.
package extract

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/fwojciec/distill"
	"github.com/google/uuid"
)

// Default oracle settings.
const (
	DefaultModel       = "llama3.2:1b"
	DefaultTemperature = 0.1
)

// Extractor orchestrates chunked extraction against an Oracle.
type Extractor struct {
	Oracle       distill.Oracle
	ChunkSize    int
	Model        string
	Temperature  float32
	Logger       *slog.Logger
	TokenCounter distill.TokenCounter

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Extract runs the extraction described by req. It never returns nil and
// never panics: every failure is reported on the result.
func (e *Extractor) Extract(ctx context.Context, req *distill.ExtractionRequest) (result *distill.ExtractionResult) {
	begin := e.now()
	result = &distill.ExtractionResult{
		ID:        uuid.NewString(),
		ModelUsed: e.model(),
	}
	defer func() {
		if r := recover(); r != nil {
			e.logger().Error("extraction pipeline panicked", "id", result.ID, "panic", r)
			result.Success = false
			result.Confidence = 0
			result.Error = distill.ErrorMessage(distill.Errorf(distill.EINTERNAL, "extraction failed: %v", r))
		}
		result.ProcessingTime = e.now().Sub(begin)
	}()

	if req == nil {
		result.Error = "no extraction request provided"
		return result
	}
	if err := req.Validate(); err != nil {
		result.Error = distill.ErrorMessage(err)
		return result
	}
	if e.Oracle == nil {
		result.Error = distill.ErrorMessage(distill.Errorf(distill.EINTERNAL, "no oracle configured"))
		return result
	}

	size := e.chunkSize()
	result.Metadata = map[string]any{
		"content_length": len([]rune(req.Content)),
		"chunk_size":     size,
		"temperature":    e.Temperature,
	}
	if e.TokenCounter != nil {
		if n, err := e.TokenCounter.CountTokens(ctx, req.Content); err == nil {
			result.Metadata["content_tokens"] = n
		} else {
			e.logger().Warn("token count failed", "id", result.ID, "err", err)
		}
	}

	chunks := distill.SplitChunks(req.Content, size)
	e.logger().Debug("extraction started", "id", result.ID, "chunks", len(chunks), "model", result.ModelUsed)

	outputs := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if err := ctx.Err(); err != nil {
			result.Error = distill.ErrorMessage(distill.Errorf(distill.ECANCELED, "extraction canceled: %v", err))
			break
		}

		cr := e.invoke(ctx, chunk, req.Instructions)
		result.ChunksProcessed++
		switch cr.Status {
		case distill.ChunkSucceeded:
			result.SuccessfulChunks++
			outputs = append(outputs, cr.RawOutput)
		case distill.ChunkEmpty:
			result.EmptyChunks++
		case distill.ChunkFailed:
			result.FailedChunks++
			result.Metadata["last_chunk_error"] = distill.ErrorMessage(cr.Err)
			e.logger().Warn("chunk extraction failed",
				"id", result.ID,
				"chunk", chunk.Index+1,
				"total", chunk.Total,
				"err", cr.Err,
			)
		}
	}

	result.Content = distill.Aggregate(outputs)
	result.Confidence = distill.Confidence(result.SuccessfulChunks, result.ChunksProcessed)
	result.Success = result.Error == ""
	return result
}

// invoke calls the oracle for one chunk, recovering errors and panics into
// a failed ChunkResult.
func (e *Extractor) invoke(ctx context.Context, chunk distill.Chunk, instructions string) (cr distill.ChunkResult) {
	defer func() {
		if r := recover(); r != nil {
			cr = distill.ChunkResult{
				ChunkIndex: chunk.Index,
				Status:     distill.ChunkFailed,
				Err:        distill.Errorf(distill.EORACLE, "oracle panicked: %v", r),
			}
		}
	}()

	output, err := e.Oracle.Invoke(ctx, chunk.Content, instructions)
	if err != nil {
		var appErr *distill.Error
		if !errors.As(err, &appErr) {
			err = distill.Errorf(distill.EORACLE, "chunk %d: %v", chunk.Index+1, err)
		}
		return distill.ChunkResult{ChunkIndex: chunk.Index, Status: distill.ChunkFailed, Err: err}
	}
	return distill.NewChunkResult(chunk.Index, output)
}

func (e *Extractor) now() time.Time {
	if e.Now != nil {
		return e.Now()
	}
	return time.Now()
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (e *Extractor) model() string {
	if strings.TrimSpace(e.Model) == "" {
		return DefaultModel
	}
	return e.Model
}

func (e *Extractor) chunkSize() int {
	if e.ChunkSize <= 0 {
		return distill.DefaultChunkSize
	}
	return e.ChunkSize
}
