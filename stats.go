package distill

import (
	"fmt"
	"time"
)

// Stats accumulates totals across calls. It is owned by the caller and is
// not safe for concurrent use; update it after each call returns.
type Stats struct {
	Scrapes               int
	FailedScrapes         int
	Extractions           int
	SuccessfulExtractions int
	ChunksProcessed       int
	SuccessfulChunks      int
	ProcessingTime        time.Duration
}

// RecordScrape adds a scrape outcome to the totals.
func (s *Stats) RecordScrape(r *ScrapeResult) {
	if r == nil {
		return
	}
	s.Scrapes++
	if !r.Success {
		s.FailedScrapes++
	}
	s.ProcessingTime += r.ProcessingTime
}

// RecordExtraction adds an extraction outcome to the totals.
func (s *Stats) RecordExtraction(r *ExtractionResult) {
	if r == nil {
		return
	}
	s.Extractions++
	if r.Success {
		s.SuccessfulExtractions++
	}
	s.ChunksProcessed += r.ChunksProcessed
	s.SuccessfulChunks += r.SuccessfulChunks
	s.ProcessingTime += r.ProcessingTime
}

// Confidence returns the chunk success ratio across all recorded extractions.
func (s *Stats) Confidence() float64 {
	return Confidence(s.SuccessfulChunks, s.ChunksProcessed)
}

// Summary formats the totals on one line.
func (s *Stats) Summary() string {
	return fmt.Sprintf("scrapes=%d failed=%d extractions=%d succeeded=%d confidence=%.2f time=%s",
		s.Scrapes, s.FailedScrapes, s.Extractions, s.SuccessfulExtractions,
		s.Confidence(), s.ProcessingTime.Round(time.Millisecond))
}
