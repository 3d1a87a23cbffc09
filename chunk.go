package distill

import (
	"strings"
	"unicode/utf8"
)

// DefaultChunkSize is the maximum chunk length, in characters, used when
// no positive size is configured.
const DefaultChunkSize = 6000

const (
	paragraphSep = "\n\n"
	sentenceSep  = " "
)

// Chunk is a contiguous slice of cleaned text submitted to the oracle on its own.
type Chunk struct {
	Index   int    `json:"index"`
	Total   int    `json:"total"`
	Content string `json:"content"`
}

// SplitChunks splits text into chunks of at most size characters along
// paragraph boundaries, falling back to sentence boundaries when the text is
// one giant paragraph. A single paragraph or sentence longer than size is
// emitted whole rather than truncated. Empty text yields no chunks.
func SplitChunks(text string, size int) []Chunk {
	if size <= 0 {
		size = DefaultChunkSize
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	if utf8.RuneCountInString(text) <= size {
		return number([]string{text})
	}

	parts := accumulate(splitParagraphs(text), paragraphSep, size)
	if len(parts) == 1 && utf8.RuneCountInString(parts[0]) > size {
		parts = accumulate(splitSentences(text), sentenceSep, size)
	}
	return number(parts)
}

// splitParagraphs returns the trimmed, non-empty blank-line separated units of text.
func splitParagraphs(text string) []string {
	var units []string
	for _, p := range strings.Split(text, "\n\n") {
		if p = strings.TrimSpace(p); p != "" {
			units = append(units, p)
		}
	}
	return units
}

// splitSentences splits text on ". " keeping the period on each sentence.
func splitSentences(text string) []string {
	raw := strings.Split(text, ". ")
	units := make([]string, 0, len(raw))
	for i, s := range raw {
		if i < len(raw)-1 {
			s += "."
		}
		if s = strings.TrimSpace(s); s != "" {
			units = append(units, s)
		}
	}
	return units
}

// accumulate greedily packs units into chunks joined by sep. A chunk is
// closed when the next unit would push it over size; a unit is never split.
func accumulate(units []string, sep string, size int) []string {
	var (
		chunks []string
		cur    strings.Builder
		curLen int
	)
	sepLen := utf8.RuneCountInString(sep)

	for _, u := range units {
		n := utf8.RuneCountInString(u)
		if curLen > 0 && curLen+sepLen+n > size {
			chunks = append(chunks, cur.String())
			cur.Reset()
			curLen = 0
		}
		if curLen > 0 {
			cur.WriteString(sep)
			curLen += sepLen
		}
		cur.WriteString(u)
		curLen += n
	}
	if curLen > 0 {
		chunks = append(chunks, cur.String())
	}
	return chunks
}

// number wraps trimmed, non-empty parts into indexed chunks.
func number(parts []string) []Chunk {
	chunks := make([]Chunk, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			chunks = append(chunks, Chunk{Content: p})
		}
	}
	for i := range chunks {
		chunks[i].Index = i
		chunks[i].Total = len(chunks)
	}
	return chunks
}
