package distill

// Cleaner reduces raw HTML to whitespace-normalized plain text.
type Cleaner interface {
	// Clean strips non-content markup and returns one line per text block.
	// It never fails: implementations return the input unchanged when
	// the HTML cannot be processed.
	Clean(html string) string
}
