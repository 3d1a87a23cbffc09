package distill

// Content holds the main content of an HTML page.
type Content struct {
	// Title is the page title extracted from metadata.
	Title string

	// ContentHTML is the main content as clean HTML.
	// Boilerplate (nav, footer, sidebar, ads) has been removed.
	ContentHTML string
}

// ContentExtractor narrows a page down to its main content before cleaning.
type ContentExtractor interface {
	// Extract processes raw HTML and returns the main content.
	Extract(html string) (*Content, error)
}
