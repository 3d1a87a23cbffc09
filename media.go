package distill

// LinkRecord is an anchor element found in a page.
type LinkRecord struct {
	Text  string `json:"text"`
	Href  string `json:"href"`
	Title string `json:"title,omitempty"`
}

// ImageRecord is an image element found in a page. Width and Height hold
// the raw attribute values.
type ImageRecord struct {
	Src    string `json:"src"`
	Alt    string `json:"alt,omitempty"`
	Title  string `json:"title,omitempty"`
	Width  string `json:"width,omitempty"`
	Height string `json:"height,omitempty"`
}

// LinkExtractor pulls anchors out of raw HTML.
type LinkExtractor interface {
	// ExtractLinks returns anchors with both an href and visible text,
	// in document order. Returns an empty slice on error.
	ExtractLinks(html string) []LinkRecord
}

// ImageExtractor pulls images out of raw HTML.
type ImageExtractor interface {
	// ExtractImages returns images with a src, in document order.
	// Returns an empty slice on error.
	ExtractImages(html string) []ImageRecord
}
