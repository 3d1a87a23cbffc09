package distill

// MaxInventory caps the class and id name lists of a DOMAnalysis.
const MaxInventory = 50

// StructureQuality is a coarse grade of how semantically rich a page's markup is.
type StructureQuality string

// StructureQuality grades, from worst to best.
const (
	QualityPoor      StructureQuality = "poor"
	QualityFair      StructureQuality = "fair"
	QualityGood      StructureQuality = "good"
	QualityExcellent StructureQuality = "excellent"
)

// DOMAnalysis holds structural statistics of a raw HTML page.
// TotalElements counts the elements written in the source, not those the
// HTML parser implies.
type DOMAnalysis struct {
	Title         string         `json:"title,omitempty"`
	TotalElements int            `json:"total_elements"`
	Headings      map[string]int `json:"headings"`
	Links         int            `json:"links"`
	Images        int            `json:"images"`
	Forms         int            `json:"forms"`
	Tables        int            `json:"tables"`
	Divs          int            `json:"divs"`
	Paragraphs    int            `json:"paragraphs"`
	Lists         int            `json:"lists"`
	Scripts       int            `json:"scripts"`
	Styles        int            `json:"styles"`

	// Unique names, sorted and capped at MaxInventory.
	Classes []string `json:"classes"`
	IDs     []string `json:"ids"`

	TextLength       int              `json:"text_length"`
	WordCount        int              `json:"word_count"`
	StructureQuality StructureQuality `json:"structure_quality,omitempty"`

	// Error is set when the analysis could not be completed.
	Error string `json:"error,omitempty"`
}

// Analyzer inspects raw HTML without modifying it.
type Analyzer interface {
	// Analyze never fails; on internal errors it returns a zero-count
	// analysis with Error set.
	Analyze(html string) *DOMAnalysis
}

// GradeStructure scores the semantic richness of an analyzed page.
// A top-level heading is worth 2 points; paragraphs, links, images,
// containers, tables, ids and classes are worth 1 point each.
func GradeStructure(a *DOMAnalysis) StructureQuality {
	if a == nil {
		return QualityPoor
	}

	score := 0
	if a.Headings["h1"] > 0 {
		score += 2
	}
	for _, present := range []bool{
		a.Paragraphs > 0,
		a.Links > 0,
		a.Images > 0,
		a.Divs > 0,
		a.Tables > 0,
		len(a.IDs) > 0,
		len(a.Classes) > 0,
	} {
		if present {
			score++
		}
	}

	switch {
	case score >= 7:
		return QualityExcellent
	case score >= 5:
		return QualityGood
	case score >= 3:
		return QualityFair
	default:
		return QualityPoor
	}
}
