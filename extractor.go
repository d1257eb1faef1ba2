package tagscan

// Extraction holds the outcome of running one extraction approach over an
// input.
type Extraction struct {
	// Approach names the extractor that produced the result.
	Approach string

	// Records holds extracted content in document order.
	Records []Record

	// Errors holds diagnostics collected while extracting. Malformed input
	// lands here, not in the error return of ExtractTags.
	Errors []string
}

// TagExtractor extracts the content of the requested tags from markup.
// The scanner in this package is one approach; DOM- and XML-based
// implementations exist for comparison.
type TagExtractor interface {
	// Name returns a short identifier for the approach, e.g. "scan".
	Name() string

	// ExtractTags returns the requested tags found in input.
	// An error is returned only when the extractor cannot run at all
	// (for example an unusable tag name), never for malformed markup.
	ExtractTags(input string, tags []string) (*Extraction, error)
}

// ScanApproach is the Name of ScanExtractor.
const ScanApproach = "scan"

var _ TagExtractor = (*ScanExtractor)(nil)

// ScanExtractor runs the linear scanner with stored diagnostics.
// Every call uses its own Parser, so ScanExtractor is safe for concurrent use.
type ScanExtractor struct{}

// NewScanExtractor creates a new ScanExtractor.
func NewScanExtractor() *ScanExtractor {
	return &ScanExtractor{}
}

// Name returns ScanApproach.
func (e *ScanExtractor) Name() string {
	return ScanApproach
}

// ExtractTags parses input and returns its records and stored errors.
func (e *ScanExtractor) ExtractTags(input string, tags []string) (*Extraction, error) {
	p := NewParser(false)
	records := p.Parse(input, tags)
	return &Extraction{
		Approach: ScanApproach,
		Records:  records,
		Errors:   p.Errors(),
	}, nil
}
