package tagscan

// Sentinel values written into Record fields by the scanner.
const (
	// MalformedTag is the Tag of a record describing an unexpected closing tag.
	MalformedTag = "MALFORMED"

	// PendingContent is the Content of a record whose closing tag has not
	// been seen yet. It never escapes Parse.
	PendingContent = "Pending - awaiting closing tag"

	// MissingClosingContent replaces the content of a record whose opening
	// tag was still unmatched at end of input.
	MissingClosingContent = "MALFORMED - Missing closing tag"
)

// RecordStatus describes how a record's content was determined.
type RecordStatus string

// RecordStatus constants.
const (
	StatusComplete  RecordStatus = "complete"
	StatusPending   RecordStatus = "pending"
	StatusUnclosed  RecordStatus = "unclosed"
	StatusMalformed RecordStatus = "malformed"
)

// Record is one extracted tag occurrence or one detected anomaly.
type Record struct {
	Tag     string       `json:"tag"`
	Content string       `json:"content"`
	Status  RecordStatus `json:"status"`
}

// IsMalformed reports whether the record marks a structural anomaly rather
// than extracted content.
func (r Record) IsMalformed() bool {
	return r.Status == StatusMalformed || r.Status == StatusUnclosed
}

// CountMalformed returns the number of records that mark anomalies.
func CountMalformed(records []Record) int {
	var n int
	for _, r := range records {
		if r.IsMalformed() {
			n++
		}
	}
	return n
}
