package tagscan

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment, typically the content of an
	// extracted record, into Markdown.
	Convert(html string) (string, error)
}
