package tagscan

// Cleaner narrows an HTML page to its main content before tag extraction.
type Cleaner interface {
	// Clean returns the main content of html as an HTML fragment, with
	// boilerplate such as navigation, footers and sidebars removed.
	Clean(html string) (string, error)
}
