// Package fs reads markup from local files and writes run reports to disk.
package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/tagscan"
)

// SourceToPath converts a source to a relative report path without
// extension. URLs map to host and path, files to their base name.
// Example: https://example.com/docs/api/users → example.com/docs/api/users
func SourceToPath(source string) (string, error) {
	if source == "-" {
		return "stdin", nil
	}

	if !strings.Contains(source, "://") {
		base := filepath.Base(source)
		base = strings.TrimSuffix(base, filepath.Ext(base))
		if base == "" || base == "." || base == string(filepath.Separator) {
			return "", tagscan.Errorf(tagscan.EINVALID, "cannot derive report name from %q", source)
		}
		return base, nil
	}

	u, err := url.Parse(source)
	if err != nil {
		return "", tagscan.Errorf(tagscan.EINVALID, "invalid source URL: %v", err)
	}

	path := strings.Trim(u.Path, "/")
	if path == "" {
		path = "index"
	} else if strings.HasSuffix(u.Path, "/") {
		path += "/index"
	}
	path = strings.TrimSuffix(path, filepath.Ext(path))

	return filepath.Join(u.Host, filepath.FromSlash(path)), nil
}

// FormatRun formats a run as Markdown with YAML frontmatter and one section
// per record.
func FormatRun(run *tagscan.Run) string {
	var b strings.Builder
	b.WriteString("---\n")
	if run.ID != "" {
		b.WriteString("id: ")
		b.WriteString(run.ID)
		b.WriteString("\n")
	}
	b.WriteString("source: ")
	b.WriteString(run.Source)
	b.WriteString("\napproach: ")
	b.WriteString(run.Approach)
	b.WriteString("\ntags: [")
	b.WriteString(strings.Join(run.Tags, ", "))
	b.WriteString("]\n")
	if !run.CreatedAt.IsZero() {
		b.WriteString("created: ")
		b.WriteString(run.CreatedAt.Format("2006-01-02 15:04:05"))
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "records: %d\nmalformed: %d\n", len(run.Records), tagscan.CountMalformed(run.Records))
	b.WriteString("---\n")

	for i, r := range run.Records {
		fmt.Fprintf(&b, "\n## %d. %s (%s)\n\n", i+1, r.Tag, r.Status)
		b.WriteString(r.Content)
		b.WriteString("\n")
	}

	if len(run.Errors) > 0 {
		b.WriteString("\n## Errors\n\n")
		for _, e := range run.Errors {
			b.WriteString("- ")
			b.WriteString(e)
			b.WriteString("\n")
		}
	}

	return b.String()
}

// Ensure Writer implements tagscan.RunWriter at compile time.
var _ tagscan.RunWriter = (*Writer)(nil)

// Writer writes run reports as Markdown files to a directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteRun writes run to baseDir/<source path>.<approach>.md and returns the
// full path. The file is written to a temporary name first and renamed into
// place, so readers never see a partial report.
func (w *Writer) WriteRun(ctx context.Context, run *tagscan.Run) (string, error) {
	if err := run.Validate(); err != nil {
		return "", err
	}

	relPath, err := SourceToPath(run.Source)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(w.baseDir, relPath+"."+run.Approach+".md")

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	tmp := fullPath + ".tmp"
	if err := os.WriteFile(tmp, []byte(FormatRun(run)), 0644); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, fullPath); err != nil {
		os.Remove(tmp)
		return "", err
	}

	return fullPath, nil
}
