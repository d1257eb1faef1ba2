package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/tagscan"
	"github.com/fwojciec/tagscan/bench"
	"github.com/fwojciec/tagscan/htmltomarkdown"
	tsslog "github.com/fwojciec/tagscan/slog"
)

// previewLen is how much record content is printed without --full.
const previewLen = 50

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	markup, err := fetchSource(deps, c.Source)
	if err != nil {
		return err
	}

	begin := time.Now()
	var ext *tagscan.Extraction
	var diags []tagscan.Diagnostic
	if c.Approach == "" || c.Approach == tagscan.ScanApproach {
		ext, diags = c.scan(deps, markup)
	} else {
		extractor, ok := deps.Extractors[c.Approach]
		if !ok {
			fmt.Fprintf(deps.Stderr, "error: unknown approach %q\n", c.Approach)
			return tagscan.Errorf(tagscan.EINVALID, "unknown approach %q", c.Approach)
		}
		ext, err = extractor.ExtractTags(markup, c.Tags)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tagscan.ErrorMessage(err))
			return err
		}
	}
	elapsed := time.Since(begin)

	if c.Markdown {
		records, err := htmltomarkdown.ConvertRecords(deps.Converter, ext.Records)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tagscan.ErrorMessage(err))
			return err
		}
		ext.Records = records
	}

	run := tagscan.NewRun(c.Source, c.Tags, markup, ext, elapsed)
	run.InputHash = bench.ComputeHash(markup)

	if c.Save {
		if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tagscan.ErrorMessage(err))
			return err
		}
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(run); err != nil {
			return err
		}
	} else {
		printRecords(deps.Stdout, run.Records, c.Full)
		printErrors(deps.Stdout, run.Errors)
	}

	if c.Context > 0 {
		printExcerpts(deps.Stdout, markup, diags, c.Context)
	}

	if c.Save {
		fmt.Fprintf(deps.Stderr, "Saved run %s\n", run.ID)
	}

	if deps.Writer != nil {
		path, err := deps.Writer.WriteRun(deps.Ctx, run)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tagscan.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Wrote %s\n", path)
	}

	return nil
}

// scan runs the core parser. Without --store, diagnostics are printed to
// stderr (or logged with --verbose) as they are found.
func (c *ExtractCmd) scan(deps *Dependencies, markup string) (*tagscan.Extraction, []tagscan.Diagnostic) {
	if c.Store {
		p := tagscan.NewParser(false)
		records := p.Parse(markup, c.Tags)
		return &tagscan.Extraction{
			Approach: tagscan.ScanApproach,
			Records:  records,
			Errors:   p.Errors(),
		}, p.Diagnostics()
	}

	var live tagscan.ErrorSink = tagscan.NewWriterSink(deps.Stderr)
	if deps.Logger != nil {
		live = tsslog.NewSink(deps.Logger)
	}

	var diags []tagscan.Diagnostic
	sink := tagscan.SinkFunc(func(d tagscan.Diagnostic) {
		diags = append(diags, d)
		live.Report(d)
	})

	p := tagscan.NewParser(true, tagscan.WithSink(sink))
	records := p.Parse(markup, c.Tags)
	return &tagscan.Extraction{
		Approach: tagscan.ScanApproach,
		Records:  records,
		Errors:   p.Errors(),
	}, diags
}

// fetchSource reads a source and applies the configured cleaner.
func fetchSource(deps *Dependencies, source string) (string, error) {
	markup, err := deps.Fetcher.Fetch(deps.Ctx, source)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tagscan.ErrorMessage(err))
		return "", err
	}

	if deps.Cleaner != nil {
		markup, err = deps.Cleaner.Clean(markup)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: cleaning %s: %s\n", source, tagscan.ErrorMessage(err))
			return "", err
		}
	}

	return markup, nil
}

func printRecords(w io.Writer, records []tagscan.Record, full bool) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records found.")
		return
	}

	fmt.Fprintln(w, "Results:")
	for i, r := range records {
		content := r.Content
		if !full {
			content = preview(content, previewLen)
		}
		fmt.Fprintf(w, "  [%d] Tag: %s, Content: %s\n", i, r.Tag, content)
	}
}

func printErrors(w io.Writer, errs []string) {
	if len(errs) == 0 {
		return
	}
	fmt.Fprintln(w, "Stored Errors:")
	for _, e := range errs {
		fmt.Fprintf(w, "  - %s\n", e)
	}
}

func printExcerpts(w io.Writer, markup string, diags []tagscan.Diagnostic, radius int) {
	for _, d := range diags {
		e := tagscan.ExcerptAt(markup, d.Offset, radius)
		fmt.Fprintf(w, "%s\n", d.Message())
		fmt.Fprintf(w, "  Before: ...%s\n", e.Before)
		fmt.Fprintf(w, "  At: %s\n", e.At)
		fmt.Fprintf(w, "  After: %s...\n", e.After)
		fmt.Fprintf(w, "  Verdict: %s\n", e.Verdict)
	}
}

// preview shortens s to at most n runes, marking the cut with "...".
func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
