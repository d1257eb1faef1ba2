package main

import (
	"fmt"

	"github.com/fwojciec/tagscan"
	"github.com/fwojciec/tagscan/bench"
)

// compareOrder is the order approaches appear in the comparison table.
// The first is the baseline for speedups.
var compareOrder = []string{tagscan.ScanApproach, "dom", "xml"}

// Run executes the compare command.
func (c *CompareCmd) Run(deps *Dependencies) error {
	markup, err := fetchSource(deps, c.Source)
	if err != nil {
		return err
	}

	var extractors []tagscan.TagExtractor
	for _, name := range compareOrder {
		if ext, ok := deps.Extractors[name]; ok {
			extractors = append(extractors, ext)
		}
	}
	if len(extractors) == 0 {
		return tagscan.Errorf(tagscan.EINTERNAL, "no extractors configured")
	}

	comparer := &bench.Comparer{Extractors: extractors, Iterations: c.Iterations}
	measurements, _ := comparer.Compare(markup, c.Tags)

	fmt.Fprintf(deps.Stdout, "Source: %s (%s)\n\n", c.Source, bench.FormatBytes(len(markup)))
	fmt.Fprintf(deps.Stdout, "%-8s %8s %10s %7s %12s %8s\n", "APPROACH", "RECORDS", "MALFORMED", "ERRORS", "TIME", "SPEEDUP")

	baseline := measurements[0]
	for _, m := range measurements {
		if m.Err != nil {
			fmt.Fprintf(deps.Stdout, "%-8s failed: %s\n", m.Approach, failureReason(m.Err))
			continue
		}
		speedup := "-"
		if ratio := bench.SpeedRatio(baseline, m); m.Approach != baseline.Approach && ratio > 0 {
			speedup = fmt.Sprintf("%.1fx", ratio)
		}
		fmt.Fprintf(deps.Stdout, "%-8s %8d %10d %7d %12s %8s\n",
			m.Approach, m.Records, m.Malformed, m.Errors, bench.FormatDuration(m.Duration), speedup)
	}

	return nil
}

// failureReason keeps the cause of uncoded errors, which ErrorMessage
// would hide behind a generic message.
func failureReason(err error) string {
	if tagscan.ErrorCode(err) == tagscan.EINTERNAL {
		return err.Error()
	}
	return tagscan.ErrorMessage(err)
}
