package main

import (
	"fmt"
	"sync"

	"github.com/fwojciec/tagscan"
	"github.com/fwojciec/tagscan/bench"
)

// Run executes the batch command.
func (c *BatchCmd) Run(deps *Dependencies) error {
	extractor, ok := deps.Extractors[c.Approach]
	if !ok {
		fmt.Fprintf(deps.Stderr, "error: unknown approach %q\n", c.Approach)
		return tagscan.Errorf(tagscan.EINVALID, "unknown approach %q", c.Approach)
	}

	// Retry messages come from worker goroutines.
	var mu sync.Mutex
	b := &bench.Batch{
		Fetcher:     deps.Fetcher,
		Extractor:   extractor,
		Cleaner:     deps.Cleaner,
		RateLimiter: deps.Limiter,
		Concurrency: c.Concurrency,
		RetryDelays: deps.RetryDelays,
		Logger: func(format string, args ...any) {
			mu.Lock()
			defer mu.Unlock()
			fmt.Fprintf(deps.Stderr, format+"\n", args...)
		},
	}
	if c.Save {
		b.Runs = deps.Runs
	}

	progress := func(event bench.ProgressEvent) {
		switch event.Type {
		case bench.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Scanning %d sources\n", event.Total)
		case bench.ProgressSkipped:
			fmt.Fprintf(deps.Stderr, "  duplicate %s\n", event.Source)
		case bench.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.Source, event.Error)
		case bench.ProgressCompleted:
			fmt.Fprintf(deps.Stdout, "  [%d/%d] %s: %d records, %d malformed\n",
				event.Completed, event.Total, bench.TruncateSource(event.Source, 60),
				event.Run.RecordCount, event.Run.MalformedCount)
		}
	}

	result, err := b.Run(deps.Ctx, c.Sources, c.Tags, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tagscan.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Done: %d scanned, %d failed, %d duplicates (%s, %d records, %d malformed)\n",
		len(result.Runs), result.Failed, result.Skipped, bench.FormatBytes(result.Bytes),
		result.Records, result.Malformed)

	if c.Save {
		for _, run := range result.Runs {
			fmt.Fprintf(deps.Stdout, "  saved %s  %s\n", run.ID, run.Source)
		}
	}

	if result.Failed > 0 && len(result.Runs) == 0 {
		return tagscan.Errorf(tagscan.EINVALID, "all %d sources failed", result.Failed)
	}
	return nil
}
