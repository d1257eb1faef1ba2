// Package bench runs tag extraction over many sources and compares
// extraction approaches.
package bench

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/tagscan"
	"github.com/fwojciec/tagscan/bloom"
	"golang.org/x/sync/errgroup"
)

// Batch extracts the same tags from many sources concurrently.
type Batch struct {
	Fetcher   tagscan.Fetcher
	Extractor tagscan.TagExtractor

	// Cleaner, if set, narrows each page to its main content first.
	Cleaner tagscan.Cleaner

	// Runs, if set, stores every successful extraction.
	Runs tagscan.RunService

	// RateLimiter, if set, spaces out requests to the same host.
	RateLimiter tagscan.DomainLimiter

	Concurrency int
	RetryDelays []time.Duration
	Logger      LogFunc
}

// Result holds the outcome of a batch.
type Result struct {
	// Runs holds one run per processed source, in input order.
	Runs []*tagscan.Run

	Failed    int
	Skipped   int
	Records   int
	Malformed int
	Bytes     int
}

// ProgressEvent reports progress during a batch.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Source    string
	Run       *tagscan.Run
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressSkipped
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

type sourceResult struct {
	position int
	source   string
	run      *tagscan.Run
	err      error
}

// Run processes sources and returns per-source runs. Duplicate sources are
// skipped. Failures of individual sources are counted, not returned; the
// error return is reserved for storage failures and cancellation.
func (b *Batch) Run(ctx context.Context, sources []string, tags []string, progress ProgressFunc) (*Result, error) {
	if len(tags) == 0 {
		return nil, tagscan.Errorf(tagscan.EINVALID, "at least one tag required")
	}

	notify := func(e ProgressEvent) {
		if progress != nil {
			progress(e)
		}
	}

	seen := bloom.NewFilter(uint(len(sources)), 0.0001)
	var unique []string
	for _, src := range sources {
		if seen.Seen(src) {
			notify(ProgressEvent{Type: ProgressSkipped, Source: src})
			continue
		}
		unique = append(unique, src)
	}

	result := &Result{Skipped: len(sources) - len(unique)}
	total := len(unique)
	notify(ProgressEvent{Type: ProgressStarted, Total: total})

	concurrency := b.Concurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	resultCh := make(chan sourceResult, total)
	var completed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, src := range unique {
			g.Go(func() error {
				resultCh <- b.processSource(gctx, i, src, tags)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	runs := make([]*tagscan.Run, total)
	for r := range resultCh {
		n := int(completed.Add(1))
		if r.err != nil {
			result.Failed++
			notify(ProgressEvent{Type: ProgressFailed, Completed: n, Total: total, Source: r.source, Error: r.err})
			continue
		}
		runs[r.position] = r.run
		notify(ProgressEvent{Type: ProgressCompleted, Completed: n, Total: total, Source: r.source, Run: r.run})
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, run := range runs {
		if run == nil {
			continue
		}
		if b.Runs != nil {
			if err := b.Runs.CreateRun(ctx, run); err != nil {
				return nil, fmt.Errorf("storing run for %s: %w", run.Source, err)
			}
		}
		result.Runs = append(result.Runs, run)
		result.Records += len(run.Records)
		result.Malformed += run.MalformedCount
		result.Bytes += run.InputBytes
	}

	notify(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	return result, nil
}

// processSource fetches, optionally cleans, and extracts a single source.
func (b *Batch) processSource(ctx context.Context, position int, source string, tags []string) sourceResult {
	result := sourceResult{position: position, source: source}

	if b.RateLimiter != nil {
		if domain := DomainOf(source); domain != "" {
			if err := b.RateLimiter.Wait(ctx, domain); err != nil {
				result.err = err
				return result
			}
		}
	}

	delays := b.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	markup, err := FetchWithRetry(ctx, source, b.Fetcher.Fetch, b.Logger, delays)
	if err != nil {
		result.err = err
		return result
	}

	if b.Cleaner != nil {
		markup, err = b.Cleaner.Clean(markup)
		if err != nil {
			result.err = fmt.Errorf("cleaning: %w", err)
			return result
		}
	}

	begin := time.Now()
	ext, err := b.Extractor.ExtractTags(markup, tags)
	if err != nil {
		result.err = err
		return result
	}

	run := tagscan.NewRun(source, tags, markup, ext, time.Since(begin))
	run.InputHash = ComputeHash(markup)
	result.run = run
	return result
}
