package main

import (
	"fmt"

	"github.com/fwojciec/tagscan"
	"github.com/fwojciec/tagscan/bench"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	filter := tagscan.RunFilter{Limit: c.Limit}
	if c.Source != "" {
		filter.Source = &c.Source
	}
	if c.Approach != "" {
		filter.Approach = &c.Approach
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tagscan.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'tagscan extract --save' to store one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %-4s  %d records  %d malformed  %s\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Approach,
			r.RecordCount, r.MalformedCount, bench.TruncateSource(r.Source, 50))
	}

	return nil
}

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		if tagscan.ErrorCode(err) == tagscan.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'tagscan runs' to see stored runs.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", tagscan.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Run %s\n", run.ID)
	fmt.Fprintf(deps.Stdout, "  Source:   %s\n", run.Source)
	fmt.Fprintf(deps.Stdout, "  Approach: %s\n", run.Approach)
	fmt.Fprintf(deps.Stdout, "  Tags:     %v\n", run.Tags)
	fmt.Fprintf(deps.Stdout, "  Input:    %s (%s)\n", bench.FormatBytes(run.InputBytes), run.InputHash)
	fmt.Fprintf(deps.Stdout, "  Duration: %s\n", bench.FormatDuration(run.Duration))
	fmt.Fprintf(deps.Stdout, "  Created:  %s\n\n", run.CreatedAt.Format("2006-01-02 15:04:05"))

	printRecords(deps.Stdout, run.Records, c.Full)
	printErrors(deps.Stdout, run.Errors)
	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return tagscan.Errorf(tagscan.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Runs.DeleteRun(deps.Ctx, c.ID); err != nil {
		if tagscan.ErrorCode(err) == tagscan.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'tagscan runs' to see stored runs.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", tagscan.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted run %s\n", c.ID)
	return nil
}
