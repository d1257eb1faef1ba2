package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/tagscan"
	main "github.com/fwojciec/tagscan/cmd/tagscan"
	"github.com/fwojciec/tagscan/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists runs with filter", func(t *testing.T) {
		t.Parallel()

		var gotFilter tagscan.RunFilter
		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, filter tagscan.RunFilter) ([]*tagscan.Run, error) {
				gotFilter = filter
				return []*tagscan.Run{{
					ID:             "run-1",
					Source:         "page.html",
					Approach:       "scan",
					RecordCount:    3,
					MalformedCount: 1,
					CreatedAt:      time.Date(2025, 1, 8, 10, 30, 0, 0, time.UTC),
				}}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Runs: runs}

		cmd := &main.RunsCmd{Approach: "scan", Limit: 5}
		require.NoError(t, cmd.Run(deps))

		require.NotNil(t, gotFilter.Approach)
		assert.Equal(t, "scan", *gotFilter.Approach)
		assert.Nil(t, gotFilter.Source)
		assert.Equal(t, 5, gotFilter.Limit)
		assert.Contains(t, stdout.String(), "run-1  2025-01-08 10:30  scan  3 records  1 malformed  page.html")
	})

	t.Run("explains an empty history", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunsFn: func(_ context.Context, _ tagscan.RunFilter) ([]*tagscan.Run, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Runs: runs}

		require.NoError(t, (&main.RunsCmd{}).Run(deps))
		assert.Contains(t, stdout.String(), "No runs found")
	})
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints run details and records", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunByIDFn: func(_ context.Context, id string) (*tagscan.Run, error) {
				return &tagscan.Run{
					ID:       id,
					Source:   "page.html",
					Approach: "scan",
					Tags:     []string{"div"},
					Records:  []tagscan.Record{{Tag: "div", Content: "Start content", Status: tagscan.StatusComplete}},
					Errors:   []string{"Error: Unexpected closing tag </div> at position 24"},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Runs: runs}

		require.NoError(t, (&main.ShowCmd{ID: "run-1"}).Run(deps))

		out := stdout.String()
		assert.Contains(t, out, "Run run-1")
		assert.Contains(t, out, "Source:   page.html")
		assert.Contains(t, out, "[0] Tag: div, Content: Start content")
		assert.Contains(t, out, "  - Error: Unexpected closing tag </div> at position 24")
	})

	t.Run("reports missing run", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			FindRunByIDFn: func(_ context.Context, id string) (*tagscan.Run, error) {
				return nil, tagscan.Errorf(tagscan.ENOTFOUND, "run not found")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Runs: runs}

		err := (&main.ShowCmd{ID: "nope"}).Run(deps)

		assert.Equal(t, tagscan.ENOTFOUND, tagscan.ErrorCode(err))
		assert.Contains(t, stderr.String(), "tagscan runs")
	})
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("deletes run when --force is set", func(t *testing.T) {
		t.Parallel()

		var deletedID string
		runs := &mock.RunService{
			DeleteRunFn: func(_ context.Context, id string) error {
				deletedID = id
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}, Runs: runs}

		err := (&main.DeleteCmd{ID: "run-1", Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "run-1", deletedID)
		assert.Contains(t, stdout.String(), "Deleted run run-1")
	})

	t.Run("requires --force flag", func(t *testing.T) {
		t.Parallel()

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr}

		err := (&main.DeleteCmd{ID: "run-1"}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("reports missing run", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			DeleteRunFn: func(_ context.Context, id string) error {
				return tagscan.Errorf(tagscan.ENOTFOUND, "run not found")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{Ctx: context.Background(), Stdout: &bytes.Buffer{}, Stderr: stderr, Runs: runs}

		err := (&main.DeleteCmd{ID: "nope", Force: true}).Run(deps)

		assert.Equal(t, tagscan.ENOTFOUND, tagscan.ErrorCode(err))
		assert.Contains(t, stderr.String(), `run "nope" not found`)
	})
}
