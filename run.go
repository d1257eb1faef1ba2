package tagscan

import (
	"context"
	"time"
)

// Run is a stored extraction: one approach applied to one source.
type Run struct {
	ID             string        `json:"id"`
	Source         string        `json:"source"`
	Approach       string        `json:"approach"`
	Tags           []string      `json:"tags"`
	InputHash      string        `json:"inputHash"`
	InputBytes     int           `json:"inputBytes"`
	RecordCount    int           `json:"recordCount"`
	MalformedCount int           `json:"malformedCount"`
	Duration       time.Duration `json:"duration"`
	CreatedAt      time.Time     `json:"createdAt"`

	// Records and Errors are only populated by FindRunByID.
	Records []Record `json:"records,omitempty"`
	Errors  []string `json:"errors,omitempty"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Source == "" {
		return Errorf(EINVALID, "run source required")
	}
	if r.Approach == "" {
		return Errorf(EINVALID, "run approach required")
	}
	if len(r.Tags) == 0 {
		return Errorf(EINVALID, "run requires at least one tag")
	}
	return nil
}

// NewRun builds a Run from an extraction of the given input.
func NewRun(source string, tags []string, input string, ext *Extraction, d time.Duration) *Run {
	return &Run{
		Source:         source,
		Approach:       ext.Approach,
		Tags:           tags,
		InputBytes:     len(input),
		RecordCount:    len(ext.Records),
		MalformedCount: CountMalformed(ext.Records),
		Duration:       d,
		Records:        ext.Records,
		Errors:         ext.Errors,
	}
}

// RunService represents a service for managing stored runs.
type RunService interface {
	// CreateRun stores a run and its records.
	// ID, CreatedAt and the counters are filled in by the implementation.
	CreateRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run with its records and errors.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	// Records and Errors are not loaded.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// DeleteRun permanently removes a run and its records.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID       *string `json:"id"`
	Source   *string `json:"source"`
	Approach *string `json:"approach"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RunWriter persists a run as a human-readable report.
type RunWriter interface {
	// WriteRun writes the report and returns where it was written.
	WriteRun(ctx context.Context, run *Run) (string, error)
}
