package mock

import (
	"context"

	"github.com/fwojciec/tagscan"
)

var _ tagscan.RunService = (*RunService)(nil)

// RunService is a mock implementation of tagscan.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *tagscan.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*tagscan.Run, error)
	FindRunsFn    func(ctx context.Context, filter tagscan.RunFilter) ([]*tagscan.Run, error)
	DeleteRunFn   func(ctx context.Context, id string) error
}

func (s *RunService) CreateRun(ctx context.Context, run *tagscan.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*tagscan.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter tagscan.RunFilter) ([]*tagscan.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	return s.DeleteRunFn(ctx, id)
}

var _ tagscan.RunWriter = (*RunWriter)(nil)

// RunWriter is a mock implementation of tagscan.RunWriter.
type RunWriter struct {
	WriteRunFn func(ctx context.Context, run *tagscan.Run) (string, error)
}

func (w *RunWriter) WriteRun(ctx context.Context, run *tagscan.Run) (string, error) {
	return w.WriteRunFn(ctx, run)
}
