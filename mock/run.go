package mock

import (
	"context"

	"github.com/fwojciec/locgen"
)

var _ locgen.RunService = (*RunService)(nil)

// RunService is a mock implementation of locgen.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *locgen.Run, html string) error
	FindRunByIDFn func(ctx context.Context, id string) (*locgen.Run, error)
	FindRunsFn    func(ctx context.Context, filter locgen.RunFilter) ([]*locgen.Run, error)
	DeleteRunFn   func(ctx context.Context, id string) error
}

func (s *RunService) CreateRun(ctx context.Context, run *locgen.Run, html string) error {
	return s.CreateRunFn(ctx, run, html)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*locgen.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter locgen.RunFilter) ([]*locgen.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) DeleteRun(ctx context.Context, id string) error {
	return s.DeleteRunFn(ctx, id)
}
