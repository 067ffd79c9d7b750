package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/locgen"
)

// Ensure LoggingRunService implements locgen.RunService.
var _ locgen.RunService = (*LoggingRunService)(nil)

// LoggingRunService wraps a RunService with debug logging.
type LoggingRunService struct {
	next   locgen.RunService
	logger *slog.Logger
}

// NewLoggingRunService creates a new LoggingRunService.
func NewLoggingRunService(next locgen.RunService, logger *slog.Logger) *LoggingRunService {
	return &LoggingRunService{next: next, logger: logger}
}

func (s *LoggingRunService) CreateRun(ctx context.Context, run *locgen.Run, html string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("create run",
			"id", run.ID,
			"source", run.Source,
			"elements", run.ElementCount,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRun(ctx, run, html)
}

func (s *LoggingRunService) FindRunByID(ctx context.Context, id string) (run *locgen.Run, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find run",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRunByID(ctx, id)
}

func (s *LoggingRunService) FindRuns(ctx context.Context, filter locgen.RunFilter) (runs []*locgen.Run, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find runs",
			"count", len(runs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindRuns(ctx, filter)
}

func (s *LoggingRunService) DeleteRun(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("delete run",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteRun(ctx, id)
}
