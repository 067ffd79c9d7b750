package locgen

import (
	"context"
	"time"
)

// Run is a saved extraction: the source it came from and the elements it
// produced.
type Run struct {
	ID           string         `json:"id"`
	Source       string         `json:"source"`
	ContentHash  string         `json:"contentHash"`
	ElementCount int            `json:"elementCount"`
	Elements     []*ElementInfo `json:"elements,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Source == "" {
		return Errorf(EINVALID, "run source required")
	}
	return nil
}

// RunService represents a service for managing saved extraction runs.
type RunService interface {
	// CreateRun saves a run, assigning its ID, content hash and timestamp.
	// html is the input the elements were extracted from.
	CreateRun(ctx context.Context, run *Run, html string) error

	// FindRunByID retrieves a run including its elements.
	// Returns ENOTFOUND if the run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	// Elements are not loaded.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)

	// DeleteRun permanently removes a run.
	// Returns ENOTFOUND if the run does not exist.
	DeleteRun(ctx context.Context, id string) error
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Source      *string `json:"source"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
