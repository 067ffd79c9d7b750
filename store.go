package locgen

import "context"

// ResultStore writes extraction results outside the run history, for
// example as files for other tools to pick up.
type ResultStore interface {
	// Save stores the elements extracted from source.
	Save(ctx context.Context, source string, elems []*ElementInfo) error

	// Commit makes all saved results visible.
	Commit() error

	// Abort discards saved results.
	Abort() error
}
