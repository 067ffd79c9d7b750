package main

import (
	"fmt"

	"github.com/fwojciec/locgen"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	filter := locgen.RunFilter{Limit: c.Limit}
	if c.Source != "" {
		filter.Source = &c.Source
	}

	runs, err := deps.Runs.FindRuns(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locgen.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No saved runs. Use 'locgen extract --save' to create one.")
		return nil
	}

	return writeRuns(deps.Stdout, runs)
}
