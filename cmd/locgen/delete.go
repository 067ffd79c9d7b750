package main

import (
	"fmt"

	"github.com/fwojciec/locgen"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return locgen.Errorf(locgen.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Runs.DeleteRun(deps.Ctx, c.ID); err != nil {
		if locgen.ErrorCode(err) == locgen.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'locgen runs' to see saved runs.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", locgen.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted run %s\n", c.ID)
	return nil
}
