package main

import (
	"fmt"

	"github.com/fwojciec/locgen"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	run, err := deps.Runs.FindRunByID(deps.Ctx, c.ID)
	if err != nil {
		if locgen.ErrorCode(err) == locgen.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: run %q not found. Use 'locgen runs' to see saved runs.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", locgen.ErrorMessage(err))
		}
		return err
	}

	elems := locgen.FilterElements(run.Elements, c.Filter())
	if elems == nil {
		elems = []*locgen.ElementInfo{}
	}

	if c.Format == "json" {
		return writeJSON(deps.Stdout, elems)
	}

	fmt.Fprintf(deps.Stdout, "Run %s: %s (%s, %d elements)\n\n",
		run.ID, run.Source, run.CreatedAt.Format("2006-01-02 15:04:05"), run.ElementCount)
	if len(elems) == 0 {
		fmt.Fprintln(deps.Stdout, "No elements match the filter.")
		return nil
	}
	return writeElements(deps.Stdout, elems)
}
