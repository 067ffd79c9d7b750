package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/locgen"
)

// Run executes the tags command.
func (c *TagsCmd) Run(deps *Dependencies) error {
	results, err := deps.Runner.Run(deps.Ctx, []string{c.Source}, nil)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locgen.ErrorMessage(err))
		return err
	}
	res := results[0]
	if res.Err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locgen.ErrorMessage(res.Err))
		return res.Err
	}

	types := locgen.LocatorTypes(res.Elements)
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}

	fmt.Fprintf(deps.Stdout, "Tags: %s\n", strings.Join(locgen.TagNames(res.Elements), ", "))
	fmt.Fprintf(deps.Stdout, "Locator types: %s\n", strings.Join(names, ", "))
	return nil
}
