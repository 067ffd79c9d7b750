package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/locgen"
	"github.com/fwojciec/locgen/batch"
	"github.com/fwojciec/locgen/fs"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	if c.Save && deps.Runs == nil {
		return locgen.Errorf(locgen.EINTERNAL, "run history is not available")
	}

	progress := func(event batch.ProgressEvent) {
		if event.Type == batch.ProgressFailed {
			fmt.Fprintf(deps.Stderr, "skip %s: %s\n", event.Source, locgen.ErrorMessage(event.Error))
		}
	}

	results, err := deps.Runner.Run(deps.Ctx, c.Sources, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", locgen.ErrorMessage(err))
		return err
	}

	filter := c.Filter()
	var firstErr error
	var printed []sourceElements
	for _, res := range results {
		if res.Err != nil {
			if firstErr == nil {
				firstErr = res.Err
			}
			continue
		}

		if c.Save {
			run := &locgen.Run{Source: res.Source, Elements: res.Elements}
			if err := deps.Runs.CreateRun(deps.Ctx, run, res.HTML); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", locgen.ErrorMessage(err))
				return err
			}
			fmt.Fprintf(deps.Stderr, "Saved run %s (%d elements)\n", run.ID, run.ElementCount)
		}

		printed = append(printed, sourceElements{
			Source:   res.Source,
			Elements: locgen.FilterElements(res.Elements, filter),
		})
	}

	if len(printed) == 0 {
		if len(results) == 1 {
			return firstErr
		}
		return fmt.Errorf("all %d sources failed: %w", len(results), firstErr)
	}

	if c.Out != "" {
		if err := c.writeFiles(deps, printed); err != nil {
			fmt.Fprintf(deps.Stderr, "error writing %s: %v\n", c.Out, err)
			return err
		}
	}

	if c.Format == "json" {
		if len(c.Sources) == 1 {
			return writeJSON(deps.Stdout, printed[0].Elements)
		}
		return writeJSON(deps.Stdout, printed)
	}

	for i, p := range printed {
		if len(c.Sources) > 1 {
			if i > 0 {
				fmt.Fprintln(deps.Stdout)
			}
			fmt.Fprintf(deps.Stdout, "== %s (%d elements) ==\n\n", p.Source, len(p.Elements))
		}
		if len(p.Elements) == 0 {
			fmt.Fprintln(deps.Stdout, "No elements match the filter.")
			continue
		}
		if err := writeElements(deps.Stdout, p.Elements); err != nil {
			return err
		}
	}
	return nil
}

// writeFiles replaces the --out directory with one JSON file per source.
func (c *ExtractCmd) writeFiles(deps *Dependencies, printed []sourceElements) error {
	out := filepath.Clean(c.Out)
	var store locgen.ResultStore = fs.NewResultStore(filepath.Dir(out), filepath.Base(out))
	for _, p := range printed {
		if err := store.Save(deps.Ctx, p.Source, p.Elements); err != nil {
			_ = store.Abort()
			return err
		}
	}
	return store.Commit()
}
