package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/locgen"
	"github.com/fwojciec/locgen/batch"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
	Runner *batch.Runner
	Runs   locgen.RunService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  kong.ConfigFlag `help:"Load flag values from a YAML file"`
	DB      string          `name:"db" env:"LOCGEN_DB" help:"Path to the run history database"`
	Timeout time.Duration   `env:"LOCGEN_TIMEOUT" default:"10s" help:"Timeout for fetching a URL"`
	Verbose bool            `short:"v" help:"Log debug output to stderr"`

	Extract ExtractCmd `cmd:"" help:"Generate locators for HTML files, stdin (-) or URLs"`
	Runs    RunsCmd    `cmd:"" help:"List saved extraction runs"`
	Show    ShowCmd    `cmd:"" help:"Show the elements of a saved run"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a saved run"`
	Tags    TagsCmd    `cmd:"" help:"List tag names and locator types found in a source"`
}

// FilterFlags narrows the printed elements.
type FilterFlags struct {
	Search string `short:"s" help:"Case-insensitive text matched against tags, ids, classes, text, attributes and locators"`
	Tag    string `short:"t" help:"Only elements with this tag name"`
	Type   string `name:"type" help:"Only elements with a locator of this type (ID, CSS Selector, XPath)"`
}

// Filter returns the element filter described by the flags.
func (f FilterFlags) Filter() locgen.ElementFilter {
	return locgen.ElementFilter{
		Search:      f.Search,
		Tag:         f.Tag,
		LocatorType: locgen.LocatorType(f.Type),
	}
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Sources     []string `arg:"" help:"HTML file paths, - for stdin, or http(s) URLs"`
	Format      string   `short:"f" enum:"text,json" default:"text" help:"Output format (text, json)"`
	Render      bool     `short:"r" help:"Render URLs in headless Chrome before extracting"`
	Save        bool     `help:"Save each successful extraction to the run history"`
	Concurrency int      `short:"c" default:"4" help:"Number of sources processed at once"`
	RateLimit   float64  `default:"1" help:"Requests per second allowed to each host"`
	Out         string   `short:"o" type:"path" help:"Also write one JSON file per source into this directory"`

	FilterFlags `embed:""`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct {
	Source string `help:"Only runs extracted from this source"`
	Limit  int    `short:"n" default:"20" help:"Maximum number of runs listed"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Run ID"`
	Format string `short:"f" enum:"text,json" default:"text" help:"Output format (text, json)"`

	FilterFlags `embed:""`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Run ID"`
	Force bool   `help:"Confirm deletion"`
}

// TagsCmd is the "tags" subcommand.
type TagsCmd struct {
	Source string `arg:"" help:"HTML file path, - for stdin, or http(s) URL"`
	Render bool   `short:"r" help:"Render URLs in headless Chrome before extracting"`
}
