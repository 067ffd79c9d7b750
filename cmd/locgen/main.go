package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/locgen"
	"github.com/fwojciec/locgen/batch"
	"github.com/fwojciec/locgen/goquery"
	lochttp "github.com/fwojciec/locgen/http"
	"github.com/fwojciec/locgen/rod"
	locslog "github.com/fwojciec/locgen/slog"
	"github.com/fwojciec/locgen/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path used when neither --db nor LOCGEN_DB is set.
	DBPath string

	// Config files read for flag values. Missing files are skipped.
	ConfigPaths []string

	// Stdin is read for the "-" source.
	Stdin io.Reader

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher, when set, replaces the HTTP and browser fetchers.
	Fetcher locgen.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	m := &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
	if path := defaultConfigPath(); path != "" {
		m.ConfigPaths = []string{path}
	}
	return m
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("locgen"),
		kong.Description("Generate ID, CSS and XPath locators for the elements of an HTML document"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(LoadConfig, m.ConfigPaths...),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'locgen --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	if cmd != "tags" && (cmd != "extract" || cli.Extract.Save) {
		path := cli.DB
		if path == "" {
			path = m.DBPath
		}
		m.DB = sqlite.NewDB(path)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set LOCGEN_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", path, err)
		}
		defer m.Close()

		deps.Runs = locslog.NewLoggingRunService(sqlite.NewRunService(m.DB), logger)
	}

	switch cmd {
	case "extract":
		runner, closeFn, err := m.newRunner(cli.Extract.Sources, cli.Extract.Render, cli.Timeout, logger, stderr)
		if err != nil {
			return err
		}
		defer closeFn()
		runner.Concurrency = cli.Extract.Concurrency
		if cli.Extract.RateLimit > 0 {
			runner.Limiter = batch.NewHostLimiter(cli.Extract.RateLimit)
		}
		deps.Runner = runner
	case "tags":
		runner, closeFn, err := m.newRunner([]string{cli.Tags.Source}, cli.Tags.Render, cli.Timeout, logger, stderr)
		if err != nil {
			return err
		}
		defer closeFn()
		deps.Runner = runner
	}

	return kongCtx.Run(deps)
}

// newRunner wires the extraction pipeline. A browser is only started when
// rendering is requested and at least one source is a URL.
func (m *Main) newRunner(sources []string, render bool, timeout time.Duration, logger *slog.Logger, stderr io.Writer) (*batch.Runner, func(), error) {
	extractor := goquery.NewExtractor(
		goquery.WithErrorHandler(locslog.StrategyErrorLogger(logger)),
	)
	runner := &batch.Runner{
		Extractor: locslog.NewLoggingExtractor(extractor, logger),
		Stdin:     m.Stdin,
	}
	closeFn := func() {}

	var fetcher locgen.Fetcher
	switch {
	case m.Fetcher != nil:
		fetcher = m.Fetcher
	case render && hasURL(sources):
		f, err := rod.NewFetcher(rod.WithFetchTimeout(timeout))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = f
	default:
		fetcher = lochttp.NewFetcher(lochttp.WithTimeout(timeout))
	}
	if fetcher != m.Fetcher {
		closeFn = func() { _ = fetcher.Close() }
	}
	runner.Fetcher = locslog.NewLoggingFetcher(fetcher, logger)

	return runner, closeFn, nil
}

func hasURL(sources []string) bool {
	for _, s := range sources {
		if batch.IsURL(s) {
			return true
		}
	}
	return false
}
