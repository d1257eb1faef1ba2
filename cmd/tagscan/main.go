package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/tagscan"
	"github.com/fwojciec/tagscan/bench"
	"github.com/fwojciec/tagscan/etree"
	"github.com/fwojciec/tagscan/fs"
	"github.com/fwojciec/tagscan/goquery"
	"github.com/fwojciec/tagscan/htmltomarkdown"
	tshttp "github.com/fwojciec/tagscan/http"
	"github.com/fwojciec/tagscan/readability"
	"github.com/fwojciec/tagscan/rod"
	tsslog "github.com/fwojciec/tagscan/slog"
	"github.com/fwojciec/tagscan/sqlite"
	"github.com/fwojciec/tagscan/trafilatura"
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
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	// Only opened by commands that read or store runs.
	DB *sqlite.DB

	// Stdin is read for the "-" source.
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
		Stdin:  os.Stdin,
	}
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
		kong.Name("tagscan"),
		kong.Description("Extract tag content from malformed markup"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'tagscan --help' to see available commands")
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

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	if cli.Verbose {
		deps.Logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	if needsDB(cmd, cli) {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set TAGSCAN_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()
		deps.Runs = sqlite.NewRunService(m.DB)
	}

	var src *SourceFlags
	switch cmd {
	case "extract":
		src = &cli.Extract.SourceFlags
		if cli.Extract.Out != "" {
			deps.Writer = fs.NewWriter(cli.Extract.Out)
		}
	case "compare":
		src = &cli.Compare.SourceFlags
	case "batch":
		src = &cli.Batch.SourceFlags
		deps.Limiter = bench.NewDomainLimiter(cli.Batch.RPS)
	}

	if src != nil {
		fetcher, err := m.newFetcher(src.Render, deps.Logger)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer fetcher.Close()

		deps.Fetcher = fetcher
		deps.Extractors = newExtractors(deps.Logger)
		deps.Cleaner = newCleaner(src.Clean)
		deps.Converter = htmltomarkdown.NewConverter()
	}

	return kongCtx.Run(deps)
}

func needsDB(cmd string, cli *CLI) bool {
	switch cmd {
	case "runs", "show", "delete":
		return true
	case "extract":
		return cli.Extract.Save
	case "batch":
		return cli.Batch.Save
	}
	return false
}

// newFetcher routes web sources to a static HTTP fetcher, or to headless
// Chrome when render is set, and everything else to local files.
func (m *Main) newFetcher(render bool, logger *slog.Logger) (tagscan.Fetcher, error) {
	var web tagscan.Fetcher = tshttp.NewFetcher()
	if render {
		f, err := rod.NewFetcher()
		if err != nil {
			return nil, err
		}
		web = f
	}

	var fetcher tagscan.Fetcher = &SourceFetcher{
		Files: fs.NewFetcher(fs.WithStdin(m.Stdin)),
		Web:   web,
	}
	if logger != nil {
		fetcher = tsslog.NewLoggingFetcher(fetcher, logger)
	}
	return fetcher, nil
}

func newExtractors(logger *slog.Logger) map[string]tagscan.TagExtractor {
	extractors := map[string]tagscan.TagExtractor{}
	for _, ext := range []tagscan.TagExtractor{
		tagscan.NewScanExtractor(),
		goquery.NewExtractor(),
		etree.NewExtractor(),
	} {
		if logger != nil {
			ext = tsslog.NewLoggingExtractor(ext, logger)
		}
		extractors[ext.Name()] = ext
	}
	return extractors
}

func newCleaner(name string) tagscan.Cleaner {
	switch name {
	case "trafilatura":
		return trafilatura.NewCleaner()
	case "readability":
		return readability.NewCleaner()
	}
	return nil
}

func defaultDBPath() string {
	if path := os.Getenv("TAGSCAN_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "tagscan.db"
	}
	dir := filepath.Join(home, ".tagscan")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "tagscan.db")
}
