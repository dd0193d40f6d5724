package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/marketscan"
	"github.com/fwojciec/marketscan/fs"
	"github.com/fwojciec/marketscan/goquery"
	mshttp "github.com/fwojciec/marketscan/http"
	"github.com/fwojciec/marketscan/rod"
	msslog "github.com/fwojciec/marketscan/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// DefaultConfigPath is the JSON file flag values are read from when present.
const DefaultConfigPath = "~/.marketscan.json"

// Main represents the program.
type Main struct {
	// JSON files providing flag values. Set before calling Run().
	ConfigPaths []string

	// Services for end-to-end testing. Real implementations are wired
	// when these are nil.
	Capturer  marketscan.Capturer
	Snapshots marketscan.SnapshotStore
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPaths: []string{DefaultConfigPath},
	}
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
		kong.Name("marketscan"),
		kong.Description("Find housing listings within budget in a Facebook group feed"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(kong.JSON, m.ConfigPaths...),
		kong.Vars{
			"threshold":   strconv.Itoa(marketscan.DefaultNoiseThreshold),
			"base_url":    marketscan.DefaultBaseURL,
			"concurrency": strconv.Itoa(marketscan.DefaultConcurrency),
		},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'marketscan --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	cfg, err := cli.config()
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", marketscan.ErrorMessage(err))
		return err
	}
	deps.Config = cfg

	selectors, err := cli.selectors()
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", marketscan.ErrorMessage(err))
		return err
	}
	doc, err := goquery.NewDocument(selectors)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", marketscan.ErrorMessage(err))
		return err
	}
	deps.Blocks = msslog.NewLoggingBlockSource(doc, deps.Logger)

	snapshots := m.Snapshots
	if snapshots == nil {
		store := fs.NewSnapshotStore(cli.Dir)
		deps.Logger.Debug("snapshot store", "dir", store.Dir())
		snapshots = store
	}
	deps.Snapshots = msslog.NewLoggingSnapshotStore(snapshots, deps.Logger)

	// Only capturing commands need a browser.
	var flags *CaptureFlags
	switch command(kongCtx) {
	case "capture":
		flags = &cli.Capture.CaptureFlags
	case "run":
		flags = &cli.Run.CaptureFlags
	}
	if flags != nil {
		capturer, err := m.newCapturer(*flags, deps.Logger)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed, or use --static")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		deps.Capturer = msslog.NewLoggingCapturer(capturer, deps.Logger)
		defer deps.Capturer.Close()
	}

	return kongCtx.Run(deps)
}

func (m *Main) newCapturer(flags CaptureFlags, logger *slog.Logger) (marketscan.Capturer, error) {
	if m.Capturer != nil {
		return m.Capturer, nil
	}
	if flags.Static {
		return mshttp.NewCapturer(mshttp.WithLogger(logger)), nil
	}
	return rod.NewCapturer(rod.WithHeadless(!flags.Headed))
}

// command returns the name of the selected top-level command.
func command(ctx *kong.Context) string {
	fields := strings.Fields(ctx.Command())
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
