package main

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/fwojciec/marketscan"
	"github.com/fwojciec/marketscan/goquery"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    marketscan.Config
	Blocks    marketscan.BlockSource
	Snapshots marketscan.SnapshotStore
	Capturer  marketscan.Capturer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Dir     string `type:"path" default:"~/.marketscan" env:"MARKETSCAN_DIR" help:"Snapshot directory"`
	Verbose bool   `short:"v" help:"Log progress to stderr"`

	Threshold        int               `default:"${threshold}" help:"Amounts at or below this are not asking prices"`
	BaseURL          string            `name:"base-url" default:"${base_url}" help:"Origin relative permalinks are resolved against"`
	MessagedKeywords []string          `name:"messaged-keywords" help:"Comment phrases that mean the commenter reached out"`
	SubletKeywords   []string          `name:"sublet-keywords" help:"Phrases that mark a sublet"`
	BuyerKeywords    []string          `name:"buyer-keywords" help:"Phrases that mark someone looking rather than offering"`
	FreeKeywords     []string          `name:"free-keywords" help:"Price field phrases that mark a giveaway"`
	Selector         map[string]string `placeholder:"MARKER=CSS" help:"Override the CSS selector for a marker (repeatable)"`

	Capture CaptureCmd `cmd:"" help:"Capture a group feed to a snapshot"`
	Scan    ScanCmd    `cmd:"" help:"Scan a snapshot for listings within budget"`
	Run     RunCmd     `cmd:"" help:"Capture a group feed and scan it"`
	List    ListCmd    `cmd:"" help:"List stored snapshots"`
}

// CaptureFlags configure how a feed is captured.
type CaptureFlags struct {
	Username string        `env:"MARKETSCAN_USERNAME" help:"Login email"`
	Password string        `env:"MARKETSCAN_PASSWORD" help:"Login password"`
	Pages    int           `default:"10" help:"Times to scroll to the bottom of the feed"`
	Delay    time.Duration `default:"2s" help:"Wait after each scroll for posts to load"`
	Name     string        `help:"Snapshot name (random when empty)"`
	Static   bool          `help:"Download with a plain HTTP GET instead of a browser"`
	Headed   bool          `help:"Show the browser window"`
}

// ScanFlags configure which posts a scan reports.
type ScanFlags struct {
	Budget      int    `required:"" help:"Highest acceptable price"`
	Sublet      string `default:"idc" help:"Sublets: y (only), n (exclude) or idc"`
	All         bool   `help:"Include posts by people looking rather than offering"`
	Strict      bool   `help:"Fail on posts that cannot be read instead of skipping them"`
	Dedup       bool   `help:"Drop repeated permalinks. Uses a Bloom filter, so a distinct post is dropped with probability 1e-4"`
	Format      string `default:"text" enum:"text,json" help:"Output format (text, json)"`
	Concurrency int    `short:"c" default:"${concurrency}" help:"Posts assembled in parallel"`
}

// CaptureCmd is the "capture" subcommand.
type CaptureCmd struct {
	URL          string `arg:"" name:"group-url" help:"Group feed URL"`
	CaptureFlags `embed:""`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	Snapshot  string `arg:"" help:"Snapshot name or path to an HTML file"`
	ScanFlags `embed:""`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	URL          string `arg:"" name:"group-url" help:"Group feed URL"`
	CaptureFlags `embed:""`
	ScanFlags    `embed:""`
}

// ListCmd is the "list" subcommand.
type ListCmd struct{}

// config builds the classifier configuration from global flags.
func (c *CLI) config() (marketscan.Config, error) {
	cfg := marketscan.DefaultConfig()
	cfg.NoiseThreshold = c.Threshold
	cfg.BaseURL = c.BaseURL
	if len(c.MessagedKeywords) > 0 {
		cfg.MessagedKeywords = c.MessagedKeywords
	}
	if len(c.SubletKeywords) > 0 {
		cfg.SubletKeywords = c.SubletKeywords
	}
	if len(c.BuyerKeywords) > 0 {
		cfg.BuyerKeywords = c.BuyerKeywords
	}
	if len(c.FreeKeywords) > 0 {
		cfg.FreeKeywords = c.FreeKeywords
	}
	return cfg, cfg.Validate()
}

// selectors returns the default selectors with --selector overrides applied.
func (c *CLI) selectors() (goquery.Selectors, error) {
	markers := marketscan.Markers()
	override := make(goquery.Selectors, len(c.Selector))
	for name, sel := range c.Selector {
		m := marketscan.Marker(name)
		if !slices.Contains(markers, m) {
			return nil, marketscan.Errorf(marketscan.EINVALID, "unknown marker %q", name)
		}
		override[m] = sel
	}
	return goquery.DefaultSelectors().Merge(override), nil
}
