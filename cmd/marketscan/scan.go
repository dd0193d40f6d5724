package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fwojciec/marketscan"
	"github.com/fwojciec/marketscan/bloom"
)

// dedupFalsePositiveRate bounds how often a distinct post is mistaken for
// one already reported.
const dedupFalsePositiveRate = 0.0001

// Run executes the scan command.
func (c *ScanCmd) Run(deps *Dependencies) error {
	html, err := deps.Snapshots.Load(deps.Ctx, c.Snapshot)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", marketscan.ErrorMessage(err))
		if marketscan.ErrorCode(err) == marketscan.ENOTFOUND {
			fmt.Fprintln(deps.Stderr, "Hint: Use 'marketscan list' to see stored snapshots")
		}
		return err
	}

	if err := scan(deps, html, c.ScanFlags); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", marketscan.ErrorMessage(err))
		return err
	}
	return nil
}

// scan turns a captured page into a report of matching listings.
func scan(deps *Dependencies, html string, flags ScanFlags) error {
	if flags.Budget < 0 {
		return marketscan.Errorf(marketscan.EINVALID, "budget must not be negative")
	}
	mode, err := marketscan.ParseSubletMode(flags.Sublet)
	if err != nil {
		return err
	}

	blocks, err := deps.Blocks.Blocks(html)
	if err != nil {
		return err
	}

	assembler := marketscan.NewAssembler(deps.Config)
	assembler.Concurrency = flags.Concurrency
	posts, err := assembler.AssembleAll(deps.Ctx, blocks)
	if posts == nil && err != nil {
		return err
	}
	if err != nil {
		if flags.Strict {
			return err
		}
		skipped := countErrors(err)
		deps.Logger.Warn("skipped posts", "count", skipped, "err", err)
		fmt.Fprintf(deps.Stderr, "warning: skipped %d unreadable posts\n", skipped)
	}

	var filters []marketscan.PostFilter
	var seen *bloom.Filter
	if flags.Dedup {
		seen = bloom.NewFilter(uint(len(posts))+1, dedupFalsePositiveRate)
		filters = append(filters, marketscan.Unique(seen))
	}
	if !flags.All {
		filters = append(filters, marketscan.SellerListings())
	}
	filters = append(filters,
		marketscan.Budget(flags.Budget),
		marketscan.Sublet(mode, deps.Config),
	)
	matched := marketscan.Filter(posts, filters...)
	attrs := []any{
		"blocks", len(blocks),
		"posts", len(posts),
		"matched", len(matched),
		"budget", flags.Budget,
		"sublet", mode.String(),
	}
	if seen != nil {
		attrs = append(attrs, "unique", seen.EstimatedCount())
	}
	deps.Logger.Info("scan", attrs...)

	return writeReport(deps.Stdout, matched, deps.Config, flags.Format)
}

func writeReport(w io.Writer, posts []*marketscan.Post, cfg marketscan.Config, format string) error {
	switch format {
	case "json":
		views := make([]marketscan.PostView, 0, len(posts))
		for _, p := range posts {
			views = append(views, marketscan.NewPostView(p, cfg))
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case "", "text":
		if len(posts) == 0 {
			_, err := fmt.Fprintln(w, "No listings found within budget.")
			return err
		}
		_, err := io.WriteString(w, marketscan.FormatReport(posts))
		return err
	default:
		return marketscan.Errorf(marketscan.EINVALID, "unknown format %q", format)
	}
}

// countErrors returns how many errors err joins.
func countErrors(err error) int {
	var joined interface{ Unwrap() []error }
	if errors.As(err, &joined) {
		return len(joined.Unwrap())
	}
	return 1
}
