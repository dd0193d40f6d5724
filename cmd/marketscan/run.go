package main

import (
	"fmt"

	"github.com/fwojciec/marketscan"
)

// Run executes the run command.
func (c *RunCmd) Run(deps *Dependencies) error {
	html, path, err := capture(deps, c.URL, c.CaptureFlags)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", marketscan.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stderr, "Saved snapshot to %s\n", path)

	if err := scan(deps, html, c.ScanFlags); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", marketscan.ErrorMessage(err))
		return err
	}
	return nil
}
