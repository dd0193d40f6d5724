package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/marketscan"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	snapshots, err := deps.Snapshots.List(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", marketscan.ErrorMessage(err))
		return err
	}

	if len(snapshots) == 0 {
		fmt.Fprintln(deps.Stdout, "No snapshots found. Use 'marketscan capture' to create one.")
		return nil
	}

	for _, s := range snapshots {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d bytes\n", s.Name, s.ModTime.Format(time.DateTime), s.Size)
	}

	return nil
}
