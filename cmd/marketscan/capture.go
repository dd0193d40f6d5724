package main

import (
	"fmt"

	"github.com/fwojciec/marketscan"
)

// Run executes the capture command.
func (c *CaptureCmd) Run(deps *Dependencies) error {
	_, path, err := capture(deps, c.URL, c.CaptureFlags)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", marketscan.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, path)
	return nil
}

// capture fetches the feed at url and stores it as a snapshot, returning
// the page and where it was saved.
func capture(deps *Dependencies, url string, flags CaptureFlags) (html, path string, err error) {
	req := marketscan.CaptureRequest{
		GroupURL: url,
		Pages:    flags.Pages,
		Delay:    flags.Delay,
	}
	if !flags.Static {
		req.Username = flags.Username
		req.Password = flags.Password
	}
	if err := req.Validate(); err != nil {
		return "", "", err
	}

	html, err = deps.Capturer.Capture(deps.Ctx, req)
	if err != nil {
		return "", "", err
	}

	path, err = deps.Snapshots.Save(deps.Ctx, flags.Name, html)
	if err != nil {
		return "", "", err
	}
	return html, path, nil
}
