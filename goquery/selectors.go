// Package goquery implements the markup side of marketscan: it parses a
// captured feed page and exposes its content blocks through
// marketscan.Block using CSS selectors.
package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/fwojciec/marketscan"
)

// Selectors maps each marker to the CSS selector that finds it.
type Selectors map[marketscan.Marker]string

// DefaultSelectors returns selectors for the classic Facebook group feed
// markup. Class names there change over time, so every entry can be
// overridden.
//
// The author and timestamp wrappers are matched on their exact class
// attribute because "fwn fcg" is a subset of the timestamp's "fsm fwn fcg".
func DefaultSelectors() Selectors {
	return Selectors{
		marketscan.MarkerPostBlock:        ".userContentWrapper",
		marketscan.MarkerCommentBlock:     ".UFICommentContentBlock",
		marketscan.MarkerCommentAuthor:    ".UFICommentActorName",
		marketscan.MarkerCommentContent:   ".UFICommentBody",
		marketscan.MarkerAuthor:           `[class="fwn fcg"]`,
		marketscan.MarkerTimestampWrapper: `[class="fsm fwn fcg"]`,
		marketscan.MarkerTimestampText:    ".timestampContent",
		marketscan.MarkerProductListing:   "._l52",
		marketscan.MarkerProductPrice:     "._l57",
		marketscan.MarkerRegularPostBody:  "._5pbx",
		marketscan.MarkerAnchor:           "[href]",
	}
}

// Merge returns a copy of s with entries from override replacing its own.
// Empty override values are ignored.
func (s Selectors) Merge(override Selectors) Selectors {
	out := make(Selectors, len(s)+len(override))
	for m, sel := range s {
		out[m] = sel
	}
	for m, sel := range override {
		if sel != "" {
			out[m] = sel
		}
	}
	return out
}

// Validate returns an error if a required marker is missing or a selector
// does not compile.
func (s Selectors) Validate() error {
	_, err := s.compile()
	return err
}

func (s Selectors) compile() (map[marketscan.Marker]goquery.Matcher, error) {
	matchers := make(map[marketscan.Marker]goquery.Matcher, len(s))
	for _, m := range marketscan.Markers() {
		sel, ok := s[m]
		if !ok || sel == "" {
			return nil, marketscan.Errorf(marketscan.EINVALID, "no selector for marker %q", m)
		}
		compiled, err := cascadia.Compile(sel)
		if err != nil {
			return nil, marketscan.Errorf(marketscan.EINVALID, "invalid selector %q for marker %q: %v", sel, m, err)
		}
		matchers[m] = compiled
	}
	return matchers, nil
}
