package rod

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Scroller is a page that grows as it is scrolled.
type Scroller interface {
	ScrollHeight() (int, error)
	ScrollTo(y int) error
}

// Scroll moves to the bottom of s up to pages times, waiting delay after
// each move for more content to load. It stops early once the height stops
// growing and returns the number of moves made.
func Scroll(ctx context.Context, s Scroller, pages int, delay time.Duration) (int, error) {
	height, err := s.ScrollHeight()
	if err != nil {
		return 0, err
	}

	for i := 0; i < pages; i++ {
		if err := s.ScrollTo(height); err != nil {
			return i, err
		}

		select {
		case <-ctx.Done():
			return i + 1, ctx.Err()
		case <-time.After(delay):
		}

		previous := height
		height, err = s.ScrollHeight()
		if err != nil {
			return i + 1, err
		}
		if height == previous {
			return i + 1, nil
		}
	}
	return pages, nil
}

// ExpandQuery returns an XPath expression matching links whose text
// contains any of phrases.
func ExpandQuery(phrases []string) string {
	conds := make([]string, 0, len(phrases))
	for _, p := range phrases {
		if p == "" {
			continue
		}
		conds = append(conds, fmt.Sprintf("contains(., %s)", xpathLiteral(p)))
	}
	if len(conds) == 0 {
		return "//a[false()]"
	}
	return "//a[" + strings.Join(conds, " or ") + "]"
}

// xpathLiteral quotes s for XPath 1.0, which has no escape sequences.
func xpathLiteral(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	parts := strings.Split(s, "'")
	quoted := make([]string, 0, 2*len(parts)-1)
	for i, part := range parts {
		if i > 0 {
			quoted = append(quoted, `"'"`)
		}
		quoted = append(quoted, "'"+part+"'")
	}
	return "concat(" + strings.Join(quoted, ", ") + ")"
}
