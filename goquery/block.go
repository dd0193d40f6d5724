package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/marketscan"
)

var _ marketscan.Block = (*Block)(nil)

// Block is a marketscan.Block backed by a single-element goquery selection.
type Block struct {
	sel      *goquery.Selection
	matchers map[marketscan.Marker]goquery.Matcher
}

// FindAll returns descendants matching the marker in document order.
// Markers without a selector match nothing.
func (b *Block) FindAll(m marketscan.Marker) []marketscan.Block {
	matcher, ok := b.matchers[m]
	if !ok {
		return nil
	}

	found := b.sel.FindMatcher(matcher)
	blocks := make([]marketscan.Block, 0, found.Length())
	found.Each(func(_ int, sel *goquery.Selection) {
		blocks = append(blocks, &Block{sel: sel, matchers: b.matchers})
	})
	return blocks
}

// FindFirst returns the first descendant matching the marker.
func (b *Block) FindFirst(m marketscan.Marker) (marketscan.Block, bool) {
	matcher, ok := b.matchers[m]
	if !ok {
		return nil, false
	}

	found := b.sel.FindMatcher(matcher).First()
	if found.Length() == 0 {
		return nil, false
	}
	return &Block{sel: found, matchers: b.matchers}, true
}

// Text returns the combined text of the element and its descendants.
func (b *Block) Text() string {
	return b.sel.Text()
}

// Attr returns the named attribute of the element.
func (b *Block) Attr(name string) (string, bool) {
	return b.sel.Attr(name)
}
