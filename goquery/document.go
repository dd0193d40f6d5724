package goquery

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/marketscan"
	"golang.org/x/net/html/charset"
)

var _ marketscan.BlockSource = (*Document)(nil)

// Document isolates post blocks from captured feed pages.
type Document struct {
	matchers map[marketscan.Marker]goquery.Matcher
}

// NewDocument compiles selectors and returns a Document using them.
func NewDocument(selectors Selectors) (*Document, error) {
	matchers, err := selectors.compile()
	if err != nil {
		return nil, err
	}
	return &Document{matchers: matchers}, nil
}

// Blocks parses html and returns one block per post in document order.
// The page is already decoded, so any <meta charset> it declares is ignored.
func (d *Document) Blocks(html string) ([]marketscan.Block, error) {
	return d.blocks(strings.NewReader(html))
}

// Parse is like Blocks but reads the page from r. The content type is used
// together with any <meta charset> in the page to decode non-UTF-8 input.
func (d *Document) Parse(r io.Reader, contentType string) ([]marketscan.Block, error) {
	utf8, err := charset.NewReader(r, contentType)
	if err != nil {
		return nil, marketscan.Errorf(marketscan.EINVALID, "failed to decode HTML: %v", err)
	}
	return d.blocks(utf8)
}

func (d *Document) blocks(r io.Reader) ([]marketscan.Block, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, marketscan.Errorf(marketscan.EINVALID, "failed to parse HTML: %v", err)
	}

	root := &Block{sel: doc.Selection, matchers: d.matchers}
	return root.FindAll(marketscan.MarkerPostBlock), nil
}
