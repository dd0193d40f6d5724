package mock

import "github.com/fwojciec/marketscan"

var (
	_ marketscan.Block       = (*Block)(nil)
	_ marketscan.BlockSource = (*BlockSource)(nil)
)

// Block is an in-memory marketscan.Block. Children are looked up by marker
// only, regardless of depth, which is all the Assembler relies on.
type Block struct {
	TextValue string
	Attrs     map[string]string
	Children  map[marketscan.Marker][]*Block
}

func (b *Block) FindAll(m marketscan.Marker) []marketscan.Block {
	children := b.Children[m]
	out := make([]marketscan.Block, 0, len(children))
	for _, c := range children {
		out = append(out, c)
	}
	return out
}

func (b *Block) FindFirst(m marketscan.Marker) (marketscan.Block, bool) {
	children := b.Children[m]
	if len(children) == 0 {
		return nil, false
	}
	return children[0], true
}

func (b *Block) Text() string {
	return b.TextValue
}

func (b *Block) Attr(name string) (string, bool) {
	v, ok := b.Attrs[name]
	return v, ok
}

// With adds a child under marker m and returns b.
func (b *Block) With(m marketscan.Marker, child *Block) *Block {
	if b.Children == nil {
		b.Children = make(map[marketscan.Marker][]*Block)
	}
	b.Children[m] = append(b.Children[m], child)
	return b
}

// Text returns a leaf block holding s.
func Text(s string) *Block {
	return &Block{TextValue: s}
}

// Anchor returns a leaf block with an href attribute.
func Anchor(text, href string) *Block {
	return &Block{TextValue: text, Attrs: map[string]string{"href": href}}
}

// BlockSource is a mock implementation of marketscan.BlockSource.
type BlockSource struct {
	BlocksFn func(html string) ([]marketscan.Block, error)
}

func (s *BlockSource) Blocks(html string) ([]marketscan.Block, error) {
	return s.BlocksFn(html)
}
