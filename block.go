package marketscan

// Marker names a structural role inside a captured feed page. The DOM layer
// decides how a marker maps onto concrete markup.
type Marker string

// Marker constants used by the Assembler and BlockSource.
const (
	MarkerPostBlock        Marker = "post-block"
	MarkerCommentBlock     Marker = "comment-block"
	MarkerCommentAuthor    Marker = "comment-author"
	MarkerCommentContent   Marker = "comment-content"
	MarkerAuthor           Marker = "author"
	MarkerTimestampWrapper Marker = "timestamp-wrapper"
	MarkerTimestampText    Marker = "timestamp-text"
	MarkerProductListing   Marker = "product-listing"
	MarkerProductPrice     Marker = "product-price"
	MarkerRegularPostBody  Marker = "regular-post-body"

	// MarkerAnchor matches any descendant carrying a hyperlink.
	MarkerAnchor Marker = "anchor"
)

// Markers returns every marker the extraction engine relies on.
func Markers() []Marker {
	return []Marker{
		MarkerPostBlock,
		MarkerCommentBlock,
		MarkerCommentAuthor,
		MarkerCommentContent,
		MarkerAuthor,
		MarkerTimestampWrapper,
		MarkerTimestampText,
		MarkerProductListing,
		MarkerProductPrice,
		MarkerRegularPostBody,
		MarkerAnchor,
	}
}

// Block is an isolated region of markup holding one post or comment along
// with its nested elements. The extraction engine only sees markup through
// this interface.
type Block interface {
	// FindAll returns all descendants matching the marker in document order.
	FindAll(m Marker) []Block

	// FindFirst returns the first descendant matching the marker.
	FindFirst(m Marker) (Block, bool)

	// Text returns the flattened visible text of the block.
	Text() string

	// Attr returns the value of the named attribute on the block itself.
	Attr(name string) (string, bool)
}

// BlockSource isolates the top-level content blocks of a captured page.
type BlockSource interface {
	// Blocks parses html and returns one Block per post, in document order.
	Blocks(html string) ([]Block, error)
}
