package marketscan

import (
	"fmt"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// NonUserAuthor is the author recorded for posts with no attributable member
// author. Such blocks are most likely advertisements.
const NonUserAuthor = "!NOT A USER POST!"

// Comment is the textual content of a single comment on a post.
type Comment struct {
	Author  string `json:"author"`
	Content string `json:"content"`

	// Messaged is derived from Content by Config.NewComment.
	Messaged bool `json:"messaged"`
}

// NewComment returns a comment with Messaged derived from content.
func (c Config) NewComment(author, content string) Comment {
	return Comment{
		Author:   author,
		Content:  content,
		Messaged: c.HasMessaged(content),
	}
}

// String returns the comment formatted as "author: content".
func (c Comment) String() string {
	return c.Author + ": " + c.Content
}

// Listing is the priced part of a post. A post either has both a price and
// the content it was read from, or neither.
type Listing struct {
	Price   int    `json:"price"`
	Content string `json:"content"`
}

// Post is the textual content of a feed post along with its comments.
type Post struct {
	// Comments in document order.
	Comments []Comment `json:"comments"`

	// Author is NonUserAuthor when no member author could be found.
	Author string `json:"author"`

	Link      string `json:"link"`
	Timestamp string `json:"timestamp"`

	// Listing is nil when no plausible price was found or the listing was
	// discarded as noise.
	Listing *Listing `json:"listing,omitempty"`

	// Seller is true when the post offers rather than seeks something.
	Seller bool `json:"seller"`
}

// Price returns the listing price, if any.
func (p *Post) Price() (int, bool) {
	if p.Listing == nil {
		return 0, false
	}
	return p.Listing.Price, true
}

// Content returns the listing content, if any.
func (p *Post) Content() (string, bool) {
	if p.Listing == nil {
		return "", false
	}
	return p.Listing.Content, true
}

// InPriceRange reports whether the post has a price within lower and upper,
// inclusive.
func (p *Post) InPriceRange(lower, upper int) bool {
	price, ok := p.Price()
	return ok && lower <= price && price <= upper
}

// Interest returns the number of commenters who likely messaged the poster.
func (p *Post) Interest() int {
	n := 0
	for _, c := range p.Comments {
		if c.Messaged {
			n++
		}
	}
	return n
}

// Followups returns the comments written by the post author.
func (p *Post) Followups() []Comment {
	var out []Comment
	for _, c := range p.Comments {
		if c.Author == p.Author {
			out = append(out, c)
		}
	}
	return out
}

// Fingerprint returns a stable identifier derived from the permalink.
func (p *Post) Fingerprint() string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(p.Link))
}

// Equal reports whether p and other hold the same values, comments included.
func (p *Post) Equal(other *Post) bool {
	if p == nil || other == nil {
		return p == other
	}
	if p.Author != other.Author || p.Link != other.Link ||
		p.Timestamp != other.Timestamp || p.Seller != other.Seller {
		return false
	}
	if (p.Listing == nil) != (other.Listing == nil) {
		return false
	}
	if p.Listing != nil && *p.Listing != *other.Listing {
		return false
	}
	return slices.Equal(p.Comments, other.Comments)
}
