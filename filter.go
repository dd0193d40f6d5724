package marketscan

import "strings"

// PostFilter reports whether a post should be kept.
type PostFilter func(p *Post) bool

// Filter returns the posts accepted by every filter, in their original
// order. Filters run in the order given and stop at the first rejection.
// The input slice is not modified.
func Filter(posts []*Post, filters ...PostFilter) []*Post {
	out := make([]*Post, 0, len(posts))
	for _, p := range posts {
		if accept(p, filters) {
			out = append(out, p)
		}
	}
	return out
}

func accept(p *Post, filters []PostFilter) bool {
	for _, f := range filters {
		if !f(p) {
			return false
		}
	}
	return true
}

// SellerListings keeps posts that carry a listing and offer something.
func SellerListings() PostFilter {
	return func(p *Post) bool {
		return p.Listing != nil && p.Seller
	}
}

// PriceRange keeps posts priced within lower and upper, inclusive. Posts
// without a price are dropped.
func PriceRange(lower, upper int) PostFilter {
	return func(p *Post) bool {
		return p.InPriceRange(lower, upper)
	}
}

// Budget keeps posts priced between zero and budget, inclusive.
func Budget(budget int) PostFilter {
	return PriceRange(0, budget)
}

// SubletMode selects how sublet posts are treated.
type SubletMode int

// SubletMode values.
const (
	SubletAny SubletMode = iota
	SubletOnly
	SubletExclude
)

// String returns the canonical name of the mode.
func (m SubletMode) String() string {
	switch m {
	case SubletOnly:
		return "only"
	case SubletExclude:
		return "exclude"
	default:
		return "any"
	}
}

// ParseSubletMode parses the answer to "would you like to sublet?".
// Accepts y/yes/only, n/no/exclude and idc/any or an empty string.
func ParseSubletMode(s string) (SubletMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "only":
		return SubletOnly, nil
	case "n", "no", "exclude":
		return SubletExclude, nil
	case "", "idc", "any":
		return SubletAny, nil
	}
	return SubletAny, Errorf(EINVALID, "invalid sublet mode %q: use y, n or idc", s)
}

// Sublet returns the filter for mode. Posts without content are never
// sublets.
func Sublet(mode SubletMode, cfg Config) PostFilter {
	isSublet := func(p *Post) bool {
		content, ok := p.Content()
		return ok && cfg.IsSublet(content)
	}
	switch mode {
	case SubletOnly:
		return isSublet
	case SubletExclude:
		return func(p *Post) bool { return !isSublet(p) }
	default:
		return func(*Post) bool { return true }
	}
}

// SeenSet records keys that have already been encountered. Implementations
// may report false positives.
type SeenSet interface {
	Add(key string)
	Test(key string) bool
}

// Unique keeps the first post for each permalink and drops repeats. The
// returned filter is stateful and is meant for a single Filter call.
// When seen reports false positives, a distinct post is occasionally
// dropped as a repeat at the same rate.
func Unique(seen SeenSet) PostFilter {
	return func(p *Post) bool {
		if seen.Test(p.Link) {
			return false
		}
		seen.Add(p.Link)
		return true
	}
}
