package marketscan

import (
	"net/url"
	"strings"
)

// DefaultNoiseThreshold is the default floor below which dollar amounts are
// treated as incidental figures rather than asking prices.
const DefaultNoiseThreshold = 300

// DefaultBaseURL is the origin permalinks are resolved against.
const DefaultBaseURL = "http://www.facebook.com"

// Config holds the keyword sets and thresholds used by the classifiers and
// the Assembler.
type Config struct {
	// NoiseThreshold is the amount a price must exceed to count.
	NoiseThreshold int `json:"noiseThreshold"`

	// MessagedKeywords mark a comment whose author contacted the poster.
	MessagedKeywords []string `json:"messagedKeywords"`

	// SubletKeywords mark a post offering a sublet.
	SubletKeywords []string `json:"subletKeywords"`

	// BuyerKeywords mark a post written by someone looking rather than
	// offering (e.g. "my budget is $800").
	BuyerKeywords []string `json:"buyerKeywords"`

	// FreeKeywords mark a product price field as a giveaway.
	FreeKeywords []string `json:"freeKeywords"`

	// BaseURL is joined with relative permalinks.
	BaseURL string `json:"baseUrl"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		NoiseThreshold:   DefaultNoiseThreshold,
		MessagedKeywords: []string{"messaged", "interested", "pm'ed", "pm ed"},
		SubletKeywords:   []string{"sublet", "sublease"},
		BuyerKeywords:    []string{"budget"},
		FreeKeywords:     []string{"free"},
		BaseURL:          DefaultBaseURL,
	}
}

// Validate returns an error if the configuration cannot be used.
func (c Config) Validate() error {
	if c.NoiseThreshold < 0 {
		return Errorf(EINVALID, "noise threshold must not be negative")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return Errorf(EINVALID, "base URL %q must be absolute", c.BaseURL)
	}
	return nil
}

// ContainsKeyword reports whether text contains any of keywords, ignoring
// case. Empty keywords never match.
func ContainsKeyword(text string, keywords []string) bool {
	text = strings.ToLower(text)
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// HasMessaged reports whether a comment suggests its author contacted the
// poster.
func (c Config) HasMessaged(content string) bool {
	return ContainsKeyword(content, c.MessagedKeywords)
}

// IsSublet reports whether post content looks like a sublet offer.
func (c Config) IsSublet(content string) bool {
	return ContainsKeyword(content, c.SubletKeywords)
}

// IsSeller reports whether post content looks like an offer. Mentioning a
// buyer keyword marks the poster as looking, so the rule is inverted.
func (c Config) IsSeller(content string) bool {
	return !ContainsKeyword(content, c.BuyerKeywords)
}

// IsFree reports whether a product price field advertises a giveaway.
func (c Config) IsFree(text string) bool {
	return ContainsKeyword(text, c.FreeKeywords)
}
