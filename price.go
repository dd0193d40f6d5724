package marketscan

import (
	"strconv"
	"strings"
)

// Amount is a dollar figure scanned out of free text. Valid is false when a
// dollar sign was followed by no digits at all; such an amount is neither a
// zero price nor a missing one.
type Amount struct {
	Dollars int
	Valid   bool
}

// ExtractPrices returns the dollar amounts found in text, in order of
// appearance. An amount starts at a dollar sign and collects the digits that
// follow it; commas are skipped and any other character ends the amount, so
// cents are truncated rather than rounded.
//
// A second dollar sign inside an open amount is kept as part of it, which
// ends digit collection early: "$500$400" yields only 500.
func ExtractPrices(text string) []Amount {
	var amounts []Amount
	var token strings.Builder
	open := false

	for _, r := range text {
		switch {
		case r == '$':
			token.WriteRune(r)
			open = true
		case open && isDigit(r):
			token.WriteRune(r)
		case open && r == ',':
		case open:
			amounts = append(amounts, scanAmount(token.String()))
			token.Reset()
			open = false
		}
	}
	if open {
		amounts = append(amounts, scanAmount(token.String()))
	}

	return amounts
}

// ParseAmount returns the whole-dollar value of a single price field such as
// "$1,299.99". Returns EINVALID if the field holds no digits.
func ParseAmount(s string) (int, error) {
	a := scanAmount(strings.TrimSpace(s))
	if !a.Valid {
		return 0, Errorf(EINVALID, "malformed amount %q", s)
	}
	return a.Dollars, nil
}

// scanAmount parses a token that starts with a dollar sign.
func scanAmount(token string) Amount {
	token = strings.TrimPrefix(token, "$")

	var digits strings.Builder
	for _, r := range token {
		if isDigit(r) {
			digits.WriteRune(r)
		} else if r != ',' {
			break
		}
	}
	if digits.Len() == 0 {
		return Amount{}
	}

	n, err := strconv.Atoi(digits.String())
	if err != nil {
		// Out of range for int.
		return Amount{}
	}
	return Amount{Dollars: n, Valid: true}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// LowestPrice picks the asking price out of candidate amounts: the smallest
// valid amount strictly above threshold. Posts mention small unrelated
// figures (fees, deposits, discounts) often enough that the lowest figure
// above the noise floor is the most plausible price. It is a heuristic and
// can be wrong. Returns false if no amount qualifies.
func LowestPrice(amounts []Amount, threshold int) (int, bool) {
	lowest, found := 0, false
	for _, a := range amounts {
		if !a.Valid || a.Dollars <= threshold {
			continue
		}
		if !found || a.Dollars < lowest {
			lowest, found = a.Dollars, true
		}
	}
	return lowest, found
}
