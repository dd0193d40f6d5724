package marketscan_test

import (
	"testing"

	"github.com/fwojciec/marketscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func valid(dollars ...int) []marketscan.Amount {
	out := make([]marketscan.Amount, 0, len(dollars))
	for _, d := range dollars {
		out = append(out, marketscan.Amount{Dollars: d, Valid: true})
	}
	return out
}

func TestExtractPrices(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []marketscan.Amount
	}{
		{
			name: "truncates cents and skips thousands separators",
			text: "It is $1,000.50/month total; the bedroom is $500.",
			want: valid(1000, 500),
		},
		{
			name: "emits amount running to end of input",
			text: "Asking $850",
			want: valid(850),
		},
		{
			name: "amount is the whole input",
			text: "$1,200",
			want: valid(1200),
		},
		{
			name: "no dollar signs",
			text: "Room for rent, 800 a month",
			want: nil,
		},
		{
			name: "empty input",
			text: "",
			want: nil,
		},
		{
			name: "dollar sign without digits is malformed",
			text: "price in $ only",
			want: []marketscan.Amount{{}},
		},
		{
			name: "trailing dollar sign is malformed",
			text: "rent is 900$",
			want: []marketscan.Amount{{}},
		},
		{
			name: "adjacent amounts keep only the first",
			text: "$500$400 ",
			want: valid(500),
		},
		{
			name: "doubled dollar sign is malformed",
			text: "$$500 each",
			want: []marketscan.Amount{{}},
		},
		{
			name: "zero is a real amount",
			text: "$0 deposit",
			want: valid(0),
		},
		{
			name: "multiple amounts in order",
			text: "$50 fee, $1,450 rent, $25 parking",
			want: valid(50, 1450, 25),
		},
		{
			name: "comma directly after sign",
			text: "$,900/mo",
			want: valid(900),
		},
		{
			name: "non-ascii text around amounts",
			text: "Loyer: $700 — très bien",
			want: valid(700),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, marketscan.ExtractPrices(tt.text))
		})
	}
}

func TestParseAmount(t *testing.T) {
	t.Parallel()

	t.Run("parses whole dollars", func(t *testing.T) {
		t.Parallel()

		got, err := marketscan.ParseAmount("$200")
		require.NoError(t, err)
		assert.Equal(t, 200, got)
	})

	t.Run("truncates cents and skips commas", func(t *testing.T) {
		t.Parallel()

		got, err := marketscan.ParseAmount("$1,299.99")
		require.NoError(t, err)
		assert.Equal(t, 1299, got)
	})

	t.Run("tolerates surrounding whitespace", func(t *testing.T) {
		t.Parallel()

		got, err := marketscan.ParseAmount("  $650\n")
		require.NoError(t, err)
		assert.Equal(t, 650, got)
	})

	t.Run("parses zero", func(t *testing.T) {
		t.Parallel()

		got, err := marketscan.ParseAmount("$0")
		require.NoError(t, err)
		assert.Equal(t, 0, got)
	})

	t.Run("returns EINVALID without digits", func(t *testing.T) {
		t.Parallel()

		_, err := marketscan.ParseAmount("FREE")
		require.Error(t, err)
		assert.Equal(t, marketscan.EINVALID, marketscan.ErrorCode(err))
	})

	t.Run("returns EINVALID for bare dollar sign", func(t *testing.T) {
		t.Parallel()

		_, err := marketscan.ParseAmount("$")
		require.Error(t, err)
		assert.Equal(t, marketscan.EINVALID, marketscan.ErrorCode(err))
	})

	t.Run("returns EINVALID on overflow", func(t *testing.T) {
		t.Parallel()

		_, err := marketscan.ParseAmount("$99999999999999999999999999")
		require.Error(t, err)
		assert.Equal(t, marketscan.EINVALID, marketscan.ErrorCode(err))
	})
}

func TestLowestPrice(t *testing.T) {
	t.Parallel()

	t.Run("returns smallest amount above threshold", func(t *testing.T) {
		t.Parallel()

		got, ok := marketscan.LowestPrice(valid(2000, 1000, 1500), 300)
		require.True(t, ok)
		assert.Equal(t, 1000, got)
	})

	t.Run("ignores amounts at or below threshold", func(t *testing.T) {
		t.Parallel()

		got, ok := marketscan.LowestPrice(valid(10, 25, 1000), 300)
		require.True(t, ok)
		assert.Equal(t, 1000, got)
	})

	t.Run("threshold itself does not qualify", func(t *testing.T) {
		t.Parallel()

		_, ok := marketscan.LowestPrice(valid(300), 300)
		assert.False(t, ok)
	})

	t.Run("returns false when nothing qualifies", func(t *testing.T) {
		t.Parallel()

		_, ok := marketscan.LowestPrice(valid(10), 300)
		assert.False(t, ok)
	})

	t.Run("returns false for no candidates", func(t *testing.T) {
		t.Parallel()

		_, ok := marketscan.LowestPrice(nil, 300)
		assert.False(t, ok)
	})

	t.Run("skips malformed amounts", func(t *testing.T) {
		t.Parallel()

		amounts := []marketscan.Amount{{}, {Dollars: 900, Valid: true}, {}}

		got, ok := marketscan.LowestPrice(amounts, 300)
		require.True(t, ok)
		assert.Equal(t, 900, got)
	})

	t.Run("custom threshold", func(t *testing.T) {
		t.Parallel()

		got, ok := marketscan.LowestPrice(valid(40, 60, 80), 50)
		require.True(t, ok)
		assert.Equal(t, 60, got)
	})
}
