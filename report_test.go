package marketscan_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/fwojciec/marketscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatPost(t *testing.T) {
	t.Parallel()

	t.Run("formats listing with interest and followups", func(t *testing.T) {
		t.Parallel()

		result := marketscan.FormatPost(samplePost())

		expected := "$900 - Jane - Yesterday\n" +
			"\"Room $900...\"\n" +
			"2+ interested!\n" +
			"Jane: Still available\n" +
			"Jane: Pending pickup\n" +
			"http://www.facebook.com/p/1\n\n"
		assert.Equal(t, expected, result)
	})

	t.Run("truncates content to excerpt length", func(t *testing.T) {
		t.Parallel()

		p := samplePost()
		p.Listing.Content = strings.Repeat("é", 200)

		result := marketscan.FormatPost(p)

		assert.Contains(t, result, "\""+strings.Repeat("é", 180)+"...\"\n")
		assert.NotContains(t, result, strings.Repeat("é", 181))
	})

	t.Run("formats post without listing", func(t *testing.T) {
		t.Parallel()

		p := &marketscan.Post{Author: "Kim", Timestamp: "Today", Link: "http://x/p"}

		result := marketscan.FormatPost(p)

		assert.Equal(t, "$- - Kim - Today\n\"...\"\n0+ interested!\nhttp://x/p\n\n", result)
	})
}

func TestFormatReport(t *testing.T) {
	t.Parallel()

	t.Run("joins posts", func(t *testing.T) {
		t.Parallel()

		p := samplePost()
		result := marketscan.FormatReport([]*marketscan.Post{p, p})

		assert.Equal(t, marketscan.FormatPost(p)+marketscan.FormatPost(p), result)
	})

	t.Run("returns empty string for nil slice", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, marketscan.FormatReport(nil))
	})
}

func TestExcerpt(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", marketscan.Excerpt("abc", 5))
	assert.Equal(t, "ab", marketscan.Excerpt("abc", 2))
	assert.Equal(t, "", marketscan.Excerpt("abc", 0))
	assert.Equal(t, "日本", marketscan.Excerpt("日本語", 2))
}

func TestNewPostView(t *testing.T) {
	t.Parallel()

	cfg := marketscan.DefaultConfig()

	t.Run("includes listing fields", func(t *testing.T) {
		t.Parallel()

		p := samplePost()
		p.Listing.Content = "Summer sublet $900"

		v := marketscan.NewPostView(p, cfg)

		require.NotNil(t, v.Price)
		assert.Equal(t, 900, *v.Price)
		require.NotNil(t, v.Content)
		assert.Equal(t, "Summer sublet $900", *v.Content)
		assert.True(t, v.Sublet)
		assert.Equal(t, 2, v.Interest)
		assert.Equal(t, p.Fingerprint(), v.ID)
	})

	t.Run("renders missing listing as null", func(t *testing.T) {
		t.Parallel()

		v := marketscan.NewPostView(&marketscan.Post{Link: "x"}, cfg)

		data, err := json.Marshal(v)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"price":null`)
		assert.Contains(t, string(data), `"content":null`)
		assert.Contains(t, string(data), `"comments":[]`)
	})
}
