package goquery_test

import (
	"testing"

	"github.com/fwojciec/marketscan"
	"github.com/fwojciec/marketscan/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSelectors(t *testing.T) {
	t.Parallel()

	s := goquery.DefaultSelectors()

	require.NoError(t, s.Validate())
	for _, m := range marketscan.Markers() {
		assert.NotEmpty(t, s[m], m)
	}
}

func TestSelectors_Merge(t *testing.T) {
	t.Parallel()

	t.Run("overrides entries", func(t *testing.T) {
		t.Parallel()

		base := goquery.DefaultSelectors()
		merged := base.Merge(goquery.Selectors{marketscan.MarkerPostBlock: "article"})

		assert.Equal(t, "article", merged[marketscan.MarkerPostBlock])
		assert.Equal(t, base[marketscan.MarkerAuthor], merged[marketscan.MarkerAuthor])
	})

	t.Run("ignores empty overrides", func(t *testing.T) {
		t.Parallel()

		base := goquery.DefaultSelectors()
		merged := base.Merge(goquery.Selectors{marketscan.MarkerPostBlock: ""})

		assert.Equal(t, base[marketscan.MarkerPostBlock], merged[marketscan.MarkerPostBlock])
	})

	t.Run("does not modify receiver", func(t *testing.T) {
		t.Parallel()

		base := goquery.DefaultSelectors()
		base.Merge(goquery.Selectors{marketscan.MarkerPostBlock: "article"})

		assert.Equal(t, ".userContentWrapper", base[marketscan.MarkerPostBlock])
	})
}

func TestSelectors_Validate(t *testing.T) {
	t.Parallel()

	t.Run("rejects missing marker", func(t *testing.T) {
		t.Parallel()

		s := goquery.DefaultSelectors()
		delete(s, marketscan.MarkerAnchor)

		err := s.Validate()
		require.Error(t, err)
		assert.Equal(t, marketscan.EINVALID, marketscan.ErrorCode(err))
	})

	t.Run("rejects invalid selector", func(t *testing.T) {
		t.Parallel()

		s := goquery.DefaultSelectors().Merge(goquery.Selectors{marketscan.MarkerAuthor: "[["})

		err := s.Validate()
		require.Error(t, err)
		assert.Equal(t, marketscan.EINVALID, marketscan.ErrorCode(err))
	})

	t.Run("new document rejects invalid selectors", func(t *testing.T) {
		t.Parallel()

		_, err := goquery.NewDocument(goquery.Selectors{})

		require.Error(t, err)
		assert.Equal(t, marketscan.EINVALID, marketscan.ErrorCode(err))
	})
}

func TestDocument_CustomSelectors(t *testing.T) {
	t.Parallel()

	s := goquery.DefaultSelectors().Merge(goquery.Selectors{
		marketscan.MarkerPostBlock:       "article",
		marketscan.MarkerRegularPostBody: "p.body",
	})
	doc, err := goquery.NewDocument(s)
	require.NoError(t, err)

	blocks, err := doc.Blocks(`<main><article><p class="body">Room $700</p></article><article></article></main>`)

	require.NoError(t, err)
	require.Len(t, blocks, 2)
	body, ok := blocks[0].FindFirst(marketscan.MarkerRegularPostBody)
	require.True(t, ok)
	assert.Equal(t, "Room $700", body.Text())
	_, ok = blocks[1].FindFirst(marketscan.MarkerRegularPostBody)
	assert.False(t, ok)
}
