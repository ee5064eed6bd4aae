package htmltomarkdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrsjh/harvest"
	"github.com/abrsjh/harvest/htmltomarkdown"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts basic paragraph", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>Hello, world!</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "Hello, world!")
	})

	t.Run("converts headings", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<h1>Title</h1><h2>Subtitle</h2>`)

		require.NoError(t, err)
		assert.Contains(t, md, "# Title")
		assert.Contains(t, md, "## Subtitle")
	})

	t.Run("converts links and emphasis", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<p>Read <a href="https://example.com">this</a> <strong>now</strong>, or <em>later</em>.</p>`)

		require.NoError(t, err)
		assert.Contains(t, md, "[this](https://example.com)")
		assert.Contains(t, md, "**now**")
		assert.Contains(t, md, "*later*")
	})

	t.Run("converts lists", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<ul><li>First</li><li>Second</li></ul><ol><li>One</li><li>Two</li></ol>`)

		require.NoError(t, err)
		assert.Contains(t, md, "- First")
		assert.Contains(t, md, "- Second")
		assert.Contains(t, md, "1. One")
		assert.Contains(t, md, "2. Two")
	})

	t.Run("converts blockquotes", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(`<blockquote><p>Quoted words.</p></blockquote>`)

		require.NoError(t, err)
		assert.Contains(t, md, "> Quoted words.")
	})

	t.Run("converts tables", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<thead><tr><th>Product</th><th>Price</th></tr></thead>
<tbody><tr><td>Widget</td><td>$9.99</td></tr></tbody>
</table>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		// Cells may carry alignment padding, so match content and structure.
		assert.Contains(t, md, "Product")
		assert.Contains(t, md, "Widget")
		assert.Contains(t, md, "|")
		assert.Contains(t, md, "---")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()
		_, err := conv.Convert("   ")

		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})

	t.Run("handles a full blog post body", func(t *testing.T) {
		t.Parallel()

		html := `<div>
<h1>Scraping Product Pages</h1>
<p>Most catalogs mark up each item the same way.</p>
<h2>Containers</h2>
<p>Look for repeated elements such as <code>.product-card</code>.</p>
<ul><li>Check class names</li><li>Check data attributes</li></ul>
<blockquote><p>When in doubt, count headings.</p></blockquote>
</div>`

		conv := htmltomarkdown.NewConverter()
		md, err := conv.Convert(html)

		require.NoError(t, err)
		assert.Contains(t, md, "# Scraping Product Pages")
		assert.Contains(t, md, "## Containers")
		assert.Contains(t, md, "`.product-card`")
		assert.Contains(t, md, "- Check class names")
		assert.Contains(t, md, "> When in doubt, count headings.")
	})
}
