package trafilatura_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrsjh/harvest"
	"github.com/abrsjh/harvest/trafilatura"
)

func TestExtractor_ExtractContent(t *testing.T) {
	t.Parallel()

	t.Run("extracts article body", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/">Home</a><a href="/blog">Blog</a></nav>
<article>
<h1>Understanding Pagination</h1>
<p>Paginated listings repeat the same structure across pages, and a scraper
can follow the next link until the chain runs out.</p>
<p>Most sites expose the next page through a rel attribute or a numbered list.</p>
</article>
<aside>Sidebar content</aside>
<footer>Copyright 2024</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		content, err := ext.ExtractContent(context.Background(), html, "https://blog.example.com/pagination")

		require.NoError(t, err)
		assert.Contains(t, content, "repeat the same structure across pages")
		assert.Contains(t, content, "numbered list")
	})

	t.Run("drops navigation and footer boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav class="main-nav">
<ul>
<li><a href="/">Home</a></li>
<li><a href="/about">About</a></li>
</ul>
</nav>
<main>
<h1>Main Content</h1>
<p>This paragraph contains the actual content we want to keep around.</p>
</main>
<footer><p>Copyright 2024 Example Corp</p></footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		content, err := ext.ExtractContent(context.Background(), html, "")

		require.NoError(t, err)
		assert.Contains(t, content, "actual content we want")
		assert.NotContains(t, content, "Copyright 2024 Example Corp")
	})

	t.Run("returns EINVALID for empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.ExtractContent(context.Background(), "", "")

		require.Error(t, err)
		assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		ext := trafilatura.NewExtractor()
		_, err := ext.ExtractContent(ctx, "<html><body><p>x</p></body></html>", "")
		require.Error(t, err)
	})

	t.Run("handles minimal valid HTML", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		content, err := ext.ExtractContent(context.Background(),
			`<html><body><article><p>Simple content that stands alone as a short post.</p></article></body></html>`, "")

		require.NoError(t, err)
		assert.Contains(t, content, "Simple content")
	})
}
