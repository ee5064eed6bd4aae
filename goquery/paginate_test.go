package goquery_test

import (
	"testing"

	hq "github.com/abrsjh/harvest/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginatorNextPage(t *testing.T) {
	t.Parallel()

	p := hq.NewPaginator()

	t.Run("rel next link", func(t *testing.T) {
		t.Parallel()
		html := `<html><body><a rel="next" href="/blog?page=2">More</a></body></html>`
		next, ok := p.NextPage(html, "https://blog.acme.io/blog")
		require.True(t, ok)
		assert.Equal(t, "https://blog.acme.io/blog?page=2", next)
	})

	t.Run("next class link", func(t *testing.T) {
		t.Parallel()
		html := `<html><body><div class="pagination"><a class="next" href="/blog/p2">2</a></div></body></html>`
		next, ok := p.NextPage(html, "https://blog.acme.io/blog")
		require.True(t, ok)
		assert.Equal(t, "https://blog.acme.io/blog/p2", next)
	})

	t.Run("anchor text next", func(t *testing.T) {
		t.Parallel()
		html := `<html><body>
			<a href="/about">About</a>
			<a href="/blog/2">Next</a>
		</body></html>`
		next, ok := p.NextPage(html, "https://blog.acme.io/blog")
		require.True(t, ok)
		assert.Equal(t, "https://blog.acme.io/blog/2", next)
	})

	t.Run("glyph link", func(t *testing.T) {
		t.Parallel()
		html := `<html><body><a href="/blog/2">»</a></body></html>`
		next, ok := p.NextPage(html, "https://blog.acme.io/blog")
		require.True(t, ok)
		assert.Equal(t, "https://blog.acme.io/blog/2", next)
	})

	t.Run("current indicator link with numbered siblings", func(t *testing.T) {
		t.Parallel()
		html := `<html><body><nav>
			<a class="current" href="/blog/page/2/">2</a>
			<a href="/blog/page/1/">1</a>
			<a href="/blog/page/3/">3</a>
		</nav></body></html>`
		next, ok := p.NextPage(html, "https://blog.acme.io/blog/page/2/")
		require.True(t, ok)
		assert.Equal(t, "https://blog.acme.io/blog/page/3/", next)
	})

	t.Run("current indicator span followed by link", func(t *testing.T) {
		t.Parallel()
		html := `<html><body><nav>
			<span class="current">2</span><a href="/blog/p3">3</a>
		</nav></body></html>`
		next, ok := p.NextPage(html, "https://blog.acme.io/blog")
		require.True(t, ok)
		assert.Equal(t, "https://blog.acme.io/blog/p3", next)
	})

	t.Run("page query parameter incremented", func(t *testing.T) {
		t.Parallel()
		next, ok := p.NextPage("<html><body></body></html>", "https://blog.acme.io/blog?sort=new&page=3")
		require.True(t, ok)
		assert.Equal(t, "https://blog.acme.io/blog?sort=new&page=4", next)
	})

	t.Run("page path segment incremented", func(t *testing.T) {
		t.Parallel()
		next, ok := p.NextPage("<html><body></body></html>", "https://blog.acme.io/blog/page/4/")
		require.True(t, ok)
		assert.Equal(t, "https://blog.acme.io/blog/page/5/", next)
	})

	t.Run("first page with paged links elsewhere", func(t *testing.T) {
		t.Parallel()
		html := `<html><body><a href="/blog/page/2/">2</a></body></html>`
		next, ok := p.NextPage(html, "https://blog.acme.io/blog")
		require.True(t, ok)
		assert.Equal(t, "https://blog.acme.io/blog/page/2/", next)
	})

	t.Run("no pagination found", func(t *testing.T) {
		t.Parallel()
		_, ok := p.NextPage("<html><body><p>only page</p></body></html>", "https://blog.acme.io/blog")
		assert.False(t, ok)
	})
}
