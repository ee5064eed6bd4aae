package readability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abrsjh/harvest"
	"github.com/abrsjh/harvest/readability"
)

func TestExtractor_RejectsEmptyInput(t *testing.T) {
	t.Parallel()

	ext := readability.NewExtractor()
	_, err := ext.ExtractContent(context.Background(), "", "")

	require.Error(t, err)
	assert.Equal(t, harvest.EINVALID, harvest.ErrorCode(err))
}

func TestExtractor_KeepsArticleText(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<nav><a href="/home">Home Nav Link</a><a href="/about">About Nav Link</a></nav>
<article><p>This is the main article content that should be preserved in the output.</p></article>
<footer><p>Footer copyright text 2024</p></footer>
</body>
</html>`

	ext := readability.NewExtractor()
	content, err := ext.ExtractContent(context.Background(), html, "https://example.com/post")

	require.NoError(t, err)
	assert.Contains(t, content, "main article content that should be preserved")
	assert.NotContains(t, content, "Home Nav Link")
	assert.NotContains(t, content, "Footer copyright text")
}

func TestExtractor_RemovesSidebar(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<aside class="sidebar"><p>Sidebar navigation content</p></aside>
<article><p>This is the main article content that should be preserved in the output.</p></article>
</body>
</html>`

	ext := readability.NewExtractor()
	content, err := ext.ExtractContent(context.Background(), html, "")

	require.NoError(t, err)
	assert.NotContains(t, content, "Sidebar navigation content")
}

func TestExtractor_KeepsHeadingsAndParagraphs(t *testing.T) {
	t.Parallel()

	html := `<!DOCTYPE html>
<html>
<head><title>Test</title></head>
<body>
<article>
<h1>Main Heading</h1>
<p>Some intro text here that sets up the rest of the article.</p>
<h2>Subheading Level Two</h2>
<p>More content under the subheading with a bit of length to it.</p>
</article>
</body>
</html>`

	ext := readability.NewExtractor()
	content, err := ext.ExtractContent(context.Background(), html, "")

	require.NoError(t, err)
	assert.Contains(t, content, "Main Heading")
	assert.Contains(t, content, "Subheading Level Two")
	assert.Contains(t, content, "intro text here")
}

func TestExtractor_RespectsContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ext := readability.NewExtractor()
	_, err := ext.ExtractContent(ctx, "<html><body><p>x</p></body></html>", "")
	require.Error(t, err)
}
