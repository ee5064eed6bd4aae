// Package readability provides an alternative content-extraction
// fallback built on go-readability.
package readability

import (
	"context"
	"net/url"
	"strings"

	"github.com/go-shiori/go-readability"

	"github.com/abrsjh/harvest"
)

// Ensure Extractor implements harvest.ContentExtractor at compile time.
var _ harvest.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to pull article text out of raw HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractContent returns the main article text of the page.
func (e *Extractor) ExtractContent(ctx context.Context, rawHTML, pageURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if rawHTML == "" {
		return "", harvest.Errorf(harvest.EINVALID, "empty HTML input")
	}

	var pageU *url.URL
	if pageURL != "" {
		pageU, _ = url.Parse(pageURL)
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), pageU)
	if err != nil {
		return "", harvest.Errorf(harvest.ENOTFOUND, "no article content found: %v", err)
	}

	content := strings.TrimSpace(article.TextContent)
	if content == "" {
		return "", harvest.Errorf(harvest.ENOTFOUND, "no article content found")
	}
	return content, nil
}
