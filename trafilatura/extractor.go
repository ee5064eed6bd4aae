// Package trafilatura extracts main article content from HTML pages
// whose structure defeats selector-based extraction.
package trafilatura

import (
	"context"
	"net/url"
	"strings"

	"github.com/markusmobius/go-trafilatura"

	"github.com/abrsjh/harvest"
)

// Ensure Extractor implements harvest.ContentExtractor at compile time.
var _ harvest.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to pull article text out of raw HTML.
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

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if pageURL != "" {
		if u, err := url.Parse(pageURL); err == nil {
			opts.OriginalURL = u
		}
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return "", harvest.Errorf(harvest.ENOTFOUND, "no article content found: %v", err)
	}

	content := strings.TrimSpace(result.ContentText)
	if content == "" {
		return "", harvest.Errorf(harvest.ENOTFOUND, "no article content found")
	}
	return content, nil
}
