package harvest

import "context"

// RecordExtractor turns a page of HTML into records. Extract handles
// listing and single-record pages alike; ExtractDetail parses a detail
// page for fields missing from a listing row.
type RecordExtractor interface {
	Extract(html, baseURL string) ([]Record, error)
	ExtractDetail(html, url string) (Record, error)
}

// PageClassifier decides whether a page is one record or a listing of
// many. Listing pages run the container cascade; single pages are
// extracted whole.
type PageClassifier interface {
	IsSingleRecord(html string) bool
}

// Paginator finds the next page of a listing. It returns the absolute
// next-page URL and false when no further page can be discovered.
type Paginator interface {
	NextPage(html, currentURL string) (string, bool)
}

// ContentExtractor pulls the main article body out of a full page,
// used as a fallback when selector cascades find no usable content.
type ContentExtractor interface {
	ExtractContent(ctx context.Context, html, url string) (text string, err error)
}

// Converter renders HTML content into another representation, such as
// Markdown.
type Converter interface {
	Convert(html string) (string, error)
}
