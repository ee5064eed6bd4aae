// Package goquery implements record extraction on parsed HTML using the
// github.com/PuerkitoBio/goquery library. It holds the container locator
// cascade, per-field extraction cascades, the listing-vs-article page
// classifier, and next-page discovery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/abrsjh/harvest"
)

// Ensure Extractor implements harvest.RecordExtractor.
var _ harvest.RecordExtractor = (*Extractor)(nil)

// Extractor extracts records of one kind from HTML pages. It is stateless
// across pages and safe for concurrent use.
type Extractor struct {
	profile    harvest.KindProfile
	spec       harvest.FieldSpec
	classifier *Classifier

	currency       string
	country        string
	images         bool
	availability   bool
	ratings        bool
	social         bool
	metadata       bool
	validateEmails bool
	validatePhones bool
	validateURLs   bool
	summary        bool
	summaryLen     int
	keywords       bool
	maxKeywords    int

	markdown  bool
	converter harvest.Converter
}

// NewExtractor builds an extractor from run configuration. The config is
// read once; later mutation has no effect.
func NewExtractor(cfg *harvest.Config) *Extractor {
	currency := cfg.CurrencySymbol
	if currency == "" {
		currency = "$"
	}
	return &Extractor{
		profile:        harvest.Profile(cfg.Kind),
		spec:           cfg.Selectors,
		classifier:     NewClassifier(),
		currency:       currency,
		country:        cfg.CountryCode,
		images:         cfg.ExtractImages,
		availability:   cfg.ExtractAvailability,
		ratings:        cfg.ExtractRatings,
		social:         cfg.ExtractSocial,
		metadata:       cfg.ExtractMetadata,
		validateEmails: cfg.ValidateEmails,
		validatePhones: cfg.ValidatePhones,
		validateURLs:   cfg.ValidateURLs,
		summary:        cfg.GenerateSummary,
		summaryLen:     cfg.SummaryLength,
		keywords:       cfg.ExtractKeywords,
		maxKeywords:    cfg.MaxKeywords,
		markdown:       cfg.MarkdownContent,
	}
}

// SetConverter supplies the Markdown converter used when the run asks
// for Markdown article bodies. Without one the body stays plain text.
func (e *Extractor) SetConverter(c harvest.Converter) {
	e.converter = c
}

// Extract parses a page and returns one record per located container.
// Content pages classified as a single article yield one record extracted
// from the whole document. An empty result is not an error.
func (e *Extractor) Extract(html, baseURL string) ([]harvest.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "failed to parse HTML: %v", err)
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "invalid base URL: %v", err)
	}

	if e.profile.Kind == harvest.KindContent && e.classifier.IsSingleRecordDoc(doc) {
		rec := e.extractArticle(doc.Selection, base, baseURL)
		if rec == nil {
			return nil, nil
		}
		return []harvest.Record{rec}, nil
	}

	containers := e.locate(doc)
	var records []harvest.Record
	containers.Each(func(_ int, s *goquery.Selection) {
		rec := e.extractContainer(s, base)
		if rec != nil {
			records = append(records, rec)
		}
	})
	return records, nil
}

// ExtractDetail parses a detail page as a single record, used to fill in
// fields a listing row did not carry.
func (e *Extractor) ExtractDetail(html, pageURL string) (harvest.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "failed to parse HTML: %v", err)
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, harvest.Errorf(harvest.EINVALID, "invalid page URL: %v", err)
	}

	var rec harvest.Record
	switch e.profile.Kind {
	case harvest.KindContent:
		rec = e.extractArticle(doc.Selection, base, pageURL)
	default:
		rec = e.extractContainer(doc.Selection, base)
		if rec != nil && rec.String("url") == "" {
			rec["url"] = pageURL
		}
	}
	if rec == nil {
		return nil, harvest.Errorf(harvest.ENOTFOUND, "no record found on %s", pageURL)
	}
	return rec, nil
}

// extractContainer dispatches to the kind-specific field cascades. It
// returns nil when the identity field is missing.
func (e *Extractor) extractContainer(s *goquery.Selection, base *url.URL) harvest.Record {
	switch e.profile.Kind {
	case harvest.KindBusiness:
		return e.extractBusiness(s)
	case harvest.KindContent:
		return e.extractListing(s, base)
	default:
		return e.extractProduct(s, base)
	}
}

// specField copies any user-configured selector fields not already set by
// the built-in cascades.
func (e *Extractor) specFields(s *goquery.Selection, rec harvest.Record) {
	for field, selector := range e.spec {
		if field == e.profile.ContainerKey || selector == "" {
			continue
		}
		if rec.Has(field) {
			continue
		}
		if n := s.Find(selector).First(); n.Length() > 0 {
			if text := harvest.CleanText(n.Text()); text != "" {
				rec[field] = text
			}
		}
	}
}

// text runs one field's cascade: the explicit selector first, then the
// conventional selectors in order. First match with a node wins even if
// its text is empty, so an explicit selector is never second-guessed.
func (e *Extractor) text(s *goquery.Selection, field string, fallbacks ...string) string {
	if selector := e.spec[field]; selector != "" {
		if n := s.Find(selector).First(); n.Length() > 0 {
			return harvest.CleanText(n.Text())
		}
	}
	for _, selector := range fallbacks {
		if n := s.Find(selector).First(); n.Length() > 0 {
			return harvest.CleanText(n.Text())
		}
	}
	return ""
}

// resolve makes href absolute against base. data: URIs and already
// absolute links pass through unchanged.
func resolve(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "data:") {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}
