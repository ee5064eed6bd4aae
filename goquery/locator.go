package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/abrsjh/harvest"
)

// Kind signals for the content heuristic. A candidate container must show
// a heading plus one of these before it is trusted as a record.
var (
	priceSignalRe   = regexp.MustCompile(`[$€£]\s*\d+\.?\d*`)
	phoneSignalRe   = regexp.MustCompile(`\(\d{3}\)\s*\d{3}-\d{4}`)
	emailSignalRe   = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	addressSignalRe = regexp.MustCompile(`\d+\s+[A-Za-z\s]+,\s+[A-Za-z\s]+,\s+[A-Z]{2}`)
	dateSignalRe    = regexp.MustCompile(`\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`)
)

// locate finds the record containers on a page. Strategies are tried in
// order and the first one yielding any nodes wins; results of different
// strategies are never merged.
func (e *Extractor) locate(doc *goquery.Document) *goquery.Selection {
	// Explicit container selector from the field spec.
	if selector := e.spec[e.profile.ContainerKey]; selector != "" {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return sel
		}
	}

	// Conventional container selectors for the kind.
	for _, selector := range e.profile.ContainerSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			return sel
		}
	}

	// Structural heuristic: candidate tags whose class mentions a
	// kind keyword.
	tags := strings.Join(e.profile.ContentTags, ", ")
	byClass := doc.Find(tags).FilterFunction(func(_ int, s *goquery.Selection) bool {
		class, ok := s.Attr("class")
		if !ok {
			return false
		}
		class = strings.ToLower(class)
		for _, kw := range e.profile.ClassKeywords {
			if strings.Contains(class, kw) {
				return true
			}
		}
		return false
	})
	if byClass.Length() > 0 {
		return byClass
	}

	// Content heuristic, last resort: a heading-like node plus a
	// kind-specific content signal. Both are required.
	return doc.Find(tags).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return e.hasHeading(s) && e.hasKindSignal(s)
	})
}

func (e *Extractor) hasHeading(s *goquery.Selection) bool {
	switch e.profile.Kind {
	case harvest.KindBusiness:
		return s.Find("h1, h2, h3, h4, strong, b").Length() > 0
	case harvest.KindContent:
		if s.Find("h1, h2, h3, h4").Length() > 0 {
			return true
		}
		return s.Find("[class*='title']").Length() > 0
	default:
		return s.Find("h2, h3, a[href]").Length() > 0
	}
}

func (e *Extractor) hasKindSignal(s *goquery.Selection) bool {
	text := s.Text()
	switch e.profile.Kind {
	case harvest.KindBusiness:
		if phoneSignalRe.MatchString(text) || emailSignalRe.MatchString(text) || addressSignalRe.MatchString(text) {
			return true
		}
		return s.Find("address").Length() > 0
	case harvest.KindContent:
		if dateSignalRe.MatchString(text) || s.Find("time").Length() > 0 {
			return true
		}
		if s.Find("[class*='date'], [class*='time'], [class*='author'], [class*='meta']").Length() > 0 {
			return true
		}
		return s.Find("p[class*='excerpt'], p[class*='summary'], div[class*='excerpt'], div[class*='summary'], p[class*='description'], p[class*='intro']").Length() > 0
	default:
		return priceSignalRe.MatchString(text)
	}
}
