package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/abrsjh/harvest"
)

// Ensure Classifier implements harvest.PageClassifier.
var _ harvest.PageClassifier = (*Classifier)(nil)

// Classifier decides whether a content page holds one article or a list
// of them. Listing and article pages commonly share wrapper classes, so
// two indicator scores are compared and a content-richness score breaks
// the tie toward "substantial body text means a single article".
//
// The thresholds are tunable; the defaults match observed behavior on
// common blog engines, not any principled constant.
type Classifier struct {
	// PostClassMin is the number of "post-" prefixed class elements
	// beyond which a page counts as a listing.
	PostClassMin int
	// RichTextLen is the total text length counting toward richness.
	RichTextLen int
	// RichParagraphMin is the paragraph count counting toward richness.
	RichParagraphMin int
	// RichnessMin is the richness score at which a page is a single
	// article regardless of the indicator comparison.
	RichnessMin int
}

// NewClassifier returns a classifier with default thresholds.
func NewClassifier() *Classifier {
	return &Classifier{
		PostClassMin:     3,
		RichTextLen:      2000,
		RichParagraphMin: 5,
		RichnessMin:      2,
	}
}

// IsSingleRecord reports whether the page reads as one article rather
// than a listing. Unparseable HTML is treated as not-single.
func (c *Classifier) IsSingleRecord(html string) bool {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return false
	}
	return c.IsSingleRecordDoc(doc)
}

// IsSingleRecordDoc is IsSingleRecord on an already parsed document.
func (c *Classifier) IsSingleRecordDoc(doc *goquery.Document) bool {
	articleScore := 0
	for _, hit := range []bool{
		doc.Find("article").Length() > 0,
		doc.Find("[class*='article']").Length() > 0,
		hasPostClassNotList(doc),
		hasTitledHeading(doc),
		doc.Find("[itemprop='headline']").Length() > 0,
		doc.Find("meta[property='og:type'][content='article']").Length() > 0,
	} {
		if hit {
			articleScore++
		}
	}

	listingScore := 0
	for _, hit := range []bool{
		doc.Find("article").Length() > 1,
		doc.Find("[class*='post-']").Length() > c.PostClassMin,
		hasAnyClass(doc, "archive", "listing", "index", "blog-list", "post-list"),
		hasListWrapper(doc),
	} {
		if hit {
			listingScore++
		}
	}

	if listingScore > articleScore {
		return false
	}

	richness := 0
	for _, hit := range []bool{
		len(doc.Text()) > c.RichTextLen,
		hasBodyWrapper(doc),
		doc.Find("[itemprop='articleBody']").Length() > 0,
		doc.Find("p").Length() > c.RichParagraphMin,
	} {
		if hit {
			richness++
		}
	}

	return richness >= c.RichnessMin || articleScore > listingScore
}

// hasPostClassNotList finds a "post" class that is not itself a post
// list wrapper.
func hasPostClassNotList(doc *goquery.Document) bool {
	found := false
	doc.Find("[class*='post']").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		if !strings.Contains(strings.ToLower(class), "post-list") {
			found = true
			return false
		}
		return true
	})
	return found
}

func hasTitledHeading(doc *goquery.Document) bool {
	found := false
	doc.Find("h1, h2").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, ok := s.Attr("class")
		if !ok {
			return true
		}
		class = strings.ToLower(class)
		for _, term := range []string{"title", "headline", "heading"} {
			if strings.Contains(class, term) {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

func hasAnyClass(doc *goquery.Document, terms ...string) bool {
	found := false
	doc.Find("[class]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		class = strings.ToLower(class)
		for _, term := range terms {
			if strings.Contains(class, term) {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

func hasListWrapper(doc *goquery.Document) bool {
	found := false
	doc.Find("ul[class], div[class]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		class = strings.ToLower(class)
		for _, term := range []string{"posts", "articles", "entries"} {
			if strings.Contains(class, term) {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

func hasBodyWrapper(doc *goquery.Document) bool {
	found := false
	doc.Find("p[class], div[class]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		class = strings.ToLower(class)
		for _, term := range []string{"content", "body", "entry", "article-text"} {
			if strings.Contains(class, term) {
				found = true
				return false
			}
		}
		return true
	})
	return found
}
