package goquery

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/abrsjh/harvest"
)

// Ensure Paginator implements harvest.Paginator.
var _ harvest.Paginator = (*Paginator)(nil)

var (
	pageQueryRe = regexp.MustCompile(`page=(\d+)`)
	pagePathRe  = regexp.MustCompile(`/page/(\d+)/?$`)
	numberRe    = regexp.MustCompile(`\d+`)
)

// Paginator discovers the next page of a listing through a cascade of
// next-link selectors, current-page indicators, and URL patterns.
type Paginator struct{}

// NewPaginator creates a Paginator.
func NewPaginator() *Paginator {
	return &Paginator{}
}

// NextPage returns the absolute URL of the next listing page and whether
// one was found. Discovery never errors; unusable markup means no next
// page.
func (p *Paginator) NextPage(html, currentURL string) (string, bool) {
	current, err := url.Parse(currentURL)
	if err != nil {
		return "", false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false
	}

	if next := nextFromLinks(doc, current); next != "" {
		return next, true
	}
	if next := nextFromIndicator(doc, current); next != "" {
		return next, true
	}
	if next := nextFromURLPattern(doc, current); next != "" {
		return next, true
	}
	return "", false
}

// nextFromLinks tries the conventional next-link selectors, then anchors
// whose text is "Next" or a forward glyph.
func nextFromLinks(doc *goquery.Document, current *url.URL) string {
	for _, selector := range []string{
		".next", ".next-page", ".pagination .next", "a[rel='next']", "a.next",
	} {
		if href, ok := doc.Find(selector).First().Attr("href"); ok && href != "" {
			return resolve(current, href)
		}
	}
	var next string
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		text := harvest.CleanText(a.Text())
		if strings.EqualFold(text, "next") || text == "»" || text == "›" {
			href, _ := a.Attr("href")
			next = resolve(current, href)
			return false
		}
		return true
	})
	return next
}

// nextFromIndicator locates the active page-number element. If it is a
// link, the link numbered current+1 is the next page; otherwise the
// following sibling link is.
func nextFromIndicator(doc *goquery.Document, current *url.URL) string {
	var indicator *goquery.Selection
	for _, selector := range []string{".current", ".active", ".selected", "[aria-current='page']"} {
		if n := doc.Find(selector).First(); n.Length() > 0 {
			indicator = n
			break
		}
	}
	if indicator == nil {
		return ""
	}

	if goquery.NodeName(indicator) == "a" {
		m := numberRe.FindString(indicator.Text())
		if m == "" {
			return ""
		}
		currentNum, _ := strconv.Atoi(m)
		var next string
		doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			n := numberRe.FindString(a.Text())
			if n == "" {
				return true
			}
			if num, err := strconv.Atoi(n); err == nil && num == currentNum+1 {
				href, _ := a.Attr("href")
				next = resolve(current, href)
				return false
			}
			return true
		})
		return next
	}

	sibling := indicator.Next()
	if goquery.NodeName(sibling) == "a" {
		if href, ok := sibling.Attr("href"); ok {
			return resolve(current, href)
		}
	}
	return ""
}

// nextFromURLPattern increments a page number already present in the URL,
// or appends /page/2/ when other links on the page use that shape.
func nextFromURLPattern(doc *goquery.Document, current *url.URL) string {
	if m := pageQueryRe.FindStringSubmatch(current.RawQuery); m != nil {
		n, _ := strconv.Atoi(m[1])
		next := *current
		next.RawQuery = pageQueryRe.ReplaceAllString(current.RawQuery, "page="+strconv.Itoa(n+1))
		return next.String()
	}

	if m := pagePathRe.FindStringSubmatch(current.Path); m != nil {
		n, _ := strconv.Atoi(m[1])
		next := *current
		next.Path = pagePathRe.ReplaceAllString(current.Path, "/page/"+strconv.Itoa(n+1)+"/")
		return next.String()
	}

	if !strings.Contains(current.Path, "/page/") {
		hasPagedLinks := false
		doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
			href, _ := a.Attr("href")
			if pagePathRe.MatchString(href) {
				hasPagedLinks = true
				return false
			}
			return true
		})
		if hasPagedLinks {
			next := *current
			next.Path = strings.TrimRight(current.Path, "/") + "/page/2/"
			return next.String()
		}
	}
	return ""
}
