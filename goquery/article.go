package goquery

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/abrsjh/harvest"
)

var (
	dayMonthYearRe = regexp.MustCompile(`\d{1,2}\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4}`)
	monthDayYearRe = regexp.MustCompile(`(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{1,2},?\s+\d{4}`)
	isoDateRe      = regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)
	slashDateRe    = regexp.MustCompile(`\d{1,2}/\d{1,2}/\d{2,4}`)

	bylineRes = []*regexp.Regexp{
		regexp.MustCompile(`By\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2})`),
		regexp.MustCompile(`Author[:\s]+([A-Z][a-z]+(?:\s+[A-Z][a-z]+){0,2})`),
	}
)

// extractListing pulls the fields available on an article listing row.
// The full body is left for a detail fetch.
func (e *Extractor) extractListing(s *goquery.Selection, base *url.URL) harvest.Record {
	title := e.extractTitle(s)
	if title == "" {
		return nil
	}

	rec := harvest.Record{"title": title}

	if href := e.articleHref(s); href != "" {
		rec["url"] = resolve(base, href)
	}
	if date := e.extractDate(s); date != "" {
		rec["date"] = date
	}
	if author := e.extractAuthor(s); author != "" {
		rec["author"] = author
	}
	if excerpt := e.extractExcerpt(s); excerpt != "" {
		rec["excerpt"] = excerpt
	}
	if e.images {
		if img := e.extractFeaturedImage(s, base); img != "" {
			rec["image"] = img
		}
	}
	rec["categories"] = e.extractCategories(s,
		"[itemprop='keywords']", "[rel='category']",
		".category", ".tag", ".categories", ".tags",
		".post-category", ".post-tag",
		"meta[property='article:tag']")
	e.specFields(s, rec)
	return rec
}

// extractArticle pulls everything off a single-article page.
func (e *Extractor) extractArticle(s *goquery.Selection, base *url.URL, pageURL string) harvest.Record {
	title := e.extractTitle(s)
	if title == "" {
		return nil
	}

	rec := harvest.Record{"title": title, "url": pageURL}

	if date := e.extractDate(s); date != "" {
		rec["date"] = date
	}
	if author := e.extractAuthor(s); author != "" {
		rec["author"] = author
	}
	content := e.extractContent(s)
	if content != "" {
		rec["content"] = content
	}
	if e.markdown && e.converter != nil && content != "" {
		if md := e.contentMarkdown(s); md != "" {
			rec["content"] = md
		}
	}
	if e.summary && content != "" {
		rec["excerpt"] = harvest.Summarize(content, e.summaryLen)
	} else if excerpt := e.extractExcerpt(s); excerpt != "" {
		rec["excerpt"] = excerpt
	}
	if e.images {
		if img := e.extractFeaturedImage(s, base); img != "" {
			rec["image"] = img
		}
		rec["images"] = e.extractContentImages(s, base)
	}
	rec["categories"] = e.extractCategories(s,
		"[itemprop='keywords']", "[rel='category']",
		".category", ".tag", ".categories", ".tags",
		".post-category", ".post-tag",
		"meta[property='article:tag']")
	if e.metadata {
		rec["metadata"] = extractMetadata(s, content)
	}
	if e.keywords && content != "" {
		rec["keywords"] = harvest.Keywords(content, e.maxKeywords)
	}
	e.specFields(s, rec)
	return rec
}

func (e *Extractor) extractTitle(s *goquery.Selection) string {
	if title := e.text(s, "title",
		"h1",
		"h1.entry-title", "h1.post-title", "h1.article-title",
		".entry-title", ".post-title", ".article-title",
		"[itemprop='headline']",
		"header h1", "header h2",
		"h2.entry-title",
		".title"); title != "" {
		return title
	}
	if content, ok := s.Find("meta[property='og:title']").First().Attr("content"); ok {
		return harvest.CleanText(content)
	}
	return harvest.CleanText(s.Find("h1, h2, h3").First().Text())
}

// articleHref prefers a link inside the title heading over any link.
func (e *Extractor) articleHref(s *goquery.Selection) string {
	if selector := e.spec["url"]; selector != "" {
		if href, ok := s.Find(selector).First().Attr("href"); ok {
			return href
		}
	}
	if href, ok := s.Find("h1 a[href], h2 a[href], h3 a[href], h4 a[href]").First().Attr("href"); ok {
		return href
	}
	href, _ := s.Find("a[href]").First().Attr("href")
	return href
}

func (e *Extractor) extractDate(s *goquery.Selection) string {
	selectors := []string{
		"time",
		"[itemprop='datePublished']",
		"[property='article:published_time']",
		".date", ".published",
		".post-date", ".entry-date", ".article-date", ".meta-date",
		"meta[property='article:published_time']",
	}
	if explicit := e.spec["date"]; explicit != "" {
		selectors = append([]string{explicit}, selectors...)
	}
	for _, selector := range selectors {
		n := s.Find(selector).First()
		if n.Length() == 0 {
			continue
		}
		if date := dateFromNode(n); date != "" {
			return date
		}
	}
	// Fall back to a date-looking substring anywhere in the text.
	text := s.Text()
	for _, re := range []*regexp.Regexp{dayMonthYearRe, monthDayYearRe, isoDateRe, slashDateRe} {
		if m := re.FindString(text); m != "" {
			return harvest.NormalizeDate(m)
		}
	}
	return ""
}

// dateFromNode prefers machine-readable datetime/content attributes over
// visible text.
func dateFromNode(n *goquery.Selection) string {
	for _, attr := range []string{"datetime", "content"} {
		if v, ok := n.Attr(attr); ok && v != "" {
			if i := strings.Index(v, "T"); i > 0 {
				v = v[:i]
			}
			return harvest.NormalizeDate(v)
		}
	}
	text := harvest.CleanText(n.Text())
	for _, re := range []*regexp.Regexp{dayMonthYearRe, monthDayYearRe, isoDateRe, slashDateRe} {
		if m := re.FindString(text); m != "" {
			return harvest.NormalizeDate(m)
		}
	}
	return ""
}

func (e *Extractor) extractAuthor(s *goquery.Selection) string {
	selectors := []string{
		"[itemprop='author']", "[rel='author']",
		".author", ".byline",
		".entry-author", ".post-author",
		"meta[name='author']", ".meta-author",
	}
	if explicit := e.spec["author"]; explicit != "" {
		selectors = append([]string{explicit}, selectors...)
	}
	for _, selector := range selectors {
		n := s.Find(selector).First()
		if n.Length() == 0 {
			continue
		}
		if content, ok := n.Attr("content"); ok && goquery.NodeName(n) == "meta" {
			return harvest.CleanText(content)
		}
		if text := harvest.CleanText(n.Text()); text != "" {
			return text
		}
	}
	for _, re := range bylineRes {
		if m := re.FindStringSubmatch(s.Text()); m != nil {
			return m[1]
		}
	}
	return ""
}

func (e *Extractor) extractExcerpt(s *goquery.Selection) string {
	selectors := []string{
		"[itemprop='description']",
		"meta[name='description']",
		"meta[property='og:description']",
		".excerpt", ".entry-summary", ".post-excerpt",
		".summary", ".description", ".intro",
	}
	if explicit := e.spec["excerpt"]; explicit != "" {
		selectors = append([]string{explicit}, selectors...)
	}
	for _, selector := range selectors {
		n := s.Find(selector).First()
		if n.Length() == 0 {
			continue
		}
		if content, ok := n.Attr("content"); ok && goquery.NodeName(n) == "meta" {
			return harvest.CleanText(content)
		}
		if text := harvest.CleanText(n.Text()); text != "" {
			return text
		}
	}
	if text := harvest.CleanText(s.Find("p").First().Text()); len(text) > 20 {
		return text
	}
	return ""
}

var contentSelectors = []string{
	"[itemprop='articleBody']",
	".entry-content", ".post-content", ".article-content",
	".content", "article", ".post-body", "#content",
}

// contentNode finds the article body container, or nil when no selector
// yields a substantial wrapper.
func (e *Extractor) contentNode(s *goquery.Selection) *goquery.Selection {
	if explicit := e.spec["content"]; explicit != "" {
		if n := s.Find(explicit).First(); n.Length() > 0 {
			return n
		}
	}
	for _, selector := range contentSelectors {
		n := s.Find(selector).First()
		if n.Length() == 0 {
			continue
		}
		// A wrapper with almost no text is navigation, not content.
		if len(harvest.CleanText(n.Text())) < 100 {
			continue
		}
		return n
	}
	return nil
}

// contentMarkdown converts the article body container to Markdown.
func (e *Extractor) contentMarkdown(s *goquery.Selection) string {
	n := e.contentNode(s)
	if n == nil {
		return ""
	}
	inner, err := n.Html()
	if err != nil {
		return ""
	}
	md, err := e.converter.Convert(inner)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(md)
}

func (e *Extractor) extractContent(s *goquery.Selection) string {
	if n := e.contentNode(s); n != nil {
		return harvest.CleanText(n.Text())
	}
	// A run of substantial paragraphs is good enough.
	paragraphs := s.Find("p")
	if paragraphs.Length() >= 3 {
		var parts []string
		paragraphs.Each(func(_ int, p *goquery.Selection) {
			if text := harvest.CleanText(p.Text()); len(text) > 20 {
				parts = append(parts, text)
			}
		})
		joined := strings.Join(parts, " ")
		if len(joined) > 200 {
			return joined
		}
	}
	return ""
}

func (e *Extractor) extractFeaturedImage(s *goquery.Selection, base *url.URL) string {
	selectors := []string{
		"meta[property='og:image']",
		"meta[name='twitter:image']",
		"[itemprop='image']",
		".featured-image img", ".post-thumbnail img", ".entry-image img",
		"article img:first-of-type",
		".wp-post-image",
	}
	if explicit := e.spec["image"]; explicit != "" {
		selectors = append([]string{explicit}, selectors...)
	}
	for _, selector := range selectors {
		n := s.Find(selector).First()
		if n.Length() == 0 {
			continue
		}
		if content, ok := n.Attr("content"); ok && goquery.NodeName(n) == "meta" {
			return resolve(base, content)
		}
		if src := imgSrc(n); src != "" && !strings.HasPrefix(src, "data:") {
			return resolve(base, src)
		}
	}
	if src := imgSrc(s.Find("img").First()); src != "" && !strings.HasPrefix(src, "data:") {
		return resolve(base, src)
	}
	return ""
}

// extractContentImages collects every image inside the article body,
// skipping data: URIs and obvious icons.
func (e *Extractor) extractContentImages(s *goquery.Selection, base *url.URL) []string {
	scopes := contentSelectors[:6]
	if explicit := e.spec["content"]; explicit != "" {
		scopes = append([]string{explicit}, scopes...)
	}
	collect := func(scope *goquery.Selection) []string {
		images := []string{}
		scope.Find("img[src]").Each(func(_ int, img *goquery.Selection) {
			src, _ := img.Attr("src")
			if strings.HasPrefix(src, "data:") || strings.Contains(strings.ToLower(src), "icon") {
				return
			}
			images = append(images, resolve(base, src))
		})
		return images
	}
	for _, selector := range scopes {
		if n := s.Find(selector).First(); n.Length() > 0 {
			return collect(n)
		}
	}
	return collect(s)
}

// extractMetadata collects Open Graph, article:, and Twitter Card meta
// values plus reading statistics.
func extractMetadata(s *goquery.Selection, content string) harvest.Record {
	meta := harvest.Record{}
	s.Find("meta").Each(func(_ int, m *goquery.Selection) {
		contentAttr, ok := m.Attr("content")
		if !ok {
			return
		}
		if prop, ok := m.Attr("property"); ok {
			if strings.HasPrefix(prop, "og:") || strings.HasPrefix(prop, "article:") {
				parts := strings.Split(prop, ":")
				meta[parts[len(parts)-1]] = contentAttr
			}
		}
		if name, ok := m.Attr("name"); ok {
			switch {
			case strings.HasPrefix(name, "twitter:"):
				parts := strings.Split(name, ":")
				meta[parts[len(parts)-1]] = contentAttr
			case name == "author" || name == "description" || name == "keywords":
				meta[name] = contentAttr
			}
		}
	})

	for _, selector := range []string{".reading-time", ".read-time", "[itemprop='timeRequired']"} {
		if n := s.Find(selector).First(); n.Length() > 0 {
			meta["reading_time"] = harvest.CleanText(n.Text())
			break
		}
	}
	if content != "" {
		words := harvest.WordCount(content)
		meta["word_count"] = strconv.Itoa(words)
		if !meta.Has("reading_time") {
			meta["reading_time"] = strconv.Itoa(harvest.ReadingTime(content)) + " min read"
		}
	}
	return meta
}
