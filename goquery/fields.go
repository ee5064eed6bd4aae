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
	priceTextRe = regexp.MustCompile(`[$€£]?\s*(\d+[.,]\d{2}|\d+)\s*[$€£]?`)
	currencyRe  = regexp.MustCompile(`[$€£]|USD|EUR|GBP`)
	countRe     = regexp.MustCompile(`\d+`)
	percentRe   = regexp.MustCompile(`(\d+)%`)

	phoneTextRes = []*regexp.Regexp{
		regexp.MustCompile(`\(\d{3}\)\s*\d{3}[-.]?\d{4}`),
		regexp.MustCompile(`\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`),
		regexp.MustCompile(`\+\d{1,3}[-.\s]?\d{3}[-.\s]?\d{3}[-.\s]?\d{4}`),
	}
	addressTextRe = regexp.MustCompile(`\d+\s+[A-Za-z0-9\s.,]+,\s+[A-Za-z\s]+,\s+[A-Z]{2}(\s+\d{5})?`)
)

var socialPlatforms = []struct {
	name    string
	domains []string
}{
	{"facebook", []string{"facebook.com", "fb.com"}},
	{"twitter", []string{"twitter.com", "x.com"}},
	{"linkedin", []string{"linkedin.com"}},
	{"instagram", []string{"instagram.com"}},
	{"youtube", []string{"youtube.com", "youtu.be"}},
	{"pinterest", []string{"pinterest.com"}},
	{"yelp", []string{"yelp.com"}},
}

// extractProduct pulls product fields out of one container. A container
// without a name yields nil.
func (e *Extractor) extractProduct(s *goquery.Selection, base *url.URL) harvest.Record {
	name := e.text(s, "name",
		"h1", "h2", "h3",
		".product-name", ".product-title",
		"[itemprop='name']",
		".title", ".name")
	if name == "" {
		// A bare product link often carries the name.
		name = harvest.CleanText(s.Find("a").First().Text())
	}
	if name == "" {
		return nil
	}

	rec := harvest.Record{"name": name}

	if price, ok := e.extractPrice(s); ok {
		rec["price"] = price
	}
	rec["currency"] = e.extractCurrency(s)
	if href := e.firstHref(s, "url"); href != "" {
		rec["url"] = resolve(base, href)
	}
	if e.availability {
		rec["availability"] = e.extractAvailability(s)
	}
	if e.images {
		rec["images"] = e.extractImages(s, base)
	}
	if e.ratings {
		if reviews := e.extractReviews(s); len(reviews) > 0 {
			rec["reviews"] = reviews
		}
	}
	e.specFields(s, rec)
	return rec
}

func (e *Extractor) extractPrice(s *goquery.Selection) (float64, bool) {
	text := e.text(s, "price",
		".price", ".product-price",
		"[itemprop='price']",
		".price-current", ".price-new",
		".current-price")
	if text != "" {
		return harvest.ParsePrice(text)
	}
	if m := priceTextRe.FindString(s.Text()); m != "" {
		return harvest.ParsePrice(m)
	}
	return 0, false
}

func (e *Extractor) extractCurrency(s *goquery.Selection) string {
	if text := e.text(s, "currency"); text != "" {
		if m := currencyRe.FindString(text); m != "" {
			return m
		}
	}
	priceText := e.text(s, "price", ".price", ".product-price", "[itemprop='price']")
	if m := currencyRe.FindString(priceText); m != "" {
		return m
	}
	return e.currency
}

func (e *Extractor) extractAvailability(s *goquery.Selection) string {
	if text := e.text(s, "availability",
		"[itemprop='availability']",
		".availability", ".stock-status",
		".in-stock", ".out-of-stock"); text != "" {
		return text
	}
	lower := strings.ToLower(s.Text())
	switch {
	case strings.Contains(lower, "out of stock"):
		return "Out of Stock"
	case strings.Contains(lower, "in stock"):
		return "In Stock"
	case strings.Contains(lower, "unavailable"):
		return "Unavailable"
	case strings.Contains(lower, "available"):
		return "Available"
	}
	return "Unknown"
}

// extractImages collects image URLs from a container, preferring src and
// falling back to the common lazy-loading attributes. data: URIs are
// skipped; relative URLs are resolved against base.
func (e *Extractor) extractImages(s *goquery.Selection, base *url.URL) []string {
	images := []string{}
	imgs := s.Find("img")
	if selector := e.spec["images"]; selector != "" {
		if explicit := s.Find(selector); explicit.Length() > 0 {
			imgs = explicit
		}
	}
	imgs.Each(func(_ int, img *goquery.Selection) {
		src := imgSrc(img)
		if src == "" || strings.HasPrefix(src, "data:") {
			return
		}
		images = append(images, resolve(base, src))
	})
	return images
}

func imgSrc(img *goquery.Selection) string {
	for _, attr := range []string{"src", "data-src", "data-lazy-src", "data-original"} {
		if v, ok := img.Attr(attr); ok && v != "" {
			return v
		}
	}
	return ""
}

func (e *Extractor) extractReviews(s *goquery.Selection) harvest.Record {
	reviews := harvest.Record{}

	if text := e.text(s, "rating"); text != "" {
		if r, ok := harvest.ParseRating(text); ok {
			reviews["rating"] = r
		}
	}
	if !reviews.Has("rating") {
		for _, selector := range []string{"[itemprop='ratingValue']", ".rating", ".stars", ".star-rating"} {
			n := s.Find(selector).First()
			if n.Length() == 0 {
				continue
			}
			// Star widgets often encode the rating as a width percentage.
			if style, ok := n.Attr("style"); ok {
				if m := percentRe.FindStringSubmatch(style); m != nil {
					pct, _ := strconv.Atoi(m[1])
					reviews["rating"] = float64(pct) / 100 * 5
					break
				}
			}
			if r, ok := harvest.ParseRating(harvest.CleanText(n.Text())); ok {
				reviews["rating"] = r
				break
			}
		}
	}

	countText := e.text(s, "review_count",
		"[itemprop='reviewCount']", ".review-count", ".ratings-count")
	if m := countRe.FindString(countText); m != "" {
		if count, err := strconv.Atoi(m); err == nil {
			reviews["count"] = count
		}
	}
	return reviews
}

// firstHref returns the href of the explicitly selected link or the first
// anchor in the container.
func (e *Extractor) firstHref(s *goquery.Selection, field string) string {
	if selector := e.spec[field]; selector != "" {
		if href, ok := s.Find(selector).First().Attr("href"); ok {
			return href
		}
	}
	href, _ := s.Find("a[href]").First().Attr("href")
	return href
}

// extractBusiness pulls directory listing fields out of one container.
func (e *Extractor) extractBusiness(s *goquery.Selection) harvest.Record {
	name := e.text(s, "name",
		"h1", "h2", "h3",
		".business-name", ".listing-name",
		"[itemprop='name']",
		".name", ".title")
	if name == "" {
		name = harvest.CleanText(s.Find("h1, h2, h3, h4, strong, b").First().Text())
	}
	if name == "" {
		return nil
	}

	rec := harvest.Record{"name": name}

	if addr := e.extractAddress(s); addr != "" {
		rec["address"] = addr
	}
	if phone := e.extractPhone(s); phone != "" {
		rec["phone"] = phone
	}
	if email := e.extractEmail(s); email != "" {
		rec["email"] = email
	}
	if site := e.extractWebsite(s); site != "" {
		rec["website"] = site
	}
	if e.social {
		rec["social_media"] = extractSocial(s)
	}
	rec["categories"] = e.extractCategories(s,
		"[itemprop='category']", ".category", ".categories",
		".business-category", ".tags")
	e.specFields(s, rec)
	return rec
}

func (e *Extractor) extractAddress(s *goquery.Selection) string {
	if text := e.text(s, "address",
		"address",
		"[itemprop='address']",
		".address", ".business-address", ".street-address"); text != "" {
		return text
	}
	return harvest.CleanText(addressTextRe.FindString(s.Text()))
}

func (e *Extractor) extractPhone(s *goquery.Selection) string {
	text := e.text(s, "phone",
		"[itemprop='telephone']",
		".phone", ".tel",
		".business-phone", ".phone-number")
	if text == "" {
		for _, re := range phoneTextRes {
			if m := re.FindString(s.Text()); m != "" {
				text = m
				break
			}
		}
	}
	if text == "" {
		return ""
	}
	digits := keepPhoneChars(text)
	if e.validatePhones && !harvest.ValidPhoneFor(digits, e.country) {
		return ""
	}
	return digits
}

func keepPhoneChars(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= '0' && r <= '9' || r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (e *Extractor) extractEmail(s *goquery.Selection) string {
	selectors := []string{
		"[itemprop='email']", ".email", ".business-email", "a[href^='mailto:']",
	}
	if explicit := e.spec["email"]; explicit != "" {
		selectors = append([]string{explicit}, selectors...)
	}
	for _, selector := range selectors {
		n := s.Find(selector).First()
		if n.Length() == 0 {
			continue
		}
		var email string
		if href, ok := n.Attr("href"); ok && strings.HasPrefix(href, "mailto:") {
			email = strings.TrimPrefix(href, "mailto:")
		} else {
			email = emailSignalRe.FindString(n.Text())
		}
		return e.checkEmail(email)
	}
	return e.checkEmail(emailSignalRe.FindString(s.Text()))
}

func (e *Extractor) checkEmail(email string) string {
	email = strings.TrimSpace(email)
	if email == "" {
		return ""
	}
	if e.validateEmails && !harvest.ValidEmail(email) {
		return ""
	}
	return email
}

func (e *Extractor) extractWebsite(s *goquery.Selection) string {
	selectors := []string{
		"[itemprop='url']", ".website", ".url", ".business-website", ".web",
	}
	if explicit := e.spec["website"]; explicit != "" {
		selectors = append([]string{explicit}, selectors...)
	}
	for _, selector := range selectors {
		href, ok := s.Find(selector).First().Attr("href")
		if !ok {
			continue
		}
		if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") {
			continue
		}
		if site := e.cleanWebsite(href); site != "" {
			return site
		}
	}
	// Any external link as a last resort.
	var found string
	s.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, _ := a.Attr("href")
		if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "tel:") ||
			strings.HasPrefix(href, "#") || strings.HasPrefix(href, "/") {
			return true
		}
		if site := e.cleanWebsite(href); site != "" {
			found = site
			return false
		}
		return true
	})
	return found
}

// cleanWebsite strips query and fragment, forces a scheme, and optionally
// rejects URLs that fail validation.
func (e *Extractor) cleanWebsite(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	if !strings.HasPrefix(href, "http://") && !strings.HasPrefix(href, "https://") {
		href = "http://" + href
	}
	if e.validateURLs && !harvest.ValidURL(href) {
		return ""
	}
	return href
}

func extractSocial(s *goquery.Selection) harvest.Record {
	social := harvest.Record{}
	s.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		lower := strings.ToLower(href)
		for _, p := range socialPlatforms {
			if social.Has(p.name) {
				continue
			}
			for _, domain := range p.domains {
				if strings.Contains(lower, domain) {
					social[p.name] = href
					break
				}
			}
		}
	})
	return social
}

// extractCategories runs the category cascade and deduplicates while
// preserving order.
func (e *Extractor) extractCategories(s *goquery.Selection, fallbacks ...string) []string {
	categories := []string{}
	seen := map[string]bool{}
	add := func(n *goquery.Selection) {
		var cat string
		if content, ok := n.Attr("content"); ok && goquery.NodeName(n) == "meta" {
			cat = harvest.CleanText(content)
		} else {
			cat = harvest.CleanText(n.Text())
		}
		if cat != "" && !seen[cat] {
			seen[cat] = true
			categories = append(categories, cat)
		}
	}
	if selector := e.spec["categories"]; selector != "" {
		if nodes := s.Find(selector); nodes.Length() > 0 {
			nodes.Each(func(_ int, n *goquery.Selection) { add(n) })
			return categories
		}
	}
	for _, selector := range fallbacks {
		s.Find(selector).Each(func(_ int, n *goquery.Selection) { add(n) })
	}
	return categories
}
