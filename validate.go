package harvest

import (
	"net"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	emailRe    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	priceRe    = regexp.MustCompile(`\d+[.,]\d{2}|\d+`)
	decimalRe  = regexp.MustCompile(`(\d+(?:\.\d+)?)`)
	fractionRe = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*/\s*(\d+(?:\.\d+)?)`)
)

// Domains that only ever appear in placeholder content.
var placeholderDomains = map[string]bool{
	"example.com": true,
	"test.com":    true,
	"sample.com":  true,
	"invalid.com": true,
}

// ValidEmail reports whether s looks like a deliverable address. Syntax
// is checked with a pragmatic pattern and placeholder domains are
// rejected outright.
func ValidEmail(s string) bool {
	s = strings.TrimSpace(strings.ToLower(s))
	if !emailRe.MatchString(s) {
		return false
	}
	at := strings.LastIndex(s, "@")
	return !placeholderDomains[s[at+1:]]
}

// ValidPhone reports whether s contains a plausible phone number.
// Everything but digits and a leading + is stripped; the remaining
// digits must number 7 to 15 and must not be an obvious fake such as
// all zeros, a single repeated digit, or an ascending run.
func ValidPhone(s string) bool {
	digits := phoneDigits(s)
	n := len(digits)
	if n < 7 || n > 15 {
		return false
	}
	allZero, allSame, ascending := true, true, true
	for i := 0; i < n; i++ {
		if digits[i] != '0' {
			allZero = false
		}
		if digits[i] != digits[0] {
			allSame = false
		}
		if i > 0 && digits[i] != digits[i-1]+1 {
			ascending = false
		}
	}
	return !allZero && !allSame && !ascending
}

// callingCodes maps country identifiers to international calling codes.
var callingCodes = map[string]string{
	"US": "1",
	"CA": "1",
	"UK": "44",
	"GB": "44",
	"AU": "61",
	"IN": "91",
	"DE": "49",
	"FR": "33",
	"JP": "81",
	"BR": "55",
	"RU": "7",
}

// ValidPhoneFor is ValidPhone with a country constraint: a number in
// explicit international form (leading +) must carry the country's
// calling code, while bare digit sequences pass as local numbers.
// Unknown or empty country identifiers impose no constraint.
func ValidPhoneFor(s, country string) bool {
	if !ValidPhone(s) {
		return false
	}
	code, ok := callingCodes[strings.ToUpper(strings.TrimSpace(country))]
	if !ok {
		return true
	}
	if strings.HasPrefix(strings.TrimSpace(s), "+") {
		return strings.HasPrefix(phoneDigits(s), code)
	}
	return true
}

func phoneDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatPhone renders a phone number in a canonical dashed form. Ten
// digits become XXX-XXX-XXXX; eleven digits starting with 1 become
// +1-XXX-XXX-XXXX. Anything else is returned with whitespace trimmed.
func FormatPhone(s string) string {
	digits := phoneDigits(s)
	switch {
	case len(digits) == 10:
		return digits[:3] + "-" + digits[3:6] + "-" + digits[6:]
	case len(digits) == 11 && digits[0] == '1':
		return "+1-" + digits[1:4] + "-" + digits[4:7] + "-" + digits[7:]
	}
	return strings.TrimSpace(s)
}

// ValidURL reports whether s is an absolute http, https, or ftp URL
// pointing at a real-looking public host. Localhost, bare IP addresses,
// and hosts without a dotted TLD of two or more letters are rejected.
func ValidURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "ftp":
	default:
		return false
	}
	host := u.Hostname()
	if host == "" || host == "localhost" {
		return false
	}
	if net.ParseIP(host) != nil {
		return false
	}
	dot := strings.LastIndex(host, ".")
	if dot < 0 {
		return false
	}
	tld := host[dot+1:]
	if len(tld) < 2 {
		return false
	}
	for _, r := range tld {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

// ValidTargetURL reports whether s can be fetched as a scrape target:
// an absolute http or https URL with a non-empty host. Unlike ValidURL
// it accepts localhost and IP-addressed hosts, which are legitimate
// sources even though they never appear in extracted website fields.
func ValidTargetURL(s string) bool {
	u, err := url.Parse(strings.TrimSpace(s))
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Hostname() != ""
}

// ParsePrice extracts the first numeric amount from a price string.
// Currency symbols, thousands separators, and surrounding text are
// ignored; a decimal comma is treated as a decimal point.
func ParsePrice(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	// Drop separators that group thousands so "1,234.56" parses whole.
	s = stripThousands(s)
	m := priceRe.FindString(s)
	if m == "" {
		return 0, false
	}
	m = strings.ReplaceAll(m, ",", ".")
	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func stripThousands(s string) string {
	// A separator followed by exactly three digits and another digit
	// boundary is grouping, not decimals.
	re := regexp.MustCompile(`(\d)[.,](\d{3})([.,\d])`)
	for {
		next := re.ReplaceAllString(s, "$1$2$3")
		if next == s {
			return s
		}
		s = next
	}
}

// ParseRating extracts a 0-5 rating from text. It understands plain
// decimals (values over 5 up to 10 are halved), "x / y" fractions
// rescaled to 5, and runs of star characters.
func ParseRating(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if stars := strings.Count(s, "★"); stars > 0 {
		return clampRating(float64(stars)), true
	}
	if m := fractionRe.FindStringSubmatch(s); m != nil {
		num, err1 := strconv.ParseFloat(m[1], 64)
		den, err2 := strconv.ParseFloat(m[2], 64)
		if err1 == nil && err2 == nil && den > 0 {
			return clampRating(num / den * 5), true
		}
	}
	if m := decimalRe.FindStringSubmatch(s); m != nil {
		v, err := strconv.ParseFloat(m[1], 64)
		if err == nil {
			if v > 5 && v <= 10 {
				v /= 2
			}
			return clampRating(v), true
		}
	}
	return 0, false
}

func clampRating(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 5 {
		return 5
	}
	return v
}

var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2 January 2006",
	"January 2, 2006",
	"January 2 2006",
	"Jan 2, 2006",
	"01/02/2006",
	"02/01/2006",
}

// NormalizeDate renders a date string as YYYY-MM-DD. Known layouts are
// tried in order; both day-first and month-first slash forms are
// attempted, month-first winning when ambiguous. Unparseable input is
// returned trimmed so no information is lost.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return s
}
