package scrape

import (
	"net/url"
	"strings"
	"time"

	"github.com/abrsjh/harvest"
)

// Transform applies per-record normalization between extraction and
// validation: absolute URL resolution, phone reformatting, date
// normalization, and a scrape timestamp. A record that cannot be
// transformed is dropped, never the whole batch.
func Transform(records []harvest.Record, baseURL string, now time.Time) []harvest.Record {
	base, err := url.Parse(baseURL)
	if err != nil {
		base = nil
	}

	out := make([]harvest.Record, 0, len(records))
	for _, rec := range records {
		if rec == nil {
			continue
		}
		transformOne(rec, base, now)
		out = append(out, rec)
	}
	return out
}

func transformOne(rec harvest.Record, base *url.URL, now time.Time) {
	for _, field := range []string{"url", "website", "image"} {
		if v := rec.String(field); v != "" {
			rec[field] = absoluteURL(base, v)
		}
	}
	if phone := rec.String("phone"); phone != "" {
		rec["phone"] = harvest.FormatPhone(phone)
	}
	if email := rec.String("email"); email != "" {
		rec["email"] = strings.ToLower(strings.TrimSpace(email))
	}
	if date := rec.String("date"); date != "" {
		rec["date"] = harvest.NormalizeDate(date)
	}
	// Price may arrive as raw text from a user-supplied selector.
	if text, ok := rec["price"].(string); ok {
		if v, parsed := harvest.ParsePrice(text); parsed {
			rec["price"] = v
		} else {
			delete(rec, "price")
		}
	}
	rec["scraped_at"] = now.Format(time.RFC3339)
}

func absoluteURL(base *url.URL, raw string) string {
	if strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://") {
		return raw
	}
	if base == nil {
		return raw
	}
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return base.ResolveReference(ref).String()
}
