// Package feed renders scraped content records as an RSS 2.0 feed.
package feed

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/abrsjh/harvest"
)

// Ensure Writer implements harvest.FeedWriter at compile time.
var _ harvest.FeedWriter = (*Writer)(nil)

// Writer builds RSS 2.0 documents from content records. Records supply
// item fields by convention: title, url, excerpt or content, author,
// date and categories.
type Writer struct {
	// Now lets tests pin the build date. Defaults to time.Now.
	Now func() time.Time
}

// NewWriter creates an RSS feed writer.
func NewWriter() *Writer {
	return &Writer{Now: time.Now}
}

// WriteFeed renders records as an RSS 2.0 document at info.Path.
func (w *Writer) WriteFeed(ctx context.Context, info harvest.FeedInfo, records []harvest.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if info.Path == "" {
		return harvest.Errorf(harvest.EINVALID, "feed path is required")
	}
	if info.Title == "" {
		return harvest.Errorf(harvest.EINVALID, "feed title is required")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(info.Title)
	channel.CreateElement("link").SetText(info.Link)
	channel.CreateElement("description").SetText(info.Description)
	if info.Language != "" {
		channel.CreateElement("language").SetText(info.Language)
	}
	channel.CreateElement("lastBuildDate").SetText(w.Now().UTC().Format(time.RFC1123Z))

	for _, rec := range records {
		item := channel.CreateElement("item")

		if title := rec.String("title"); title != "" {
			item.CreateElement("title").SetText(title)
		}
		if link := rec.String("url"); link != "" {
			item.CreateElement("link").SetText(link)
			guid := item.CreateElement("guid")
			guid.CreateAttr("isPermaLink", "true")
			guid.SetText(link)
		}
		if desc := itemDescription(rec); desc != "" {
			item.CreateElement("description").SetText(desc)
		}
		if author := rec.String("author"); author != "" {
			item.CreateElement("author").SetText(author)
		}
		if pubDate := itemPubDate(rec); pubDate != "" {
			item.CreateElement("pubDate").SetText(pubDate)
		}
		for _, category := range itemCategories(rec) {
			item.CreateElement("category").SetText(category)
		}
		if image := rec.String("image"); image != "" {
			enclosure := item.CreateElement("enclosure")
			enclosure.CreateAttr("url", image)
			enclosure.CreateAttr("type", imageMIMEType(image))
			enclosure.CreateAttr("length", "0")
		}
	}

	doc.Indent(2)
	data, err := doc.WriteToBytes()
	if err != nil {
		return harvest.Errorf(harvest.EINTERNAL, "render feed: %v", err)
	}

	if dir := filepath.Dir(info.Path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return harvest.Errorf(harvest.EINTERNAL, "create feed directory: %v", err)
		}
	}
	if err := os.WriteFile(info.Path, data, 0644); err != nil {
		return harvest.Errorf(harvest.EINTERNAL, "write feed file: %v", err)
	}
	return nil
}

// itemDescription prefers the short excerpt over full content.
func itemDescription(rec harvest.Record) string {
	if excerpt := rec.String("excerpt"); excerpt != "" {
		return excerpt
	}
	return rec.String("content")
}

// itemPubDate converts the record date to RFC 1123 as RSS requires.
// Dates that fail to parse are dropped rather than emitted malformed.
func itemPubDate(rec harvest.Record) string {
	date := rec.String("date")
	if date == "" {
		return ""
	}
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return t.UTC().Format(time.RFC1123Z)
}

// imageMIMEType guesses the enclosure type from the URL extension.
// RSS requires a type attribute; jpeg is the safe default.
func imageMIMEType(url string) string {
	switch strings.ToLower(path.Ext(url)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

func itemCategories(rec harvest.Record) []string {
	switch v := rec["categories"].(type) {
	case []string:
		return v
	case []any:
		var out []string
		for _, c := range v {
			if s, ok := c.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}
