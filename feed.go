package harvest

import "context"

// FeedWriter renders content records as a syndication feed on disk.
type FeedWriter interface {
	WriteFeed(ctx context.Context, info FeedInfo, records []Record) error
}

// FeedInfo describes the channel of a generated RSS feed.
type FeedInfo struct {
	Title       string `yaml:"title" json:"title"`
	Link        string `yaml:"link" json:"link"`
	Description string `yaml:"description" json:"description"`
	Language    string `yaml:"language,omitempty" json:"language,omitempty"`
	Path        string `yaml:"path" json:"path"`
}
