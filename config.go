package harvest

import (
	"time"
)

// Default run settings.
const (
	DefaultTimeout     = 30 * time.Second
	DefaultRetries     = 3
	DefaultMaxPages    = 5
	DefaultConcurrency = 1
	DefaultSummaryLen  = 150
	DefaultMaxKeywords = 10
)

// Output describes where and how records are written.
type Output struct {
	Format Format `yaml:"format" json:"format"`
	Path   string `yaml:"path" json:"path"`
	Indent bool   `yaml:"indent,omitempty" json:"indent,omitempty"`
	Append bool   `yaml:"append,omitempty" json:"append,omitempty"`
}

// Config holds everything a scrape run needs. Zero values mean "use the
// default"; Normalize fills them in and Validate rejects configs that
// cannot produce a run.
type Config struct {
	Kind      Kind      `yaml:"kind" json:"kind"`
	URLs      []string  `yaml:"urls" json:"urls"`
	Selectors FieldSpec `yaml:"selectors,omitempty" json:"selectors,omitempty"`
	Output    Output    `yaml:"output" json:"output"`

	UserAgent string `yaml:"user_agent,omitempty" json:"user_agent,omitempty"`
	// RotateUA selects a User-Agent rotation policy: "sequential" cycles
	// through the pool in order, "random" picks per request. Empty means
	// no rotation; UserAgent, when set, is then sent on every request.
	RotateUA    string            `yaml:"rotate_user_agent,omitempty" json:"rotate_user_agent,omitempty"`
	Proxy       string            `yaml:"proxy,omitempty" json:"proxy,omitempty"`
	Timeout     Duration          `yaml:"timeout,omitempty" json:"timeout,omitempty"`
	Retries     int               `yaml:"retries,omitempty" json:"retries,omitempty"`
	Delay       Duration          `yaml:"delay,omitempty" json:"delay,omitempty"`
	Headers     map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
	Cookies     map[string]string `yaml:"cookies,omitempty" json:"cookies,omitempty"`
	Concurrency int               `yaml:"concurrency,omitempty" json:"concurrency,omitempty"`

	// Country and currency hints used by phone validation and price parsing.
	CountryCode    string `yaml:"country_code,omitempty" json:"country_code,omitempty"`
	CurrencySymbol string `yaml:"currency_symbol,omitempty" json:"currency_symbol,omitempty"`

	// Ecommerce options.
	ExtractImages       bool `yaml:"extract_images,omitempty" json:"extract_images,omitempty"`
	ExtractAvailability bool `yaml:"extract_availability,omitempty" json:"extract_availability,omitempty"`
	ExtractRatings      bool `yaml:"extract_ratings,omitempty" json:"extract_ratings,omitempty"`

	// Business options.
	ValidateEmails bool `yaml:"validate_emails,omitempty" json:"validate_emails,omitempty"`
	ValidatePhones bool `yaml:"validate_phones,omitempty" json:"validate_phones,omitempty"`
	ValidateURLs   bool `yaml:"validate_urls,omitempty" json:"validate_urls,omitempty"`
	ExtractSocial  bool `yaml:"extract_social,omitempty" json:"extract_social,omitempty"`

	// Content options.
	GenerateSummary    bool `yaml:"generate_summary,omitempty" json:"generate_summary,omitempty"`
	SummaryLength      int  `yaml:"summary_length,omitempty" json:"summary_length,omitempty"`
	ExtractKeywords    bool `yaml:"extract_keywords,omitempty" json:"extract_keywords,omitempty"`
	MaxKeywords        int  `yaml:"max_keywords,omitempty" json:"max_keywords,omitempty"`
	FetchFullArticles  bool `yaml:"fetch_full_articles,omitempty" json:"fetch_full_articles,omitempty"`
	MarkdownContent    bool `yaml:"markdown_content,omitempty" json:"markdown_content,omitempty"`
	ExtractorFallback  bool `yaml:"extractor_fallback,omitempty" json:"extractor_fallback,omitempty"`
	// FallbackEngine selects the content extractor used when
	// ExtractorFallback is set: "trafilatura" or "readability".
	FallbackEngine  string `yaml:"fallback_engine,omitempty" json:"fallback_engine,omitempty"`
	ExtractMetadata bool   `yaml:"extract_metadata,omitempty" json:"extract_metadata,omitempty"`

	// Pagination.
	FollowNextPage bool `yaml:"follow_next_page,omitempty" json:"follow_next_page,omitempty"`
	MaxPages       int  `yaml:"max_pages,omitempty" json:"max_pages,omitempty"`

	Feed *FeedInfo `yaml:"feed_info,omitempty" json:"feed_info,omitempty"`
}

// Normalize fills zero-valued settings with defaults. It does not touch
// explicitly set values.
func (c *Config) Normalize() {
	if c.Kind == "" {
		c.Kind = KindEcommerce
	}
	if c.Timeout <= 0 {
		c.Timeout = Duration(DefaultTimeout)
	}
	if c.Retries <= 0 {
		c.Retries = DefaultRetries
	}
	if c.MaxPages <= 0 {
		c.MaxPages = DefaultMaxPages
	}
	if c.Concurrency <= 0 {
		c.Concurrency = DefaultConcurrency
	}
	if c.SummaryLength <= 0 {
		c.SummaryLength = DefaultSummaryLen
	}
	if c.MaxKeywords <= 0 {
		c.MaxKeywords = DefaultMaxKeywords
	}
	if c.Output.Format == "" {
		c.Output.Format = FormatJSON
	}
	if c.FallbackEngine == "" {
		c.FallbackEngine = "trafilatura"
	}
}

// Validate reports whether the config can drive a run.
func (c *Config) Validate() error {
	if len(c.URLs) == 0 {
		return Errorf(EINVALID, "at least one URL is required")
	}
	for _, u := range c.URLs {
		if !ValidTargetURL(u) {
			return Errorf(EINVALID, "invalid URL: %q", u)
		}
	}
	if !c.Kind.Valid() {
		return Errorf(EINVALID, "unknown record kind: %q", c.Kind)
	}
	if !c.Output.Format.Valid() {
		return Errorf(EINVALID, "unknown output format: %q", c.Output.Format)
	}
	if c.Output.Path == "" {
		return Errorf(EINVALID, "output path is required")
	}
	switch c.RotateUA {
	case "", "sequential", "random":
	default:
		return Errorf(EINVALID, "unknown user-agent rotation policy: %q", c.RotateUA)
	}
	if c.ExtractorFallback {
		switch c.FallbackEngine {
		case "", "trafilatura", "readability":
		default:
			return Errorf(EINVALID, "unknown fallback engine: %q", c.FallbackEngine)
		}
	}
	return nil
}
