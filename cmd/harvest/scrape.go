package main

import (
	"fmt"
	"time"

	"github.com/abrsjh/harvest"
	"github.com/abrsjh/harvest/feed"
	"github.com/abrsjh/harvest/fs"
	"github.com/abrsjh/harvest/goquery"
	harvesthttp "github.com/abrsjh/harvest/http"
	"github.com/abrsjh/harvest/htmltomarkdown"
	"github.com/abrsjh/harvest/readability"
	"github.com/abrsjh/harvest/scrape"
	harvestslog "github.com/abrsjh/harvest/slog"
	"github.com/abrsjh/harvest/sqlite"
	"github.com/abrsjh/harvest/trafilatura"
	"github.com/abrsjh/harvest/yaml"
)

// timeRound keeps run durations readable in the summary line.
const timeRound = 10 * time.Millisecond

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	cfg, err := yaml.LoadConfig(c.Config)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}
	if len(c.URL) > 0 {
		cfg.URLs = c.URL
	}
	if c.Output != "" {
		cfg.Output.Path = c.Output
	}
	if c.Format != "" {
		cfg.Output.Format = harvest.Format(c.Format)
	}
	if c.Append {
		cfg.Output.Append = true
	}
	if c.Timeout > 0 {
		cfg.Timeout = harvest.Duration(c.Timeout)
	}
	if c.Retries > 0 {
		cfg.Retries = c.Retries
	}
	if c.Concurrency > 0 {
		cfg.Concurrency = c.Concurrency
	}
	if c.UserAgent != "" {
		cfg.UserAgent = c.UserAgent
	}
	if c.Proxy != "" {
		cfg.Proxy = c.Proxy
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	scraper, closeFetcher, err := buildScraper(deps, cfg)
	if err != nil {
		return err
	}
	defer closeFetcher()

	writer, closeWriter, err := buildWriter(deps, cfg)
	if err != nil {
		return err
	}
	defer closeWriter()

	records, err := scraper.Run(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	if err := writer.Write(deps.Ctx, records); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}
	if err := writer.Close(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	if cfg.Feed != nil {
		if err := feed.NewWriter().WriteFeed(deps.Ctx, *cfg.Feed, records); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
			return err
		}
	}

	report := scraper.Report()
	fmt.Fprintf(deps.Stdout, "%d records from %d pages in %s -> %s\n",
		len(records), report.PagesFetched, report.Duration().Round(timeRound), cfg.Output.Path)
	for url, msg := range report.Errors {
		fmt.Fprintf(deps.Stderr, "failed: %s: %s\n", url, msg)
	}
	if len(report.Errors) == len(cfg.URLs) && len(cfg.URLs) > 0 {
		return fmt.Errorf("all %d URLs failed", len(cfg.URLs))
	}
	return nil
}

// buildScraper wires the fetch, extraction and pagination stack for a
// run. The returned func closes the underlying HTTP fetcher.
func buildScraper(deps *Dependencies, cfg *harvest.Config) (*scrape.Scraper, func(), error) {
	opts := []harvesthttp.Option{
		harvesthttp.WithTimeout(cfg.Timeout.Duration()),
	}
	if cfg.Proxy != "" {
		opts = append(opts, harvesthttp.WithProxy(cfg.Proxy))
	}
	if len(cfg.Headers) > 0 {
		opts = append(opts, harvesthttp.WithHeaders(cfg.Headers))
	}
	if len(cfg.Cookies) > 0 {
		opts = append(opts, harvesthttp.WithCookies(cfg.Cookies))
	}
	switch {
	case cfg.RotateUA == "sequential":
		opts = append(opts, harvesthttp.WithUserAgentPolicy(harvesthttp.NewRotatingUserAgent()))
	case cfg.RotateUA == "random":
		opts = append(opts, harvesthttp.WithUserAgentPolicy(harvesthttp.NewRandomUserAgent(time.Now().UnixNano())))
	case cfg.UserAgent != "":
		opts = append(opts, harvesthttp.WithUserAgentPolicy(harvesthttp.FixedUserAgent(cfg.UserAgent)))
	}

	fetcher, err := harvesthttp.NewFetcher(opts...)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return nil, nil, err
	}

	extractor := goquery.NewExtractor(cfg)
	if cfg.MarkdownContent {
		extractor.SetConverter(htmltomarkdown.NewConverter())
	}

	// One request per second per host unless the config slows it down.
	rps := 1.0
	if d := cfg.Delay.Duration(); d > 0 {
		rps = 1.0 / d.Seconds()
	}

	scraper := scrape.New(cfg,
		harvestslog.NewLoggingFetcher(fetcher, deps.Logger),
		harvestslog.NewLoggingExtractor(extractor, deps.Logger),
		goquery.NewPaginator())
	scraper.Logger = deps.Logger
	scraper.RateLimiter = scrape.NewDomainLimiter(rps)
	scraper.RetryDelays = retryDelays(cfg.Retries)
	if cfg.ExtractorFallback {
		if cfg.FallbackEngine == "readability" {
			scraper.ContentExtractor = readability.NewExtractor()
		} else {
			scraper.ContentExtractor = trafilatura.NewExtractor()
		}
	}
	return scraper, func() { _ = fetcher.Close() }, nil
}

// retryDelays converts a total attempt count into exponential backoff
// delays, doubling from one second.
func retryDelays(retries int) []time.Duration {
	if retries < 1 {
		retries = 1
	}
	delays := make([]time.Duration, 0, retries-1)
	d := time.Second
	for i := 0; i < retries-1; i++ {
		delays = append(delays, d)
		d *= 2
	}
	return delays
}

// buildWriter creates the record writer for the configured output. The
// returned func releases any underlying resources.
func buildWriter(deps *Dependencies, cfg *harvest.Config) (harvest.RecordWriter, func(), error) {
	switch cfg.Output.Format {
	case harvest.FormatCSV:
		return harvestslog.NewLoggingWriter(fs.NewCSVWriter(cfg.Output.Path, cfg.Output.Append), deps.Logger),
			func() {}, nil
	case harvest.FormatJSON:
		return harvestslog.NewLoggingWriter(fs.NewJSONWriter(cfg.Output.Path, cfg.Output.Indent, cfg.Output.Append), deps.Logger),
			func() {}, nil
	case harvest.FormatDatabase:
		db := sqlite.NewDB(cfg.Output.Path)
		if err := db.Open(); err != nil {
			fmt.Fprintf(deps.Stderr, "error: failed to open database at %q\n", cfg.Output.Path)
			return nil, nil, err
		}
		store := sqlite.NewRecordStore(db, cfg.Kind, cfg.Output.Append)
		return harvestslog.NewLoggingWriter(store, deps.Logger), func() { _ = db.Close() }, nil
	default:
		return nil, nil, harvest.Errorf(harvest.EINVALID, "unknown output format: %q", cfg.Output.Format)
	}
}
