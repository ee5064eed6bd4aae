// Package scrape provides scrape run orchestration. It coordinates
// fetching, page classification, record extraction, pagination, and
// validation across the configured URLs, isolating per-URL failures.
package scrape

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/abrsjh/harvest"
	"golang.org/x/sync/errgroup"
)

// Scraper orchestrates one scrape run. Construct with New, then call
// Run once. Report may be called at any time, including while Run is in
// progress.
type Scraper struct {
	Fetcher     harvest.Fetcher
	Extractor   harvest.RecordExtractor
	Paginator   harvest.Paginator
	RateLimiter harvest.DomainLimiter
	Config      *harvest.Config
	Logger      *slog.Logger
	RetryDelays []time.Duration

	// ContentExtractor fills in article bodies that the selector cascades
	// missed. Used only when the config enables the extractor fallback.
	ContentExtractor harvest.ContentExtractor

	mu      sync.Mutex
	report  *harvest.RunReport
	results []harvest.Record
}

// New creates a Scraper for the given configuration and collaborators.
func New(cfg *harvest.Config, fetcher harvest.Fetcher, extractor harvest.RecordExtractor, paginator harvest.Paginator) *Scraper {
	return &Scraper{
		Fetcher:   fetcher,
		Extractor: extractor,
		Paginator: paginator,
		Config:    cfg,
		Logger:    slog.Default(),
		report:    harvest.NewRunReport(),
	}
}

// Run processes every configured URL and returns the aggregate records.
// One URL's failure never stops the others; failures are recorded in the
// run report. Only configuration errors abort the run.
func (s *Scraper) Run(ctx context.Context) ([]harvest.Record, error) {
	if err := s.Config.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.report = harvest.NewRunReport()
	s.results = nil
	s.mu.Unlock()

	concurrency := s.Config.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, pageURL := range s.Config.URLs {
		pageURL := pageURL
		g.Go(func() error {
			records, err := s.processURL(gctx, pageURL)
			s.mu.Lock()
			defer s.mu.Unlock()
			if err != nil {
				s.Logger.Warn("url failed",
					slog.String("url", pageURL),
					slog.String("error", err.Error()))
				s.report.Errors[pageURL] = err.Error()
				return nil
			}
			s.results = append(s.results, records...)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, harvest.Errorf(harvest.EUNAVAILABLE, "run canceled: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.report.FinishedAt = time.Now()
	out := make([]harvest.Record, len(s.results))
	copy(out, s.results)
	return out, nil
}

// Report returns a snapshot of the run report. While Run is in progress
// the snapshot is partial.
func (s *Scraper) Report() harvest.RunReport {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := *s.report
	snap.Errors = make(map[string]string, len(s.report.Errors))
	for k, v := range s.report.Errors {
		snap.Errors[k] = v
	}
	return snap
}

func (s *Scraper) addPage() {
	s.mu.Lock()
	s.report.PagesFetched++
	s.mu.Unlock()
}

func (s *Scraper) addRecords(found, kept int) {
	s.mu.Lock()
	s.report.RecordsFound += found
	s.report.RecordsKept += kept
	s.report.RecordsDropped += found - kept
	s.mu.Unlock()
}

func (s *Scraper) addDetailFetch() {
	s.mu.Lock()
	s.report.DetailFetches++
	s.mu.Unlock()
}

// fetch waits for the domain rate limit and fetches with retry.
func (s *Scraper) fetch(ctx context.Context, url string) (string, error) {
	if s.RateLimiter != nil {
		if err := s.RateLimiter.Wait(ctx, url); err != nil {
			return "", err
		}
	}
	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, url, s.Fetcher.Fetch, s.Logger, delays)
	if err != nil {
		return "", err
	}
	s.addPage()
	return html, nil
}
