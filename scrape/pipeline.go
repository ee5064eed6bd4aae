package scrape

import (
	"context"
	"log/slog"
	"time"

	"github.com/abrsjh/harvest"
	"github.com/abrsjh/harvest/bloom"
)

// Visited-set sizing for one pagination chain.
const (
	visitedExpectedURLs      = 1000
	visitedFalsePositiveRate = 0.01
)

// processURL runs the full pipeline for one top-level URL: fetch,
// extract, optional detail fetches, transform, validate, and follow
// pagination up to the configured page limit. The visited set guarantees
// termination even when a site's next link cycles.
func (s *Scraper) processURL(ctx context.Context, startURL string) ([]harvest.Record, error) {
	visited := bloom.NewFilter(visitedExpectedURLs, visitedFalsePositiveRate)
	profile := harvest.Profile(s.Config.Kind)

	var records []harvest.Record
	pageURL := startURL

	for page := 0; page < s.Config.MaxPages; page++ {
		if visited.TestAndAdd(pageURL) {
			break
		}
		if err := ctx.Err(); err != nil {
			return records, err
		}

		html, err := s.fetch(ctx, pageURL)
		if err != nil {
			// Failing the first page fails the URL; a broken
			// pagination chain just ends early.
			if page == 0 {
				return nil, err
			}
			s.Logger.Warn("pagination fetch failed",
				slog.String("url", pageURL),
				slog.String("error", err.Error()))
			break
		}

		extracted, err := s.Extractor.Extract(html, pageURL)
		if err != nil {
			if page == 0 {
				return nil, err
			}
			break
		}

		s.fillContent(ctx, html, pageURL, extracted)
		if s.Config.FetchFullArticles {
			s.fetchDetails(ctx, extracted)
		}

		found := len(extracted)
		batch := Transform(extracted, pageURL, time.Now())
		batch = Validate(batch, profile, s.Config.CountryCode, s.Logger)
		s.addRecords(found, len(batch))
		records = append(records, batch...)

		if !s.Config.FollowNextPage || s.Paginator == nil {
			break
		}
		next, ok := s.Paginator.NextPage(html, pageURL)
		if !ok {
			break
		}
		pageURL = next
	}

	return records, nil
}

// fillContent runs the content-extraction fallback over records that
// represent the fetched page itself and still lack a body.
func (s *Scraper) fillContent(ctx context.Context, html, pageURL string, records []harvest.Record) {
	if !s.Config.ExtractorFallback || s.ContentExtractor == nil {
		return
	}
	for _, rec := range records {
		if rec.String("content") != "" {
			continue
		}
		if u := rec.String("url"); u != "" && u != pageURL {
			continue
		}
		content, err := s.ContentExtractor.ExtractContent(ctx, html, pageURL)
		if err != nil {
			s.Logger.Debug("content fallback failed",
				slog.String("url", pageURL),
				slog.String("error", err.Error()))
			return
		}
		rec["content"] = content
	}
}

// fetchDetails fetches each record's detail page and merges in fields
// the listing lacked. Detail failures are logged and skipped.
func (s *Scraper) fetchDetails(ctx context.Context, records []harvest.Record) {
	for _, rec := range records {
		detailURL := rec.String("url")
		if detailURL == "" || rec.String("content") != "" {
			continue
		}

		html, err := s.fetch(ctx, detailURL)
		if err != nil {
			s.Logger.Warn("detail fetch failed",
				slog.String("url", detailURL),
				slog.String("error", err.Error()))
			continue
		}
		detail, err := s.Extractor.ExtractDetail(html, detailURL)
		if err != nil {
			s.Logger.Warn("detail extraction failed",
				slog.String("url", detailURL),
				slog.String("error", err.Error()))
		} else {
			rec.Merge(detail)
		}
		if rec.String("content") == "" && s.Config.ExtractorFallback && s.ContentExtractor != nil {
			if content, err := s.ContentExtractor.ExtractContent(ctx, html, detailURL); err == nil {
				rec["content"] = content
			}
		}
		s.addDetailFetch()
	}
}
