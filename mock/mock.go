// Package mock provides mock implementations of harvest interfaces for
// testing.
package mock

import (
	"context"

	"github.com/abrsjh/harvest"
)

var _ harvest.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of harvest.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

var _ harvest.RecordExtractor = (*RecordExtractor)(nil)

// RecordExtractor is a mock implementation of harvest.RecordExtractor.
type RecordExtractor struct {
	ExtractFn       func(html, baseURL string) ([]harvest.Record, error)
	ExtractDetailFn func(html, url string) (harvest.Record, error)
}

func (e *RecordExtractor) Extract(html, baseURL string) ([]harvest.Record, error) {
	return e.ExtractFn(html, baseURL)
}

func (e *RecordExtractor) ExtractDetail(html, url string) (harvest.Record, error) {
	return e.ExtractDetailFn(html, url)
}

var _ harvest.PageClassifier = (*PageClassifier)(nil)

// PageClassifier is a mock implementation of harvest.PageClassifier.
type PageClassifier struct {
	IsSingleRecordFn func(html string) bool
}

func (c *PageClassifier) IsSingleRecord(html string) bool {
	return c.IsSingleRecordFn(html)
}

var _ harvest.Paginator = (*Paginator)(nil)

// Paginator is a mock implementation of harvest.Paginator.
type Paginator struct {
	NextPageFn func(html, currentURL string) (string, bool)
}

func (p *Paginator) NextPage(html, currentURL string) (string, bool) {
	return p.NextPageFn(html, currentURL)
}

var _ harvest.RecordWriter = (*RecordWriter)(nil)

// RecordWriter is a mock implementation of harvest.RecordWriter.
type RecordWriter struct {
	WriteFn func(ctx context.Context, records []harvest.Record) error
	CloseFn func() error
}

func (w *RecordWriter) Write(ctx context.Context, records []harvest.Record) error {
	return w.WriteFn(ctx, records)
}

func (w *RecordWriter) Close() error {
	return w.CloseFn()
}

var _ harvest.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of harvest.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, url string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, url string) error {
	return d.WaitFn(ctx, url)
}

var _ harvest.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of harvest.ContentExtractor.
type ContentExtractor struct {
	ExtractContentFn func(ctx context.Context, html, url string) (string, error)
}

func (e *ContentExtractor) ExtractContent(ctx context.Context, html, url string) (string, error) {
	return e.ExtractContentFn(ctx, html, url)
}
