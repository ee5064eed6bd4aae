// Package http provides the HTTP-based implementation of harvest.Fetcher.
// It operates on already-rendered static HTML; no JavaScript execution.
package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/abrsjh/harvest"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements harvest.Fetcher at compile time.
var _ harvest.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	proxy     string
	headers   map[string]string
	cookies   map[string]string
	userAgent harvest.UserAgentPolicy
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithProxy routes requests through the given proxy URL.
func WithProxy(proxyURL string) Option {
	return func(f *Fetcher) {
		f.proxy = proxyURL
	}
}

// WithHeaders sets extra request headers sent on every fetch.
func WithHeaders(headers map[string]string) Option {
	return func(f *Fetcher) {
		f.headers = headers
	}
}

// WithCookies sets cookies sent on every fetch.
func WithCookies(cookies map[string]string) Option {
	return func(f *Fetcher) {
		f.cookies = cookies
	}
}

// WithUserAgentPolicy sets the policy that yields the User-Agent header
// per request. Defaults to a fixed browser-like agent.
func WithUserAgentPolicy(p harvest.UserAgentPolicy) Option {
	return func(f *Fetcher) {
		f.userAgent = p
	}
}

// NewFetcher creates an HTTP-based Fetcher.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: FixedUserAgent(defaultUserAgents[0]),
	}
	for _, opt := range opts {
		opt(f)
	}

	transport := http.DefaultTransport
	if f.proxy != "" {
		proxyURL, err := url.Parse(f.proxy)
		if err != nil {
			return nil, harvest.Errorf(harvest.EINVALID, "invalid proxy URL: %v", err)
		}
		transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
	}
	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: transport,
	}

	return f, nil
}

// Fetch retrieves the HTML content from the given URL. Non-200 responses
// are reported as EUNAVAILABLE so callers can retry.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", harvest.Errorf(harvest.EINVALID, "invalid request: %v", err)
	}

	req.Header.Set("User-Agent", f.userAgent.UserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}
	for name, value := range f.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", harvest.Errorf(harvest.EUNAVAILABLE, "fetch %s: %v", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", harvest.Errorf(harvest.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", harvest.Errorf(harvest.EUNAVAILABLE, "read %s: %v", rawURL, err)
	}

	return string(body), nil
}

// Close releases resources. A no-op for the HTTP fetcher.
func (f *Fetcher) Close() error {
	return nil
}
