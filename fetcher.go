package harvest

import "context"

// Fetcher retrieves the HTML of a single page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (html string, err error)
}

// UserAgentPolicy yields the User-Agent header for the next request.
// Implementations may return a fixed value or rotate through a pool.
type UserAgentPolicy interface {
	UserAgent() string
}

// DomainLimiter throttles requests per domain. Wait blocks until the
// domain may be hit again or the context is done.
type DomainLimiter interface {
	Wait(ctx context.Context, url string) error
}
