package scrape

import (
	"context"
	"log/slog"
	"time"
)

// FetchFunc fetches the HTML of one URL.
type FetchFunc func(ctx context.Context, url string) (string, error)

// DefaultRetryDelays returns the backoff delays for fetch retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// FetchWithRetryDelays fetches url, retrying after each delay in turn,
// so the total attempt count is len(delays)+1. Tests pass zero delays
// to avoid real waits. A nil logger silences retry logging.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger *slog.Logger, delays []time.Duration) (string, error) {
	for attempt := 0; ; attempt++ {
		html, err := fetch(ctx, url)
		if err == nil {
			return html, nil
		}
		if attempt == len(delays) {
			return "", err
		}

		if logger != nil {
			logger.Debug("retrying fetch",
				slog.String("url", url),
				slog.Int("attempt", attempt+2),
				slog.String("error", err.Error()))
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}
}
