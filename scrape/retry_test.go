package scrape_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/abrsjh/harvest/scrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	zero := []time.Duration{0, 0, 0}

	t.Run("success on first attempt", func(t *testing.T) {
		t.Parallel()
		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "<html></html>", nil
		}
		html, err := scrape.FetchWithRetryDelays(context.Background(), "https://acme.io", fetch, nil, zero)
		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 1, calls)
	})

	t.Run("recovers after transient failures", func(t *testing.T) {
		t.Parallel()
		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			if calls < 3 {
				return "", errors.New("timeout")
			}
			return "ok", nil
		}
		html, err := scrape.FetchWithRetryDelays(context.Background(), "https://acme.io", fetch, nil, zero)
		require.NoError(t, err)
		assert.Equal(t, "ok", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("returns last error when exhausted", func(t *testing.T) {
		t.Parallel()
		calls := 0
		fetch := func(_ context.Context, _ string) (string, error) {
			calls++
			return "", errors.New("still down")
		}
		_, err := scrape.FetchWithRetryDelays(context.Background(), "https://acme.io", fetch, nil, zero)
		assert.EqualError(t, err, "still down")
		assert.Equal(t, 4, calls, "one initial attempt plus three retries")
	})

	t.Run("canceled context stops retrying", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		fetch := func(_ context.Context, _ string) (string, error) {
			return "", errors.New("boom")
		}
		_, err := scrape.FetchWithRetryDelays(ctx, "https://acme.io", fetch, nil, []time.Duration{time.Second})
		assert.ErrorIs(t, err, context.Canceled)
	})
}
