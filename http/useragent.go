package http

import (
	"math/rand"
	"sync"

	"github.com/abrsjh/harvest"
)

// defaultUserAgents is a pool of common browser identifiers used when
// rotation is enabled.
var defaultUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:121.0) Gecko/20100101 Firefox/121.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/119.0.0.0 Safari/537.36 Edg/119.0.0.0",
}

var (
	_ harvest.UserAgentPolicy = FixedUserAgent("")
	_ harvest.UserAgentPolicy = (*RotatingUserAgent)(nil)
	_ harvest.UserAgentPolicy = (*RandomUserAgent)(nil)
)

// FixedUserAgent always returns the same User-Agent string.
type FixedUserAgent string

func (f FixedUserAgent) UserAgent() string { return string(f) }

// RotatingUserAgent cycles through a pool of User-Agent strings in order.
// Safe for concurrent use.
type RotatingUserAgent struct {
	mu    sync.Mutex
	pool  []string
	index int
}

// NewRotatingUserAgent returns a policy that cycles through the given
// pool, or the built-in browser pool when pool is empty.
func NewRotatingUserAgent(pool ...string) *RotatingUserAgent {
	if len(pool) == 0 {
		pool = defaultUserAgents
	}
	return &RotatingUserAgent{pool: pool}
}

func (r *RotatingUserAgent) UserAgent() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	ua := r.pool[r.index%len(r.pool)]
	r.index++
	return ua
}

// RandomUserAgent picks a random User-Agent from a pool on each request.
// Safe for concurrent use.
type RandomUserAgent struct {
	mu   sync.Mutex
	pool []string
	rng  *rand.Rand
}

// NewRandomUserAgent returns a policy that picks randomly from the given
// pool, or the built-in browser pool when pool is empty.
func NewRandomUserAgent(seed int64, pool ...string) *RandomUserAgent {
	if len(pool) == 0 {
		pool = defaultUserAgents
	}
	return &RandomUserAgent{pool: pool, rng: rand.New(rand.NewSource(seed))}
}

func (r *RandomUserAgent) UserAgent() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pool[r.rng.Intn(len(r.pool))]
}
