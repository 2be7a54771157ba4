package entropy

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dadddeck/pack-engine/internal/domain"
)

// NonceGuard issues strictly increasing nonces per account and detects
// replays of externally supplied ones. Backed by a bounded LRU so abandoned
// sessions age out instead of leaking. Eviction restarts an idle account's
// sequence at 1; that is safe because monotonicity only has to hold within
// an active session, and seeds rotate far more often than a hot cache
// cycles through NonceCacheSize accounts, so (epoch, account, nonce) never
// repeats for a live seed.
type NonceGuard struct {
	mu   sync.Mutex
	last *lru.Cache[string, uint64]
}

// NewNonceGuard creates a guard tracking up to size accounts.
func NewNonceGuard(size int) (*NonceGuard, error) {
	cache, err := lru.New[string, uint64](size)
	if err != nil {
		return nil, err
	}
	return &NonceGuard{last: cache}, nil
}

// Next returns the next nonce for the key. The first call yields 1.
func (g *NonceGuard) Next(key string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()

	nonce, _ := g.last.Get(key)
	nonce++
	g.last.Add(key, nonce)
	return nonce
}

// Observe records an externally supplied nonce, rejecting any value at or
// below the last one seen for the key.
func (g *NonceGuard) Observe(key string, nonce uint64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if last, ok := g.last.Get(key); ok && nonce <= last {
		return fmt.Errorf("%w: nonce %d already used (last %d)", domain.ErrNonceReplayed, nonce, last)
	}
	g.last.Add(key, nonce)
	return nil
}

// LastIssued returns the most recent nonce for the key, if any.
func (g *NonceGuard) LastIssued(key string) (uint64, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last.Get(key)
}
