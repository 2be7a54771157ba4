package entropy

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/dadddeck/pack-engine/internal/domain"
	"github.com/dadddeck/pack-engine/internal/metrics"
)

// Rotator owns the server seed and retires it on a fixed interval. Each
// rotation starts a new epoch; draws always use the current seed, and a
// request pinned to a retired commitment is rejected as stale. Retired
// seeds are kept around for Reveal so recorded draws stay auditable; the
// live seed is never handed out.
type Rotator struct {
	mu       sync.Mutex
	interval time.Duration
	seed     string
	epoch    uint64
	rotated  time.Time
	retired  map[uint64]string
	now      func() time.Time
}

// NewRotator generates the initial seed and returns a rotator that retires
// it every interval.
func NewRotator(interval time.Duration) (*Rotator, error) {
	r := &Rotator{
		interval: interval,
		retired:  make(map[uint64]string),
		now:      time.Now,
	}
	if err := r.rotateLocked(); err != nil {
		return nil, err
	}
	return r, nil
}

// Current returns the active server seed, its commitment, and the epoch,
// rotating first if the interval has elapsed.
func (r *Rotator) Current() (seed, commitment string, epoch uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.now().Sub(r.rotated) >= r.interval {
		// Rotation failure keeps the old seed; draws stay available and the
		// next call retries.
		_ = r.rotateLocked()
	}
	return r.seed, Commitment(r.seed), r.epoch
}

// Rotate forces an immediate rotation regardless of interval.
func (r *Rotator) Rotate() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rotateLocked()
}

// ValidateCommitment checks a client-pinned commitment against the current
// seed. An empty commitment is accepted: pinning is optional.
func (r *Rotator) ValidateCommitment(commitment string) error {
	if commitment == "" {
		return nil
	}
	r.mu.Lock()
	current := Commitment(r.seed)
	r.mu.Unlock()

	if commitment != current {
		return fmt.Errorf("%w: commitment %s is not current", domain.ErrStaleSeed, commitment)
	}
	return nil
}

// Reveal returns the plaintext seed for a retired epoch. The live epoch is
// refused: a client holding the active seed could precompute every draw
// remaining in it.
func (r *Rotator) Reveal(epoch uint64) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.now().Sub(r.rotated) >= r.interval {
		_ = r.rotateLocked()
	}
	if epoch == r.epoch {
		return "", fmt.Errorf("%w: epoch %d is still live", domain.ErrSeedNotRevealed, epoch)
	}
	seed, ok := r.retired[epoch]
	if !ok {
		return "", fmt.Errorf("%w: no seed recorded for epoch %d", domain.ErrInvalidSeed, epoch)
	}
	return seed, nil
}

func (r *Rotator) rotateLocked() error {
	buf := make([]byte, ServerSeedBytes)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("%s: %w", ErrContextFailedToGenerateSeed, err)
	}
	if r.seed != "" {
		r.retired[r.epoch] = r.seed
		delete(r.retired, r.epoch-RetiredEpochsKept)
	}
	r.seed = hex.EncodeToString(buf)
	r.epoch++
	r.rotated = r.now()
	metrics.SeedRotations.Inc()
	return nil
}
