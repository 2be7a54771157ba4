package ratelimit

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/dadddeck/pack-engine/internal/domain"
	"github.com/dadddeck/pack-engine/internal/logger"
	"github.com/dadddeck/pack-engine/internal/metrics"
)

// Service defines the interface for sliding-window admission control
type Service interface {
	// Check admits or blocks one request for a (key, action) pair and
	// returns the resulting status. Admitted requests consume a window
	// slot; blocked ones do not.
	Check(ctx context.Context, key, action string) domain.RateLimitStatus

	// Reset clears the window for a (key, action) pair (admin/testing).
	Reset(key, action string)
}

// service implements the Service interface with an in-memory sliding window.
// State lives only for the duration of a window, so process-local memory is
// the right home for it; restarts simply grant everyone a fresh window.
type service struct {
	mu      sync.Mutex
	windows map[string][]time.Time

	max       int
	window    time.Duration
	burst     int
	actionMax map[string]int

	checks int
	now    func() time.Time
}

// Option adjusts limiter construction.
type Option func(*service)

// WithActionMax overrides the nominal cap for one action. Window and burst
// allowance are shared across actions.
func WithActionMax(action string, max int) Option {
	return func(s *service) {
		s.actionMax[action] = max
	}
}

// NewService creates a new rate limiter allowing max requests per window,
// with burst extra requests admitted (and flagged) beyond the nominal cap.
func NewService(max int, window time.Duration, burst int, opts ...Option) Service {
	s := &service{
		windows:   make(map[string][]time.Time),
		max:       max,
		window:    window,
		burst:     burst,
		actionMax: make(map[string]int),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Check admits or blocks one request for a (key, action) pair.
func (s *service) Check(ctx context.Context, key, action string) domain.RateLimitStatus {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.checks++
	if s.checks%pruneEvery == 0 {
		s.pruneLocked(now)
	}

	id := key + "|" + action
	recent := trim(s.windows[id], now.Add(-s.window))

	limit := s.max
	if override, ok := s.actionMax[action]; ok {
		limit = override
	}

	status := domain.RateLimitStatus{
		Remaining:     limit - len(recent) - 1,
		WindowResetAt: now.Add(s.window),
	}
	if len(recent) > 0 {
		status.WindowResetAt = recent[0].Add(s.window)
	}
	if status.Remaining < 0 {
		status.Remaining = 0
	}

	switch {
	case len(recent) >= limit+s.burst:
		status.IsBlocked = true
		status.RetryAfterSeconds = retryAfter(recent[0].Add(s.window), now)
		s.windows[id] = recent
		metrics.RateLimitBlocks.WithLabelValues(action).Inc()
		log.Warn(LogMsgRequestBlocked, "key", key, "action", action, "retry_after_s", status.RetryAfterSeconds)
		return status

	case len(recent) >= limit:
		// Over the nominal cap but within the burst allowance: admit it,
		// flag it, let the violation ledger decide what that means.
		status.BurstUsed = true
		metrics.RateLimitBurstUses.WithLabelValues(action).Inc()
		log.Info(LogMsgBurstUsed, "key", key, "action", action, "used", len(recent)-limit+1)
	}

	s.windows[id] = append(recent, now)
	return status
}

// Reset clears the window for a (key, action) pair.
func (s *service) Reset(key, action string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.windows, key+"|"+action)
}

// trim drops timestamps that have slid out of the window.
func trim(stamps []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for i < len(stamps) && !stamps[i].After(cutoff) {
		i++
	}
	return stamps[i:]
}

// pruneLocked evicts pairs whose entire window has expired.
func (s *service) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	for id, stamps := range s.windows {
		if len(trim(stamps, cutoff)) == 0 {
			delete(s.windows, id)
		}
	}
}

func retryAfter(resetAt, now time.Time) int {
	return int(math.Ceil(resetAt.Sub(now).Seconds()))
}
