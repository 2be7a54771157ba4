package domain

import "time"

// RateLimitStatus is recomputed on every admission check; it is not
// persisted beyond the current window.
type RateLimitStatus struct {
	Remaining         int       `json:"remaining"`
	WindowResetAt     time.Time `json:"window_reset_at"`
	IsBlocked         bool      `json:"is_blocked"`
	RetryAfterSeconds int       `json:"retry_after_seconds,omitempty"`
	BurstUsed         bool      `json:"burst_used,omitempty"`
}
