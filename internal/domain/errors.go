package domain

import (
	"errors"
	"fmt"
	"time"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Admission errors
	ErrMsgRateLimited = "rate limited"
	ErrMsgBanned      = "account banned"

	// Integrity errors
	ErrMsgInvalidSeed     = "invalid seed"
	ErrMsgStaleSeed       = "stale server seed"
	ErrMsgSeedNotRevealed = "server seed not yet revealed"
	ErrMsgNonceReplayed   = "nonce replayed"
	ErrMsgHashMismatch    = "entropy hash mismatch"

	// Configuration errors
	ErrMsgUnknownPackType = "unknown pack type"
	ErrMsgInvalidTable    = "invalid probability table"
	ErrMsgEmptyCatalog    = "catalog has no cards for rarity"

	// Lookup errors
	ErrMsgCardNotFound = "card not found"
)

// Common domain errors
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for context.
var (
	// Admission errors (expected, non-fatal, surfaced as typed rejections)
	ErrRateLimited = errors.New(ErrMsgRateLimited)
	ErrBanned      = errors.New(ErrMsgBanned)

	// Integrity errors (draw rejected, violation recorded)
	ErrInvalidSeed   = errors.New(ErrMsgInvalidSeed)
	ErrStaleSeed     = errors.New(ErrMsgStaleSeed)
	ErrNonceReplayed = errors.New(ErrMsgNonceReplayed)
	ErrHashMismatch  = errors.New(ErrMsgHashMismatch)

	// ErrSeedNotRevealed rejects audits against a still-live epoch. The seed
	// becomes public on rotation; until then a replay is not possible.
	ErrSeedNotRevealed = errors.New(ErrMsgSeedNotRevealed)

	// Configuration errors (fatal, fail fast, never silently substituted)
	ErrUnknownPackType = errors.New(ErrMsgUnknownPackType)
	ErrInvalidTable    = errors.New(ErrMsgInvalidTable)
	ErrEmptyCatalog    = errors.New(ErrMsgEmptyCatalog)

	// Lookup errors
	ErrCardNotFound = errors.New(ErrMsgCardNotFound)
)

// RateLimitedError is returned when admission control blocks a draw.
// It carries the status so callers can surface retry timing.
type RateLimitedError struct {
	Status RateLimitStatus
}

func (e RateLimitedError) Error() string {
	return fmt.Sprintf("%s: retry in %ds", ErrMsgRateLimited, e.Status.RetryAfterSeconds)
}

// Is allows errors.Is(err, domain.ErrRateLimited) to match.
func (e RateLimitedError) Is(target error) bool {
	return target == ErrRateLimited
}

// BannedError is returned when the account standing blocks a draw.
type BannedError struct {
	Standing Standing
}

func (e BannedError) Error() string {
	if e.Standing.Permanent {
		return fmt.Sprintf("%s: permanent", ErrMsgBanned)
	}
	if e.Standing.ExpiresAt != nil {
		return fmt.Sprintf("%s: until %s", ErrMsgBanned, e.Standing.ExpiresAt.Format(time.RFC3339))
	}
	return ErrMsgBanned
}

// Is allows errors.Is(err, domain.ErrBanned) to match.
func (e BannedError) Is(target error) bool {
	return target == ErrBanned
}
