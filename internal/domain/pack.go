package domain

import "time"

// PackType identifies a pack configuration (slot tables, premium flag, design).
type PackType string

const (
	PackTypeStandard PackType = "standard"
	PackTypePremium  PackType = "premium"
)

// PackCard is one slot's outcome bound to a concrete card.
type PackCard struct {
	SlotIndex   int         `json:"slot_index"`
	CardID      string      `json:"card_id"`
	Rarity      Rarity      `json:"rarity"`
	HoloVariant HoloVariant `json:"holo_variant"`
}

// Pack is the externally visible draw result. Immutable once assembled.
type Pack struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	PackType   PackType   `json:"pack_type"`
	Design     string     `json:"design,omitempty"`
	Cards      []PackCard `json:"cards"`
	BestRarity Rarity     `json:"best_rarity"`
	OpenedAt   time.Time  `json:"opened_at"`
}

// ResolveBestRarity computes the maximum-ordered rarity across the cards.
func ResolveBestRarity(cards []PackCard) Rarity {
	best := RarityCommon
	for _, c := range cards {
		best = MaxRarity(best, c.Rarity)
	}
	return best
}

// DrawRequest is a pack-open request from the UI/API layer.
type DrawRequest struct {
	UserID      string   `json:"user_id"`
	Fingerprint string   `json:"fingerprint,omitempty"`
	PackType    PackType `json:"pack_type"`
	ClientSeed  string   `json:"client_seed"`

	// SeedCommitment is the server-seed commitment hash the client last saw.
	// When set, it must match the active entropy epoch.
	SeedCommitment string `json:"seed_commitment,omitempty"`
}

// LimitKey returns the identity the rate limiter and ban system key on.
// Fingerprint is used when account identity is unavailable.
func (r DrawRequest) LimitKey() string {
	if r.UserID != "" {
		return r.UserID
	}
	return r.Fingerprint
}

// DrawResult is the successful response to a DrawRequest.
type DrawResult struct {
	Pack      Pack            `json:"pack"`
	Entropy   PackEntropy     `json:"entropy"`
	RateLimit RateLimitStatus `json:"rate_limit"`
}

// PackValidationResult is the outcome of auditing a (entropy, pack) pair.
type PackValidationResult struct {
	Valid           bool     `json:"valid"`
	EntropyVerified bool     `json:"entropy_verified"`
	Anomalies       []string `json:"anomalies,omitempty"`
}
