package domain

import "time"

// PityCounter tracks draws since the last hit of each protected tier for one
// user and pack type. Counters reset to 0 the instant that tier is rolled,
// and increment by one per miss.
//
// Mutation happens only inside the roller while the account lock is held.
type PityCounter struct {
	UserID              string    `json:"user_id"`
	PackType            PackType  `json:"pack_type"`
	PacksSinceRare      int       `json:"packs_since_rare"`
	PacksSinceEpic      int       `json:"packs_since_epic"`
	PacksSinceLegendary int       `json:"packs_since_legendary"`
	PacksSinceMythic    int       `json:"packs_since_mythic"`
	LastUpdated         time.Time `json:"last_updated"`
}

// Count returns the counter for a protected tier. Unprotected tiers are 0.
func (p PityCounter) Count(tier Rarity) int {
	switch tier {
	case RarityRare:
		return p.PacksSinceRare
	case RarityEpic:
		return p.PacksSinceEpic
	case RarityLegendary:
		return p.PacksSinceLegendary
	case RarityMythic:
		return p.PacksSinceMythic
	}
	return 0
}

// SetCount sets the counter for a protected tier. Negative values clamp to 0.
func (p *PityCounter) SetCount(tier Rarity, n int) {
	if n < 0 {
		n = 0
	}
	switch tier {
	case RarityRare:
		p.PacksSinceRare = n
	case RarityEpic:
		p.PacksSinceEpic = n
	case RarityLegendary:
		p.PacksSinceLegendary = n
	case RarityMythic:
		p.PacksSinceMythic = n
	}
}

// PityThreshold configures bad-luck protection for one protected tier.
// Once the counter reaches SoftPity the tier's weight escalates; once it
// reaches HardPity the next roll is forced to that tier or better.
type PityThreshold struct {
	SoftPity           int     `json:"soft_pity"`
	HardPity           int     `json:"hard_pity"`
	SoftPityMultiplier float64 `json:"soft_pity_multiplier"`
}

// PityThresholds maps each protected tier to its threshold configuration.
type PityThresholds map[Rarity]PityThreshold
