package roll

import (
	"github.com/dadddeck/pack-engine/internal/domain"
	"github.com/dadddeck/pack-engine/internal/rarity"
)

// RollRarity resolves one slot to a rarity and returns the updated pity
// counters. Pure: the outcome depends only on the arguments, with u the
// uniform [0,1) value for this slot taken from the draw's entropy stream.
//
// Guaranteed slots skip the weighted draw and never reset counters; higher
// protected tiers still count them as a miss. Weighted slots apply soft pity
// escalation, hard pity forcing, then cumulative-weight inversion walking
// rarities from mythic down so boundary ties land on the rarer tier.
func RollRarity(slot rarity.Slot, pity domain.PityCounter, thresholds domain.PityThresholds, u float64) (domain.Rarity, domain.PityCounter) {
	if slot.IsGuaranteed() {
		return slot.Guaranteed, countMiss(pity, slot.Guaranteed)
	}

	if forced, ok := hardPityTier(pity, thresholds); ok {
		return forced, countHit(pity, forced)
	}

	weights := escalate(slot.Table, pity, thresholds)
	hit := draw(weights, u)
	return hit, countHit(pity, hit)
}

// hardPityTier returns the highest protected tier whose counter has reached
// its hard pity threshold.
func hardPityTier(pity domain.PityCounter, thresholds domain.PityThresholds) (domain.Rarity, bool) {
	for i := len(domain.ProtectedRarities) - 1; i >= 0; i-- {
		tier := domain.ProtectedRarities[i]
		threshold, ok := thresholds[tier]
		if !ok {
			continue
		}
		if pity.Count(tier) >= threshold.HardPity {
			return tier, true
		}
	}
	return "", false
}

// escalate applies soft pity multipliers and renormalizes so the weights sum
// to 1 again, redistributing the shift proportionally across all tiers.
func escalate(table map[domain.Rarity]float64, pity domain.PityCounter, thresholds domain.PityThresholds) map[domain.Rarity]float64 {
	weights := make(map[domain.Rarity]float64, len(table))
	total := 0.0
	for tier, w := range table {
		if threshold, ok := thresholds[tier]; ok && pity.Count(tier) >= threshold.SoftPity {
			w *= threshold.SoftPityMultiplier
		}
		weights[tier] = w
		total += w
	}
	for tier := range weights {
		weights[tier] /= total
	}
	return weights
}

// draw inverts the cumulative distribution in fixed mythic-to-common order.
func draw(weights map[domain.Rarity]float64, u float64) domain.Rarity {
	cumulative := 0.0
	last := domain.RarityCommon
	for _, tier := range domain.RarityDrawOrder {
		w, ok := weights[tier]
		if !ok || w <= 0 {
			continue
		}
		cumulative += w
		if u < cumulative {
			return tier
		}
		last = tier
	}
	// Floating-point residue at the top of the cumulative range lands on the
	// least rare tier present.
	return last
}

// countHit resets the hit tier and every lower protected tier, and counts a
// miss for every tier above it.
func countHit(pity domain.PityCounter, hit domain.Rarity) domain.PityCounter {
	for _, tier := range domain.ProtectedRarities {
		if tier.Rank() <= hit.Rank() {
			pity.SetCount(tier, 0)
		} else {
			pity.SetCount(tier, pity.Count(tier)+1)
		}
	}
	return pity
}

// countMiss counts a miss for every protected tier above the produced
// rarity without resetting anything. Used for guaranteed slots.
func countMiss(pity domain.PityCounter, produced domain.Rarity) domain.PityCounter {
	for _, tier := range domain.ProtectedRarities {
		if tier.Rank() > produced.Rank() {
			pity.SetCount(tier, pity.Count(tier)+1)
		}
	}
	return pity
}
