package pity

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dadddeck/pack-engine/internal/domain"
)

// LoadThresholds reads and validates pity thresholds from a JSON file keyed
// by protected tier.
func LoadThresholds(path string) (domain.PityThresholds, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToReadFile, err)
	}

	var thresholds domain.PityThresholds
	if err := json.Unmarshal(data, &thresholds); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextFailedToParseFile, err)
	}

	if err := ValidateThresholds(thresholds); err != nil {
		return nil, err
	}

	return thresholds, nil
}

// ValidateThresholds checks every threshold invariant: only protected tiers,
// softPity strictly below hardPity, positive counts, multiplier above 1.
func ValidateThresholds(thresholds domain.PityThresholds) error {
	protected := make(map[domain.Rarity]bool, len(domain.ProtectedRarities))
	for _, tier := range domain.ProtectedRarities {
		protected[tier] = true
	}

	for tier, threshold := range thresholds {
		if !protected[tier] {
			return fmt.Errorf("%s: tier %q is not pity-protected", ErrContextInvalidThresholds, tier)
		}
		if threshold.SoftPity <= 0 || threshold.HardPity <= 0 {
			return fmt.Errorf("%s: tier %q has non-positive pity counts", ErrContextInvalidThresholds, tier)
		}
		if threshold.SoftPity >= threshold.HardPity {
			return fmt.Errorf("%s: tier %q soft pity %d must be below hard pity %d",
				ErrContextInvalidThresholds, tier, threshold.SoftPity, threshold.HardPity)
		}
		if threshold.SoftPityMultiplier <= 1 {
			return fmt.Errorf("%s: tier %q multiplier %.2f must exceed 1",
				ErrContextInvalidThresholds, tier, threshold.SoftPityMultiplier)
		}
	}

	return nil
}
