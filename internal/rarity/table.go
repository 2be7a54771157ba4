package rarity

import (
	"github.com/dadddeck/pack-engine/internal/domain"
)

// Slot configures one card slot of a pack blueprint. Exactly one of
// Guaranteed or Table is set: a guaranteed slot always yields that rarity,
// a table slot draws from the weight map.
type Slot struct {
	Guaranteed domain.Rarity             `json:"guaranteed,omitempty"`
	Table      map[domain.Rarity]float64 `json:"table,omitempty"`
}

// IsGuaranteed reports whether the slot bypasses the weighted draw.
func (s Slot) IsGuaranteed() bool {
	return s.Guaranteed != ""
}

// Blueprint is the static configuration for one pack type: per-slot
// distributions plus holo parameters. Independent of any runtime state.
type Blueprint struct {
	Design         string  `json:"design,omitempty"`
	Premium        bool    `json:"premium,omitempty"`
	HoloChance     float64 `json:"holo_chance"`
	HoloMultiplier float64 `json:"holo_multiplier,omitempty"`
	Slots          []Slot  `json:"slots"`
}

// EffectiveHoloChance returns the per-card holo probability, with the
// premium multiplier applied when configured.
func (b Blueprint) EffectiveHoloChance() float64 {
	chance := b.HoloChance
	if b.Premium && b.HoloMultiplier > 0 {
		chance *= b.HoloMultiplier
	}
	if chance > 1 {
		chance = 1
	}
	return chance
}

// Tables maps pack types to their blueprints.
type Tables map[domain.PackType]Blueprint

// Blueprint returns the blueprint for a pack type.
func (t Tables) Blueprint(packType domain.PackType) (Blueprint, bool) {
	bp, ok := t[packType]
	return bp, ok
}

// RollableRarities returns the set of rarities any slot of any blueprint can
// produce. Used at startup to check the catalog has cards for each.
func (t Tables) RollableRarities() []domain.Rarity {
	seen := make(map[domain.Rarity]bool)
	for _, bp := range t {
		for _, slot := range bp.Slots {
			if slot.IsGuaranteed() {
				seen[slot.Guaranteed] = true
				continue
			}
			for r, w := range slot.Table {
				if w > 0 {
					seen[r] = true
				}
			}
		}
	}
	// Hard pity can force any protected tier regardless of table weights.
	for _, r := range domain.ProtectedRarities {
		seen[r] = true
	}

	out := make([]domain.Rarity, 0, len(seen))
	for _, r := range domain.RarityOrder {
		if seen[r] {
			out = append(out, r)
		}
	}
	return out
}
