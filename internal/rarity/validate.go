package rarity

import (
	"fmt"
	"math"

	"github.com/dadddeck/pack-engine/internal/domain"
)

// Validate checks every blueprint invariant: at least one slot per pack,
// exactly one of guaranteed/table per slot, known rarities, positive weights
// summing to 1 within tolerance, and sane holo parameters.
func Validate(tables Tables) error {
	if len(tables) == 0 {
		return fmt.Errorf("%w: no pack types configured", domain.ErrInvalidTable)
	}

	for packType, bp := range tables {
		if len(bp.Slots) == 0 {
			return fmt.Errorf("%w: pack %q has no slots", domain.ErrInvalidTable, packType)
		}
		if bp.HoloChance <= 0 || bp.HoloChance > 1 {
			return fmt.Errorf("%w: pack %q holo chance %.4f out of range", domain.ErrInvalidTable, packType, bp.HoloChance)
		}
		if bp.Premium && bp.HoloMultiplier < 1 {
			return fmt.Errorf("%w: pack %q premium holo multiplier %.2f below 1", domain.ErrInvalidTable, packType, bp.HoloMultiplier)
		}

		for i, slot := range bp.Slots {
			if err := validateSlot(packType, i, slot); err != nil {
				return err
			}
		}
	}

	return nil
}

func validateSlot(packType domain.PackType, index int, slot Slot) error {
	hasGuaranteed := slot.Guaranteed != ""
	hasTable := len(slot.Table) > 0

	if hasGuaranteed == hasTable {
		return fmt.Errorf("%w: pack %q slot %d must set exactly one of guaranteed or table",
			domain.ErrInvalidTable, packType, index)
	}

	if hasGuaranteed {
		if !slot.Guaranteed.Valid() {
			return fmt.Errorf("%w: pack %q slot %d unknown rarity %q",
				domain.ErrInvalidTable, packType, index, slot.Guaranteed)
		}
		return nil
	}

	sum := 0.0
	for r, w := range slot.Table {
		if !r.Valid() {
			return fmt.Errorf("%w: pack %q slot %d unknown rarity %q",
				domain.ErrInvalidTable, packType, index, r)
		}
		if w <= 0 || w > 1 {
			return fmt.Errorf("%w: pack %q slot %d rarity %q weight %.6f out of range",
				domain.ErrInvalidTable, packType, index, r, w)
		}
		sum += w
	}

	if math.Abs(sum-1.0) > WeightSumEpsilon {
		return fmt.Errorf("%w: pack %q slot %d weights sum to %.6f",
			domain.ErrInvalidTable, packType, index, sum)
	}

	return nil
}
