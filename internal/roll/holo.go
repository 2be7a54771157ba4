package roll

import (
	"github.com/dadddeck/pack-engine/internal/domain"
)

// RollHolo decides the holo overlay for one drawn card. Independent of the
// rarity draw: u is a separate value from the entropy stream, chance is the
// blueprint's effective (premium-adjusted) holo chance.
//
// When the roll hits, the draw value is rescaled to [0,1) and selects the
// variant. Prismatic needs mythic base rarity, full art needs legendary or
// better; a draw in a gated slice the rarity cannot reach degrades to the
// next variant down.
func RollHolo(cardRarity domain.Rarity, chance, u float64) domain.HoloVariant {
	if chance <= 0 || u >= chance {
		return domain.HoloNone
	}

	v := u / chance
	if v < PrismaticShare && cardRarity == domain.RarityMythic {
		return domain.HoloPrismatic
	}
	if v < PrismaticShare+FullArtShare && cardRarity.AtLeast(domain.RarityLegendary) {
		return domain.HoloFullArt
	}
	return domain.HoloStandard
}
