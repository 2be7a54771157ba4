package domain

// Rarity is the closed set of card rarity tiers.
// The ordering is explicit (see RarityOrder) and is used for best-rarity
// resolution and for tie-breaking during weighted draws.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
)

// RarityOrder lists all rarities from least to most rare.
var RarityOrder = []Rarity{
	RarityCommon,
	RarityUncommon,
	RarityRare,
	RarityEpic,
	RarityLegendary,
	RarityMythic,
}

// RarityDrawOrder lists all rarities from most to least rare.
// Weighted draws walk this order so that floating-point boundary ties
// resolve toward the rarer tier.
var RarityDrawOrder = []Rarity{
	RarityMythic,
	RarityLegendary,
	RarityEpic,
	RarityRare,
	RarityUncommon,
	RarityCommon,
}

// ProtectedRarities lists the tiers covered by pity protection,
// from least to most rare.
var ProtectedRarities = []Rarity{
	RarityRare,
	RarityEpic,
	RarityLegendary,
	RarityMythic,
}

var rarityRank = map[Rarity]int{
	RarityCommon:    0,
	RarityUncommon:  1,
	RarityRare:      2,
	RarityEpic:      3,
	RarityLegendary: 4,
	RarityMythic:    5,
}

// Rank returns the position of the rarity in the total order (common=0).
// Unknown rarities rank below common.
func (r Rarity) Rank() int {
	rank, ok := rarityRank[r]
	if !ok {
		return -1
	}
	return rank
}

// Valid reports whether the rarity is a member of the closed set.
func (r Rarity) Valid() bool {
	_, ok := rarityRank[r]
	return ok
}

// AtLeast reports whether the rarity is equal to or rarer than other.
func (r Rarity) AtLeast(other Rarity) bool {
	return r.Rank() >= other.Rank()
}

// MaxRarity returns the rarer of two rarities.
func MaxRarity(a, b Rarity) Rarity {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// HoloVariant is the cosmetic overlay tier rolled independently of rarity.
type HoloVariant string

const (
	HoloNone      HoloVariant = "none"
	HoloStandard  HoloVariant = "holo"
	HoloFullArt   HoloVariant = "full_art"
	HoloPrismatic HoloVariant = "prismatic"
)

// Valid reports whether the holo variant is a member of the closed set.
func (h HoloVariant) Valid() bool {
	switch h {
	case HoloNone, HoloStandard, HoloFullArt, HoloPrismatic:
		return true
	}
	return false
}
