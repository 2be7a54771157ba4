package roll

// ============================================================================
// Holo variant shares
// ============================================================================

// Within a successful holo roll, the rescaled draw value selects the variant.
// Shares for the gated variants; everything above them is a standard holo.
// A variant whose gate the card's rarity does not clear falls through to the
// next one down.
const (
	// PrismaticShare is the slice of holo hits that upgrade to prismatic.
	// Reachable from mythic base rarity only.
	PrismaticShare = 0.05

	// FullArtShare is the slice of holo hits that upgrade to full art.
	// Reachable from legendary or mythic base rarity.
	FullArtShare = 0.15
)
