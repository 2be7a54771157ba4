package rarity

// WeightSumEpsilon is the tolerance when checking that a slot's weights sum
// to 1.0. Blueprints are authored by hand; this absorbs decimal rounding,
// nothing more.
const WeightSumEpsilon = 1e-6

// Error context messages for wrapped errors during blueprint loading
const (
	ErrContextFailedToReadTables  = "failed to read pack tables file"
	ErrContextFailedToParseTables = "failed to parse pack tables"
)
