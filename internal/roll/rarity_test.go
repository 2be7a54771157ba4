package roll

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadddeck/pack-engine/internal/domain"
	"github.com/dadddeck/pack-engine/internal/entropy"
	"github.com/dadddeck/pack-engine/internal/rarity"
)

func weightedSlot() rarity.Slot {
	return rarity.Slot{Table: map[domain.Rarity]float64{
		domain.RarityCommon:    0.73,
		domain.RarityUncommon:  0.20,
		domain.RarityRare:      0.059,
		domain.RarityEpic:      0.01,
		domain.RarityLegendary: 0.001,
	}}
}

func defaultThresholds() domain.PityThresholds {
	return domain.PityThresholds{
		domain.RarityRare:      {SoftPity: 8, HardPity: 12, SoftPityMultiplier: 1.5},
		domain.RarityEpic:      {SoftPity: 40, HardPity: 60, SoftPityMultiplier: 2},
		domain.RarityLegendary: {SoftPity: 74, HardPity: 90, SoftPityMultiplier: 3},
		domain.RarityMythic:    {SoftPity: 180, HardPity: 220, SoftPityMultiplier: 4},
	}
}

func TestRollRarityCumulativeBoundaries(t *testing.T) {
	// Draw order is mythic->common, so the cumulative boundaries for the
	// slot-4 table are: legendary 0.001, epic 0.011, rare 0.07, uncommon
	// 0.27, common 1.0.
	cases := []struct {
		u    float64
		want domain.Rarity
	}{
		{0.0005, domain.RarityLegendary},
		{0.005, domain.RarityEpic},
		{0.05, domain.RarityRare},
		{0.1, domain.RarityUncommon},
		{0.5, domain.RarityCommon},
		{0.999999, domain.RarityCommon},
	}
	for _, tc := range cases {
		got, _ := RollRarity(weightedSlot(), domain.PityCounter{}, domain.PityThresholds{}, tc.u)
		assert.Equal(t, tc.want, got, "u=%f", tc.u)
	}
}

func TestRollRarityBoundaryTiesFavorRarerTier(t *testing.T) {
	// u exactly on the legendary/epic boundary belongs to epic: the
	// comparison is strict (u < cumulative), and legendary's band is
	// [0, 0.001).
	got, _ := RollRarity(weightedSlot(), domain.PityCounter{}, domain.PityThresholds{}, 0.001)
	assert.Equal(t, domain.RarityEpic, got)
}

func TestRollRarityDistributionConvergence(t *testing.T) {
	const n = 100000
	const tolerance = 0.005

	slot := weightedSlot()
	rng := rand.New(rand.NewSource(1))
	counts := make(map[domain.Rarity]int)
	for i := 0; i < n; i++ {
		got, _ := RollRarity(slot, domain.PityCounter{}, domain.PityThresholds{}, rng.Float64())
		counts[got]++
	}

	for tier, weight := range slot.Table {
		observed := float64(counts[tier]) / n
		assert.InDelta(t, weight, observed, tolerance, "tier %s", tier)
	}
}

func TestRollRarityGuaranteedSlot(t *testing.T) {
	slot := rarity.Slot{Guaranteed: domain.RarityCommon}
	pity := domain.PityCounter{PacksSinceRare: 3, PacksSinceEpic: 10}

	got, updated := RollRarity(slot, pity, defaultThresholds(), 0.0)

	assert.Equal(t, domain.RarityCommon, got)
	// A guaranteed common never resets protection, it just counts as a miss.
	assert.Equal(t, 4, updated.PacksSinceRare)
	assert.Equal(t, 11, updated.PacksSinceEpic)
	assert.Equal(t, 1, updated.PacksSinceLegendary)
	assert.Equal(t, 1, updated.PacksSinceMythic)
}

func TestRollRarityGuaranteedSlotIgnoresHardPity(t *testing.T) {
	slot := rarity.Slot{Guaranteed: domain.RarityCommon}
	pity := domain.PityCounter{PacksSinceLegendary: 90}

	got, updated := RollRarity(slot, pity, defaultThresholds(), 0.0)

	assert.Equal(t, domain.RarityCommon, got)
	assert.Equal(t, 91, updated.PacksSinceLegendary)
}

func TestRollRarityHardPityForcesTier(t *testing.T) {
	thresholds := defaultThresholds()
	pity := domain.PityCounter{PacksSinceLegendary: 90}

	// u deep in common territory; the force wins anyway.
	got, updated := RollRarity(weightedSlot(), pity, thresholds, 0.99)

	assert.Equal(t, domain.RarityLegendary, got)
	assert.Equal(t, 0, updated.PacksSinceLegendary)
	assert.Equal(t, 0, updated.PacksSinceRare)
	assert.Equal(t, 0, updated.PacksSinceEpic)
	assert.Equal(t, 1, updated.PacksSinceMythic)
}

func TestRollRarityHardPityHighestTierWins(t *testing.T) {
	thresholds := defaultThresholds()
	pity := domain.PityCounter{
		PacksSinceRare:   12,
		PacksSinceEpic:   60,
		PacksSinceMythic: 220,
	}

	got, _ := RollRarity(weightedSlot(), pity, thresholds, 0.99)
	assert.Equal(t, domain.RarityMythic, got)
}

func TestRollRarityHardPityGuarantee(t *testing.T) {
	// H-1 consecutive misses followed by one more roll always yields the
	// protected tier or better.
	thresholds := defaultThresholds()
	slot := weightedSlot()
	rng := rand.New(rand.NewSource(7))

	pity := domain.PityCounter{}
	hardPity := thresholds[domain.RarityRare].HardPity

	for roll := 0; roll < hardPity*3; roll++ {
		got, updated := RollRarity(slot, pity, thresholds, rng.Float64())
		if updated.PacksSinceRare > 0 {
			require.Less(t, updated.PacksSinceRare, hardPity+1)
		}
		if pity.PacksSinceRare >= hardPity {
			require.True(t, got.AtLeast(domain.RarityRare),
				"roll at counter %d produced %s", pity.PacksSinceRare, got)
		}
		pity = updated
	}
}

func TestRollRaritySoftPityEscalatesWeights(t *testing.T) {
	slot := rarity.Slot{Table: map[domain.Rarity]float64{
		domain.RarityCommon: 0.99,
		domain.RarityRare:   0.01,
	}}
	thresholds := domain.PityThresholds{
		domain.RarityRare: {SoftPity: 5, HardPity: 1000, SoftPityMultiplier: 50},
	}

	// Below soft pity: rare band is [0, 0.01), so u=0.2 misses.
	got, _ := RollRarity(slot, domain.PityCounter{}, thresholds, 0.2)
	assert.Equal(t, domain.RarityCommon, got)

	// At soft pity the rare weight becomes 0.5/1.49 ~ 0.336, so u=0.2 hits.
	pity := domain.PityCounter{PacksSinceRare: 5}
	got, updated := RollRarity(slot, pity, thresholds, 0.2)
	assert.Equal(t, domain.RarityRare, got)
	assert.Equal(t, 0, updated.PacksSinceRare)
}

func TestRollRarityResetSemantics(t *testing.T) {
	// Hitting epic resets epic and rare, increments legendary and mythic.
	slot := rarity.Slot{Table: map[domain.Rarity]float64{domain.RarityEpic: 1.0}}
	pity := domain.PityCounter{
		PacksSinceRare:      5,
		PacksSinceEpic:      20,
		PacksSinceLegendary: 30,
		PacksSinceMythic:    100,
	}

	got, updated := RollRarity(slot, pity, domain.PityThresholds{}, 0.5)

	assert.Equal(t, domain.RarityEpic, got)
	assert.Equal(t, 0, updated.PacksSinceRare)
	assert.Equal(t, 0, updated.PacksSinceEpic)
	assert.Equal(t, 31, updated.PacksSinceLegendary)
	assert.Equal(t, 101, updated.PacksSinceMythic)
}

func TestRollRarityReplayIsDeterministic(t *testing.T) {
	// The same entropy inputs replay to the same sequence of outcomes.
	slot := weightedSlot()
	thresholds := defaultThresholds()

	replay := func() []domain.Rarity {
		stream := entropy.NewStream(entropy.Derive("server-seed", "client-seed", 3))
		pity := domain.PityCounter{}
		out := make([]domain.Rarity, 0, 20)
		for i := 0; i < 20; i++ {
			var got domain.Rarity
			got, pity = RollRarity(slot, pity, thresholds, stream.Float(i))
			out = append(out, got)
		}
		return out
	}

	assert.Equal(t, replay(), replay())
}
