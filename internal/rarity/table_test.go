package rarity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadddeck/pack-engine/internal/domain"
)

func validTables() Tables {
	return Tables{
		domain.PackTypeStandard: {
			HoloChance: 1.0 / 6.0,
			Slots: []Slot{
				{Guaranteed: domain.RarityCommon},
				{Table: map[domain.Rarity]float64{
					domain.RarityCommon:    0.73,
					domain.RarityUncommon:  0.20,
					domain.RarityRare:      0.059,
					domain.RarityEpic:      0.01,
					domain.RarityLegendary: 0.001,
				}},
			},
		},
		domain.PackTypePremium: {
			Premium:        true,
			HoloChance:     1.0 / 6.0,
			HoloMultiplier: 2.0,
			Slots: []Slot{
				{Table: map[domain.Rarity]float64{
					domain.RarityRare:      0.80,
					domain.RarityEpic:      0.15,
					domain.RarityLegendary: 0.045,
					domain.RarityMythic:    0.005,
				}},
			},
		},
	}
}

func TestValidateAcceptsGoodTables(t *testing.T) {
	assert.NoError(t, Validate(validTables()))
}

func TestValidateRejectsEmptyTables(t *testing.T) {
	err := Validate(Tables{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTable)
}

func TestValidateRejectsSlotWithBothModes(t *testing.T) {
	tables := validTables()
	bp := tables[domain.PackTypeStandard]
	bp.Slots = append(bp.Slots, Slot{
		Guaranteed: domain.RarityCommon,
		Table:      map[domain.Rarity]float64{domain.RarityCommon: 1.0},
	})
	tables[domain.PackTypeStandard] = bp

	err := Validate(tables)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTable)
	assert.Contains(t, err.Error(), "exactly one")
}

func TestValidateRejectsSlotWithNeitherMode(t *testing.T) {
	tables := validTables()
	bp := tables[domain.PackTypeStandard]
	bp.Slots = append(bp.Slots, Slot{})
	tables[domain.PackTypeStandard] = bp

	assert.ErrorIs(t, Validate(tables), domain.ErrInvalidTable)
}

func TestValidateRejectsBadWeightSum(t *testing.T) {
	tables := validTables()
	bp := tables[domain.PackTypeStandard]
	bp.Slots[1].Table[domain.RarityMythic] = 0.5
	tables[domain.PackTypeStandard] = bp

	err := Validate(tables)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sum")
}

func TestValidateRejectsUnknownRarity(t *testing.T) {
	tables := validTables()
	bp := tables[domain.PackTypeStandard]
	bp.Slots[0].Guaranteed = "shiny"
	tables[domain.PackTypeStandard] = bp

	assert.ErrorIs(t, Validate(tables), domain.ErrInvalidTable)
}

func TestValidateRejectsBadHoloChance(t *testing.T) {
	tables := validTables()
	bp := tables[domain.PackTypeStandard]
	bp.HoloChance = 0
	tables[domain.PackTypeStandard] = bp

	assert.ErrorIs(t, Validate(tables), domain.ErrInvalidTable)
}

func TestEffectiveHoloChance(t *testing.T) {
	standard := Blueprint{HoloChance: 1.0 / 6.0}
	assert.InDelta(t, 1.0/6.0, standard.EffectiveHoloChance(), 1e-9)

	premium := Blueprint{Premium: true, HoloChance: 1.0 / 6.0, HoloMultiplier: 2.0}
	assert.InDelta(t, 1.0/3.0, premium.EffectiveHoloChance(), 1e-9)

	// Multiplier never pushes past certainty
	capped := Blueprint{Premium: true, HoloChance: 0.9, HoloMultiplier: 5.0}
	assert.Equal(t, 1.0, capped.EffectiveHoloChance())
}

func TestRollableRaritiesIncludesProtectedTiers(t *testing.T) {
	tables := Tables{
		domain.PackTypeStandard: {
			HoloChance: 1.0 / 6.0,
			Slots:      []Slot{{Guaranteed: domain.RarityCommon}},
		},
	}
	rollable := tables.RollableRarities()

	// Even a commons-only blueprint can produce protected tiers via hard pity.
	assert.Contains(t, rollable, domain.RarityCommon)
	for _, tier := range domain.ProtectedRarities {
		assert.Contains(t, rollable, tier)
	}
	assert.NotContains(t, rollable, domain.RarityUncommon)
}

func TestLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pack_tables.json")

	payload := `{
		"standard": {
			"holo_chance": 0.1666,
			"slots": [
				{"guaranteed": "common"},
				{"table": {"common": 0.73, "uncommon": 0.2, "rare": 0.059, "epic": 0.01, "legendary": 0.001}}
			]
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

	tables, err := Load(path)
	require.NoError(t, err)

	bp, ok := tables.Blueprint(domain.PackTypeStandard)
	require.True(t, ok)
	assert.Len(t, bp.Slots, 2)
	assert.True(t, bp.Slots[0].IsGuaranteed())
	assert.InDelta(t, 0.059, bp.Slots[1].Table[domain.RarityRare], 1e-9)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrContextFailedToReadTables)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pack_tables.json")
	payload := `{"standard": {"holo_chance": 0.2, "slots": [{"table": {"common": 0.5}}]}}`
	require.NoError(t, os.WriteFile(path, []byte(payload), 0644))

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrInvalidTable)
}
