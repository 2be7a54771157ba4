package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRarityOrdering(t *testing.T) {
	assert.True(t, RarityMythic.AtLeast(RarityLegendary))
	assert.True(t, RarityRare.AtLeast(RarityRare))
	assert.False(t, RarityCommon.AtLeast(RarityUncommon))

	for i := 1; i < len(RarityOrder); i++ {
		assert.Greater(t, RarityOrder[i].Rank(), RarityOrder[i-1].Rank())
	}
}

func TestRarityDrawOrderIsReversed(t *testing.T) {
	assert.Equal(t, len(RarityOrder), len(RarityDrawOrder))
	for i, r := range RarityDrawOrder {
		assert.Equal(t, RarityOrder[len(RarityOrder)-1-i], r)
	}
}

func TestMaxRarity(t *testing.T) {
	assert.Equal(t, RarityEpic, MaxRarity(RarityCommon, RarityEpic))
	assert.Equal(t, RarityEpic, MaxRarity(RarityEpic, RarityCommon))
	assert.Equal(t, RarityMythic, MaxRarity(RarityMythic, RarityMythic))
}

func TestResolveBestRarity(t *testing.T) {
	cards := []PackCard{
		{Rarity: RarityCommon},
		{Rarity: RarityLegendary},
		{Rarity: RarityUncommon},
	}
	assert.Equal(t, RarityLegendary, ResolveBestRarity(cards))
	assert.Equal(t, RarityCommon, ResolveBestRarity(nil))
}

func TestRarityValid(t *testing.T) {
	assert.True(t, RarityMythic.Valid())
	assert.False(t, Rarity("shiny").Valid())
	assert.Equal(t, -1, Rarity("shiny").Rank())
}

func TestPityCounterAccessors(t *testing.T) {
	var p PityCounter
	p.SetCount(RarityEpic, 7)
	assert.Equal(t, 7, p.Count(RarityEpic))
	assert.Equal(t, 0, p.Count(RarityRare))

	p.SetCount(RarityRare, -3)
	assert.Equal(t, 0, p.Count(RarityRare))

	// Unprotected tiers are ignored
	p.SetCount(RarityCommon, 5)
	assert.Equal(t, 0, p.Count(RarityCommon))
}

func TestStandingBlocked(t *testing.T) {
	now := time.Now()
	later := now.Add(time.Hour)
	earlier := now.Add(-time.Hour)

	assert.False(t, Standing{State: StandingClean}.Blocked(now))
	assert.False(t, Standing{State: StandingWarned}.Blocked(now))
	assert.False(t, Standing{State: StandingMuted}.Blocked(now))
	assert.True(t, Standing{State: StandingBanned, Permanent: true}.Blocked(now))
	assert.True(t, Standing{State: StandingSuspended, ExpiresAt: &later}.Blocked(now))
	assert.False(t, Standing{State: StandingSuspended, ExpiresAt: &earlier}.Blocked(now))
	// Missing expiry on a non-permanent block stays blocked until lifted
	assert.True(t, Standing{State: StandingBanned}.Blocked(now))
}

func TestRateLimitedErrorIs(t *testing.T) {
	err := RateLimitedError{Status: RateLimitStatus{RetryAfterSeconds: 30}}
	assert.ErrorIs(t, err, ErrRateLimited)
	assert.Contains(t, err.Error(), ErrMsgRateLimited)
}

func TestBannedErrorIs(t *testing.T) {
	err := BannedError{Standing: Standing{State: StandingBanned, Permanent: true}}
	assert.ErrorIs(t, err, ErrBanned)
	assert.Contains(t, err.Error(), "permanent")
}
