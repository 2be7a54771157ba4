package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadddeck/pack-engine/internal/domain"
)

// mockCardRepository implements repository.Card for testing
type mockCardRepository struct {
	cards     map[domain.Rarity][]string
	listCalls int
}

func (m *mockCardRepository) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	for rarity, ids := range m.cards {
		for _, cid := range ids {
			if cid == id {
				return &domain.Card{ID: id, Rarity: rarity}, nil
			}
		}
	}
	return nil, domain.ErrCardNotFound
}

func (m *mockCardRepository) ListIDsByRarity(ctx context.Context, rarity domain.Rarity) ([]string, error) {
	m.listCalls++
	return append([]string(nil), m.cards[rarity]...), nil
}

func (m *mockCardRepository) CountByRarity(ctx context.Context) (map[domain.Rarity]int, error) {
	counts := make(map[domain.Rarity]int)
	for rarity, ids := range m.cards {
		counts[rarity] = len(ids)
	}
	return counts, nil
}

func newTestCatalog(t *testing.T, cards map[domain.Rarity][]string) (Service, *mockCardRepository) {
	t.Helper()
	repo := &mockCardRepository{cards: cards}
	svc, err := NewService(repo)
	require.NoError(t, err)
	return svc, repo
}

func TestBindIsDeterministic(t *testing.T) {
	svc, _ := newTestCatalog(t, map[domain.Rarity][]string{
		// Deliberately unsorted: binding must not depend on storage order.
		domain.RarityCommon: {"card-c", "card-a", "card-b"},
	})
	ctx := context.Background()

	first, err := svc.Bind(ctx, domain.RarityCommon, 0.5)
	require.NoError(t, err)
	second, err := svc.Bind(ctx, domain.RarityCommon, 0.5)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	// Sorted list is [card-a card-b card-c]; u=0.5 lands on index 1.
	assert.Equal(t, "card-b", first)
}

func TestBindCoversTheWholeList(t *testing.T) {
	svc, _ := newTestCatalog(t, map[domain.Rarity][]string{
		domain.RarityRare: {"r1", "r2", "r3", "r4"},
	})
	ctx := context.Background()

	got, err := svc.Bind(ctx, domain.RarityRare, 0.0)
	require.NoError(t, err)
	assert.Equal(t, "r1", got)

	got, err = svc.Bind(ctx, domain.RarityRare, 0.999999)
	require.NoError(t, err)
	assert.Equal(t, "r4", got)
}

func TestBindEmptyRarityFails(t *testing.T) {
	svc, _ := newTestCatalog(t, map[domain.Rarity][]string{})
	_, err := svc.Bind(context.Background(), domain.RarityMythic, 0.5)
	assert.ErrorIs(t, err, domain.ErrEmptyCatalog)
}

func TestBindUsesCache(t *testing.T) {
	svc, repo := newTestCatalog(t, map[domain.Rarity][]string{
		domain.RarityCommon: {"card-a"},
	})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := svc.Bind(ctx, domain.RarityCommon, 0.1)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, repo.listCalls)

	svc.Invalidate(domain.RarityCommon)
	_, err := svc.Bind(ctx, domain.RarityCommon, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
}

func TestValidateCoverage(t *testing.T) {
	svc, _ := newTestCatalog(t, map[domain.Rarity][]string{
		domain.RarityCommon: {"card-a"},
		domain.RarityRare:   {"card-b"},
	})
	ctx := context.Background()

	assert.NoError(t, svc.ValidateCoverage(ctx, []domain.Rarity{domain.RarityCommon, domain.RarityRare}))

	err := svc.ValidateCoverage(ctx, []domain.Rarity{domain.RarityCommon, domain.RarityMythic})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmptyCatalog)
	assert.Contains(t, err.Error(), "mythic")
}
