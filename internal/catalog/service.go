package catalog

import (
	"context"
	"fmt"
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dadddeck/pack-engine/internal/domain"
	"github.com/dadddeck/pack-engine/internal/logger"
	"github.com/dadddeck/pack-engine/internal/repository"
)

// Service defines the interface for card catalog lookups during assembly
type Service interface {
	// Bind picks the concrete card for a rolled rarity. u is the uniform
	// [0,1) binding value from the entropy stream; the same u against the
	// same catalog state always picks the same card, which is what makes
	// draws replayable.
	Bind(ctx context.Context, rarity domain.Rarity, u float64) (string, error)

	// ValidateCoverage fails if any of the given rarities has no cards.
	// Run at startup: an empty tier is a configuration error, not
	// something to paper over at draw time.
	ValidateCoverage(ctx context.Context, rarities []domain.Rarity) error

	// Invalidate drops the cached ID list for a rarity after a catalog
	// change.
	Invalidate(rarity domain.Rarity)
}

// service implements the Service interface
type service struct {
	repo  repository.Card
	cache *lru.Cache[domain.Rarity, []string]
}

// NewService creates a new catalog service.
func NewService(repo repository.Card) (Service, error) {
	cache, err := lru.New[domain.Rarity, []string](CacheSize)
	if err != nil {
		return nil, err
	}
	return &service{repo: repo, cache: cache}, nil
}

// Bind picks the concrete card for a rolled rarity.
func (s *service) Bind(ctx context.Context, rarity domain.Rarity, u float64) (string, error) {
	ids, err := s.ids(ctx, rarity)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("%w: %s", domain.ErrEmptyCatalog, rarity)
	}

	index := int(u * float64(len(ids)))
	if index >= len(ids) {
		index = len(ids) - 1
	}
	return ids[index], nil
}

// ValidateCoverage fails if any of the given rarities has no cards.
func (s *service) ValidateCoverage(ctx context.Context, rarities []domain.Rarity) error {
	log := logger.FromContext(ctx)

	counts, err := s.repo.CountByRarity(ctx)
	if err != nil {
		return fmt.Errorf(ErrMsgCountCardsFailed, err)
	}

	for _, r := range rarities {
		if counts[r] == 0 {
			return fmt.Errorf("%w: %s", domain.ErrEmptyCatalog, r)
		}
	}

	log.Info(LogMsgCatalogValidated, "rarities", len(rarities))
	return nil
}

// Invalidate drops the cached ID list for a rarity.
func (s *service) Invalidate(rarity domain.Rarity) {
	s.cache.Remove(rarity)
}

// ids returns the sorted card ID list for a rarity, from cache when warm.
// Sorting pins the binding order: repository iteration order must never
// influence which card a given u selects.
func (s *service) ids(ctx context.Context, rarity domain.Rarity) ([]string, error) {
	if ids, ok := s.cache.Get(rarity); ok {
		return ids, nil
	}

	ids, err := s.repo.ListIDsByRarity(ctx, rarity)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgListCardsFailed, rarity, err)
	}
	sort.Strings(ids)
	s.cache.Add(rarity, ids)
	logger.FromContext(ctx).Debug(LogMsgCacheRefreshed, "rarity", rarity, "cards", len(ids))
	return ids, nil
}
