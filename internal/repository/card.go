package repository

import (
	"context"

	"github.com/dadddeck/pack-engine/internal/domain"
)

// Card defines the interface for card catalog persistence
type Card interface {
	// GetByID returns a single card definition.
	GetByID(ctx context.Context, id string) (*domain.Card, error)

	// ListIDsByRarity returns all card IDs of a rarity in a stable order.
	ListIDsByRarity(ctx context.Context, rarity domain.Rarity) ([]string, error)

	// CountByRarity returns how many cards exist per rarity.
	CountByRarity(ctx context.Context) (map[domain.Rarity]int, error)
}
