package repository

import (
	"context"

	"github.com/dadddeck/pack-engine/internal/domain"
)

// Pity defines the interface for pity counter persistence
type Pity interface {
	// Get returns the counters for a user and pack type. A user who has
	// never drawn gets zeroed counters, not an error.
	Get(ctx context.Context, userID string, packType domain.PackType) (domain.PityCounter, error)

	// Save upserts the counters after a draw.
	Save(ctx context.Context, counter domain.PityCounter) error
}
