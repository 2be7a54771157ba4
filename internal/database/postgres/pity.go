package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dadddeck/pack-engine/internal/domain"
	"github.com/dadddeck/pack-engine/internal/repository"
)

type pityRepository struct {
	db *pgxpool.Pool
}

// NewPityRepository creates a new PostgreSQL pity counter repository
func NewPityRepository(db *pgxpool.Pool) repository.Pity {
	return &pityRepository{db: db}
}

// Get returns the counters for a user and pack type. An absent row yields
// zeroed counters.
func (r *pityRepository) Get(ctx context.Context, userID string, packType domain.PackType) (domain.PityCounter, error) {
	query := `
		SELECT packs_since_rare, packs_since_epic, packs_since_legendary, packs_since_mythic, last_updated
		FROM pity_counters
		WHERE user_id = $1 AND pack_type = $2
	`

	counter := domain.PityCounter{UserID: userID, PackType: packType}
	err := r.db.QueryRow(ctx, query, userID, string(packType)).Scan(
		&counter.PacksSinceRare,
		&counter.PacksSinceEpic,
		&counter.PacksSinceLegendary,
		&counter.PacksSinceMythic,
		&counter.LastUpdated,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return counter, nil
	}
	if err != nil {
		return domain.PityCounter{}, fmt.Errorf("failed to get pity counters: %w", err)
	}
	return counter, nil
}

// Save upserts the counters after a draw.
func (r *pityRepository) Save(ctx context.Context, counter domain.PityCounter) error {
	query := `
		INSERT INTO pity_counters (user_id, pack_type, packs_since_rare, packs_since_epic, packs_since_legendary, packs_since_mythic, last_updated)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, pack_type) DO UPDATE SET
			packs_since_rare = EXCLUDED.packs_since_rare,
			packs_since_epic = EXCLUDED.packs_since_epic,
			packs_since_legendary = EXCLUDED.packs_since_legendary,
			packs_since_mythic = EXCLUDED.packs_since_mythic,
			last_updated = EXCLUDED.last_updated
	`

	_, err := r.db.Exec(ctx, query,
		counter.UserID,
		string(counter.PackType),
		counter.PacksSinceRare,
		counter.PacksSinceEpic,
		counter.PacksSinceLegendary,
		counter.PacksSinceMythic,
		counter.LastUpdated,
	)
	if err != nil {
		return fmt.Errorf("failed to save pity counters: %w", err)
	}
	return nil
}
