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

type cardRepository struct {
	db *pgxpool.Pool
}

// NewCardRepository creates a new PostgreSQL card catalog repository
func NewCardRepository(db *pgxpool.Pool) repository.Card {
	return &cardRepository{db: db}
}

// GetByID returns a single card definition.
func (r *cardRepository) GetByID(ctx context.Context, id string) (*domain.Card, error) {
	query := `SELECT card_id, name, rarity FROM cards WHERE card_id = $1`

	var card domain.Card
	err := r.db.QueryRow(ctx, query, id).Scan(&card.ID, &card.Name, &card.Rarity)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrCardNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return &card, nil
}

// ListIDsByRarity returns all card IDs of a rarity ordered by ID, so the
// binding index is stable across processes.
func (r *cardRepository) ListIDsByRarity(ctx context.Context, rarity domain.Rarity) ([]string, error) {
	query := `SELECT card_id FROM cards WHERE rarity = $1 ORDER BY card_id`

	rows, err := r.db.Query(ctx, query, string(rarity))
	if err != nil {
		return nil, fmt.Errorf("failed to query cards: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan card id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountByRarity returns how many cards exist per rarity.
func (r *cardRepository) CountByRarity(ctx context.Context) (map[domain.Rarity]int, error) {
	query := `SELECT rarity, COUNT(*) FROM cards GROUP BY rarity`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count cards: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.Rarity]int)
	for rows.Next() {
		var rarity string
		var count int
		if err := rows.Scan(&rarity, &count); err != nil {
			return nil, fmt.Errorf("failed to scan card count: %w", err)
		}
		counts[domain.Rarity(rarity)] = count
	}
	return counts, rows.Err()
}
