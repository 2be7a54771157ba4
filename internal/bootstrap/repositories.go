package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dadddeck/pack-engine/internal/database/postgres"
	"github.com/dadddeck/pack-engine/internal/repository"
)

// Repositories holds all repository implementations used by the application.
// This provides a centralized location for repository initialization and
// makes dependency injection clearer.
type Repositories struct {
	Pity           repository.Pity
	Violation      repository.Violation
	Card           repository.Card
	SecurityEvents repository.SecurityEvents
}

// InitializeRepositories creates all repository implementations.
func InitializeRepositories(dbPool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Pity:           postgres.NewPityRepository(dbPool),
		Violation:      postgres.NewViolationRepository(dbPool),
		Card:           postgres.NewCardRepository(dbPool),
		SecurityEvents: postgres.NewSecurityEventsRepository(dbPool),
	}
}
