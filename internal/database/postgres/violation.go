package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dadddeck/pack-engine/internal/domain"
	"github.com/dadddeck/pack-engine/internal/repository"
)

type violationRepository struct {
	db *pgxpool.Pool
}

// NewViolationRepository creates a new PostgreSQL violation ledger repository
func NewViolationRepository(db *pgxpool.Pool) repository.Violation {
	return &violationRepository{db: db}
}

// Record stores a violation. Ledger rows are insert-only.
func (r *violationRepository) Record(ctx context.Context, v domain.SecurityViolation) error {
	id, err := uuid.Parse(v.ID)
	if err != nil {
		return fmt.Errorf("invalid violation id: %w", err)
	}

	query := `
		INSERT INTO security_violations (violation_id, violation_type, severity, fingerprint, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.db.Exec(ctx, query, id, string(v.Type), string(v.Severity), v.Fingerprint, v.Details, v.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to insert violation: %w", err)
	}
	return nil
}

// ListByFingerprint returns violations recorded at or after since, newest
// first. Critical rows come back regardless of age; a permanent ban must not
// lapse because its evidence slid out of the lookback.
func (r *violationRepository) ListByFingerprint(ctx context.Context, fingerprint string, since time.Time) ([]domain.SecurityViolation, error) {
	query := `
		SELECT violation_id, violation_type, severity, fingerprint, details, created_at
		FROM security_violations
		WHERE fingerprint = $1 AND (created_at >= $2 OR severity = 'critical')
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, fingerprint, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query violations: %w", err)
	}
	defer rows.Close()

	var violations []domain.SecurityViolation
	for rows.Next() {
		var v domain.SecurityViolation
		var id uuid.UUID
		var details *string
		if err := rows.Scan(&id, &v.Type, &v.Severity, &v.Fingerprint, &details, &v.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan violation: %w", err)
		}
		v.ID = id.String()
		if details != nil {
			v.Details = *details
		}
		violations = append(violations, v)
	}
	return violations, rows.Err()
}

// CleanupOld removes non-critical violations older than the retention
// period. Critical rows stay forever; they are what makes a ban permanent.
func (r *violationRepository) CleanupOld(ctx context.Context, retention time.Duration) (int64, error) {
	query := `DELETE FROM security_violations WHERE created_at < $1 AND severity <> 'critical'`

	tag, err := r.db.Exec(ctx, query, time.Now().Add(-retention))
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup violations: %w", err)
	}
	return tag.RowsAffected(), nil
}
