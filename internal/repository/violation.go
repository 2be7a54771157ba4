package repository

import (
	"context"
	"time"

	"github.com/dadddeck/pack-engine/internal/domain"
)

// Violation defines the interface for security violation persistence
type Violation interface {
	// Record stores a violation. Violations are immutable once written.
	Record(ctx context.Context, violation domain.SecurityViolation) error

	// ListByFingerprint returns violations for a fingerprint recorded at or
	// after since, newest first. Critical violations are returned regardless
	// of age: they carry a permanent ban, so they never stop counting.
	ListByFingerprint(ctx context.Context, fingerprint string, since time.Time) ([]domain.SecurityViolation, error)

	// CleanupOld removes non-critical violations older than the retention
	// period and returns how many were deleted. Critical rows are the
	// evidence behind permanent bans and are never pruned.
	CleanupOld(ctx context.Context, retention time.Duration) (int64, error)
}
