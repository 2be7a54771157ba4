package repository

import (
	"context"
	"time"
)

// SecurityEvents defines the interface for the persisted security event feed
type SecurityEvents interface {
	// LogEvent stores one feed record. Fingerprint may be empty for
	// system-level events.
	LogEvent(ctx context.Context, eventType, fingerprint string, payload map[string]interface{}) error

	// GetEvents retrieves feed records based on filter criteria.
	GetEvents(ctx context.Context, filter SecurityEventFilter) ([]SecurityEventEntry, error)

	// CleanupOldEvents removes records older than the retention period and
	// returns how many were deleted.
	CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error)
}

// SecurityEventEntry represents one record of the security event feed
type SecurityEventEntry struct {
	ID          int64                  `json:"id"`
	EventType   string                 `json:"event_type"`
	Fingerprint string                 `json:"fingerprint,omitempty"`
	Payload     map[string]interface{} `json:"payload"`
	CreatedAt   time.Time              `json:"created_at"`
}

// SecurityEventFilter filters feed records for queries
type SecurityEventFilter struct {
	Fingerprint *string
	EventType   *string
	Since       *time.Time
	Until       *time.Time
	Limit       int
}
