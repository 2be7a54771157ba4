package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dadddeck/pack-engine/internal/repository"
)

type securityEventsRepository struct {
	db *pgxpool.Pool
}

// NewSecurityEventsRepository creates a new PostgreSQL security event feed repository
func NewSecurityEventsRepository(db *pgxpool.Pool) repository.SecurityEvents {
	return &securityEventsRepository{db: db}
}

// LogEvent stores one feed record.
func (r *securityEventsRepository) LogEvent(ctx context.Context, eventType, fingerprint string, payload map[string]interface{}) error {
	query := `
		INSERT INTO security_events (event_type, fingerprint, payload)
		VALUES ($1, $2, $3)
	`

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	var fp *string
	if fingerprint != "" {
		fp = &fingerprint
	}

	_, err = r.db.Exec(ctx, query, eventType, fp, payloadJSON)
	if err != nil {
		return fmt.Errorf("failed to insert security event: %w", err)
	}
	return nil
}

// GetEvents retrieves feed records based on filter criteria.
func (r *securityEventsRepository) GetEvents(ctx context.Context, filter repository.SecurityEventFilter) ([]repository.SecurityEventEntry, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
		SELECT id, event_type, fingerprint, payload, created_at
		FROM security_events
		WHERE 1=1`)

	args := []interface{}{}
	argNum := 1

	if filter.Fingerprint != nil {
		fmt.Fprintf(&queryBuilder, " AND fingerprint = $%d", argNum)
		args = append(args, *filter.Fingerprint)
		argNum++
	}

	if filter.EventType != nil {
		fmt.Fprintf(&queryBuilder, " AND event_type = $%d", argNum)
		args = append(args, *filter.EventType)
		argNum++
	}

	if filter.Since != nil {
		fmt.Fprintf(&queryBuilder, " AND created_at >= $%d", argNum)
		args = append(args, *filter.Since)
		argNum++
	}

	if filter.Until != nil {
		fmt.Fprintf(&queryBuilder, " AND created_at <= $%d", argNum)
		args = append(args, *filter.Until)
		argNum++
	}

	queryBuilder.WriteString(" ORDER BY created_at DESC")

	if filter.Limit > 0 {
		fmt.Fprintf(&queryBuilder, " LIMIT $%d", argNum)
		args = append(args, filter.Limit)
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query security events: %w", err)
	}
	defer rows.Close()

	var entries []repository.SecurityEventEntry
	for rows.Next() {
		var entry repository.SecurityEventEntry
		var fp *string
		var payloadJSON []byte
		if err := rows.Scan(&entry.ID, &entry.EventType, &fp, &payloadJSON, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan security event: %w", err)
		}
		if fp != nil {
			entry.Fingerprint = *fp
		}
		if len(payloadJSON) > 0 {
			if err := json.Unmarshal(payloadJSON, &entry.Payload); err != nil {
				return nil, fmt.Errorf("failed to unmarshal payload: %w", err)
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// CleanupOldEvents removes records older than the retention period.
func (r *securityEventsRepository) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	query := `DELETE FROM security_events WHERE created_at < NOW() - make_interval(days => $1)`

	tag, err := r.db.Exec(ctx, query, retentionDays)
	if err != nil {
		return 0, fmt.Errorf("failed to cleanup security events: %w", err)
	}
	return tag.RowsAffected(), nil
}
