package worker

import (
	"context"
	"errors"
	"time"

	"github.com/dadddeck/pack-engine/internal/logger"
	"github.com/dadddeck/pack-engine/internal/repository"
)

// RetentionJob prunes aged rows from the violation ledger and the security
// event feed. Retention must exceed the longest timed ban: standing is
// recomputed from the ledger, so deleting too early would lift bans.
// Critical violations are exempt at the repository level; the evidence for
// a permanent ban is never deleted.
type RetentionJob struct {
	violations repository.Violation
	events     repository.SecurityEvents
	retention  time.Duration
}

// NewRetentionJob creates a retention job with the given lookback period.
func NewRetentionJob(violations repository.Violation, events repository.SecurityEvents, retention time.Duration) *RetentionJob {
	return &RetentionJob{
		violations: violations,
		events:     events,
		retention:  retention,
	}
}

// Process removes rows older than the retention period from both tables.
// Partial failure still attempts the other table.
func (j *RetentionJob) Process(ctx context.Context) error {
	log := logger.FromContext(ctx)
	log.Info(LogMsgRetentionStarting, "retention", j.retention)

	var errs []error

	violationsRemoved, err := j.violations.CleanupOld(ctx, j.retention)
	if err != nil {
		log.Error(LogMsgViolationCleanupFailed, "error", err)
		errs = append(errs, err)
	}

	retentionDays := int(j.retention.Hours() / 24)
	eventsRemoved, err := j.events.CleanupOldEvents(ctx, retentionDays)
	if err != nil {
		log.Error(LogMsgEventCleanupFailed, "error", err)
		errs = append(errs, err)
	}

	log.Info(LogMsgRetentionCompleted,
		"violations_removed", violationsRemoved,
		"events_removed", eventsRemoved)

	return errors.Join(errs...)
}
