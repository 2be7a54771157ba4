package violation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dadddeck/pack-engine/internal/domain"
	"github.com/dadddeck/pack-engine/internal/event"
	"github.com/dadddeck/pack-engine/internal/logger"
	"github.com/dadddeck/pack-engine/internal/metrics"
	"github.com/dadddeck/pack-engine/internal/repository"
)

// Service defines the interface for the violation ledger and ban system
type Service interface {
	// Record writes an immutable ledger entry and re-evaluates the
	// account's standing. Ledger write failures are logged and counted but
	// never block the caller: losing one record is better than losing
	// escalation.
	Record(ctx context.Context, violationType domain.ViolationType, severity domain.Severity, fingerprint, details string) domain.SecurityViolation

	// Standing computes the account's current standing from its violation
	// history. Expiry is evaluated lazily at call time; there is no
	// background sweep.
	Standing(ctx context.Context, fingerprint string) (domain.Standing, error)
}

// service implements the Service interface
type service struct {
	repo   repository.Violation
	bus    event.Bus
	window time.Duration

	// lastState powers ban_applied/ban_removed edge detection. Process
	// local: a restart re-announces at most one transition per account.
	mu        sync.Mutex
	lastState map[string]domain.StandingState

	now func() time.Time
}

// NewService creates a new violation service. The window bounds how long a
// violation keeps counting toward escalation.
func NewService(repo repository.Violation, bus event.Bus, window time.Duration) Service {
	return &service{
		repo:      repo,
		bus:       bus,
		window:    window,
		lastState: make(map[string]domain.StandingState),
		now:       time.Now,
	}
}

// Record writes an immutable ledger entry and re-evaluates standing.
func (s *service) Record(ctx context.Context, violationType domain.ViolationType, severity domain.Severity, fingerprint, details string) domain.SecurityViolation {
	log := logger.FromContext(ctx)

	v := domain.SecurityViolation{
		ID:          uuid.New().String(),
		Type:        violationType,
		Severity:    severity,
		Fingerprint: fingerprint,
		Details:     details,
		Timestamp:   s.now(),
	}

	if err := s.repo.Record(ctx, v); err != nil {
		metrics.LedgerWriteFailures.Inc()
		log.Error(LogMsgLedgerWriteFailed, "error", err, "violation_id", v.ID, "type", v.Type)
	}
	metrics.ViolationsRecorded.WithLabelValues(string(v.Type), string(v.Severity)).Inc()
	log.Warn(LogMsgViolationRecorded,
		"violation_id", v.ID, "type", v.Type, "severity", v.Severity, "fingerprint", fingerprint)

	if err := s.bus.Publish(ctx, event.NewViolationDetectedEvent(v)); err != nil {
		log.Warn(LogMsgViolationEventFailed, "error", err, "violation_id", v.ID)
	}

	// Escalation happens on the write path so a ban takes effect on the
	// very next request.
	if _, err := s.Standing(ctx, fingerprint); err != nil {
		log.Warn(LogMsgStandingCheckFailed, "error", err, "fingerprint", fingerprint)
	}

	return v
}

// Standing computes the account's current standing from its history.
func (s *service) Standing(ctx context.Context, fingerprint string) (domain.Standing, error) {
	if fingerprint == "" {
		return domain.Standing{}, errors.New(ErrMsgFingerprintRequired)
	}

	now := s.now()
	lookback := s.window
	if BannedDuration > lookback {
		lookback = BannedDuration
	}

	// The lookback bounds timed escalation only; the repository returns
	// critical violations from any point in history, so a permanent ban
	// holds no matter how old its evidence is.
	history, err := s.repo.ListByFingerprint(ctx, fingerprint, now.Add(-lookback))
	if err != nil {
		return domain.Standing{}, fmt.Errorf(ErrMsgListFailed, err)
	}

	standing := Evaluate(fingerprint, history, now, s.window)
	s.announceTransition(ctx, standing, now)
	return standing, nil
}

// Evaluate derives a standing from violation history. Pure; exported for the
// audit tooling that replays ledger extracts offline.
func Evaluate(fingerprint string, history []domain.SecurityViolation, now time.Time, window time.Duration) domain.Standing {
	standing := domain.Standing{Fingerprint: fingerprint, State: domain.StandingClean}

	var lows, mediums, highs int
	var newestMedium, newestHigh time.Time
	cutoff := now.Add(-window)

	for _, v := range history {
		if v.Severity == domain.SeverityCritical {
			standing.State = domain.StandingBanned
			standing.Permanent = true
			standing.Reason = ReasonCriticalViolation
			return standing
		}
		if v.Timestamp.Before(cutoff) {
			continue
		}
		switch v.Severity {
		case domain.SeverityLow:
			lows++
		case domain.SeverityMedium:
			mediums++
			if v.Timestamp.After(newestMedium) {
				newestMedium = v.Timestamp
			}
		case domain.SeverityHigh:
			highs++
			if v.Timestamp.After(newestHigh) {
				newestHigh = v.Timestamp
			}
		}
	}

	switch {
	case highs >= BannedHighCount && newestHigh.Add(BannedDuration).After(now):
		expires := newestHigh.Add(BannedDuration)
		standing.State = domain.StandingBanned
		standing.ExpiresAt = &expires
		standing.Reason = ReasonRepeatedHigh

	case highs >= SuspendedHighCount && newestHigh.Add(SuspendedDuration).After(now):
		expires := newestHigh.Add(SuspendedDuration)
		standing.State = domain.StandingSuspended
		standing.ExpiresAt = &expires
		standing.Reason = ReasonRepeatedHigh

	case mediums >= MutedMediumCount && newestMedium.Add(MutedDuration).After(now):
		expires := newestMedium.Add(MutedDuration)
		standing.State = domain.StandingMuted
		standing.ExpiresAt = &expires
		standing.Reason = ReasonRepeatedMedium

	case lows >= WarnedLowCount:
		standing.State = domain.StandingWarned
		standing.Reason = ReasonRepeatedLow
	}

	return standing
}

// announceTransition emits ban_applied/ban_removed when the standing crosses
// the blocking boundary, and counts every state change.
func (s *service) announceTransition(ctx context.Context, standing domain.Standing, now time.Time) {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	previous, seen := s.lastState[standing.Fingerprint]
	changed := !seen || previous != standing.State
	s.lastState[standing.Fingerprint] = standing.State
	s.mu.Unlock()

	if !changed || (!seen && standing.State == domain.StandingClean) {
		return
	}

	metrics.StandingTransitions.WithLabelValues(string(standing.State)).Inc()
	log.Info(LogMsgStandingChanged,
		"fingerprint", standing.Fingerprint, "from", previous, "to", standing.State)

	wasBlocked := previous == domain.StandingSuspended || previous == domain.StandingBanned
	isBlocked := standing.Blocked(now)
	if !wasBlocked && !isBlocked {
		return
	}

	if err := s.bus.Publish(ctx, event.NewStandingChangedEvent(standing, isBlocked)); err != nil {
		log.Warn(LogMsgStandingEventFailed, "error", err, "fingerprint", standing.Fingerprint)
	}
}
