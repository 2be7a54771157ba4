package violation

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadddeck/pack-engine/internal/domain"
	"github.com/dadddeck/pack-engine/internal/event"
)

// mockViolationRepository implements repository.Violation for testing
type mockViolationRepository struct {
	mu          sync.Mutex
	violations  []domain.SecurityViolation
	recordError error
}

func (m *mockViolationRepository) Record(ctx context.Context, v domain.SecurityViolation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.recordError != nil {
		return m.recordError
	}
	m.violations = append(m.violations, v)
	return nil
}

func (m *mockViolationRepository) ListByFingerprint(ctx context.Context, fingerprint string, since time.Time) ([]domain.SecurityViolation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.SecurityViolation
	for _, v := range m.violations {
		if v.Fingerprint != fingerprint {
			continue
		}
		if !v.Timestamp.Before(since) || v.Severity == domain.SeverityCritical {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockViolationRepository) CleanupOld(ctx context.Context, retention time.Duration) (int64, error) {
	return 0, nil
}

func collectEvents(bus *event.MemoryBus, types ...event.Type) *[]event.Event {
	var captured []event.Event
	var mu sync.Mutex
	for _, t := range types {
		bus.Subscribe(t, func(ctx context.Context, e event.Event) error {
			mu.Lock()
			captured = append(captured, e)
			mu.Unlock()
			return nil
		})
	}
	return &captured
}

func newTestService(repo *mockViolationRepository, bus event.Bus) (*service, *time.Time) {
	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc := NewService(repo, bus, 24*time.Hour).(*service)
	svc.now = func() time.Time { return current }
	return svc, &current
}

func TestRecordPersistsAndPublishes(t *testing.T) {
	repo := &mockViolationRepository{}
	bus := event.NewMemoryBus()
	captured := collectEvents(bus, event.ViolationDetected)
	svc, _ := newTestService(repo, bus)

	v := svc.Record(context.Background(), domain.ViolationRateLimitExceeded, domain.SeverityLow, "fp-1", "11th request")

	assert.NotEmpty(t, v.ID)
	assert.Equal(t, domain.ViolationRateLimitExceeded, v.Type)
	require.Len(t, repo.violations, 1)
	require.Len(t, *captured, 1)

	payload, ok := (*captured)[0].Payload.(event.ViolationDetectedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, v.ID, payload.ViolationID)
	assert.Equal(t, "fp-1", payload.Fingerprint)
}

func TestRecordSurvivesLedgerWriteFailure(t *testing.T) {
	repo := &mockViolationRepository{recordError: errors.New("disk full")}
	svc, _ := newTestService(repo, event.NewMemoryBus())

	v := svc.Record(context.Background(), domain.ViolationEntropyMismatch, domain.SeverityHigh, "fp-1", "")
	assert.NotEmpty(t, v.ID)
}

func TestStandingCleanByDefault(t *testing.T) {
	svc, _ := newTestService(&mockViolationRepository{}, event.NewMemoryBus())

	standing, err := svc.Standing(context.Background(), "fp-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StandingClean, standing.State)
	assert.False(t, standing.Blocked(time.Now()))
}

func TestStandingRequiresFingerprint(t *testing.T) {
	svc, _ := newTestService(&mockViolationRepository{}, event.NewMemoryBus())
	_, err := svc.Standing(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrMsgFingerprintRequired)
}

func TestEscalationLadder(t *testing.T) {
	ctx := context.Background()

	t.Run("lows warn", func(t *testing.T) {
		svc, _ := newTestService(&mockViolationRepository{}, event.NewMemoryBus())
		for i := 0; i < WarnedLowCount; i++ {
			svc.Record(ctx, domain.ViolationBurstUsage, domain.SeverityLow, "fp-1", "")
		}
		standing, err := svc.Standing(ctx, "fp-1")
		require.NoError(t, err)
		assert.Equal(t, domain.StandingWarned, standing.State)
		assert.False(t, standing.Blocked(time.Now()))
	})

	t.Run("mediums mute", func(t *testing.T) {
		svc, current := newTestService(&mockViolationRepository{}, event.NewMemoryBus())
		for i := 0; i < MutedMediumCount; i++ {
			svc.Record(ctx, domain.ViolationRateLimitExceeded, domain.SeverityMedium, "fp-1", "")
		}
		standing, err := svc.Standing(ctx, "fp-1")
		require.NoError(t, err)
		assert.Equal(t, domain.StandingMuted, standing.State)
		require.NotNil(t, standing.ExpiresAt)
		assert.Equal(t, current.Add(MutedDuration), *standing.ExpiresAt)
	})

	t.Run("highs suspend then ban", func(t *testing.T) {
		svc, _ := newTestService(&mockViolationRepository{}, event.NewMemoryBus())
		for i := 0; i < SuspendedHighCount; i++ {
			svc.Record(ctx, domain.ViolationEntropyMismatch, domain.SeverityHigh, "fp-1", "")
		}
		standing, err := svc.Standing(ctx, "fp-1")
		require.NoError(t, err)
		assert.Equal(t, domain.StandingSuspended, standing.State)
		assert.True(t, standing.Blocked(standing.ExpiresAt.Add(-time.Minute)))

		for i := SuspendedHighCount; i < BannedHighCount; i++ {
			svc.Record(ctx, domain.ViolationEntropyMismatch, domain.SeverityHigh, "fp-1", "")
		}
		standing, err = svc.Standing(ctx, "fp-1")
		require.NoError(t, err)
		assert.Equal(t, domain.StandingBanned, standing.State)
		assert.False(t, standing.Permanent)
	})

	t.Run("critical bans permanently", func(t *testing.T) {
		svc, _ := newTestService(&mockViolationRepository{}, event.NewMemoryBus())
		svc.Record(ctx, domain.ViolationClientTampering, domain.SeverityCritical, "fp-1", "forged commitment")

		standing, err := svc.Standing(ctx, "fp-1")
		require.NoError(t, err)
		assert.Equal(t, domain.StandingBanned, standing.State)
		assert.True(t, standing.Permanent)
		assert.True(t, standing.Blocked(time.Now().Add(1000*time.Hour)))
	})
}

func TestCriticalBanOutlivesLookback(t *testing.T) {
	ctx := context.Background()
	svc, current := newTestService(&mockViolationRepository{}, event.NewMemoryBus())

	svc.Record(ctx, domain.ViolationClientTampering, domain.SeverityCritical, "fp-1", "forged entropy")
	standing, err := svc.Standing(ctx, "fp-1")
	require.NoError(t, err)
	require.Equal(t, domain.StandingBanned, standing.State)
	require.True(t, standing.Permanent)

	// Well past the counting window and the longest timed ban, the
	// permanent ban must still hold.
	*current = current.Add(8 * 24 * time.Hour)
	standing, err = svc.Standing(ctx, "fp-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StandingBanned, standing.State)
	assert.True(t, standing.Permanent)

	*current = current.Add(365 * 24 * time.Hour)
	standing, err = svc.Standing(ctx, "fp-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StandingBanned, standing.State)
}

func TestStandingExpiresLazily(t *testing.T) {
	ctx := context.Background()
	svc, current := newTestService(&mockViolationRepository{}, event.NewMemoryBus())

	for i := 0; i < SuspendedHighCount; i++ {
		svc.Record(ctx, domain.ViolationEntropyMismatch, domain.SeverityHigh, "fp-1", "")
	}
	standing, err := svc.Standing(ctx, "fp-1")
	require.NoError(t, err)
	require.Equal(t, domain.StandingSuspended, standing.State)

	// Once the suspension duration AND the counting window have elapsed,
	// the next lookup reports clean without any sweeper having run.
	*current = current.Add(SuspendedDuration + time.Hour)
	standing, err = svc.Standing(ctx, "fp-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StandingClean, standing.State)
}

func TestStandingIgnoresViolationsOutsideWindow(t *testing.T) {
	ctx := context.Background()
	svc, current := newTestService(&mockViolationRepository{}, event.NewMemoryBus())

	for i := 0; i < MutedMediumCount-1; i++ {
		svc.Record(ctx, domain.ViolationRateLimitExceeded, domain.SeverityMedium, "fp-1", "")
	}

	// The older violations slide out before the count completes.
	*current = current.Add(25 * time.Hour)
	svc.Record(ctx, domain.ViolationRateLimitExceeded, domain.SeverityMedium, "fp-1", "")

	standing, err := svc.Standing(ctx, "fp-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StandingClean, standing.State)
}

func TestBanEventsOnTransition(t *testing.T) {
	ctx := context.Background()
	bus := event.NewMemoryBus()
	applied := collectEvents(bus, event.BanApplied)
	removed := collectEvents(bus, event.BanRemoved)
	svc, current := newTestService(&mockViolationRepository{}, bus)

	for i := 0; i < SuspendedHighCount; i++ {
		svc.Record(ctx, domain.ViolationEntropyMismatch, domain.SeverityHigh, "fp-1", "")
	}
	_, err := svc.Standing(ctx, "fp-1")
	require.NoError(t, err)
	require.Len(t, *applied, 1)

	payload, ok := (*applied)[0].Payload.(event.StandingChangedPayloadV1)
	require.True(t, ok)
	assert.Equal(t, domain.StandingSuspended, payload.State)

	// Lazy expiry produces the matching ban_removed on the next lookup.
	*current = current.Add(SuspendedDuration + time.Hour)
	_, err = svc.Standing(ctx, "fp-1")
	require.NoError(t, err)
	assert.Len(t, *removed, 1)
	assert.Len(t, *applied, 1)
}

func TestEvaluateIsPure(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	history := []domain.SecurityViolation{
		{Severity: domain.SeverityHigh, Timestamp: now.Add(-time.Hour)},
		{Severity: domain.SeverityHigh, Timestamp: now.Add(-2 * time.Hour)},
		{Severity: domain.SeverityHigh, Timestamp: now.Add(-3 * time.Hour)},
	}

	a := Evaluate("fp-1", history, now, 24*time.Hour)
	b := Evaluate("fp-1", history, now, 24*time.Hour)
	assert.Equal(t, a, b)
	assert.Equal(t, domain.StandingSuspended, a.State)
	assert.Equal(t, now.Add(-time.Hour).Add(SuspendedDuration), *a.ExpiresAt)
}
