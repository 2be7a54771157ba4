package event

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadddeck/pack-engine/internal/domain"
	"github.com/dadddeck/pack-engine/internal/repository"
)

type persistedEvent struct {
	eventType   string
	fingerprint string
	payload     map[string]interface{}
}

// memoryEventsRepo is a stateful in-memory stand-in for the feed table.
type memoryEventsRepo struct {
	logged  []persistedEvent
	failErr error
}

func (m *memoryEventsRepo) LogEvent(ctx context.Context, eventType, fingerprint string, payload map[string]interface{}) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.logged = append(m.logged, persistedEvent{eventType: eventType, fingerprint: fingerprint, payload: payload})
	return nil
}

func (m *memoryEventsRepo) GetEvents(ctx context.Context, filter repository.SecurityEventFilter) ([]repository.SecurityEventEntry, error) {
	return nil, nil
}

func (m *memoryEventsRepo) CleanupOldEvents(ctx context.Context, retentionDays int) (int64, error) {
	return 0, nil
}

func TestSubscribePersistence_PersistsFeedEvents(t *testing.T) {
	bus := NewMemoryBus()
	repo := &memoryEventsRepo{}
	SubscribePersistence(bus, repo)

	pack := domain.Pack{
		ID:         "pack-1",
		UserID:     "user-1",
		PackType:   domain.PackTypeStandard,
		BestRarity: domain.RarityRare,
		OpenedAt:   time.Now(),
	}
	entropy := domain.PackEntropy{Hash: "abc123", Nonce: 7}

	require.NoError(t, bus.Publish(context.Background(), NewPackOpenedEvent(pack, "", entropy)))

	require.Len(t, repo.logged, 1)
	got := repo.logged[0]
	assert.Equal(t, "pack_open", got.eventType)
	assert.Equal(t, "user-1", got.fingerprint)
	assert.Equal(t, "pack-1", got.payload["pack_id"])
	assert.Equal(t, "abc123", got.payload["entropy_hash"])
	assert.Equal(t, EventSchemaVersion, got.payload["version"])
}

func TestSubscribePersistence_ViolationCarriesFingerprint(t *testing.T) {
	bus := NewMemoryBus()
	repo := &memoryEventsRepo{}
	SubscribePersistence(bus, repo)

	v := domain.SecurityViolation{
		ID:          "v-1",
		Type:        domain.ViolationEntropyMismatch,
		Severity:    domain.SeverityHigh,
		Fingerprint: "fp-1",
		Timestamp:   time.Now(),
	}
	require.NoError(t, bus.Publish(context.Background(), NewViolationDetectedEvent(v)))

	require.Len(t, repo.logged, 1)
	assert.Equal(t, "violation_detected", repo.logged[0].eventType)
	assert.Equal(t, "fp-1", repo.logged[0].fingerprint)
	assert.Equal(t, "high", repo.logged[0].payload["severity"])
}

func TestSubscribePersistence_WriteFailureSurfaces(t *testing.T) {
	bus := NewMemoryBus()
	repo := &memoryEventsRepo{failErr: assert.AnError}
	SubscribePersistence(bus, repo)

	standing := domain.Standing{Fingerprint: "fp-2", State: domain.StandingBanned, Permanent: true}
	err := bus.Publish(context.Background(), NewStandingChangedEvent(standing, true))

	assert.Error(t, err)
	assert.Empty(t, repo.logged)
}
