package event

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dadddeck/pack-engine/internal/domain"
)

// Type represents the type of an event
type Type string

// Security event types emitted on the violation feed. External
// moderation/analytics systems subscribe; the engine does not track consumers.
const (
	PackOpened        Type = domain.EventTypePackOpen
	PackValidated     Type = domain.EventTypePackValidation
	ViolationDetected Type = domain.EventTypeViolationDetected
	BanApplied        Type = domain.EventTypeBanApplied
	BanRemoved        Type = domain.EventTypeBanRemoved
)

// Event represents a generic event in the system
type Event struct {
	Version string      `json:"version"` // Event schema version (e.g., "1.0")
	Type    Type        `json:"type"`
	Payload interface{} `json:"payload"`
}

// Typed event payloads for type safety

// PackOpenedPayloadV1 is the typed payload for pack_open events
type PackOpenedPayloadV1 struct {
	UserID      string        `json:"user_id"`
	Fingerprint string        `json:"fingerprint,omitempty"`
	PackID      string        `json:"pack_id"`
	PackType    string        `json:"pack_type"`
	BestRarity  domain.Rarity `json:"best_rarity"`
	EntropyHash string        `json:"entropy_hash"`
	Nonce       uint64        `json:"nonce"`
	Timestamp   int64         `json:"timestamp"`
}

// PackValidatedPayloadV1 is the typed payload for pack_validation events
type PackValidatedPayloadV1 struct {
	EntropyHash     string   `json:"entropy_hash"`
	Valid           bool     `json:"valid"`
	EntropyVerified bool     `json:"entropy_verified"`
	Anomalies       []string `json:"anomalies,omitempty"`
	Timestamp       int64    `json:"timestamp"`
}

// ViolationDetectedPayloadV1 is the typed payload for violation_detected events
type ViolationDetectedPayloadV1 struct {
	ViolationID string                `json:"violation_id"`
	Type        domain.ViolationType  `json:"type"`
	Severity    domain.Severity       `json:"severity"`
	Fingerprint string                `json:"fingerprint"`
	Details     string                `json:"details,omitempty"`
	Timestamp   int64                 `json:"timestamp"`
}

// StandingChangedPayloadV1 is the typed payload for ban_applied/ban_removed events
type StandingChangedPayloadV1 struct {
	Fingerprint string               `json:"fingerprint"`
	State       domain.StandingState `json:"state"`
	Permanent   bool                 `json:"permanent,omitempty"`
	ExpiresAt   *time.Time           `json:"expires_at,omitempty"`
	Reason      string               `json:"reason,omitempty"`
	Timestamp   int64                `json:"timestamp"`
}

// Type-safe event constructors

// NewPackOpenedEvent creates a new pack_open event
func NewPackOpenedEvent(pack domain.Pack, fingerprint string, entropy domain.PackEntropy) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PackOpened,
		Payload: PackOpenedPayloadV1{
			UserID:      pack.UserID,
			Fingerprint: fingerprint,
			PackID:      pack.ID,
			PackType:    string(pack.PackType),
			BestRarity:  pack.BestRarity,
			EntropyHash: entropy.Hash,
			Nonce:       entropy.Nonce,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewPackValidatedEvent creates a new pack_validation event
func NewPackValidatedEvent(entropyHash string, result domain.PackValidationResult) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    PackValidated,
		Payload: PackValidatedPayloadV1{
			EntropyHash:     entropyHash,
			Valid:           result.Valid,
			EntropyVerified: result.EntropyVerified,
			Anomalies:       result.Anomalies,
			Timestamp:       time.Now().Unix(),
		},
	}
}

// NewViolationDetectedEvent creates a new violation_detected event
func NewViolationDetectedEvent(v domain.SecurityViolation) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ViolationDetected,
		Payload: ViolationDetectedPayloadV1{
			ViolationID: v.ID,
			Type:        v.Type,
			Severity:    v.Severity,
			Fingerprint: v.Fingerprint,
			Details:     v.Details,
			Timestamp:   v.Timestamp.Unix(),
		},
	}
}

// NewStandingChangedEvent creates a ban_applied or ban_removed event depending
// on whether the new standing blocks the account.
func NewStandingChangedEvent(standing domain.Standing, applied bool) Event {
	eventType := BanRemoved
	if applied {
		eventType = BanApplied
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: StandingChangedPayloadV1{
			Fingerprint: standing.Fingerprint,
			State:       standing.State,
			Permanent:   standing.Permanent,
			ExpiresAt:   standing.ExpiresAt,
			Reason:      standing.Reason,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish publishes an event to all subscribers. Handlers run synchronously;
// a failing handler does not stop the rest.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers, ok := b.handlers[event.Type]
	b.mu.RUnlock()

	if !ok {
		return nil
	}

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(ErrFmtHandlerErrors, len(errs), event.Type, errs)
	}

	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
