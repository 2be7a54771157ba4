package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dadddeck/pack-engine/internal/logger"
	"github.com/dadddeck/pack-engine/internal/repository"
)

// SubscribePersistence attaches a handler for every feed event type that
// writes the event into the security_events table. Moderation tooling reads
// the persisted feed; live subscribers keep getting events directly.
func SubscribePersistence(bus Bus, repo repository.SecurityEvents) {
	handler := persistHandler(repo)
	for _, eventType := range []Type{PackOpened, PackValidated, ViolationDetected, BanApplied, BanRemoved} {
		bus.Subscribe(eventType, handler)
	}
}

func persistHandler(repo repository.SecurityEvents) Handler {
	return func(ctx context.Context, e Event) error {
		payload, err := payloadToMap(e)
		if err != nil {
			return err
		}

		if err := repo.LogEvent(ctx, string(e.Type), eventFingerprint(e), payload); err != nil {
			// Feed persistence is best-effort: the draw already happened.
			logger.FromContext(ctx).Error(LogMsgPersistEventFailed, "type", e.Type, "error", err)
			return err
		}
		return nil
	}
}

// payloadToMap flattens the typed payload into the JSONB shape the feed
// table stores, preserving the schema version.
func payloadToMap(e Event) (map[string]interface{}, error) {
	raw, err := json.Marshal(e.Payload)
	if err != nil {
		return nil, fmt.Errorf(ErrFmtMarshalPayload, e.Type, err)
	}

	payload := make(map[string]interface{})
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf(ErrFmtMarshalPayload, e.Type, err)
	}
	payload["version"] = e.Version
	return payload, nil
}

// eventFingerprint pulls the account fingerprint out of the typed payloads
// so the feed can be filtered per account.
func eventFingerprint(e Event) string {
	switch p := e.Payload.(type) {
	case PackOpenedPayloadV1:
		if p.Fingerprint != "" {
			return p.Fingerprint
		}
		return p.UserID
	case ViolationDetectedPayloadV1:
		return p.Fingerprint
	case StandingChangedPayloadV1:
		return p.Fingerprint
	}
	return ""
}
