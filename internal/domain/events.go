package domain

// Event type constants used across the application for event bus
// subscriptions and metrics tracking. External moderation/analytics systems
// subscribe to these; the engine does not know who consumes them.
const (
	// EventTypePackOpen is published for every successfully assembled pack
	EventTypePackOpen = "pack_open"

	// EventTypePackValidation is published when an audit verification runs
	EventTypePackValidation = "pack_validation"

	// EventTypeViolationDetected is published when any detector records a violation
	EventTypeViolationDetected = "violation_detected"

	// EventTypeBanApplied is published when the standing state escalates to a block
	EventTypeBanApplied = "ban_applied"

	// EventTypeBanRemoved is published when a block lapses or is lifted
	EventTypeBanRemoved = "ban_removed"
)
