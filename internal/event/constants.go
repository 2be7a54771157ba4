package event

// EventSchemaVersion is the current schema version stamped on every event
const EventSchemaVersion = "1.0"

// ErrFmtHandlerErrors formats the aggregate error when one or more handlers fail
const ErrFmtHandlerErrors = "%d handler(s) failed for event %s: %v"

// ErrFmtMarshalPayload formats payload serialization failures during feed persistence
const ErrFmtMarshalPayload = "failed to serialize %s payload: %w"

// Log messages
const (
	LogMsgPersistEventFailed = "Failed to persist feed event"
)
