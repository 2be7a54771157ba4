package logger

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
)

type ctxKey string

const (
	requestIDKey   ctxKey = "requestID"
	fingerprintKey ctxKey = "fingerprint"
)

// GenerateRequestID creates a new UUID for tracing requests.
func GenerateRequestID() string {
	return uuid.NewString()
}

// WithRequestID returns a new context containing the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext extracts the request ID from the context, if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(requestIDKey)
	if v == nil {
		return "", false
	}
	if id, ok := v.(string); ok {
		return id, true
	}
	return "", false
}

// WithFingerprint returns a new context carrying the caller's fingerprint,
// so violation records and logs from deeper layers share the same identity.
func WithFingerprint(ctx context.Context, fingerprint string) context.Context {
	return context.WithValue(ctx, fingerprintKey, fingerprint)
}

// FingerprintFromContext extracts the fingerprint from the context, if present.
func FingerprintFromContext(ctx context.Context) (string, bool) {
	if fp, ok := ctx.Value(fingerprintKey).(string); ok && fp != "" {
		return fp, true
	}
	return "", false
}

// FromContext returns a logger that includes request-scoped attributes when present.
func FromContext(ctx context.Context) *slog.Logger {
	log := slog.Default()
	if id, ok := RequestIDFromContext(ctx); ok {
		log = log.With("request_id", id)
	}
	if fp, ok := FingerprintFromContext(ctx); ok {
		log = log.With("fingerprint", fp)
	}
	return log
}
