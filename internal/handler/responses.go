package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dadddeck/pack-engine/internal/domain"
	"github.com/dadddeck/pack-engine/internal/logger"
)

// Standard response types for consistent API responses

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response. Code is a machine-readable
// identifier; RetryAfterSeconds is set only for rate-limit rejections.
type ErrorResponse struct {
	Error             string `json:"error"`
	Code              string `json:"code,omitempty"`
	RetryAfterSeconds int    `json:"retry_after_seconds,omitempty"`
}

// DataResponse represents a response with data payload
type DataResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

// Helper functions for responding

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Get a buffer from the pool to reduce allocations
	buf := getBuffer()
	defer putBuffer(buf)

	// Encode to the buffer first
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		// Headers are already sent; all we can do is log.
		slog.Error("Failed to encode JSON response", "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("Failed to write response buffer", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs a failed service call and writes the mapped
// HTTP response for it.
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	logger.FromContext(r.Context()).Error(opName, "error", err)
	status, body := mapServiceError(err)
	respondJSON(w, status, body)
}

// User-facing error messages for service errors
const (
	ErrMsgGenericServerError = "Something went wrong"
	ErrMsgUnknownError       = "Unknown error"

	ErrMsgRateLimitedError     = "Too many pack opens. Slow down and try again."
	ErrMsgBannedError          = "This account is blocked from opening packs."
	ErrMsgInvalidSeedError     = "Client seed is missing or malformed."
	ErrMsgStaleSeedError       = "The server seed has rotated. Fetch the current commitment and retry."
	ErrMsgSeedNotRevealedError = "That epoch's seed is still live. Retry after the next rotation."
	ErrMsgNonceReplayedError   = "This draw nonce was already used."
	ErrMsgUnknownPackTypeError = "Unknown pack type."
	ErrMsgHashMismatchError    = "Entropy record failed verification."
	ErrMsgEmptyCatalogError    = "No cards are available for that rarity."
	ErrMsgCardNotFoundError    = "Card not found."
)

// mapServiceError maps domain errors to HTTP status codes and response
// bodies with machine-readable codes. Rate-limit and ban rejections carry
// their typed payload (retry timing) through to the client.
func mapServiceError(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, ErrorResponse{Error: ErrMsgUnknownError, Code: CodeInternalError}
	}

	var rateLimited domain.RateLimitedError
	if errors.As(err, &rateLimited) {
		return http.StatusTooManyRequests, ErrorResponse{
			Error:             ErrMsgRateLimitedError,
			Code:              CodeRateLimited,
			RetryAfterSeconds: rateLimited.Status.RetryAfterSeconds,
		}
	}

	switch {
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests, ErrorResponse{Error: ErrMsgRateLimitedError, Code: CodeRateLimited}
	case errors.Is(err, domain.ErrBanned):
		return http.StatusForbidden, ErrorResponse{Error: ErrMsgBannedError, Code: CodeBanned}
	case errors.Is(err, domain.ErrInvalidSeed):
		return http.StatusBadRequest, ErrorResponse{Error: ErrMsgInvalidSeedError, Code: CodeInvalidSeed}
	case errors.Is(err, domain.ErrStaleSeed):
		return http.StatusConflict, ErrorResponse{Error: ErrMsgStaleSeedError, Code: CodeStaleSeed}
	case errors.Is(err, domain.ErrSeedNotRevealed):
		return http.StatusConflict, ErrorResponse{Error: ErrMsgSeedNotRevealedError, Code: CodeSeedNotRevealed}
	case errors.Is(err, domain.ErrNonceReplayed):
		return http.StatusConflict, ErrorResponse{Error: ErrMsgNonceReplayedError, Code: CodeNonceReplayed}
	case errors.Is(err, domain.ErrUnknownPackType):
		return http.StatusBadRequest, ErrorResponse{Error: ErrMsgUnknownPackTypeError, Code: CodeUnknownPackType}
	case errors.Is(err, domain.ErrHashMismatch):
		return http.StatusBadRequest, ErrorResponse{Error: ErrMsgHashMismatchError, Code: CodeInvalidSeed}
	case errors.Is(err, domain.ErrEmptyCatalog):
		return http.StatusInternalServerError, ErrorResponse{Error: ErrMsgEmptyCatalogError, Code: CodeInternalError}
	case errors.Is(err, domain.ErrCardNotFound):
		return http.StatusNotFound, ErrorResponse{Error: ErrMsgCardNotFoundError}
	}

	// For wrapped errors with domain errors as the base, try unwrapping
	unwrapped := errors.Unwrap(err)
	if unwrapped != nil && unwrapped != err {
		return mapServiceError(unwrapped)
	}

	// Surface short error messages as-is; they come from validation paths
	// and hand-written mocks rather than infrastructure failures.
	errMsg := err.Error()
	if errMsg != "" && len(errMsg) < 200 {
		return http.StatusInternalServerError, ErrorResponse{Error: errMsg, Code: CodeInternalError}
	}

	return http.StatusInternalServerError, ErrorResponse{Error: ErrMsgGenericServerError, Code: CodeInternalError}
}
