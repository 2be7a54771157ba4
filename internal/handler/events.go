package handler

import (
	"net/http"
	"strconv"

	"github.com/dadddeck/pack-engine/internal/repository"
)

// SecurityEventsResponse wraps the feed entries for moderation tooling.
type SecurityEventsResponse struct {
	Events []repository.SecurityEventEntry `json:"events"`
	Count  int                             `json:"count"`
}

// HandleGetSecurityEvents returns the persisted security event feed,
// optionally filtered by ?fingerprint, ?event_type and ?limit.
func HandleGetSecurityEvents(repo repository.SecurityEvents) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := repository.SecurityEventFilter{Limit: 100}

		if fp := r.URL.Query().Get("fingerprint"); fp != "" {
			filter.Fingerprint = &fp
		}
		if et := r.URL.Query().Get("event_type"); et != "" {
			filter.EventType = &et
		}
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			limit, err := strconv.Atoi(limitStr)
			if err != nil || limit <= 0 {
				http.Error(w, ErrMsgInvalidLimit, http.StatusBadRequest)
				return
			}
			filter.Limit = limit
		}

		entries, err := repo.GetEvents(r.Context(), filter)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetEventsFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, SecurityEventsResponse{
			Events: entries,
			Count:  len(entries),
		})
	}
}
