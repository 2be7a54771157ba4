package handler

import (
	"net/http"

	"github.com/dadddeck/pack-engine/internal/violation"
)

// HandleGetStanding returns the account standing for ?fingerprint,
// re-evaluated from the violation ledger on every call.
func HandleGetStanding(svc violation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fingerprint, ok := GetQueryParam(r, w, "fingerprint")
		if !ok {
			return
		}

		standing, err := svc.Standing(r.Context(), fingerprint)
		if err != nil {
			respondServiceError(w, r, ErrMsgGetStandingFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, standing)
	}
}
