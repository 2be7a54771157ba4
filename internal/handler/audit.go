package handler

import (
	"net/http"

	"github.com/dadddeck/pack-engine/internal/domain"
	"github.com/dadddeck/pack-engine/internal/logger"
	"github.com/dadddeck/pack-engine/internal/pack"
)

// VerifyPackRequest is the body for POST /packs/verify: a revealed entropy
// record and the pack it allegedly produced.
type VerifyPackRequest struct {
	Entropy domain.PackEntropy `json:"entropy" validate:"required"`
	Pack    domain.Pack        `json:"pack" validate:"required"`
}

// HandleVerifyPack replays the entropy record and reports whether the
// claimed pack matches. The audit itself never fails the request: a
// mismatch comes back as Valid=false with anomaly codes.
func HandleVerifyPack(svc pack.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req VerifyPackRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Verify pack"); err != nil {
			return
		}

		result, err := svc.Verify(r.Context(), req.Entropy, req.Pack)
		if err != nil {
			respondServiceError(w, r, ErrMsgVerifyPackFailed, err)
			return
		}

		logger.FromContext(r.Context()).Info("Pack audited",
			"pack_id", req.Pack.ID,
			"valid", result.Valid,
			"anomalies", len(result.Anomalies))
		respondJSON(w, http.StatusOK, result)
	}
}
