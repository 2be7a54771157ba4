package handler

import (
	"net/http"

	"github.com/dadddeck/pack-engine/internal/domain"
	"github.com/dadddeck/pack-engine/internal/logger"
	"github.com/dadddeck/pack-engine/internal/pack"
)

// OpenPackRequest is the body for POST /packs/open. Either user_id or
// fingerprint must identify the caller.
type OpenPackRequest struct {
	UserID         string `json:"user_id" validate:"required_without=Fingerprint,max=128"`
	Fingerprint    string `json:"fingerprint" validate:"max=128"`
	PackType       string `json:"pack_type" validate:"required,max=64"`
	ClientSeed     string `json:"client_seed" validate:"required,min=1,max=256"`
	SeedCommitment string `json:"seed_commitment" validate:"max=128"`
}

// HandleOpenPack runs the draw pipeline and returns the pack together with
// its entropy record and remaining rate-limit budget.
func HandleOpenPack(svc pack.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req OpenPackRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Open pack"); err != nil {
			return
		}

		result, err := svc.Open(r.Context(), domain.DrawRequest{
			UserID:         req.UserID,
			Fingerprint:    req.Fingerprint,
			PackType:       domain.PackType(req.PackType),
			ClientSeed:     req.ClientSeed,
			SeedCommitment: req.SeedCommitment,
		})
		if err != nil {
			respondServiceError(w, r, ErrMsgOpenPackFailed, err)
			return
		}

		logger.FromContext(r.Context()).Info("Pack opened",
			"pack_id", result.Pack.ID,
			"pack_type", result.Pack.PackType,
			"best_rarity", result.Pack.BestRarity)
		respondJSON(w, http.StatusCreated, result)
	}
}

// PityStatusResponse pairs the caller's counters with the configured
// thresholds so clients can render progress bars.
type PityStatusResponse struct {
	Counter    domain.PityCounter    `json:"counter"`
	Thresholds domain.PityThresholds `json:"thresholds"`
}

// HandleGetPityStatus returns pity counters for ?user_id and ?pack_type.
func HandleGetPityStatus(svc pack.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetQueryParam(r, w, "user_id")
		if !ok {
			return
		}
		packType := GetOptionalQueryParam(r, "pack_type", string(domain.PackTypeStandard))

		counter, thresholds, err := svc.PityStatus(r.Context(), userID, domain.PackType(packType))
		if err != nil {
			respondServiceError(w, r, ErrMsgGetPityFailed, err)
			return
		}

		respondJSON(w, http.StatusOK, PityStatusResponse{
			Counter:    counter,
			Thresholds: thresholds,
		})
	}
}
