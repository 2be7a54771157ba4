package handler

import (
	"net/http"
	"strconv"

	"github.com/dadddeck/pack-engine/internal/entropy"
)

// CommitmentResponse publishes the active server-seed commitment. The seed
// itself stays secret until its epoch rotates out; see HandleRevealSeed.
type CommitmentResponse struct {
	Commitment string `json:"commitment"`
	Epoch      uint64 `json:"epoch"`
}

// HandleGetCommitment returns the current commitment so clients can pin it
// before submitting a draw.
func HandleGetCommitment(rotator *entropy.Rotator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_, commitment, epoch := rotator.Current()
		respondJSON(w, http.StatusOK, CommitmentResponse{
			Commitment: commitment,
			Epoch:      epoch,
		})
	}
}

// RevealResponse carries the plaintext seed for a retired epoch so clients
// can replay their recorded draws.
type RevealResponse struct {
	Epoch      uint64 `json:"epoch"`
	ServerSeed string `json:"server_seed"`
}

// HandleRevealSeed returns the server seed for ?epoch once that epoch has
// rotated out. Requests for the live epoch are refused.
func HandleRevealSeed(rotator *entropy.Rotator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, ok := GetQueryParam(r, w, "epoch")
		if !ok {
			return
		}
		epoch, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, ErrMsgInvalidEpoch)
			return
		}

		seed, err := rotator.Reveal(epoch)
		if err != nil {
			respondServiceError(w, r, ErrMsgRevealSeedFailed, err)
			return
		}
		respondJSON(w, http.StatusOK, RevealResponse{Epoch: epoch, ServerSeed: seed})
	}
}
