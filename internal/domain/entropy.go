package domain

import "time"

// PackEntropy is the verifiable record binding a pack to its randomness
// inputs: hash = HMAC-SHA256(serverSeed, clientSeed:nonce). Draw responses
// carry only the seed's commitment and epoch; the plaintext seed stays
// secret until its epoch retires, otherwise a client holding it could
// precompute every remaining draw of the epoch. ServerSeed is filled in by
// the audit path (or the auditor) once the seed is revealed.
//
// PitySnapshot and Thresholds capture the pity configuration and counters as
// they stood at draw time; replaying the outcome requires both because pity
// escalation shifts the effective weights and thresholds are retunable.
type PackEntropy struct {
	ServerSeed   string         `json:"server_seed,omitempty"`
	Commitment   string         `json:"commitment"`
	Epoch        uint64         `json:"epoch"`
	ClientSeed   string         `json:"client_seed"`
	Nonce        uint64         `json:"nonce"`
	Hash         string         `json:"hash"`
	PackType     PackType       `json:"pack_type"`
	PitySnapshot PityCounter    `json:"pity_snapshot"`
	Thresholds   PityThresholds `json:"pity_thresholds,omitempty"`
	Timestamp    time.Time      `json:"timestamp"`
}
