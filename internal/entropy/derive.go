package entropy

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/dadddeck/pack-engine/internal/domain"
)

// Derive computes the draw hash binding the three randomness inputs:
// HMAC-SHA256 keyed by the server seed over "clientSeed:nonce". The whole
// pack outcome is a pure function of this hash, so anyone holding the
// revealed server seed can recompute it.
func Derive(serverSeed, clientSeed string, nonce uint64) string {
	mac := hmac.New(sha256.New, []byte(serverSeed))
	fmt.Fprintf(mac, "%s:%d", clientSeed, nonce)
	return hex.EncodeToString(mac.Sum(nil))
}

// Commitment returns the SHA-256 hash of a server seed. Published before any
// draw so the server cannot switch seeds after seeing client input.
func Commitment(serverSeed string) string {
	sum := sha256.Sum256([]byte(serverSeed))
	return hex.EncodeToString(sum[:])
}

// Stream is the deterministic float sequence seeded from a draw hash.
// Index i always yields the same value for the same hash, so a replay
// consumes the identical sequence the original draw did.
type Stream struct {
	key []byte
}

// NewStream builds the float stream for one derived hash.
func NewStream(hash string) Stream {
	return Stream{key: []byte(hash)}
}

// StreamFor derives the hash for the given entropy record and returns its
// stream. Convenience for the replay path.
func StreamFor(record domain.PackEntropy) Stream {
	return NewStream(Derive(record.ServerSeed, record.ClientSeed, record.Nonce))
}

// Float returns the uniform [0,1) value at the given stream index.
func (s Stream) Float(index int) float64 {
	mac := hmac.New(sha256.New, s.key)
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(index))
	mac.Write(buf[:])
	digest := mac.Sum(nil)

	bits := binary.BigEndian.Uint64(digest[:8]) >> (64 - streamFloatBits)
	return float64(bits) / float64(uint64(1)<<streamFloatBits)
}

// Floats returns the first n stream values in order.
func (s Stream) Floats(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = s.Float(i)
	}
	return out
}

// VerifyHash recomputes the hash from the record's revealed inputs and
// checks it matches the recorded one. When the record carries a commitment,
// the revealed seed must also hash to it, so a forged seed/hash pair cannot
// pass by being internally consistent.
func VerifyHash(record domain.PackEntropy) error {
	if record.Commitment != "" && Commitment(record.ServerSeed) != record.Commitment {
		return fmt.Errorf("%w: revealed seed does not match its commitment", domain.ErrHashMismatch)
	}
	expected := Derive(record.ServerSeed, record.ClientSeed, record.Nonce)
	if !hmac.Equal([]byte(expected), []byte(record.Hash)) {
		return fmt.Errorf("%w: expected %s", domain.ErrHashMismatch, expected)
	}
	return nil
}
