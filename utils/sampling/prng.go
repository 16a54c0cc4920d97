package sampling

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"

	"golang.org/x/crypto/blake2b"
)

// PRNG is a source of random bytes.
type PRNG interface {
	io.Reader
}

// SystemPRNG draws from crypto/rand. It is used for fresh secrets and noise.
type SystemPRNG struct{}

// NewPRNG returns a SystemPRNG.
func NewPRNG() *SystemPRNG {
	return &SystemPRNG{}
}

func (SystemPRNG) Read(p []byte) (int, error) {
	return rand.Read(p)
}

// MaxSeedSize is the largest seed accepted by [NewKeyedPRNG].
const MaxSeedSize = blake2b.Size

// KeyedPRNG is the byte stream of the blake2b XOF keyed by a seed.
//
// The verifier feeds the hash of a trace into a KeyedPRNG and reads its
// constraint challenges from it, so prover and verifier agree on them
// without interaction. Tests seed one with a fixed label to get the same
// keys and ciphertexts on every run.
//
// Reads are serialized, but the stream is only reproducible when a single
// goroutine consumes it.
type KeyedPRNG struct {
	mu   sync.Mutex
	seed []byte
	xof  blake2b.XOF
}

// NewKeyedPRNG returns the stream of the given seed. A nil seed is the empty seed.
func NewKeyedPRNG(seed []byte) (*KeyedPRNG, error) {

	if len(seed) > MaxSeedSize {
		return nil, fmt.Errorf("invalid seed: %d bytes > %d", len(seed), MaxSeedSize)
	}

	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, seed)
	if err != nil {
		return nil, fmt.Errorf("blake2b.NewXOF: %w", err)
	}

	return &KeyedPRNG{seed: append([]byte{}, seed...), xof: xof}, nil
}

// Key returns a copy of the seed.
func (prng *KeyedPRNG) Key() []byte {
	return append([]byte{}, prng.seed...)
}

func (prng *KeyedPRNG) Read(p []byte) (int, error) {
	prng.mu.Lock()
	defer prng.mu.Unlock()
	return prng.xof.Read(p)
}

// Reset rewinds the stream to its first byte.
func (prng *KeyedPRNG) Reset() {
	prng.mu.Lock()
	defer prng.mu.Unlock()
	prng.xof.Reset()
}
