// Package seed derives reproducible PRNG seeds from strings.
package seed

import (
	"crypto/sha256"
	"math/big"
	"math/rand"
	"time"
)

const (
	// Length is the number of characters in a generated seed string.
	Length = 16

	chars   = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	modulus = 100_000_000
)

// Seed is an immutable seed string and the hash derived from it.
type Seed struct {
	raw  string
	hash uint64
}

// New creates a Seed from s. If s is empty, a random 16 character
// alphanumeric string is drawn from rng instead. A nil rng falls back to a
// time-seeded source.
func New(s string, rng *rand.Rand) Seed {
	if s == "" {
		if rng == nil {
			rng = rand.New(rand.NewSource(time.Now().UnixNano()))
		}
		s = randomString(rng)
	}
	return Seed{raw: s, hash: hash(s)}
}

// Random creates a Seed from a freshly drawn string.
func Random(rng *rand.Rand) Seed {
	return New("", rng)
}

// Value returns the numeric hash of the seed string.
func (s Seed) Value() uint64 {
	return s.hash
}

// String returns the raw seed string.
func (s Seed) String() string {
	return s.raw
}

// Rand returns a new PRNG seeded with Value. Every call starts the same stream.
func (s Seed) Rand() *rand.Rand {
	return rand.New(rand.NewSource(int64(s.hash)))
}

func randomString(rng *rand.Rand) string {
	b := make([]byte, Length)
	for i := range b {
		b[i] = chars[rng.Intn(len(chars))]
	}
	return string(b)
}

// hash interprets the SHA-256 digest as a big-endian integer and reduces it
// modulo 10^8.
func hash(s string) uint64 {
	sum := sha256.Sum256([]byte(s))
	n := new(big.Int).SetBytes(sum[:])
	return n.Mod(n, big.NewInt(modulus)).Uint64()
}
