// Package entropy provides the deterministic random streams that drive the
// stochastic geological and exotic processes.
// Seeds come from configuration or from crypto/rand when none is set.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	mrand "math/rand/v2"
)

// Stream is a seeded pseudo-random source. A Stream is not safe for
// concurrent use; each body gets its own.
type Stream struct {
	r *mrand.Rand
}

// NewStream creates a deterministic stream from seed.
func NewStream(seed int64) *Stream {
	return &Stream{r: mrand.New(mrand.NewPCG(uint64(seed), 0))}
}

// Derive returns a stream whose seed mixes seed with key, so that every body
// gets an independent sequence that does not depend on iteration order.
func Derive(seed int64, key string) *Stream {
	h := fnv.New64a()
	h.Write([]byte(key))
	return &Stream{r: mrand.New(mrand.NewPCG(uint64(seed), h.Sum64()))}
}

// Float64 returns a value in [0, 1).
func (s *Stream) Float64() float64 {
	return s.r.Float64()
}

// Chance reports true with probability p.
func (s *Stream) Chance(p float64) bool {
	return s.r.Float64() < p
}

// Range returns a uniform value in [lo, hi).
func (s *Stream) Range(lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + s.r.Float64()*(hi-lo)
}

// IntRange returns a uniform integer in [lo, hi] inclusive.
func (s *Stream) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.r.IntN(hi-lo+1)
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
