// Package tournament implements the round elimination engine: the competitor
// population, alliance and team pairing, the six elimination rules, and the
// state machine that sequences them into a ranked outcome.
package tournament

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Source is the uniform [0,1) randomness every rule and the population
// generator draw from. Implementations need not be safe for concurrent use;
// the Tournament serialises access.
type Source interface {
	Float64() float64
}

// NewSeededSource returns a deterministic Source backed by math/rand.
func NewSeededSource(seed int64) Source {
	return rand.New(rand.NewSource(seed)) // #nosec G404 -- simulation, not crypto
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

// SequenceSource replays a fixed list of draws, cycling when exhausted.
// Used to script exact outcomes in tests.
type SequenceSource struct {
	draws []float64
	next  int
	used  int
}

// NewSequenceSource creates a SequenceSource. With no draws it always returns 0.
func NewSequenceSource(draws ...float64) *SequenceSource {
	return &SequenceSource{draws: draws}
}

// Float64 returns the next scripted draw.
func (s *SequenceSource) Float64() float64 {
	s.used++
	if len(s.draws) == 0 {
		return 0
	}
	v := s.draws[s.next]
	s.next = (s.next + 1) % len(s.draws)
	return v
}

// Used reports how many draws have been consumed.
func (s *SequenceSource) Used() int {
	return s.used
}
