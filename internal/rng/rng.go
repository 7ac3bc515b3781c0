// Package rng provides the uniform(0,1) primitive that every sampler and the
// accept/reject test draw from.
//
// A Source is owned by exactly one chain. Nothing in this package is safe for
// concurrent use; give each chain its own Source.
package rng

import "math/rand/v2"

// Source yields uniform variates on the open interval (0, 1).
type Source interface {
	Float64() float64
}

// RNG is a seeded PCG source that counts draws, so a chain can be reproduced
// from (seed, position).
type RNG struct {
	seed uint64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a deterministic RNG from a seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// Float64 returns a uniform variate in (0, 1). Zero is redrawn so callers can
// take ln(u) without guarding.
func (r *RNG) Float64() float64 {
	for {
		r.pos++
		if u := r.src.Float64(); u > 0 {
			return u
		}
	}
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() uint64 {
	return r.seed
}

// Position returns the number of underlying draws made since creation.
func (r *RNG) Position() int64 {
	return r.pos
}

// RestoreRNG creates an RNG and advances it to the given position.
func RestoreRNG(seed uint64, position int64) *RNG {
	r := NewRNG(seed)
	for i := int64(0); i < position; i++ {
		r.src.Float64()
	}
	r.pos = position
	return r
}

// Sequence replays a fixed list of values, cycling when exhausted. It is meant
// for tests that need to force a particular proposal or accept decision.
type Sequence struct {
	vals []float64
	next int
}

// NewSequence returns a Sequence over vals. At least one value is required.
func NewSequence(vals ...float64) *Sequence {
	if len(vals) == 0 {
		vals = []float64{0.5}
	}
	return &Sequence{vals: vals}
}

// Float64 returns the next scripted value.
func (s *Sequence) Float64() float64 {
	v := s.vals[s.next%len(s.vals)]
	s.next++
	return v
}

// Draws returns how many values have been consumed.
func (s *Sequence) Draws() int {
	return s.next
}
