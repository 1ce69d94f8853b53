// Package rng provides the deterministic random stream used by the
// simulator. The generator is mulberry32: 32 bits of state, one additive
// constant and two xorshift-multiply rounds per draw, so the same seed yields
// a bit-identical float sequence on every machine.
package rng

import (
	cryptorand "crypto/rand"
	"encoding/binary"
	"strconv"
	"time"
)

const (
	fnvBasis = 2166136261
	fnvPrime = 16777619
)

// Stream yields floats in [0, 1). A Stream is owned by exactly one caller;
// it is not safe for concurrent use.
type Stream struct {
	state         uint32
	deterministic bool
}

// New returns a stream seeded with the given 32-bit state.
func New(seed uint32) *Stream {
	return &Stream{state: seed, deterministic: true}
}

// NewFromText returns a stream seeded from human-supplied text. Numeric text
// that fits in 32 bits is used directly as the seed, anything else is hashed
// with SeedFromText, so "42" and 42 name the same stream.
func NewFromText(text string) *Stream {
	return New(ParseSeed(text))
}

// NewNondeterministic returns a stream seeded from the operating system's
// entropy source, falling back to the wall clock if that fails. The sequence
// is not reproducible; callers that need replayable runs must supply a seed.
func NewNondeterministic() *Stream {
	var buf [4]byte
	if _, err := cryptorand.Read(buf[:]); err != nil {
		return &Stream{state: uint32(time.Now().UnixNano())}
	}
	return &Stream{state: binary.BigEndian.Uint32(buf[:])}
}

// Next returns the next float in [0, 1).
func (s *Stream) Next() float64 {
	s.state += 0x6D2B79F5
	z := s.state
	z = (z ^ (z >> 15)) * (z | 1)
	z ^= z + (z^(z>>7))*(z|61)
	z ^= z >> 14
	return float64(z) / 4294967296.0
}

// Deterministic reports whether the stream was seeded explicitly and will
// replay the same sequence for the same seed.
func (s *Stream) Deterministic() bool {
	return s.deterministic
}

// SeedFromText hashes arbitrary text to a 32-bit seed using FNV-1a.
func SeedFromText(text string) uint32 {
	h := uint32(fnvBasis)
	for i := 0; i < len(text); i++ {
		h ^= uint32(text[i])
		h *= fnvPrime
	}
	return h
}

// ParseSeed converts seed text to a 32-bit seed, treating decimal numbers as
// literal seeds and hashing everything else.
func ParseSeed(text string) uint32 {
	if n, err := strconv.ParseUint(text, 10, 32); err == nil {
		return uint32(n)
	}
	return SeedFromText(text)
}
