package core

import (
	"math"
	"math/rand"
)

// Sequence produces successive 1D samples in [0, 1)
type Sequence interface {
	Next() float64
}

// Sequence2D produces successive 2D samples in [0, 1)²
type Sequence2D interface {
	Next2D() Vec2
}

// VanDerCorput is the radical-inverse low-discrepancy sequence in a given base.
// The incremental update avoids re-deriving the digit reversal on every call.
// See: https://en.wikipedia.org/wiki/Van_der_Corput_sequence
type VanDerCorput struct {
	base   uint64
	offset float64
	n, d   uint64
}

// NewVanDerCorput creates a Van der Corput sequence in the given base (>= 2)
func NewVanDerCorput(base uint64) *VanDerCorput {
	if base < 2 {
		panic("van der Corput base must be at least 2")
	}
	return &VanDerCorput{base: base, d: 1}
}

// NewOffsetVanDerCorput creates a Van der Corput sequence whose outputs are
// shifted by the given offset, modulo 1
func NewOffsetVanDerCorput(base uint64, offset float64) *VanDerCorput {
	sequence := NewVanDerCorput(base)
	sequence.offset = offset
	return sequence
}

// Next returns the next sample of the sequence
func (s *VanDerCorput) Next() float64 {
	x := s.d - s.n
	if x == 1 {
		s.n = 1
		s.d *= s.base
	} else {
		y := s.d / s.base
		for x <= y {
			y /= s.base
		}
		s.n = (s.base+1)*y - x
	}
	return math.Mod(float64(s.n)/float64(s.d)+s.offset, 1.0)
}

// Halton2 is a 2D low-discrepancy sequence built from two Van der Corput
// sequences with distinct (coprime) bases.
// See: https://en.wikipedia.org/wiki/Halton_sequence
type Halton2 struct {
	x, y *VanDerCorput
}

// NewHalton2 creates a Halton sequence from two distinct bases
func NewHalton2(base1, base2 uint64) *Halton2 {
	if base1 == base2 {
		panic("halton bases must differ")
	}
	return &Halton2{x: NewVanDerCorput(base1), y: NewVanDerCorput(base2)}
}

// NewOffsetHalton2 creates a Halton sequence shifted by the given 2D offset, modulo 1
func NewOffsetHalton2(base1, base2 uint64, offset Vec2) *Halton2 {
	if base1 == base2 {
		panic("halton bases must differ")
	}
	return &Halton2{
		x: NewOffsetVanDerCorput(base1, offset.X),
		y: NewOffsetVanDerCorput(base2, offset.Y),
	}
}

// Next2D returns the next 2D sample of the sequence
func (s *Halton2) Next2D() Vec2 {
	return Vec2{X: s.x.Next(), Y: s.y.Next()}
}

// Random adapts a PRNG to the sequence interfaces
type Random struct {
	rng *rand.Rand
}

// NewRandom wraps a PRNG as a uniform random sequence
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// Next returns the next uniform sample in [0, 1)
func (s *Random) Next() float64 {
	return s.rng.Float64()
}

// Next2D returns the next uniform 2D sample in [0, 1)²
func (s *Random) Next2D() Vec2 {
	return Vec2{X: s.rng.Float64(), Y: s.rng.Float64()}
}
