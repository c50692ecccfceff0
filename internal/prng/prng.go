// Package prng implements Mulberry32, a tiny seeded pseudo-random number
// generator. It produces a repeatable sequence of float64 values in [0,1)
// with distribution good enough for visual noise. Not for cryptographic use.
package prng

// fallbackSeed replaces a zero seed so the mixing rounds never start from
// all-zero state.
const fallbackSeed uint32 = 0x9E3779B9

// Source is a Mulberry32 generator. The zero value is not usable; construct
// with New.
type Source struct {
	state uint32
}

// New returns a generator seeded with seed. A zero seed is substituted with
// a fixed non-zero constant, so New(0) is valid and deterministic.
func New(seed uint32) *Source {
	if seed == 0 {
		seed = fallbackSeed
	}
	return &Source{state: seed}
}

// Float64 advances the generator and returns the next value in [0,1).
func (s *Source) Float64() float64 {
	s.state += 0x6D2B79F5
	t := s.state
	t = (t ^ (t >> 15)) * (t | 1)
	t ^= t + (t^(t>>7))*(t|61)
	return float64(t^(t>>14)) / 4294967296.0
}

// IntN returns a value in [0,n). It panics if n <= 0.
func (s *Source) IntN(n int) int {
	if n <= 0 {
		panic("prng: IntN with non-positive n")
	}
	return int(s.Float64() * float64(n))
}

// Range returns a value in [min,max).
func (s *Source) Range(min, max float64) float64 {
	return min + s.Float64()*(max-min)
}
