// Package rngtest provides scripted rng.Source implementations for tests.
package rngtest

import "fmt"

// Sequence replays fixed draws. Floats feeds Float64 and Ints feeds IntN; an
// IntN value is reduced modulo n. Running out of values panics.
type Sequence struct {
	Floats []float64
	Ints   []int

	fi, ii int
}

func Floats(v ...float64) *Sequence { return &Sequence{Floats: v} }

func Ints(v ...int) *Sequence { return &Sequence{Ints: v} }

func (s *Sequence) Float64() float64 {
	if s.fi >= len(s.Floats) {
		panic(fmt.Sprintf("rngtest: Float64 called %d times, only %d scripted", s.fi+1, len(s.Floats)))
	}
	v := s.Floats[s.fi]
	s.fi++
	return v
}

func (s *Sequence) IntN(n int) int {
	if s.ii >= len(s.Ints) {
		panic(fmt.Sprintf("rngtest: IntN called %d times, only %d scripted", s.ii+1, len(s.Ints)))
	}
	v := s.Ints[s.ii] % n
	s.ii++
	return v
}

// Zero always draws 0: IntN returns 0 and Float64 returns 0.
type Zero struct{}

func (Zero) Float64() float64 { return 0 }
func (Zero) IntN(int) int     { return 0 }
