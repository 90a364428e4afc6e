// Package rng holds the draw primitives every game builds on: uniform draws,
// Fisher-Yates shuffles, sampling without replacement and weighted picks.
package rng

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"math/big"
	"math/rand/v2"
)

// Source is the randomness a game consumes. Float64 returns a value in [0,1),
// IntN a value in [0,n).
type Source interface {
	Float64() float64
	IntN(n int) int
}

var ErrEmptyTable = errors.New("rng: no selectable entries")

type mathSource struct {
	r *rand.Rand
}

func (s mathSource) Float64() float64 { return s.r.Float64() }
func (s mathSource) IntN(n int) int   { return s.r.IntN(n) }

type globalSource struct{}

func (globalSource) Float64() float64 { return rand.Float64() }
func (globalSource) IntN(n int) int   { return rand.IntN(n) }

// Default is the process-wide non-cryptographic generator. The simulator and
// tests use it; live games draw from Crypto.
func Default() Source { return globalSource{} }

// Seeded returns a reproducible generator. Only simulations and tests use it.
func Seeded(seed uint64) Source {
	return mathSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

type cryptoSource struct{}

func (cryptoSource) Float64() float64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return rand.Float64()
	}
	return float64(binary.BigEndian.Uint64(b[:])>>11) / (1 << 53)
}

func (cryptoSource) IntN(n int) int {
	if n <= 0 {
		panic("rng: invalid argument to IntN")
	}
	v, err := crand.Int(crand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return rand.IntN(n)
	}
	return int(v.Int64())
}

// Crypto draws from crypto/rand. Every live game outcome and visual path pick
// uses it.
func Crypto() Source { return cryptoSource{} }

// Uniform returns a value in [lo,hi).
func Uniform(src Source, lo, hi float64) float64 {
	return lo + src.Float64()*(hi-lo)
}

// Chance reports true with probability p.
func Chance(src Source, p float64) bool {
	return src.Float64() < p
}

// Shuffle permutes s in place (Fisher-Yates).
func Shuffle[T any](src Source, s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

// Sample returns k distinct indices from [0,n) in draw order.
func Sample(src Source, n, k int) []int {
	if k > n {
		k = n
	}
	if k <= 0 {
		return []int{}
	}
	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	// partial Fisher-Yates from the front
	for i := 0; i < k; i++ {
		j := i + src.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k:k]
}

type Weighted[T any] struct {
	Value  T
	Weight float64
}

// Pick draws u in [0,total) and subtracts weights until the remainder is
// non-positive. Entries with weight <= 0 are never selected. When float drift
// leaves a remainder after the last entry, the last selectable entry wins.
func Pick[T any](src Source, items []Weighted[T]) (T, error) {
	i, err := PickIndex(src, items)
	if err != nil {
		var zero T
		return zero, err
	}
	return items[i].Value, nil
}

func PickIndex[T any](src Source, items []Weighted[T]) (int, error) {
	total := 0.0
	last := -1
	for i, it := range items {
		if it.Weight > 0 {
			total += it.Weight
			last = i
		}
	}
	if last < 0 {
		return -1, ErrEmptyTable
	}
	u := src.Float64() * total
	for i, it := range items {
		if it.Weight <= 0 {
			continue
		}
		u -= it.Weight
		if u <= 0 {
			return i, nil
		}
	}
	return last, nil
}

// MustPick is Pick for static tables known to have a positive weight.
func MustPick[T any](src Source, items []Weighted[T]) T {
	v, err := Pick(src, items)
	if err != nil {
		panic(err)
	}
	return v
}
