// Package keno draws 10 of 40 numbers and pays by how many of the player's
// picks were hit.
package keno

import (
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"minigames-backend/internal/models"
	"minigames-backend/internal/rng"
)

const (
	Numbers  = 40
	Drawn    = 10
	MaxPicks = 10
)

// Payouts[picks][hits]
var Payouts = map[int][]float64{
	1:  {0, 3.96},
	2:  {0, 1.9, 4.5},
	3:  {0, 1, 3.1, 10.4},
	4:  {0, 0.8, 1.8, 5, 22.5},
	5:  {0, 0.25, 1.4, 4.1, 16.5, 36},
	6:  {0, 0, 1, 3.68, 7, 16.5, 40},
	7:  {0, 0, 0.47, 3, 4.5, 14, 31, 60},
	8:  {0, 0, 0, 2.2, 4, 13, 22, 55, 70},
	9:  {0, 0, 0, 1.55, 3, 8, 15, 44, 60, 85},
	10: {0, 0, 0, 1.4, 2.25, 4.5, 8, 17, 50, 80, 100},
}

type Result struct {
	Picks      []int   `json:"picks"`
	Drawn      []int   `json:"drawn"`
	Hits       []int   `json:"hits"`
	Multiplier float64 `json:"multiplier"`
}

func ValidatePicks(picks []int) (mapset.Set[int], error) {
	if len(picks) < 1 || len(picks) > MaxPicks {
		return nil, fmt.Errorf("%w: pick between 1 and %d numbers", models.ErrInvalidBet, MaxPicks)
	}
	set := mapset.NewThreadUnsafeSet[int]()
	for _, p := range picks {
		if p < 1 || p > Numbers {
			return nil, fmt.Errorf("%w: number %d out of range", models.ErrInvalidBet, p)
		}
		if !set.Add(p) {
			return nil, fmt.Errorf("%w: number %d picked twice", models.ErrInvalidBet, p)
		}
	}
	return set, nil
}

// Draw shuffles 1..40 and returns the first ten.
func Draw(src rng.Source) []int {
	pool := make([]int, Numbers)
	for i := range pool {
		pool[i] = i + 1
	}
	rng.Shuffle(src, pool)
	return pool[:Drawn:Drawn]
}

func Play(src rng.Source, picks []int) (Result, error) {
	set, err := ValidatePicks(picks)
	if err != nil {
		return Result{}, err
	}
	drawn := Draw(src)
	return Settle(set, drawn), nil
}

func Settle(picks mapset.Set[int], drawn []int) Result {
	hits := picks.Intersect(mapset.NewThreadUnsafeSet(drawn...)).ToSlice()
	slices.Sort(hits)
	p := picks.ToSlice()
	slices.Sort(p)
	return Result{
		Picks:      p,
		Drawn:      drawn,
		Hits:       hits,
		Multiplier: Payouts[len(p)][len(hits)],
	}
}
