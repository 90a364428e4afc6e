// Package limbo draws a crash-style result multiplier and pays the chosen
// target when the result reaches it.
package limbo

import (
	"fmt"
	"math"

	"minigames-backend/internal/models"
	"minigames-backend/internal/rng"
)

const (
	MinTarget = 1.01
	MaxTarget = 1_000_000
	houseEdge = 0.01
)

type Result struct {
	Target     float64 `json:"target"`
	Result     float64 `json:"result"`
	Won        bool    `json:"won"`
	Multiplier float64 `json:"multiplier"`
	WinChance  float64 `json:"winChance"`
}

// Point maps r in [0,1) to a result multiplier with a 1% house edge.
func Point(r float64) float64 {
	p := math.Floor(100*(1-houseEdge)/(1-r)) / 100
	if p < 1 {
		return 1
	}
	if p > MaxTarget {
		return MaxTarget
	}
	return p
}

// WinChance is the probability in percent of reaching target.
func WinChance(target float64) float64 {
	return 100 * (1 - houseEdge) / target
}

func Play(src rng.Source, target float64) (Result, error) {
	target = math.Round(target*100) / 100
	if target < MinTarget || target > MaxTarget {
		return Result{}, fmt.Errorf("%w: target must be between %.2f and %d", models.ErrInvalidBet, MinTarget, MaxTarget)
	}
	point := Point(src.Float64())
	res := Result{Target: target, Result: point, WinChance: WinChance(target)}
	if point >= target {
		res.Won = true
		res.Multiplier = target
	}
	return res, nil
}
