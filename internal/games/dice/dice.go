// Package dice resolves a roll in [0,100) with two decimals against a target.
package dice

import (
	"fmt"
	"math"

	"minigames-backend/internal/models"
	"minigames-backend/internal/rng"
)

type RollType string

const (
	RollUnder RollType = "rollUnder"
	RollOver  RollType = "rollOver"
)

const (
	MinTarget = 2
	MaxTarget = 98
	rtp       = 99.0
)

var underTable, overTable [MaxTarget + 1]float64

func init() {
	for t := MinTarget; t <= MaxTarget; t++ {
		underTable[t] = round4(rtp / float64(t))
		overTable[t] = round4(rtp / float64(100-t))
	}
}

func round4(x float64) float64 { return math.Round(x*10000) / 10000 }

type Result struct {
	Roll       float64  `json:"roll"`
	RollType   RollType `json:"rollType"`
	Target     float64  `json:"target"`
	Won        bool     `json:"won"`
	Multiplier float64  `json:"multiplier"`
}

// Multiplier looks up the payout multiplier for an integer target.
func Multiplier(rt RollType, target float64) (float64, error) {
	t := int(target)
	if float64(t) != target || t < MinTarget || t > MaxTarget {
		return 0, fmt.Errorf("%w: target must be a whole number between %d and %d", models.ErrInvalidBet, MinTarget, MaxTarget)
	}
	switch rt {
	case RollUnder:
		return underTable[t], nil
	case RollOver:
		return overTable[t], nil
	}
	return 0, fmt.Errorf("%w: unknown roll type %q", models.ErrInvalidBet, rt)
}

// Roll draws a value in [0, 99.99] with two decimals.
func Roll(src rng.Source) float64 {
	return float64(src.IntN(10000)) / 100
}

// Wins uses strict comparison: a roll equal to the target always loses.
func Wins(rt RollType, roll, target float64) bool {
	if rt == RollUnder {
		return roll < target
	}
	return roll > target
}

func Play(src rng.Source, rt RollType, target float64) (Result, error) {
	mult, err := Multiplier(rt, target)
	if err != nil {
		return Result{}, err
	}
	roll := Roll(src)
	res := Result{Roll: roll, RollType: rt, Target: target}
	if Wins(rt, roll, target) {
		res.Won = true
		res.Multiplier = mult
	}
	return res, nil
}
