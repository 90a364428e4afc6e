// Package roulette implements a single-zero European wheel with inside and
// outside bets settled against one spin.
package roulette

import (
	"fmt"

	"minigames-backend/internal/models"
	"minigames-backend/internal/rng"
)

type BetKind string

const (
	Straight BetKind = "straight"
	Red      BetKind = "red"
	Black    BetKind = "black"
	Even     BetKind = "even"
	Odd      BetKind = "odd"
	Low      BetKind = "low"
	High     BetKind = "high"
	Dozen    BetKind = "dozen"
	Column   BetKind = "column"
)

// Multipliers include the returned stake.
var Multipliers = map[BetKind]float64{
	Straight: 36,
	Red:      2,
	Black:    2,
	Even:     2,
	Odd:      2,
	Low:      2,
	High:     2,
	Dozen:    3,
	Column:   3,
}

var redNumbers = map[int]bool{
	1: true, 3: true, 5: true, 7: true, 9: true, 12: true, 14: true, 16: true, 18: true,
	19: true, 21: true, 23: true, 25: true, 27: true, 30: true, 32: true, 34: true, 36: true,
}

func IsRed(n int) bool { return redNumbers[n] }

// Bet is one chip placement. Number is the pocket for straight bets and
// 1..3 for dozen and column bets. Amount is in minor units.
type Bet struct {
	Kind   BetKind `json:"type"`
	Number int     `json:"value"`
	Amount int64   `json:"-"`
}

type BetResult struct {
	Bet
	Won    bool  `json:"won"`
	Payout int64 `json:"-"`
}

type Result struct {
	Number int         `json:"number"`
	Color  string      `json:"color"`
	Bets   []BetResult `json:"bets"`
	Stake  int64       `json:"-"`
	Payout int64       `json:"-"`
}

func Color(n int) string {
	switch {
	case n == 0:
		return "green"
	case IsRed(n):
		return "red"
	}
	return "black"
}

func (b Bet) Validate() error {
	if b.Amount <= 0 {
		return fmt.Errorf("%w: bet amount must be positive", models.ErrInvalidBet)
	}
	switch b.Kind {
	case Straight:
		if b.Number < 0 || b.Number > 36 {
			return fmt.Errorf("%w: straight bet on %d", models.ErrInvalidBet, b.Number)
		}
	case Dozen, Column:
		if b.Number < 1 || b.Number > 3 {
			return fmt.Errorf("%w: %s must be 1, 2 or 3", models.ErrInvalidBet, b.Kind)
		}
	case Red, Black, Even, Odd, Low, High:
	default:
		return fmt.Errorf("%w: unknown bet type %q", models.ErrInvalidBet, b.Kind)
	}
	return nil
}

// Covers reports whether pocket n wins bet b. Zero only wins straight bets on 0.
func (b Bet) Covers(n int) bool {
	if b.Kind == Straight {
		return b.Number == n
	}
	if n == 0 {
		return false
	}
	switch b.Kind {
	case Red:
		return IsRed(n)
	case Black:
		return !IsRed(n)
	case Even:
		return n%2 == 0
	case Odd:
		return n%2 == 1
	case Low:
		return n <= 18
	case High:
		return n >= 19
	case Dozen:
		return (n-1)/12+1 == b.Number
	case Column:
		return (n-1)%3+1 == b.Number
	}
	return false
}

func Spin(src rng.Source) int { return src.IntN(37) }

// Settle resolves every bet against pocket n.
func Settle(n int, bets []Bet) Result {
	res := Result{Number: n, Color: Color(n), Bets: make([]BetResult, 0, len(bets))}
	for _, b := range bets {
		br := BetResult{Bet: b}
		res.Stake += b.Amount
		if b.Covers(n) {
			br.Won = true
			br.Payout = models.PayoutMinor(b.Amount, Multipliers[b.Kind])
			res.Payout += br.Payout
		}
		res.Bets = append(res.Bets, br)
	}
	return res
}

func Validate(bets []Bet) error {
	if len(bets) == 0 {
		return fmt.Errorf("%w: no bets placed", models.ErrInvalidBet)
	}
	for _, b := range bets {
		if err := b.Validate(); err != nil {
			return err
		}
	}
	return nil
}
