// Package streak runs double-or-nothing games: each win multiplies the
// running multiplier, a loss ends the game, and the player may cash out
// after any win.
package streak

import (
	"fmt"
	"math"

	"minigames-backend/internal/models"
	"minigames-backend/internal/rng"
)

const (
	WinMultiplier = 1.96
	MaxWins       = 20
)

type Streak struct {
	Wins       int     `json:"wins"`
	Multiplier float64 `json:"multiplier"`
	Busted     bool    `json:"busted"`
	CashedOut  bool    `json:"cashedOut"`
}

func New() *Streak { return &Streak{Multiplier: 1} }

func (s *Streak) Over() bool { return s.Busted || s.CashedOut }

func (s *Streak) check() error {
	if s.Over() {
		return models.ErrGameFinished
	}
	return nil
}

func (s *Streak) win() {
	s.Wins++
	s.Multiplier = math.Round(math.Pow(WinMultiplier, float64(s.Wins))*10000) / 10000
	if s.Wins >= MaxWins {
		s.CashedOut = true
	}
}

func (s *Streak) lose() {
	s.Busted = true
	s.Multiplier = 0
}

func (s *Streak) CashOut() (float64, error) {
	if err := s.check(); err != nil {
		return 0, err
	}
	if s.Wins == 0 {
		return 0, fmt.Errorf("%w: win a round before cashing out", models.ErrInvalidMove)
	}
	s.CashedOut = true
	return s.Multiplier, nil
}

type Round struct {
	Choice     string  `json:"choice"`
	Outcome    string  `json:"outcome"`
	Result     string  `json:"result"`
	Multiplier float64 `json:"multiplier"`
	Over       bool    `json:"over"`
}

// Flip calls heads or tails.
func (s *Streak) Flip(src rng.Source, call string) (Round, error) {
	if err := s.check(); err != nil {
		return Round{}, err
	}
	if call != "heads" && call != "tails" {
		return Round{}, fmt.Errorf("%w: call heads or tails", models.ErrInvalidMove)
	}
	side := "heads"
	if src.IntN(2) == 1 {
		side = "tails"
	}
	r := Round{Choice: call, Outcome: side}
	if side == call {
		s.win()
		r.Result = "win"
	} else {
		s.lose()
		r.Result = "lose"
	}
	r.Multiplier, r.Over = s.Multiplier, s.Over()
	return r, nil
}

var hands = []string{"rock", "paper", "scissors"}

// beats[a] is the hand a defeats.
var beats = map[string]string{"rock": "scissors", "paper": "rock", "scissors": "paper"}

// Throw plays one rock-paper-scissors round. A draw leaves the streak unchanged.
func (s *Streak) Throw(src rng.Source, hand string) (Round, error) {
	if err := s.check(); err != nil {
		return Round{}, err
	}
	if _, ok := beats[hand]; !ok {
		return Round{}, fmt.Errorf("%w: throw rock, paper or scissors", models.ErrInvalidMove)
	}
	house := hands[src.IntN(len(hands))]
	r := Round{Choice: hand, Outcome: house}
	switch {
	case house == hand:
		r.Result = "draw"
	case beats[hand] == house:
		s.win()
		r.Result = "win"
	default:
		s.lose()
		r.Result = "lose"
	}
	r.Multiplier, r.Over = s.Multiplier, s.Over()
	return r, nil
}
