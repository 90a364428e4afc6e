// Package baccarat deals one punto banco coup from a six-deck shoe.
package baccarat

import (
	"fmt"

	"minigames-backend/internal/games/cards"
	"minigames-backend/internal/models"
	"minigames-backend/internal/rng"
)

const Decks = 6

type Side string

const (
	Player Side = "player"
	Banker Side = "banker"
	Tie    Side = "tie"
)

// Multipliers on a winning side, stake included.
var Multipliers = map[Side]float64{
	Player: 2,
	Banker: 1.95,
	Tie:    9,
}

type Result struct {
	PlayerHand  []cards.Card `json:"playerHand"`
	BankerHand  []cards.Card `json:"bankerHand"`
	PlayerTotal int          `json:"playerTotal"`
	BankerTotal int          `json:"bankerTotal"`
	Winner      Side         `json:"winner"`
	Bet         Side         `json:"bet"`
	Won         bool         `json:"won"`
	Push        bool         `json:"push"`
	Multiplier  float64      `json:"multiplier"`
}

func PointValue(c cards.Card) int {
	switch c.Value {
	case "A":
		return 1
	case "10", "J", "Q", "K":
		return 0
	}
	return c.Rank()
}

func Total(hand []cards.Card) int {
	t := 0
	for _, c := range hand {
		t += PointValue(c)
	}
	return t % 10
}

// bankerDraws applies the tableau when the player took a third card.
func bankerDraws(banker, playerThird int) bool {
	switch banker {
	case 0, 1, 2:
		return true
	case 3:
		return playerThird != 8
	case 4:
		return playerThird >= 2 && playerThird <= 7
	case 5:
		return playerThird >= 4 && playerThird <= 7
	case 6:
		return playerThird == 6 || playerThird == 7
	}
	return false
}

// Deal plays one coup from the top of shoe.
func Deal(shoe *[]cards.Card) (player, banker []cards.Card, err error) {
	first, err := cards.DrawN(shoe, 4)
	if err != nil {
		return nil, nil, err
	}
	player = []cards.Card{first[0], first[2]}
	banker = []cards.Card{first[1], first[3]}

	pt, bt := Total(player), Total(banker)
	if pt >= 8 || bt >= 8 {
		return player, banker, nil
	}

	if pt <= 5 {
		c, err := cards.Draw(shoe)
		if err != nil {
			return nil, nil, err
		}
		player = append(player, c)
		if bankerDraws(bt, PointValue(c)) {
			if c, err = cards.Draw(shoe); err != nil {
				return nil, nil, err
			}
			banker = append(banker, c)
		}
		return player, banker, nil
	}

	if bt <= 5 {
		c, err := cards.Draw(shoe)
		if err != nil {
			return nil, nil, err
		}
		banker = append(banker, c)
	}
	return player, banker, nil
}

func Settle(bet Side, player, banker []cards.Card) Result {
	res := Result{
		PlayerHand:  player,
		BankerHand:  banker,
		PlayerTotal: Total(player),
		BankerTotal: Total(banker),
		Bet:         bet,
	}
	switch {
	case res.PlayerTotal > res.BankerTotal:
		res.Winner = Player
	case res.BankerTotal > res.PlayerTotal:
		res.Winner = Banker
	default:
		res.Winner = Tie
	}
	switch {
	case bet == res.Winner:
		res.Won = true
		res.Multiplier = Multipliers[bet]
	case res.Winner == Tie:
		res.Push = true
		res.Multiplier = 1
	}
	return res
}

func Play(src rng.Source, bet Side) (Result, error) {
	if _, ok := Multipliers[bet]; !ok {
		return Result{}, fmt.Errorf("%w: bet must be player, banker or tie", models.ErrInvalidBet)
	}
	shoe := cards.Shuffled(src, Decks)
	player, banker, err := Deal(&shoe)
	if err != nil {
		return Result{}, err
	}
	return Settle(bet, player, banker), nil
}
