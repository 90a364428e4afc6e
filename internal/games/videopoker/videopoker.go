// Package videopoker implements Jacks or Better with the 9/6 pay table.
package videopoker

import (
	"fmt"
	"slices"

	"minigames-backend/internal/games/cards"
	"minigames-backend/internal/models"
	"minigames-backend/internal/rng"
)

type HandRank string

const (
	Nothing       HandRank = "nothing"
	JacksOrBetter HandRank = "jacks_or_better"
	TwoPair       HandRank = "two_pair"
	ThreeOfAKind  HandRank = "three_of_a_kind"
	Straight      HandRank = "straight"
	Flush         HandRank = "flush"
	FullHouse     HandRank = "full_house"
	FourOfAKind   HandRank = "four_of_a_kind"
	StraightFlush HandRank = "straight_flush"
	RoyalFlush    HandRank = "royal_flush"
)

// Pays per unit bet, stake included.
var Pays = map[HandRank]float64{
	RoyalFlush:    800,
	StraightFlush: 50,
	FourOfAKind:   25,
	FullHouse:     9,
	Flush:         6,
	Straight:      4,
	ThreeOfAKind:  3,
	TwoPair:       2,
	JacksOrBetter: 1,
	Nothing:       0,
}

const HandSize = 5

func Evaluate(hand []cards.Card) HandRank {
	counts := map[int]int{}
	ranks := make([]int, 0, len(hand))
	flush := true
	for i, c := range hand {
		counts[c.Rank()]++
		ranks = append(ranks, c.Rank())
		if i > 0 && c.Suit != hand[0].Suit {
			flush = false
		}
	}
	slices.Sort(ranks)

	straight := false
	if len(counts) == HandSize {
		switch {
		case ranks[4]-ranks[0] == 4:
			straight = true
		case slices.Equal(ranks, []int{2, 3, 4, 5, 14}):
			straight = true
		}
	}

	var groups []int
	highPair := false
	for r, n := range counts {
		groups = append(groups, n)
		if n == 2 && r >= 11 {
			highPair = true
		}
	}
	slices.Sort(groups)
	slices.Reverse(groups)

	switch {
	case straight && flush && ranks[0] == 10:
		return RoyalFlush
	case straight && flush:
		return StraightFlush
	case groups[0] == 4:
		return FourOfAKind
	case groups[0] == 3 && groups[1] == 2:
		return FullHouse
	case flush:
		return Flush
	case straight:
		return Straight
	case groups[0] == 3:
		return ThreeOfAKind
	case groups[0] == 2 && groups[1] == 2:
		return TwoPair
	case highPair:
		return JacksOrBetter
	}
	return Nothing
}

type Game struct {
	Deck  []cards.Card `json:"deck"`
	Hand  []cards.Card `json:"hand"`
	Drawn bool         `json:"drawn"`
}

type Result struct {
	Hand       []cards.Card `json:"hand"`
	Rank       HandRank     `json:"rank"`
	Multiplier float64      `json:"multiplier"`
}

func Deal(src rng.Source) (*Game, error) {
	deck := cards.Shuffled(src, 1)
	hand, err := cards.DrawN(&deck, HandSize)
	if err != nil {
		return nil, err
	}
	return &Game{Deck: deck, Hand: hand}, nil
}

// Draw replaces every card whose position is not in holds.
func (g *Game) Draw(holds []int) (Result, error) {
	if g.Drawn {
		return Result{}, models.ErrGameFinished
	}
	held := make([]bool, HandSize)
	for _, i := range holds {
		if i < 0 || i >= HandSize {
			return Result{}, fmt.Errorf("%w: hold position %d", models.ErrInvalidMove, i)
		}
		held[i] = true
	}
	for i := range g.Hand {
		if held[i] {
			continue
		}
		c, err := cards.Draw(&g.Deck)
		if err != nil {
			return Result{}, err
		}
		g.Hand[i] = c
	}
	g.Drawn = true
	rank := Evaluate(g.Hand)
	return Result{Hand: g.Hand, Rank: rank, Multiplier: Pays[rank]}, nil
}
