// Package teenpatti deals three-card hands to the player and the dealer and
// compares them by Teen Patti category.
package teenpatti

import (
	"slices"

	"minigames-backend/internal/games/cards"
	"minigames-backend/internal/rng"
)

type Category int

const (
	HighCard Category = iota
	Pair
	Color
	Sequence
	PureSequence
	Trail
)

var categoryNames = [...]string{"high card", "pair", "color", "sequence", "pure sequence", "trail"}

func (c Category) String() string { return categoryNames[c] }

const WinMultiplier = 1.95

// Rank orders hands: compare Category first, then Kickers lexicographically.
type Rank struct {
	Category Category `json:"category"`
	Name     string   `json:"name"`
	Kickers  []int    `json:"-"`
}

func Evaluate(hand []cards.Card) Rank {
	ranks := make([]int, len(hand))
	for i, c := range hand {
		ranks[i] = c.Rank()
	}
	slices.Sort(ranks)
	slices.Reverse(ranks)

	flush := hand[0].Suit == hand[1].Suit && hand[1].Suit == hand[2].Suit
	seq, top := sequence(ranks)

	r := Rank{}
	switch {
	case ranks[0] == ranks[2]:
		r.Category, r.Kickers = Trail, []int{ranks[0]}
	case seq && flush:
		r.Category, r.Kickers = PureSequence, []int{top}
	case seq:
		r.Category, r.Kickers = Sequence, []int{top}
	case flush:
		r.Category, r.Kickers = Color, ranks
	case ranks[0] == ranks[1]:
		r.Category, r.Kickers = Pair, []int{ranks[0], ranks[2]}
	case ranks[1] == ranks[2]:
		r.Category, r.Kickers = Pair, []int{ranks[1], ranks[0]}
	default:
		r.Category, r.Kickers = HighCard, ranks
	}
	r.Name = r.Category.String()
	return r
}

// sequence expects ranks sorted descending. A-2-3 counts as the lowest run.
func sequence(r []int) (bool, int) {
	if r[0] == r[1]+1 && r[1] == r[2]+1 {
		return true, r[0]
	}
	if r[0] == 14 && r[1] == 3 && r[2] == 2 {
		return true, 3
	}
	return false, 0
}

// Compare returns 1 if a beats b, -1 if b beats a and 0 on a tie.
func Compare(a, b Rank) int {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}
		return -1
	}
	return slices.Compare(a.Kickers, b.Kickers)
}

type Result struct {
	PlayerHand []cards.Card `json:"playerHand"`
	DealerHand []cards.Card `json:"dealerHand"`
	PlayerRank Rank         `json:"playerRank"`
	DealerRank Rank         `json:"dealerRank"`
	Outcome    string       `json:"outcome"`
	Multiplier float64      `json:"multiplier"`
}

func Settle(player, dealer []cards.Card) Result {
	res := Result{
		PlayerHand: player,
		DealerHand: dealer,
		PlayerRank: Evaluate(player),
		DealerRank: Evaluate(dealer),
	}
	switch Compare(res.PlayerRank, res.DealerRank) {
	case 1:
		res.Outcome, res.Multiplier = "win", WinMultiplier
	case 0:
		res.Outcome, res.Multiplier = "push", 1
	default:
		res.Outcome = "lose"
	}
	return res
}

func Play(src rng.Source) (Result, error) {
	deck := cards.Shuffled(src, 1)
	dealt, err := cards.DrawN(&deck, 6)
	if err != nil {
		return Result{}, err
	}
	return Settle(
		[]cards.Card{dealt[0], dealt[2], dealt[4]},
		[]cards.Card{dealt[1], dealt[3], dealt[5]},
	), nil
}
