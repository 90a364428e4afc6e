package teenpatti

import (
	"testing"

	"minigames-backend/internal/games/cards"
)

func c(v string, s cards.Suit) cards.Card { return cards.Card{Value: v, Suit: s} }

const (
	S = cards.Spades
	H = cards.Hearts
	D = cards.Diamonds
)

func TestEvaluateCategories(t *testing.T) {
	tests := []struct {
		hand []cards.Card
		want Category
	}{
		{[]cards.Card{c("7", S), c("7", H), c("7", D)}, Trail},
		{[]cards.Card{c("Q", H), c("K", H), c("A", H)}, PureSequence},
		{[]cards.Card{c("4", S), c("5", H), c("6", D)}, Sequence},
		{[]cards.Card{c("A", S), c("2", H), c("3", D)}, Sequence},
		{[]cards.Card{c("2", H), c("9", H), c("J", H)}, Color},
		{[]cards.Card{c("9", S), c("9", H), c("2", D)}, Pair},
		{[]cards.Card{c("2", S), c("9", H), c("J", D)}, HighCard},
		{[]cards.Card{c("K", S), c("A", H), c("2", D)}, HighCard},
	}
	for _, tt := range tests {
		if got := Evaluate(tt.hand).Category; got != tt.want {
			t.Errorf("%v = %s, want %s", tt.hand, got, tt.want)
		}
	}
}

func TestCompare(t *testing.T) {
	low := Evaluate([]cards.Card{c("A", S), c("2", H), c("3", D)})
	mid := Evaluate([]cards.Card{c("2", S), c("3", H), c("4", D)})
	high := Evaluate([]cards.Card{c("Q", S), c("K", H), c("A", D)})
	if Compare(mid, low) != 1 || Compare(high, mid) != 1 {
		t.Error("sequence ordering wrong")
	}

	pairKings := Evaluate([]cards.Card{c("K", S), c("K", H), c("2", D)})
	pairKingsAce := Evaluate([]cards.Card{c("K", D), c("K", S), c("A", H)})
	if Compare(pairKingsAce, pairKings) != 1 {
		t.Error("pair kicker ignored")
	}

	a := Evaluate([]cards.Card{c("2", S), c("9", H), c("J", D)})
	b := Evaluate([]cards.Card{c("2", H), c("9", D), c("J", S)})
	if Compare(a, b) != 0 {
		t.Error("identical high cards should tie")
	}
}

func TestSettle(t *testing.T) {
	res := Settle(
		[]cards.Card{c("7", S), c("7", H), c("7", D)},
		[]cards.Card{c("Q", H), c("K", H), c("A", H)},
	)
	if res.Outcome != "win" || res.Multiplier != WinMultiplier {
		t.Errorf("trail vs pure sequence: %+v", res)
	}
	res = Settle(
		[]cards.Card{c("2", S), c("9", H), c("J", D)},
		[]cards.Card{c("2", H), c("9", D), c("J", S)},
	)
	if res.Outcome != "push" || res.Multiplier != 1 {
		t.Errorf("tie: %+v", res)
	}
}
