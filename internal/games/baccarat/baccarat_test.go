package baccarat

import (
	"testing"

	"minigames-backend/internal/games/cards"
	"minigames-backend/internal/rng"
)

func hand(values ...string) []cards.Card {
	out := make([]cards.Card, len(values))
	for i, v := range values {
		out[i] = cards.Card{Value: v, Suit: cards.Spades}
	}
	return out
}

// shoe lays cards out in deal order: P1 B1 P2 B2 then third cards.
func shoe(values ...string) []cards.Card { return hand(values...) }

func TestTotal(t *testing.T) {
	if got := Total(hand("K", "9")); got != 9 {
		t.Errorf("K9 = %d", got)
	}
	if got := Total(hand("7", "8", "A")); got != 6 {
		t.Errorf("7 8 A = %d", got)
	}
}

func TestNaturalStands(t *testing.T) {
	s := shoe("8", "2", "K", "3", "5", "5")
	p, b, err := Deal(&s)
	if err != nil {
		t.Fatal(err)
	}
	if len(p) != 2 || len(b) != 2 {
		t.Errorf("natural drew cards: %v %v", p, b)
	}
}

func TestPlayerDrawsBankerTableau(t *testing.T) {
	// player 2+3=5 draws an 8; banker 3 stands against an 8
	s := shoe("2", "Q", "3", "3", "8", "9")
	p, b, _ := Deal(&s)
	if len(p) != 3 || len(b) != 2 {
		t.Errorf("player %v banker %v", p, b)
	}

	// banker 6 draws against a player third card of 7
	s = shoe("A", "4", "4", "2", "7", "5")
	p, b, _ = Deal(&s)
	if len(p) != 3 || len(b) != 3 {
		t.Errorf("player %v banker %v", p, b)
	}
}

func TestPlayerStandsBankerDrawsOnFive(t *testing.T) {
	s := shoe("4", "2", "3", "3", "9")
	p, b, _ := Deal(&s)
	if len(p) != 2 || len(b) != 3 {
		t.Errorf("player %v banker %v", p, b)
	}
}

func TestSettle(t *testing.T) {
	res := Settle(Banker, hand("2", "3"), hand("4", "3"))
	if !res.Won || res.Multiplier != 1.95 || res.Winner != Banker {
		t.Errorf("banker win: %+v", res)
	}
	res = Settle(Player, hand("2", "3"), hand("K", "5"))
	if !res.Push || res.Multiplier != 1 {
		t.Errorf("tie should push player bet: %+v", res)
	}
	res = Settle(Tie, hand("2", "3"), hand("K", "5"))
	if !res.Won || res.Multiplier != 9 {
		t.Errorf("tie bet: %+v", res)
	}
	res = Settle(Tie, hand("2", "3"), hand("K", "6"))
	if res.Won || res.Multiplier != 0 {
		t.Errorf("losing tie bet: %+v", res)
	}
}

func TestPlay(t *testing.T) {
	src := rng.Seeded(21)
	for i := 0; i < 1000; i++ {
		res, err := Play(src, Player)
		if err != nil {
			t.Fatal(err)
		}
		if len(res.PlayerHand) < 2 || len(res.PlayerHand) > 3 || len(res.BankerHand) < 2 || len(res.BankerHand) > 3 {
			t.Fatalf("bad hands %+v", res)
		}
	}
	if _, err := Play(src, "dragon"); err == nil {
		t.Error("unknown side accepted")
	}
}
