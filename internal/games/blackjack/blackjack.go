// Package blackjack plays a single-deck hand with hit, stand, double and one
// split. The dealer draws to 17 and stands on all 17s.
package blackjack

import (
	"fmt"

	"minigames-backend/internal/games/cards"
	"minigames-backend/internal/models"
	"minigames-backend/internal/rng"
)

const (
	DealerStand = 17

	BlackjackPays = 2.5
	WinPays       = 2
	PushPays      = 1
)

// CardValue counts aces as 11 and faces as 10.
func CardValue(c cards.Card) int {
	switch c.Value {
	case "A":
		return 11
	case "K", "Q", "J", "10":
		return 10
	}
	return c.Rank()
}

// CalculateHandValue counts aces as 11 and drops them to 1 one at a time
// while the hand would bust.
func CalculateHandValue(hand []cards.Card) int {
	total, aces := 0, 0
	for _, c := range hand {
		total += CardValue(c)
		if c.Value == "A" {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

func IsBlackjack(hand []cards.Card) bool {
	return len(hand) == 2 && CalculateHandValue(hand) == 21
}

type Hand struct {
	Cards   []cards.Card `json:"cards"`
	Value   int          `json:"value"`
	Stakes  int          `json:"stakes"`
	Doubled bool         `json:"doubled"`
	Done    bool         `json:"done"`
	Busted  bool         `json:"busted"`
	Outcome string       `json:"outcome,omitempty"`
	Pays    float64      `json:"pays"`
}

func (h *Hand) add(c cards.Card) {
	h.Cards = append(h.Cards, c)
	h.Value = CalculateHandValue(h.Cards)
	if h.Value > 21 {
		h.Busted, h.Done = true, true
	} else if h.Value == 21 {
		h.Done = true
	}
}

type Game struct {
	Deck   []cards.Card `json:"deck"`
	Hands  []*Hand      `json:"hands"`
	Dealer []cards.Card `json:"dealer"`
	Active int          `json:"active"`
	Split  bool         `json:"split"`
	Over   bool         `json:"over"`
}

func (g *Game) draw() (cards.Card, error) {
	return cards.Draw(&g.Deck)
}

// Deal shuffles a fresh deck and deals two cards each. Naturals settle at once.
func Deal(src rng.Source) (*Game, error) {
	g := &Game{Deck: cards.Shuffled(src, 1)}
	first, err := cards.DrawN(&g.Deck, 4)
	if err != nil {
		return nil, err
	}
	h := &Hand{Stakes: 1}
	h.add(first[0])
	h.add(first[2])
	g.Hands = []*Hand{h}
	g.Dealer = []cards.Card{first[1], first[3]}

	if IsBlackjack(h.Cards) || IsBlackjack(g.Dealer) {
		h.Done = true
		g.settle()
	}
	return g, nil
}

func (g *Game) hand() (*Hand, error) {
	if g.Over {
		return nil, models.ErrGameFinished
	}
	return g.Hands[g.Active], nil
}

// advance moves to the next unfinished hand or plays out the dealer.
func (g *Game) advance() error {
	for g.Active < len(g.Hands) && g.Hands[g.Active].Done {
		g.Active++
	}
	if g.Active < len(g.Hands) {
		return nil
	}
	g.Active = len(g.Hands) - 1

	live := false
	for _, h := range g.Hands {
		if !h.Busted {
			live = true
		}
	}
	for live && CalculateHandValue(g.Dealer) < DealerStand {
		c, err := g.draw()
		if err != nil {
			return err
		}
		g.Dealer = append(g.Dealer, c)
	}
	g.settle()
	return nil
}

func (g *Game) settle() {
	dealer := CalculateHandValue(g.Dealer)
	dealerBJ := IsBlackjack(g.Dealer)
	for _, h := range g.Hands {
		natural := !g.Split && IsBlackjack(h.Cards)
		switch {
		case h.Busted:
			h.Outcome, h.Pays = "bust", 0
		case natural && dealerBJ:
			h.Outcome, h.Pays = "push", PushPays
		case natural:
			h.Outcome, h.Pays = "blackjack", BlackjackPays
		case dealerBJ:
			h.Outcome, h.Pays = "lose", 0
		case dealer > 21 || h.Value > dealer:
			h.Outcome, h.Pays = "win", WinPays
		case h.Value == dealer:
			h.Outcome, h.Pays = "push", PushPays
		default:
			h.Outcome, h.Pays = "lose", 0
		}
	}
	g.Over = true
}

func (g *Game) Hit() error {
	h, err := g.hand()
	if err != nil {
		return err
	}
	c, err := g.draw()
	if err != nil {
		return err
	}
	h.add(c)
	return g.advance()
}

func (g *Game) Stand() error {
	h, err := g.hand()
	if err != nil {
		return err
	}
	h.Done = true
	return g.advance()
}

// CanDouble reports whether the active hand may double; doubling costs one more stake.
func (g *Game) CanDouble() error {
	h, err := g.hand()
	if err != nil {
		return err
	}
	if len(h.Cards) != 2 || h.Doubled {
		return fmt.Errorf("%w: double only on the first two cards", models.ErrInvalidMove)
	}
	return nil
}

func (g *Game) Double() error {
	if err := g.CanDouble(); err != nil {
		return err
	}
	h := g.Hands[g.Active]
	c, err := g.draw()
	if err != nil {
		return err
	}
	h.Doubled = true
	h.Stakes *= 2
	h.add(c)
	h.Done = true
	return g.advance()
}

// CanSplit reports whether the hand is a pair of equal value and no split happened yet.
func (g *Game) CanSplit() error {
	h, err := g.hand()
	if err != nil {
		return err
	}
	if g.Split || len(h.Cards) != 2 || CardValue(h.Cards[0]) != CardValue(h.Cards[1]) {
		return fmt.Errorf("%w: split needs a pair on the first two cards", models.ErrInvalidMove)
	}
	return nil
}

// SplitHand plays each card as its own hand. Split aces take one card each and stand.
func (g *Game) SplitHand() error {
	if err := g.CanSplit(); err != nil {
		return err
	}
	h := g.Hands[0]
	aces := h.Cards[0].Value == "A"
	a := &Hand{Stakes: 1}
	b := &Hand{Stakes: 1}
	a.add(h.Cards[0])
	b.add(h.Cards[1])
	for _, sh := range []*Hand{a, b} {
		c, err := g.draw()
		if err != nil {
			return err
		}
		sh.add(c)
		if aces {
			sh.Done = true
		}
	}
	g.Hands = []*Hand{a, b}
	g.Split = true
	g.Active = 0
	return g.advance()
}

// Stakes is the number of base bets committed across all hands.
func (g *Game) Stakes() int {
	n := 0
	for _, h := range g.Hands {
		n += h.Stakes
	}
	return n
}

// Return is the settled payout in base bets.
func (g *Game) Return() float64 {
	r := 0.0
	for _, h := range g.Hands {
		r += float64(h.Stakes) * h.Pays
	}
	return r
}

// DealerView hides the hole card while the hand is live.
func (g *Game) DealerView() []cards.Card {
	if g.Over {
		return g.Dealer
	}
	return g.Dealer[:1]
}
