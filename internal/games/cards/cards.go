// Package cards models the standard 52-card deck shared by the card games.
package cards

import (
	"errors"
	"fmt"

	"minigames-backend/internal/rng"
)

type Suit string

const (
	Spades   Suit = "spades"
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
)

var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

// Values in ascending rank order with the ace high.
var Values = []string{"2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K", "A"}

type Card struct {
	Value string `json:"value"`
	Suit  Suit   `json:"suit"`
}

func (c Card) String() string { return fmt.Sprintf("%s of %s", c.Value, c.Suit) }

// Rank is 2..14 with the ace high.
func (c Card) Rank() int {
	for i, v := range Values {
		if v == c.Value {
			return i + 2
		}
	}
	return 0
}

// LowRank is 1..13 with the ace low.
func (c Card) LowRank() int {
	if c.Value == "A" {
		return 1
	}
	return c.Rank()
}

func (c Card) Red() bool { return c.Suit == Hearts || c.Suit == Diamonds }

var ErrDeckEmpty = errors.New("cards: deck is empty")

// NewDeck returns decks*52 cards in a fixed order.
func NewDeck(decks int) []Card {
	out := make([]Card, 0, decks*52)
	for d := 0; d < decks; d++ {
		for _, s := range Suits {
			for _, v := range Values {
				out = append(out, Card{Value: v, Suit: s})
			}
		}
	}
	return out
}

func Shuffled(src rng.Source, decks int) []Card {
	d := NewDeck(decks)
	rng.Shuffle(src, d)
	return d
}

// Draw pops the top card off the deck.
func Draw(deck *[]Card) (Card, error) {
	if len(*deck) == 0 {
		return Card{}, ErrDeckEmpty
	}
	c := (*deck)[0]
	*deck = (*deck)[1:]
	return c, nil
}

// DrawN draws n cards or fails without consuming any.
func DrawN(deck *[]Card, n int) ([]Card, error) {
	if len(*deck) < n {
		return nil, ErrDeckEmpty
	}
	out := make([]Card, n)
	copy(out, (*deck)[:n])
	*deck = (*deck)[n:]
	return out, nil
}
