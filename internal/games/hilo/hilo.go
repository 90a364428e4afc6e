// Package hilo plays higher-or-lower against a shuffled deck. Each correct
// guess multiplies the running total by 0.99/p, where p is the chance of the
// guess being right given the cards still in the deck.
package hilo

import (
	"fmt"
	"math"

	"minigames-backend/internal/games/cards"
	"minigames-backend/internal/models"
	"minigames-backend/internal/rng"
)

type Guess string

const (
	Higher Guess = "higher"
	Lower  Guess = "lower"
	Skip   Guess = "skip"
)

const (
	houseEdge = 0.01
	MaxSkips  = 52
)

type Game struct {
	Deck       []cards.Card `json:"deck"`
	Current    cards.Card   `json:"current"`
	History    []cards.Card `json:"history"`
	Correct    int          `json:"correct"`
	Skips      int          `json:"skips"`
	Multiplier float64      `json:"multiplier"`
	Busted     bool         `json:"busted"`
	CashedOut  bool         `json:"cashedOut"`
}

func New(src rng.Source) *Game {
	g := &Game{Deck: cards.Shuffled(src, 1), Multiplier: 1}
	g.Current = g.next(src)
	g.History = []cards.Card{g.Current}
	return g
}

// Chance is the probability that the next card's rank is >= (higher) or <=
// (lower) the current rank, aces low, counted over the cards left in the deck.
func (g *Game) Chance(guess Guess) float64 {
	if len(g.Deck) == 0 || (guess != Higher && guess != Lower) {
		return 0
	}
	r := g.Current.LowRank()
	hits := 0
	for _, c := range g.Deck {
		if (guess == Higher && c.LowRank() >= r) || (guess == Lower && c.LowRank() <= r) {
			hits++
		}
	}
	return float64(hits) / float64(len(g.Deck))
}

func (g *Game) Over() bool { return g.Busted || g.CashedOut }

type Step struct {
	Guess      Guess      `json:"guess"`
	Card       cards.Card `json:"card"`
	Correct    bool       `json:"correct"`
	Multiplier float64    `json:"multiplier"`
	Over       bool       `json:"over"`
}

// next draws the top card. An emptied deck is replaced at once so the next
// guess is always priced against real cards.
func (g *Game) next(src rng.Source) cards.Card {
	if len(g.Deck) == 0 {
		g.Deck = cards.Shuffled(src, 1)
	}
	c, _ := cards.Draw(&g.Deck)
	if len(g.Deck) == 0 {
		g.Deck = cards.Shuffled(src, 1)
	}
	return c
}

func (g *Game) Guess(src rng.Source, guess Guess) (Step, error) {
	if g.Over() {
		return Step{}, models.ErrGameFinished
	}
	switch guess {
	case Skip:
		if g.Skips >= MaxSkips {
			return Step{}, fmt.Errorf("%w: no skips left", models.ErrInvalidMove)
		}
		g.Skips++
		g.Current = g.next(src)
		g.History = append(g.History, g.Current)
		return Step{Guess: guess, Card: g.Current, Multiplier: g.Multiplier}, nil
	case Higher, Lower:
	default:
		return Step{}, fmt.Errorf("%w: guess higher, lower or skip", models.ErrInvalidMove)
	}

	p := g.Chance(guess)
	if p >= 1 {
		return Step{}, fmt.Errorf("%w: %s on %s cannot lose", models.ErrInvalidMove, guess, g.Current.Value)
	}
	if p <= 0 {
		return Step{}, fmt.Errorf("%w: %s on %s cannot win", models.ErrInvalidMove, guess, g.Current.Value)
	}

	prev := g.Current
	g.Current = g.next(src)
	g.History = append(g.History, g.Current)
	s := Step{Guess: guess, Card: g.Current}

	ok := g.Current.LowRank() >= prev.LowRank()
	if guess == Lower {
		ok = g.Current.LowRank() <= prev.LowRank()
	}
	if !ok {
		g.Busted = true
		g.Multiplier = 0
		s.Over = true
		return s, nil
	}
	g.Correct++
	g.Multiplier = math.Round(g.Multiplier*(1-houseEdge)/p*10000) / 10000
	s.Correct, s.Multiplier = true, g.Multiplier
	return s, nil
}

func (g *Game) CashOut() (float64, error) {
	if g.Over() {
		return 0, models.ErrGameFinished
	}
	if g.Correct == 0 {
		return 0, fmt.Errorf("%w: make a correct guess before cashing out", models.ErrInvalidMove)
	}
	g.CashedOut = true
	return g.Multiplier, nil
}
