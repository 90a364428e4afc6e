// Package bingo deals a 75-ball card, draws part of the pool and pays by the
// number of completed lines.
package bingo

import (
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"minigames-backend/internal/rng"
)

const (
	Balls = 75
	Drawn = 35
	Size  = 5

	// ColumnRange is how many numbers feed each column: B 1-15, I 16-30 and so on.
	ColumnRange = Balls / Size
)

// Payouts[lines]; five or more lines pay the last entry.
var Payouts = []float64{0, 2.5, 6.5, 20, 60, 250}

// Card is indexed [column][row]. The centre cell is free and holds 0.
type Card [Size][Size]int

// NewCard draws each column from its own number range.
func NewCard(src rng.Source) Card {
	var c Card
	for col := range Size {
		for row, i := range rng.Sample(src, ColumnRange, Size) {
			c[col][row] = col*ColumnRange + i + 1
		}
	}
	c[Size/2][Size/2] = 0
	return c
}

// Draw shuffles the pool and returns the first Drawn balls.
func Draw(src rng.Source) []int {
	pool := make([]int, Balls)
	for i := range pool {
		pool[i] = i + 1
	}
	rng.Shuffle(src, pool)
	return pool[:Drawn:Drawn]
}

// Marks reports which cells are covered by drawn. The free cell is always marked.
func (c *Card) Marks(drawn []int) [Size][Size]bool {
	set := mapset.NewThreadUnsafeSet(drawn...)
	var m [Size][Size]bool
	for col := range Size {
		for row := range Size {
			m[col][row] = c[col][row] == 0 || set.Contains(c[col][row])
		}
	}
	return m
}

// Lines counts completed rows, columns and both diagonals.
func Lines(m [Size][Size]bool) int {
	full := func(cell func(i int) bool) bool {
		for i := range Size {
			if !cell(i) {
				return false
			}
		}
		return true
	}
	n := 0
	for k := range Size {
		if full(func(i int) bool { return m[k][i] }) {
			n++
		}
		if full(func(i int) bool { return m[i][k] }) {
			n++
		}
	}
	if full(func(i int) bool { return m[i][i] }) {
		n++
	}
	if full(func(i int) bool { return m[i][Size-1-i] }) {
		n++
	}
	return n
}

func Multiplier(lines int) float64 {
	return Payouts[min(lines, len(Payouts)-1)]
}

type Result struct {
	Card       Card    `json:"card"`
	Drawn      []int   `json:"drawn"`
	Hits       []int   `json:"hits"`
	Lines      int     `json:"lines"`
	Multiplier float64 `json:"multiplier"`
}

func Settle(card Card, drawn []int) Result {
	marks := card.Marks(drawn)
	var hits []int
	for col := range Size {
		for row := range Size {
			if n := card[col][row]; n != 0 && marks[col][row] {
				hits = append(hits, n)
			}
		}
	}
	slices.Sort(hits)
	lines := Lines(marks)
	return Result{
		Card:       card,
		Drawn:      drawn,
		Hits:       hits,
		Lines:      lines,
		Multiplier: Multiplier(lines),
	}
}

func Play(src rng.Source) Result {
	card := NewCard(src)
	return Settle(card, Draw(src))
}
