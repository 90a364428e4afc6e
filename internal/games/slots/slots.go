// Package slots implements the grid slot family: a payline game (bigbass)
// and a ways game with cascades (gates). Both draw every cell independently
// from a weighted symbol pool with an orb side-channel.
package slots

import (
	"fmt"

	"minigames-backend/internal/models"
	"minigames-backend/internal/rng"
)

type Symbol string

const (
	Scatter Symbol = "scatter"
	Orb     Symbol = "orb"
)

// MaxFreeSpins caps the free spins a single paid spin can award.
const MaxFreeSpins = 50

// Cell is one grid position. Orb cells carry their value in Orb.
type Cell struct {
	Symbol Symbol  `json:"symbol"`
	Orb    float64 `json:"orb,omitempty"`
}

// Grid is indexed [reel][row] with row 0 at the top.
type Grid [][]Cell

func (g Grid) Count(s Symbol) int {
	n := 0
	for _, reel := range g {
		for _, c := range reel {
			if c.Symbol == s {
				n++
			}
		}
	}
	return n
}

func (g Grid) OrbTotal() float64 {
	t := 0.0
	for _, reel := range g {
		for _, c := range reel {
			if c.Symbol == Orb {
				t += c.Orb
			}
		}
	}
	return t
}

type pool struct {
	symbols []rng.Weighted[Symbol]
	orbs    []rng.Weighted[float64]
}

func (p pool) cell(src rng.Source) Cell {
	s := rng.MustPick(src, p.symbols)
	if s == Orb {
		return Cell{Symbol: Orb, Orb: rng.MustPick(src, p.orbs)}
	}
	return Cell{Symbol: s}
}

func (p pool) grid(src rng.Source, reels, rows int) Grid {
	g := make(Grid, reels)
	for i := range g {
		g[i] = make([]Cell, rows)
		for j := range g[i] {
			g[i][j] = p.cell(src)
		}
	}
	return g
}

// Win is one paying combination. Multiplier is relative to the total bet.
type Win struct {
	Symbol     Symbol  `json:"symbol"`
	Count      int     `json:"count"`
	Line       int     `json:"line,omitempty"`
	Ways       int     `json:"ways,omitempty"`
	Voided     bool    `json:"voided,omitempty"`
	Multiplier float64 `json:"multiplier"`
}

type Spin struct {
	Grid       Grid    `json:"grid"`
	Cascades   []Grid  `json:"cascades,omitempty"`
	Wins       []Win   `json:"wins"`
	Scatters   int     `json:"scatters"`
	OrbTotal   float64 `json:"orbTotal,omitempty"`
	Collected  float64 `json:"collected,omitempty"`
	Multiplier float64 `json:"multiplier"`
	Free       bool    `json:"free,omitempty"`
}

// Result is one paid spin plus every free spin it triggered.
type Result struct {
	Variant    string  `json:"variant"`
	Spins      []Spin  `json:"spins"`
	FreeSpins  int     `json:"freeSpins"`
	Multiplier float64 `json:"multiplier"`
}

func (r *Result) add(s Spin) {
	r.Spins = append(r.Spins, s)
	r.Multiplier += s.Multiplier
}

type Variant interface {
	Name() string
	Play(src rng.Source) Result
}

var variants = map[string]Variant{
	"bigbass": BigBass{},
	"gates":   Gates{},
}

func Lookup(name string) (Variant, error) {
	v, ok := variants[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown slot %q", models.ErrInvalidBet, name)
	}
	return v, nil
}
