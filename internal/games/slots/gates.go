package slots

import (
	"maps"
	"slices"

	"minigames-backend/internal/rng"
)

const (
	gatesReels = 6
	gatesRows  = 5

	// gatesDivisor scales way pays to the total bet.
	gatesDivisor = 11
	maxCascades  = 50
)

var gatesPool = pool{
	symbols: []rng.Weighted[Symbol]{
		{Value: "crown", Weight: 6},
		{Value: "hourglass", Weight: 7},
		{Value: "ring", Weight: 8},
		{Value: "chalice", Weight: 9},
		{Value: "red", Weight: 11},
		{Value: "purple", Weight: 12},
		{Value: "yellow", Weight: 13},
		{Value: "green", Weight: 14},
		{Value: "blue", Weight: 15},
		{Value: Scatter, Weight: 1.4},
		{Value: Orb, Weight: 1.6},
	},
	orbs: []rng.Weighted[float64]{
		{Value: 2, Weight: 30},
		{Value: 3, Weight: 25},
		{Value: 4, Weight: 15},
		{Value: 5, Weight: 12},
		{Value: 8, Weight: 8},
		{Value: 10, Weight: 5},
		{Value: 25, Weight: 3},
		{Value: 50, Weight: 1.5},
		{Value: 100, Weight: 0.5},
	},
}

// gatesPays[symbol][reels in run], per way before the divisor.
var gatesPays = map[Symbol][7]float64{
	"crown":     {3: 1, 4: 2.5, 5: 5, 6: 10},
	"hourglass": {3: 0.5, 4: 1.5, 5: 3, 6: 6},
	"ring":      {3: 0.4, 4: 1, 5: 2, 6: 4},
	"chalice":   {3: 0.3, 4: 0.8, 5: 1.5, 6: 3},
	"red":       {3: 0.2, 4: 0.5, 5: 1, 6: 2},
	"purple":    {3: 0.15, 4: 0.4, 5: 0.8, 6: 1.5},
	"yellow":    {3: 0.1, 4: 0.3, 5: 0.6, 6: 1.2},
	"green":     {3: 0.1, 4: 0.25, 5: 0.5, 6: 1},
	"blue":      {3: 0.1, 4: 0.2, 5: 0.4, 6: 0.8},
}

var gatesSymbols = slices.Sorted(maps.Keys(gatesPays))

const (
	gatesFreeSpins = 15
	gatesRetrigger = 5
)

type Gates struct{}

func (Gates) Name() string { return "gates" }

type position struct{ reel, row int }

// EvaluateWays finds every symbol present on consecutive reels from the
// leftmost, three reels or more. It returns the wins and the cells to clear.
func EvaluateWays(g Grid) ([]Win, map[position]bool) {
	var wins []Win
	clear := map[position]bool{}
	for _, sym := range gatesSymbols {
		ways := 1
		run := 0
		for _, reel := range g {
			c := 0
			for _, cell := range reel {
				if cell.Symbol == sym {
					c++
				}
			}
			if c == 0 {
				break
			}
			ways *= c
			run++
		}
		if run < 3 {
			continue
		}
		wins = append(wins, Win{
			Symbol:     sym,
			Count:      run,
			Ways:       ways,
			Multiplier: gatesPays[sym][run] * float64(ways) / gatesDivisor,
		})
		for reel := 0; reel < run; reel++ {
			for row, cell := range g[reel] {
				if cell.Symbol == sym {
					clear[position{reel, row}] = true
				}
			}
		}
	}
	return wins, clear
}

// Tumble removes the cleared cells, lets the rest fall and refills from the top.
func Tumble(src rng.Source, g Grid, clear map[position]bool) Grid {
	out := make(Grid, len(g))
	for reel, cells := range g {
		kept := make([]Cell, 0, len(cells))
		for row, c := range cells {
			if !clear[position{reel, row}] {
				kept = append(kept, c)
			}
		}
		col := make([]Cell, 0, len(cells))
		for len(col)+len(kept) < len(cells) {
			col = append(col, gatesPool.cell(src))
		}
		out[reel] = append(col, kept...)
	}
	return out
}

func (Gates) spin(src rng.Source, free bool) Spin {
	g := gatesPool.grid(src, gatesReels, gatesRows)
	s := Spin{Grid: g, Wins: []Win{}, Free: free}
	for i := 0; i < maxCascades; i++ {
		wins, clear := EvaluateWays(g)
		if len(wins) == 0 {
			break
		}
		for _, w := range wins {
			s.Multiplier += w.Multiplier
		}
		s.Wins = append(s.Wins, wins...)
		g = Tumble(src, g, clear)
		s.Cascades = append(s.Cascades, g)
	}
	s.Scatters = g.Count(Scatter)
	if s.Multiplier > 0 {
		if orbs := g.OrbTotal(); orbs > 0 {
			s.OrbTotal = orbs
			s.Multiplier *= orbs
		}
	}
	return s
}

func (gt Gates) Play(src rng.Source) Result {
	res := Result{Variant: gt.Name()}
	base := gt.spin(src, false)
	res.add(base)
	if base.Scatters >= 4 {
		res.FreeSpins = gatesFreeSpins
	}
	for played := 0; played < res.FreeSpins; played++ {
		spin := gt.spin(src, true)
		res.add(spin)
		if spin.Scatters >= 3 {
			res.FreeSpins = min(res.FreeSpins+gatesRetrigger, MaxFreeSpins)
		}
	}
	return res
}
