package slots

import "minigames-backend/internal/rng"

const (
	Fisherman Symbol = "fisherman"

	bigBassReels = 5
	bigBassRows  = 3
)

// Paylines list the row taken on each reel.
var Paylines = [][bigBassReels]int{
	{1, 1, 1, 1, 1},
	{0, 0, 0, 0, 0},
	{2, 2, 2, 2, 2},
	{0, 1, 2, 1, 0},
	{2, 1, 0, 1, 2},
	{1, 0, 0, 0, 1},
	{1, 2, 2, 2, 1},
	{0, 0, 1, 2, 2},
	{2, 2, 1, 0, 0},
	{1, 2, 1, 0, 1},
}

var bigBassPool = pool{
	symbols: []rng.Weighted[Symbol]{
		{Value: "10", Weight: 22},
		{Value: "J", Weight: 22},
		{Value: "Q", Weight: 19},
		{Value: "K", Weight: 17},
		{Value: "A", Weight: 15},
		{Value: "dragonfly", Weight: 8},
		{Value: "rod", Weight: 6},
		{Value: "tackle", Weight: 5},
		{Value: "bass", Weight: 3},
		{Value: Fisherman, Weight: 2.2},
		{Value: Scatter, Weight: 1.9},
		{Value: Orb, Weight: 5},
	},
	orbs: []rng.Weighted[float64]{
		{Value: 2, Weight: 40},
		{Value: 5, Weight: 30},
		{Value: 10, Weight: 15},
		{Value: 15, Weight: 8},
		{Value: 20, Weight: 5},
		{Value: 50, Weight: 2},
	},
}

var lowPays = [6]float64{3: 1.6, 4: 8, 5: 32}

// bigBassPays[symbol][run length], in multiples of the total bet.
var bigBassPays = map[Symbol][6]float64{
	"10":        lowPays,
	"J":         lowPays,
	"Q":         lowPays,
	"K":         lowPays,
	"A":         lowPays,
	"dragonfly": {3: 6.4, 4: 16, 5: 64},
	"rod":       {3: 9.6, 4: 32, 5: 160},
	"tackle":    {3: 9.6, 4: 32, 5: 160},
	"bass":      {3: 16, 4: 64, 5: 320},
	Fisherman:   {3: 16, 4: 64, 5: 640},
}

// scatter count -> free spins awarded
var bigBassFreeSpins = map[int]int{3: 10, 4: 15, 5: 20}

const bigBassRetrigger = 10

type BigBass struct{}

func (BigBass) Name() string { return "bigbass" }

// EvaluateLine scans one payline from the left. Fisherman is wild. An orb
// inside the run voids the line.
func EvaluateLine(g Grid, line [bigBassReels]int) (Win, bool) {
	var base Symbol
	n := 0
	orb := false
scan:
	for reel, row := range line {
		s := g[reel][row].Symbol
		switch {
		case s == Orb:
			orb = true
		case s == Fisherman:
		case s == Scatter:
			break scan
		case base == "":
			base = s
		case s != base:
			break scan
		}
		n++
	}
	if n < 3 {
		return Win{}, false
	}
	if base == "" {
		base = Fisherman
	}
	w := Win{Symbol: base, Count: n}
	if orb {
		w.Voided = true
		return w, true
	}
	w.Multiplier = bigBassPays[base][n]
	return w, true
}

func (BigBass) evaluate(g Grid, free bool) Spin {
	s := Spin{Grid: g, Wins: []Win{}, Scatters: g.Count(Scatter), Free: free}
	for i, line := range Paylines {
		w, ok := EvaluateLine(g, line)
		if !ok {
			continue
		}
		w.Line = i + 1
		s.Wins = append(s.Wins, w)
		s.Multiplier += w.Multiplier
	}
	if free {
		// every fisherman collects every orb value on screen
		if n := g.Count(Fisherman); n > 0 {
			s.OrbTotal = g.OrbTotal()
			s.Collected = s.OrbTotal * float64(n)
			s.Multiplier += s.Collected
		}
	}
	return s
}

func (b BigBass) Play(src rng.Source) Result {
	res := Result{Variant: b.Name()}
	base := b.evaluate(bigBassPool.grid(src, bigBassReels, bigBassRows), false)
	res.add(base)

	if base.Scatters >= 3 {
		res.FreeSpins = bigBassFreeSpins[min(base.Scatters, 5)]
	}
	for played := 0; played < res.FreeSpins; played++ {
		spin := b.evaluate(bigBassPool.grid(src, bigBassReels, bigBassRows), true)
		res.add(spin)
		if spin.Scatters >= 3 {
			res.FreeSpins = min(res.FreeSpins+bigBassRetrigger, MaxFreeSpins)
		}
	}
	return res
}
