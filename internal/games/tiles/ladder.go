// Package tiles is the hazard-reveal engine behind mines, tower and chicken.
// Hazards are drawn without replacement when the game starts; each safe step
// moves one rung up a precomputed, increasing multiplier table.
package tiles

import (
	"fmt"
	"math"

	"minigames-backend/internal/models"
)

const houseEdge = 0.01

// Ladder tracks progress along a multiplier table. Multipliers[n] is the
// payout multiplier after n safe steps; Multipliers[0] is 1.
type Ladder struct {
	Multipliers []float64 `json:"multipliers"`
	Steps       int       `json:"steps"`
	Busted      bool      `json:"busted"`
	CashedOut   bool      `json:"cashedOut"`
}

func (l *Ladder) Over() bool { return l.Busted || l.CashedOut }

func (l *Ladder) MaxSteps() int { return len(l.Multipliers) - 1 }

func (l *Ladder) Current() float64 {
	if l.Busted {
		return 0
	}
	return l.Multipliers[l.Steps]
}

func (l *Ladder) Next() float64 {
	if l.Steps >= l.MaxSteps() {
		return l.Current()
	}
	return l.Multipliers[l.Steps+1]
}

// Advance records a safe step. Reaching the top cashes out automatically.
func (l *Ladder) Advance() {
	l.Steps++
	if l.Steps >= l.MaxSteps() {
		l.CashedOut = true
	}
}

func (l *Ladder) Bust() { l.Busted = true }

func (l *Ladder) CheckActive() error {
	if l.Over() {
		return models.ErrGameFinished
	}
	return nil
}

// CashOut ends the game at the current rung. At least one safe step is required.
func (l *Ladder) CashOut() (float64, error) {
	if err := l.CheckActive(); err != nil {
		return 0, err
	}
	if l.Steps == 0 {
		return 0, fmt.Errorf("%w: nothing to cash out yet", models.ErrInvalidMove)
	}
	l.CashedOut = true
	return l.Current(), nil
}

// SurvivalTable builds the fair table for drawing steps from cells cells
// with hazards hazards removed one at a time, minus the house edge.
func SurvivalTable(cells, hazards int) []float64 {
	safe := cells - hazards
	out := make([]float64, safe+1)
	out[0] = 1
	p := 1.0
	for n := 1; n <= safe; n++ {
		p *= float64(safe-n+1) / float64(cells-n+1)
		out[n] = round4((1 - houseEdge) / p)
	}
	return out
}

// GeometricTable is the table for independent levels each survived with probability p.
func GeometricTable(levels int, p float64) []float64 {
	out := make([]float64, levels+1)
	out[0] = 1
	for n := 1; n <= levels; n++ {
		out[n] = round4((1 - houseEdge) / math.Pow(p, float64(n)))
	}
	return out
}

func round4(x float64) float64 { return math.Round(x*10000) / 10000 }
