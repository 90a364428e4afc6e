package tiles

import (
	"fmt"
	"slices"

	"minigames-backend/internal/models"
	"minigames-backend/internal/rng"
)

const (
	MinesTiles = 25
	MinMines   = 1
	MaxMines   = 24
)

// GenerateMinePositions marks exactly k of size tiles as mines.
func GenerateMinePositions(src rng.Source, size, k int) []bool {
	out := make([]bool, size)
	for _, i := range rng.Sample(src, size, k) {
		out[i] = true
	}
	return out
}

type Mines struct {
	Ladder
	MineCount int    `json:"mineCount"`
	Mines     []bool `json:"mines"`
	Revealed  []int  `json:"revealed"`
}

func NewMines(src rng.Source, mineCount int) (*Mines, error) {
	if mineCount < MinMines || mineCount > MaxMines {
		return nil, fmt.Errorf("%w: mine count must be between %d and %d", models.ErrInvalidBet, MinMines, MaxMines)
	}
	return &Mines{
		Ladder:    Ladder{Multipliers: SurvivalTable(MinesTiles, mineCount)},
		MineCount: mineCount,
		Mines:     GenerateMinePositions(src, MinesTiles, mineCount),
		Revealed:  []int{},
	}, nil
}

type Reveal struct {
	Index      int     `json:"index"`
	MineHit    bool    `json:"mineHit"`
	Multiplier float64 `json:"multiplier"`
	Over       bool    `json:"over"`
}

func (m *Mines) Reveal(index int) (Reveal, error) {
	if err := m.CheckActive(); err != nil {
		return Reveal{}, err
	}
	if index < 0 || index >= MinesTiles {
		return Reveal{}, fmt.Errorf("%w: tile %d out of range", models.ErrInvalidMove, index)
	}
	if slices.Contains(m.Revealed, index) {
		return Reveal{}, fmt.Errorf("%w: tile %d already revealed", models.ErrInvalidMove, index)
	}
	if m.Mines[index] {
		m.Bust()
		return Reveal{Index: index, MineHit: true, Over: true}, nil
	}
	m.Revealed = append(m.Revealed, index)
	m.Advance()
	return Reveal{Index: index, Multiplier: m.Current(), Over: m.Over()}, nil
}

func (m *Mines) MinePositions() []int {
	var out []int
	for i, mine := range m.Mines {
		if mine {
			out = append(out, i)
		}
	}
	return out
}
