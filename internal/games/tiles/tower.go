package tiles

import (
	"fmt"

	"minigames-backend/internal/models"
	"minigames-backend/internal/rng"
)

const TowerLevels = 8

type Difficulty struct {
	Tiles int `json:"tiles"`
	Bombs int `json:"bombs"`
}

var TowerDifficulties = map[string]Difficulty{
	"easy":   {Tiles: 4, Bombs: 1},
	"medium": {Tiles: 3, Bombs: 1},
	"hard":   {Tiles: 2, Bombs: 1},
	"expert": {Tiles: 3, Bombs: 2},
	"master": {Tiles: 4, Bombs: 3},
}

type Tower struct {
	Ladder
	Difficulty string   `json:"difficulty"`
	Tiles      int      `json:"tiles"`
	Bombs      [][]bool `json:"bombs"`
	Picks      []int    `json:"picks"`
}

func NewTower(src rng.Source, difficulty string) (*Tower, error) {
	d, ok := TowerDifficulties[difficulty]
	if !ok {
		return nil, fmt.Errorf("%w: unknown difficulty %q", models.ErrInvalidBet, difficulty)
	}
	t := &Tower{
		Ladder:     Ladder{Multipliers: GeometricTable(TowerLevels, float64(d.Tiles-d.Bombs)/float64(d.Tiles))},
		Difficulty: difficulty,
		Tiles:      d.Tiles,
		Bombs:      make([][]bool, TowerLevels),
		Picks:      []int{},
	}
	for i := range t.Bombs {
		t.Bombs[i] = GenerateMinePositions(src, d.Tiles, d.Bombs)
	}
	return t, nil
}

type Climb struct {
	Level      int     `json:"level"`
	Tile       int     `json:"tile"`
	Bomb       bool    `json:"bomb"`
	Multiplier float64 `json:"multiplier"`
	Over       bool    `json:"over"`
}

// Step picks a tile on the current level.
func (t *Tower) Step(tile int) (Climb, error) {
	if err := t.CheckActive(); err != nil {
		return Climb{}, err
	}
	if tile < 0 || tile >= t.Tiles {
		return Climb{}, fmt.Errorf("%w: tile %d out of range", models.ErrInvalidMove, tile)
	}
	level := t.Steps
	c := Climb{Level: level, Tile: tile}
	t.Picks = append(t.Picks, tile)
	if t.Bombs[level][tile] {
		t.Bust()
		c.Bomb, c.Over = true, true
		return c, nil
	}
	t.Advance()
	c.Multiplier, c.Over = t.Current(), t.Over()
	return c, nil
}
