package tiles

import (
	"fmt"

	"minigames-backend/internal/models"
	"minigames-backend/internal/rng"
)

type Lanes struct {
	Lanes   int `json:"lanes"`
	Hazards int `json:"hazards"`
}

var ChickenDifficulties = map[string]Lanes{
	"easy":      {Lanes: 24, Hazards: 1},
	"medium":    {Lanes: 22, Hazards: 3},
	"hard":      {Lanes: 20, Hazards: 5},
	"daredevil": {Lanes: 15, Hazards: 6},
}

// Chicken crosses lanes in order; hazard lanes are fixed at start.
type Chicken struct {
	Ladder
	Difficulty string `json:"difficulty"`
	Hazards    []bool `json:"hazards"`
}

func NewChicken(src rng.Source, difficulty string) (*Chicken, error) {
	d, ok := ChickenDifficulties[difficulty]
	if !ok {
		return nil, fmt.Errorf("%w: unknown difficulty %q", models.ErrInvalidBet, difficulty)
	}
	return &Chicken{
		Ladder:     Ladder{Multipliers: SurvivalTable(d.Lanes, d.Hazards)},
		Difficulty: difficulty,
		Hazards:    GenerateMinePositions(src, d.Lanes, d.Hazards),
	}, nil
}

type Crossing struct {
	Lane       int     `json:"lane"`
	Hit        bool    `json:"hit"`
	Multiplier float64 `json:"multiplier"`
	Over       bool    `json:"over"`
}

// Step moves into the next lane.
func (c *Chicken) Step() (Crossing, error) {
	if err := c.CheckActive(); err != nil {
		return Crossing{}, err
	}
	lane := c.Steps
	if c.Hazards[lane] {
		c.Bust()
		return Crossing{Lane: lane, Hit: true, Over: true}, nil
	}
	c.Advance()
	return Crossing{Lane: lane, Multiplier: c.Current(), Over: c.Over()}, nil
}

func (c *Chicken) HazardLanes() []int {
	var out []int
	for i, h := range c.Hazards {
		if h {
			out = append(out, i)
		}
	}
	return out
}
