package tiles

import (
	"fmt"

	"minigames-backend/internal/models"
	"minigames-backend/internal/rng"
)

const (
	SnakesCells = 12
	SnakesRolls = 10
)

// SnakesDifficulties maps difficulty to the number of snake cells.
var SnakesDifficulties = map[string]int{
	"easy":   1,
	"medium": 3,
	"hard":   5,
	"expert": 7,
}

// Snakes moves a token around a loop of cells. Snakes sit on fixed cells
// chosen at start, never on the start cell. Every roll lands on one of the
// other cells with equal chance, so each roll survives with the same odds.
type Snakes struct {
	Ladder
	Difficulty string `json:"difficulty"`
	Snakes     []bool `json:"snakes"`
	Position   int    `json:"position"`
	Rolls      []int  `json:"rolls"`
}

func NewSnakes(src rng.Source, difficulty string) (*Snakes, error) {
	k, ok := SnakesDifficulties[difficulty]
	if !ok {
		return nil, fmt.Errorf("%w: unknown difficulty %q", models.ErrInvalidBet, difficulty)
	}
	snakes := make([]bool, SnakesCells)
	copy(snakes[1:], GenerateMinePositions(src, SnakesCells-1, k))
	others := float64(SnakesCells - 1)
	return &Snakes{
		Ladder:     Ladder{Multipliers: GeometricTable(SnakesRolls, (others-float64(k))/others)},
		Difficulty: difficulty,
		Snakes:     snakes,
		Rolls:      []int{},
	}, nil
}

type Move struct {
	Roll       int     `json:"roll"`
	From       int     `json:"from"`
	To         int     `json:"to"`
	Snake      bool    `json:"snake"`
	Multiplier float64 `json:"multiplier"`
	Over       bool    `json:"over"`
}

// Roll advances the token 1 to SnakesCells-1 cells.
func (s *Snakes) Roll(src rng.Source) (Move, error) {
	if err := s.CheckActive(); err != nil {
		return Move{}, err
	}
	roll := 1 + src.IntN(SnakesCells-1)
	m := Move{Roll: roll, From: s.Position, To: (s.Position + roll) % SnakesCells}
	s.Position = m.To
	s.Rolls = append(s.Rolls, roll)
	if s.Snakes[m.To] {
		s.Bust()
		m.Snake, m.Over = true, true
		return m, nil
	}
	s.Advance()
	m.Multiplier, m.Over = s.Current(), s.Over()
	return m, nil
}

func (s *Snakes) SnakeCells() []int {
	var out []int
	for i, snake := range s.Snakes {
		if snake {
			out = append(out, i)
		}
	}
	return out
}
