// Package wheel spins a weighted multiplier wheel per risk level.
package wheel

import (
	"fmt"

	"minigames-backend/internal/models"
	"minigames-backend/internal/rng"
)

type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

var Segments = map[Risk][]rng.Weighted[float64]{
	RiskLow: {
		{Value: 0, Weight: 25},
		{Value: 1.2, Weight: 55},
		{Value: 1.5, Weight: 20},
	},
	RiskMedium: {
		{Value: 0, Weight: 58},
		{Value: 1.5, Weight: 18},
		{Value: 2, Weight: 12},
		{Value: 3, Weight: 8},
		{Value: 5, Weight: 4},
	},
	RiskHigh: {
		{Value: 0, Weight: 91},
		{Value: 5, Weight: 5},
		{Value: 17.75, Weight: 4},
	},
}

type Result struct {
	Risk       Risk    `json:"risk"`
	Segment    int     `json:"segment"`
	Multiplier float64 `json:"multiplier"`
}

func Spin(src rng.Source, risk Risk) (Result, error) {
	table, ok := Segments[risk]
	if !ok {
		return Result{}, fmt.Errorf("%w: unknown risk %q", models.ErrInvalidBet, risk)
	}
	i, err := rng.PickIndex(src, table)
	if err != nil {
		return Result{}, err
	}
	return Result{Risk: risk, Segment: i, Multiplier: table[i].Value}, nil
}

// RTP is the expected return of one spin at the given risk.
func RTP(risk Risk) float64 {
	total, ev := 0.0, 0.0
	for _, s := range Segments[risk] {
		total += s.Weight
		ev += s.Weight * s.Value
	}
	if total == 0 {
		return 0
	}
	return ev / total
}
