// Package plinko drops a ball through a pin board; the landing bucket is the
// number of right bounces.
package plinko

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

// Tables[rows][risk][bucket]
var Tables = map[int]map[Risk][]float64{
	8: {
		RiskLow:    {5.6, 2.1, 1.1, 1, 0.5, 1, 1.1, 2.1, 5.6},
		RiskMedium: {13, 3, 1.3, 0.7, 0.4, 0.7, 1.3, 3, 13},
		RiskHigh:   {29, 4, 1.5, 0.3, 0.2, 0.3, 1.5, 4, 29},
	},
	12: {
		RiskLow:    {10, 3, 1.6, 1.4, 1.1, 1, 0.5, 1, 1.1, 1.4, 1.6, 3, 10},
		RiskMedium: {33, 11, 4, 2, 1.1, 0.6, 0.3, 0.6, 1.1, 2, 4, 11, 33},
		RiskHigh:   {170, 24, 8.1, 2, 0.7, 0.2, 0.2, 0.2, 0.7, 2, 8.1, 24, 170},
	},
	16: {
		RiskLow:    {16, 9, 2, 1.4, 1.4, 1.2, 1.1, 1, 0.5, 1, 1.1, 1.2, 1.4, 1.4, 2, 9, 16},
		RiskMedium: {110, 41, 10, 5, 3, 1.5, 1, 0.5, 0.3, 0.5, 1, 1.5, 3, 5, 10, 41, 110},
		RiskHigh:   {1000, 130, 26, 9, 4, 2, 0.2, 0.2, 0.2, 0.2, 0.2, 2, 4, 9, 26, 130, 1000},
	},
}

type Result struct {
	Rows       int     `json:"rows"`
	Risk       Risk    `json:"risk"`
	Bounces    []int   `json:"bounces"`
	Bucket     int     `json:"bucket"`
	Multiplier float64 `json:"multiplier"`
}

func Table(rows int, risk Risk) ([]float64, error) {
	byRisk, ok := Tables[rows]
	if !ok {
		return nil, fmt.Errorf("%w: rows must be 8, 12 or 16", models.ErrInvalidBet)
	}
	t, ok := byRisk[risk]
	if !ok {
		return nil, fmt.Errorf("%w: unknown risk %q", models.ErrInvalidBet, risk)
	}
	return t, nil
}

// Drop draws one bounce per row; 1 is right, 0 is left.
func Drop(src rng.Source, rows int, risk Risk) (Result, error) {
	t, err := Table(rows, risk)
	if err != nil {
		return Result{}, err
	}
	res := Result{Rows: rows, Risk: risk, Bounces: make([]int, rows)}
	for i := range res.Bounces {
		res.Bounces[i] = src.IntN(2)
		res.Bucket += res.Bounces[i]
	}
	res.Multiplier = t[res.Bucket]
	return res, nil
}

// PathKey names the visual path group for a landing bucket.
func PathKey(rows, bucket int) string {
	return fmt.Sprintf("%d-%d", rows, bucket)
}
