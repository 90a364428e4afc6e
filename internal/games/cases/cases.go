// Package cases opens a case of the chosen tier and returns the reward
// multiplier drawn from its weighted table.
package cases

import (
	"fmt"

	"minigames-backend/internal/models"
	"minigames-backend/internal/rng"
)

type Tier string

const (
	Bronze Tier = "bronze"
	Silver Tier = "silver"
	Gold   Tier = "gold"
)

type Reward struct {
	Name       string  `json:"name"`
	Multiplier float64 `json:"multiplier"`
}

var Tables = map[Tier][]rng.Weighted[Reward]{
	Bronze: {
		{Value: Reward{"dust", 0.2}, Weight: 35},
		{Value: Reward{"copper", 0.5}, Weight: 25},
		{Value: Reward{"iron", 1}, Weight: 20},
		{Value: Reward{"steel", 1.5}, Weight: 12},
		{Value: Reward{"silver", 3}, Weight: 6},
		{Value: Reward{"gold", 10}, Weight: 2},
	},
	Silver: {
		{Value: Reward{"dust", 0.1}, Weight: 44},
		{Value: Reward{"copper", 0.4}, Weight: 22},
		{Value: Reward{"iron", 1}, Weight: 15},
		{Value: Reward{"silver", 2}, Weight: 10},
		{Value: Reward{"gold", 4}, Weight: 7},
		{Value: Reward{"diamond", 10}, Weight: 2},
	},
	Gold: {
		{Value: Reward{"empty", 0}, Weight: 60},
		{Value: Reward{"copper", 0.5}, Weight: 18},
		{Value: Reward{"silver", 1}, Weight: 10},
		{Value: Reward{"gold", 2}, Weight: 6.5},
		{Value: Reward{"ruby", 5}, Weight: 4},
		{Value: Reward{"diamond", 20}, Weight: 1.2},
		{Value: Reward{"crown", 50}, Weight: 0.3},
	},
}

type Result struct {
	Tier   Tier   `json:"tier"`
	Index  int    `json:"index"`
	Reward Reward `json:"reward"`
}

func Open(src rng.Source, tier Tier) (Result, error) {
	table, ok := Tables[tier]
	if !ok {
		return Result{}, fmt.Errorf("%w: unknown case %q", models.ErrInvalidBet, tier)
	}
	i, err := rng.PickIndex(src, table)
	if err != nil {
		return Result{}, err
	}
	return Result{Tier: tier, Index: i, Reward: table[i].Value}, nil
}
