// Package aviamaster resolves a flight to a landing multiplier drawn from a
// weighted outcome table. The outcome index selects the visual path group.
package aviamaster

import (
	"strconv"

	"minigames-backend/internal/rng"
)

type Outcome struct {
	Multiplier float64 `json:"multiplier"`
	Landed     bool    `json:"landed"`
}

var Outcomes = []rng.Weighted[Outcome]{
	{Value: Outcome{0, false}, Weight: 68},
	{Value: Outcome{1.5, true}, Weight: 13},
	{Value: Outcome{2, true}, Weight: 8.5},
	{Value: Outcome{3, true}, Weight: 5.5},
	{Value: Outcome{5, true}, Weight: 3.2},
	{Value: Outcome{10, true}, Weight: 1.35},
	{Value: Outcome{25, true}, Weight: 0.35},
	{Value: Outcome{50, true}, Weight: 0.1},
}

type Result struct {
	Outcome
	Index int `json:"index"`
}

func Fly(src rng.Source) Result {
	i, err := rng.PickIndex(src, Outcomes)
	if err != nil {
		panic(err)
	}
	return Result{Outcome: Outcomes[i].Value, Index: i}
}

func PathKey(index int) string {
	return Outcomes[index].Value.key()
}

func (o Outcome) key() string {
	if !o.Landed {
		return "crash"
	}
	return strconv.FormatFloat(o.Multiplier, 'f', -1, 64) + "x"
}
