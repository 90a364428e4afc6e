package sim

import (
	"fmt"
	"slices"

	"minigames-backend/internal/games/aviamaster"
	"minigames-backend/internal/games/baccarat"
	"minigames-backend/internal/games/bingo"
	"minigames-backend/internal/games/cases"
	"minigames-backend/internal/games/dice"
	"minigames-backend/internal/games/keno"
	"minigames-backend/internal/games/limbo"
	"minigames-backend/internal/games/plinko"
	"minigames-backend/internal/games/roulette"
	"minigames-backend/internal/games/slots"
	"minigames-backend/internal/games/teenpatti"
	"minigames-backend/internal/games/wheel"
	"minigames-backend/internal/models"
	"minigames-backend/internal/rng"
)

// Round plays one wager of unit stake and returns its multiplier.
type Round func(src rng.Source) (float64, error)

var configs = map[string]Round{
	"dice-under-50": func(src rng.Source) (float64, error) {
		r, err := dice.Play(src, dice.RollUnder, 50)
		return r.Multiplier, err
	},
	"dice-over-90": func(src rng.Source) (float64, error) {
		r, err := dice.Play(src, dice.RollOver, 90)
		return r.Multiplier, err
	},
	"limbo-2x": func(src rng.Source) (float64, error) {
		r, err := limbo.Play(src, 2)
		return r.Multiplier, err
	},
	"limbo-100x": func(src rng.Source) (float64, error) {
		r, err := limbo.Play(src, 100)
		return r.Multiplier, err
	},
	"roulette-red":      rouletteBet(roulette.Bet{Kind: roulette.Red}),
	"roulette-straight": rouletteBet(roulette.Bet{Kind: roulette.Straight, Number: 17}),
	"roulette-dozen":    rouletteBet(roulette.Bet{Kind: roulette.Dozen, Number: 2}),
	"aviamaster": func(src rng.Source) (float64, error) {
		return aviamaster.Fly(src).Multiplier, nil
	},
	"bingo": func(src rng.Source) (float64, error) {
		return bingo.Play(src).Multiplier, nil
	},
	"teenpatti": func(src rng.Source) (float64, error) {
		r, err := teenpatti.Play(src)
		return r.Multiplier, err
	},
}

func init() {
	for _, risk := range []wheel.Risk{wheel.RiskLow, wheel.RiskMedium, wheel.RiskHigh} {
		configs["wheel-"+string(risk)] = func(src rng.Source) (float64, error) {
			r, err := wheel.Spin(src, risk)
			return r.Multiplier, err
		}
	}
	for rows := range plinko.Tables {
		for risk := range plinko.Tables[rows] {
			configs[fmt.Sprintf("plinko-%d-%s", rows, risk)] = func(src rng.Source) (float64, error) {
				r, err := plinko.Drop(src, rows, risk)
				return r.Multiplier, err
			}
		}
	}
	for picks := 1; picks <= keno.MaxPicks; picks++ {
		chosen := make([]int, picks)
		for i := range chosen {
			chosen[i] = i + 1
		}
		configs[fmt.Sprintf("keno-%d", picks)] = func(src rng.Source) (float64, error) {
			r, err := keno.Play(src, chosen)
			return r.Multiplier, err
		}
	}
	for tier := range cases.Tables {
		configs["cases-"+string(tier)] = func(src rng.Source) (float64, error) {
			r, err := cases.Open(src, tier)
			return r.Reward.Multiplier, err
		}
	}
	for _, side := range []baccarat.Side{baccarat.Player, baccarat.Banker, baccarat.Tie} {
		configs["baccarat-"+string(side)] = func(src rng.Source) (float64, error) {
			r, err := baccarat.Play(src, side)
			return r.Multiplier, err
		}
	}
	for _, name := range []string{"bigbass", "gates"} {
		v, err := slots.Lookup(name)
		if err != nil {
			panic(err)
		}
		configs["slots-"+name] = func(src rng.Source) (float64, error) {
			return v.Play(src).Multiplier, nil
		}
	}
}

func rouletteBet(b roulette.Bet) Round {
	b.Amount = 10000
	return func(src rng.Source) (float64, error) {
		res := roulette.Settle(roulette.Spin(src), []roulette.Bet{b})
		return float64(res.Payout) / float64(res.Stake), nil
	}
}

// Names lists every configuration in sorted order.
func Names() []string {
	names := make([]string, 0, len(configs))
	for name := range configs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func Lookup(name string) (Round, error) {
	r, ok := configs[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown simulation %q", models.ErrInvalidRequest, name)
	}
	return r, nil
}
