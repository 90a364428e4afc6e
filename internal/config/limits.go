package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"minigames-backend/internal/models"
)

// GameLimits holds stake ranges per game and currency. Games without an entry
// use Defaults.
type GameLimits struct {
	Defaults map[models.Currency]models.BetLimit                     `yaml:"defaults"`
	Games    map[models.GameType]map[models.Currency]models.BetLimit `yaml:"games"`
}

func DefaultGameLimits() *GameLimits {
	return &GameLimits{
		Defaults: map[models.Currency]models.BetLimit{
			models.CurrencyUSD: {Min: 0.1, Max: 1000},
			models.CurrencyLBP: {Min: 10000, Max: 100000000},
		},
		Games: map[models.GameType]map[models.Currency]models.BetLimit{},
	}
}

// LoadGameLimits reads a YAML limits file. An empty path yields the defaults.
func LoadGameLimits(path string) (*GameLimits, error) {
	limits := DefaultGameLimits()
	if path == "" {
		return limits, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game limits: %w", err)
	}
	var file GameLimits
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse game limits: %w", err)
	}
	for cur, l := range file.Defaults {
		limits.Defaults[cur] = l
	}
	for game, byCur := range file.Games {
		limits.Games[game] = byCur
	}
	if err := limits.validate(); err != nil {
		return nil, err
	}
	return limits, nil
}

func (l *GameLimits) validate() error {
	check := func(where string, lim models.BetLimit) error {
		if lim.Min < 0 || (lim.Max > 0 && lim.Max < lim.Min) {
			return fmt.Errorf("game limits %s: invalid range %v..%v", where, lim.Min, lim.Max)
		}
		return nil
	}
	for cur, lim := range l.Defaults {
		if err := check(string(cur), lim); err != nil {
			return err
		}
	}
	for game, byCur := range l.Games {
		for cur, lim := range byCur {
			if err := check(fmt.Sprintf("%s/%s", game, cur), lim); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *GameLimits) For(game models.GameType, cur models.Currency) models.BetLimit {
	if byCur, ok := l.Games[game]; ok {
		if lim, ok := byCur[cur]; ok {
			return lim
		}
	}
	return l.Defaults[cur]
}
