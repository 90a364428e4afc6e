package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

func GenerateGameID() string {
	return fmt.Sprintf("game_%s_%s",
		time.Now().Format("20060102"),
		uuid.NewString())
}

func GenerateSessionID() string {
	return uuid.NewString()
}

// BetLimit is the allowed stake range for one game and currency, in display units.
type BetLimit struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// ValidateBet checks amount against the limit after currency rounding and
// returns the stake in minor units.
func ValidateBet(amount float64, c Currency, limit BetLimit) (int64, error) {
	if !c.Valid() {
		return 0, fmt.Errorf("%w: unsupported currency %q", ErrInvalidBet, c)
	}
	rounded := FormatCurrency(amount, c)
	if rounded <= 0 {
		return 0, fmt.Errorf("%w: bet amount must be positive", ErrInvalidBet)
	}
	if rounded < limit.Min {
		return 0, fmt.Errorf("%w: minimum bet is %v %s", ErrInvalidBet, limit.Min, c)
	}
	if limit.Max > 0 && rounded > limit.Max {
		return 0, fmt.Errorf("%w: maximum bet is %v %s", ErrInvalidBet, limit.Max, c)
	}
	return ToMinor(rounded, c), nil
}
