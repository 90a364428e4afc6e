package models

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyLBP Currency = "LBP"
)

func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: unsupported currency %q", ErrInvalidBet, s)
	}
	return c, nil
}

func (c Currency) Valid() bool {
	return c == CurrencyUSD || c == CurrencyLBP
}

// Scale is the number of decimal places kept for the currency.
// Balances are stored in units of 10^-Scale (cents for USD, whole pounds for LBP).
func (c Currency) Scale() int32 {
	if c == CurrencyLBP {
		return 0
	}
	return 2
}

// FormatCurrency rounds x to the precision of the currency. USD keeps two decimals,
// LBP rounds to the nearest integer. Applying it twice yields the same value.
func FormatCurrency(x float64, c Currency) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return x
	}
	return decimal.NewFromFloat(x).Round(c.Scale()).InexactFloat64()
}

// ToMinor converts a display amount into stored minor units after rounding.
func ToMinor(x float64, c Currency) int64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return decimal.NewFromFloat(x).Round(c.Scale()).Shift(c.Scale()).IntPart()
}

func FromMinor(minor int64, c Currency) float64 {
	return decimal.New(minor, -c.Scale()).InexactFloat64()
}

// PayoutMinor is bet × multiplier rounded to the nearest minor unit.
func PayoutMinor(betMinor int64, multiplier float64) int64 {
	if multiplier <= 0 || betMinor <= 0 {
		return 0
	}
	return decimal.NewFromInt(betMinor).Mul(decimal.NewFromFloat(multiplier)).Round(0).IntPart()
}

// BalanceColumn is the users/agents column holding the balance for c.
func BalanceColumn(c Currency) string {
	if c == CurrencyLBP {
		return "balance_lbp"
	}
	return "balance_usd"
}
