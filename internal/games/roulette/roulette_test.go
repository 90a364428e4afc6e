package roulette

import (
	"errors"
	"testing"

	"minigames-backend/internal/models"
)

func TestCovers(t *testing.T) {
	tests := []struct {
		bet  Bet
		n    int
		want bool
	}{
		{Bet{Kind: Straight, Number: 0}, 0, true},
		{Bet{Kind: Straight, Number: 17}, 17, true},
		{Bet{Kind: Straight, Number: 17}, 18, false},
		{Bet{Kind: Red}, 1, true},
		{Bet{Kind: Red}, 2, false},
		{Bet{Kind: Black}, 0, false},
		{Bet{Kind: Even}, 0, false},
		{Bet{Kind: Odd}, 35, true},
		{Bet{Kind: Low}, 18, true},
		{Bet{Kind: High}, 18, false},
		{Bet{Kind: Dozen, Number: 2}, 24, true},
		{Bet{Kind: Dozen, Number: 3}, 24, false},
		{Bet{Kind: Column, Number: 1}, 34, true},
		{Bet{Kind: Column, Number: 3}, 36, true},
	}
	for _, tt := range tests {
		if got := tt.bet.Covers(tt.n); got != tt.want {
			t.Errorf("%+v covers %d = %v, want %v", tt.bet, tt.n, got, tt.want)
		}
	}
}

func TestRedBlackPartition(t *testing.T) {
	red := 0
	for n := 1; n <= 36; n++ {
		if IsRed(n) {
			red++
		}
	}
	if red != 18 {
		t.Errorf("%d red numbers", red)
	}
}

func TestSettleMultipleBets(t *testing.T) {
	bets := []Bet{
		{Kind: Straight, Number: 7, Amount: 100},
		{Kind: Red, Amount: 200},
		{Kind: Dozen, Number: 3, Amount: 300},
	}
	res := Settle(7, bets)
	if res.Stake != 600 {
		t.Errorf("stake = %d", res.Stake)
	}
	// 7 is red and in the first dozen
	if res.Payout != 3600+400 {
		t.Errorf("payout = %d", res.Payout)
	}
	if !res.Bets[0].Won || !res.Bets[1].Won || res.Bets[2].Won {
		t.Errorf("bet results %+v", res.Bets)
	}
	if res.Color != "red" {
		t.Errorf("color = %s", res.Color)
	}
}

func TestZeroLosesOutsideBets(t *testing.T) {
	res := Settle(0, []Bet{{Kind: Red, Amount: 100}, {Kind: Even, Amount: 100}, {Kind: Low, Amount: 100}})
	if res.Payout != 0 {
		t.Errorf("payout on zero = %d", res.Payout)
	}
}

func TestValidate(t *testing.T) {
	bad := [][]Bet{
		nil,
		{{Kind: Straight, Number: 37, Amount: 1}},
		{{Kind: Dozen, Number: 0, Amount: 1}},
		{{Kind: "corner", Amount: 1}},
		{{Kind: Red, Amount: 0}},
	}
	for _, b := range bad {
		if err := Validate(b); !errors.Is(err, models.ErrInvalidBet) {
			t.Errorf("Validate(%+v) = %v", b, err)
		}
	}
	if err := Validate([]Bet{{Kind: Column, Number: 2, Amount: 5}}); err != nil {
		t.Error(err)
	}
}
