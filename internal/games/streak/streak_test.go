package streak

import (
	"errors"
	"testing"

	"minigames-backend/internal/models"
	"minigames-backend/internal/rng/rngtest"
)

func TestFlipStreak(t *testing.T) {
	s := New()
	r, err := s.Flip(rngtest.Ints(0), "heads")
	if err != nil {
		t.Fatal(err)
	}
	if r.Result != "win" || r.Multiplier != 1.96 {
		t.Errorf("first win %+v", r)
	}
	r, _ = s.Flip(rngtest.Ints(1), "tails")
	if r.Multiplier != 3.8416 {
		t.Errorf("second win %+v", r)
	}
	mult, err := s.CashOut()
	if err != nil || mult != 3.8416 {
		t.Errorf("cashout %v %v", mult, err)
	}
	if _, err := s.Flip(rngtest.Ints(0), "heads"); !errors.Is(err, models.ErrGameFinished) {
		t.Errorf("flip after cashout: %v", err)
	}
}

func TestFlipLoss(t *testing.T) {
	s := New()
	r, _ := s.Flip(rngtest.Ints(1), "heads")
	if r.Result != "lose" || !r.Over || r.Multiplier != 0 {
		t.Errorf("loss %+v", r)
	}
	if _, err := s.CashOut(); !errors.Is(err, models.ErrGameFinished) {
		t.Errorf("cashout after loss: %v", err)
	}
}

func TestCashOutNeedsWin(t *testing.T) {
	if _, err := New().CashOut(); !errors.Is(err, models.ErrInvalidMove) {
		t.Errorf("err = %v", err)
	}
	if _, err := New().Flip(rngtest.Ints(0), "edge"); !errors.Is(err, models.ErrInvalidMove) {
		t.Errorf("bad call err = %v", err)
	}
}

func TestThrow(t *testing.T) {
	s := New()
	// house plays rock (0)
	r, _ := s.Throw(rngtest.Ints(0), "rock")
	if r.Result != "draw" || s.Wins != 0 || s.Over() {
		t.Errorf("draw %+v", r)
	}
	r, _ = s.Throw(rngtest.Ints(0), "paper")
	if r.Result != "win" || r.Multiplier != 1.96 {
		t.Errorf("paper beats rock %+v", r)
	}
	r, _ = s.Throw(rngtest.Ints(0), "scissors")
	if r.Result != "lose" || !s.Busted {
		t.Errorf("rock beats scissors %+v", r)
	}
}

func TestMaxWinsAutoCashOut(t *testing.T) {
	s := New()
	for i := 0; i < MaxWins; i++ {
		if _, err := s.Flip(rngtest.Ints(0), "heads"); err != nil {
			t.Fatalf("round %d: %v", i, err)
		}
	}
	if !s.CashedOut {
		t.Error("streak should cash out at the win cap")
	}
}
