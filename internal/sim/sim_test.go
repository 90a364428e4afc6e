package sim

import (
	"errors"
	"math"
	"testing"

	"minigames-backend/internal/models"
	"minigames-backend/internal/rng"
)

func TestClopperPearson(t *testing.T) {
	// reference values from R: binom.test(5, 20)$conf.int
	iv := ClopperPearson(5, 20, 0.05)
	if math.Abs(iv.Lo-0.0865) > 1e-3 || math.Abs(iv.Hi-0.4910) > 1e-3 {
		t.Errorf("5/20 interval = %+v", iv)
	}
	if iv := ClopperPearson(0, 10, 0.05); iv.Lo != 0 || iv.Hi <= 0 || iv.Hi >= 1 {
		t.Errorf("0/10 interval = %+v", iv)
	}
	if iv := ClopperPearson(10, 10, 0.05); iv.Hi != 1 || iv.Lo <= 0 {
		t.Errorf("10/10 interval = %+v", iv)
	}
}

func TestRunCountsRounds(t *testing.T) {
	i := 0
	alternating := func(rng.Source) (float64, error) {
		i++
		if i%2 == 0 {
			return 2, nil
		}
		return 0, nil
	}
	calls := 0
	rep, err := Run("alt", rng.Seeded(1), alternating, 100, func() { calls++ })
	if err != nil {
		t.Fatal(err)
	}
	if rep.RTP != 1 || rep.Hits != 50 || rep.HitRate != 0.5 || rep.MaxMultiplier != 2 || rep.Std != 1 {
		t.Errorf("report = %+v", rep)
	}
	if calls != 100 {
		t.Errorf("progress called %d times", calls)
	}
	if rep.HitCI.Lo >= 0.5 || rep.HitCI.Hi <= 0.5 {
		t.Errorf("interval %+v excludes the true rate", rep.HitCI)
	}
}

func TestRunStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Run("bad", rng.Seeded(1), func(rng.Source) (float64, error) { return 0, boom }, 10, nil)
	if !errors.Is(err, boom) {
		t.Errorf("err = %v", err)
	}
	if _, err := Run("none", rng.Seeded(1), nil, 0, nil); err == nil {
		t.Error("zero rounds accepted")
	}
}

func TestConfigsNearTheirEdge(t *testing.T) {
	for _, name := range []string{"dice-under-50", "limbo-2x", "roulette-red", "wheel-low"} {
		round, err := Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		rep, err := Run(name, rng.Seeded(42), round, 200000, nil)
		if err != nil {
			t.Fatal(err)
		}
		if rep.RTP < 0.94 || rep.RTP > 1.02 {
			t.Errorf("%s RTP = %.4f", name, rep.RTP)
		}
	}
}

func TestEveryConfigRuns(t *testing.T) {
	for _, name := range Names() {
		round, _ := Lookup(name)
		if _, err := Run(name, rng.Seeded(7), round, 50, nil); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
	if _, err := Lookup("crash"); !errors.Is(err, models.ErrInvalidRequest) {
		t.Errorf("unknown config err = %v", err)
	}
}
