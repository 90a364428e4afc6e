package aviamaster

import (
	"testing"

	"minigames-backend/internal/rng/rngtest"
)

func TestOutcomeTableRTP(t *testing.T) {
	total, ev := 0.0, 0.0
	for _, o := range Outcomes {
		total += o.Weight
		ev += o.Weight * o.Value.Multiplier
	}
	if r := ev / total; r >= 1 || r < 0.9 {
		t.Errorf("RTP = %.4f", r)
	}
}

func TestFly(t *testing.T) {
	res := Fly(rngtest.Floats(0))
	if res.Landed || res.Multiplier != 0 || PathKey(res.Index) != "crash" {
		t.Errorf("lowest draw = %+v", res)
	}
	res = Fly(rngtest.Floats(0.7))
	if !res.Landed || res.Multiplier != 1.5 || PathKey(res.Index) != "1.5x" {
		t.Errorf("0.7 draw = %+v", res)
	}
}
