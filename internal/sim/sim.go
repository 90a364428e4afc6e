// Package sim estimates the return to player of single-shot game
// configurations by playing many unit-stake rounds.
package sim

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"minigames-backend/internal/rng"
)

type Interval struct {
	Lo float64
	Hi float64
}

type Report struct {
	Name          string
	Rounds        int
	RTP           float64
	Std           float64
	Hits          int
	HitRate       float64
	HitCI         Interval
	MaxMultiplier float64
}

// Run plays n rounds. progress, if set, is called after each round.
func Run(name string, src rng.Source, round Round, n int, progress func()) (*Report, error) {
	if n < 1 {
		return nil, fmt.Errorf("rounds must be positive, got %d", n)
	}
	rep := &Report{Name: name, Rounds: n}
	var sum, sumSq float64
	for range n {
		m, err := round(src)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		sum += m
		sumSq += m * m
		if m > 0 {
			rep.Hits++
		}
		if m > rep.MaxMultiplier {
			rep.MaxMultiplier = m
		}
		if progress != nil {
			progress()
		}
	}
	mean := sum / float64(n)
	rep.RTP = mean
	rep.Std = math.Sqrt(math.Max(0, sumSq/float64(n)-mean*mean))
	rep.HitRate = float64(rep.Hits) / float64(n)
	rep.HitCI = ClopperPearson(rep.Hits, n, 0.05)
	return rep, nil
}

// ClopperPearson is the exact two-sided 1-alpha interval for k successes in
// n trials.
func ClopperPearson(k, n int, alpha float64) Interval {
	iv := Interval{Lo: 0, Hi: 1}
	if k > 0 {
		iv.Lo = distuv.Beta{Alpha: float64(k), Beta: float64(n - k + 1)}.Quantile(alpha / 2)
	}
	if k < n {
		iv.Hi = distuv.Beta{Alpha: float64(k + 1), Beta: float64(n - k)}.Quantile(1 - alpha/2)
	}
	return iv
}
