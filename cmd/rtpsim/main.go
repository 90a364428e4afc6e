package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"minigames-backend/internal/rng"
	"minigames-backend/internal/sim"
)

func main() {
	var (
		game   = flag.String("game", "", "configuration to simulate, or \"all\"")
		rounds = flag.Int("rounds", 1_000_000, "rounds per configuration")
		seed   = flag.Uint64("seed", 0, "seed for a reproducible run (0 = random)")
		list   = flag.Bool("list", false, "list configurations and exit")
		quiet  = flag.Bool("quiet", false, "hide the progress bar")
	)
	flag.Parse()

	if *list {
		for _, name := range sim.Names() {
			fmt.Println(name)
		}
		return
	}

	names := []string{*game}
	switch *game {
	case "":
		fmt.Fprintln(os.Stderr, "usage: rtpsim -game <name|all> [-rounds N] [-seed S]")
		os.Exit(2)
	case "all":
		names = sim.Names()
	}

	src := rng.Default()
	if *seed != 0 {
		src = rng.Seeded(*seed)
	}

	p := message.NewPrinter(language.English)
	for _, name := range names {
		round, err := sim.Lookup(name)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		bar := pb.StartNew(*rounds)
		if *quiet {
			bar.SetWriter(io.Discard)
		}
		start := time.Now()
		rep, err := sim.Run(name, src, round, *rounds, func() { bar.Increment() })
		bar.Finish()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		used := time.Since(start)
		p.Printf("used: %.2f seconds, %d rounds/sec\n", used.Seconds(), int(float64(rep.Rounds)/max(used.Seconds(), 1e-9)))
		fmt.Println(table(p, rep))
	}
}

func table(p *message.Printer, rep *sim.Report) string {
	keys := []string{"Rounds", "RTP", "Std", "Hit rate", "Hit rate 95% CI", "Max multiplier"}
	vals := map[string]string{
		"Rounds":          p.Sprintf("%d", rep.Rounds),
		"RTP":             p.Sprintf("%.3f %%", 100*rep.RTP),
		"Std":             p.Sprintf("%.3f", rep.Std),
		"Hit rate":        p.Sprintf("%.3f %%", 100*rep.HitRate),
		"Hit rate 95% CI": p.Sprintf("[%.3f%%, %.3f%%]", 100*rep.HitCI.Lo, 100*rep.HitCI.Hi),
		"Max multiplier":  p.Sprintf("%.2fx", rep.MaxMultiplier),
	}

	keyW, valW := 0, 0
	for _, k := range keys {
		keyW = max(keyW, runewidth.StringWidth(k))
		valW = max(valW, runewidth.StringWidth(vals[k]))
	}
	inner := keyW + valW + 5
	title := rep.Name
	if w := runewidth.StringWidth(title); w > inner {
		title = runewidth.Truncate(title, inner, "…")
	}
	left := (inner - runewidth.StringWidth(title)) / 2

	var b strings.Builder
	line := "+" + strings.Repeat("-", inner) + "+\n"
	b.WriteString(line)
	b.WriteString("|" + runewidth.FillRight(strings.Repeat(" ", left)+title, inner) + "|\n")
	b.WriteString("+" + strings.Repeat("-", keyW+2) + "+" + strings.Repeat("-", valW+2) + "+\n")
	for _, k := range keys {
		b.WriteString("| " + runewidth.FillRight(k, keyW) + " | " + runewidth.FillRight(vals[k], valW) + " |\n")
	}
	b.WriteString("+" + strings.Repeat("-", keyW+2) + "+" + strings.Repeat("-", valW+2) + "+")
	return b.String()
}
