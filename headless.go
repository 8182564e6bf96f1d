package main

import (
	"classic-snake/autopilot"
	"classic-snake/config"
	"classic-snake/game"
	"classic-snake/game/timer"
	"classic-snake/game/types"
	"classic-snake/logger"
	"classic-snake/store"
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

const (
	// ticksPerCell caps an unattended game when no max tick count is set
	ticksPerCell  = 20
	progressEvery = 100
)

type headlessReport struct {
	Games      int
	BestScore  int
	TotalScore int
	TotalTicks int
	Causes     map[types.EndCause]int
	Elapsed    time.Duration
}

// runHeadless lets the autopilot play cfg.Headless.Games games back to back.
// Ticks are driven directly, so games run as fast as the CPU allows.
func runHeadless(ctx context.Context, cfg config.Config, st store.Store, log *logger.Logger) (headlessReport, error) {
	gc := cfg.GameConfig()
	if gc.MaxTicks == 0 {
		gc.MaxTicks = gc.Grid.Cells() * ticksPerCell
	}

	g := game.New(gc, st,
		game.WithLogger(log),
		game.WithPilot(autopilot.New()),
		game.WithTimerFactory(func(d time.Duration) timer.Timer { return timer.NewManual(d) }),
	)
	defer g.Close()
	g.SetAutopilot(true)

	report := headlessReport{Causes: make(map[types.EndCause]int)}
	started := time.Now()

	for report.Games < cfg.Headless.Games {
		if err := ctx.Err(); err != nil {
			report.Elapsed = time.Since(started)
			return report, errors.Wrapf(err, "stopped after %d games", report.Games)
		}

		g.Start()
		for g.Phase() == types.Running {
			g.Tick()
		}

		report.Games++
		report.TotalScore += g.Score()
		report.TotalTicks += g.Snapshot().Ticks
		report.Causes[g.Cause()]++
		if g.Score() > report.BestScore {
			report.BestScore = g.Score()
		}
		if report.Games%progressEvery == 0 {
			log.Infof("%s games played, best %d, high score %d",
				humanize.Comma(int64(report.Games)), report.BestScore, g.HighScore())
		}
	}
	report.Elapsed = time.Since(started)
	return report, nil
}

// Print writes the run report followed by the all-time summary.
func (r headlessReport) Print(w io.Writer, all store.Summary) {
	avg := 0.0
	if r.Games > 0 {
		avg = float64(r.TotalScore) / float64(r.Games)
	}
	fmt.Fprintf(w, "Played %s games in %s (%s ticks)\n",
		humanize.Comma(int64(r.Games)), r.Elapsed.Round(time.Millisecond), humanize.Comma(int64(r.TotalTicks)))
	fmt.Fprintf(w, "Best score: %s, average: %s\n",
		humanize.Comma(int64(r.BestScore)), humanize.FormatFloat("#,###.##", avg))

	causes := make([]string, 0, len(r.Causes))
	for c := range r.Causes {
		causes = append(causes, string(c))
	}
	sort.Strings(causes)
	for _, c := range causes {
		fmt.Fprintf(w, "  %-10s %s\n", c, humanize.Comma(int64(r.Causes[types.EndCause(c)])))
	}

	fmt.Fprintf(w, "All time: %s games, best %s, median %s\n",
		humanize.Comma(int64(all.GamesPlayed)), humanize.Comma(int64(all.BestScore)),
		humanize.FormatFloat("#,###.#", all.MedianScore))
}
