package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"time"

	"briscola-game/internal/cpu"
	"briscola-game/internal/match"

	"github.com/pterm/pterm"
)

func main() {
	games := flag.Int("games", 1000, "number of games to play")
	p1 := flag.String("p1", "hard", "difficulty of the first CPU")
	p2 := flag.String("p2", "medium", "difficulty of the second CPU")
	workers := flag.Int("workers", runtime.NumCPU(), "games played in parallel")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "shuffle seed")
	flag.Parse()

	var levels [2]cpu.Level
	for i, name := range []string{*p1, *p2} {
		level, err := cpu.ParseLevel(name)
		if err != nil {
			pterm.Error.Println(err)
			os.Exit(2)
		}
		levels[i] = level
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	pterm.DefaultHeader.Printfln("%s vs %s", levels[0], levels[1])
	pterm.Info.Printfln("%d games, %d workers, seed %d", *games, *workers, *seed)

	bar, err := pterm.DefaultProgressbar.WithTotal(*games).WithTitle("Playing").Start()
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	start := time.Now()
	result, err := match.Compare(ctx, levels, match.CompareOptions{
		Games:    *games,
		Workers:  *workers,
		Seed:     *seed,
		Progress: func() { bar.Increment() },
	})
	_, _ = bar.Stop()
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	data := pterm.TableData{{"CPU", "Wins", "Win %", "Avg points"}}
	for _, s := range result.Standings {
		data = append(data, []string{
			s.Level.String(),
			fmt.Sprint(s.Wins),
			fmt.Sprintf("%.1f", percent(s.Wins, result.Games)),
			fmt.Sprintf("%.1f", s.AveragePoints(result.Games)),
		})
	}
	data = append(data, []string{"draws", fmt.Sprint(result.Draws), fmt.Sprintf("%.1f", percent(result.Draws, result.Games)), ""})

	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}
	pterm.Success.Printfln("%d games in %s", result.Games, time.Since(start).Round(time.Millisecond))
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
