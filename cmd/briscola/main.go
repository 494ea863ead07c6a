package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"briscola-game/internal/config"
	"briscola-game/internal/console"
	"briscola-game/internal/cpu"
	"briscola-game/internal/game"
	"briscola-game/internal/match"
	"briscola-game/internal/shared"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	difficulty := flag.String("difficulty", cfg.Difficulty.String(), "CPU difficulty: easy, medium or hard")
	name := flag.String("name", "You", "your name")
	logPath := flag.String("log", "", "write logs to this file")
	flag.Parse()

	level, err := cpu.ParseLevel(*difficulty)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logger := config.NewLogger(cfg)
	logger.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
		logger.SetOutput(f)
	}

	human := shared.NewPlayer(*name)
	computer := shared.NewPlayer("CPU")

	ui, err := console.NewUI(human)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer ui.Close()

	ctx := context.Background()
	g := game.New(human, computer, game.WithLogger(logger))
	for {
		opponent, err := match.NewCPU(level)
		if err != nil {
			logger.WithError(err).Error("Creating CPU")
			return
		}
		m := match.New(g, ui, opponent, match.WithObserver(ui), match.WithLogger(logger))
		if _, err := m.Run(ctx); err != nil {
			if !errors.Is(err, console.ErrQuit) {
				logger.WithError(err).Error("Game aborted")
			}
			return
		}
		if !ui.PlayAgain(ctx) {
			return
		}
	}
}
