package match

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"

	"briscola-game/internal/cpu"
	"briscola-game/internal/game"
	"briscola-game/internal/shared"
)

// Standing is the tally of one CPU level over a series of games.
type Standing struct {
	Level  cpu.Level
	Wins   int
	Points int
}

// AveragePoints returns the mean score per game.
func (s Standing) AveragePoints(games int) float64 {
	if games == 0 {
		return 0
	}
	return float64(s.Points) / float64(games)
}

// Comparison is the outcome of CPU-vs-CPU games between two levels.
type Comparison struct {
	Games     int
	Draws     int
	Standings [2]Standing
}

// CompareOptions configures Compare.
type CompareOptions struct {
	Games   int
	Workers int
	Seed    uint64
	// Progress, when set, is called after every finished game.
	Progress func()
}

// Compare plays opts.Games games between the two levels on opts.Workers
// goroutines. Seats alternate every game, and game i is shuffled from
// (Seed, i), so the same options always give the same result.
func Compare(ctx context.Context, levels [2]cpu.Level, opts CompareOptions) (Comparison, error) {
	if opts.Games <= 0 {
		return Comparison{}, fmt.Errorf("games must be positive, got %d", opts.Games)
	}
	workers := max(opts.Workers, 1)

	type outcome struct {
		scores [2]int // indexed like levels
		err    error
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobs := make(chan int)
	results := make(chan outcome)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				scores, err := playSeeded(ctx, levels, i, opts.Seed)
				results <- outcome{scores: scores, err: err}
			}
		}()
	}
	go func() {
		defer close(jobs)
		for i := 0; i < opts.Games; i++ {
			select {
			case jobs <- i:
			case <-ctx.Done():
				return
			}
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	c := Comparison{Standings: [2]Standing{{Level: levels[0]}, {Level: levels[1]}}}
	var firstErr error
	for r := range results {
		if r.err != nil {
			if firstErr == nil {
				firstErr = r.err
				cancel()
			}
			continue
		}
		c.Games++
		c.Standings[0].Points += r.scores[0]
		c.Standings[1].Points += r.scores[1]
		switch {
		case r.scores[0] > r.scores[1]:
			c.Standings[0].Wins++
		case r.scores[1] > r.scores[0]:
			c.Standings[1].Wins++
		default:
			c.Draws++
		}
		if opts.Progress != nil {
			opts.Progress()
		}
	}
	if firstErr != nil {
		return c, firstErr
	}
	return c, nil
}

// playSeeded plays game i. Level 0 leads the first trick on even games.
func playSeeded(ctx context.Context, levels [2]cpu.Level, i int, seed uint64) ([2]int, error) {
	players := [2]*shared.Player{
		shared.NewPlayer(levels[0].String() + " A"),
		shared.NewPlayer(levels[1].String() + " B"),
	}
	agents := [2]Agent{}
	for k, level := range levels {
		a, err := NewCPU(level)
		if err != nil {
			return [2]int{}, err
		}
		agents[k] = a
	}

	first, second := 0, 1
	if i%2 == 1 {
		first, second = 1, 0
	}
	rng := rand.New(rand.NewPCG(seed, uint64(i)))
	g := game.New(players[first], players[second],
		game.WithID(fmt.Sprintf("compare-%d-%d", seed, i)),
		game.WithShuffle(func(cards []shared.Card) {
			rng.Shuffle(len(cards), func(a, b int) { cards[a], cards[b] = cards[b], cards[a] })
		}),
	)

	if _, err := New(g, agents[first], agents[second], WithLogger(g.Logger())).Run(ctx); err != nil {
		return [2]int{}, fmt.Errorf("game %d: %w", i, err)
	}
	return [2]int{players[0].Points, players[1].Points}, nil
}
