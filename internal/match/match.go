// Package match drives a Briscola game trick by trick, asking each seat's
// agent for a card and telling an observer what happened.
package match

import (
	"context"
	"fmt"

	"briscola-game/internal/cpu"
	"briscola-game/internal/game"
	"briscola-game/internal/shared"

	"github.com/sirupsen/logrus"
)

// Result is the outcome of a finished game.
type Result struct {
	Winner *shared.Player // nil on a draw
	Draw   bool
	Scores [2]int // indexed like Game.Players
}

// Option configures a Match.
type Option func(*Match)

// WithObserver sets the observer told about table events.
func WithObserver(o Observer) Option {
	return func(m *Match) {
		m.observer = o
	}
}

// WithLogger sets the logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(m *Match) {
		m.log = logger
	}
}

// Match binds two agents to the seats of a game.
type Match struct {
	Game     *game.Game
	agents   map[*shared.Player]Agent
	observer Observer
	log      logrus.FieldLogger
}

// New creates a match; first plays Game.Players[0], second Game.Players[1].
func New(g *game.Game, first, second Agent, opts ...Option) *Match {
	m := &Match{
		Game: g,
		agents: map[*shared.Player]Agent{
			g.Players[0]: first,
			g.Players[1]: second,
		},
		observer: NopObserver{},
		log:      logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.log = m.log.WithField("game", g.ID)
	return m
}

// Run resets the game, deals, and plays tricks until the game is over.
func (m *Match) Run(ctx context.Context) (Result, error) {
	g := m.Game
	g.ResetGame()
	if err := g.SetupGame(); err != nil {
		return Result{}, fmt.Errorf("setting up game: %w", err)
	}
	for _, p := range g.Players {
		m.agents[p].Begin(p, p.Hand.Cards())
	}
	m.observer.GameStarted(g)

	for !g.IsGameOver() {
		if err := m.PlayTrick(ctx); err != nil {
			return Result{}, err
		}
	}

	result := Result{Scores: [2]int{g.Players[0].Points, g.Players[1].Points}}
	if winner, ok := g.GetWinner(); ok {
		result.Winner = winner
	} else {
		result.Draw = true
	}
	m.observer.GameOver(result)
	return result, nil
}

// PlayTrick plays one full trick: both cards, evaluation and the draw phase.
func (m *Match) PlayTrick(ctx context.Context) error {
	g := m.Game
	leader, follower := g.Trick.Leader, g.Trick.Follower

	for _, p := range []*shared.Player{leader, follower} {
		if err := m.playTurn(ctx, p); err != nil {
			return err
		}
	}

	result, err := g.EvaluateHand()
	if err != nil {
		return fmt.Errorf("evaluating trick: %w", err)
	}
	for _, p := range g.Players {
		m.agents[p].TrickDone(p, result)
	}
	m.observer.TrickEnded(result)

	if g.IsGameOver() {
		return nil
	}

	// Winner draws first.
	for _, p := range []*shared.Player{result.Winner, result.Loser} {
		card, ok, err := g.DrawCard(p)
		if err != nil {
			return fmt.Errorf("drawing for %s: %w", p.Name, err)
		}
		if ok {
			m.observer.CardDrawn(p, card)
		}
	}
	if g.IsLastDraw() {
		m.observer.LastDraw()
	}
	return nil
}

func (m *Match) playTurn(ctx context.Context, p *shared.Player) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	g := m.Game
	trump, _ := g.Trump()
	opponent := g.Opponent(p)
	turn := Turn{
		Context:  cpu.NewContext(p.Hand, g.Trick, trump, p == g.Trick.Leader, g.IsLastDraw()),
		Player:   p,
		DeckSize: g.DeckSize(),
		Points:   p.Points,
		Opponent: opponent.Points,
	}

	card, err := m.agents[p].ChooseCard(ctx, turn)
	if err != nil {
		m.log.WithError(err).WithField("player", p.Name).Error("Agent failed to choose a card")
		return fmt.Errorf("%s choosing a card: %w", p.Name, err)
	}
	if err := g.PlayCard(p, card); err != nil {
		return fmt.Errorf("%s playing %s: %w", p.Name, card, err)
	}
	m.observer.CardPlayed(p, card)
	return nil
}
