package match

import (
	"context"

	"briscola-game/internal/cpu"
	"briscola-game/internal/shared"
)

// Turn is what a seat sees when it has to play: the same view a CPU decides
// on, plus the counters a human player is shown.
type Turn struct {
	cpu.Context
	Player   *shared.Player
	DeckSize int
	Points   int // own points
	Opponent int // opponent points
}

// Agent chooses cards for one seat, human or CPU.
type Agent interface {
	// Begin is called once the hands are dealt.
	Begin(self *shared.Player, hand []shared.Card)
	// ChooseCard returns a card from turn.Hand. Human agents block here.
	ChooseCard(ctx context.Context, turn Turn) (shared.Card, error)
	// TrickDone reports every evaluated trick.
	TrickDone(self *shared.Player, result shared.TrickResult)
}

// CPU adapts a cpu.Bot to the Agent interface.
type CPU struct {
	Bot *cpu.Bot
}

// NewCPU creates a CPU agent for the given level.
func NewCPU(level cpu.Level) (*CPU, error) {
	bot, err := cpu.NewBot(level)
	if err != nil {
		return nil, err
	}
	return &CPU{Bot: bot}, nil
}

func (a *CPU) Begin(_ *shared.Player, hand []shared.Card) {
	a.Bot.Begin(shared.FullDeck(), hand)
}

func (a *CPU) ChooseCard(_ context.Context, turn Turn) (shared.Card, error) {
	return a.Bot.ChooseCard(turn.Context)
}

func (a *CPU) TrickDone(self *shared.Player, result shared.TrickResult) {
	a.Bot.ObserveTrick(result.Points, result.Cards(), result.Winner == self)
}
